package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/patchtools/patchmon/internal/errors"
	"github.com/patchtools/patchmon/internal/report"
)

// reportCommand shows a report: an explicit path, the latest in the
// results directory, or a listing of everything found there.
func reportCommand(path string, list bool) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if list {
		return listReports(cfg.ResultsDir)
	}

	if path == "" {
		path, err = latestReport(cfg.ResultsDir)
		if err != nil {
			return err
		}
	}

	r, err := report.ReadReport(path)
	if err != nil {
		return err
	}

	printReport(path, r)
	return nil
}

// reportFiles returns report paths in the results dir, sorted by name.
// The timestamped naming scheme makes lexical order chronological.
func reportFiles(resultsDir string) ([]string, error) {
	var paths []string
	for _, prefix := range []string{report.DashboardPrefix, report.PlainPrefix} {
		matches, err := filepath.Glob(filepath.Join(resultsDir, prefix+"_*.json"))
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrReport,
				"Cannot scan results directory "+resultsDir,
				"Check the results_dir setting in your .patchmon.yaml.")
		}
		paths = append(paths, matches...)
	}
	sort.Strings(paths)
	return paths, nil
}

func latestReport(resultsDir string) (string, error) {
	paths, err := reportFiles(resultsDir)
	if err != nil {
		return "", err
	}
	if len(paths) == 0 {
		return "", errors.New(errors.ErrReport,
			"No reports found in "+resultsDir,
			"Run 'patchmon monitor' to generate one.")
	}
	return paths[len(paths)-1], nil
}

func listReports(resultsDir string) error {
	paths, err := reportFiles(resultsDir)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		fmt.Printf("No reports in %s\n", resultsDir)
		return nil
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			continue
		}
		fmt.Printf("%-60s %8d bytes\n", filepath.Base(p), info.Size())
	}
	return nil
}

func printReport(path string, r *report.Report) {
	fmt.Printf("Report: %s\n", filepath.Base(path))
	fmt.Printf("Generated: %s\n\n", r.Timestamp)

	fmt.Printf("System metrics (%d samples):\n", r.SystemMetrics.Samples)
	printMetric("CPU", r.SystemMetrics.CPU, "%")
	printMetric("Memory", r.SystemMetrics.Memory, "%")
	printMetric("Disk", r.SystemMetrics.DiskIO, "% util")
	printMetric("Network", r.SystemMetrics.Network, " B/s")

	fmt.Println("\nPatch performance:")
	if len(r.PatchPerformance) == 0 {
		fmt.Println("  no timing data")
	}
	for _, method := range r.Methods() {
		s := r.PatchPerformance[method]
		fmt.Printf("  %-10s avg %6.2fs  min %6.2fs  max %6.2fs  stddev %5.2fs  (%d runs)\n",
			method, s.Average, s.Min, s.Max, s.StdDev, s.Samples)
	}

	if r.Benchmark != nil {
		fmt.Printf("\nBenchmark: %d tests\n", r.Benchmark.TotalTests)
	}

	if len(r.Recommendations) > 0 {
		fmt.Println("\nRecommendations:")
		for _, rec := range r.Recommendations {
			fmt.Printf("  - %s\n", rec)
		}
	}
}

func printMetric(label string, m *report.MetricSummary, unit string) {
	if m == nil {
		fmt.Printf("  %-10s n/a\n", label)
		return
	}
	fmt.Printf("  %-10s avg %6.1f%s  min %6.1f%s  max %6.1f%s\n",
		label, m.Average, unit, m.Min, unit, m.Max, unit)
}

package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/timing"
)

// SystemSummary holds per-metric summaries for the sample window. Metrics
// with no valid samples are omitted rather than reported as zero.
type SystemSummary struct {
	Samples int            `json:"samples"`
	CPU     *MetricSummary `json:"cpu,omitempty"`
	Memory  *MetricSummary `json:"memory,omitempty"`
	DiskIO  *MetricSummary `json:"disk_io,omitempty"`
	Network *MetricSummary `json:"network_io,omitempty"`
}

// BenchmarkSummary condenses the benchmark CSV into per-method test counts.
type BenchmarkSummary struct {
	TotalTests int            `json:"total_tests"`
	ByMethod   map[string]int `json:"by_method"`
}

// Report is the serialized analysis output.
type Report struct {
	Timestamp        string                 `json:"timestamp"`
	SystemMetrics    SystemSummary          `json:"system_metrics_summary"`
	PatchPerformance map[string]MethodStats `json:"patch_performance"`
	Benchmark        *BenchmarkSummary      `json:"benchmark_summary,omitempty"`
	Recommendations  []string               `json:"recommendations"`
}

// BuildInput carries everything a report is derived from.
type BuildInput struct {
	Window    *metrics.Window
	Timings   map[string][]float64
	Order     []string
	Benchmark []timing.BenchmarkRow
	Now       time.Time
}

// Build assembles a report from the current window, timing series, and
// benchmark rows. Absent inputs yield absent sections, never zeroes.
func Build(in BuildInput) *Report {
	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}

	r := &Report{
		Timestamp:        now.Format(time.RFC3339),
		PatchPerformance: SummarizeTimings(in.Timings),
		Recommendations:  []string{},
	}

	if in.Window != nil {
		r.SystemMetrics.Samples = in.Window.Len()
		r.SystemMetrics.CPU = summarizeSeries(in.Window.CPUSeries())
		r.SystemMetrics.Memory = summarizeSeries(in.Window.MemorySeries())
		r.SystemMetrics.DiskIO = summarizeSeries(in.Window.DiskSeries())
		r.SystemMetrics.Network = summarizeSeries(in.Window.NetworkSeries())
	}

	if len(in.Benchmark) > 0 {
		methods, counts := timing.MethodCounts(in.Benchmark)
		byMethod := make(map[string]int, len(methods))
		for _, m := range methods {
			byMethod[m] = counts[m]
		}
		r.Benchmark = &BenchmarkSummary{
			TotalTests: len(in.Benchmark),
			ByMethod:   byMethod,
		}
	}

	r.Recommendations = recommend(in.Order, r)
	return r
}

func summarizeSeries(values []float64) *MetricSummary {
	s, ok := Summarize(values)
	if !ok {
		return nil
	}
	return &s
}

func recommend(order []string, r *Report) []string {
	recs := []string{}

	if best := BestMethod(order, r.PatchPerformance); best != "" {
		s := r.PatchPerformance[best]
		recs = append(recs, fmt.Sprintf(
			"Use %s method for optimal performance (avg: %.2fs)", best, s.Average))
	}

	if cpu := r.SystemMetrics.CPU; cpu != nil && cpu.Average > 80 {
		recs = append(recs, fmt.Sprintf(
			"High average CPU usage (%.1f%%); consider reducing parallel jobs", cpu.Average))
	}
	if mem := r.SystemMetrics.Memory; mem != nil && mem.Average > 90 {
		recs = append(recs, fmt.Sprintf(
			"High average memory usage (%.1f%%); monitor for swapping", mem.Average))
	}

	return recs
}

// Methods returns the report's patch methods in sorted order, for stable
// rendering.
func (r *Report) Methods() []string {
	methods := make([]string, 0, len(r.PatchPerformance))
	for m := range r.PatchPerformance {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return methods
}

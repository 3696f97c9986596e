package timing

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/patchtools/patchmon/internal/errors"
)

// BenchmarkFileName is the summary file the external benchmark writes.
const BenchmarkFileName = "benchmark_summary.csv"

// BenchmarkRow is one row of the benchmark summary CSV. The file is owned
// by the external benchmark; rows are read-only snapshots.
type BenchmarkRow struct {
	Package    string
	Method     string
	ElapsedRaw string
}

// ElapsedSeconds extracts the numeric elapsed time from the raw value.
// The benchmark writes either a plain float ("4.5") or a labelled value
// ("real:4.5"); in the labelled form the number follows the last colon.
func (r BenchmarkRow) ElapsedSeconds() (float64, bool) {
	raw := strings.TrimSpace(r.ElapsedRaw)
	if idx := strings.LastIndex(raw, ":"); idx >= 0 {
		raw = raw[idx+1:]
	}
	val, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, false
	}
	return val, true
}

// BenchmarkPath returns the benchmark summary path under resultsDir.
func BenchmarkPath(resultsDir string) string {
	return filepath.Join(resultsDir, BenchmarkFileName)
}

// ReadBenchmark reads the benchmark summary CSV. A missing file returns
// (nil, nil); a present file must have a header row containing at least
// the package, method, and elapsed_time columns.
func ReadBenchmark(path string) ([]BenchmarkRow, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Cannot open "+path,
			"Check file permissions in the results directory.")
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1 // benchmark may add columns over time

	records, err := reader.ReadAll()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Malformed CSV in "+path,
			"Re-run the benchmark to regenerate the summary file.")
	}
	if len(records) == 0 {
		return nil, nil
	}

	// Map header columns by name; extra columns are ignored
	cols := make(map[string]int)
	for i, name := range records[0] {
		cols[strings.TrimSpace(strings.ToLower(name))] = i
	}

	pkgIdx, okPkg := cols["package"]
	methodIdx, okMethod := cols["method"]
	elapsedIdx, okElapsed := cols["elapsed_time"]
	if !okPkg || !okMethod || !okElapsed {
		return nil, errors.New(errors.ErrParse,
			"Missing required columns in "+filepath.Base(path),
			"The header must include package, method, and elapsed_time.")
	}

	var rows []BenchmarkRow
	for _, record := range records[1:] {
		if len(record) <= pkgIdx || len(record) <= methodIdx || len(record) <= elapsedIdx {
			continue
		}
		rows = append(rows, BenchmarkRow{
			Package:    strings.TrimSpace(record[pkgIdx]),
			Method:     strings.TrimSpace(record[methodIdx]),
			ElapsedRaw: strings.TrimSpace(record[elapsedIdx]),
		})
	}

	return rows, nil
}

// MethodCounts tallies benchmark rows per method, preserving first-seen
// order of methods in the file.
func MethodCounts(rows []BenchmarkRow) (order []string, counts map[string]int) {
	counts = make(map[string]int)
	for _, row := range rows {
		if _, seen := counts[row.Method]; !seen {
			order = append(order, row.Method)
		}
		counts[row.Method]++
	}
	return order, counts
}

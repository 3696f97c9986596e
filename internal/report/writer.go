package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/patchtools/patchmon/internal/errors"
)

// Report filename prefixes for the two monitor variants.
const (
	DashboardPrefix = "analysis_report"
	PlainPrefix     = "monitor_report"
)

// Writer persists reports as timestamped JSON files, never overwriting an
// existing report.
type Writer struct {
	dir    string
	prefix string
	now    func() time.Time
}

// NewWriter returns a writer targeting dir with the given filename prefix.
func NewWriter(dir, prefix string) *Writer {
	return &Writer{dir: dir, prefix: prefix, now: time.Now}
}

// Write serializes the report with two-space indentation and writes it to
// <dir>/<prefix>_<YYYYMMDD_HHMMSS>.json. When that name already exists, a
// numeric suffix disambiguates so same-second writes never clobber each
// other. Returns the written path.
func (w *Writer) Write(r *Report) (string, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrReport,
			"Cannot create report directory "+w.dir,
			"Check permissions on the results directory.")
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrReport,
			"Cannot serialize report", "")
	}
	data = append(data, '\n')

	stamp := w.now().Format("20060102_150405")
	path := filepath.Join(w.dir, fmt.Sprintf("%s_%s.json", w.prefix, stamp))
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(w.dir, fmt.Sprintf("%s_%s_%d.json", w.prefix, stamp, n))
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errors.WrapWithCode(err, errors.ErrReport,
			"Cannot write report to "+path,
			"Check free space and permissions on the results directory.")
	}
	return path, nil
}

// ReadReport loads a previously written report.
func ReadReport(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrReport,
			"Cannot read report "+path,
			"Verify the path with 'patchmon report'.")
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			fmt.Sprintf("Invalid report file %s", filepath.Base(path)),
			"The file is not valid JSON. Regenerate it with 'patchmon monitor'.")
	}
	return &r, nil
}

// Package timing reads the outputs of the external patch-application
// benchmark: per-method timing logs and the benchmark summary CSV. The
// files are the source of truth; each refresh replaces what was read
// before rather than appending to it.
package timing

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/patchtools/patchmon/internal/errors"
)

// LogPath returns the timing log path for a method under resultsDir.
func LogPath(resultsDir, method string) string {
	return filepath.Join(resultsDir, fmt.Sprintf("patch_timing_%s.log", method))
}

// ReadSeries reads one timing log: one duration-in-seconds float per
// non-empty line. A missing file means "no data yet" and returns (nil, nil).
//
// Parsing is all-or-nothing per file: any malformed line fails the whole
// read, so a half-written or corrupted log never replaces a good series.
func ReadSeries(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Cannot open timing log "+path,
			"Check file permissions in the results directory.")
	}
	defer f.Close()

	var series []float64
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		val, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return nil, errors.WrapWithCode(err, errors.ErrParse,
				fmt.Sprintf("Malformed line %d in %s: %q", lineNum, filepath.Base(path), line),
				"Each line must contain a single duration in seconds.")
		}
		series = append(series, val)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrParse,
			"Error reading timing log "+path, "")
	}

	return series, nil
}

package plain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchtools/patchmon/internal/collect"
	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/timing"
)

func newTestMonitor(out *bytes.Buffer) *Monitor {
	c := collect.New("/nonexistent", []string{"quilt", "git"}, time.Hour)
	return New(c, 10, 50*time.Millisecond, out)
}

func applyTestData(m *Monitor) {
	m.apply(collect.Snapshot{
		Sample: &metrics.Sample{
			Timestamp: time.Now(),
			CPU:       metrics.Ok(42.5),
			Memory:    metrics.Ok(61.2),
			DiskIO:    metrics.Ok(3.5),
			NetworkIO: metrics.Ok(2048),
		},
		Timings: map[string][]float64{
			"quilt": {1, 2, 3},
			"git":   {5},
		},
		Order:     []string{"quilt", "git"},
		Benchmark: []timing.BenchmarkRow{{Package: "openssl", Method: "quilt", ElapsedRaw: "real:2.75"}},
		Taken:     time.Now(),
	})
}

func TestRenderWithData(t *testing.T) {
	var out bytes.Buffer
	m := newTestMonitor(&out)
	applyTestData(m)

	frame := m.Render()

	assert.Contains(t, frame, "patchmon")
	assert.Contains(t, frame, "1 samples")
	assert.Contains(t, frame, "CPU      42.5%")
	assert.Contains(t, frame, "Memory   61.2%")
	assert.Contains(t, frame, "Disk     3.5% util")
	assert.Contains(t, frame, "Network  2.0 KB/s")
	assert.Contains(t, frame, "quilt")
	assert.Contains(t, frame, "<- best")
	assert.Contains(t, frame, "Benchmark: 1 tests")
	assert.Contains(t, frame, "Ctrl+C")
}

func TestRenderWithoutData(t *testing.T) {
	var out bytes.Buffer
	m := newTestMonitor(&out)

	frame := m.Render()

	assert.Contains(t, frame, "0 samples")
	assert.Contains(t, frame, "n/a")
	assert.Contains(t, frame, "no timing data yet")
	assert.NotContains(t, frame, "Benchmark:")
}

func TestRenderBestMarkerOnLowestMean(t *testing.T) {
	var out bytes.Buffer
	m := newTestMonitor(&out)
	applyTestData(m)

	frame := m.Render()

	for _, line := range bytes.Split([]byte(frame), []byte("\n")) {
		if bytes.Contains(line, []byte("<- best")) {
			assert.Contains(t, string(line), "quilt")
			return
		}
	}
	t.Fatal("no best marker rendered")
}

func TestRunStopsOnContextCancel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "patch_timing_quilt.log"), []byte("1.5\n"), 0o644))

	var out bytes.Buffer
	c := collect.New(dir, []string{"quilt"}, time.Hour)
	m := New(c, 10, 10*time.Millisecond, &out)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	err := m.Run(ctx)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "quilt")
}

func TestClearScreenDisabledForNonTerminal(t *testing.T) {
	var out bytes.Buffer
	m := newTestMonitor(&out)
	assert.False(t, m.clear, "buffer output must not trigger screen clearing")
}

func TestReport(t *testing.T) {
	var out bytes.Buffer
	m := newTestMonitor(&out)
	applyTestData(m)

	r := m.Report()
	require.NotNil(t, r)
	assert.Equal(t, 1, r.SystemMetrics.Samples)
	assert.Contains(t, r.PatchPerformance, "quilt")
	assert.Contains(t, r.Recommendations[0], "Use quilt method")
}

package collect

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patchtools/patchmon/internal/timing"
)

func writeResults(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "patch_timing_quilt.log"), []byte("1.0\n2.0\n3.0\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "patch_timing_git.log"), []byte("5.0\n"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, timing.BenchmarkFileName),
		[]byte("package,method,elapsed_time\nopenssl,quilt,real:2.75\n"), 0o644))
	return dir
}

func TestCollect(t *testing.T) {
	dir := writeResults(t)
	c := New(dir, []string{"quilt", "git", "script"}, time.Hour)

	snap := c.Collect(context.Background())

	assert.Equal(t, []float64{1, 2, 3}, snap.Timings["quilt"])
	assert.Equal(t, []float64{5}, snap.Timings["git"])
	assert.NotContains(t, snap.Timings, "script")
	assert.Equal(t, []string{"quilt", "git", "script"}, snap.Order)
	require.Len(t, snap.Benchmark, 1)
	assert.Equal(t, "openssl", snap.Benchmark[0].Package)
	assert.False(t, snap.Taken.IsZero())
}

func TestCollectEmptyResultsDir(t *testing.T) {
	c := New(t.TempDir(), []string{"quilt"}, time.Hour)

	snap := c.Collect(context.Background())

	assert.Empty(t, snap.Timings)
	assert.Empty(t, snap.Benchmark)
}

func TestLast(t *testing.T) {
	dir := writeResults(t)
	c := New(dir, []string{"quilt"}, time.Hour)

	assert.Nil(t, c.Last())

	c.Collect(context.Background())
	last := c.Last()
	require.NotNil(t, last)
	assert.Equal(t, []float64{1, 2, 3}, last.Timings["quilt"])
}

func TestPublishKeepsLatestSnapshot(t *testing.T) {
	c := New(t.TempDir(), []string{"quilt"}, time.Hour)

	c.publish(Snapshot{Order: []string{"first"}})
	c.publish(Snapshot{Order: []string{"second"}})

	snap := <-c.Snapshots()
	assert.Equal(t, []string{"second"}, snap.Order)

	select {
	case <-c.Snapshots():
		t.Fatal("expected only the latest snapshot to be buffered")
	default:
	}
}

func TestStartStop(t *testing.T) {
	dir := writeResults(t)
	c := New(dir, []string{"quilt"}, time.Hour)

	c.Start(context.Background())

	select {
	case snap := <-c.Snapshots():
		assert.Equal(t, []float64{1, 2, 3}, snap.Timings["quilt"])
	case <-time.After(30 * time.Second):
		t.Fatal("no snapshot published after Start")
	}

	c.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	c := New(t.TempDir(), []string{"quilt"}, time.Hour)
	c.Stop() // must not panic or block
}

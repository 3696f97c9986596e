package dashboard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stripANSI(s string) string {
	var result strings.Builder
	inEscape := false
	for _, r := range s {
		if r == '\033' {
			inEscape = true
			continue
		}
		if inEscape {
			if r == 'm' {
				inEscape = false
			}
			continue
		}
		result.WriteRune(r)
	}
	return result.String()
}

func TestViewBeforeFirstSnapshot(t *testing.T) {
	m := newTestModel()
	view := stripANSI(m.View())

	assert.Contains(t, view, "patchmon")
	assert.Contains(t, view, "collecting...")
	assert.Contains(t, view, "System Metrics")
	assert.Contains(t, view, "n/a")
	assert.Contains(t, view, "waiting for timing data")
}

func TestViewWithData(t *testing.T) {
	m := newTestModel()
	m.applySnapshot(testSnapshot())
	view := stripANSI(m.View())

	assert.Contains(t, view, "CPU")
	assert.Contains(t, view, "Memory")
	assert.Contains(t, view, "Disk")
	assert.Contains(t, view, "Network")
	assert.Contains(t, view, "Patch Performance")
	assert.Contains(t, view, "quilt")
	assert.Contains(t, view, "◆ best")
	assert.Contains(t, view, "benchmark: 1 tests recorded")
	assert.Contains(t, view, "q quit")
}

func TestViewMethodsFollowConfiguredOrder(t *testing.T) {
	m := newTestModel()
	m.applySnapshot(testSnapshot())
	view := stripANSI(m.View())

	quiltIdx := strings.Index(view, "quilt")
	gitIdx := strings.Index(view, "git ")
	assert.Less(t, quiltIdx, gitIdx, "quilt is configured before git")
}

func TestViewDegradedSampler(t *testing.T) {
	m := newTestModel()
	snap := testSnapshot()
	snap.SampleErr = assert.AnError
	snap.Sample = nil
	m.applySnapshot(snap)

	assert.Contains(t, stripANSI(m.View()), "metrics collection degraded")
}

func TestBenchmarkViewContent(t *testing.T) {
	m := newTestModel()
	m.applySnapshot(testSnapshot())
	m.viewMode = ViewBenchmark

	view := stripANSI(m.View())
	assert.Contains(t, view, "benchmark detail")
	assert.Contains(t, view, "openssl")
	assert.Contains(t, view, "2.75s")
	assert.Contains(t, view, "esc back")
}

func TestBenchmarkContentEmpty(t *testing.T) {
	m := newTestModel()
	assert.Contains(t, stripANSI(m.renderBenchmarkContent()), "No benchmark results")
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		rate float64
		want string
	}{
		{512, "512 B/s"},
		{2048, "2.0 KB/s"},
		{3 * 1024 * 1024, "3.0 MB/s"},
		{2 * 1024 * 1024 * 1024, "2.0 GB/s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRate(tt.rate))
	}
}

func TestSectionHelpers(t *testing.T) {
	header := stripANSI(SectionHeader("Title", 30))
	assert.True(t, strings.HasPrefix(header, "╭─ Title "))
	assert.True(t, strings.HasSuffix(header, "╮"))

	footer := stripANSI(SectionFooter(30))
	assert.True(t, strings.HasPrefix(footer, "╰"))
	assert.True(t, strings.HasSuffix(footer, "╯"))

	line := stripANSI(SectionLine("content", 30))
	assert.Contains(t, line, "content")
	assert.True(t, strings.HasPrefix(line, "│"))
	assert.True(t, strings.HasSuffix(line, "│"))
}

package dashboard

import (
	"fmt"
	"strings"

	"github.com/patchtools/patchmon/internal/report"
	"github.com/patchtools/patchmon/internal/ui"
)

const (
	defaultSectionWidth = 64
	meterWidth          = 20
	sparklineWidth      = 24
)

// render renders the complete dashboard view.
func (m Model) render() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}
	if m.viewMode == ViewBenchmark {
		return m.renderBenchmarkView()
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	width := m.sectionWidth()
	b.WriteString(m.renderMetricsSection(width))
	b.WriteString("\n")
	b.WriteString(m.renderTimingSection(width))

	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return b.String()
}

func (m Model) sectionWidth() int {
	if m.width == 0 {
		return defaultSectionWidth
	}
	width := m.width - 2
	if width < 40 {
		width = 40
	}
	if width > 100 {
		width = 100
	}
	return width
}

// renderHeader renders the title bar with sample count and update age.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("patchmon")

	var updateText string
	switch age := m.SecondsSinceUpdate(); {
	case m.lastUpdate.IsZero():
		updateText = "collecting..."
	case age == 0:
		updateText = "updated just now"
	case age == 1:
		updateText = "updated 1s ago"
	default:
		updateText = fmt.Sprintf("updated %ds ago", age)
	}

	stats := LabelStyle.Render(fmt.Sprintf(
		" | %d samples | %s", m.window.Len(), updateText))

	line := HeaderStyle.Render(title + stats)
	if m.sampleErr != nil {
		line += "\n" + WarnStyle.Render("  ⚠ metrics collection degraded")
	}
	return line
}

// renderMetricsSection renders the four system metric rows.
func (m Model) renderMetricsSection(width int) string {
	lines := []string{SectionHeader("System Metrics", width)}

	lines = append(lines, SectionLine(m.percentRow("CPU", m.window.CPUSeries()), width))
	lines = append(lines, SectionLine(m.percentRow("Memory", m.window.MemorySeries()), width))
	lines = append(lines, SectionLine(m.rateRow("Disk", m.window.DiskSeries(), "%.1f%% util"), width))
	lines = append(lines, SectionLine(m.rateRow("Network", m.window.NetworkSeries(), ""), width))

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// percentRow renders a label, meter, and sparkline for a percentage series.
func (m Model) percentRow(label string, series []float64) string {
	if len(series) == 0 {
		return fmt.Sprintf("%-8s %s", label, MutedStyle.Render("n/a"))
	}
	current := series[len(series)-1]
	return fmt.Sprintf("%-8s %s  %s",
		label,
		ui.Meter(current, meterWidth),
		ui.PercentSparkline(series, sparklineWidth))
}

// rateRow renders a label, formatted value, and sparkline for a
// non-percentage series.
func (m Model) rateRow(label string, series []float64, format string) string {
	if len(series) == 0 {
		return fmt.Sprintf("%-8s %s", label, MutedStyle.Render("n/a"))
	}
	current := series[len(series)-1]

	var value string
	if format != "" {
		value = fmt.Sprintf(format, current)
	} else {
		value = FormatRate(current)
	}

	return fmt.Sprintf("%-8s %-26s %s",
		label,
		ValueStyle.Render(value),
		ui.Sparkline(series, sparklineWidth, ColorAccent))
}

// renderTimingSection renders per-method patch timing statistics.
func (m Model) renderTimingSection(width int) string {
	lines := []string{SectionHeader("Patch Performance", width)}

	stats := report.SummarizeTimings(m.timings)
	if len(stats) == 0 {
		lines = append(lines, SectionLine(
			MutedStyle.Render("waiting for timing data..."), width))
		lines = append(lines, SectionFooter(width))
		return strings.Join(lines, "\n")
	}

	best := report.BestMethod(m.order, stats)

	header := MutedStyle.Render(fmt.Sprintf(
		"%-10s %6s %8s %8s %8s %8s", "method", "runs", "avg", "min", "max", "stddev"))
	lines = append(lines, SectionLine(header, width))

	for _, method := range m.methodRows(stats) {
		s := stats[method]
		row := fmt.Sprintf("%-10s %6d %7.2fs %7.2fs %7.2fs %7.2fs",
			method, s.Samples, s.Average, s.Min, s.Max, s.StdDev)
		if method == best {
			row = BestStyle.Render(row + "  ◆ best")
		} else {
			row = ValueStyle.Render(row)
		}
		lines = append(lines, SectionLine(row, width))
	}

	if summary := m.benchmarkSummaryLine(); summary != "" {
		lines = append(lines, SectionLine(MutedStyle.Render(summary), width))
	}

	lines = append(lines, SectionFooter(width))
	return strings.Join(lines, "\n")
}

// methodRows returns methods in configured order, then any extras sorted.
func (m Model) methodRows(stats map[string]report.MethodStats) []string {
	rows := make([]string, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for _, method := range m.order {
		if _, ok := stats[method]; ok {
			rows = append(rows, method)
			seen[method] = true
		}
	}
	extras := (&report.Report{PatchPerformance: stats}).Methods()
	for _, method := range extras {
		if !seen[method] {
			rows = append(rows, method)
		}
	}
	return rows
}

func (m Model) benchmarkSummaryLine() string {
	if len(m.benchmark) == 0 {
		return ""
	}
	return fmt.Sprintf("benchmark: %d tests recorded (press b for detail)", len(m.benchmark))
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r refresh",
		"b benchmark",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

// renderBenchmarkView renders the scrollable benchmark detail view.
func (m Model) renderBenchmarkView() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render(TitleStyle.Render("patchmon") +
		LabelStyle.Render(" | benchmark detail")))
	b.WriteString("\n\n")

	if m.viewportReady {
		b.WriteString(m.benchViewport.View())
	} else {
		b.WriteString(m.renderBenchmarkContent())
	}

	b.WriteString("\n")
	b.WriteString(FooterStyle.Render("esc back | up/down scroll | q quit"))
	return b.String()
}

// renderBenchmarkContent builds the benchmark table shown in the viewport.
func (m Model) renderBenchmarkContent() string {
	if len(m.benchmark) == 0 {
		return MutedStyle.Render("No benchmark results yet.")
	}

	var b strings.Builder
	b.WriteString(MutedStyle.Render(fmt.Sprintf(
		"%-24s %-10s %10s\n", "package", "method", "elapsed")))

	for _, row := range m.benchmark {
		elapsed := row.ElapsedRaw
		if secs, ok := row.ElapsedSeconds(); ok {
			elapsed = fmt.Sprintf("%.2fs", secs)
		}
		b.WriteString(fmt.Sprintf("%-24s %-10s %10s\n",
			row.Package, row.Method, elapsed))
	}

	return b.String()
}

// FormatRate formats a bytes-per-second rate as a human-readable string.
func FormatRate(bytesPerSecond float64) string {
	if bytesPerSecond < 1024 {
		return fmt.Sprintf("%.0f B/s", bytesPerSecond)
	} else if bytesPerSecond < 1024*1024 {
		return fmt.Sprintf("%.1f KB/s", bytesPerSecond/1024)
	} else if bytesPerSecond < 1024*1024*1024 {
		return fmt.Sprintf("%.1f MB/s", bytesPerSecond/(1024*1024))
	}
	return fmt.Sprintf("%.1f GB/s", bytesPerSecond/(1024*1024*1024))
}

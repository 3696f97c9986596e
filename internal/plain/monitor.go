// Package plain implements the fallback text monitor for terminals where
// the full-screen dashboard is unavailable or unwanted. It runs a single
// loop that collects, renders, and sleeps, with no background goroutine.
package plain

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/patchtools/patchmon/internal/collect"
	"github.com/patchtools/patchmon/internal/logger"
	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/report"
	"github.com/patchtools/patchmon/internal/timing"
)

// DefaultInterval is the combined collect-and-render cadence. Unlike the
// dashboard there is no faster presentation loop underneath.
const DefaultInterval = 5 * time.Second

// Monitor is the plain-text monitoring loop.
type Monitor struct {
	collector *collect.Collector
	window    *metrics.Window
	interval  time.Duration
	out       io.Writer
	output    *termenv.Output
	clear     bool
	log       logger.Logger

	timings   map[string][]float64
	order     []string
	benchmark []timing.BenchmarkRow
}

// New creates a plain monitor writing to out. Screen clearing between
// frames is enabled only when out is a terminal.
func New(collector *collect.Collector, windowSize int, interval time.Duration, out io.Writer) *Monitor {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if windowSize <= 0 {
		windowSize = metrics.DefaultWindowSize
	}

	m := &Monitor{
		collector: collector,
		window:    metrics.NewWindow(windowSize),
		interval:  interval,
		out:       out,
		log:       logger.Noop(),
		timings:   make(map[string][]float64),
	}

	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		m.output = termenv.NewOutput(f)
		m.clear = true
	}

	return m
}

// SetLogger swaps the logger.
func (m *Monitor) SetLogger(l logger.Logger) {
	m.log = l
	m.collector.SetLogger(l)
}

// SetClearScreen overrides terminal detection, mainly for tests.
func (m *Monitor) SetClearScreen(clear bool) {
	m.clear = clear
}

// Run executes the collect-render-sleep loop until ctx is canceled. The
// final report is written by the caller after Run returns.
func (m *Monitor) Run(ctx context.Context) error {
	for {
		snap := m.collector.Collect(ctx)
		m.apply(snap)
		m.renderFrame()

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(m.interval):
		}
	}
}

// Report builds the monitoring report from the loop's accumulated state.
func (m *Monitor) Report() *report.Report {
	return report.Build(report.BuildInput{
		Window:    m.window,
		Timings:   m.timings,
		Order:     m.order,
		Benchmark: m.benchmark,
	})
}

func (m *Monitor) apply(snap collect.Snapshot) {
	if snap.Sample != nil {
		m.window.Push(*snap.Sample)
	}
	if snap.Timings != nil {
		m.timings = snap.Timings
	}
	if len(snap.Order) > 0 {
		m.order = snap.Order
	}
	m.benchmark = snap.Benchmark
}

func (m *Monitor) renderFrame() {
	if m.clear && m.output != nil {
		m.output.ClearScreen()
	}
	fmt.Fprint(m.out, m.Render())
}

// Render produces one frame of monitor output.
func (m *Monitor) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "patchmon | %s | %d samples\n",
		time.Now().Format("15:04:05"), m.window.Len())
	b.WriteString(strings.Repeat("-", 60) + "\n")

	b.WriteString("System:\n")
	m.writeMetricLine(&b, "CPU", m.window.CPUSeries(), "%.1f%%")
	m.writeMetricLine(&b, "Memory", m.window.MemorySeries(), "%.1f%%")
	m.writeMetricLine(&b, "Disk", m.window.DiskSeries(), "%.1f%% util")
	m.writeNetworkLine(&b)

	b.WriteString("\nPatch timing:\n")
	stats := report.SummarizeTimings(m.timings)
	if len(stats) == 0 {
		b.WriteString("  no timing data yet\n")
	} else {
		best := report.BestMethod(m.order, stats)
		for _, method := range m.methodRows(stats) {
			s := stats[method]
			marker := ""
			if method == best {
				marker = "  <- best"
			}
			fmt.Fprintf(&b, "  %-10s avg %6.2fs  min %6.2fs  max %6.2fs  (%d runs)%s\n",
				method, s.Average, s.Min, s.Max, s.Samples, marker)
		}
	}

	if len(m.benchmark) > 0 {
		fmt.Fprintf(&b, "\nBenchmark: %d tests in %s\n",
			len(m.benchmark), timing.BenchmarkFileName)
	}

	b.WriteString("\nPress Ctrl+C to stop and write the report.\n")
	return b.String()
}

func (m *Monitor) writeMetricLine(b *strings.Builder, label string, series []float64, format string) {
	if len(series) == 0 {
		fmt.Fprintf(b, "  %-8s n/a\n", label)
		return
	}
	fmt.Fprintf(b, "  %-8s "+format+"\n", label, series[len(series)-1])
}

func (m *Monitor) writeNetworkLine(b *strings.Builder) {
	series := m.window.NetworkSeries()
	if len(series) == 0 {
		fmt.Fprintf(b, "  %-8s n/a\n", "Network")
		return
	}
	rate := series[len(series)-1]
	switch {
	case rate < 1024:
		fmt.Fprintf(b, "  %-8s %.0f B/s\n", "Network", rate)
	case rate < 1024*1024:
		fmt.Fprintf(b, "  %-8s %.1f KB/s\n", "Network", rate/1024)
	default:
		fmt.Fprintf(b, "  %-8s %.1f MB/s\n", "Network", rate/(1024*1024))
	}
}

// methodRows returns methods in configured order, then extras sorted.
func (m *Monitor) methodRows(stats map[string]report.MethodStats) []string {
	rows := make([]string, 0, len(stats))
	seen := make(map[string]bool, len(stats))
	for _, method := range m.order {
		if _, ok := stats[method]; ok {
			rows = append(rows, method)
			seen[method] = true
		}
	}
	for _, method := range (&report.Report{PatchPerformance: stats}).Methods() {
		if !seen[method] {
			rows = append(rows, method)
		}
	}
	return rows
}

// Package dashboard implements the full-screen live monitoring view built
// on Bubble Tea. It consumes snapshots from the background collector at
// its own refresh cadence and renders system metrics, patch timing
// statistics, and the benchmark summary.
package dashboard

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/patchtools/patchmon/internal/collect"
	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/report"
	"github.com/patchtools/patchmon/internal/timing"
)

// ViewMode defines the current display mode of the dashboard.
type ViewMode int

const (
	ViewDashboard ViewMode = iota
	ViewBenchmark
)

// DefaultRefreshInterval is the presentation cadence. The collector runs
// slower; between snapshots the dashboard re-renders existing state.
const DefaultRefreshInterval = time.Second

// Model is the Bubble Tea model for the monitoring dashboard.
type Model struct {
	collector *collect.Collector
	window    *metrics.Window
	interval  time.Duration

	timings    map[string][]float64
	order      []string
	benchmark  []timing.BenchmarkRow
	sampleErr  error
	lastUpdate time.Time

	width    int
	height   int
	quitting bool
	showHelp bool
	viewMode ViewMode

	benchViewport viewport.Model
	viewportReady bool
}

// tickMsg signals a periodic refresh.
type tickMsg time.Time

// snapshotMsg carries a freshly collected snapshot after a manual refresh.
type snapshotMsg collect.Snapshot

// NewModel creates a dashboard model reading from the given collector.
// The collector must already be started; the model only drains it.
func NewModel(collector *collect.Collector, windowSize int, interval time.Duration) Model {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if windowSize <= 0 {
		windowSize = metrics.DefaultWindowSize
	}
	return Model{
		collector: collector,
		window:    metrics.NewWindow(windowSize),
		interval:  interval,
		timings:   make(map[string][]float64),
	}
}

// Init starts the tick timer.
func (m Model) Init() tea.Cmd {
	return m.tickCmd()
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		handled, cmd := m.HandleKeyMsg(msg)
		if handled {
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		headerHeight := 3
		footerHeight := 2
		viewportHeight := m.height - headerHeight - footerHeight
		if viewportHeight < 1 {
			viewportHeight = 1
		}

		if !m.viewportReady {
			m.benchViewport = viewport.New(m.width, viewportHeight)
			m.benchViewport.YPosition = headerHeight
			m.viewportReady = true
		} else {
			m.benchViewport.Width = m.width
			m.benchViewport.Height = viewportHeight
		}

		if m.viewMode == ViewBenchmark {
			m.benchViewport.SetContent(m.renderBenchmarkContent())
		}

	case tickMsg:
		m.drainSnapshots()
		return m, m.tickCmd()

	case snapshotMsg:
		m.applySnapshot(collect.Snapshot(msg))
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// Report builds the analysis report from the model's current state. Called
// by the monitor command after the program exits.
func (m Model) Report() *report.Report {
	return report.Build(report.BuildInput{
		Window:    m.window,
		Timings:   m.timings,
		Order:     m.order,
		Benchmark: m.benchmark,
	})
}

// tickCmd returns a command that sends a tick after the refresh interval.
func (m Model) tickCmd() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// refreshCmd forces an immediate collection cycle off the tick schedule.
func (m Model) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return snapshotMsg(m.collector.Collect(ctx))
	}
}

// drainSnapshots applies whatever the collector has published since the
// last tick. The channel buffers at most the latest snapshot, so ticks
// between collection cycles are cheap re-renders.
func (m *Model) drainSnapshots() {
	for {
		select {
		case snap := <-m.collector.Snapshots():
			m.applySnapshot(snap)
		default:
			return
		}
	}
}

func (m *Model) applySnapshot(snap collect.Snapshot) {
	m.lastUpdate = snap.Taken
	m.sampleErr = snap.SampleErr

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

	if m.viewMode == ViewBenchmark {
		m.benchViewport.SetContent(m.renderBenchmarkContent())
	}
}

// SecondsSinceUpdate returns how many seconds have passed since the last
// collected snapshot.
func (m Model) SecondsSinceUpdate() int {
	if m.lastUpdate.IsZero() {
		return 0
	}
	return int(time.Since(m.lastUpdate).Seconds())
}

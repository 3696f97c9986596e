package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/patchtools/patchmon/internal/collect"
	"github.com/patchtools/patchmon/internal/config"
	"github.com/patchtools/patchmon/internal/dashboard"
	"github.com/patchtools/patchmon/internal/errors"
	"github.com/patchtools/patchmon/internal/logger"
	"github.com/patchtools/patchmon/internal/metrics"
	"github.com/patchtools/patchmon/internal/plain"
	"github.com/patchtools/patchmon/internal/report"
	"github.com/patchtools/patchmon/internal/ui"
)

// monitorOptions carries the monitor command's flag overrides. Zero values
// fall through to the config file.
type monitorOptions struct {
	resultsDir      string
	interval        time.Duration
	collectInterval time.Duration
	plain           bool
	exportOnly      bool
}

// monitorCommand runs the monitoring loop in the selected variant and
// writes exactly one final report when it stops.
func monitorCommand(opts monitorOptions) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if opts.resultsDir != "" {
		cfg.ResultsDir = config.Expand(opts.resultsDir)
	}
	if opts.interval > 0 {
		cfg.Interval = opts.interval
	}
	if opts.collectInterval > 0 {
		cfg.CollectInterval = opts.collectInterval
	}

	applyColorMode(cfg.Output.Color)

	log := logger.NewEnvLogger("[monitor]")
	collector := collect.New(cfg.ResultsDir, cfg.Methods, cfg.CollectInterval)
	collector.SetLogger(log)

	switch {
	case opts.exportOnly:
		return exportOnce(collector, cfg)
	case opts.plain || !term.IsTerminal(int(os.Stdout.Fd())):
		return runPlain(collector, cfg)
	default:
		return runDashboard(collector, cfg)
	}
}

// loadConfig resolves the config honoring the global --config flag.
func loadConfig() (*config.Config, error) {
	if configFlag == "" {
		return config.LoadOrDefault()
	}
	path, err := config.Find(configFlag)
	if err != nil {
		return nil, err
	}
	return config.Load(path)
}

// applyColorMode maps the configured color mode onto the renderer.
func applyColorMode(mode string) {
	if noColorFlag {
		return // --no-color already applied
	}
	switch mode {
	case "never":
		ui.DisableColors()
	case "auto":
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			ui.DisableColors()
		}
	}
}

// exportOnce collects a single snapshot and writes the report immediately.
func exportOnce(collector *collect.Collector, cfg *config.Config) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	snap := collector.Collect(ctx)

	input := report.BuildInput{
		Timings:   snap.Timings,
		Order:     snap.Order,
		Benchmark: snap.Benchmark,
	}
	if snap.Sample != nil {
		w := metrics.NewWindow(cfg.WindowSize)
		w.Push(*snap.Sample)
		input.Window = w
	}

	return writeFinalReport(report.Build(input), cfg, report.DashboardPrefix)
}

// runDashboard runs the full-screen variant. The collector feeds the model
// from a background goroutine; the model drains it on its own cadence.
func runDashboard(collector *collect.Collector, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	collector.Start(ctx)
	defer collector.Stop()

	model := dashboard.NewModel(collector, cfg.WindowSize, cfg.Interval)
	p := tea.NewProgram(model, tea.WithAltScreen())

	finalModel, err := p.Run()
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard terminated unexpectedly",
			"Try 'patchmon monitor --plain' if your terminal lacks TUI support.")
	}

	collector.Stop()

	if m, ok := finalModel.(dashboard.Model); ok {
		return writeFinalReport(m.Report(), cfg, report.DashboardPrefix)
	}
	return nil
}

// runPlain runs the single-threaded text variant. The first interrupt
// stops the loop and writes the report; a second interrupt during
// shutdown force-terminates.
func runPlain(collector *collect.Collector, cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	go func() {
		<-sigCh
		cancel()
		<-sigCh
		fmt.Fprintln(os.Stderr, "\nforced exit, report not written")
		os.Exit(130)
	}()

	// The plain loop collects on every iteration, so it runs at the
	// collection cadence rather than the dashboard's faster refresh.
	monitor := plain.New(collector, cfg.WindowSize, cfg.CollectInterval, os.Stdout)
	monitor.SetLogger(logger.NewEnvLogger("[monitor]"))

	if err := monitor.Run(ctx); err != nil {
		return err
	}

	fmt.Println("\nStopping, writing report...")
	return writeFinalReport(monitor.Report(), cfg, report.PlainPrefix)
}

func writeFinalReport(r *report.Report, cfg *config.Config, prefix string) error {
	writer := report.NewWriter(cfg.ResultsDir, prefix)
	path, err := writer.Write(r)
	if err != nil {
		return err
	}
	fmt.Printf("Report written: %s\n", path)
	return nil
}

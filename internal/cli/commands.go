package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/patchtools/patchmon/internal/errors"
)

// Command-specific flags
var (
	monitorResultsDirFlag      string
	monitorIntervalFlag        string
	monitorCollectIntervalFlag string
	monitorPlainFlag           bool
	monitorExportOnlyFlag      bool
	reportListFlag             bool
	initResultsDirFlag         string
	initForce                  bool
)

// monitorCmd starts the live monitoring view.
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live dashboard of system metrics and patch timings",
	Long: `Start the live monitoring view for a running patch benchmark.

By default this is a full-screen dashboard with sparkline history for
CPU, memory, disk, and network, plus per-method patch timing statistics.
With --plain (or when stdout is not a terminal) a simple text view is
printed instead.

Quitting writes a timestamped JSON report to the results directory.

Keyboard shortcuts (dashboard):
  q / Ctrl+C  Quit and write report
  r           Force refresh
  b           Toggle benchmark detail
  ?           Show help

Examples:
  patchmon monitor
  patchmon monitor --results-dir /tmp/patch_results
  patchmon monitor --plain --interval 2s
  patchmon monitor --export-only`,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := monitorOptions{
			resultsDir: monitorResultsDirFlag,
			plain:      monitorPlainFlag,
			exportOnly: monitorExportOnlyFlag,
		}

		var err error
		opts.interval, err = parseIntervalFlag(monitorIntervalFlag, 100*time.Millisecond)
		if err != nil {
			return err
		}
		opts.collectInterval, err = parseIntervalFlag(monitorCollectIntervalFlag, time.Second)
		if err != nil {
			return err
		}

		return monitorCommand(opts)
	},
}

// reportCmd inspects previously written reports.
var reportCmd = &cobra.Command{
	Use:   "report [path]",
	Short: "Show a monitoring report",
	Long: `Display a previously written analysis report.

Without arguments the most recent report in the results directory is
shown. Pass a path to show a specific report, or --list to enumerate
all reports.

Examples:
  patchmon report
  patchmon report /tmp/patch_results/analysis_report_20260831_120005.json
  patchmon report --list`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := ""
		if len(args) == 1 {
			path = args[0]
		}
		return reportCommand(path, reportListFlag)
	},
}

// initCmd creates a new .patchmon.yaml configuration.
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .patchmon.yaml configuration",
	Long: `Initialize a new patchmon configuration file.

Creates a .patchmon.yaml in the current directory, guiding you through
the results directory and tracked patch methods with interactive
prompts.

Examples:
  patchmon init
  patchmon init --results-dir /tmp/patch_results
  patchmon init --force`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initResultsDirFlag, initForce)
	},
}

// completionCmd generates shell completion scripts.
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for patchmon.

Examples:
  # Bash
  patchmon completion bash > /etc/bash_completion.d/patchmon

  # Zsh
  patchmon completion zsh > "${fpath[1]}/_patchmon"

  # Fish
  patchmon completion fish > ~/.config/fish/completions/patchmon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(os.Stdout)
		case "zsh":
			return rootCmd.GenZshCompletion(os.Stdout)
		case "fish":
			return rootCmd.GenFishCompletion(os.Stdout, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(os.Stdout)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

// parseIntervalFlag parses a duration flag, enforcing a floor. An empty
// value means "use the config file value" and parses to zero.
func parseIntervalFlag(value string, minimum time.Duration) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", value),
			"Use a valid duration like 1s, 5s, or 1m")
	}
	if parsed < minimum {
		return 0, errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval %s too short", parsed),
			fmt.Sprintf("Minimum is %s", minimum))
	}
	return parsed, nil
}

func init() {
	monitorCmd.Flags().StringVar(&monitorResultsDirFlag, "results-dir", "", "benchmark results directory")
	monitorCmd.Flags().StringVar(&monitorIntervalFlag, "interval", "", "display refresh interval (e.g., 1s, 2s)")
	monitorCmd.Flags().StringVar(&monitorCollectIntervalFlag, "collect-interval", "", "metrics collection interval, also the --plain loop cadence (e.g., 5s)")
	monitorCmd.Flags().BoolVar(&monitorPlainFlag, "plain", false, "use the plain-text view instead of the dashboard")
	monitorCmd.Flags().BoolVar(&monitorExportOnlyFlag, "export-only", false, "collect once, write a report, and exit")

	reportCmd.Flags().BoolVar(&reportListFlag, "list", false, "list all reports in the results directory")

	initCmd.Flags().StringVar(&initResultsDirFlag, "results-dir", "", "pre-specify the results directory")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")

	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}

// Package cli wires the patchmon commands: the monitor loop in its two
// variants, report inspection, config initialization, and the usual
// version/completion plumbing.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/patchtools/patchmon/internal/ui"
)

// Global flags
var (
	configFlag  string
	noColorFlag bool
)

// rootCmd is the base command for patchmon.
var rootCmd = &cobra.Command{
	Use:   "patchmon",
	Short: "Monitor patch-application benchmarks in real time",
	Long: `patchmon watches a patch benchmark as it runs: it samples system
metrics with standard OS tools, tails the per-method timing logs, and
summarizes the benchmark results, live in your terminal.

On exit it writes a JSON analysis report with per-method statistics
and a recommendation for the fastest patch method.

Examples:
  patchmon monitor
  patchmon monitor --plain
  patchmon report`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if noColorFlag {
			ui.DisableColors()
		}
	},
}

// Execute runs the root command. Errors are printed in their structured
// form and mapped to exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to .patchmon.yaml")
	rootCmd.PersistentFlags().BoolVar(&noColorFlag, "no-color", false, "disable colored output")
}

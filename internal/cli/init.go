package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/patchtools/patchmon/internal/config"
	"github.com/patchtools/patchmon/internal/errors"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	ResultsDir     string // Pre-specified results directory
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
}

// Init creates a new .patchmon.yaml configuration file.
func Init(opts InitOptions) error {
	configPath := filepath.Join(".", config.ConfigFileName)

	// Check for existing config
	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		var overwrite bool

		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}

		if !overwrite {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	cfg := config.DefaultConfig()
	resultsDir := opts.ResultsDir
	methodsValue := strings.Join(cfg.Methods, ", ")

	if opts.NonInteractive {
		if resultsDir == "" {
			resultsDir = cfg.ResultsDir
		}
	} else {
		if resultsDir == "" {
			resultsDir = cfg.ResultsDir
		}

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Results directory").
					Description("Where the benchmark writes timing logs and its summary CSV").
					Placeholder("/tmp/patch_results").
					Value(&resultsDir).
					Validate(func(s string) error {
						if strings.TrimSpace(s) == "" {
							return fmt.Errorf("results directory is required")
						}
						return nil
					}),
			),
			huh.NewGroup(
				huh.NewInput().
					Title("Patch methods").
					Description("Comma-separated, in priority order (ties go to the first)").
					Placeholder("quilt, git, script").
					Value(&methodsValue).
					Validate(func(s string) error {
						if len(parseMethods(s)) == 0 {
							return fmt.Errorf("at least one method is required")
						}
						return nil
					}),
			),
		)

		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Check terminal compatibility or use --results-dir with --force")
		}
	}

	cfg.ResultsDir = config.Expand(strings.TrimSpace(resultsDir))
	cfg.Methods = parseMethods(methodsValue)

	if err := config.Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(configDocument(cfg))
	if err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to generate config",
			"This shouldn't happen - please report this bug")
	}

	header := `# patchmon configuration
# Run 'patchmon monitor' while your patch benchmark is running
# See 'patchmon monitor --help' for the available views

`
	content := header + string(data)

	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Failed to write config file: %s", configPath),
			"Check directory permissions")
	}

	fmt.Printf("Created %s\n\n", configPath)
	fmt.Println("Next steps:")
	fmt.Println("  patchmon monitor          - Live dashboard")
	fmt.Println("  patchmon monitor --plain  - Plain-text view")
	fmt.Println("  patchmon report           - Show the latest report")

	return nil
}

// yamlConfig mirrors config.Config with durations as strings, so the
// generated file reads "5s" rather than raw nanoseconds.
type yamlConfig struct {
	Version         int      `yaml:"version"`
	ResultsDir      string   `yaml:"results_dir"`
	Interval        string   `yaml:"interval"`
	CollectInterval string   `yaml:"collect_interval"`
	WindowSize      int      `yaml:"window_size"`
	Methods         []string `yaml:"methods"`
	Output          struct {
		Color string `yaml:"color"`
	} `yaml:"output"`
}

func configDocument(cfg *config.Config) yamlConfig {
	doc := yamlConfig{
		Version:         cfg.Version,
		ResultsDir:      cfg.ResultsDir,
		Interval:        cfg.Interval.String(),
		CollectInterval: cfg.CollectInterval.String(),
		WindowSize:      cfg.WindowSize,
		Methods:         cfg.Methods,
	}
	doc.Output.Color = cfg.Output.Color
	return doc
}

// parseMethods splits a comma-separated method list, dropping blanks and
// duplicates while preserving order.
func parseMethods(s string) []string {
	var methods []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(s, ",") {
		method := strings.TrimSpace(part)
		if method == "" || seen[method] {
			continue
		}
		seen[method] = true
		methods = append(methods, method)
	}
	return methods
}

// initCommand is the implementation called by the cobra command.
func initCommand(resultsDirFlag string, force bool) error {
	return Init(InitOptions{
		ResultsDir: resultsDirFlag,
		Overwrite:  force,
	})
}

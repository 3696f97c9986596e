package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Config represents the complete .patchmon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// ResultsDir is the directory containing the benchmark outputs:
	// patch_timing_<method>.log files and benchmark_summary.csv.
	// Reports are written here too.
	ResultsDir string `yaml:"results_dir" mapstructure:"results_dir"`

	// Interval is the presentation refresh cadence for the dashboard
	// and the loop period of the plain-text monitor.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// CollectInterval is the background sampling cadence. Collection is
	// deliberately slower than presentation so shelling out to OS tools
	// does not dominate the refresh loop.
	CollectInterval time.Duration `yaml:"collect_interval" mapstructure:"collect_interval"`

	// WindowSize bounds the in-memory sample history.
	WindowSize int `yaml:"window_size" mapstructure:"window_size"`

	// Methods lists the patch-application methods to track, in priority
	// order. The order is the tie-break when two methods have equal mean
	// times.
	Methods []string `yaml:"methods" mapstructure:"methods"`

	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:         CurrentConfigVersion,
		ResultsDir:      "/tmp/patch_results",
		Interval:        time.Second,
		CollectInterval: 5 * time.Second,
		WindowSize:      100,
		Methods:         []string{"quilt", "git", "script"},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}

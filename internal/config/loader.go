package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/patchtools/patchmon/internal/errors"
)

const (
	// ConfigFileName is the default config file name.
	ConfigFileName = ".patchmon.yaml"
	// GlobalConfigDir is the directory for global config.
	GlobalConfigDir = ".config/patchmon"
	// GlobalConfigFile is the global config file name.
	GlobalConfigFile = "config.yaml"
)

// Load reads config from the specified path.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if os.IsNotExist(err) {
			return nil, errors.WrapWithCode(err, errors.ErrConfig,
				"Config file not found",
				"Run 'patchmon init' to create one, or specify a path with --config")
		}
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to read config file",
			"Check the file exists and is valid YAML")
	}

	return parseConfig(v, path)
}

// Find locates the config file using the search order:
// 1. Explicit path (from --config flag)
// 2. .patchmon.yaml in current directory
// 3. .patchmon.yaml in parent directories (stops at git root or home)
// 4. ~/.config/patchmon/config.yaml (global defaults)
//
// Returns the path to the config file, or empty string if not found.
func Find(explicit string) (string, error) {
	// 1. Explicit path takes precedence
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			if os.IsNotExist(err) {
				return "", errors.WrapWithCode(err, errors.ErrConfig,
					"Specified config file not found: "+explicit,
					"Check the path is correct")
			}
			return "", errors.WrapWithCode(err, errors.ErrConfig,
				"Cannot access config file: "+explicit,
				"Check file permissions")
		}
		return explicit, nil
	}

	// 2. Current directory
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot determine current directory",
			"Check directory permissions")
	}

	localConfig := filepath.Join(cwd, ConfigFileName)
	if _, err := os.Stat(localConfig); err == nil {
		return localConfig, nil
	}

	// 3. Walk up to parent directories
	home, _ := os.UserHomeDir()
	dir := cwd
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		if home != "" && parent == home {
			// Don't go above home directory
			break
		}
		dir = parent

		configPath := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}

		// Stop at git root
		gitPath := filepath.Join(dir, ".git")
		if _, err := os.Stat(gitPath); err == nil {
			break
		}
	}

	// 4. Global config
	if home != "" {
		globalConfig := filepath.Join(home, GlobalConfigDir, GlobalConfigFile)
		if _, err := os.Stat(globalConfig); err == nil {
			return globalConfig, nil
		}
	}

	return "", nil
}

// LoadOrDefault loads config from the found path, or returns defaults if not
// found. The monitor works without any config file at all.
func LoadOrDefault() (*Config, error) {
	path, err := Find("")
	if err != nil {
		return nil, err
	}

	if path == "" {
		return DefaultConfig(), nil
	}

	return Load(path)
}

// parseConfig converts viper config to our Config struct with defaults merged in.
func parseConfig(v *viper.Viper, path string) (*Config, error) {
	cfg := DefaultConfig()

	setDefaults(v)

	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid config format",
			"Check the YAML syntax in "+path)
	}

	cfg.ResultsDir = Expand(cfg.ResultsDir)

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// setDefaults configures viper defaults merged under explicit settings.
func setDefaults(v *viper.Viper) {
	v.SetDefault("results_dir", "/tmp/patch_results")
	v.SetDefault("interval", "1s")
	v.SetDefault("collect_interval", "5s")
	v.SetDefault("window_size", 100)
	v.SetDefault("methods", []string{"quilt", "git", "script"})
	v.SetDefault("output.color", "auto")
}

// Validate checks the config for errors and returns structured error messages.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but patchmon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Update patchmon to a release that understands this config version.")
	}

	if cfg.ResultsDir == "" {
		return errors.New(errors.ErrConfig,
			"results_dir cannot be empty",
			"Point results_dir at the directory your benchmark writes to.")
	}

	if cfg.Interval < 100*time.Millisecond {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Interval too short: %s", cfg.Interval),
			"Use at least 100ms; refreshing faster than that just burns CPU.")
	}

	if cfg.CollectInterval < time.Second {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Collect interval too short: %s", cfg.CollectInterval),
			"Use at least 1s; sampling shells out to OS tools on every tick.")
	}

	if cfg.WindowSize <= 0 {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid window_size: %d", cfg.WindowSize),
			"window_size must be a positive sample count (default 100).")
	}

	if len(cfg.Methods) == 0 {
		return errors.New(errors.ErrConfig,
			"No patch methods configured",
			"List at least one method, e.g. quilt, git, or script.")
	}

	seen := make(map[string]bool)
	for _, m := range cfg.Methods {
		if m == "" {
			return errors.New(errors.ErrConfig,
				"Empty method name in methods list",
				"Remove the empty entry from your .patchmon.yaml.")
		}
		if seen[m] {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Duplicate method '%s' in methods list", m),
				"Each method may appear only once.")
		}
		seen[m] = true
	}

	switch cfg.Output.Color {
	case "auto", "always", "never":
	default:
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("Invalid output.color: %q", cfg.Output.Color),
			"Use one of: auto, always, never.")
	}

	return nil
}

// Expand replaces ~ and environment variables in a path.
func Expand(path string) string {
	if path == "" {
		return path
	}

	if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			return home
		}
	}

	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	}

	return os.ExpandEnv(path)
}

// Package config provides layered configuration for v8lens: defaults,
// then an optional config file, then V8LENS_* environment variables,
// then CLI flags — in that order of increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the v8lens CLI and TUI.
type Config struct {
	Analysis AnalysisConfig `mapstructure:"analysis"`
	Log      LogConfig      `mapstructure:"log"`
}

// AnalysisConfig controls the analysis passes themselves.
type AnalysisConfig struct {
	// MaxPaths bounds graph.RootPathIndex.PathsTo's enumeration, the
	// default for the "explain" CLI command's --max-paths flag.
	MaxPaths int `mapstructure:"max_paths"`
	// IncludeHiddenClasses is the default for
	// analyze.ObjectDuplicateConfig.IncludeHiddenClasses.
	IncludeHiddenClasses bool `mapstructure:"include_hidden_classes"`
	// TopN is the default row count for "dominators"/"duplicates"
	// report output.
	TopN int `mapstructure:"top_n"`
}

// LogConfig controls the logrus logger wired up at process startup.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // trace, debug, info, warn, error
	Format string `mapstructure:"format"` // text or json
}

// Load reads configuration from configPath (if non-empty) or the
// standard search locations, then layers V8LENS_* environment
// variables on top, matching the file -> env -> flag precedence the
// CLI's persistent flags apply last (cmd/v8lens/cmd/root.go). A nested
// key maps to its variable with dots turned into underscores:
// analysis.max_paths is read from V8LENS_ANALYSIS_MAX_PATHS.
func Load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("v8lens")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/v8lens")
		v.AddConfigPath("/etc/v8lens")
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// No config file is the common case; defaults stand.
		} else if os.IsNotExist(err) {
			// An explicit --config path that doesn't exist: still fall
			// back to defaults+env rather than failing the whole run.
		} else {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("v8lens")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("analysis.max_paths", 20)
	v.SetDefault("analysis.include_hidden_classes", false)
	v.SetDefault("analysis.top_n", 50)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks field-level invariants viper's layering can't
// enforce on its own (a malformed env override shouldn't silently
// wedge analysis in a broken state).
func (c *Config) Validate() error {
	if c.Analysis.MaxPaths < 1 {
		return fmt.Errorf("analysis.max_paths must be at least 1, got %d", c.Analysis.MaxPaths)
	}
	if c.Analysis.TopN < 1 {
		return fmt.Errorf("analysis.top_n must be at least 1, got %d", c.Analysis.TopN)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be \"text\" or \"json\", got %q", c.Log.Format)
	}
	return nil
}

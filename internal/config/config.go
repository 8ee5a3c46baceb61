// Package config holds tool configuration. Defaults come from the
// environment; an optional capsule.toml project file overrides them.
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"github.com/pelletier/go-toml/v2"
)

// Config holds all tool configuration.
type Config struct {
	Build   BuildConfig   `toml:"build"`
	Watch   WatchConfig   `toml:"watch"`
	Logging LogConfig     `toml:"logging"`
	Sandbox SandboxConfig `toml:"sandbox"`
}

// BuildConfig holds bundling and postprocessing configuration.
type BuildConfig struct {
	SourceMaps    bool   `envconfig:"CAPSULE_SOURCE_MAPS" default:"false" toml:"source_maps"`
	StripComments bool   `envconfig:"CAPSULE_STRIP_COMMENTS" default:"false" toml:"strip_comments"`
	ReportPath    string `envconfig:"CAPSULE_REPORT" default:"" toml:"report"`
}

// WatchConfig holds continuous-rebuild configuration.
type WatchConfig struct {
	// RebuildsPerSecond caps how often file events may trigger a rebuild.
	RebuildsPerSecond float64  `envconfig:"CAPSULE_WATCH_RPS" default:"2" toml:"rebuilds_per_second"`
	Ignore            []string `envconfig:"CAPSULE_WATCH_IGNORE" default:"**/node_modules/**,**/.git/**" toml:"ignore"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"CAPSULE_LOG_LEVEL" default:"info" toml:"level"`
	Development bool   `envconfig:"CAPSULE_LOG_DEV" default:"false" toml:"development"`
}

// SandboxConfig holds verification-run configuration.
type SandboxConfig struct {
	TimeoutMS int `envconfig:"CAPSULE_SANDBOX_TIMEOUT_MS" default:"5000" toml:"timeout_ms"`
}

// Load builds configuration from environment variables, then applies the
// TOML file at path when path is non-empty.
func Load(path string) (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	return &cfg, nil
}

// Default returns configuration with the documented defaults, ignoring the
// environment.
func Default() *Config {
	return &Config{
		Build: BuildConfig{},
		Watch: WatchConfig{
			RebuildsPerSecond: 2,
			Ignore:            []string{"**/node_modules/**", "**/.git/**"},
		},
		Logging: LogConfig{Level: "info"},
		Sandbox: SandboxConfig{TimeoutMS: 5000},
	}
}

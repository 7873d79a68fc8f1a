// Package config loads server configuration from a yaml file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds server settings. Flags override file values; see the cli
// package.
type Config struct {
	// Listen is the HTTP listen address, host:port.
	Listen string `yaml:"listen"`

	// Logdir is the root directory of recorded runs. Mutually exclusive
	// with DB.
	Logdir string `yaml:"logdir"`

	// DB is the path to a sqlite event store. Mutually exclusive with
	// Logdir.
	DB string `yaml:"db"`

	// LogLevel is a zerolog level name: debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when no file and no flags are
// given.
func Default() Config {
	return Config{
		Listen:   ":6006",
		LogLevel: "info",
	}
}

// Load reads a yaml config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field consistency. An empty source is allowed here; the
// serve command requires one after flags are merged.
func (c Config) Validate() error {
	if c.Logdir != "" && c.DB != "" {
		return fmt.Errorf("logdir and db are mutually exclusive")
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log_level %q", c.LogLevel)
	}
	if c.Listen == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	return nil
}

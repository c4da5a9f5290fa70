// Package config loads the optional durt configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds flag defaults read from the configuration file.
// Keys mirror the long flag names.
type Config struct {
	Binary     bool     `yaml:"binary"`
	Percentage bool     `yaml:"percentage"`
	Min        *float64 `yaml:"min"`
	Total      bool     `yaml:"total"`
	Sort       bool     `yaml:"sort"`
	ByPath     bool     `yaml:"by-path"`
	Reverse    bool     `yaml:"reverse"`
	SameFS     bool     `yaml:"same-fs"`
	Output     string   `yaml:"output"`
	Jobs       int      `yaml:"jobs"`
	NoColor    bool     `yaml:"no-color"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Output: "table",
	}
}

// DefaultPath returns the location searched when no file is given explicitly.
// It returns an empty string when the user configuration directory is unknown.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "durt", "config.yaml")
}

// Load reads the configuration at path. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), nil
		}

		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file %q: %w", path, err)
	}

	if cfg.Output == "" {
		cfg.Output = "table"
	}

	if cfg.Jobs < 0 {
		return nil, fmt.Errorf("config file %q: jobs cannot be negative", path)
	}

	return cfg, nil
}

// Package config loads kondo's YAML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lexandro/kondo/ignore"
	"gopkg.in/yaml.v3"
)

// Color modes.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config represents kondo configuration options
type Config struct {
	// Workers is the traversal worker count (0 = max(NumCPU, 4))
	Workers int `yaml:"workers"`

	// LogLevel sets the logging verbosity (debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// LogFile is where logs are written (empty = stderr)
	LogFile string `yaml:"log_file"`

	// IgnoredDirs are directory names or doublestar globs never descended into
	IgnoredDirs []string `yaml:"ignored_dirs"`

	// Color controls terminal colors: auto, always or never
	Color string `yaml:"color"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		Workers:  0,
		LogLevel: "warn",
		Color:    ColorAuto,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/kondo/config.yaml, or the platform
// equivalent.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "kondo", "config.yaml"), nil
}

// LoadConfig loads configuration from the specified file path.
// A missing file yields the defaults; a malformed file is an error.
// Keys absent from the file keep their default values.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// MergeWithFlags merges CLI flags into the configuration.
// Non-nil flag values override configuration values; ignored directories
// given on the command line are added to those from the file.
func (c *Config) MergeWithFlags(workers *int, logLevel *string, logFile *string, color *string, ignoredDirs []string) {
	if workers != nil {
		c.Workers = *workers
	}
	if logLevel != nil {
		c.LogLevel = *logLevel
	}
	if logFile != nil {
		c.LogFile = *logFile
	}
	if color != nil {
		c.Color = *color
	}
	c.IgnoredDirs = append(c.IgnoredDirs, ignoredDirs...)
}

// Validate validates the configuration values
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q, must be one of: debug, info, warn, error", c.LogLevel)
	}

	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color %q, must be one of: auto, always, never", c.Color)
	}

	if bad, ok := ignore.ValidatePatterns(c.IgnoredDirs); !ok {
		return fmt.Errorf("invalid ignored_dirs pattern %q", bad)
	}

	return nil
}

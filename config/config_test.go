package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 0, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Empty(t, cfg.LogFile)
	assert.Empty(t, cfg.IgnoredDirs)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	t.Setenv("HOME", "/tmp/home")
	t.Setenv("AppData", "/tmp/appdata")

	path, err := DefaultPath()
	require.NoError(t, err)
	assert.Equal(t, "config.yaml", filepath.Base(path))
	assert.Equal(t, "kondo", filepath.Base(filepath.Dir(path)))
}

func TestLoadConfigValidFile(t *testing.T) {
	path := writeConfig(t, `workers: 8
log_level: debug
log_file: /tmp/kondo.log
ignored_dirs:
  - archive
  - "**/fixtures"
color: never
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/tmp/kondo.log", cfg.LogFile)
	assert.Equal(t, []string{"archive", "**/fixtures"}, cfg.IgnoredDirs)
	assert.Equal(t, ColorNever, cfg.Color)
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := writeConfig(t, "workers: 2\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, ColorAuto, cfg.Color)
}

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMalformed(t *testing.T) {
	path := writeConfig(t, "workers: [not a number\n")

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestMergeWithFlags(t *testing.T) {
	cfg := DefaultConfig()
	cfg.IgnoredDirs = []string{"archive"}

	workers := 3
	level := "info"
	cfg.MergeWithFlags(&workers, &level, nil, nil, []string{"vendor-cache"})

	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.LogFile)
	assert.Equal(t, ColorAuto, cfg.Color)
	assert.Equal(t, []string{"archive", "vendor-cache"}, cfg.IgnoredDirs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"negative workers", func(c *Config) { c.Workers = -1 }, "workers"},
		{"unknown level", func(c *Config) { c.LogLevel = "trace" }, "log_level"},
		{"unknown color", func(c *Config) { c.Color = "sometimes" }, "color"},
		{"bad pattern", func(c *Config) { c.IgnoredDirs = []string{"a/["} }, "ignored_dirs"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

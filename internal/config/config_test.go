// SPDX-License-Identifier: AGPL-3.0-only
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()

	assert.Empty(t, cfg.Output)
	assert.Empty(t, cfg.TemplateFile)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 300*time.Millisecond, cfg.Watch.Debounce)
	assert.Empty(t, cfg.Example.Format)
	assert.Equal(t, "all", cfg.Example.Mode)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromPathNoConfigFile(t *testing.T) {
	t.Parallel()

	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPathYAMLConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `
output: docs/api.md
title: Public API
templateFile: api.gotmpl
timeout: 5s
logLevel: debug
example:
  format: yaml
  mode: required
watch:
  debounce: 1s
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "openapi2md.yaml"), []byte(content), 0o600))

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)

	assert.Equal(t, "docs/api.md", cfg.Output)
	assert.Equal(t, "Public API", cfg.Title)
	assert.Equal(t, "api.gotmpl", cfg.TemplateFile)
	assert.Equal(t, "yaml", cfg.Example.Format)
	assert.Equal(t, "required", cfg.Example.Mode)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, time.Second, cfg.Watch.Debounce)
}

func TestLoadFromPathHiddenJSONConfigFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	content := `{"output": "api.md", "logLevel": "warn"}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".openapi2md.json"), []byte(content), 0o600))

	cfg, err := LoadFromPath(dir)
	require.NoError(t, err)

	assert.Equal(t, "api.md", cfg.Output)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
}

func TestLoadExplicitPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: out.md\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "out.md", cfg.Output)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "openapi2md.yaml")
	require.NoError(t, os.WriteFile(path, []byte("output: [unterminated\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("OPENAPI2MD_OUTPUT", "from-env.md")
	t.Setenv("OPENAPI2MD_WATCH_DEBOUNCE", "2s")

	cfg, err := LoadFromPath(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "from-env.md", cfg.Output)
	assert.Equal(t, 2*time.Second, cfg.Watch.Debounce)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*Config)
		fields []string
	}{
		{name: "defaults"},
		{
			name:   "unknown log level",
			mutate: func(c *Config) { c.LogLevel = "verbose" },
			fields: []string{"logLevel"},
		},
		{
			name: "unknown example settings",
			mutate: func(c *Config) {
				c.Example.Format = "toml"
				c.Example.Mode = "some"
			},
			fields: []string{"example.format", "example.mode"},
		},
		{
			name: "negative durations",
			mutate: func(c *Config) {
				c.Timeout = -time.Second
				c.Watch.Debounce = -time.Second
			},
			fields: []string{"timeout", "watch.debounce"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := Default()
			if tt.mutate != nil {
				tt.mutate(cfg)
			}

			err := cfg.Validate()
			if len(tt.fields) == 0 {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			require.ErrorAs(t, err, &errs)
			require.Len(t, errs, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, errs[i].Field)
			}
		})
	}
}

func TestValidationErrorsMessage(t *testing.T) {
	t.Parallel()

	single := ValidationErrors{{Field: "timeout", Message: "must not be negative"}}
	assert.Equal(t, "config validation error: timeout: must not be negative", single.Error())

	multiple := ValidationErrors{
		{Field: "timeout", Message: "bad"},
		{Field: "logLevel", Message: "worse"},
	}
	assert.Contains(t, multiple.Error(), "  - timeout: bad\n")
	assert.Contains(t, multiple.Error(), "  - logLevel: worse\n")
}

func TestSlogLevel(t *testing.T) {
	t.Parallel()

	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "warn"}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{}).SlogLevel())
}

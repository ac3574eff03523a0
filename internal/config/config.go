// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/openapi2md

// Package config loads openapi2md CLI settings from file and environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, for example OPENAPI2MD_OUTPUT.
const EnvPrefix = "OPENAPI2MD"

const (
	defaultTimeout  = 30 * time.Second
	defaultDebounce = 300 * time.Millisecond
	defaultLogLevel = "info"

	defaultExampleMode = "all"
)

// configFileNames are searched in order when no explicit path is given.
var configFileNames = []string{
	"openapi2md.yaml",
	"openapi2md.json",
	".openapi2md.yaml",
	".openapi2md.json",
}

var (
	supportedLogLevels     = []string{"debug", "info", "warn", "error"}
	supportedExampleFormat = []string{"json", "yaml"}
	supportedExampleMode   = []string{"all", "required"}
)

// Config holds CLI settings. Command line flags override these values.
type Config struct {
	// Output is the markdown file path; stdout when empty.
	Output string `mapstructure:"output" yaml:"output" json:"output"`

	// Title overrides the document heading taken from info.title.
	Title string `mapstructure:"title" yaml:"title" json:"title"`

	// TemplateFile is a custom main template file.
	TemplateFile string `mapstructure:"templateFile" yaml:"templateFile" json:"templateFile"`

	// Timeout bounds fetching a remote specification.
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout" json:"timeout"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"logLevel" yaml:"logLevel" json:"logLevel"`

	Example ExampleConfig `mapstructure:"example" yaml:"example" json:"example"`

	Watch WatchConfig `mapstructure:"watch" yaml:"watch" json:"watch"`
}

// ExampleConfig configures generated example payloads for models.
type ExampleConfig struct {
	// Format is json or yaml; empty disables generated examples.
	Format string `mapstructure:"format" yaml:"format" json:"format"`

	// Mode is all or required.
	Mode string `mapstructure:"mode" yaml:"mode" json:"mode"`
}

// WatchConfig configures re-rendering on input changes.
type WatchConfig struct {
	// Debounce delays a render until writes to the input settle.
	Debounce time.Duration `mapstructure:"debounce" yaml:"debounce" json:"debounce"`
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation error: %s: %s", e.Field, e.Message)
}

// ValidationErrors represents multiple validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	if len(e) == 1 {
		return e[0].Error()
	}

	var sb strings.Builder
	sb.WriteString("config validation errors:\n")
	for _, err := range e {
		sb.WriteString("  - ")
		sb.WriteString(err.Field)
		sb.WriteString(": ")
		sb.WriteString(err.Message)
		sb.WriteString("\n")
	}

	return sb.String()
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		Timeout:  defaultTimeout,
		LogLevel: defaultLogLevel,
		Example: ExampleConfig{
			Mode: defaultExampleMode,
		},
		Watch: WatchConfig{
			Debounce: defaultDebounce,
		},
	}
}

// Load reads configuration from configPath, or from the first of
// openapi2md.yaml, openapi2md.json, .openapi2md.yaml, .openapi2md.json in
// the working directory. Environment variables prefixed with OPENAPI2MD_
// override file values.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = findConfigFile(".")
	}

	return load(configPath)
}

// LoadFromPath loads the first known config file found in dir.
func LoadFromPath(dir string) (*Config, error) {
	return load(findConfigFile(dir))
}

// findConfigFile returns the first existing config file in dir, or "".
func findConfigFile(dir string) string {
	for _, name := range configFileNames {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

func load(configPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			var configFileNotFoundError viper.ConfigFileNotFoundError
			if !errors.As(err, &configFileNotFoundError) {
				return nil, fmt.Errorf("failed to read config file: %w", err)
			}
		}

		slog.Debug("loaded config file", "path", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets the default values for viper.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output", "")
	v.SetDefault("title", "")
	v.SetDefault("templateFile", "")
	v.SetDefault("timeout", defaultTimeout)
	v.SetDefault("logLevel", defaultLogLevel)
	v.SetDefault("example.format", "")
	v.SetDefault("example.mode", defaultExampleMode)
	v.SetDefault("watch.debounce", defaultDebounce)
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if c.LogLevel != "" && !slices.Contains(supportedLogLevels, strings.ToLower(c.LogLevel)) {
		errs = append(errs, ValidationError{
			Field:   "logLevel",
			Message: fmt.Sprintf("unsupported level %q, must be one of: %s", c.LogLevel, strings.Join(supportedLogLevels, ", ")),
		})
	}

	if c.Example.Format != "" && !slices.Contains(supportedExampleFormat, strings.ToLower(c.Example.Format)) {
		errs = append(errs, ValidationError{
			Field:   "example.format",
			Message: fmt.Sprintf("unsupported format %q, must be one of: %s", c.Example.Format, strings.Join(supportedExampleFormat, ", ")),
		})
	}

	if c.Example.Mode != "" && !slices.Contains(supportedExampleMode, strings.ToLower(c.Example.Mode)) {
		errs = append(errs, ValidationError{
			Field:   "example.mode",
			Message: fmt.Sprintf("unsupported mode %q, must be one of: %s", c.Example.Mode, strings.Join(supportedExampleMode, ", ")),
		})
	}

	if c.Timeout < 0 {
		errs = append(errs, ValidationError{
			Field:   "timeout",
			Message: "must not be negative",
		})
	}

	if c.Watch.Debounce < 0 {
		errs = append(errs, ValidationError{
			Field:   "watch.debounce",
			Message: "must not be negative",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// SlogLevel maps LogLevel to a slog level; unknown values map to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

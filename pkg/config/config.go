// Package config loads focustrap settings from YAML files and the
// environment.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
	"github.com/odvcencio/focustrap/pkg/ui/focusable"
)

// Config is the complete configuration.
type Config struct {
	Modal   ModalConfig   `yaml:"modal"`
	Log     LogConfig     `yaml:"log"`
	Metrics MetricsConfig `yaml:"metrics"`
	Tracing TracingConfig `yaml:"tracing"`
	UI      UIConfig      `yaml:"ui"`
}

// ModalConfig controls dialog behavior.
type ModalConfig struct {
	// RootID is the id of the overlay root element.
	RootID string `yaml:"root_id"`
	// Selectors override the focusable predicate. Empty keeps the defaults.
	Selectors            []string `yaml:"selectors"`
	CloseOnEscape        bool     `yaml:"close_on_escape"`
	CloseOnBackdrop      bool     `yaml:"close_on_backdrop"`
	PreventEscapeDefault bool     `yaml:"prevent_escape_default"`
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level string `yaml:"level"`
	// File receives JSON logs; the terminal owns stdout.
	File string `yaml:"file"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// TracingConfig controls span export.
type TracingConfig struct {
	Enabled bool   `yaml:"enabled"`
	File    string `yaml:"file"`
}

// UIConfig controls the terminal runtime.
type UIConfig struct {
	TickRate     time.Duration `yaml:"tick_rate"`
	QuitOnEscape bool          `yaml:"quit_on_escape"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Modal: ModalConfig{
			RootID:               "modal-root",
			CloseOnEscape:        true,
			CloseOnBackdrop:      true,
			PreventEscapeDefault: true,
		},
		Log: LogConfig{
			Level: "info",
			File:  filepath.Join(os.TempDir(), "focustrap.log"),
		},
		Metrics: MetricsConfig{
			Addr: "127.0.0.1:9464",
		},
		Tracing: TracingConfig{
			File: filepath.Join(os.TempDir(), "focustrap-trace.json"),
		},
		UI: UIConfig{
			TickRate:     0,
			QuitOnEscape: true,
		},
	}
}

// Load loads configuration from default locations with proper precedence:
// defaults, then ~/.focustrap/config.yaml, then ./.focustrap/config.yaml,
// then the environment.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	home, err := os.UserHomeDir()
	if err != nil {
		home = os.Getenv("HOME")
	}
	if home != "" {
		userConfigPath := filepath.Join(home, ".focustrap", "config.yaml")
		if err := loadAndMerge(cfg, userConfigPath); err != nil && !os.IsNotExist(err) {
			return nil, ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "loading user config").
				WithContext("path", userConfigPath)
		}
	}

	projectConfigPath := filepath.Join(".", ".focustrap", "config.yaml")
	if err := loadAndMerge(cfg, projectConfigPath); err != nil && !os.IsNotExist(err) {
		return nil, ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "loading project config").
			WithContext("path", projectConfigPath)
	}

	return finish(cfg)
}

// LoadFromPath loads configuration from a specific file path.
func LoadFromPath(path string) (*Config, error) {
	cfg := DefaultConfig()
	if err := loadAndMerge(cfg, path); err != nil {
		if ftErrors.IsCode(err, ftErrors.ErrCodeConfigParse) {
			return nil, err
		}
		return nil, ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "loading config").
			WithContext("path", path)
	}
	return finish(cfg)
}

func finish(cfg *Config) (*Config, error) {
	applyEnvOverrides(cfg)
	cfg.Log.File = expandHomeDir(cfg.Log.File)
	cfg.Tracing.File = expandHomeDir(cfg.Tracing.File)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnvOverrides applies environment variable overrides
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("FOCUSTRAP_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FOCUSTRAP_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}
	if v := os.Getenv("FOCUSTRAP_SELECTORS"); v != "" {
		cfg.Modal.Selectors = splitList(v)
	}
	if v := os.Getenv("FOCUSTRAP_METRICS_ADDR"); v != "" {
		cfg.Metrics.Addr = v
	}
	if val, ok := envBool("FOCUSTRAP_METRICS"); ok {
		cfg.Metrics.Enabled = val
	}
	if val, ok := envBool("FOCUSTRAP_TRACING"); ok {
		cfg.Tracing.Enabled = val
	}
	if val, ok := envBool("FOCUSTRAP_PREVENT_ESCAPE_DEFAULT"); ok {
		cfg.Modal.PreventEscapeDefault = val
	}
}

// splitList splits on ";" since selectors themselves may contain commas.
func splitList(raw string) []string {
	parts := strings.Split(raw, ";")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func envBool(key string) (bool, bool) {
	val := os.Getenv(key)
	if val == "" {
		return false, false
	}
	switch strings.ToLower(val) {
	case "1", "true", "yes", "on":
		return true, true
	case "0", "false", "no", "off":
		return false, true
	default:
		return false, false
	}
}

func expandHomeDir(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil && strings.TrimSpace(home) != "" {
			return filepath.Join(home, strings.TrimPrefix(path[1:], "/"))
		}
	}
	return path
}

// Validate checks configuration validity
func (c *Config) Validate() error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "warning": true, "error": true}
	if !validLevels[strings.ToLower(strings.TrimSpace(c.Log.Level))] {
		return ftErrors.New(ftErrors.ErrCodeConfigInvalid, "invalid log level (valid: debug, info, warn, error)").
			WithContext("level", c.Log.Level)
	}
	if strings.TrimSpace(c.Modal.RootID) == "" {
		return ftErrors.New(ftErrors.ErrCodeConfigInvalid, "modal.root_id must not be empty")
	}
	if _, err := focusable.New(c.Modal.Selectors...); err != nil {
		return err
	}
	if c.UI.TickRate < 0 {
		return ftErrors.New(ftErrors.ErrCodeConfigInvalid, "ui.tick_rate must not be negative").
			WithContext("tick_rate", c.UI.TickRate.String())
	}
	if c.Metrics.Enabled && strings.TrimSpace(c.Metrics.Addr) == "" {
		return ftErrors.New(ftErrors.ErrCodeConfigInvalid, "metrics.addr is required when metrics are enabled")
	}
	return nil
}

// Resolver compiles the configured focusable predicate.
func (c *Config) Resolver() (*focusable.Resolver, error) {
	return focusable.New(c.Modal.Selectors...)
}

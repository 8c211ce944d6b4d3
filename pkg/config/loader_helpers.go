package config

import (
	"os"

	"gopkg.in/yaml.v3"

	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
)

// loadAndMerge loads a YAML file and merges it into the config.
func loadAndMerge(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var override Config
	if err := yaml.Unmarshal(data, &override); err != nil {
		return ftErrors.Wrap(err, ftErrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return ftErrors.Wrap(err, ftErrors.ErrCodeConfigParse, "parsing YAML").WithContext("path", path)
	}

	mergeConfigs(cfg, &override, raw)
	return nil
}

// mergeConfigs merges override into base. Booleans only override when the
// key is present in raw, so an omitted key keeps a true default.
func mergeConfigs(base, override *Config, raw map[string]any) {
	if override == nil {
		return
	}

	if override.Modal.RootID != "" {
		base.Modal.RootID = override.Modal.RootID
	}
	if boolFieldSet(raw, "modal", "selectors") {
		base.Modal.Selectors = append([]string(nil), override.Modal.Selectors...)
	}
	if boolFieldSet(raw, "modal", "close_on_escape") {
		base.Modal.CloseOnEscape = override.Modal.CloseOnEscape
	}
	if boolFieldSet(raw, "modal", "close_on_backdrop") {
		base.Modal.CloseOnBackdrop = override.Modal.CloseOnBackdrop
	}
	if boolFieldSet(raw, "modal", "prevent_escape_default") {
		base.Modal.PreventEscapeDefault = override.Modal.PreventEscapeDefault
	}

	if override.Log.Level != "" {
		base.Log.Level = override.Log.Level
	}
	if override.Log.File != "" {
		base.Log.File = override.Log.File
	}

	if boolFieldSet(raw, "metrics", "enabled") {
		base.Metrics.Enabled = override.Metrics.Enabled
	}
	if override.Metrics.Addr != "" {
		base.Metrics.Addr = override.Metrics.Addr
	}

	if boolFieldSet(raw, "tracing", "enabled") {
		base.Tracing.Enabled = override.Tracing.Enabled
	}
	if override.Tracing.File != "" {
		base.Tracing.File = override.Tracing.File
	}

	if boolFieldSet(raw, "ui", "tick_rate") {
		base.UI.TickRate = override.UI.TickRate
	}
	if boolFieldSet(raw, "ui", "quit_on_escape") {
		base.UI.QuitOnEscape = override.UI.QuitOnEscape
	}
}

func boolFieldSet(raw map[string]any, path ...string) bool {
	if len(path) == 0 || raw == nil {
		return false
	}
	current := any(raw)
	for _, key := range path {
		m, ok := current.(map[string]any)
		if !ok {
			return false
		}
		val, ok := m[key]
		if !ok {
			return false
		}
		current = val
	}
	return true
}

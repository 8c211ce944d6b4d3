package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/focustrap/pkg/config"
	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.Modal.RootID != "modal-root" {
		t.Fatalf("unexpected root id: %q", cfg.Modal.RootID)
	}
	if !cfg.Modal.CloseOnEscape || !cfg.Modal.CloseOnBackdrop || !cfg.Modal.PreventEscapeDefault {
		t.Fatalf("dismissal defaults should be enabled: %+v", cfg.Modal)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	cfgDir := filepath.Join(dir, ".focustrap")
	if err := os.MkdirAll(cfgDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	path := filepath.Join(cfgDir, "config.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadHierarchy(t *testing.T) {
	home := t.TempDir()
	project := t.TempDir()
	t.Setenv("HOME", home)

	writeConfig(t, home, `
log:
  level: debug
modal:
  close_on_backdrop: false
ui:
  tick_rate: 250ms
`)
	writeConfig(t, project, `
modal:
  root_id: overlay
  selectors: ["button", "[data-focus]"]
`)

	oldWD, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	t.Cleanup(func() {
		_ = os.Chdir(oldWD)
	})
	if err := os.Chdir(project); err != nil {
		t.Fatalf("chdir project: %v", err)
	}

	t.Setenv("FOCUSTRAP_LOG_LEVEL", "warn")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load returned error: %v", err)
	}

	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env log level, got %s", cfg.Log.Level)
	}
	if cfg.Modal.CloseOnBackdrop {
		t.Fatalf("expected user config to disable backdrop close")
	}
	if !cfg.Modal.CloseOnEscape {
		t.Fatalf("omitted boolean should keep its default")
	}
	if cfg.Modal.RootID != "overlay" {
		t.Fatalf("expected project root id, got %s", cfg.Modal.RootID)
	}
	if len(cfg.Modal.Selectors) != 2 || cfg.Modal.Selectors[1] != "[data-focus]" {
		t.Fatalf("unexpected selectors: %v", cfg.Modal.Selectors)
	}
	if cfg.UI.TickRate != 250*time.Millisecond {
		t.Fatalf("unexpected tick rate: %v", cfg.UI.TickRate)
	}
}

func TestLoadFromPathInvalidSelector(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
modal:
  selectors: ["a["]
`)

	_, err := config.LoadFromPath(path)
	if !ftErrors.IsCode(err, ftErrors.ErrCodeSelectorInvalid) {
		t.Fatalf("expected SELECTOR_INVALID, got %v", err)
	}
}

func TestLoadFromPathMalformedYAML(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "modal: [unclosed")

	_, err := config.LoadFromPath(path)
	if !ftErrors.IsCode(err, ftErrors.ErrCodeConfigParse) {
		t.Fatalf("expected CONFIG_PARSE, got %v", err)
	}
}

func TestLoadFromPathMissingFile(t *testing.T) {
	_, err := config.LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if !ftErrors.IsCode(err, ftErrors.ErrCodeConfigLoad) {
		t.Fatalf("expected CONFIG_LOAD, got %v", err)
	}
}

func TestInvalidLogLevelFailsValidation(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Log.Level = "chatty"

	err := cfg.Validate()
	if !ftErrors.IsCode(err, ftErrors.ErrCodeConfigInvalid) {
		t.Fatalf("expected CONFIG_INVALID, got %v", err)
	}
}

func TestMetricsRequireAddr(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Metrics.Enabled = true
	cfg.Metrics.Addr = " "

	if err := cfg.Validate(); err == nil {
		t.Fatal("expected validation error")
	}
}

func TestEnvOverrides(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  level: info\n")
	t.Setenv("FOCUSTRAP_SELECTORS", "button; a[href], area[href]")
	t.Setenv("FOCUSTRAP_METRICS", "yes")
	t.Setenv("FOCUSTRAP_PREVENT_ESCAPE_DEFAULT", "off")

	cfg, err := config.LoadFromPath(path)
	if err != nil {
		t.Fatalf("LoadFromPath: %v", err)
	}

	if len(cfg.Modal.Selectors) != 2 || cfg.Modal.Selectors[1] != "a[href], area[href]" {
		t.Fatalf("unexpected selectors: %q", cfg.Modal.Selectors)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled from env")
	}
	if cfg.Modal.PreventEscapeDefault {
		t.Fatal("expected escape default left alone from env")
	}
	if _, err := cfg.Resolver(); err != nil {
		t.Fatalf("Resolver: %v", err)
	}
}

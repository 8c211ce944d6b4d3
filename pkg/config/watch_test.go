package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/odvcencio/focustrap/pkg/config"
	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
)

type reload struct {
	cfg *config.Config
	err error
}

func startWatch(t *testing.T, path string) <-chan reload {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	reloads := make(chan reload, 8)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, path, func(cfg *config.Config, err error) {
			reloads <- reload{cfg, err}
		})
	}()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("watch returned error: %v", err)
		}
	})
	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)
	return reloads
}

func nextReload(t *testing.T, reloads <-chan reload) reload {
	t.Helper()
	select {
	case r := <-reloads:
		return r
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for config reload")
		return reload{}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "modal:\n  close_on_escape: true\n")
	reloads := startWatch(t, path)

	if err := os.WriteFile(path, []byte("modal:\n  close_on_escape: false\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	r := nextReload(t, reloads)
	if r.err != nil {
		t.Fatalf("reload failed: %v", r.err)
	}
	if r.cfg.Modal.CloseOnEscape {
		t.Fatal("expected close_on_escape=false after reload")
	}
}

func TestWatchReportsInvalidReload(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  level: info\n")
	reloads := startWatch(t, path)

	if err := os.WriteFile(path, []byte("log: [unterminated\n"), 0o644); err != nil {
		t.Fatalf("rewrite config: %v", err)
	}

	r := nextReload(t, reloads)
	if r.cfg != nil {
		t.Fatalf("expected nil config, got %+v", r.cfg)
	}
	if !ftErrors.IsCode(r.err, ftErrors.ErrCodeConfigParse) {
		t.Fatalf("expected CONFIG_PARSE, got %v", r.err)
	}
}

func TestWatchIgnoresSiblingFiles(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "log:\n  level: info\n")
	reloads := startWatch(t, path)

	sibling := filepath.Join(filepath.Dir(path), "notes.txt")
	if err := os.WriteFile(sibling, []byte("x"), 0o644); err != nil {
		t.Fatalf("write sibling: %v", err)
	}

	select {
	case r := <-reloads:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(4 * config.ReloadDebounce):
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	err := config.Watch(context.Background(), filepath.Join(t.TempDir(), "missing", "config.yaml"), func(*config.Config, error) {})
	if !ftErrors.IsCode(err, ftErrors.ErrCodeConfigLoad) {
		t.Fatalf("expected CONFIG_LOAD, got %v", err)
	}
}

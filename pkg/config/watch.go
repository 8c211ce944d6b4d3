package config

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	ftErrors "github.com/odvcencio/focustrap/pkg/errors"
)

// ReloadDebounce coalesces the burst of events editors emit on save.
const ReloadDebounce = 100 * time.Millisecond

// Watch reloads the config at path whenever the file changes and passes
// the result to onChange. A reload that fails to parse or validate is
// reported with a nil config. Watch blocks until ctx is cancelled.
//
// The parent directory is watched so that atomic rename-on-save is seen.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	path = filepath.Clean(expandHomeDir(path))
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "failed to create config watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "failed to watch config directory").
			WithContext("path", path)
	}

	var (
		timer  *time.Timer
		reload <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(ReloadDebounce)
			} else {
				timer.Reset(ReloadDebounce)
			}
			reload = timer.C
		case <-reload:
			reload = nil
			onChange(LoadFromPath(path))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			onChange(nil, ftErrors.Wrap(err, ftErrors.ErrCodeConfigLoad, "config watcher error"))
		}
	}
}

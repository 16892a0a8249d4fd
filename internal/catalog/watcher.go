package catalog

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ReloadFunc is called with the freshly validated catalog after a
// watcher-driven reload.
type ReloadFunc func(*Catalog)

// Watch starts an fsnotify watcher on the catalog file and reloads it on
// change until ctx is cancelled. A reload that fails to parse or validate
// is logged and ignored; the last good catalog stays live.
//
// Editors typically replace files via rename, so the parent directory is
// watched rather than the file itself, and events are debounced.
func Watch(ctx context.Context, path string, logger *slog.Logger, reload ReloadFunc) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		return err
	}

	logger.Info("catalog watcher: started", slog.String("path", path))

	var debounce *time.Timer
	var debounceCh <-chan time.Time

	schedule := func() {
		if debounce == nil {
			debounce = time.NewTimer(200 * time.Millisecond)
			debounceCh = debounce.C
		} else {
			debounce.Reset(200 * time.Millisecond)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if debounce != nil {
				debounce.Stop()
			}
			logger.Info("catalog watcher: stopped")
			return nil

		case <-debounceCh:
			c, loadErr := Load(path)
			if loadErr != nil {
				logger.Warn("catalog watcher: reload failed, keeping previous catalog",
					slog.String("error", loadErr.Error()))
				continue
			}
			logger.Info("catalog watcher: reloaded",
				slog.Int("presets", len(c.Presets)),
				slog.Int("templates", len(c.Templates)))
			if reload != nil {
				reload(c)
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error("catalog watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}

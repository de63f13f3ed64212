package spreadsheet

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/jbeshir/badge-desk/internal/domain"
)

// Watcher calls OnChange whenever the roster file is written, created or renamed into place.
// Bursts of events within Debounce of each other trigger a single call.
type Watcher struct {
	Path     string
	Debounce time.Duration
	OnChange func(ctx context.Context) error
}

// Run watches until ctx is cancelled. The parent directory is watched rather than the file
// itself, since spreadsheet tools usually save by replacing the file.
func (w *Watcher) Run(ctx context.Context) error {
	logger := domain.LoggerFromContext(ctx)

	target, err := filepath.Abs(w.Path)
	if err != nil {
		return fmt.Errorf("resolving roster path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(target), err)
	}

	logger.InfoContext(ctx, "watching roster file for changes", "path", target)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.DebugContext(ctx, "roster file changed", "op", event.Op.String())
			timer.Reset(w.Debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.WarnContext(ctx, "file watcher error", "error", err)

		case <-timer.C:
			if err := w.OnChange(ctx); err != nil {
				logger.ErrorContext(ctx, "unable to reload roster after file change", "error", err)
			}
		}
	}
}

package report

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// EventCallback is called with the bare filename of a newly written report.
type EventCallback func(filename string)

// Watch starts an fsnotify watcher on the reports directory and invokes cb
// for every PDF that lands there, until ctx is cancelled. The directory is
// created if it does not exist yet.
func Watch(ctx context.Context, dir string, logger *slog.Logger, cb EventCallback) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(dir); err != nil {
		return err
	}
	logger.Info("report watcher: started", slog.String("dir", dir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("report watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if !strings.EqualFold(filepath.Ext(ev.Name), ".pdf") {
				continue
			}
			logger.Debug("report watcher: new report", slog.String("file", ev.Name))
			if cb != nil {
				cb(filepath.Base(ev.Name))
			}

		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("report watcher: error", slog.String("error", werr.Error()))
		}
	}
}

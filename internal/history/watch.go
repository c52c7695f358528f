package history

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 100 * time.Millisecond

// Watch calls cb after the history file is created, written, replaced or
// removed, until ctx is cancelled. Bursts of events are coalesced.
//
// The parent directory is watched rather than the file itself because
// Append replaces the file by renaming a temporary file over it.
func (s *Store) Watch(ctx context.Context, cb func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("history: new watcher: %w", err)
	}
	defer w.Close()

	dir := filepath.Dir(s.abs)
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("history: watch %s: %w", dir, err)
	}
	s.logger.Debug("history: watching", slog.String("path", s.path))

	var timer *time.Timer
	var fire <-chan time.Time
	schedule := func() {
		if timer == nil {
			timer = time.NewTimer(watchDebounce)
			fire = timer.C
		} else {
			timer.Reset(watchDebounce)
		}
	}

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			s.logger.Debug("history: watch stopped")
			return nil

		case <-fire:
			if cb != nil {
				cb()
			}

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != s.abs {
				continue
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Rename|fsnotify.Remove) != 0 {
				schedule()
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("history: watcher error", slog.String("error", watchErr.Error()))
		}
	}
}

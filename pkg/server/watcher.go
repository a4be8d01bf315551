package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DebounceInterval collapses bursts of file events into one reload
const DebounceInterval = 300 * time.Millisecond

// Watch starts watching paths for changes. Each change flushes the content
// memo and tells live-reload clients to reload. Files are watched through
// their parent directory so editors that save by rename are still seen.
// Watching stops when ctx is done.
func (s *Server) Watch(ctx context.Context, paths ...string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("could not create file watcher: %w", err)
	}

	watched := make(map[string]bool)
	for _, path := range paths {
		info, err := os.Stat(path)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			watcher.Close()
			return fmt.Errorf("could not stat path %s: %w", path, err)
		}

		dir := filepath.Clean(path)
		if !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if watched[dir] {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return fmt.Errorf("could not watch %s: %w", dir, err)
		}
		watched[dir] = true
		s.logger.Info("Watching directory", zap.String("dir", dir))
	}

	go s.watchLoop(ctx, watcher)
	return nil
}

func (s *Server) watchLoop(ctx context.Context, watcher *fsnotify.Watcher) {
	defer watcher.Close()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			s.logger.Debug("Change detected", zap.String("path", event.Name))
			if timer == nil {
				timer = time.NewTimer(DebounceInterval)
			} else {
				timer.Reset(DebounceInterval)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			s.Reload()
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			s.logger.Warn("Watcher error", zap.Error(err))
		}
	}
}

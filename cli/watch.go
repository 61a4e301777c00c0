package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Editors often write files in multiple steps.
const debounceDelay = 100 * time.Millisecond

// watchFiles calls onChange after paths change, until ctx is done. Bursts
// of events within debounceDelay result in a single call. onChange never
// runs concurrently with itself.
func watchFiles(ctx context.Context, log *slog.Logger, paths []string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	for _, path := range paths {
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
	}

	var debounce <-chan time.Time
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			// Remove/Rename are common in atomic saves.
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug("file changed", "path", event.Name, "op", event.Op.String())

			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounceDelay)
			debounce = debounceTimer.C

		case <-debounce:
			debounce = nil
			onChange()

			// Atomic saves replace the file, dropping the watch.
			for _, path := range paths {
				if err := watcher.Add(path); err != nil {
					log.Warn("failed to watch", "path", path, "error", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("file watcher error", "error", err)
		}
	}
}

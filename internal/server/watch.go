package server

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/StevenPG/scribe/internal/log"
)

// debounceDuration batches the event bursts editors produce on save into a
// single rebuild.
const debounceDuration = 500 * time.Millisecond

// Watch observes the given directories (recursively) and invokes onChange,
// debounced, whenever files are written, created, removed, or renamed. It
// blocks until ctx is cancelled.
func Watch(ctx context.Context, dirs []string, onChange func()) error {
	logger := log.WithComponent("watch")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, root := range dirs {
		if _, err := os.Stat(root); os.IsNotExist(err) {
			logger.Info().Str("dir", root).Msg("directory not found, not watching")
			continue
		}
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				logger.Warn().Err(err).Str("path", path).Msg("error walking watch root")
				return nil
			}
			if d.IsDir() {
				if err := watcher.Add(path); err != nil {
					logger.Warn().Err(err).Str("path", path).Msg("failed to watch directory")
				}
			}
			return nil
		})
		if err != nil {
			logger.Warn().Err(err).Str("dir", root).Msg("watch setup incomplete")
		}
	}

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str("path", event.Name).Str("op", event.Op.String()).Msg("change detected")

			// fsnotify does not watch new subdirectories automatically.
			if event.Has(fsnotify.Create) && isDir(event.Name) {
				if err := watcher.Add(event.Name); err != nil {
					logger.Warn().Err(err).Str("path", event.Name).Msg("failed to watch new directory")
				}
			}

			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDuration, onChange)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

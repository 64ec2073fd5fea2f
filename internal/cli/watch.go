package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// watchDebounce coalesces the burst of events a single save produces.
var watchDebounce = 200 * time.Millisecond

// Watch calls run once and then again after every change to path, until ctx
// is done. path is a model file or a Go package directory. Runs never
// overlap; a failed run is logged and watching continues.
func Watch(ctx context.Context, path string, logger zerolog.Logger, run func() error) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace files by rename, so the parent directory is
	// watched and events are filtered by name.
	dir := path
	if !info.IsDir() {
		dir = filepath.Dir(path)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory %s: %w", dir, err)
	}

	matches := func(name string) bool {
		if info.IsDir() {
			return strings.HasSuffix(name, ".go")
		}
		return filepath.Clean(name) == filepath.Clean(path)
	}

	runOnce := func() {
		if err := run(); err != nil {
			logger.Error().Err(err).Msg("generation failed")
		}
	}
	runOnce()

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return fmt.Errorf("watcher channel closed")
			}
			if !matches(event.Name) || event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug().Str("file", event.Name).Stringer("op", event.Op).Msg("change detected")
			fire = time.After(watchDebounce)
		case <-fire:
			fire = nil
			runOnce()
		case err, ok := <-watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher error channel closed")
			}
			logger.Warn().Err(err).Msg("watcher error")
		}
	}
}

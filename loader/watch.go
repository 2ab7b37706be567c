// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build !appengine && (darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package loader

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch watches the files with the given paths and invalidates them in the Cache
// when they are created, written, removed or renamed, so the next Load reads the new content.
//
// It blocks until ctx is done, or returns error if the watch could not be started.
//
//nolint:cyclop,funlen,gocognit
func (c *Cache) Watch(ctx context.Context, paths ...string) error {
	c.nocopy.Check()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer func() {
		if e := watcher.Close(); e != nil {
			c.logger.LogAttrs(
				ctx, slog.LevelWarn,
				"Error when closing file watcher.",
				slog.Any("error", e),
			)
		}
	}()

	// Event file name to cache key. Both the path and its resolved symlink
	// are tracked so that changes to symlinks can be detected.
	keys := make(map[string]string, len(paths)*2) //nolint:mnd
	dirs := make(map[string]struct{}, len(paths))
	for _, path := range paths {
		key := filepath.Clean(path)

		// fsnotify has to watch the whole parent directory
		// to pick up all events such as symlink changes.
		dir := filepath.Dir(key)
		if _, ok := dirs[dir]; !ok {
			if e := watcher.Add(dir); e != nil {
				return fmt.Errorf("watch dir %s: %w", dir, e)
			}
			dirs[dir] = struct{}{}
		}

		realPath, e := filepath.EvalSymlinks(key)
		if e != nil {
			return fmt.Errorf("eval symlink: %w", e)
		}
		keys[key] = key
		keys[filepath.Clean(realPath)] = key
	}

	for {
		select {
		case event := <-watcher.Events:
			// Every event invalidates, so a truncate followed by a write
			// never leaves the truncated content in the cache.
			key, ok := keys[filepath.Clean(event.Name)]
			if !ok {
				continue
			}

			switch {
			case event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename):
				c.logger.LogAttrs(
					ctx, slog.LevelWarn,
					"Config file has been removed.",
					slog.String("file", key),
				)
				c.Invalidate(key)
			case event.Has(fsnotify.Create) || event.Has(fsnotify.Write):
				c.logger.LogAttrs(
					ctx, slog.LevelInfo,
					"Config file has been changed.",
					slog.String("file", key),
				)
				c.Invalidate(key)
			}

		case err := <-watcher.Errors:
			c.logger.LogAttrs(
				ctx, slog.LevelWarn,
				"Error when watching file",
				slog.Any("error", err),
			)

		case <-ctx.Done():
			return nil
		}
	}
}

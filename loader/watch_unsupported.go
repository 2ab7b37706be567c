// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

//go:build appengine || !(darwin || dragonfly || freebsd || openbsd || linux || netbsd || solaris || windows)

package loader

import (
	"context"
	"log/slog"
	"runtime"
)

func (c *Cache) Watch(ctx context.Context, _ ...string) error {
	c.logger.LogAttrs(
		ctx, slog.LevelWarn,
		"Cache.Watch is not supported.",
		slog.String("os", runtime.GOOS),
	)

	return nil
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/nil-go/konfmerge/internal"
)

// Cache holds the contents of loaded resources, keyed by resource identity
// (the cleaned path for OS files).
//
// Each resource is loaded at most once until it is invalidated.
// Concurrent reads of a loaded resource do not block each other,
// and concurrent first reads of the same resource share a single load.
//
// To create a new Cache, call [NewCache]. A Cache must not be copied after first use.
type Cache struct {
	nocopy internal.NoCopy[Cache]

	logger  *slog.Logger
	group   singleflight.Group
	mutex   sync.RWMutex
	entries map[string][]byte
	// Incremented by every invalidation so loads started before it are not stored.
	generation uint64
}

// NewCache creates a new Cache with the given Option(s). Only WithLogger applies to Cache.
func NewCache(opts ...Option) *Cache {
	option := apply(opts)

	return &Cache{
		logger:  option.logger.WithGroup("konfmerge.cache"),
		entries: make(map[string][]byte),
	}
}

// Read returns the content of the resource with the given key,
// calling load to read it if it is not in the cache yet.
// Errors of load are not cached.
func (c *Cache) Read(key string, load func() ([]byte, error)) ([]byte, error) {
	c.nocopy.Check()

	if content, _, ok := c.get(key); ok {
		return content, nil
	}

	value, err, _ := c.group.Do(key, func() (any, error) {
		// Double check since another load may have stored it after the first check.
		content, generation, ok := c.get(key)
		if ok {
			return content, nil
		}

		content, err := load()
		if err != nil {
			return nil, err
		}

		c.mutex.Lock()
		defer c.mutex.Unlock()
		if c.generation == generation {
			c.entries[key] = content
		}
		c.logger.LogAttrs(
			context.Background(), slog.LevelDebug,
			"Resource has been loaded.",
			slog.String("key", key),
			slog.Int("bytes", len(content)),
		)

		return content, nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return value.([]byte), nil
}

func (c *Cache) get(key string) ([]byte, uint64, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	content, ok := c.entries[key]

	return content, c.generation, ok
}

// Invalidate removes the resource with the given key, so the next Read loads it again.
func (c *Cache) Invalidate(key string) {
	c.nocopy.Check()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, key)
	c.generation++
	c.group.Forget(key)
}

// Reset removes all resources.
func (c *Cache) Reset() {
	c.nocopy.Check()

	c.mutex.Lock()
	defer c.mutex.Unlock()

	clear(c.entries)
	c.generation++
}

// Len returns the number of cached resources.
func (c *Cache) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return len(c.entries)
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader_test

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/nil-go/konfmerge/loader"
)

func TestCache_Read(t *testing.T) {
	t.Parallel()

	cache := loader.NewCache()
	var loads atomic.Int32
	load := func() ([]byte, error) {
		loads.Add(1)
		time.Sleep(10 * time.Millisecond)

		return []byte("content"), nil
	}

	var group errgroup.Group
	for range 16 {
		group.Go(func() error {
			content, err := cache.Read("key", load)
			if err != nil {
				return err
			}
			if string(content) != "content" {
				return errors.New("unexpected content: " + string(content))
			}

			return nil
		})
	}
	require.NoError(t, group.Wait())
	assert.Equal(t, int32(1), loads.Load())
	assert.Equal(t, 1, cache.Len())
}

func TestCache_Read_error(t *testing.T) {
	t.Parallel()

	cache := loader.NewCache()
	_, err := cache.Read("key", func() ([]byte, error) {
		return nil, errors.New("read error")
	})
	require.EqualError(t, err, "read error")
	assert.Equal(t, 0, cache.Len())

	content, err := cache.Read("key", func() ([]byte, error) {
		return []byte("content"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "content", string(content))
}

func TestCache_Invalidate(t *testing.T) {
	t.Parallel()

	cache := loader.NewCache()
	var loads atomic.Int32
	load := func() ([]byte, error) {
		loads.Add(1)

		return []byte("content"), nil
	}

	_, err := cache.Read("a", load)
	require.NoError(t, err)
	_, err = cache.Read("b", load)
	require.NoError(t, err)
	_, err = cache.Read("a", load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), loads.Load())

	cache.Invalidate("a")
	assert.Equal(t, 1, cache.Len())
	_, err = cache.Read("a", load)
	require.NoError(t, err)
	assert.Equal(t, int32(3), loads.Load())

	cache.Reset()
	assert.Equal(t, 0, cache.Len())
	_, err = cache.Read("b", load)
	require.NoError(t, err)
	assert.Equal(t, int32(4), loads.Load())
}

func TestCache_Invalidate_duringLoad(t *testing.T) {
	t.Parallel()

	cache := loader.NewCache()
	content, err := cache.Read("key", func() ([]byte, error) {
		cache.Invalidate("key")

		return []byte("stale"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stale", string(content))
	assert.Equal(t, 0, cache.Len())

	content, err = cache.Read("key", func() ([]byte, error) {
		return []byte("fresh"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", string(content))
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

// Insert inserts the value under the given keys into dst, creating nested maps on the way.
// Key conflicts are resolved by preferring the given value.
func Insert(dst map[string]any, keys []string, value any) {
	if len(keys) == 0 {
		return
	}

	next := dst
	for _, key := range keys[:len(keys)-1] {
		sub, ok := next[key].(map[string]any)
		if !ok {
			// Override if the value does not exist or is not map[string]any.
			sub = make(map[string]any)
			next[key] = sub
		}
		next = sub
	}
	next[keys[len(keys)-1]] = value
}

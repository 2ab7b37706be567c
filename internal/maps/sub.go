// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package maps

import "strconv"

// Sub returns the value under the given path of a plain tree,
// or nil if there is no value under the path.
// Blank keys are skipped, and numeric keys also index into []any.
func Sub(values any, path []string) any {
	for _, key := range path {
		if key == "" {
			continue
		}

		switch value := values.(type) {
		case map[string]any:
			values = value[key]
		case []any:
			index, err := strconv.Atoi(key)
			if err != nil || index < 0 || index >= len(value) {
				return nil
			}
			values = value[index]
		default:
			return nil
		}
	}

	return values
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"fmt"

	"github.com/nil-go/konfmerge/jsonpath"
)

// Plain converts the node of the provider's representation into
// map[string]any for objects, []any for arrays and native Go values for scalars.
func Plain(provider TreeProvider, node any) (any, error) {
	return plain(provider, node, jsonpath.Root())
}

func plain(provider TreeProvider, node any, path jsonpath.Path) (any, error) {
	switch {
	case provider.IsObject(node):
		values := make(map[string]any)
		for key, value := range provider.Entries(node) {
			v, err := plain(provider, value, path.Child(key))
			if err != nil {
				return nil, err
			}
			values[key] = v
		}

		return values, nil
	case provider.IsArray(node):
		values := make([]any, 0)
		index := 0
		for value := range provider.Elements(node) {
			v, err := plain(provider, value, path.Index(index))
			if err != nil {
				return nil, err
			}
			values = append(values, v)
			index++
		}

		return values, nil
	case provider.IsScalar(node):
		value, err := provider.Scalar(node)
		if err != nil {
			return nil, fmt.Errorf("scalar at %s: %w", path.Canonical(), err)
		}

		return value, nil
	default:
		return nil, &UnsupportedNodeError{Path: path, Node: node}
	}
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/magiconair/properties"

	"github.com/nil-go/konfmerge/internal/maps"
)

// FlatDocument is a loaded properties-style configuration with its metadata.
// Keys are flat strings such as `server.port`, values are strings.
//
// To create a new FlatDocument, call [NewFlatDocument].
type FlatDocument struct {
	metadata

	values *properties.Properties
}

// NewFlatDocument creates a FlatDocument holding the given properties.
// A nil properties is treated as empty.
func NewFlatDocument(values *properties.Properties, opts ...DocumentOption) FlatDocument {
	if values == nil {
		values = properties.NewProperties()
	}

	document := FlatDocument{values: values}
	for _, opt := range opts {
		opt(&document.metadata)
	}

	return document
}

// Properties returns the properties of the document.
func (d FlatDocument) Properties() *properties.Properties {
	if d.values == nil {
		return properties.NewProperties()
	}

	return d.values
}

// Get returns the raw value under key, and false if the key is absent.
func (d FlatDocument) Get(key string) (string, bool) {
	value, ok := d.Properties().Map()[key]

	return value, ok
}

// Tree returns the properties as nested map[string]any by splitting keys with `.`.
// For conflicting keys like `a=1` and `a.b=2`, the nested value wins.
func (d FlatDocument) Tree() map[string]any {
	props := d.Properties()
	values := props.Map()
	keys := props.Keys()
	// Shorter keys first so nested keys override their scalar parents.
	tree := make(map[string]any)
	for depth := 1; len(keys) > 0; depth++ {
		var deeper []string
		for _, key := range keys {
			path := strings.Split(key, ".")
			if len(path) != depth {
				deeper = append(deeper, key)

				continue
			}
			maps.Insert(tree, path, values[key])
		}
		keys = deeper
	}

	return tree
}

func (d FlatDocument) String() string {
	return fmt.Sprintf("%s[properties]@%d", d.describe(), d.precedence)
}

// MergeFlat merges two flat documents into a new FlatDocument.
//
// The result holds the union of keys. For keys defined by both documents,
// the value of the document with higher precedence is used. Equal precedences follow the tie break.
// Keys keep the order of the winning document, followed by keys only defined by the other.
func (m *Merger) MergeFlat(first, second FlatDocument) (FlatDocument, error) {
	firstWins, err := m.firstWins(first.metadata, second.metadata)
	if err != nil {
		return FlatDocument{}, err
	}
	high, low := second, first
	if firstWins {
		high, low = first, second
	}

	merged := properties.NewProperties()
	merged.DisableExpansion = true
	for _, document := range []FlatDocument{high, low} {
		props := document.Properties()
		values := props.Map()
		for _, key := range props.Keys() {
			if _, exist := merged.Get(key); exist {
				continue
			}
			if _, _, err := merged.Set(key, values[key]); err != nil {
				return FlatDocument{}, fmt.Errorf("set property %s: %w", key, err)
			}
		}
	}
	m.logger.LogAttrs(
		context.Background(), slog.LevelDebug,
		"Flat documents have been merged.",
		slog.String("high", high.String()),
		slog.String("low", low.String()),
		slog.Int("keys", merged.Len()),
	)

	return FlatDocument{metadata: high.metadata, values: merged}, nil
}

// MergeAllFlat merges the given flat documents into one,
// in the same order as [Merger.MergeAll].
func (m *Merger) MergeAllFlat(documents ...FlatDocument) (FlatDocument, error) {
	if len(documents) == 0 {
		return FlatDocument{}, errNoDocument
	}

	sorted := slices.Clone(documents)
	slices.SortStableFunc(sorted, func(a, b FlatDocument) int {
		return cmp.Compare(a.precedence, b.precedence)
	})

	merged := sorted[0]
	for _, document := range sorted[1:] {
		var err error
		if merged, err = m.MergeFlat(merged, document); err != nil {
			return FlatDocument{}, err
		}
	}

	return merged, nil
}

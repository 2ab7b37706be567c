// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"context"
	"log/slog"

	"github.com/nil-go/konfmerge/internal/credential"
	"github.com/nil-go/konfmerge/jsonpath"
)

// treeMerger merges two trees of one representation. It only reads the input trees
// and builds the result from new nodes, reusing input subtrees that need no merge.
type treeMerger struct {
	provider TreeProvider
	options  MergeOptions
	logger   *slog.Logger
}

// merge recursively merges the low node into the high node.
// Conflicts are resolved by preferring high, or recursively descending
// if both nodes are objects or both are arrays.
func (t treeMerger) merge(high, low any, path jsonpath.Path) (any, error) {
	switch {
	case t.provider.IsObject(high) && t.provider.IsObject(low):
		return t.mergeObjects(high, low, path)
	case t.provider.IsArray(high) && t.provider.IsArray(low):
		return t.mergeArrays(high, low, path)
	}

	// The overridden side is validated too.
	if err := t.validate(high, path); err != nil {
		return nil, err
	}
	if err := t.validate(low, path); err != nil {
		return nil, err
	}
	t.logOverride(high, low, path)

	return high, nil
}

func (t treeMerger) mergeObjects(high, low any, path jsonpath.Path) (any, error) {
	if t.provider.IsEmpty(low) {
		if err := t.validate(high, path); err != nil {
			return nil, err
		}

		return t.provider.CopyObject(high), nil
	}

	merged := t.provider.NewObject()
	for key, highValue := range t.provider.Entries(high) {
		lowValue, ok := t.provider.Get(low, key)
		if !ok {
			if err := t.validate(highValue, path.Child(key)); err != nil {
				return nil, err
			}
			merged = t.provider.Put(merged, key, highValue)

			continue
		}

		value, err := t.merge(highValue, lowValue, path.Child(key))
		if err != nil {
			return nil, err
		}
		merged = t.provider.Put(merged, key, value)
	}
	for key, lowValue := range t.provider.Entries(low) {
		if _, ok := t.provider.Get(high, key); ok {
			continue
		}
		if err := t.validate(lowValue, path.Child(key)); err != nil {
			return nil, err
		}
		merged = t.provider.PutIfAbsent(merged, key, lowValue)
	}

	return merged, nil
}

func (t treeMerger) mergeArrays(high, low any, path jsonpath.Path) (any, error) {
	if key, ok := t.options.DistinctKey(path); ok {
		return t.mergeDistinct(high, low, path, key)
	}

	// Concatenate with duplicates from low dropped.
	if err := t.validate(high, path); err != nil {
		return nil, err
	}
	merged := t.provider.CopyArray(high)
	index := 0
	for element := range t.provider.Elements(low) {
		if err := t.validate(element, path.Index(index)); err != nil {
			return nil, err
		}
		index++

		if t.provider.Contains(merged, element) {
			continue
		}
		merged = t.provider.Append(merged, element)
	}

	return merged, nil
}

type element struct {
	node any
	id   any
}

// mergeDistinct merges arrays whose object elements are identified by the given key.
// Elements with equal identity are merged with each other, in the position of the high element.
func (t treeMerger) mergeDistinct(high, low any, path jsonpath.Path, key string) (any, error) {
	highIdentified, highUnidentified, err := t.partition(high, key, path)
	if err != nil {
		return nil, err
	}
	lowIdentified, lowUnidentified, err := t.partition(low, key, path)
	if err != nil {
		return nil, err
	}

	merged := t.provider.NewArray()
	index := 0
	paired := make([]bool, len(lowIdentified))
	for _, highElement := range highIdentified {
		node := highElement.node
		for i, lowElement := range lowIdentified {
			if paired[i] || !t.provider.Equal(highElement.id, lowElement.id) {
				continue
			}
			paired[i] = true

			if node, err = t.merge(highElement.node, lowElement.node, path.Index(index)); err != nil {
				return nil, err
			}

			break
		}
		merged = t.provider.Append(merged, node)
		index++
	}
	for i, lowElement := range lowIdentified {
		if !paired[i] {
			merged = t.provider.Append(merged, lowElement.node)
		}
	}

	for _, node := range highUnidentified {
		merged = t.provider.Append(merged, node)
	}
	for _, node := range lowUnidentified {
		if t.provider.Contains(merged, node) {
			continue
		}
		merged = t.provider.Append(merged, node)
	}

	return merged, nil
}

// partition splits the elements of array into objects holding the key and everything else.
func (t treeMerger) partition(array any, key string, path jsonpath.Path) ([]element, []any, error) {
	var (
		identified   []element
		unidentified []any
		index        int
	)
	for node := range t.provider.Elements(array) {
		if err := t.validate(node, path.Index(index)); err != nil {
			return nil, nil, err
		}
		index++

		if t.provider.IsObject(node) {
			if id, ok := t.provider.Get(node, key); ok {
				identified = append(identified, element{node: node, id: id})

				continue
			}
		}
		unidentified = append(unidentified, node)
	}

	return identified, unidentified, nil
}

// validate reports the first node in the subtree which is neither an object, an array nor a scalar.
func (t treeMerger) validate(node any, path jsonpath.Path) error {
	switch {
	case t.provider.IsObject(node):
		for key, value := range t.provider.Entries(node) {
			if err := t.validate(value, path.Child(key)); err != nil {
				return err
			}
		}
	case t.provider.IsArray(node):
		var (
			err   error
			index int
		)
		t.provider.ForEach(node, func(element any) {
			if err == nil {
				err = t.validate(element, path.Index(index))
			}
			index++
		})

		return err
	case !t.provider.IsScalar(node):
		return &UnsupportedNodeError{Path: path, Node: node}
	}

	return nil
}

func (t treeMerger) logOverride(high, low any, path jsonpath.Path) {
	ctx := context.Background()
	if !t.logger.Enabled(ctx, slog.LevelDebug) {
		return
	}

	attrs := []slog.Attr{slog.String("path", path.Canonical())}
	for _, side := range []struct {
		name string
		node any
	}{{"value", high}, {"overridden", low}} {
		if !t.provider.IsScalar(side.node) {
			continue
		}
		if value, err := t.provider.Scalar(side.node); err == nil {
			attrs = append(attrs, slog.String(side.name, credential.Blur(path.Canonical(), value)))
		}
	}
	t.logger.LogAttrs(ctx, slog.LevelDebug, "Value has been overridden by higher precedence.", attrs...)
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package mapslice provides the tree representation made of yaml.MapSlice
// from github.com/goccy/go-yaml, []any and Go scalars.
//
// It is the representation produced by decoding with yaml.UseOrderedMap,
// or by FromNode from a *yaml.Node of gopkg.in/yaml.v3.
// Keys of a MapSlice are compared by their string form, so `1: a` and `"1": b` share a key.
//
// yaml.UseOrderedMap appends the entries of a merge key (`<<`) to the MapSlice,
// so a key overriding a merged entry appears twice. FromNode keeps only the overriding entry.
package mapslice

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/nil-go/konfmerge/tree/plain"
	"github.com/nil-go/konfmerge/tree/yamlnode"
)

// Provider is the konfmerge.TreeProvider for MapSlice trees.
type Provider struct {
	scalars plain.Provider
}

// New returns a Provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() string {
	return "mapslice"
}

func (p Provider) Accepts(node any) bool {
	return p.IsObject(node) || p.IsArray(node) || p.IsScalar(node)
}

func (Provider) IsObject(node any) bool {
	_, ok := node.(yaml.MapSlice)

	return ok
}

func (Provider) IsArray(node any) bool {
	_, ok := node.([]any)

	return ok
}

func (p Provider) IsScalar(node any) bool {
	return p.scalars.IsScalar(node)
}

func (Provider) IsEmpty(object any) bool {
	return len(object.(yaml.MapSlice)) == 0
}

func (Provider) NewObject() any {
	return yaml.MapSlice{}
}

func (Provider) CopyObject(object any) any {
	return slices.Clone(object.(yaml.MapSlice))
}

func (Provider) NewArray() any {
	return make([]any, 0)
}

func (Provider) CopyArray(array any) any {
	return slices.Clone(array.([]any))
}

func (Provider) Entries(object any) iter.Seq2[string, any] {
	items := object.(yaml.MapSlice)

	return func(yield func(string, any) bool) {
		for _, item := range items {
			if !yield(key(item), item.Value) {
				return
			}
		}
	}
}

func (Provider) Get(object any, k string) (any, bool) {
	items := object.(yaml.MapSlice)
	if index := indexOf(items, k); index >= 0 {
		return items[index].Value, true
	}

	return nil, false
}

func (Provider) Put(object any, k string, value any) any {
	items := object.(yaml.MapSlice)
	if index := indexOf(items, k); index >= 0 {
		items[index].Value = value

		return items
	}

	return append(items, yaml.MapItem{Key: k, Value: value})
}

func (Provider) PutIfAbsent(object any, k string, value any) any {
	items := object.(yaml.MapSlice)
	if indexOf(items, k) >= 0 {
		return items
	}

	return append(items, yaml.MapItem{Key: k, Value: value})
}

func indexOf(items yaml.MapSlice, k string) int {
	return slices.IndexFunc(items, func(item yaml.MapItem) bool {
		return key(item) == k
	})
}

func key(item yaml.MapItem) string {
	if k, ok := item.Key.(string); ok {
		return k
	}

	return fmt.Sprint(item.Key)
}

func (Provider) Append(array any, value any) any {
	return append(array.([]any), value)
}

func (Provider) ForEach(array any, visit func(any)) {
	for _, value := range array.([]any) {
		visit(value)
	}
}

func (Provider) Elements(array any) iter.Seq[any] {
	return slices.Values(array.([]any))
}

func (p Provider) Contains(array any, value any) bool {
	return slices.ContainsFunc(array.([]any), func(element any) bool {
		return p.Equal(element, value)
	})
}

// Equal compares objects regardless of the order of their keys.
func (Provider) Equal(a, b any) bool {
	return equal(a, b)
}

func (p Provider) Scalar(node any) (any, error) {
	if !p.IsScalar(node) {
		return nil, fmt.Errorf("%T is not a scalar", node)
	}

	return node, nil
}

func equal(a, b any) bool {
	return cmp.Equal(a, b, cmp.Comparer(equalObjects), cmpopts.EquateNaNs(), exportAll)
}

func equalObjects(a, b yaml.MapSlice) bool {
	if len(a) != len(b) {
		return false
	}
	for _, item := range a {
		index := indexOf(b, key(item))
		if index < 0 || !equal(item.Value, b[index].Value) {
			return false
		}
	}

	return true
}

// Text marshaling scalars may be structs with unexported fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true }) //nolint:gochecknoglobals

// FromPlain converts a plain tree into a MapSlice tree. Keys of objects are inserted in sorted order.
func FromPlain(value any) any {
	switch value := value.(type) {
	case map[string]any:
		items := make(yaml.MapSlice, 0, len(value))
		for _, k := range slices.Sorted(maps.Keys(value)) {
			items = append(items, yaml.MapItem{Key: k, Value: FromPlain(value[k])})
		}

		return items
	case []any:
		array := make([]any, 0, len(value))
		for _, element := range value {
			array = append(array, FromPlain(element))
		}

		return array
	default:
		return value
	}
}

// FromNode converts a *yaml.Node tree into a MapSlice tree, keeping the key order of mappings.
// Aliases are resolved and merge keys (`<<`) are expanded.
func FromNode(node *yamlv3.Node) (any, error) {
	for node.Kind == yamlv3.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind { //nolint:exhaustive
	case yamlv3.DocumentNode:
		if len(node.Content) == 0 {
			return yaml.MapSlice{}, nil
		}

		return FromNode(node.Content[0])
	case yamlv3.MappingNode:
		items := make(yaml.MapSlice, 0, len(node.Content)/2) //nolint:mnd
		for key, element := range yamlnode.New().Entries(node) {
			value, err := FromNode(element.(*yamlv3.Node))
			if err != nil {
				return nil, err
			}
			items = append(items, yaml.MapItem{Key: key, Value: value})
		}

		return items, nil
	case yamlv3.SequenceNode:
		array := make([]any, 0, len(node.Content))
		for _, element := range node.Content {
			value, err := FromNode(element)
			if err != nil {
				return nil, err
			}
			array = append(array, value)
		}

		return array, nil
	default:
		var value any
		if err := node.Decode(&value); err != nil {
			return nil, fmt.Errorf("decode yaml node at line %d: %w", node.Line, err)
		}

		return value, nil
	}
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package ordered provides the tree representation made of insertion-ordered maps
// from github.com/wk8/go-ordered-map/v2, []any and Go scalars.
//
// Entries of an object are visited in insertion order, so merged objects
// list the keys of the winning document first.
package ordered

import (
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/konfmerge/tree/plain"
	"github.com/nil-go/konfmerge/tree/yamlnode"
)

// Map is the object node of the representation.
type Map = orderedmap.OrderedMap[string, any]

// Provider is the konfmerge.TreeProvider for ordered trees.
type Provider struct {
	scalars plain.Provider
}

// New returns a Provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() string {
	return "ordered"
}

func (p Provider) Accepts(node any) bool {
	return p.IsObject(node) || p.IsArray(node) || p.IsScalar(node)
}

func (Provider) IsObject(node any) bool {
	object, ok := node.(*Map)

	return ok && object != nil
}

func (Provider) IsArray(node any) bool {
	_, ok := node.([]any)

	return ok
}

func (p Provider) IsScalar(node any) bool {
	if _, ok := node.(*Map); ok {
		return false
	}

	return p.scalars.IsScalar(node)
}

func (Provider) IsEmpty(object any) bool {
	return object.(*Map).Len() == 0
}

func (Provider) NewObject() any {
	return orderedmap.New[string, any]()
}

func (Provider) CopyObject(object any) any {
	source := object.(*Map)
	copied := orderedmap.New[string, any](source.Len())
	for pair := source.Oldest(); pair != nil; pair = pair.Next() {
		copied.Set(pair.Key, pair.Value)
	}

	return copied
}

func (Provider) NewArray() any {
	return make([]any, 0)
}

func (Provider) CopyArray(array any) any {
	return slices.Clone(array.([]any))
}

func (Provider) Entries(object any) iter.Seq2[string, any] {
	values := object.(*Map)

	return func(yield func(string, any) bool) {
		for pair := values.Oldest(); pair != nil; pair = pair.Next() {
			if !yield(pair.Key, pair.Value) {
				return
			}
		}
	}
}

func (Provider) Get(object any, key string) (any, bool) {
	return object.(*Map).Get(key)
}

func (Provider) Put(object any, key string, value any) any {
	object.(*Map).Set(key, value)

	return object
}

func (Provider) PutIfAbsent(object any, key string, value any) any {
	values := object.(*Map)
	if _, ok := values.Get(key); !ok {
		values.Set(key, value)
	}

	return object
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
	return cmp.Equal(a, b, cmp.Comparer(equalMaps), cmpopts.EquateNaNs(), exportAll)
}

func equalMaps(a, b *Map) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Len() != b.Len() {
		return false
	}
	for pair := a.Oldest(); pair != nil; pair = pair.Next() {
		value, ok := b.Get(pair.Key)
		if !ok || !equal(pair.Value, value) {
			return false
		}
	}

	return true
}

// Text marshaling scalars may be structs with unexported fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true }) //nolint:gochecknoglobals

// FromPlain converts a plain tree into an ordered tree. Keys of objects are inserted in sorted order.
func FromPlain(value any) any {
	switch value := value.(type) {
	case map[string]any:
		object := orderedmap.New[string, any](len(value))
		for _, key := range slices.Sorted(maps.Keys(value)) {
			object.Set(key, FromPlain(value[key]))
		}

		return object
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

// FromNode converts a *yaml.Node into an ordered tree, keeping the order of mapping keys.
func FromNode(node *yaml.Node) (any, error) {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	switch node.Kind { //nolint:exhaustive
	case yaml.DocumentNode:
		if len(node.Content) == 0 {
			return orderedmap.New[string, any](), nil
		}

		return FromNode(node.Content[0])
	case yaml.MappingNode:
		object := orderedmap.New[string, any](len(node.Content) / 2) //nolint:mnd
		// Entries expands merge keys (`<<`).
		for key, element := range yamlnode.New().Entries(node) {
			value, err := FromNode(element.(*yaml.Node))
			if err != nil {
				return nil, err
			}
			object.Set(key, value)
		}

		return object, nil
	case yaml.SequenceNode:
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

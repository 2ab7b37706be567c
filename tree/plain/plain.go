// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package plain provides the tree representation made of map[string]any, []any and Go scalars.
//
// It is the representation produced by encoding/json, gopkg.in/yaml.v3 and
// github.com/BurntSushi/toml when decoding into `any`.
// Entries of an object are visited in sorted key order.
package plain

import (
	"encoding"
	"encoding/json"
	"fmt"
	"iter"
	"maps"
	"reflect"
	"slices"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// Provider is the konfmerge.TreeProvider for plain trees.
type Provider struct {
	_ [0]func() // Ensure it's incomparable.
}

// New returns a Provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() string {
	return "plain"
}

func (p Provider) Accepts(node any) bool {
	return p.IsObject(node) || p.IsArray(node) || p.IsScalar(node)
}

func (Provider) IsObject(node any) bool {
	_, ok := node.(map[string]any)

	return ok
}

func (Provider) IsArray(node any) bool {
	_, ok := node.([]any)

	return ok
}

// IsScalar reports whether node is nil, a bool, number or string,
// a json.Number, a time.Time, or a value that marshals itself to text
// (e.g. net.IP).
func (Provider) IsScalar(node any) bool {
	switch node.(type) {
	case nil, json.Number, time.Time, encoding.TextMarshaler:
		return true
	}

	switch reflect.TypeOf(node).Kind() { //nolint:exhaustive
	case reflect.Bool, reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

func (Provider) IsEmpty(object any) bool {
	return len(object.(map[string]any)) == 0
}

func (Provider) NewObject() any {
	return make(map[string]any)
}

func (Provider) CopyObject(object any) any {
	return maps.Clone(object.(map[string]any))
}

func (Provider) NewArray() any {
	return make([]any, 0)
}

func (Provider) CopyArray(array any) any {
	return append(make([]any, 0, len(array.([]any))), array.([]any)...)
}

func (Provider) Entries(object any) iter.Seq2[string, any] {
	values := object.(map[string]any)

	return func(yield func(string, any) bool) {
		for _, key := range slices.Sorted(maps.Keys(values)) {
			if !yield(key, values[key]) {
				return
			}
		}
	}
}

func (Provider) Get(object any, key string) (any, bool) {
	value, ok := object.(map[string]any)[key]

	return value, ok
}

func (Provider) Put(object any, key string, value any) any {
	object.(map[string]any)[key] = value

	return object
}

func (Provider) PutIfAbsent(object any, key string, value any) any {
	values := object.(map[string]any)
	if _, ok := values[key]; !ok {
		values[key] = value
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

func (Provider) Equal(a, b any) bool {
	return cmp.Equal(a, b, cmpopts.EquateNaNs(), exportAll)
}

func (p Provider) Scalar(node any) (any, error) {
	if !p.IsScalar(node) {
		return nil, fmt.Errorf("%T is not a scalar", node)
	}

	return node, nil
}

// Text marshaling scalars may be structs with unexported fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true }) //nolint:gochecknoglobals

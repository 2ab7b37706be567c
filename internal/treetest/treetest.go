// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package treetest provides the contract tests shared by all tree representations.
package treetest

import (
	"maps"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/tree/mapslice"
	"github.com/nil-go/konfmerge/tree/ordered"
	"github.com/nil-go/konfmerge/tree/plain"
	"github.com/nil-go/konfmerge/tree/yamlnode"
)

// Representation pairs a TreeProvider with the function building its trees from plain values.
type Representation struct {
	Provider konfmerge.TreeProvider
	Build    func(value any) any
}

// Representations returns all tree representations of the module.
func Representations() []Representation {
	return []Representation{
		{Provider: plain.New(), Build: func(value any) any { return value }},
		{Provider: yamlnode.New(), Build: buildNode},
		{Provider: ordered.New(), Build: ordered.FromPlain},
		{Provider: mapslice.New(), Build: mapslice.FromPlain},
	}
}

// Find returns the representation with the given provider name.
func Find(name string) Representation {
	for _, representation := range Representations() {
		if representation.Provider.Name() == name {
			return representation
		}
	}

	panic("unknown tree representation " + name)
}

func buildNode(value any) any {
	node, err := yamlnode.FromPlain(value)
	if err != nil {
		panic(err)
	}

	return node
}

// Run runs the TreeProvider contract tests against the given representation.
func Run(t *testing.T, representation Representation) {
	t.Helper()

	provider, build := representation.Provider, representation.Build
	testcases := []struct {
		description string
		test        func(*testing.T)
	}{
		{
			description: "classify",
			test: func(t *testing.T) {
				t.Helper()

				object := build(map[string]any{"a": 1})
				assert.True(t, provider.IsObject(object))
				assert.False(t, provider.IsArray(object))
				assert.False(t, provider.IsScalar(object))

				array := build([]any{1})
				assert.True(t, provider.IsArray(array))
				assert.False(t, provider.IsObject(array))
				assert.False(t, provider.IsScalar(array))

				for _, value := range []any{"s", 1, 1.5, true, nil} {
					scalar := build(value)
					assert.True(t, provider.IsScalar(scalar), "%v", value)
					assert.False(t, provider.IsObject(scalar), "%v", value)
					assert.False(t, provider.IsArray(scalar), "%v", value)
					assert.True(t, provider.Accepts(scalar), "%v", value)
				}
				assert.True(t, provider.Accepts(object))
				assert.True(t, provider.Accepts(array))
			},
		},
		{
			description: "foreign node",
			test: func(t *testing.T) {
				t.Helper()

				for _, node := range []any{struct{ X int }{X: 1}, make(chan int), map[int]string{}} {
					assert.False(t, provider.Accepts(node), "%T", node)
					assert.False(t, provider.IsObject(node), "%T", node)
					assert.False(t, provider.IsArray(node), "%T", node)
					assert.False(t, provider.IsScalar(node), "%T", node)
				}
			},
		},
		{
			description: "object",
			test: func(t *testing.T) {
				t.Helper()

				object := provider.NewObject()
				assert.True(t, provider.IsObject(object))
				assert.True(t, provider.IsEmpty(object))

				object = provider.Put(object, "a", build(1))
				object = provider.Put(object, "n", build(nil))
				assert.False(t, provider.IsEmpty(object))

				value, ok := provider.Get(object, "a")
				assert.True(t, ok)
				assert.True(t, provider.Equal(build(1), value))
				value, ok = provider.Get(object, "n")
				assert.True(t, ok, "present null must not be absent")
				assert.True(t, provider.Equal(build(nil), value))
				_, ok = provider.Get(object, "b")
				assert.False(t, ok)

				object = provider.PutIfAbsent(object, "a", build(2))
				value, _ = provider.Get(object, "a")
				assert.True(t, provider.Equal(build(1), value))
				object = provider.PutIfAbsent(object, "b", build(2))
				value, _ = provider.Get(object, "b")
				assert.True(t, provider.Equal(build(2), value))

				object = provider.Put(object, "a", build(3))
				value, _ = provider.Get(object, "a")
				assert.True(t, provider.Equal(build(3), value))

				assert.Equal(t, []string{"a", "b", "n"}, keys(provider, object))
			},
		},
		{
			description: "empty object",
			test: func(t *testing.T) {
				t.Helper()

				assert.True(t, provider.IsEmpty(build(map[string]any{})))
				assert.False(t, provider.IsEmpty(build(map[string]any{"a": nil})))
			},
		},
		{
			description: "copy object",
			test: func(t *testing.T) {
				t.Helper()

				source := build(map[string]any{"a": 1})
				copied := provider.CopyObject(source)
				copied = provider.Put(copied, "a", build(2))
				copied = provider.Put(copied, "b", build(3))

				assert.True(t, provider.Equal(build(map[string]any{"a": 1}), source))
				assert.True(t, provider.Equal(build(map[string]any{"a": 2, "b": 3}), copied))
			},
		},
		{
			description: "array",
			test: func(t *testing.T) {
				t.Helper()

				array := provider.NewArray()
				assert.True(t, provider.IsArray(array))
				for _, value := range []any{1, 2, 3} {
					array = provider.Append(array, build(value))
				}

				var visited []any
				provider.ForEach(array, func(node any) {
					visited = append(visited, scalar(t, provider, node))
				})
				assert.Equal(t, []any{1, 2, 3}, visited)

				var streamed []any
				for node := range provider.Elements(array) {
					streamed = append(streamed, scalar(t, provider, node))
				}
				assert.Equal(t, []any{1, 2, 3}, streamed)
			},
		},
		{
			description: "copy array",
			test: func(t *testing.T) {
				t.Helper()

				source := build([]any{1, 2})
				copied := provider.CopyArray(source)
				copied = provider.Append(copied, build(3))

				assert.Len(t, slices.Collect(provider.Elements(source)), 2)
				assert.Len(t, slices.Collect(provider.Elements(copied)), 3)
			},
		},
		{
			description: "contains",
			test: func(t *testing.T) {
				t.Helper()

				array := build([]any{map[string]any{"a": 1, "b": []any{1, 2}}, "x"})
				reordered := provider.NewObject()
				reordered = provider.Put(reordered, "b", build([]any{1, 2}))
				reordered = provider.Put(reordered, "a", build(1))

				assert.True(t, provider.Contains(array, reordered))
				assert.True(t, provider.Contains(array, build("x")))
				assert.False(t, provider.Contains(array, build(map[string]any{"a": 1})))
				assert.False(t, provider.Contains(array, build(map[string]any{"a": 1, "b": []any{2, 1}})))
				assert.False(t, provider.Contains(array, build("y")))
				assert.False(t, provider.Contains(provider.NewArray(), build("x")))
			},
		},
		{
			description: "equal",
			test: func(t *testing.T) {
				t.Helper()

				assert.True(t, provider.Equal(build(1), build(1)))
				assert.True(t, provider.Equal(build(nil), build(nil)))
				assert.False(t, provider.Equal(build(1), build("1")))
				assert.False(t, provider.Equal(build(1), build(2)))
				assert.False(t, provider.Equal(build(map[string]any{}), build([]any{})))
				assert.False(t, provider.Equal(build([]any{1, 2}), build([]any{1})))
				assert.True(t, provider.Equal(
					build(map[string]any{"a": map[string]any{"b": []any{true}}}),
					build(map[string]any{"a": map[string]any{"b": []any{true}}}),
				))
				assert.False(t, provider.Equal(
					build(map[string]any{"a": 1}),
					build(map[string]any{"a": 1, "b": 2}),
				))
			},
		},
		{
			description: "not a number",
			test: func(t *testing.T) {
				t.Helper()

				assert.True(t, provider.Equal(build(math.NaN()), build(math.NaN())))
				assert.False(t, provider.Equal(build(math.NaN()), build(1.5)))
				array := build([]any{math.NaN(), 1.5})
				assert.True(t, provider.Contains(array, build(math.NaN())))
				assert.True(t, provider.Equal(
					build(map[string]any{"a": []any{math.NaN()}}),
					build(map[string]any{"a": []any{math.NaN()}}),
				))
			},
		},
		{
			description: "scalar",
			test: func(t *testing.T) {
				t.Helper()

				for _, value := range []any{"x", true, 1, 1.5, nil} {
					assert.Equal(t, value, scalar(t, provider, build(value)))
				}
				_, err := provider.Scalar(build(map[string]any{"a": 1}))
				require.Error(t, err)
			},
		},
		{
			description: "plain",
			test: func(t *testing.T) {
				t.Helper()

				values := map[string]any{
					"string": "v",
					"int":    1,
					"float":  1.5,
					"bool":   true,
					"null":   nil,
					"list":   []any{1, "two", map[string]any{"k": "v"}},
					"object": map[string]any{"x": map[string]any{"y": "z"}},
					"empty":  map[string]any{},
				}
				converted, err := konfmerge.Plain(provider, build(values))
				require.NoError(t, err)
				assert.Equal(t, values, converted)
			},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			testcase.test(t)
		})
	}
}

func keys(provider konfmerge.TreeProvider, object any) []string {
	return slices.Sorted(maps.Keys(maps.Collect(provider.Entries(object))))
}

func scalar(t *testing.T, provider konfmerge.TreeProvider, node any) any {
	t.Helper()

	value, err := provider.Scalar(node)
	require.NoError(t, err)

	return value
}

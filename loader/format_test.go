// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/loader"
	"github.com/nil-go/konfmerge/tree/ordered"
)

func TestDetectFormat(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		path        string
		content     string
		expected    loader.Format
	}{
		{description: "json extension", path: "config.JSON", content: "a: 1", expected: loader.FormatJSON},
		{description: "yml extension", path: "config.yml", expected: loader.FormatYAML},
		{description: "tml extension", path: "config.tml", expected: loader.FormatTOML},
		{description: "properties extension", path: "app.properties", expected: loader.FormatProperties},
		{description: "json object", path: "config", content: ` {"a": 1}`, expected: loader.FormatJSON},
		{description: "json array", path: "config", content: `[1, 2]`, expected: loader.FormatJSON},
		{description: "toml table", path: "config", content: "[server]\nport = 1\n", expected: loader.FormatTOML},
		{description: "toml key", path: "config.conf", content: "a = 1", expected: loader.FormatTOML},
		{description: "yaml", path: "config", content: "a: 1\n", expected: loader.FormatYAML},
		{description: "yaml flow", path: "config", content: "{a: 1}", expected: loader.FormatYAML},
		{description: "empty", path: "config", expected: loader.FormatYAML},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, loader.DetectFormat(testcase.path, []byte(testcase.content)))
		})
	}
}

func TestParseFormat(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		expected loader.Format
		err      string
	}{
		{name: "", expected: loader.FormatAuto},
		{name: "JSON", expected: loader.FormatJSON},
		{name: "yml", expected: loader.FormatYAML},
		{name: "toml", expected: loader.FormatTOML},
		{name: "properties", expected: loader.FormatProperties},
		{name: "ini", err: `unknown format: "ini"`},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			t.Parallel()

			format, err := loader.ParseFormat(testcase.name)
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
				assert.ErrorIs(t, err, loader.ErrUnknownFormat)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, format)
		})
	}
}

func TestParseRepresentation(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		name     string
		expected loader.Representation
		err      string
	}{
		{name: "", expected: loader.Plain},
		{name: "YAMLNode", expected: loader.YAMLNode},
		{name: "ordered", expected: loader.Ordered},
		{name: "mapslice", expected: loader.MapSlice},
		{name: "xml", err: `unknown tree representation: "xml"`},
	}

	for _, testcase := range testcases {
		t.Run(testcase.name, func(t *testing.T) {
			t.Parallel()

			representation, err := loader.ParseRepresentation(testcase.name)
			if testcase.err != "" {
				assert.EqualError(t, err, testcase.err)
				assert.ErrorIs(t, err, loader.ErrUnknownRepresentation)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, representation)
		})
	}
}

func TestFormat_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "auto", loader.FormatAuto.String())
	assert.Equal(t, "properties", loader.FormatProperties.String())
	assert.Equal(t, "Format(9)", loader.Format(9).String())
}

func TestDecode(t *testing.T) {
	t.Parallel()

	tree, err := loader.Decode([]byte(`{"n": 1.50}`), loader.FormatJSON, loader.Plain)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"n": json.Number("1.50")}, tree)

	tree, err = loader.Decode([]byte("b: 1\na: 2\n"), loader.FormatYAML, loader.Ordered)
	require.NoError(t, err)
	object, ok := tree.(*ordered.Map)
	require.True(t, ok)
	var keys []string
	for pair := object.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	assert.Equal(t, []string{"b", "a"}, keys)

	tree, err = loader.Decode([]byte("[[a]]\nk = 1\n[[a]]\nk = 2\n"), loader.FormatTOML, loader.Plain)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": []any{map[string]any{"k": int64(1)}, map[string]any{"k": int64(2)}}}, tree)

	tree, err = loader.Decode([]byte("a.b = 1\na.c = x\n"), loader.FormatProperties, loader.Plain)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": map[string]any{"b": "1", "c": "x"}}, tree)
}

func TestDecode_mergeKey(t *testing.T) {
	t.Parallel()

	content := []byte(`
base: &base {x: 1, y: 1}
svc:
  <<: *base
  y: 2
`)
	for _, representation := range []loader.Representation{loader.Plain, loader.YAMLNode, loader.Ordered, loader.MapSlice} {
		t.Run(representation.String(), func(t *testing.T) {
			t.Parallel()

			tree, err := loader.Decode(content, loader.FormatYAML, representation)
			require.NoError(t, err)

			var svc map[string]int
			require.NoError(t, konfmerge.NewDocument(representation.Provider(), tree).Unmarshal("svc", &svc))
			assert.Equal(t, map[string]int{"x": 1, "y": 2}, svc)
		})
	}
}

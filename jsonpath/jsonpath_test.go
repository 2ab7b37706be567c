// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package jsonpath_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/konfmerge/jsonpath"
)

func TestParse(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		expr        string
		canonical   string
		scope       string
	}{
		{description: "root", expr: "$", canonical: "$", scope: "$"},
		{description: "dot notation", expr: "$.agents", canonical: "$['agents']", scope: "$['agents']"},
		{description: "dot notation without root", expr: "a.b.c", canonical: "$['a']['b']['c']", scope: "$['a']['b']['c']"},
		{description: "bracket single quote", expr: "$['agents']", canonical: "$['agents']", scope: "$['agents']"},
		{description: "bracket double quote", expr: `$["agents"]`, canonical: "$['agents']", scope: "$['agents']"},
		{description: "bracket without root", expr: "['a b']", canonical: "$['a b']", scope: "$['a b']"},
		{description: "bracket with dots", expr: "$['a.b'].c", canonical: "$['a.b']['c']", scope: "$['a.b']['c']"},
		{description: "escaped quote", expr: `$['it\'s']`, canonical: `$['it\'s']`, scope: `$['it\'s']`},
		{description: "index", expr: "$.agents[0].tools", canonical: "$['agents'][0]['tools']", scope: "$['agents']['tools']"},
		{description: "index without root", expr: "a[12]", canonical: "$['a'][12]", scope: "$['a']"},
		{description: "hyphen and underscore", expr: "$.x-custom_field", canonical: "$['x-custom_field']", scope: "$['x-custom_field']"},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			path, err := jsonpath.Parse(testcase.expr)
			require.NoError(t, err)
			assert.Equal(t, testcase.canonical, path.Canonical())
			assert.Equal(t, testcase.scope, path.Scope())
			assert.Equal(t, testcase.expr, path.String())
		})
	}
}

func TestParse_invalid(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description string
		expr        string
		err         string
	}{
		{
			description: "empty",
			expr:        "",
			err:         `invalid path expression "": empty expression at position 0`,
		},
		{
			description: "blank",
			expr:        "  ",
			err:         `invalid path expression "  ": empty expression at position 0`,
		},
		{
			description: "filter",
			expr:        "$.agents[?(@.x>1)]",
			err:         `invalid path expression "$.agents[?(@.x>1)]": filter expressions are not supported at position 9`,
		},
		{
			description: "script",
			expr:        "$.agents[(@.length-1)]",
			err:         `invalid path expression "$.agents[(@.length-1)]": script expressions are not supported at position 9`,
		},
		{
			description: "dot wildcard",
			expr:        "$.agents.*",
			err:         `invalid path expression "$.agents.*": wildcards are not supported at position 9`,
		},
		{
			description: "bracket wildcard",
			expr:        "$.agents[*]",
			err:         `invalid path expression "$.agents[*]": wildcards are not supported at position 9`,
		},
		{
			description: "index union",
			expr:        "$.agents[0,1]",
			err:         `invalid path expression "$.agents[0,1]": unions are not supported at position 10`,
		},
		{
			description: "name union",
			expr:        "$['a','b']",
			err:         `invalid path expression "$['a','b']": unions are not supported at position 5`,
		},
		{
			description: "slice",
			expr:        "$.agents[0:2]",
			err:         `invalid path expression "$.agents[0:2]": slices are not supported at position 10`,
		},
		{
			description: "recursive descent",
			expr:        "$..agents",
			err:         `invalid path expression "$..agents": recursive descent is not supported at position 2`,
		},
		{
			description: "negative index",
			expr:        "$.agents[-1]",
			err:         `invalid path expression "$.agents[-1]": negative indices are not supported at position 9`,
		},
		{
			description: "trailing dot",
			expr:        "$.agents.",
			err:         `invalid path expression "$.agents.": unexpected end of expression at position 9`,
		},
		{
			description: "unclosed bracket",
			expr:        "$['agents'",
			err:         `invalid path expression "$['agents'": unclosed bracket at position 10`,
		},
		{
			description: "unterminated string",
			expr:        "$['agents",
			err:         `invalid path expression "$['agents": unterminated string at position 9`,
		},
		{
			description: "missing separator after root",
			expr:        "$agents",
			err:         `invalid path expression "$agents": expected '.' or '[' after '$' at position 1`,
		},
		{
			description: "leading dot",
			expr:        ".agents",
			err:         `invalid path expression ".agents": expected field name at position 0`,
		},
		{
			description: "space",
			expr:        "$.a b",
			err:         `invalid path expression "$.a b": unexpected character ' ' at position 3`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			_, err := jsonpath.Parse(testcase.expr)
			require.ErrorIs(t, err, jsonpath.ErrInvalidPath)
			assert.EqualError(t, err, testcase.err)

			var pathErr *jsonpath.InvalidPathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, testcase.expr, pathErr.Expr)
		})
	}
}

func TestMustParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$['a']", jsonpath.MustParse("a").Canonical())
	assert.Panics(t, func() { jsonpath.MustParse("$.a[*]") })
}

func TestPath_build(t *testing.T) {
	t.Parallel()

	parent := jsonpath.MustParse("$.agents")
	first := parent.Index(0).Child("tools")
	second := parent.Index(1).Child("tools")

	assert.Equal(t, "$['agents'][0]['tools']", first.String())
	assert.Equal(t, "$['agents'][1]['tools']", second.String())
	assert.Equal(t, first.Scope(), second.Scope())
	assert.False(t, first.Equal(second))
	assert.True(t, jsonpath.MustParse("agents[0].tools").Equal(first))
	assert.Equal(t, "$.agents", parent.String())
	assert.Len(t, parent.Segments(), 1)
	assert.Equal(t, "$", jsonpath.Root().String())
}

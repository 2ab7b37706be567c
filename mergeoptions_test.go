// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/jsonpath"
)

func TestNewMergeOptions(t *testing.T) {
	t.Parallel()

	testcases := []struct {
		description  string
		distinctKeys map[string]string
		expected     string
		target       error
		err          string
	}{
		{
			description: "nil",
			expected:    "[]",
		},
		{
			description:  "rules",
			distinctKeys: map[string]string{"$.agents": "class", "agents[0].tools": "name"},
			expected:     "[$.agents=class, agents[0].tools=name]",
		},
		{
			description:  "filter",
			distinctKeys: map[string]string{"$.agents[?(@.x>1)]": "class"},
			target:       jsonpath.ErrInvalidPath,
			err: `parse distinct key path: invalid path expression "$.agents[?(@.x>1)]": ` +
				`filter expressions are not supported at position 9`,
		},
		{
			description:  "blank key",
			distinctKeys: map[string]string{"$.agents": " "},
			target:       konfmerge.ErrBlankDistinctKey,
			err:          "blank distinct key for path $.agents",
		},
		{
			description:  "indexed path",
			distinctKeys: map[string]string{"$.m[0]": "id"},
			target:       konfmerge.ErrIndexedDistinctPath,
			err:          "distinct key path ends with array index: $.m[0]",
		},
		{
			description:  "nested indexed path",
			distinctKeys: map[string]string{"$.agents": "class", "agents[0].tools[1]": "name"},
			target:       konfmerge.ErrIndexedDistinctPath,
			err:          "distinct key path ends with array index: agents[0].tools[1]",
		},
		{
			description:  "first invalid path in order",
			distinctKeys: map[string]string{"b[*]": "id", "a..b": "id"},
			target:       jsonpath.ErrInvalidPath,
			err: `parse distinct key path: invalid path expression "a..b": ` +
				`recursive descent is not supported at position 2`,
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			options, err := konfmerge.NewMergeOptions(testcase.distinctKeys)
			if testcase.err != "" {
				require.ErrorIs(t, err, testcase.target)
				assert.EqualError(t, err, testcase.err)

				return
			}
			require.NoError(t, err)
			assert.Equal(t, testcase.expected, options.String())
		})
	}
}

func TestMergeOptions_DistinctKey(t *testing.T) {
	t.Parallel()

	options, err := konfmerge.NewMergeOptions(map[string]string{
		"$.agents":       "class",
		"agents.tools":   "name",
		"$['a.b']['c']":  "id",
		"$.list[1].deep": "key",
	})
	require.NoError(t, err)
	assert.Equal(t, 4, options.Len())

	testcases := []struct {
		path     jsonpath.Path
		key      string
		notFound bool
	}{
		{path: jsonpath.Root().Child("agents"), key: "class"},
		{path: jsonpath.Root().Child("agents").Index(3).Child("tools"), key: "name"},
		{path: jsonpath.MustParse("$['agents'][0]['tools']"), key: "name"},
		{path: jsonpath.Root().Child("a.b").Child("c"), key: "id"},
		{path: jsonpath.MustParse("list.deep"), key: "key"},
		{path: jsonpath.Root().Child("a").Child("b").Child("c"), notFound: true},
		{path: jsonpath.Root(), notFound: true},
		{path: jsonpath.Root().Child("tools"), notFound: true},
	}

	for _, testcase := range testcases {
		t.Run(testcase.path.Canonical(), func(t *testing.T) {
			t.Parallel()

			key, ok := options.DistinctKey(testcase.path)
			assert.Equal(t, !testcase.notFound, ok)
			assert.Equal(t, testcase.key, key)
		})
	}
}

func TestMergeOptions_With(t *testing.T) {
	t.Parallel()

	var options konfmerge.MergeOptions
	assert.Equal(t, 0, options.Len())

	withAgents, err := options.With(jsonpath.MustParse("agents"), "class")
	require.NoError(t, err)
	replaced, err := withAgents.With(jsonpath.MustParse("$['agents']"), "name")
	require.NoError(t, err)

	assert.Equal(t, 0, options.Len())
	key, _ := withAgents.DistinctKey(jsonpath.MustParse("agents"))
	assert.Equal(t, "class", key)
	key, _ = replaced.DistinctKey(jsonpath.MustParse("agents"))
	assert.Equal(t, "name", key)
	assert.Equal(t, 1, replaced.Len())

	_, err = options.With(jsonpath.Root(), "")
	require.ErrorIs(t, err, konfmerge.ErrBlankDistinctKey)

	_, err = withAgents.With(jsonpath.Root().Child("m").Index(0), "id")
	require.ErrorIs(t, err, konfmerge.ErrIndexedDistinctPath)
	_, ok := withAgents.DistinctKey(jsonpath.MustParse("m"))
	assert.False(t, ok)
}

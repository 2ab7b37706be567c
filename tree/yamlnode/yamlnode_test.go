// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package yamlnode_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/konfmerge/internal/treetest"
	"github.com/nil-go/konfmerge/tree/yamlnode"
)

func TestProvider(t *testing.T) {
	t.Parallel()

	treetest.Run(t, treetest.Find("yamlnode"))
}

func TestProvider_alias(t *testing.T) {
	t.Parallel()

	root := parse(t, `
base: &base
  host: localhost
  ports: &ports [80, 443]
server: *base
ports: *ports
`)

	provider := yamlnode.New()
	server, ok := provider.Get(root, "server")
	require.True(t, ok)
	assert.True(t, provider.IsObject(server))
	host, ok := provider.Get(server, "host")
	require.True(t, ok)
	value, err := provider.Scalar(host)
	require.NoError(t, err)
	assert.Equal(t, "localhost", value)

	ports, _ := provider.Get(root, "ports")
	assert.True(t, provider.IsArray(ports))
	assert.True(t, provider.Contains(ports, mustNode(t, 443)))

	base, _ := provider.Get(root, "base")
	assert.True(t, provider.Equal(base, server))
}

func TestProvider_mergeKey(t *testing.T) {
	t.Parallel()

	root := parse(t, `
base: &base {host: localhost, port: 80}
tls: &tls {port: 443, secure: true}
single:
  <<: *base
  port: 8080
multiple:
  name: web
  <<: [*tls, *base]
`)

	provider := yamlnode.New()
	testcases := []struct {
		description string
		key         string
		expected    map[string]any
		keys        []string
	}{
		{
			description: "single mapping",
			key:         "single",
			expected:    map[string]any{"host": "localhost", "port": 8080},
			keys:        []string{"host", "port"},
		},
		{
			description: "sequence of mappings",
			key:         "multiple",
			expected:    map[string]any{"name": "web", "port": 443, "secure": true, "host": "localhost"},
			keys:        []string{"name", "port", "secure", "host"},
		},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			object, ok := provider.Get(root, testcase.key)
			require.True(t, ok)

			var keys []string
			actual := make(map[string]any)
			for key, node := range provider.Entries(object) {
				keys = append(keys, key)
				value, err := provider.Scalar(node)
				require.NoError(t, err)
				actual[key] = value
			}
			assert.Equal(t, testcase.keys, keys)
			assert.Equal(t, testcase.expected, actual)

			_, ok = provider.Get(object, "<<")
			assert.False(t, ok)
			assert.True(t, provider.Equal(object, mustNode(t, testcase.expected)))
		})
	}
}

func TestProvider_CopyObject_anchors(t *testing.T) {
	t.Parallel()

	root := parse(t, `
base: &base {host: localhost}
server:
  <<: *base
  port: 80
list: [*base]
`)

	provider := yamlnode.New()
	copied := provider.CopyObject(root)
	out, err := yaml.Marshal(copied)
	require.NoError(t, err)
	assert.NotContains(t, string(out), "&base")
	assert.NotContains(t, string(out), "*base")
	assert.NotContains(t, string(out), "<<")

	var actual map[string]any
	require.NoError(t, yaml.Unmarshal(out, &actual))
	assert.Equal(t, map[string]any{
		"base":   map[string]any{"host": "localhost"},
		"server": map[string]any{"host": "localhost", "port": 80},
		"list":   []any{map[string]any{"host": "localhost"}},
	}, actual)

	// The source keeps its anchors.
	out, err = yaml.Marshal(root)
	require.NoError(t, err)
	assert.Contains(t, string(out), "&base")
}

func TestProvider_Accepts(t *testing.T) {
	t.Parallel()

	provider := yamlnode.New()
	var document yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte("a: 1"), &document))

	assert.False(t, provider.Accepts(&document))
	assert.True(t, provider.Accepts(document.Content[0]))
	assert.False(t, provider.Accepts((*yaml.Node)(nil)))
	assert.False(t, provider.Accepts(map[string]any{"a": 1}))
}

func TestProvider_Equal(t *testing.T) {
	t.Parallel()

	provider := yamlnode.New()
	testcases := []struct {
		description string
		a, b        string
		expected    bool
	}{
		{description: "quoted string", a: `a: "1"`, b: `a: '1'`, expected: true},
		{description: "int and string", a: `a: 1`, b: `a: "1"`, expected: false},
		{description: "key order", a: `{a: 1, b: 2}`, b: `{b: 2, a: 1}`, expected: true},
		{description: "flow and block", a: "a: [1, 2]", b: "a:\n  - 1\n  - 2", expected: true},
		{description: "comments", a: "a: 1 # one", b: "a: 1", expected: true},
		{description: "null forms", a: "a: ~", b: "a: null", expected: true},
		{description: "bool and string", a: "a: true", b: "a: \"true\"", expected: false},
	}

	for _, testcase := range testcases {
		t.Run(testcase.description, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, testcase.expected, provider.Equal(parse(t, testcase.a), parse(t, testcase.b)))
		})
	}
}

func TestProvider_Put(t *testing.T) {
	t.Parallel()

	provider := yamlnode.New()
	root := parse(t, "a: 1 # keep\n")

	merged := provider.CopyObject(root)
	merged = provider.Put(merged, "b", mustNode(t, "two"))
	out, err := yaml.Marshal(merged)
	require.NoError(t, err)
	assert.Equal(t, "a: 1 # keep\nb: two\n", string(out))

	out, err = yaml.Marshal(root)
	require.NoError(t, err)
	assert.Equal(t, "a: 1 # keep\n", string(out))
}

func TestProvider_new(t *testing.T) {
	t.Parallel()

	provider := yamlnode.New()
	object := provider.NewObject()
	array := provider.NewArray()
	array = provider.Append(array, mustNode(t, 1))
	array = provider.Append(array, mustNode(t, "x"))
	object = provider.Put(object, "list", array)

	out, err := yaml.Marshal(object)
	require.NoError(t, err)
	assert.Equal(t, "list:\n    - 1\n    - x\n", string(out))
}

func parse(t *testing.T, content string) *yaml.Node {
	t.Helper()

	var document yaml.Node
	require.NoError(t, yaml.Unmarshal([]byte(content), &document))

	return document.Content[0]
}

func mustNode(t *testing.T, value any) *yaml.Node {
	t.Helper()

	node, err := yamlnode.FromPlain(value)
	require.NoError(t, err)

	return node
}

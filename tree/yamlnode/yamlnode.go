// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package yamlnode provides the tree representation made of *yaml.Node from gopkg.in/yaml.v3.
//
// Mapping, sequence and scalar nodes are objects, arrays and scalars.
// Alias nodes are resolved to the node they refer to, and document nodes are not accepted:
// pass the root content node (document.Content[0]) instead.
// Merge keys (`<<`) are expanded when entries are read.
// Merged nodes keep the comments and style of the nodes they are copied from,
// but not their anchors: aliases are replaced with the nodes they refer to.
package yamlnode

import (
	"fmt"
	"iter"
	"slices"

	"gopkg.in/yaml.v3"
)

// Provider is the konfmerge.TreeProvider for *yaml.Node trees.
type Provider struct {
	_ [0]func() // Ensure it's incomparable.
}

// New returns a Provider.
func New() Provider {
	return Provider{}
}

func (Provider) Name() string {
	return "yamlnode"
}

func (Provider) Accepts(node any) bool {
	n, ok := node.(*yaml.Node)
	if !ok || n == nil {
		return false
	}

	switch resolve(n).Kind { //nolint:exhaustive
	case yaml.MappingNode, yaml.SequenceNode, yaml.ScalarNode:
		return true
	default:
		return false
	}
}

func (Provider) IsObject(node any) bool {
	return is(node, yaml.MappingNode)
}

func (Provider) IsArray(node any) bool {
	return is(node, yaml.SequenceNode)
}

func (Provider) IsScalar(node any) bool {
	return is(node, yaml.ScalarNode)
}

func is(node any, kind yaml.Kind) bool {
	n, ok := node.(*yaml.Node)

	return ok && n != nil && resolve(n).Kind == kind
}

func (Provider) IsEmpty(object any) bool {
	return len(fields(resolve(object.(*yaml.Node)))) == 0
}

func (Provider) NewObject() any {
	return &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
}

func (Provider) CopyObject(object any) any {
	return clone(object.(*yaml.Node))
}

func (Provider) NewArray() any {
	return &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
}

func (Provider) CopyArray(array any) any {
	return clone(array.(*yaml.Node))
}

// clone copies the first level of the node. Merge keys are expanded,
// and the children are detached from the anchors of the source document.
func clone(node *yaml.Node) *yaml.Node {
	node = resolve(node)
	cloned := *node
	cloned.Anchor = ""
	cloned.Content = make([]*yaml.Node, 0, len(node.Content))
	if node.Kind == yaml.MappingNode {
		for _, field := range fields(node) {
			cloned.Content = append(cloned.Content, detachKey(field.key), detach(field.value))
		}

		return &cloned
	}
	for _, child := range node.Content {
		cloned.Content = append(cloned.Content, detach(child))
	}

	return &cloned
}

// detach returns a tree equal to node without aliases, anchors and merge keys,
// so it can be placed into another document. Nodes which have none are returned as is.
func detach(node *yaml.Node) *yaml.Node {
	node = resolve(node)
	if standalone(node) {
		return node
	}

	return clone(node)
}

func detachKey(key *yaml.Node) *yaml.Node {
	key = resolve(key)
	if key.Anchor == "" {
		return key
	}
	detached := *key
	detached.Anchor = ""

	return &detached
}

func standalone(node *yaml.Node) bool {
	if node.Kind == yaml.AliasNode || node.Anchor != "" {
		return false
	}
	for i, child := range node.Content {
		if node.Kind == yaml.MappingNode && i%2 == 0 && isMergeKey(child) {
			return false
		}
		if !standalone(child) {
			return false
		}
	}

	return true
}

type field struct {
	key   *yaml.Node
	value *yaml.Node
}

// fields returns the entries of the mapping with aliases resolved and merge keys (`<<`) expanded.
// Merged entries take the position of the merge key and never override explicit keys.
// With a sequence of mappings, earlier mappings override later ones.
func fields(mapping *yaml.Node) []field {
	explicit := make(map[string]struct{}, len(mapping.Content)/2) //nolint:mnd
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if !isMergeKey(mapping.Content[i]) {
			explicit[resolve(mapping.Content[i]).Value] = struct{}{}
		}
	}

	result := make([]field, 0, len(explicit))
	seen := make(map[string]struct{}, len(explicit))
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		key, value := mapping.Content[i], resolve(mapping.Content[i+1])
		if !isMergeKey(key) {
			result = append(result, field{key: key, value: value})
			seen[resolve(key).Value] = struct{}{}

			continue
		}

		sources := []*yaml.Node{value}
		if value.Kind == yaml.SequenceNode {
			sources = value.Content
		}
		for _, source := range sources {
			if source = resolve(source); source.Kind != yaml.MappingNode {
				continue
			}
			for _, merged := range fields(source) {
				name := resolve(merged.key).Value
				if _, ok := explicit[name]; ok {
					continue
				}
				if _, ok := seen[name]; ok {
					continue
				}
				result = append(result, merged)
				seen[name] = struct{}{}
			}
		}
	}

	return result
}

func isMergeKey(key *yaml.Node) bool {
	key = resolve(key)

	return key.Kind == yaml.ScalarNode && key.ShortTag() == "!!merge"
}

func (Provider) Entries(object any) iter.Seq2[string, any] {
	entries := fields(resolve(object.(*yaml.Node)))

	return func(yield func(string, any) bool) {
		for _, field := range entries {
			if !yield(resolve(field.key).Value, field.value) {
				return
			}
		}
	}
}

func (Provider) Get(object any, key string) (any, bool) {
	for _, field := range fields(resolve(object.(*yaml.Node))) {
		if resolve(field.key).Value == key {
			return field.value, true
		}
	}

	return nil, false
}

// Put replaces the explicit value under key, or appends the entry.
// An appended entry overrides the entry merged from a merge key.
func (Provider) Put(object any, key string, value any) any {
	node := resolve(object.(*yaml.Node))
	if index := indexOf(node, key); index >= 0 {
		node.Content[index+1] = detach(value.(*yaml.Node))

		return object
	}
	node.Content = append(node.Content, keyNode(key), detach(value.(*yaml.Node)))

	return object
}

func (p Provider) PutIfAbsent(object any, key string, value any) any {
	if _, ok := p.Get(object, key); ok {
		return object
	}
	node := resolve(object.(*yaml.Node))
	node.Content = append(node.Content, keyNode(key), detach(value.(*yaml.Node)))

	return object
}

// indexOf returns the index of the explicit key in the mapping content, or -1.
func indexOf(mapping *yaml.Node, key string) int {
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if !isMergeKey(mapping.Content[i]) && resolve(mapping.Content[i]).Value == key {
			return i
		}
	}

	return -1
}

func keyNode(key string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}
}

func (Provider) Append(array any, value any) any {
	node := resolve(array.(*yaml.Node))
	node.Content = append(node.Content, detach(value.(*yaml.Node)))

	return array
}

func (Provider) ForEach(array any, visit func(any)) {
	for _, node := range resolve(array.(*yaml.Node)).Content {
		visit(resolve(node))
	}
}

func (Provider) Elements(array any) iter.Seq[any] {
	content := resolve(array.(*yaml.Node)).Content

	return func(yield func(any) bool) {
		for _, node := range content {
			if !yield(resolve(node)) {
				return
			}
		}
	}
}

func (p Provider) Contains(array any, value any) bool {
	return slices.ContainsFunc(resolve(array.(*yaml.Node)).Content, func(node *yaml.Node) bool {
		return p.Equal(node, value)
	})
}

// Equal compares the kind, resolved tag and value of nodes, ignoring style, comments and positions.
// Mappings are compared after expanding merge keys.
func (Provider) Equal(a, b any) bool {
	return equal(a.(*yaml.Node), b.(*yaml.Node))
}

func equal(a, b *yaml.Node) bool {
	a, b = resolve(a), resolve(b)
	if a.Kind != b.Kind {
		return false
	}

	switch a.Kind { //nolint:exhaustive
	case yaml.ScalarNode:
		if a.ShortTag() != b.ShortTag() {
			return false
		}

		return a.ShortTag() == "!!null" || a.Value == b.Value
	case yaml.MappingNode:
		aFields, bFields := fields(a), fields(b)
		if len(aFields) != len(bFields) {
			return false
		}
		values := make(map[string]*yaml.Node, len(bFields))
		for _, field := range bFields {
			values[resolve(field.key).Value] = field.value
		}
		for _, field := range aFields {
			value, ok := values[resolve(field.key).Value]
			if !ok || !equal(field.value, value) {
				return false
			}
		}

		return true
	default:
		return slices.EqualFunc(a.Content, b.Content, equal)
	}
}

func (p Provider) Scalar(node any) (any, error) {
	if !p.IsScalar(node) {
		return nil, fmt.Errorf("%T is not a scalar node", node)
	}

	var value any
	if err := resolve(node.(*yaml.Node)).Decode(&value); err != nil {
		return nil, fmt.Errorf("decode scalar node: %w", err)
	}

	return value, nil
}

func resolve(node *yaml.Node) *yaml.Node {
	for node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	return node
}

// FromPlain converts a plain tree into a *yaml.Node tree. Keys of objects are sorted.
func FromPlain(value any) (*yaml.Node, error) {
	var node yaml.Node
	if err := node.Encode(value); err != nil {
		return nil, fmt.Errorf("encode yaml node: %w", err)
	}

	return &node, nil
}

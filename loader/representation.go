// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/magiconair/properties"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/tree/mapslice"
	"github.com/nil-go/konfmerge/tree/ordered"
	"github.com/nil-go/konfmerge/tree/plain"
	"github.com/nil-go/konfmerge/tree/yamlnode"
)

// Representation is the tree representation a file is decoded into.
type Representation int

const (
	// Plain decodes into map[string]any, []any and Go scalars. It is the default.
	Plain Representation = iota
	// YAMLNode decodes into *yaml.Node of gopkg.in/yaml.v3, keeping comments and key order.
	YAMLNode
	// Ordered decodes into insertion-ordered maps of github.com/wk8/go-ordered-map/v2.
	Ordered
	// MapSlice decodes into yaml.MapSlice of github.com/goccy/go-yaml.
	MapSlice
)

// ParseRepresentation returns the Representation with the given name, e.g. "yamlnode".
func ParseRepresentation(name string) (Representation, error) {
	switch strings.ToLower(name) {
	case "", "plain":
		return Plain, nil
	case "yamlnode", "yaml":
		return YAMLNode, nil
	case "ordered":
		return Ordered, nil
	case "mapslice":
		return MapSlice, nil
	default:
		return Plain, fmt.Errorf("%w: %q", ErrUnknownRepresentation, name)
	}
}

// Provider returns the TreeProvider of the representation.
func (r Representation) Provider() konfmerge.TreeProvider { //nolint:ireturn
	switch r {
	case YAMLNode:
		return yamlnode.New()
	case Ordered:
		return ordered.New()
	case MapSlice:
		return mapslice.New()
	default:
		return plain.New()
	}
}

func (r Representation) String() string {
	return r.Provider().Name()
}

// Decode decodes the content of the given format into a tree of the representation.
// Empty content decodes into an empty object.
func Decode(content []byte, format Format, representation Representation) (any, error) {
	if len(bytes.TrimSpace(content)) == 0 {
		return representation.Provider().NewObject(), nil
	}

	switch format {
	case FormatJSON:
		if representation == Plain {
			decoder := json.NewDecoder(bytes.NewReader(content))
			decoder.UseNumber()
			var tree any
			if err := decoder.Decode(&tree); err != nil {
				return nil, fmt.Errorf("decode json: %w", err)
			}

			return tree, nil
		}
		// JSON is a subset of YAML 1.2, and YAML decoders keep the key order.
		return decodeYAML(content, representation)
	case FormatYAML:
		return decodeYAML(content, representation)
	case FormatTOML:
		var table map[string]any
		if err := toml.Unmarshal(content, &table); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}

		return fromPlain(normalize(table), representation)
	case FormatProperties:
		loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
		props, err := loader.LoadBytes(content)
		if err != nil {
			return nil, fmt.Errorf("decode properties: %w", err)
		}

		return fromPlain(konfmerge.NewFlatDocument(props).Tree(), representation)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

func decodeYAML(content []byte, representation Representation) (any, error) {
	var document yaml.Node
	if err := yaml.Unmarshal(content, &document); err != nil {
		return nil, fmt.Errorf("decode yaml: %w", err)
	}
	if len(document.Content) == 0 {
		return representation.Provider().NewObject(), nil
	}
	root := document.Content[0]

	switch representation {
	case YAMLNode:
		return root, nil
	case Ordered:
		return ordered.FromNode(root)
	case MapSlice:
		return mapslice.FromNode(root)
	default:
		return konfmerge.Plain(yamlnode.New(), root)
	}
}

func fromPlain(tree any, representation Representation) (any, error) {
	switch representation {
	case YAMLNode:
		return yamlnode.FromPlain(tree)
	case Ordered:
		return ordered.FromPlain(tree), nil
	case MapSlice:
		return mapslice.FromPlain(tree), nil
	default:
		return tree, nil
	}
}

// normalize converts the arrays of tables decoded by github.com/BurntSushi/toml into []any.
func normalize(value any) any {
	switch value := value.(type) {
	case map[string]any:
		for key, v := range value {
			value[key] = normalize(v)
		}

		return value
	case []map[string]any:
		array := make([]any, 0, len(value))
		for _, table := range value {
			array = append(array, normalize(table))
		}

		return array
	case []any:
		for i, v := range value {
			value[i] = normalize(v)
		}

		return value
	default:
		return value
	}
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package main

import (
	"encoding"
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"github.com/BurntSushi/toml"
	gyaml "github.com/goccy/go-yaml"
	"github.com/magiconair/properties"
	orderedmap "github.com/wk8/go-ordered-map/v2"
	"gopkg.in/yaml.v3"

	"github.com/nil-go/konfmerge"
	"github.com/nil-go/konfmerge/loader"
)

// encode writes the document in the given format.
// JSON, YAML and properties keep the key order of the representation.
// YAML of the mapslice representation is encoded by github.com/goccy/go-yaml.
func encode(w io.Writer, format loader.Format, document konfmerge.Document) error {
	provider := document.Provider()

	switch format {
	case loader.FormatJSON:
		tree, err := toOrdered(provider, document.Tree())
		if err != nil {
			return err
		}
		data, err := json.MarshalIndent(tree, "", "  ")
		if err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))

		return err //nolint:wrapcheck
	case loader.FormatYAML:
		if items, ok := document.Tree().(gyaml.MapSlice); ok {
			data, err := gyaml.MarshalWithOptions(items, gyaml.Indent(2), gyaml.IndentSequence(true)) //nolint:mnd
			if err != nil {
				return fmt.Errorf("encode yaml: %w", err)
			}
			_, err = w.Write(data)

			return err //nolint:wrapcheck
		}

		node, ok := document.Tree().(*yaml.Node)
		if !ok {
			var err error
			if node, err = toNode(provider, document.Tree()); err != nil {
				return err
			}
		}
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2) //nolint:mnd
		if err := encoder.Encode(node); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		return encoder.Close() //nolint:wrapcheck
	case loader.FormatTOML:
		tree, err := document.Plain()
		if err != nil {
			return err //nolint:wrapcheck
		}
		if err := toml.NewEncoder(w).Encode(tree); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}

		return nil
	case loader.FormatProperties:
		props := properties.NewProperties()
		props.DisableExpansion = true
		if err := flatten(provider, document.Tree(), "", props); err != nil {
			return err
		}
		if _, err := props.Write(w, properties.UTF8); err != nil {
			return fmt.Errorf("encode properties: %w", err)
		}

		return nil
	default:
		return fmt.Errorf("%w: %s", loader.ErrUnknownFormat, format)
	}
}

func toOrdered(provider konfmerge.TreeProvider, node any) (any, error) {
	switch {
	case provider.IsObject(node):
		object := orderedmap.New[string, any]()
		for key, value := range provider.Entries(node) {
			v, err := toOrdered(provider, value)
			if err != nil {
				return nil, err
			}
			object.Set(key, v)
		}

		return object, nil
	case provider.IsArray(node):
		array := make([]any, 0)
		for value := range provider.Elements(node) {
			v, err := toOrdered(provider, value)
			if err != nil {
				return nil, err
			}
			array = append(array, v)
		}

		return array, nil
	default:
		return provider.Scalar(node) //nolint:wrapcheck
	}
}

func toNode(provider konfmerge.TreeProvider, node any) (*yaml.Node, error) {
	switch {
	case provider.IsObject(node):
		object := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for key, value := range provider.Entries(node) {
			v, err := toNode(provider, value)
			if err != nil {
				return nil, err
			}
			object.Content = append(object.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, v)
		}

		return object, nil
	case provider.IsArray(node):
		array := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for value := range provider.Elements(node) {
			v, err := toNode(provider, value)
			if err != nil {
				return nil, err
			}
			array.Content = append(array.Content, v)
		}

		return array, nil
	default:
		value, err := provider.Scalar(node)
		if err != nil {
			return nil, err //nolint:wrapcheck
		}
		scalar := &yaml.Node{}
		if err := scalar.Encode(value); err != nil {
			return nil, fmt.Errorf("encode scalar: %w", err)
		}

		return scalar, nil
	}
}

// flatten sets the leaves of the tree as properties, with array elements keyed by index.
func flatten(provider konfmerge.TreeProvider, node any, prefix string, props *properties.Properties) error {
	join := func(key string) string {
		if prefix == "" {
			return key
		}

		return prefix + "." + key
	}

	switch {
	case provider.IsObject(node):
		for key, value := range provider.Entries(node) {
			if err := flatten(provider, value, join(key), props); err != nil {
				return err
			}
		}
	case provider.IsArray(node):
		index := 0
		for value := range provider.Elements(node) {
			if err := flatten(provider, value, join(strconv.Itoa(index)), props); err != nil {
				return err
			}
			index++
		}
	default:
		value, err := provider.Scalar(node)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if _, _, err := props.Set(prefix, scalarString(value)); err != nil {
			return fmt.Errorf("set property %s: %w", prefix, err)
		}
	}

	return nil
}

func scalarString(value any) string {
	switch value := value.(type) {
	case nil:
		return ""
	case string:
		return value
	case encoding.TextMarshaler:
		if text, err := value.MarshalText(); err == nil {
			return string(text)
		}
	}

	return fmt.Sprint(value)
}

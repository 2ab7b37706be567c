// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"fmt"
	"strings"

	"github.com/go-viper/mapstructure/v2"

	"github.com/nil-go/konfmerge/internal/maps"
)

// Document is a loaded configuration tree with its metadata.
//
// To create a new Document, call [NewDocument].
type Document struct {
	metadata

	tree     any
	provider TreeProvider
}

// NewDocument creates a Document holding the tree of the given provider's representation.
//
// It panics if the provider is nil.
func NewDocument(provider TreeProvider, tree any, opts ...DocumentOption) Document {
	if provider == nil {
		panic("cannot create Document with nil provider")
	}

	document := Document{tree: tree, provider: provider}
	for _, opt := range opts {
		opt(&document.metadata)
	}

	return document
}

// Tree returns the root node of the document.
func (d Document) Tree() any {
	return d.tree
}

// Provider returns the TreeProvider of the document's representation.
func (d Document) Provider() TreeProvider { //nolint:ireturn
	return d.provider
}

// Plain returns the tree converted to map[string]any, []any and Go scalars.
func (d Document) Plain() (any, error) {
	if d.provider == nil {
		return nil, ErrNilProvider
	}

	return Plain(d.provider, d.tree)
}

// Unmarshal decodes the configuration under the given path into the object pointed to by target.
// The path uses `.` as delimiter, and empty path refers to the whole document.
func (d Document) Unmarshal(path string, target any) error {
	values, err := d.Plain()
	if err != nil {
		return err
	}

	decoder, err := mapstructure.NewDecoder(
		&mapstructure.DecoderConfig{
			Result:           target,
			WeaklyTypedInput: true,
			DecodeHook:       defaultDecodeHook,
			TagName:          "konf",
		},
	)
	if err != nil {
		return fmt.Errorf("new decoder: %w", err)
	}

	var keys []string
	if path != "" {
		keys = strings.Split(path, ".")
	}
	if err := decoder.Decode(maps.Sub(values, keys)); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	return nil
}

func (d Document) String() string {
	name := "<nil>"
	if d.provider != nil {
		name = d.provider.Name()
	}

	return fmt.Sprintf("%s[%s]@%d", d.describe(), name, d.precedence)
}

type metadata struct {
	precedence int
	namespace  string
	source     string
}

// Precedence returns the precedence of the document. Higher precedence wins conflicts.
func (m metadata) Precedence() int {
	return m.precedence
}

// Namespace returns the namespace label of the document.
func (m metadata) Namespace() string {
	return m.namespace
}

// Source returns the description of where the document was loaded from.
func (m metadata) Source() string {
	return m.source
}

func (m metadata) describe() string {
	if m.source == "" {
		return "document"
	}

	return m.source
}

//nolint:gochecknoglobals
var defaultDecodeHook = mapstructure.ComposeDecodeHookFunc(
	mapstructure.StringToTimeDurationHookFunc(),
	mapstructure.StringToSliceHookFunc(","),
	mapstructure.TextUnmarshallerHookFunc(),
)

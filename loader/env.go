// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/magiconair/properties"

	"github.com/nil-go/konfmerge"
)

// Env is a loader that loads configuration from environment variables.
//
// Names are split into nested keys joined by `.`, e.g. `SERVER_PORT=8080` is loaded as `server.port=8080`.
// Environment variables with empty value are treated as unset.
type Env struct {
	options
}

// NewEnv returns an Env with the given Option(s).
func NewEnv(opts ...Option) Env {
	return Env{options: apply(opts)}
}

// Load loads the environment variables into a FlatDocument, with keys in sorted order.
func (e Env) Load() (konfmerge.FlatDocument, error) {
	environ := os.Environ()
	slices.Sort(environ)

	props := properties.NewProperties()
	props.DisableExpansion = true
	for _, env := range environ {
		name, value, _ := strings.Cut(env, "=")
		if value == "" || !strings.HasPrefix(name, e.prefix) {
			continue
		}

		keys := e.splitter(strings.TrimPrefix(name, e.prefix))
		if len(keys) == 0 || len(keys) == 1 && keys[0] == "" {
			continue
		}
		if _, _, err := props.Set(strings.Join(keys, "."), value); err != nil {
			return konfmerge.FlatDocument{}, fmt.Errorf("set %s: %w", name, err)
		}
	}

	return konfmerge.NewFlatDocument(
		props,
		konfmerge.WithSource(e.String()),
		konfmerge.WithPrecedence(e.precedence),
		konfmerge.WithNamespace(e.namespace),
	), nil
}

// LoadTree loads the environment variables into a Document of the representation
// given by WithRepresentation, with nested keys split by `.`.
func (e Env) LoadTree() (konfmerge.Document, error) {
	flat, err := e.Load()
	if err != nil {
		return konfmerge.Document{}, err
	}
	tree, err := fromPlain(flat.Tree(), e.representation)
	if err != nil {
		return konfmerge.Document{}, fmt.Errorf("load %s: %w", e, err)
	}

	return konfmerge.NewDocument(
		e.representation.Provider(),
		tree,
		konfmerge.WithSource(e.String()),
		konfmerge.WithPrecedence(e.precedence),
		konfmerge.WithNamespace(e.namespace),
	), nil
}

func (e Env) String() string {
	if e.prefix == "" {
		return "env"
	}

	return "env:" + e.prefix
}

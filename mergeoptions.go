// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/nil-go/konfmerge/jsonpath"
)

// MergeOptions associates array locations with the field that identifies
// objects inside those arrays while merging.
//
// The zero value has no rules, so every array is merged by concatenation
// with duplicate elements dropped.
type MergeOptions struct {
	rules map[string]distinctKey
}

type distinctKey struct {
	path jsonpath.Path
	key  string
}

// NewMergeOptions creates MergeOptions from path expressions to identity key names,
// e.g. {"$.agents": "class"}.
//
// It returns error if any path expression is invalid or any key name is blank.
func NewMergeOptions(distinctKeys map[string]string) (MergeOptions, error) {
	var options MergeOptions
	// Sorted for deterministic error reporting.
	for _, expr := range slices.Sorted(maps.Keys(distinctKeys)) {
		path, err := jsonpath.Parse(expr)
		if err != nil {
			return MergeOptions{}, fmt.Errorf("parse distinct key path: %w", err)
		}
		if options, err = options.With(path, distinctKeys[expr]); err != nil {
			return MergeOptions{}, err
		}
	}

	return options, nil
}

// With returns a copy of the options with the distinct key rule for the given path added.
// A rule for the same scope is replaced.
// The path must address an array, so it cannot end with an index.
func (o MergeOptions) With(path jsonpath.Path, key string) (MergeOptions, error) {
	if strings.TrimSpace(key) == "" {
		return MergeOptions{}, fmt.Errorf("%w for path %s", ErrBlankDistinctKey, path)
	}
	if segments := path.Segments(); len(segments) > 0 && segments[len(segments)-1].IsIndex {
		return MergeOptions{}, fmt.Errorf("%w: %s", ErrIndexedDistinctPath, path)
	}

	rules := make(map[string]distinctKey, len(o.rules)+1)
	maps.Copy(rules, o.rules)
	rules[path.Scope()] = distinctKey{path: path, key: key}

	return MergeOptions{rules: rules}, nil
}

// DistinctKey returns the identity key name registered for the array at path.
func (o MergeOptions) DistinctKey(path jsonpath.Path) (string, bool) {
	rule, ok := o.rules[path.Scope()]

	return rule.key, ok
}

// Len returns the number of rules.
func (o MergeOptions) Len() int {
	return len(o.rules)
}

func (o MergeOptions) String() string {
	rules := make([]string, 0, len(o.rules))
	for _, scope := range slices.Sorted(maps.Keys(o.rules)) {
		rules = append(rules, o.rules[scope].path.String()+"="+o.rules[scope].key)
	}

	return "[" + strings.Join(rules, ", ") + "]"
}

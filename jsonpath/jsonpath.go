// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package jsonpath parses the restricted path expressions used to scope merge rules.
//
// A path addresses exactly one location in a tree, so only these forms are accepted:
//   - $ (root, optional)
//   - .field or field (dot notation)
//   - ['field'] or ["field"] (bracket notation)
//   - [0] (array index)
//
// Filters ([?...]), scripts ([(...)]), wildcards (*), unions ([a,b]), slices ([0:2])
// and recursive descent (..) select many locations and are rejected by [Parse].
package jsonpath

import (
	"strconv"
	"strings"
)

// Path is a parsed path expression.
//
// The zero value is the root path.
type Path struct {
	raw      string
	segments []Segment
}

// Segment is a single step of a Path, either a field name or an array index.
type Segment struct {
	Key   string
	Index int
	// IsIndex reports whether the segment is an array index rather than a field name.
	IsIndex bool
}

// Root returns the path of the tree root.
func Root() Path {
	return Path{}
}

// Parse parses the given expression into a Path.
func Parse(expr string) (Path, error) {
	if strings.TrimSpace(expr) == "" {
		return Path{}, &InvalidPathError{Expr: expr, Reason: "empty expression"}
	}

	p := &parser{input: expr}
	segments, err := p.parse()
	if err != nil {
		return Path{}, err
	}

	return Path{raw: expr, segments: segments}, nil
}

// MustParse is like Parse but panics if the expression cannot be parsed.
func MustParse(expr string) Path {
	path, err := Parse(expr)
	if err != nil {
		panic(err)
	}

	return path
}

// Segments returns a copy of the segments of the path.
func (p Path) Segments() []Segment {
	return append([]Segment(nil), p.segments...)
}

// Child returns a new path addressing the field key under p.
func (p Path) Child(key string) Path {
	return p.with(Segment{Key: key})
}

// Index returns a new path addressing the element at index under p.
func (p Path) Index(index int) Path {
	return p.with(Segment{Index: index, IsIndex: true})
}

func (p Path) with(segment Segment) Path {
	segments := make([]Segment, len(p.segments), len(p.segments)+1)
	copy(segments, p.segments)

	return Path{segments: append(segments, segment)}
}

// String returns the expression the path was parsed from,
// or the canonical form for paths built with Child and Index.
func (p Path) String() string {
	if p.raw != "" {
		return p.raw
	}

	return p.Canonical()
}

// Canonical returns the normalized bracket form of the path, e.g. $['agents'][0]['name'].
func (p Path) Canonical() string {
	return p.format(true)
}

// Scope returns the canonical form without index segments.
//
// Merge rules are matched by scope, so the position of an element in its array
// does not change which rule applies to arrays nested inside the element.
func (p Path) Scope() string {
	return p.format(false)
}

func (p Path) format(withIndex bool) string {
	builder := &strings.Builder{}
	builder.WriteByte('$')
	for _, segment := range p.segments {
		if segment.IsIndex {
			if withIndex {
				builder.WriteByte('[')
				builder.WriteString(strconv.Itoa(segment.Index))
				builder.WriteByte(']')
			}

			continue
		}
		builder.WriteString("['")
		builder.WriteString(strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(segment.Key))
		builder.WriteString("']")
	}

	return builder.String()
}

// Equal reports whether p and other address the same location.
func (p Path) Equal(other Path) bool {
	return p.Canonical() == other.Canonical()
}

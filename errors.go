// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"errors"
	"fmt"

	"github.com/nil-go/konfmerge/jsonpath"
)

var (
	// ErrRepresentationMismatch is returned when merging trees of different representations.
	ErrRepresentationMismatch = errors.New("tree representation mismatch")
	// ErrNilProvider is returned when merging a Document which has no TreeProvider.
	ErrNilProvider = errors.New("document has no tree provider")
	// ErrEqualPrecedence is returned under RejectEqual when both documents have the same precedence.
	ErrEqualPrecedence = errors.New("documents have equal precedence")
	// ErrBlankDistinctKey is returned when a distinct-key rule has a blank key name.
	ErrBlankDistinctKey = errors.New("blank distinct key")
	// ErrIndexedDistinctPath is returned when the path of a distinct-key rule ends with an array index.
	ErrIndexedDistinctPath = errors.New("distinct key path ends with array index")
	// ErrUnsupportedNode is matched by UnsupportedNodeError.
	ErrUnsupportedNode = errors.New("unsupported node")

	errNoDocument = errors.New("no document to merge")
)

// UnsupportedNodeError is returned when the merger meets a node
// which is neither object, array nor recognized scalar of the representation.
type UnsupportedNodeError struct {
	Path jsonpath.Path
	Node any
}

func (e *UnsupportedNodeError) Error() string {
	return fmt.Sprintf("unsupported node of type %T at %s", e.Node, e.Path.Canonical())
}

func (e *UnsupportedNodeError) Is(target error) bool {
	return target == ErrUnsupportedNode
}

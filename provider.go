// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import "iter"

// TreeProvider is the interface that lets the merger inspect and build trees
// of one concrete representation without knowing the representation.
//
// Nodes are opaque values of the representation: objects, arrays or scalars.
// Object operations called with a non-object (or array operations with a non-array)
// violate the contract and may panic.
//
// Put, PutIfAbsent and Append return the resulting node, which may be a reallocated value
// for slice-backed representations, like the built-in append.
type TreeProvider interface {
	// Name identifies the representation. Trees from providers with different names cannot be merged.
	Name() string
	// Accepts reports whether node is an object, array or scalar of the representation.
	Accepts(node any) bool

	IsObject(node any) bool
	IsArray(node any) bool
	IsScalar(node any) bool
	// IsEmpty reports whether the object has no entries.
	IsEmpty(object any) bool

	NewObject() any
	// CopyObject returns a new object holding the same entries as object.
	CopyObject(object any) any
	NewArray() any
	// CopyArray returns a new array holding the same elements as array.
	CopyArray(array any) any

	Entries(object any) iter.Seq2[string, any]
	// Get returns the value under key, and false if the key is absent.
	// A present null value returns true.
	Get(object any, key string) (any, bool)
	Put(object any, key string, value any) any
	PutIfAbsent(object any, key string, value any) any

	Append(array any, value any) any
	ForEach(array any, visit func(any))
	Elements(array any) iter.Seq[any]
	// Contains reports whether array holds an element Equal to value.
	Contains(array any, value any) bool

	// Equal reports whether a and b are structurally equal.
	// Objects compare regardless of entry order.
	Equal(a, b any) bool
	// Scalar returns the native Go value of a scalar node.
	Scalar(node any) (any, error)
}

// Copyright (c) 2024 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package internal

import (
	"reflect"
	"sync/atomic"
)

// NoCopy detects whether the T holding it has been copied by value after first use.
// Embed it as a field and call Check at the start of every method.
type NoCopy[T any] struct {
	self atomic.Pointer[NoCopy[T]]
}

// Check records the address of the receiver on first call,
// and panics if a later call sees a different address.
func (c *NoCopy[T]) Check() {
	if c.self.CompareAndSwap(nil, c) || c.self.Load() == c {
		return
	}

	panic("illegal use of " + reflect.TypeFor[T]().String() + " copied by value after first use")
}

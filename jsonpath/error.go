// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package jsonpath

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is matched by every error returned from Parse.
var ErrInvalidPath = errors.New("invalid path expression")

// InvalidPathError describes why an expression could not be parsed.
type InvalidPathError struct {
	// Expr is the offending expression.
	Expr string
	// Pos is the byte offset where parsing stopped.
	Pos    int
	Reason string
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("invalid path expression %q: %s at position %d", e.Expr, e.Reason, e.Pos)
}

func (e *InvalidPathError) Is(target error) bool {
	return target == ErrInvalidPath
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/nil-go/konfmerge/jsonpath"
)

// Merger merges configuration documents by precedence.
//
// To create a new Merger, call [New]. A Merger holds no state between merges
// and is safe for concurrent use.
type Merger struct {
	logger       *slog.Logger
	mergeOptions MergeOptions
	tieBreak     TieBreak
}

// New creates a new Merger with the given Option(s).
func New(opts ...Option) *Merger {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	option.logger = option.logger.WithGroup("konfmerge")

	return (*Merger)(option)
}

// Merge merges two documents with the given options and the default tie break.
// See [Merger.Merge].
func Merge(first, second Document, mergeOptions MergeOptions) (Document, error) {
	return New(WithMergeOptions(mergeOptions)).Merge(first, second)
}

// Merge merges two documents into a new Document.
//
// The document with higher precedence wins conflicts, regardless of the argument order.
// The result carries the precedence, namespace and source of the winning document.
// Neither input tree is modified.
//
// It returns error without a partial result if the documents have different
// tree representations or a node cannot be merged.
func (m *Merger) Merge(first, second Document) (Document, error) {
	if err := checkRepresentation(first, second); err != nil {
		return Document{}, err
	}

	firstWins, err := m.firstWins(first.metadata, second.metadata)
	if err != nil {
		return Document{}, err
	}
	high, low := second, first
	if firstWins {
		high, low = first, second
	}

	merger := treeMerger{
		provider: high.provider,
		options:  m.mergeOptions,
		logger:   m.logger,
	}
	tree, err := merger.merge(high.tree, low.tree, jsonpath.Root())
	if err != nil {
		return Document{}, fmt.Errorf("merge %s into %s: %w", low, high, err)
	}
	m.logger.LogAttrs(
		context.Background(), slog.LevelDebug,
		"Documents have been merged.",
		slog.String("high", high.String()),
		slog.String("low", low.String()),
	)

	return Document{metadata: high.metadata, tree: tree, provider: high.provider}, nil
}

// MergeAll merges the given documents into one.
//
// Documents are folded from the lowest precedence to the highest,
// so each document wins against every document with lower precedence.
// Documents with equal precedence are ordered by the tie break, in argument order.
func (m *Merger) MergeAll(documents ...Document) (Document, error) {
	if len(documents) == 0 {
		return Document{}, errNoDocument
	}

	sorted := slices.Clone(documents)
	slices.SortStableFunc(sorted, func(a, b Document) int {
		return cmp.Compare(a.precedence, b.precedence)
	})

	merged := sorted[0]
	if err := checkRepresentation(merged, merged); err != nil {
		return Document{}, err
	}
	for _, document := range sorted[1:] {
		var err error
		if merged, err = m.Merge(merged, document); err != nil {
			return Document{}, err
		}
	}

	return merged, nil
}

// firstWins reports whether the first document wins conflicts against the second.
func (m *Merger) firstWins(first, second metadata) (bool, error) {
	switch {
	case first.precedence > second.precedence:
		return true, nil
	case first.precedence < second.precedence:
		return false, nil
	}

	switch m.tieBreak {
	case PreferFirst:
		return true, nil
	case RejectEqual:
		return false, fmt.Errorf("%w (%d): %s and %s", ErrEqualPrecedence, first.precedence, first.describe(), second.describe())
	default:
		return false, nil
	}
}

func checkRepresentation(first, second Document) error {
	if first.provider == nil || second.provider == nil {
		return ErrNilProvider
	}
	if first.provider.Name() != second.provider.Name() {
		return fmt.Errorf("%w: %s and %s", ErrRepresentationMismatch, first.provider.Name(), second.provider.Name())
	}
	for _, document := range []Document{first, second} {
		if !document.provider.Accepts(document.tree) {
			return fmt.Errorf("%w: %s holds %T", ErrRepresentationMismatch, document, document.tree)
		}
	}

	return nil
}

// TieBreak decides which of two documents with equal precedence wins conflicts.
type TieBreak int

const (
	// PreferSecond lets the second argument of Merge win. It is the default.
	PreferSecond TieBreak = iota
	// PreferFirst lets the first argument of Merge win.
	PreferFirst
	// RejectEqual fails the merge with ErrEqualPrecedence.
	RejectEqual
)

func (t TieBreak) String() string {
	switch t {
	case PreferSecond:
		return "PreferSecond"
	case PreferFirst:
		return "PreferFirst"
	case RejectEqual:
		return "RejectEqual"
	default:
		return fmt.Sprintf("TieBreak(%d)", int(t))
	}
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package konfmerge

import "log/slog"

// WithLogger provides the slog.Logger for Merger.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

// WithMergeOptions provides the distinct-key rules used when merging arrays.
func WithMergeOptions(mergeOptions MergeOptions) Option {
	return func(options *options) {
		options.mergeOptions = mergeOptions
	}
}

// WithTieBreak provides how documents with equal precedence are ordered.
//
// The default is PreferSecond.
func WithTieBreak(tieBreak TieBreak) Option {
	return func(options *options) {
		options.tieBreak = tieBreak
	}
}

type (
	// Option configures a Merger with specific options.
	Option  func(options *options)
	options Merger
)

// WithPrecedence provides the precedence of the document. Higher precedence wins conflicts.
func WithPrecedence(precedence int) DocumentOption {
	return func(m *metadata) {
		m.precedence = precedence
	}
}

// WithNamespace provides the namespace label of the document.
func WithNamespace(namespace string) DocumentOption {
	return func(m *metadata) {
		m.namespace = namespace
	}
}

// WithSource provides the description of where the document was loaded from, e.g. file:config.yaml.
func WithSource(source string) DocumentOption {
	return func(m *metadata) {
		m.source = source
	}
}

// DocumentOption configures the metadata of a Document or FlatDocument.
type DocumentOption func(*metadata)

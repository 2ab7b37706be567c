// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader

import (
	"io/fs"
	"log/slog"
	"strings"
)

// WithFS provides the fs.FS which File reads from, with the path relative to its root.
//
// By default, File reads from the OS file system.
func WithFS(fs fs.FS) Option {
	return func(options *options) {
		options.fs = fs
	}
}

// WithFormat provides the format used to decode the file.
//
// By default, the format is detected from the file extension or content.
func WithFormat(format Format) Option {
	return func(options *options) {
		options.format = format
	}
}

// WithRepresentation provides the tree representation the file is decoded into.
//
// The default is Plain.
func WithRepresentation(representation Representation) Option {
	return func(options *options) {
		options.representation = representation
	}
}

// WithCache provides the Cache which holds the file contents.
//
// Files are cached by their cleaned path, or by "fs:///" and the path when read from an fs.FS.
// Files of different fs.FS values with the same path share one entry,
// unless they are distinguished by WithCacheKey.
//
// By default, the file is read on every Load.
func WithCache(cache *Cache) Option {
	return func(options *options) {
		options.cache = cache
	}
}

// WithCacheKey provides the key which identifies the file in the Cache given by WithCache.
// Cache.Watch invalidates OS files by their cleaned path, so watched files should keep the default key.
func WithCacheKey(key string) Option {
	return func(options *options) {
		options.cacheKey = key
	}
}

// WithPrecedence provides the precedence of the loaded document.
func WithPrecedence(precedence int) Option {
	return func(options *options) {
		options.precedence = precedence
	}
}

// WithNamespace provides the namespace label of the loaded document.
func WithNamespace(namespace string) Option {
	return func(options *options) {
		options.namespace = namespace
	}
}

// IgnoreFileNotExist returns an empty document instead of error if the file is not found.
func IgnoreFileNotExist() Option {
	return func(options *options) {
		options.ignoreNotExist = true
	}
}

// WithPrefix provides the prefix of environment variables Env loads.
// Only environment variables with names that start with the prefix are loaded,
// and the prefix is removed from the key.
//
// By default, it has no prefix which loads all environment variables.
func WithPrefix(prefix string) Option {
	return func(options *options) {
		options.prefix = prefix
	}
}

// WithNameSplitter provides the function used to split environment variable names into nested keys.
// If it returns nil, []string{} or []string{""}, the variable is ignored.
//
// By default, the name is lower-cased and split by `_`, e.g. "SERVER_PORT" into "server" and "port".
func WithNameSplitter(splitter func(string) []string) Option {
	return func(options *options) {
		options.splitter = splitter
	}
}

// WithLogger provides the slog.Logger for loaders and Cache.
//
// By default, it uses slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(options *options) {
		options.logger = logger
	}
}

type (
	// Option configures File, Env and Cache with specific options.
	// Options which do not apply to the configured value are ignored.
	Option  func(options *options)
	options struct {
		logger         *slog.Logger
		fs             fs.FS
		path           string
		format         Format
		representation Representation
		cache          *Cache
		cacheKey       string
		precedence     int
		namespace      string
		ignoreNotExist bool
		prefix         string
		splitter       func(string) []string
	}
)

func apply(opts []Option) options {
	option := &options{}
	for _, opt := range opts {
		opt(option)
	}
	if option.logger == nil {
		option.logger = slog.Default()
	}
	if option.splitter == nil {
		option.splitter = func(name string) []string {
			return strings.Split(strings.ToLower(name), "_")
		}
	}

	return *option
}

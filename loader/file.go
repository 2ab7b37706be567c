// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Package loader loads configuration documents from files and environment variables.
//
// File loads a file from the OS file system, or from the given fs.FS,
// and decodes it as JSON, YAML, TOML or Java properties into a [konfmerge.Document]
// of the chosen tree representation. Env loads environment variables into
// a [konfmerge.FlatDocument].
//
// Loaded file contents can be shared with a [Cache], which loads each file at most once
// until it is invalidated, e.g. by [Cache.Watch] when the file changes.
package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/magiconair/properties"

	"github.com/nil-go/konfmerge"
)

var (
	// ErrUnknownFormat is returned for a format which is not supported.
	ErrUnknownFormat = errors.New("unknown format")
	// ErrUnknownRepresentation is returned for a tree representation which is not supported.
	ErrUnknownRepresentation = errors.New("unknown tree representation")
)

// File is a loader that loads configuration from a file.
//
// To create a new File, call [New].
type File struct {
	options
}

// New creates a File with the given path and Option(s).
//
// It panics if the path is empty.
func New(path string, opts ...Option) File {
	if path == "" {
		panic("cannot create File with empty path")
	}

	option := apply(opts)
	option.path = path
	option.logger = option.logger.WithGroup("konfmerge.file")

	return File{options: option}
}

// Load reads and decodes the file into a Document.
//
// If the file does not exist and IgnoreFileNotExist is set,
// it returns a Document holding an empty object.
func (f File) Load() (konfmerge.Document, error) {
	provider := f.representation.Provider()

	content, err := f.read()
	if err != nil {
		if !f.ignoreNotExist || !errors.Is(err, fs.ErrNotExist) {
			return konfmerge.Document{}, err
		}

		f.logger.LogAttrs(
			context.Background(), slog.LevelWarn,
			"Config file does not exist.",
			slog.String("file", f.path),
		)

		return konfmerge.NewDocument(provider, provider.NewObject(), f.documentOptions()...), nil
	}

	format := f.format
	if format == FormatAuto {
		format = DetectFormat(f.path, content)
	}
	tree, err := Decode(content, format, f.representation)
	if err != nil {
		return konfmerge.Document{}, fmt.Errorf("load %s: %w", f, err)
	}

	return konfmerge.NewDocument(provider, tree, f.documentOptions()...), nil
}

// LoadFlat reads the file as Java properties into a FlatDocument.
func (f File) LoadFlat() (konfmerge.FlatDocument, error) {
	content, err := f.read()
	if err != nil {
		if !f.ignoreNotExist || !errors.Is(err, fs.ErrNotExist) {
			return konfmerge.FlatDocument{}, err
		}

		f.logger.LogAttrs(
			context.Background(), slog.LevelWarn,
			"Config file does not exist.",
			slog.String("file", f.path),
		)

		return konfmerge.NewFlatDocument(nil, f.documentOptions()...), nil
	}

	loader := &properties.Loader{Encoding: properties.UTF8, DisableExpansion: true}
	props, err := loader.LoadBytes(content)
	if err != nil {
		return konfmerge.FlatDocument{}, fmt.Errorf("load %s: %w", f, err)
	}

	return konfmerge.NewFlatDocument(props, f.documentOptions()...), nil
}

func (f File) read() ([]byte, error) {
	load := func() ([]byte, error) {
		var (
			content []byte
			err     error
		)
		if f.fs == nil {
			content, err = os.ReadFile(f.path)
		} else {
			content, err = fs.ReadFile(f.fs, f.path)
		}
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}

		return content, nil
	}

	if f.cache == nil {
		return load()
	}

	return f.cache.Read(f.key(), load)
}

// key identifies the file in Cache. OS files are keyed by their cleaned path.
func (f File) key() string {
	if f.cacheKey != "" {
		return f.cacheKey
	}
	if f.fs == nil {
		return filepath.Clean(f.path)
	}

	return "fs:///" + f.path
}

func (f File) documentOptions() []konfmerge.DocumentOption {
	return []konfmerge.DocumentOption{
		konfmerge.WithSource(f.String()),
		konfmerge.WithPrecedence(f.precedence),
		konfmerge.WithNamespace(f.namespace),
	}
}

func (f File) String() string {
	if f.fs == nil {
		return "file:" + f.path
	}

	return "fs:///" + f.path
}

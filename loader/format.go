// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

package loader

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Format is the syntax of a configuration file.
type Format int

const (
	// FormatAuto detects the format by the file extension, or by the content
	// if the extension is unknown.
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatTOML
	// FormatProperties is the Java properties format. Dotted keys are nested when loaded as a tree.
	FormatProperties
)

// ParseFormat returns the Format with the given name, e.g. "yaml".
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "toml":
		return FormatTOML, nil
	case "properties":
		return FormatProperties, nil
	default:
		return FormatAuto, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatJSON:
		return "json"
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	case FormatProperties:
		return "properties"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// DetectFormat returns the format of the file by its extension.
// For unknown extensions, content is tried as JSON, then TOML, and YAML otherwise.
func DetectFormat(path string, content []byte) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml", ".tml":
		return FormatTOML
	case ".properties":
		return FormatProperties
	}

	trimmed := bytes.TrimSpace(content)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') && json.Valid(trimmed) {
		return FormatJSON
	}
	// YAML like `key: value` is not valid TOML, while TOML like `key = value` is a valid YAML scalar.
	var table map[string]any
	if len(trimmed) > 0 && toml.Unmarshal(trimmed, &table) == nil {
		return FormatTOML
	}

	return FormatYAML
}

// Copyright (c) 2026 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

// Command konfmerge merges configuration files by precedence and writes the result to stdout.
//
// Usage:
//
//	konfmerge [flags] FILE[@PRECEDENCE]...
//
// Files without explicit precedence take their argument position, so later files win.
package main

import "os"

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

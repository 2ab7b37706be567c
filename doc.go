// Copyright (c) 2023 The konf authors
// Use of this source code is governed by a MIT license found in the LICENSE file.

/*
Package konfmerge merges layered configuration documents by precedence.

A [Document] is a configuration tree with precedence and namespace metadata.
The tree can be any representation which has a [TreeProvider], such as
plain map[string]any trees, *yaml.Node trees or insertion-ordered maps
(see the packages under tree/). [Merger.Merge] merges two documents of the same
representation: for conflicting values the document with higher precedence wins,
objects are merged recursively, and arrays are concatenated without duplicates.

Arrays of objects can be merged by identity instead, with [MergeOptions]
which associate array locations (see package jsonpath) with the field identifying
their elements, e.g. {"$.agents": "class"}.

[FlatDocument] holds flat key/value configuration like Java properties,
and [Merger.MergeFlat] merges them with the same precedence rules.
*/
package konfmerge

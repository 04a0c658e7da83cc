// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package traversal classifies paths that may climb out of their starting
// directory. Detection is two-phase: MightEscape is a cheap admission filter
// run on raw import strings before any join/resolve work, Escapes is the
// exact check run after lexical normalization has cancelled matched
// `segment/..` pairs.
package traversal

import "strings"

// MightEscape reports whether raw could, after normalization, climb above
// its starting directory. It scans segments left to right, tolerating both
// `/` and `\` separators (unnormalized paths may mix both), treating `.`
// and empty segments as neutral, and flags the path as soon as the number
// of `..` segments reaches the number of ordinary segments seen so far.
//
// The filter over-matches and never under-matches: a net-zero path such as
// `./a/b/../..` is flagged even though it stays put, but no path whose
// normalized form starts with `..` slips through. Counting matched nested
// segments against `..` segments exactly is normalization's job, not this
// filter's.
func MightEscape(raw string) bool {
	down, up := 0, 0
	for _, seg := range strings.FieldsFunc(raw, isSeparator) {
		switch seg {
		case ".":
		case "..":
			up++
			if up >= down {
				return true
			}
		default:
			down++
		}
	}
	return false
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}

// Escapes reports whether an already-normalized, slash-separated path lies
// outside its starting directory. After normalization this is exact: the
// path escapes if and only if it is `..` or begins with a `..` segment.
func Escapes(normalized string) bool {
	return normalized == ".." || strings.HasPrefix(normalized, "../")
}

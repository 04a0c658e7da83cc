// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package pathutil

import (
	"path/filepath"
	"strings"
)

// Normalize collapses `.`/`..` segments and redundant separators lexically,
// then converts the host's native separator to `/`. It is idempotent and
// never touches the filesystem.
func Normalize(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}

// NormalizedJoin joins path segments and normalizes the result.
func NormalizedJoin(parts ...string) string {
	return Normalize(filepath.Join(parts...))
}

// RelativeTo returns target expressed relative to base, normalized.
// Both arguments must be absolute or both relative.
func RelativeTo(base, target string) (string, error) {
	rel, err := filepath.Rel(base, target)
	if err != nil {
		return "", err
	}
	return Normalize(rel), nil
}

// HasPathPrefix reports whether p is prefix itself or lies underneath it,
// comparing whole segments on normalized slash-separated paths.
func HasPathPrefix(p, prefix string) bool {
	return p == prefix || strings.HasPrefix(p, prefix+"/")
}

// TrimPathPrefix removes prefix (a whole-segment prefix) from p.
// TrimPathPrefix("modules/lorem/baz.js", "modules/lorem") == "baz.js".
func TrimPathPrefix(p, prefix string) string {
	if p == prefix {
		return "."
	}
	return strings.TrimPrefix(p, prefix+"/")
}

// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package manifest

import "fmt"

// FieldKind tags the two shapes an import-bearing manifest field can take.
type FieldKind int

const (
	// StringEntries is an array of bare path strings (scripts, esmodules,
	// styles).
	StringEntries FieldKind = iota
	// PathObjectEntries is an array of objects carrying a path property
	// (packs, languages).
	PathObjectEntries
)

// Field describes one import-bearing manifest field and how to read and
// rewrite its entries.
type Field struct {
	Name string
	Kind FieldKind

	// ScriptsFallback marks fields whose entries may fall back to the
	// host-provided scripts directory when package-root-relative resolution
	// fails. packs never falls back; the host platform itself resolves
	// packs asymmetrically and the bundler mirrors that, it is not a
	// design preference.
	ScriptsFallback bool
}

// ImportFields enumerates the declared import-bearing fields in walk order.
var ImportFields = []Field{
	{Name: "scripts", Kind: StringEntries, ScriptsFallback: true},
	{Name: "esmodules", Kind: StringEntries, ScriptsFallback: true},
	{Name: "styles", Kind: StringEntries, ScriptsFallback: true},
	{Name: "packs", Kind: PathObjectEntries, ScriptsFallback: false},
	{Name: "languages", Kind: PathObjectEntries, ScriptsFallback: true},
}

// Ref names one entry for diagnostics, e.g. "packs[0].path".
func (f Field) Ref(index int) string {
	if f.Kind == PathObjectEntries {
		return fmt.Sprintf("%s[%d].path", f.Name, index)
	}
	return fmt.Sprintf("%s[%d]", f.Name, index)
}

// Entries returns the field's array from doc, or nil if absent.
func (f Field) Entries(doc map[string]any) []any {
	entries, _ := doc[f.Name].([]any)
	return entries
}

// EntryPath extracts the declared path of one entry. ok is false when the
// entry does not have the field's declared shape.
func (f Field) EntryPath(entry any) (string, bool) {
	switch f.Kind {
	case StringEntries:
		s, ok := entry.(string)
		return s, ok
	case PathObjectEntries:
		obj, ok := entry.(map[string]any)
		if !ok {
			return "", false
		}
		p, ok := obj["path"].(string)
		return p, ok
	default:
		return "", false
	}
}

// SetEntryPath rewrites the declared path of entries[index] in place.
func (f Field) SetEntryPath(entries []any, index int, path string) error {
	switch f.Kind {
	case StringEntries:
		entries[index] = path
		return nil
	case PathObjectEntries:
		obj, ok := entries[index].(map[string]any)
		if !ok {
			return fmt.Errorf("%w: %s is not a path object", ErrInvalidManifest, f.Ref(index))
		}
		obj["path"] = path
		return nil
	default:
		return fmt.Errorf("%w: unknown field kind %d", ErrInvalidManifest, f.Kind)
	}
}

// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads and rewrites the package manifest document
// (module.json or system.json). The document is kept as raw JSON alongside a
// generic decoding so that rewriting import paths preserves every field the
// bundler does not know about.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"
)

var ErrInvalidManifest = fmt.Errorf("invalid package manifest")

type Manifest struct {
	AbsolutePath string

	// Doc is the decoded manifest document as declared.
	Doc map[string]any

	contents []byte
}

func Read(filePath string) (*Manifest, error) {
	abs, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}
	contents, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}
	return ReadFromContents(contents, abs)
}

func ReadFromContents(contents []byte, absPath string) (*Manifest, error) {
	var doc map[string]any
	if err := json.Unmarshal(contents, &doc); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}
	return &Manifest{AbsolutePath: absPath, Doc: doc, contents: contents}, nil
}

// ID returns the package id, falling back to the legacy name field.
func (m *Manifest) ID() string {
	if id, ok := m.Doc["id"].(string); ok {
		return id
	}
	name, _ := m.Doc["name"].(string)
	return name
}

func (m *Manifest) Title() string {
	title, _ := m.Doc["title"].(string)
	return title
}

func (m *Manifest) Version() string {
	version, _ := m.Doc["version"].(string)
	return version
}

// Esmodules returns the declared esmodules entries that are plain strings.
func (m *Manifest) Esmodules() []string {
	entries, ok := m.Doc["esmodules"].([]any)
	if !ok {
		return nil
	}
	var out []string
	for _, e := range entries {
		if s, ok := e.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

// DeepCopy re-decodes the original contents into a fresh document, so phase
// B rewrites never touch the declared state cached at build start.
func (m *Manifest) DeepCopy() (map[string]any, error) {
	var doc map[string]any
	if err := json.Unmarshal(m.contents, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Encode serializes a manifest document the way the host expects it on
// disk: pretty-printed with 4-space indentation.
func Encode(doc map[string]any) ([]byte, error) {
	out, err := json.MarshalIndent(doc, "", "    ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/manifest"
)

func docManifest(t *testing.T, contents string) *manifest.Manifest {
	t.Helper()
	m, err := manifest.ReadFromContents([]byte(contents), "/pkg/module.json")
	require.NoError(t, err)
	return m
}

func fields(diags diagnostics.Collection) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Field
	}
	return out
}

func TestValidateAcceptsWellFormedModule(t *testing.T) {
	m := docManifest(t, `{
		"id": "lorem",
		"title": "Lorem",
		"version": "1.2.3",
		"compatibility": {"minimum": "11.0.0", "verified": "12.0.0", "maximum": "12.0.0"},
		"esmodules": ["scripts/main.js"],
		"packs": [{"name": "items", "path": "packs/items.db"}]
	}`)

	diags := Validate(m, buildconfig.Module)
	assert.NoError(t, diags.Err())
}

func TestValidateIdentity(t *testing.T) {
	tests := []struct {
		name      string
		contents  string
		wantField string
	}{
		{
			name:      "missing id",
			contents:  `{"title": "Lorem", "version": "1.0.0"}`,
			wantField: "id",
		},
		{
			name:      "uppercase id",
			contents:  `{"id": "Lorem", "title": "Lorem", "version": "1.0.0"}`,
			wantField: "id",
		},
		{
			name:      "missing title",
			contents:  `{"id": "lorem", "version": "1.0.0"}`,
			wantField: "title",
		},
		{
			name:      "missing version",
			contents:  `{"id": "lorem", "title": "Lorem"}`,
			wantField: "version",
		},
		{
			name:      "non-semantic version",
			contents:  `{"id": "lorem", "title": "Lorem", "version": "latest"}`,
			wantField: "version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(docManifest(t, tt.contents), buildconfig.Module)
			require.NotEmpty(t, diags)
			assert.Contains(t, fields(diags), tt.wantField)
			for _, d := range diags {
				assert.Equal(t, diagnostics.SchemaViolation, d.Code)
			}
		})
	}
}

func TestValidateCompatibilityOrdering(t *testing.T) {
	m := docManifest(t, `{
		"id": "lorem", "title": "Lorem", "version": "1.0.0",
		"compatibility": {"minimum": "12.0.0", "verified": "11.0.0"}
	}`)

	diags := Validate(m, buildconfig.Module)
	require.Len(t, diags, 1)
	assert.Equal(t, "compatibility", diags[0].Field)
	assert.Contains(t, diags[0].Error(), "minimum 12.0.0 is greater than verified 11.0.0")
}

func TestValidateImportFieldShapes(t *testing.T) {
	tests := []struct {
		name      string
		contents  string
		wantField string
	}{
		{
			name:      "scripts not an array",
			contents:  `{"id": "lorem", "title": "Lorem", "version": "1.0.0", "scripts": "main.js"}`,
			wantField: "scripts",
		},
		{
			name:      "pack entry is a bare string",
			contents:  `{"id": "lorem", "title": "Lorem", "version": "1.0.0", "packs": ["packs/items.db"]}`,
			wantField: "packs[0].path",
		},
		{
			name:      "pack entry path missing",
			contents:  `{"id": "lorem", "title": "Lorem", "version": "1.0.0", "packs": [{"name": "items"}]}`,
			wantField: "packs[0].path",
		},
		{
			name:      "empty style path",
			contents:  `{"id": "lorem", "title": "Lorem", "version": "1.0.0", "styles": [""]}`,
			wantField: "styles[0]",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			diags := Validate(docManifest(t, tt.contents), buildconfig.Module)
			require.Len(t, diags, 1)
			assert.Equal(t, tt.wantField, diags[0].Field)
		})
	}
}

func TestValidateCollectsEveryViolation(t *testing.T) {
	m := docManifest(t, `{
		"version": "not-semver",
		"scripts": [42],
		"packs": [{"name": "items"}]
	}`)

	diags := Validate(m, buildconfig.Module)
	got := fields(diags)
	assert.Contains(t, got, "id")
	assert.Contains(t, got, "version")
	assert.Contains(t, got, "scripts[0]")
	assert.Contains(t, got, "packs[0].path")
}

func TestValidateSystemRequiresScriptSurface(t *testing.T) {
	bare := docManifest(t, `{"id": "dolor", "title": "Dolor", "version": "1.0.0"}`)
	diags := Validate(bare, buildconfig.System)
	require.Len(t, diags, 1)
	assert.Contains(t, diags[0].Error(), "must declare scripts or esmodules")

	scripted := docManifest(t, `{"id": "dolor", "title": "Dolor", "version": "1.0.0", "scripts": ["init.js"]}`)
	assert.NoError(t, Validate(scripted, buildconfig.System).Err())
}

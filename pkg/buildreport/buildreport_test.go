// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildreport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vttforge/vttforge/pkg/reconcile"
)

func sampleMetafile(t *testing.T) *reconcile.Metafile {
	t.Helper()
	meta, err := reconcile.ParseMetafile(`{
		"inputs": {},
		"outputs": {
			"dist/main.js": {
				"bytes": 2048,
				"inputs": {"scripts/main.js": {"bytesInOutput": 2048}},
				"imports": [
					{"path": "modules/ipsum/api.js", "kind": "import-statement", "external": true},
					{"path": "modules/ipsum/api.js", "kind": "dynamic-import", "external": true},
					{"path": "systems/dnd5e/dice.js", "kind": "import-statement", "external": true, "original": "../../systems/dnd5e/dice.js"},
					{"path": "dist/chunk-ABC.js", "kind": "import-statement"}
				],
				"entryPoint": "scripts/main.js"
			},
			"dist/chunk-ABC.js": {"bytes": 100, "inputs": {"scripts/helper.js": {"bytesInOutput": 100}}, "imports": []}
		}
	}`)
	require.NoError(t, err)
	return meta
}

func TestExternalImports(t *testing.T) {
	externals := ExternalImports(sampleMetafile(t))

	// duplicates collapse, internal chunk imports are excluded, and the
	// declared source text is preferred over the resolved path
	assert.Equal(t, []string{"../../systems/dnd5e/dice.js", "modules/ipsum/api.js"}, externals)
}

func TestExternalImportsEmpty(t *testing.T) {
	meta, err := reconcile.ParseMetafile(`{"inputs": {}, "outputs": {}}`)
	require.NoError(t, err)
	assert.Empty(t, ExternalImports(meta))
}

func TestTableListsEveryOutput(t *testing.T) {
	rendered := Table(sampleMetafile(t))

	assert.Contains(t, rendered, "dist/main.js")
	assert.Contains(t, rendered, "2kb")
	assert.Contains(t, rendered, "dist/chunk-ABC.js")
	assert.Contains(t, rendered, "100b")
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 0, want: "0b"},
		{n: 512, want: "512b"},
		{n: 1024, want: "1kb"},
		{n: 1536, want: "1.5kb"},
		{n: 2048, want: "2kb"},
		{n: 3 * 1024 * 1024, want: "3mb"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatBytes(tt.n))
		})
	}
}

// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package hostcheck

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExists(t *testing.T) {
	dataPath := t.TempDir()
	target := filepath.Join(dataPath, "modules", "ipsum", "api.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("export {};"), 0o644))

	checker, err := New(dataPath)
	require.NoError(t, err)

	assert.True(t, checker.Exists("modules/ipsum/api.js"))
	assert.False(t, checker.Exists("modules/ipsum/missing.js"))
}

func TestExistsCachesStatResults(t *testing.T) {
	dataPath := t.TempDir()
	target := filepath.Join(dataPath, "modules", "ipsum", "api.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, nil, 0o644))

	checker, err := New(dataPath)
	require.NoError(t, err)
	require.True(t, checker.Exists("modules/ipsum/api.js"))

	// the cached result survives the file disappearing
	require.NoError(t, os.Remove(target))
	assert.True(t, checker.Exists("modules/ipsum/api.js"))
}

func TestWarnIfMissingNeverFails(t *testing.T) {
	checker, err := New(filepath.Join(t.TempDir(), "does-not-exist"))
	require.NoError(t, err)

	checker.WarnIfMissing("modules/ipsum/api.js")
	assert.False(t, checker.Exists("modules/ipsum/api.js"))
}

// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package testutil holds fixture helpers shared by the package tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vttforge/vttforge/pkg/buildconfig"
)

// PackageRoot lays out a host data tree containing one content package and
// returns its build configuration. The manifest lands at the package root
// under the type's manifest filename.
func PackageRoot(t *testing.T, packageType buildconfig.PackageType, name, manifestContents string) *buildconfig.Config {
	t.Helper()

	dataDir := t.TempDir()
	root := filepath.Join(dataDir, packageType.Pluralized(), name)
	require.NoError(t, os.MkdirAll(root, 0o755))
	WriteFile(t, root, packageType.ManifestFilename(), manifestContents)

	return &buildconfig.Config{
		ProjectRoot: root,
		Type:        packageType,
		Name:        name,
		OutDir:      filepath.Join(root, "dist"),
	}
}

// WriteFile writes a package-root-relative file, creating parent directories
// as needed.
func WriteFile(t *testing.T, root, rel, contents string) {
	t.Helper()

	target := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte(contents), 0o644))
}

// FileExists is a ResolveProbe backed by the real filesystem.
func FileExists(path, resolveDir string) bool {
	_, err := os.Stat(filepath.Join(resolveDir, filepath.FromSlash(path)))
	return err == nil
}

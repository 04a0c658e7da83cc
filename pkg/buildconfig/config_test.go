// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildconfig

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, root, contents string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, ConfigFilename), []byte(contents), 0o644))
}

func TestGetDefaults(t *testing.T) {
	root := t.TempDir()

	config, err := Get(root)
	require.NoError(t, err)
	assert.Equal(t, root, config.ProjectRoot)
	assert.Equal(t, Module, config.Type)
	assert.Equal(t, filepath.Join(root, "dist"), config.OutDir)
	assert.False(t, config.RewriteAbsoluteImports)
}

func TestGetReadsConfigFile(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, `
type: system
name: dolor
entry: scripts/init.js
out-dir: build
rewrite-absolute-imports: true
`)

	config, err := Get(root)
	require.NoError(t, err)
	assert.Equal(t, System, config.Type)
	assert.Equal(t, "dolor", config.Name)
	assert.Equal(t, "scripts/init.js", config.Entry)
	assert.Equal(t, filepath.Join(root, "build"), config.OutDir)
	assert.True(t, config.RewriteAbsoluteImports)
}

func TestGetRejectsUnknownConfigKeys(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "type: module\nbundle-mode: fast\n")

	_, err := Get(root)
	require.Error(t, err)
}

func TestGetRejectsInvalidPackageType(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "type: world\n")

	_, err := Get(root)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGetEnvironmentOverridesConfigFile(t *testing.T) {
	root := t.TempDir()
	writeConfigFile(t, root, "type: module\nname: lorem\nout-dir: build\n")

	t.Setenv(PackageTypeEnvVar, "system")
	t.Setenv(PackageNameEnvVar, "dolor")
	t.Setenv(OutDirEnvVar, filepath.Join(root, "deploy"))
	t.Setenv(DataPathEnvVar, "/srv/foundry/Data")
	t.Setenv(RewriteAbsoluteImportsEnvVar, "true")
	t.Setenv(CheckExternalImportsEnvVar, "1")

	config, err := Get(root)
	require.NoError(t, err)
	assert.Equal(t, System, config.Type)
	assert.Equal(t, "dolor", config.Name)
	assert.Equal(t, filepath.Join(root, "deploy"), config.OutDir)
	assert.Equal(t, "/srv/foundry/Data", config.DataPath)
	assert.True(t, config.RewriteAbsoluteImports)
	assert.True(t, config.CheckExternalImports)
}

func TestGetRejectsMalformedBoolEnvVar(t *testing.T) {
	root := t.TempDir()
	t.Setenv(RewriteAbsoluteImportsEnvVar, "yes please")

	_, err := Get(root)
	require.Error(t, err)
}

func TestConfigPaths(t *testing.T) {
	config := &Config{
		ProjectRoot: filepath.Join("/data", "Data", "modules", "lorem"),
		Type:        Module,
		Name:        "lorem",
	}

	assert.Equal(t, "modules/lorem", config.RuntimePrefix())
	assert.Equal(t, filepath.Join("/data", "Data", "modules", "lorem", "module.json"), config.ManifestPath())
	assert.Equal(t, filepath.Join("/data", "Data", "scripts"), config.HostScriptsDir())

	system := &Config{ProjectRoot: filepath.Join("/data", "Data", "systems", "dolor"), Type: System, Name: "dolor"}
	assert.Equal(t, "systems/dolor", system.RuntimePrefix())
	assert.Equal(t, filepath.Join("/data", "Data", "systems", "dolor", "system.json"), system.ManifestPath())
}

func TestValidate(t *testing.T) {
	valid := &Config{ProjectRoot: t.TempDir(), OutDir: filepath.Join(t.TempDir(), "dist")}
	assert.NoError(t, valid.Validate())

	missingRoot := &Config{OutDir: "/tmp/dist"}
	assert.ErrorIs(t, missingRoot.Validate(), ErrInvalidConfig)

	relativeRoot := &Config{ProjectRoot: "packages/lorem", OutDir: "/tmp/dist"}
	assert.ErrorIs(t, relativeRoot.Validate(), ErrInvalidConfig)

	missingOutDir := &Config{ProjectRoot: t.TempDir()}
	assert.ErrorIs(t, missingOutDir.Validate(), ErrInvalidConfig)
}

func TestParsePackageType(t *testing.T) {
	tests := []struct {
		input   string
		want    PackageType
		wantErr bool
	}{
		{input: "module", want: Module},
		{input: "system", want: System},
		{input: "Module", wantErr: true},
		{input: "world", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePackageType(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPackageTypeNames(t *testing.T) {
	assert.Equal(t, "modules", Module.Pluralized())
	assert.Equal(t, "systems", System.Pluralized())
	assert.Equal(t, "module.json", Module.ManifestFilename())
	assert.Equal(t, "system.json", System.ManifestFilename())
}

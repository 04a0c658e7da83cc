// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package buildconfig assembles the per-build configuration surface: the
// optional vttforge.yaml at the package root, VTTFORGE_* environment
// overrides, and per-platform discovery of the host application's user data
// directory.
package buildconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/goccy/go-yaml"
	"github.com/vttforge/vttforge/pkg/utils"
)

var ErrInvalidConfig = fmt.Errorf("invalid bundler configuration")

const ConfigFilename = "vttforge.yaml"

type Config struct {
	// ProjectRoot is the bundler's configured base input directory: the
	// package root holding the manifest.
	ProjectRoot string `yaml:"-"`

	Type PackageType `yaml:"type"`

	// Name is the package name used for the runtime deploy prefix.
	// Defaults to the manifest's id field when left empty.
	Name string `yaml:"name,omitempty"`

	// Entry is the package-root-relative path of the single ES module
	// entry point. Defaults to the manifest's first esmodules entry.
	Entry string `yaml:"entry,omitempty"`

	OutDir string `yaml:"out-dir,omitempty"`

	// DataPath is the host application's user data directory; only the
	// external import checker consults it.
	DataPath string `yaml:"data-path,omitempty"`

	RewriteAbsoluteImports bool `yaml:"rewrite-absolute-imports,omitempty"`
	CheckExternalImports   bool `yaml:"check-external-imports,omitempty"`

	Minify    bool `yaml:"minify,omitempty"`
	Sourcemap bool `yaml:"sourcemap,omitempty"`
}

// RuntimePrefix is the path segment the host deploys this package under,
// e.g. "modules/lorem".
func (c *Config) RuntimePrefix() string {
	return c.Type.Pluralized() + "/" + c.Name
}

// ManifestPath is the absolute path of the package manifest document.
func (c *Config) ManifestPath() string {
	return filepath.Join(c.ProjectRoot, c.Type.ManifestFilename())
}

// HostScriptsDir is the host-provided scripts directory two levels above
// the package root, used as the manifest resolution fallback.
func (c *Config) HostScriptsDir() string {
	return filepath.Join(c.ProjectRoot, "..", "..", "scripts")
}

func (c *Config) Validate() error {
	if c.ProjectRoot == "" {
		return fmt.Errorf("%w: project root is not set", ErrInvalidConfig)
	}
	if !filepath.IsAbs(c.ProjectRoot) {
		return fmt.Errorf("%w: project root %q must be absolute", ErrInvalidConfig, c.ProjectRoot)
	}
	if c.OutDir == "" {
		return fmt.Errorf("%w: output directory is not set", ErrInvalidConfig)
	}
	return nil
}

// Get reads the configuration for the package rooted at projectRoot.
// vttforge.yaml is optional; environment variables override it.
func Get(projectRoot string) (*Config, error) {
	abs, err := filepath.Abs(projectRoot)
	if err != nil {
		return nil, err
	}

	config := Config{}

	configFilePath := filepath.Join(abs, ConfigFilename)
	fileInfo, err := os.Stat(configFilePath)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
	} else {
		if fileInfo.IsDir() {
			return nil, fmt.Errorf("%q is directory and not a file", configFilePath)
		}

		bytes, err := os.ReadFile(configFilePath)
		if err != nil {
			return nil, err
		}

		if err := yaml.UnmarshalWithOptions(bytes, &config, yaml.Strict()); err != nil {
			return nil, err
		}
	}

	typeStr, ok := os.LookupEnv(PackageTypeEnvVar)
	if ok {
		t, err := ParsePackageType(typeStr)
		if err != nil {
			return nil, err
		}
		config.Type = t
	}

	if name, ok := os.LookupEnv(PackageNameEnvVar); ok {
		config.Name = name
	}

	if outDir, ok := os.LookupEnv(OutDirEnvVar); ok {
		config.OutDir = outDir
	}
	if config.OutDir == "" {
		config.OutDir = filepath.Join(abs, "dist")
	}
	if !filepath.IsAbs(config.OutDir) {
		config.OutDir = filepath.Join(abs, config.OutDir)
	}

	if dataPath, ok := os.LookupEnv(DataPathEnvVar); ok {
		config.DataPath = dataPath
	}
	if config.DataPath == "" {
		// best effort: the data path only matters when import checking is on
		if p, err := getHostDataDirectory(); err == nil {
			config.DataPath = p
		}
	}

	rewrite, ok, err := utils.BoolEnvVar(RewriteAbsoluteImportsEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		config.RewriteAbsoluteImports = rewrite
	}

	check, ok, err := utils.BoolEnvVar(CheckExternalImportsEnvVar)
	if err != nil {
		return nil, err
	}
	if ok {
		config.CheckExternalImports = check
	}

	config.ProjectRoot = abs
	return &config, nil
}

// getHostDataDirectory returns the platform default user data directory of
// the host application.
func getHostDataDirectory() (string, error) {
	switch runtime.GOOS {
	case "windows":
		dir, ok := os.LookupEnv("LOCALAPPDATA")
		if !ok {
			return "", fmt.Errorf("LOCALAPPDATA environment variable is not set")
		}
		return filepath.Join(dir, "FoundryVTT", "Data"), nil
	case "darwin":
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, "Library", "Application Support", "FoundryVTT", "Data"), nil
	default:
		dir, ok := os.LookupEnv("HOME")
		if !ok {
			return "", fmt.Errorf("HOME environment variable is not set")
		}
		return filepath.Join(dir, ".local", "share", "FoundryVTT", "Data"), nil
	}
}

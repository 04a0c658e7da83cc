// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package schema performs structural validation of package manifests:
// required identity fields, semantic versions, and the declared shape of
// every import-bearing field. Violations are collected, not short-circuited,
// so one pass reports every offending field.
package schema

import (
	"fmt"
	"regexp"

	"github.com/Masterminds/semver/v3"
	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/manifest"
)

var packageIDRegex = regexp.MustCompile(`^[a-z0-9_-]+$`)

// Validate checks the manifest document against the declared package type's
// structural schema. The returned collection is empty when the document is
// valid; any violation is fatal at build start.
func Validate(m *manifest.Manifest, packageType buildconfig.PackageType) diagnostics.Collection {
	var diags diagnostics.Collection

	checkID(m, &diags)
	checkVersion(m, &diags)
	checkCompatibility(m, &diags)
	for _, field := range manifest.ImportFields {
		checkImportField(m, field, &diags)
	}

	if packageType == buildconfig.System {
		// systems must declare at least one compendium or script surface;
		// an empty system manifest is almost always a packaging mistake
		if len(m.Esmodules()) == 0 && len(scriptsField.Entries(m.Doc)) == 0 {
			diags.Add(diagnostics.NewSchemaViolation("esmodules",
				fmt.Errorf("a system manifest must declare scripts or esmodules")))
		}
	}

	return diags
}

var scriptsField = manifest.Field{Name: "scripts", Kind: manifest.StringEntries}

func checkID(m *manifest.Manifest, diags *diagnostics.Collection) {
	id := m.ID()
	if id == "" {
		diags.Add(diagnostics.NewSchemaViolation("id", fmt.Errorf("missing required field 'id'")))
		return
	}
	if !packageIDRegex.MatchString(id) {
		diags.Add(diagnostics.NewSchemaViolation("id",
			fmt.Errorf("package id %q may only contain lowercase letters, digits, '-' and '_'", id)))
	}
	if m.Title() == "" {
		diags.Add(diagnostics.NewSchemaViolation("title", fmt.Errorf("missing required field 'title'")))
	}
}

func checkVersion(m *manifest.Manifest, diags *diagnostics.Collection) {
	version := m.Version()
	if version == "" {
		diags.Add(diagnostics.NewSchemaViolation("version", fmt.Errorf("missing required field 'version'")))
		return
	}
	if _, err := semver.NewVersion(version); err != nil {
		diags.Add(diagnostics.NewSchemaViolation("version",
			fmt.Errorf("version %q is not a semantic version: %w", version, err)))
	}
}

// checkCompatibility enforces minimum <= verified <= maximum for whichever
// bounds are declared.
func checkCompatibility(m *manifest.Manifest, diags *diagnostics.Collection) {
	compat, ok := m.Doc["compatibility"].(map[string]any)
	if !ok {
		return
	}

	versions := map[string]*semver.Version{}
	for _, bound := range []string{"minimum", "verified", "maximum"} {
		raw, declared := compat[bound]
		if !declared {
			continue
		}
		s, ok := raw.(string)
		if !ok {
			diags.Add(diagnostics.NewSchemaViolation("compatibility."+bound,
				fmt.Errorf("compatibility bound must be a string")))
			continue
		}
		v, err := semver.NewVersion(s)
		if err != nil {
			diags.Add(diagnostics.NewSchemaViolation("compatibility."+bound,
				fmt.Errorf("%q is not a semantic version: %w", s, err)))
			continue
		}
		versions[bound] = v
	}

	if min, verified := versions["minimum"], versions["verified"]; min != nil && verified != nil && min.GreaterThan(verified) {
		diags.Add(diagnostics.NewSchemaViolation("compatibility",
			fmt.Errorf("minimum %s is greater than verified %s", min, verified)))
	}
	if verified, max := versions["verified"], versions["maximum"]; verified != nil && max != nil && verified.GreaterThan(max) {
		diags.Add(diagnostics.NewSchemaViolation("compatibility",
			fmt.Errorf("verified %s is greater than maximum %s", verified, max)))
	}
}

func checkImportField(m *manifest.Manifest, field manifest.Field, diags *diagnostics.Collection) {
	raw, declared := m.Doc[field.Name]
	if !declared {
		return
	}
	entries, ok := raw.([]any)
	if !ok {
		diags.Add(diagnostics.NewSchemaViolation(field.Name, fmt.Errorf("field must be an array")))
		return
	}

	for i, entry := range entries {
		if p, ok := field.EntryPath(entry); !ok {
			diags.Add(diagnostics.NewSchemaViolation(field.Ref(i), shapeError(field)))
		} else if p == "" {
			diags.Add(diagnostics.NewSchemaViolation(field.Ref(i), fmt.Errorf("declared path must not be empty")))
		}
	}
}

func shapeError(field manifest.Field) error {
	if field.Kind == manifest.PathObjectEntries {
		return fmt.Errorf("entry must be an object with a string 'path' property")
	}
	return fmt.Errorf("entry must be a string path")
}

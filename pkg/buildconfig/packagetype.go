// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package buildconfig

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

type PackageType int

const (
	Module PackageType = iota
	System
)

func ParsePackageType(s string) (PackageType, error) {
	switch s {
	case "module":
		return Module, nil
	case "system":
		return System, nil
	default:
		return 0, fmt.Errorf("%w: invalid package type %q. must be one of 'module', 'system'", ErrInvalidConfig, s)
	}
}

func (t PackageType) String() string {
	switch t {
	case Module:
		return "module"
	case System:
		return "system"
	default:
		return "Unknown"
	}
}

// Pluralized is the directory segment the host deploys this package type
// under ("modules" or "systems").
func (t PackageType) Pluralized() string {
	return t.String() + "s"
}

// ManifestFilename is the manifest document's file name at the package root.
func (t PackageType) ManifestFilename() string {
	return t.String() + ".json"
}

func (t *PackageType) UnmarshalYAML(data []byte) error {
	var unmarshalled string
	if err := yaml.Unmarshal(data, &unmarshalled); err != nil {
		return err
	}
	parsed, err := ParsePackageType(unmarshalled)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t PackageType) MarshalYAML() ([]byte, error) {
	return []byte(t.String()), nil
}

var _ yaml.BytesUnmarshaler = (*PackageType)(nil)
var _ yaml.BytesMarshaler = (PackageType)(0)

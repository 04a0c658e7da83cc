// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package diagnostics defines the typed error records surfaced by the
// bundler. A Diagnostic is a value, not control flow: validation and
// resolution return them up the call chain so callers can decide between
// aborting the build and collecting them for a combined report.
package diagnostics

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ConfigurationError          = "CONFIGURATION_ERROR"
	TraversalInvariantViolation = "TRAVERSAL_INVARIANT_VIOLATION"
	UnresolvedManifestImport    = "UNRESOLVED_MANIFEST_IMPORT"
	ManifestCollision           = "MANIFEST_COLLISION"
	SchemaViolation             = "SCHEMA_VIOLATION"
	UnknownError                = "UNKNOWN_ERROR"
)

type Diagnostic struct {
	Code string
	// Field names the offending manifest field (possibly indexed, e.g.
	// "packs[0].path") when the diagnostic is tied to one.
	Field string
	// Path is the declared or resolved path the diagnostic is about.
	Path  string
	Cause error
}

func (d *Diagnostic) Error() string {
	var b strings.Builder
	b.WriteString(d.Code)
	if d.Field != "" {
		fmt.Fprintf(&b, " [%s]", d.Field)
	}
	if d.Path != "" {
		fmt.Fprintf(&b, " (%s)", d.Path)
	}
	if d.Cause != nil {
		b.WriteString(": ")
		b.WriteString(d.Cause.Error())
	}
	return b.String()
}

func (d *Diagnostic) Unwrap() error {
	return d.Cause
}

var _ error = (*Diagnostic)(nil)

func NewConfigurationError(cause error) *Diagnostic {
	return &Diagnostic{Code: ConfigurationError, Cause: cause}
}

func NewTraversalInvariantViolation(path string, cause error) *Diagnostic {
	return &Diagnostic{Code: TraversalInvariantViolation, Path: path, Cause: cause}
}

func NewUnresolvedManifestImport(field, path string) *Diagnostic {
	return &Diagnostic{
		Code:  UnresolvedManifestImport,
		Field: field,
		Path:  path,
		Cause: fmt.Errorf("declared import %q could not be resolved; check that the path exists relative to the package root", path),
	}
}

func NewManifestCollision(field, output string, cause error) *Diagnostic {
	return &Diagnostic{Code: ManifestCollision, Field: field, Path: output, Cause: cause}
}

func NewSchemaViolation(field string, cause error) *Diagnostic {
	return &Diagnostic{Code: SchemaViolation, Field: field, Cause: cause}
}

func NewUnknownError(cause error) *Diagnostic {
	return &Diagnostic{Code: UnknownError, Cause: cause}
}

// Standardize wraps an arbitrary error into a Diagnostic, passing through
// errors that already are one.
func Standardize(err error) *Diagnostic {
	if err == nil {
		return nil
	}

	var d *Diagnostic
	if errors.As(err, &d) {
		return d
	}

	return NewUnknownError(err)
}

// Collection accumulates diagnostics without short-circuiting, so one walk
// can report every offending manifest entry at once.
type Collection []*Diagnostic

func (c *Collection) Add(d *Diagnostic) {
	*c = append(*c, d)
}

func (c Collection) Err() error {
	if len(c) == 0 {
		return nil
	}
	errs := make([]error, len(c))
	for i, d := range c {
		errs[i] = d
	}
	return errors.Join(errs...)
}

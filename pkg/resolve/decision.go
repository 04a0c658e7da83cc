// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package resolve

import "github.com/vttforge/vttforge/pkg/diagnostics"

// Kind describes the reference form an import resolution request came from.
type Kind int

const (
	KindEntryPoint Kind = iota
	KindImportStatement
	KindDynamicImport
	// KindOther covers every reference form the host's module loader cannot
	// treat as a dynamically loadable module (require calls, CSS imports,
	// url tokens).
	KindOther
)

// Request is one import resolution request: the absolute path of the file
// containing the import and the raw import string as written.
type Request struct {
	Importer string
	Path     string
	Kind     Kind
}

type Outcome int

const (
	// Deferred means default local resolution should proceed; the import
	// does not leave the package.
	Deferred Outcome = iota
	// Internal is a locally resolved file the bundler handles itself.
	Internal
	// SelfPackage is an import that traverses out of the package root but,
	// mapped through the runtime prefix, lands back inside this package;
	// it is redirected to the equivalent local file.
	SelfPackage
	// HostExternal is a genuine host-provided import, rewritten to a
	// runtime-resolved dynamic load and excluded from the bundle.
	HostExternal
	// External is the passthrough marker for host-provided references the
	// bundler cannot rewrite into a runtime load.
	External
	// Failed carries a fatal diagnostic.
	Failed
)

// Decision is the routing decision for one (importer, path) pair. Exactly
// one variant applies: FilesystemPath is set for Internal and SelfPackage,
// RuntimePath for HostExternal and External, Diagnostic for Failed.
type Decision struct {
	Outcome        Outcome
	FilesystemPath string
	RuntimePath    string
	Diagnostic     *diagnostics.Diagnostic
}

var deferred = &Decision{Outcome: Deferred}

func failed(d *diagnostics.Diagnostic) *Decision {
	return &Decision{Outcome: Failed, Diagnostic: d}
}

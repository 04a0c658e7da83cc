// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package resolve implements the import classification engine: given the
// file containing an import and the raw import string, it decides by lexical
// path analysis alone whether the import stays inside the package being
// built, escapes to a host-provided sibling resource, or is malformed.
package resolve

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/hostcheck"
	"github.com/vttforge/vttforge/pkg/pathutil"
	"github.com/vttforge/vttforge/pkg/traversal"
)

// Resolver classifies imports for one build. It is an explicit per-build
// value, safe for concurrent use by the build tool's resolve callbacks.
type Resolver struct {
	cfg     *buildconfig.Config
	checker *hostcheck.Checker

	mu    sync.Mutex
	cache map[string]map[string]*Decision
}

// New returns a Resolver for one build invocation. checker may be nil.
func New(cfg *buildconfig.Config, checker *hostcheck.Checker) *Resolver {
	return &Resolver{
		cfg:     cfg,
		checker: checker,
		cache:   make(map[string]map[string]*Decision),
	}
}

// Resolve classifies one import. Results are memoized per normalized
// (importer, path) pair for the lifetime of the build; a repeated request
// returns the identical Decision without recomputation. A cached Deferred
// is itself a computed outcome, distinct from "not yet computed".
func (r *Resolver) Resolve(req Request) *Decision {
	importerKey := pathutil.Normalize(req.Importer)
	pathKey := pathutil.Normalize(req.Path)

	r.mu.Lock()
	byPath, ok := r.cache[importerKey]
	if !ok {
		byPath = make(map[string]*Decision)
		r.cache[importerKey] = byPath
	}
	decision, hit := byPath[pathKey]
	if !hit {
		decision = r.classify(req)
		byPath[pathKey] = decision
	}
	r.mu.Unlock()

	// existence checking is best effort and stays off the cache lock
	if !hit && decision.Outcome == HostExternal && r.checker != nil {
		r.checker.WarnIfMissing(decision.RuntimePath)
	}
	return decision
}

// classify is purely lexical; it never touches the filesystem.
func (r *Resolver) classify(req Request) *Decision {
	if strings.HasPrefix(req.Path, "/") {
		return r.classifyAbsolute(req)
	}

	importerDirRel, err := pathutil.RelativeTo(r.cfg.ProjectRoot, filepath.Dir(req.Importer))
	if err != nil || traversal.Escapes(importerDirRel) {
		// the build tool handed us an importer outside its own configured
		// project root; that is a wiring defect, not a resolvable import
		return failed(diagnostics.NewTraversalInvariantViolation(req.Importer,
			fmt.Errorf("importer %q lies outside the project root %q; the bundler was invoked inconsistently", req.Importer, r.cfg.ProjectRoot)))
	}

	// cheap admission filter: most imports cannot traverse upward at all
	if !traversal.MightEscape(req.Path) {
		return deferred
	}

	// the coarse filter over-matches; re-check on the normalized join
	joined := pathutil.NormalizedJoin(importerDirRel, req.Path)
	if !traversal.Escapes(joined) {
		return deferred
	}

	// the import escapes the package root: compute where it lands once the
	// package is deployed under its runtime prefix
	importerRuntimeDir := pathutil.NormalizedJoin(r.cfg.RuntimePrefix(), importerDirRel)
	resolvesTo := pathutil.NormalizedJoin(importerRuntimeDir, req.Path)
	return r.route(req, resolvesTo)
}

func (r *Resolver) classifyAbsolute(req Request) *Decision {
	if req.Kind == KindEntryPoint && pathutil.Normalize(req.Path) == pathutil.Normalize(r.cfg.ManifestPath()) {
		// the build entry names our own manifest, not a host import
		return deferred
	}

	if !r.cfg.RewriteAbsoluteImports {
		return failed(diagnostics.NewConfigurationError(
			fmt.Errorf("cannot resolve absolute import %q: enable the rewrite-absolute-imports capability (vttforge.yaml or %s) to treat absolute imports as host route paths", req.Path, buildconfig.RewriteAbsoluteImportsEnvVar)))
	}

	// an enabled absolute import is already relative to the runtime root
	resolvesTo := pathutil.Normalize(strings.TrimPrefix(req.Path, "/"))
	return r.route(req, resolvesTo)
}

// route maps a runtime-root-relative location back onto this package or out
// to the host.
func (r *Resolver) route(req Request, resolvesTo string) *Decision {
	if traversal.Escapes(resolvesTo) {
		return failed(diagnostics.NewTraversalInvariantViolation(req.Path,
			fmt.Errorf("import %q in %q climbs above the host route root and cannot exist at runtime", req.Path, req.Importer)))
	}

	prefix := r.cfg.RuntimePrefix()
	if pathutil.HasPathPrefix(resolvesTo, prefix) {
		local := pathutil.TrimPathPrefix(resolvesTo, prefix)
		return &Decision{
			Outcome:        SelfPackage,
			FilesystemPath: filepath.Join(r.cfg.ProjectRoot, filepath.FromSlash(local)),
		}
	}

	switch req.Kind {
	case KindImportStatement, KindDynamicImport:
		return &Decision{Outcome: HostExternal, RuntimePath: resolvesTo}
	default:
		// not dynamically loadable by the host; leave it external and
		// unresolved for the bundler
		return &Decision{Outcome: External, RuntimePath: resolvesTo}
	}
}

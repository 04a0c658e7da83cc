// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package reconcile walks the import-bearing fields of the package manifest
// in two phases bound to build start and build end: phase A validates the
// declared document and pre-resolves every declared path, phase B
// substitutes the bundler's actual output locations and writes the
// transformed manifest into the output tree.
package reconcile

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/manifest"
	"github.com/vttforge/vttforge/pkg/pathutil"
	"github.com/vttforge/vttforge/pkg/schema"
	"github.com/vttforge/vttforge/pkg/utils"
	"github.com/vttforge/vttforge/pkg/utils/stringset"
)

// ResolveProbe tests whether a declared path is resolvable relative to a
// directory; the build tool's own resolver backs it during a build.
type ResolveProbe func(path, resolveDir string) bool

// State is phase A's result: the declared manifest plus the set of
// normalized package-root-relative paths that resolved locally.
type State struct {
	Manifest     *manifest.Manifest
	LocalImports stringset.StringSet
}

// Reconciler holds the manifest reconciliation state for one build. Phase A
// runs at most once per build no matter how many times the start hook
// fires.
type Reconciler struct {
	cfg   *buildconfig.Config
	probe ResolveProbe

	once  sync.Once
	state *State
	err   error
}

func New(cfg *buildconfig.Config, probe ResolveProbe) *Reconciler {
	return &Reconciler{cfg: cfg, probe: probe}
}

// DeclareImports is phase A: parse and validate the manifest, then resolve
// every declared import-bearing entry. Entries resolving relative to the
// package root are recorded as local; entries resolving only via the host
// scripts directory are external but tolerated; everything else is a
// collected diagnostic that fails the build start. packs entries never
// attempt the scripts fallback.
func (r *Reconciler) DeclareImports() (*State, error) {
	r.once.Do(func() {
		r.state, r.err = r.declareImports()
	})
	return r.state, r.err
}

func (r *Reconciler) declareImports() (*State, error) {
	m, err := manifest.Read(r.cfg.ManifestPath())
	if err != nil {
		return nil, diagnostics.NewSchemaViolation(r.cfg.Type.ManifestFilename(), err)
	}

	diags := schema.Validate(m, r.cfg.Type)
	if err := diags.Err(); err != nil {
		return nil, err
	}

	state := &State{
		Manifest:     m,
		LocalImports: stringset.StringSet{},
	}

	for _, field := range manifest.ImportFields {
		for i, entry := range field.Entries(m.Doc) {
			declared, ok := field.EntryPath(entry)
			if !ok {
				// schema validation already rejected malformed entries
				continue
			}

			if r.probe(declared, r.cfg.ProjectRoot) {
				state.LocalImports.Add(pathutil.Normalize(declared))
				continue
			}

			if field.ScriptsFallback && r.probe(declared, r.cfg.HostScriptsDir()) {
				slog.Debug("manifest import resolves to the host scripts directory; leaving it external",
					"field", field.Ref(i), "path", declared)
				continue
			}

			diags.Add(diagnostics.NewUnresolvedManifestImport(field.Ref(i), declared))
		}
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}
	return state, nil
}

// usedOutput remembers which declared entry claimed an output path first,
// for the collision rule.
type usedOutput struct {
	fieldRef string
	declared string
	kind     manifest.FieldKind
}

// Reconcile is phase B: substitute the bundler's reported output locations
// into a deep copy of the declared manifest, copy still-local files the
// bundler did not absorb, and write the finished document into the output
// tree.
func (r *Reconciler) Reconcile(metafileJSON string) error {
	state, err := r.DeclareImports()
	if err != nil {
		return err
	}

	meta, err := ParseMetafile(metafileJSON)
	if err != nil {
		return fmt.Errorf("failed to parse build report: %w", err)
	}
	outputs, err := meta.MapInputsToOutputs(r.relocateOutput)
	if err != nil {
		return err
	}

	doc, err := state.Manifest.DeepCopy()
	if err != nil {
		return err
	}

	used := map[string]usedOutput{}
	for _, field := range manifest.ImportFields {
		entries := field.Entries(doc)
		if entries == nil {
			continue
		}

		kept := make([]any, 0, len(entries))
		for i, entry := range entries {
			declared, ok := field.EntryPath(entry)
			if !ok {
				kept = append(kept, entry)
				continue
			}
			normalized := pathutil.Normalize(declared)

			record, bundled := outputs[normalized]
			if !bundled {
				if state.LocalImports.Contains(normalized) {
					// the bundler did not absorb it; ship the source
					// verbatim at its declared location
					if err := r.copyLocal(declared); err != nil {
						return err
					}
				}
				kept = append(kept, entry)
				continue
			}

			if prior, collision := used[record.Path]; collision {
				if field.Kind == manifest.StringEntries && prior.kind == manifest.StringEntries {
					// the bundler already merged these sources; the later
					// declaration is redundant
					slog.Debug("dropping manifest entry merged into an existing output",
						"field", field.Ref(i), "path", declared, "output", record.Path)
					continue
				}
				return diagnostics.NewManifestCollision(field.Ref(i), record.Path,
					fmt.Errorf("declared imports %q and %q both land at %q; merging distinct resources would corrupt the package",
						prior.declared, declared, record.Path))
			}

			if err := field.SetEntryPath(entries, i, record.Path); err != nil {
				return err
			}
			used[record.Path] = usedOutput{fieldRef: field.Ref(i), declared: declared, kind: field.Kind}
			kept = append(kept, entries[i])
		}
		doc[field.Name] = kept
	}

	return r.writeManifest(doc)
}

// relocateOutput converts a build-report output key (relative to the
// package root) to a path relative to the output directory.
func (r *Reconciler) relocateOutput(key string) (string, error) {
	abs := filepath.Join(r.cfg.ProjectRoot, filepath.FromSlash(key))
	return pathutil.RelativeTo(r.cfg.OutDir, abs)
}

func (r *Reconciler) copyLocal(declared string) error {
	src := filepath.Join(r.cfg.ProjectRoot, filepath.FromSlash(declared))
	dst := filepath.Join(r.cfg.OutDir, filepath.FromSlash(declared))
	if err := utils.CopyFile(src, dst); err != nil {
		return fmt.Errorf("failed to copy manifest import %q into the output tree: %w", declared, err)
	}
	return nil
}

func (r *Reconciler) writeManifest(doc map[string]any) error {
	encoded, err := manifest.Encode(doc)
	if err != nil {
		return err
	}
	if err := utils.EnsureDirs(r.cfg.OutDir); err != nil {
		return err
	}
	target := filepath.Join(r.cfg.OutDir, r.cfg.Type.ManifestFilename())
	return os.WriteFile(target, encoded, 0o644)
}

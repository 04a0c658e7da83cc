// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package plugin wires the import classification engine and the manifest
// reconciler into esbuild's resolve, load, start and end hooks.
package plugin

import (
	"fmt"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/goccy/go-json"
	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/reconcile"
	"github.com/vttforge/vttforge/pkg/resolve"
)

const (
	Name = "vttforge"

	// hostNamespace marks imports rewritten into runtime loads.
	hostNamespace = "vttforge-host"

	// runtimeLoader is the host function that maps a runtime-root-relative
	// path to a servable URL.
	runtimeLoader = "foundry.utils.getRoute"
)

// New builds the esbuild plugin for one build invocation. The resolver is
// shared with the caller so a build report can consult it afterwards.
func New(cfg *buildconfig.Config, resolver *resolve.Resolver) api.Plugin {
	return api.Plugin{
		Name: Name,
		Setup: func(build api.PluginBuild) {
			probe := func(path, resolveDir string) bool {
				result := build.Resolve(path, api.ResolveOptions{
					ResolveDir: resolveDir,
					Kind:       api.ResolveEntryPoint,
				})
				return len(result.Errors) == 0 && result.Path != ""
			}
			reconciler := reconcile.New(cfg, probe)

			build.OnStart(func() (api.OnStartResult, error) {
				if err := cfg.Validate(); err != nil {
					return api.OnStartResult{Errors: messages(diagnostics.NewConfigurationError(err))}, nil
				}
				if _, err := reconciler.DeclareImports(); err != nil {
					return api.OnStartResult{Errors: messages(err)}, nil
				}
				return api.OnStartResult{}, nil
			})

			// only dot-relative and route-absolute imports can concern the
			// host; bare specifiers stay with default resolution
			build.OnResolve(api.OnResolveOptions{Filter: `^[./]`}, func(args api.OnResolveArgs) (api.OnResolveResult, error) {
				if args.Importer == "" {
					// entry points and our own resolvability probes
					return api.OnResolveResult{}, nil
				}

				decision := resolver.Resolve(resolve.Request{
					Importer: args.Importer,
					Path:     args.Path,
					Kind:     requestKind(args.Kind),
				})

				switch decision.Outcome {
				case resolve.Deferred:
					return api.OnResolveResult{}, nil
				case resolve.Internal, resolve.SelfPackage:
					return api.OnResolveResult{Path: decision.FilesystemPath}, nil
				case resolve.HostExternal:
					return api.OnResolveResult{Path: decision.RuntimePath, Namespace: hostNamespace}, nil
				case resolve.External:
					return api.OnResolveResult{Path: args.Path, External: true}, nil
				case resolve.Failed:
					return api.OnResolveResult{Errors: messages(decision.Diagnostic)}, nil
				default:
					return api.OnResolveResult{}, fmt.Errorf("unhandled resolution outcome %d", decision.Outcome)
				}
			})

			build.OnLoad(api.OnLoadOptions{Filter: `.*`, Namespace: hostNamespace}, func(args api.OnLoadArgs) (api.OnLoadResult, error) {
				contents, err := runtimeLoadModule(args.Path)
				if err != nil {
					return api.OnLoadResult{}, err
				}
				return api.OnLoadResult{Contents: &contents, Loader: api.LoaderJS}, nil
			})

			build.OnEnd(func(result *api.BuildResult) (api.OnEndResult, error) {
				if len(result.Errors) > 0 {
					return api.OnEndResult{}, nil
				}
				if err := reconciler.Reconcile(result.Metafile); err != nil {
					return api.OnEndResult{Errors: messages(err)}, nil
				}
				return api.OnEndResult{}, nil
			})
		},
	}
}

// runtimeLoadModule is the single-statement module substituted for a
// host-external import: it defers resolution of the actual URL to the host
// at runtime.
func runtimeLoadModule(runtimePath string) (string, error) {
	encoded, err := json.Marshal(runtimePath)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("export default await import(%s(%s));\n", runtimeLoader, encoded), nil
}

func requestKind(kind api.ResolveKind) resolve.Kind {
	switch kind {
	case api.ResolveEntryPoint:
		return resolve.KindEntryPoint
	case api.ResolveJSImportStatement:
		return resolve.KindImportStatement
	case api.ResolveJSDynamicImport:
		return resolve.KindDynamicImport
	default:
		return resolve.KindOther
	}
}

// messages flattens an error (possibly a joined diagnostic collection) into
// structured build messages.
func messages(err error) []api.Message {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []api.Message
		for _, e := range joined.Unwrap() {
			out = append(out, messages(e)...)
		}
		return out
	}

	d := diagnostics.Standardize(err)
	return []api.Message{{
		PluginName: Name,
		Text:       d.Error(),
		Detail:     d,
	}}
}

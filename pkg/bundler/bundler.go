// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package bundler drives one esbuild invocation for a content package: it
// fills configuration defaults from the manifest, installs the resolver
// plugin, and holds the output-directory lock for the duration of the
// build.
package bundler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/diagnostics"
	"github.com/vttforge/vttforge/pkg/hostcheck"
	"github.com/vttforge/vttforge/pkg/manifest"
	"github.com/vttforge/vttforge/pkg/plugin"
	"github.com/vttforge/vttforge/pkg/reconcile"
	"github.com/vttforge/vttforge/pkg/resolve"
	"github.com/vttforge/vttforge/pkg/utils"
)

const lockFilename = ".vttforge.lock"

type Result struct {
	Metafile *reconcile.Metafile
	Warnings []api.Message
}

// Run executes one build. Defaults that depend on the manifest (package
// name, entry point) are resolved here so the resolver and reconciler see a
// complete configuration.
func Run(ctx context.Context, cfg *buildconfig.Config) (*Result, error) {
	if err := fillDefaults(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, diagnostics.NewConfigurationError(err)
	}

	var checker *hostcheck.Checker
	if cfg.CheckExternalImports {
		if cfg.DataPath == "" {
			return nil, diagnostics.NewConfigurationError(
				fmt.Errorf("check-external-imports requires a host data path; set data-path in %s or %s", buildconfig.ConfigFilename, buildconfig.DataPathEnvVar))
		}
		var err error
		checker, err = hostcheck.New(cfg.DataPath)
		if err != nil {
			return nil, err
		}
	}

	resolver := resolve.New(cfg, checker)

	var result api.BuildResult
	lockPath := filepath.Join(cfg.OutDir, lockFilename)
	err := utils.WithBuildLock(ctx, lockPath, func() error {
		slog.Info("bundling package", "type", cfg.Type.String(), "name", cfg.Name, "entry", cfg.Entry)
		result = api.Build(buildOptions(cfg, resolver))
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(result.Errors) > 0 {
		return nil, buildError(result.Errors)
	}

	meta, err := reconcile.ParseMetafile(result.Metafile)
	if err != nil {
		return nil, err
	}
	return &Result{Metafile: meta, Warnings: result.Warnings}, nil
}

func fillDefaults(cfg *buildconfig.Config) error {
	m, err := manifest.Read(cfg.ManifestPath())
	if err != nil {
		return diagnostics.NewSchemaViolation(cfg.Type.ManifestFilename(), err)
	}

	if cfg.Name == "" {
		cfg.Name = m.ID()
	}
	if cfg.Name == "" {
		return diagnostics.NewConfigurationError(
			fmt.Errorf("package name is not set and the manifest declares no id"))
	}

	if cfg.Entry == "" {
		esmodules := m.Esmodules()
		if len(esmodules) == 0 {
			return diagnostics.NewConfigurationError(
				fmt.Errorf("no entry point: set entry in %s or declare an esmodules entry in the manifest", buildconfig.ConfigFilename))
		}
		cfg.Entry = esmodules[0]
	}
	return nil
}

func buildOptions(cfg *buildconfig.Config, resolver *resolve.Resolver) api.BuildOptions {
	sourcemap := api.SourceMapNone
	if cfg.Sourcemap {
		sourcemap = api.SourceMapLinked
	}

	return api.BuildOptions{
		AbsWorkingDir: cfg.ProjectRoot,
		EntryPoints:   []string{cfg.Entry},
		Outdir:        cfg.OutDir,
		Outbase:       cfg.ProjectRoot,
		Bundle:        true,
		Write:         true,
		Metafile:      true,
		Format:        api.FormatESModule,
		Platform:      api.PlatformBrowser,
		Target:        api.ESNext,
		Sourcemap:     sourcemap,

		MinifyWhitespace:  cfg.Minify,
		MinifyIdentifiers: cfg.Minify,
		MinifySyntax:      cfg.Minify,

		// the plugin surfaces its own diagnostics; build messages are
		// rendered by the caller
		LogLevel: api.LogLevelSilent,
		Plugins:  []api.Plugin{plugin.New(cfg, resolver)},
	}
}

func buildError(msgs []api.Message) error {
	errs := make([]error, 0, len(msgs))
	for _, msg := range msgs {
		if d, ok := msg.Detail.(*diagnostics.Diagnostic); ok {
			errs = append(errs, d)
			continue
		}
		text := msg.Text
		if msg.Location != nil {
			text = fmt.Sprintf("%s:%d:%d: %s", msg.Location.File, msg.Location.Line, msg.Location.Column, msg.Text)
		}
		errs = append(errs, errors.New(text))
	}
	return fmt.Errorf("build failed: %w", errors.Join(errs...))
}

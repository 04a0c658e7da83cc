// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package build

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/vttforge/vttforge/pkg/buildconfig"
	"github.com/vttforge/vttforge/pkg/buildreport"
	"github.com/vttforge/vttforge/pkg/bundler"
	"github.com/vttforge/vttforge/pkg/utils"
)

type flags struct {
	packageType            string
	name                   string
	entry                  string
	outDir                 string
	rewriteAbsoluteImports bool
	checkImports           bool
	minify                 bool
	sourcemap              bool
}

func Cmd() *cobra.Command {
	f := flags{}

	cmd := &cobra.Command{
		Use:   "build [package-root]",
		Long:  "bundles the package rooted at the given directory (default: the working directory) and writes the rewritten manifest into the output tree",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}

			config, err := buildconfig.Get(root)
			if err != nil {
				return err
			}
			if err := applyFlags(cmd, &f, config); err != nil {
				return err
			}

			result, err := bundler.Run(cmd.Context(), config)
			if err != nil {
				slog.ErrorContext(cmd.Context(), "build failed", "error", err)
				return err
			}

			buildreport.Render(cmd, result.Metafile)
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.packageType, "type", "t", "", "package type ('module' or 'system')")
	cmd.Flags().StringVar(&f.name, "name", "", "package name for the runtime deploy prefix (default: manifest id)")
	cmd.Flags().StringVar(&f.entry, "entry", "", "package-root-relative ES module entry point (default: first manifest esmodules entry)")
	cmd.Flags().StringVarP(&f.outDir, "outdir", "o", "", "output directory (default: <package-root>/dist)")
	cmd.Flags().BoolVar(&f.rewriteAbsoluteImports, "rewrite-absolute-imports", false, "treat absolute imports as host route paths and rewrite them to runtime loads")
	cmd.Flags().BoolVar(&f.checkImports, "check-imports", false, "warn when a host-external import is missing from the host data directory")
	cmd.Flags().BoolVar(&f.minify, "minify", false, "minify bundled output")
	cmd.Flags().BoolVar(&f.sourcemap, "sourcemap", false, "emit linked source maps")

	return cmd
}

// applyFlags lets explicitly set flags override vttforge.yaml and the
// environment.
func applyFlags(cmd *cobra.Command, f *flags, config *buildconfig.Config) error {
	if cmd.Flags().Changed("type") {
		t, err := buildconfig.ParsePackageType(f.packageType)
		if err != nil {
			return err
		}
		config.Type = t
	}
	if cmd.Flags().Changed("name") {
		config.Name = f.name
	}
	if cmd.Flags().Changed("entry") {
		config.Entry = f.entry
	}
	if cmd.Flags().Changed("outdir") {
		config.OutDir = utils.ResolvePath(config.ProjectRoot, f.outDir)
	}
	if cmd.Flags().Changed("rewrite-absolute-imports") {
		config.RewriteAbsoluteImports = f.rewriteAbsoluteImports
	}
	if cmd.Flags().Changed("check-imports") {
		config.CheckExternalImports = f.checkImports
	}
	if cmd.Flags().Changed("minify") {
		config.Minify = f.minify
	}
	if cmd.Flags().Changed("sourcemap") {
		config.Sourcemap = f.sourcemap
	}
	return nil
}

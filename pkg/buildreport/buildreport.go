// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package buildreport renders the post-build summary: what landed in the
// output tree and which imports stayed with the host.
package buildreport

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/vttforge/vttforge/pkg/reconcile"
	"github.com/vttforge/vttforge/pkg/utils"
	"github.com/vttforge/vttforge/pkg/utils/stringset"
)

type row struct {
	path       string
	bytes      int
	entryPoint string
}

// Render prints the output table and the host-external import list.
func Render(printer utils.RawPrinter, meta *reconcile.Metafile) {
	printer.Println(Table(meta))

	externals := ExternalImports(meta)
	if len(externals) == 0 {
		return
	}
	printer.Println("host-provided imports (not bundled):")
	for _, ext := range externals {
		printer.Printf("  %s\n", color.CyanString(ext))
	}
}

// Table lists every output file with its size, entry points highlighted.
func Table(meta *reconcile.Metafile) string {
	rows := make([]row, 0, len(meta.Outputs))
	for path, out := range meta.Outputs {
		rows = append(rows, row{path: path, bytes: out.Bytes, entryPoint: out.EntryPoint})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].path < rows[j].path })

	return table.New().
		Border(lipgloss.HiddenBorder()).
		BorderTop(false).
		BorderBottom(false).
		Rows(lo.Map(rows, func(r row, _ int) []string {
			path := r.path
			if r.entryPoint != "" {
				path = lipgloss.NewStyle().
					Foreground(lipgloss.Color("2")).
					Bold(true).
					Render(path)
			}
			return []string{path, formatBytes(r.bytes)}
		})...).
		String()
}

// ExternalImports collects the distinct import paths the build left to the
// host, sorted.
func ExternalImports(meta *reconcile.Metafile) []string {
	seen := stringset.StringSet{}
	for _, out := range meta.Outputs {
		for _, imp := range out.Imports {
			if !imp.External {
				continue
			}
			path := imp.Path
			if imp.Original != "" {
				path = imp.Original
			}
			seen.Add(path)
		}
	}
	return seen.Sorted()
}

func formatBytes(n int) string {
	units := []string{"b", "kb", "mb"}
	size := float64(n)
	unit := 0
	for size >= 1024 && unit < len(units)-1 {
		size /= 1024
		unit++
	}
	if unit == 0 {
		return fmt.Sprintf("%d%s", n, units[unit])
	}
	return strings.TrimSuffix(fmt.Sprintf("%.1f", size), ".0") + units[unit]
}

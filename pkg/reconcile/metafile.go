// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package reconcile

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/vttforge/vttforge/pkg/pathutil"
)

// Metafile mirrors the bundler's build report JSON.
type Metafile struct {
	Inputs  map[string]MetafileInput  `json:"inputs"`
	Outputs map[string]MetafileOutput `json:"outputs"`
}

type MetafileInput struct {
	Bytes   int              `json:"bytes"`
	Imports []MetafileImport `json:"imports"`
	Format  string           `json:"format,omitempty"`
}

type MetafileImport struct {
	Path     string `json:"path"`
	Kind     string `json:"kind"`
	External bool   `json:"external,omitempty"`
	Original string `json:"original,omitempty"`
}

type MetafileOutput struct {
	Bytes      int                     `json:"bytes"`
	Inputs     map[string]InputContrib `json:"inputs"`
	Imports    []MetafileImport        `json:"imports"`
	Exports    []string                `json:"exports"`
	EntryPoint string                  `json:"entryPoint,omitempty"`
}

type InputContrib struct {
	BytesInOutput int `json:"bytesInOutput"`
}

func ParseMetafile(contents string) (*Metafile, error) {
	var m Metafile
	if err := json.Unmarshal([]byte(contents), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// Output is one reconciled output location.
type Output struct {
	// Path is the output file relative to the output directory, slash
	// separated.
	Path string
	Meta MetafileOutput
}

// InputsToOutputs maps every package-root-relative source path to the
// output it landed in. Derived once from the final build report; read-only
// afterwards.
type InputsToOutputs map[string]Output

// MapInputsToOutputs inverts the metafile's outputs section. Metafile keys
// are relative to the build working directory (the package root);
// relocateOutput converts an output key to its path relative to the output
// directory. Source maps are not inputs and are skipped.
func (m *Metafile) MapInputsToOutputs(relocateOutput func(string) (string, error)) (InputsToOutputs, error) {
	result := make(InputsToOutputs)
	for key, out := range m.Outputs {
		if strings.HasSuffix(key, ".map") {
			continue
		}
		outRel, err := relocateOutput(key)
		if err != nil {
			return nil, err
		}
		record := Output{Path: outRel, Meta: out}

		if out.EntryPoint != "" {
			result[pathutil.Normalize(out.EntryPoint)] = record
		}
		for input := range out.Inputs {
			result[pathutil.Normalize(input)] = record
		}
	}
	return result, nil
}

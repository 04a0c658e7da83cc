// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

// Package hostcheck verifies, best effort, that host-external imports point
// at files the host application actually deploys. A miss is a warning and
// never fails the build: the host's install tree is not required to be
// present where the package is built.
package hostcheck

import (
	"log/slog"
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

const statCacheSize = 512

type Checker struct {
	dataPath string
	cache    *lru.Cache[string, bool]
}

// New returns a Checker probing under the host user data directory.
func New(dataPath string) (*Checker, error) {
	cache, err := lru.New[string, bool](statCacheSize)
	if err != nil {
		return nil, err
	}
	return &Checker{dataPath: dataPath, cache: cache}, nil
}

// Exists reports whether the runtime-root-relative path is present in the
// host data directory. Results are cached; repeated imports of the same
// host resource cost one stat.
func (c *Checker) Exists(runtimePath string) bool {
	if ok, hit := c.cache.Get(runtimePath); hit {
		return ok
	}

	_, err := os.Stat(filepath.Join(c.dataPath, filepath.FromSlash(runtimePath)))
	exists := err == nil
	c.cache.Add(runtimePath, exists)
	return exists
}

// WarnIfMissing logs when an external import has no counterpart in the host
// data directory.
func (c *Checker) WarnIfMissing(runtimePath string) {
	if !c.Exists(runtimePath) {
		slog.Warn("external import not found in host data directory; it must be provided by the host at runtime",
			"path", runtimePath, "data-path", c.dataPath)
	}
}

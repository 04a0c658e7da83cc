// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package utils

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithBuildLockRunsAction(t *testing.T) {
	lockFile := filepath.Join(t.TempDir(), "out", ".lock")

	ran := false
	err := WithBuildLock(context.Background(), lockFile, func() error {
		ran = true
		return nil
	})
	require.NoError(t, err)
	assert.True(t, ran)

	// the lock is released, so a second build can take it
	require.NoError(t, WithBuildLock(context.Background(), lockFile, func() error { return nil }))
}

func TestWithBuildLockPropagatesActionError(t *testing.T) {
	lockFile := filepath.Join(t.TempDir(), ".lock")
	wantErr := fmt.Errorf("action failed")

	err := WithBuildLock(context.Background(), lockFile, func() error { return wantErr })
	assert.ErrorIs(t, err, wantErr)
}

func TestWithBuildLockHonorsCancelledContext(t *testing.T) {
	lockFile := filepath.Join(t.TempDir(), ".lock")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := WithBuildLock(ctx, lockFile, func() error {
		t.Fatal("action must not run after cancellation")
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
}

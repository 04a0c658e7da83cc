// Copyright (c) 2017-2025 Digital Asset (Switzerland) GmbH and/or its affiliates. All rights reserved.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"github.com/spf13/cobra"
	"github.com/vttforge/vttforge/cmd/vttforge/cmd/build"
	"github.com/vttforge/vttforge/cmd/vttforge/cmd/check"
	"github.com/vttforge/vttforge/pkg/logging"
)

const Name = "vttforge"

func RootCmd() (*cobra.Command, error) {
	cmd := &cobra.Command{
		Use:           Name,
		Short:         "bundle content packages for a Foundry-style host application",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	if err := logging.InitLogging(); err != nil {
		return nil, err
	}

	cmd.AddCommand(build.Cmd())
	cmd.AddCommand(check.Cmd())
	return cmd, nil
}

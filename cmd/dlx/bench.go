// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"github.com/spf13/cobra"

	"github.com/go-air/dlx/bench"
)

func newBenchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:    "bench",
		Short:  "run the timed solver suites",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, e := bench.FromEnv()
			if e != nil {
				return e
			}
			_, e = cfg.Run(cmd.OutOrStdout())
			return e
		},
	}
	return cmd
}

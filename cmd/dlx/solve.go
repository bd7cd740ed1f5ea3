// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"bufio"

	"github.com/spf13/cobra"

	"github.com/go-air/dlx"
	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/sink"
)

func newSolveCmd() *cobra.Command {
	var binary bool
	cmd := &cobra.Command{
		Use:   "solve [cover] [solution-output]",
		Short: "solve a DLXB cover",
		Long: `solve reads a DLXB cover and emits every solution.

"-" or an omitted path means stdin or stdout.  Without --binary the
solution output is textual row-id lines; with --binary it is a DLXS
stream.  When a DLXS stream goes to stdout, textual output is
suppressed rather than interleaved.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			coverPath, outPath := "", ""
			if len(args) > 0 {
				coverPath = args[0]
			}
			if len(args) > 1 {
				outPath = args[1]
			}
			return runSolve(cmd, coverPath, outPath, binary)
		},
	}
	cmd.Flags().BoolVar(&binary, "binary", false, "write a DLXS stream instead of text")
	return cmd
}

func runSolve(cmd *cobra.Command, coverPath, outPath string, binary bool) error {
	in, e := path2Reader(coverPath)
	if e != nil {
		return e
	}
	defer in.Close()

	m, e := dlx.NewReader(bufio.NewReader(in))
	if e != nil {
		return e
	}

	out, outIsStdout, e := path2Writer(outPath)
	if e != nil {
		return e
	}
	defer out.Close()
	bw := bufio.NewWriter(out)

	sinks := sink.NewComposite()
	var sw *dlxio.SolutionWriter
	if binary {
		sw = dlxio.NewSolutionWriter(bw)
		if e := sw.Start(dlxio.NewSolutionHeader(uint32(m.Columns()))); e != nil {
			return e
		}
		sinks.Add(sink.NewBinary(sw))
	} else {
		sinks.Add(sink.NewStream(bw))
	}
	// Echo textual rows to the console when the solution stream goes
	// elsewhere; a DLXS stream on stdout owns it exclusively.
	if !outIsStdout {
		sinks.Add(sink.NewStream(cmd.OutOrStdout()))
	}

	if _, e := m.Solve(sinks); e != nil {
		return e
	}
	if sw != nil {
		if e := sw.Finish(); e != nil {
			return e
		}
	}
	return bw.Flush()
}

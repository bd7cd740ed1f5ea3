// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"bufio"
	"io"

	"github.com/spf13/cobra"

	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/sudoku"
)

func newSudokuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sudoku",
		Short: "encode and decode Sudoku puzzles",
	}
	cmd.AddCommand(newSudokuEncodeCmd())
	cmd.AddCommand(newSudokuDecodeCmd())
	return cmd
}

func newSudokuEncodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "encode [puzzle] [cover-output]",
		Short: "convert an 81-cell puzzle into a DLXB cover",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			puzzlePath, outPath := "", ""
			if len(args) > 0 {
				puzzlePath = args[0]
			}
			if len(args) > 1 {
				outPath = args[1]
			}
			g, e := readGrid(puzzlePath)
			if e != nil {
				return e
			}
			p, e := sudoku.Encode(g)
			if e != nil {
				return e
			}
			out, _, e := path2Writer(outPath)
			if e != nil {
				return e
			}
			defer out.Close()
			bw := bufio.NewWriter(out)
			if e := dlxio.WriteProblem(bw, p); e != nil {
				return e
			}
			return bw.Flush()
		},
	}
}

func newSudokuDecodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "decode <puzzle> [solution-input]",
		Short: "render a DLXS solution stream as solved grids",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			solPath := ""
			if len(args) > 1 {
				solPath = args[1]
			}
			g, e := readGrid(args[0])
			if e != nil {
				return e
			}
			in, e := path2Reader(solPath)
			if e != nil {
				return e
			}
			defer in.Close()
			sol, e := dlxio.ReadSolution(bufio.NewReader(in))
			if e != nil {
				return e
			}
			grids, e := sudoku.Decode(g, sol)
			if e != nil {
				return e
			}
			for i, grid := range grids {
				if e := sudoku.Print(cmd.OutOrStdout(), i+1, grid); e != nil {
					return e
				}
			}
			return nil
		},
	}
}

func readGrid(path string) (*sudoku.Grid, error) {
	in, e := path2Reader(path)
	if e != nil {
		return nil, e
	}
	defer in.Close()
	buf, e := io.ReadAll(in)
	if e != nil {
		return nil, e
	}
	return sudoku.ParseGrid(string(buf))
}

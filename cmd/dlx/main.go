// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "dlx",
		Short: "dlx solves exact cover problems",
		Long:  `dlx solves exact cover problems with Algorithm X over Dancing Links.`,

		// main reports a failure as one log line on stderr.
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log.SetOutput(os.Stderr)
			log.SetLevel(log.WarnLevel)
			if debug, _ := cmd.Flags().GetBool("debug"); debug {
				log.SetLevel(log.DebugLevel)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(newSolveCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newSudokuCmd())
	rootCmd.AddCommand(newBenchCmd())

	if err := rootCmd.Execute(); err != nil {
		log.Error(err.Error())
		os.Exit(1)
	}
}

// path2Reader opens p for reading; "-" or the empty string is stdin.
func path2Reader(p string) (io.ReadCloser, error) {
	if p == "" || p == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(p)
}

// path2Writer opens p for writing; "-" or the empty string is stdout.
// The returned flag reports whether the writer is stdout.
func path2Writer(p string) (io.WriteCloser, bool, error) {
	if p == "" || p == "-" {
		return nopWriteCloser{os.Stdout}, true, nil
	}
	f, e := os.Create(p)
	return f, false, e
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

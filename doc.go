// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dlx solves exact cover problems with Knuth's Algorithm X
// realized over Dancing Links.
//
// A cover problem is decoded from the DLXB wire format (package dlxio),
// built into an intrusive sparse matrix, and searched exhaustively;
// solutions flow to pluggable sinks (package sink) as textual lines,
// DLXS binary rows, or both.
//
//	m, e := dlx.NewReader(coverFile)
//	if e != nil { ... }
//	n, e := m.Solve(sink.NewStream(os.Stdout))
//
// Package dlxnet serves the same pipeline over loopback TCP, fanning
// solution streams out to any number of subscribers.  Package sudoku
// encodes 9x9 puzzles as 324-column covers and decodes solution
// streams back into grids.
package dlx

// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dlxio implements the DLX binary interchange formats.
//
// Two framed formats share a common style: all multi-byte integers are
// big-endian, there is no padding, and frames carry no alignment
// assumptions.
//
// # DLXB (cover problems)
//
// A cover problem is a header followed by row chunks:
//
//	CoverHeader
//	    magic        u32     0x444C5842 "DLXB"
//	    version      u16     1
//	    flags        u16     0
//	    column_count u32
//	    row_count    u32
//	RowChunk (row_count times)
//	    row_id       u32     0 means "assign the 1-based sequence number"
//	    entry_count  u16
//	    column_index u32 * entry_count
//
// Column indices within a chunk must be distinct and in [0, column_count).
// Multiple independent DLXB payloads may be concatenated on one stream;
// a reader that has consumed row_count chunks leaves the stream positioned
// at the next header.
//
// # DLXS (solution streams)
//
// A solution stream is a header followed by solution rows and a
// terminating sentinel row:
//
//	SolutionHeader
//	    magic        u32     0x444C5853 "DLXS"
//	    version      u16     1
//	    flags        u16     0
//	    column_count u32
//	SolutionRow (zero or more)
//	    solution_id  u32     monotonic from 1
//	    entry_count  u16
//	    row_index    u32 * entry_count
//	SolutionRow sentinel
//	    solution_id  u32     0
//	    entry_count  u16     0
//
// The stream has no explicit length; the sentinel terminates it.  Any
// bytes following the sentinel on the same stream begin a new header.
//
// ReadProblem/WriteProblem and ReadSolution/WriteSolution operate on
// whole in-memory containers.  ProblemReader/ProblemWriter and
// SolutionReader/SolutionWriter stream one chunk or row at a time and
// reuse their buffers across calls.
package dlxio

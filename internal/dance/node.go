// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dance holds the Dancing Links engine: a contiguous node arena
// with index links, the matrix builder, and the Algorithm X search.
//
// The arena layout is fixed: index 0 is the root, indices 1..C are the
// column headers, and the remainder is a sequence of option-row blocks,
// each preceded by a spacer node and the whole terminated by one final
// spacer.  Option nodes of a row occupy adjacent indices, so a row is
// walked by incrementing or decrementing an index until a spacer is
// reached.  A node is a spacer exactly when its top link is the root.
package dance

// node is one arena element.  All links are arena indices.
//
//	len:  column headers only; number of live option nodes below.
//	data: column id for headers (>= 1), own index for option nodes,
//	      negated id of the preceding row for spacers, 0 for the root.
type node struct {
	len   int
	data  int
	top   int
	up    int
	down  int
	left  int
	right int
}

// spacer reports whether index i is a spacer (or the root itself).
// Only valid off the header range: headers also have top == 0.
func (m *Matrix) spacer(i int) bool {
	return m.nodes[i].top == 0
}

// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dance

import (
	"math"
	"strconv"

	"github.com/go-air/dlx/sink"
)

// Search runs Algorithm X to completion, calling s once per solution
// with the chosen row ids in selection order.  It returns the number
// of solutions emitted.  On return the matrix is structurally
// identical to its state before the call, whether or not s errored.
func (m *Matrix) Search(s sink.Sink) (int, error) {
	count := 0
	e := m.search(0, s, &count)
	return count, e
}

func (m *Matrix) search(d int, s sink.Sink, count *int) error {
	if m.nodes[0].right == 0 {
		*count++
		v := sink.View{Values: m.labels[:d], RowIDs: m.rowIDs[:d]}
		if e := s.OnSolution(v); e != nil {
			return e
		}
		return s.Flush()
	}

	c := m.pick()
	m.cover(c)
	var err error
	for r := m.nodes[c].down; r != c; r = m.nodes[r].down {
		id := m.rowID(r)
		m.rowIDs[d] = id
		m.labels[d] = strconv.FormatUint(uint64(id), 10)

		// Cover the other columns of r's row, walking forward by
		// index and wrapping through the trailing spacer.
		for q := r + 1; q != r; {
			if m.spacer(q) {
				q = m.nodes[q].up
				continue
			}
			m.cover(m.nodes[q].top)
			q++
		}

		err = m.search(d+1, s, count)

		// Mirror walk, restoring state in exact reverse order.
		for q := r - 1; q != r; {
			if m.spacer(q) {
				q = m.nodes[q].down
				continue
			}
			m.uncover(m.nodes[q].top)
			q--
		}
		if err != nil {
			break
		}
	}
	m.uncover(c)
	return err
}

// pick selects the uncovered column with minimum len, first seen
// winning ties, exiting early on an empty column.
func (m *Matrix) pick() int {
	best := 0
	theta := math.MaxInt
	for p := m.nodes[0].right; p != 0; p = m.nodes[p].right {
		if m.nodes[p].len < theta {
			best = p
			theta = m.nodes[p].len
			if theta == 0 {
				return best
			}
		}
	}
	return best
}

// rowID walks forward from option node r to its trailing spacer and
// gives the row id stored there.
func (m *Matrix) rowID(r int) uint32 {
	q := r
	for m.nodes[q].data > 0 {
		q++
	}
	return uint32(-m.nodes[q].data)
}

// cover splices column c out of the header ring and hides every row
// that has an option in c.
func (m *Matrix) cover(c int) {
	for p := m.nodes[c].down; p != c; p = m.nodes[p].down {
		m.hide(p)
	}
	l, r := m.nodes[c].left, m.nodes[c].right
	m.nodes[l].right = r
	m.nodes[r].left = l
}

// hide unlinks every other option of p's row from its column ring.
func (m *Matrix) hide(p int) {
	for q := p + 1; q != p; {
		if m.spacer(q) {
			q = m.nodes[q].up
			continue
		}
		u, d := m.nodes[q].up, m.nodes[q].down
		m.nodes[u].down = d
		m.nodes[d].up = u
		m.nodes[m.nodes[q].top].len--
		q++
	}
}

// uncover is the exact inverse of cover.
func (m *Matrix) uncover(c int) {
	l, r := m.nodes[c].left, m.nodes[c].right
	m.nodes[l].right = c
	m.nodes[r].left = c
	for p := m.nodes[c].up; p != c; p = m.nodes[p].up {
		m.unhide(p)
	}
}

// unhide is the exact inverse of hide.
func (m *Matrix) unhide(p int) {
	for q := p - 1; q != p; {
		if m.spacer(q) {
			q = m.nodes[q].down
			continue
		}
		u, d := m.nodes[q].up, m.nodes[q].down
		m.nodes[u].down = q
		m.nodes[d].up = q
		m.nodes[m.nodes[q].top].len++
		q--
	}
}

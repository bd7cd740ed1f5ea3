// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dance

import (
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/pkg/errors"

	"github.com/go-air/dlx/dlxio"
)

// Matrix is an arena-backed Dancing Links matrix together with the
// per-depth scratch the search fills as it descends.
type Matrix struct {
	nodes   []node
	cols    int
	rows    int
	options int

	rowIDs []uint32
	labels []string
}

// New builds a matrix from a decoded cover problem.  Each chunk's
// columns are sorted ascending in place; out-of-range indices and
// structural overflow are rejected.
func New(p *dlxio.Problem) (*Matrix, error) {
	cols := int(p.Header.ColumnCount)
	if uint64(p.Header.ColumnCount) > math.MaxInt32 {
		return nil, errors.Errorf("dance: column count %d too large", p.Header.ColumnCount)
	}
	options := 0
	for i := range p.Rows {
		for _, c := range p.Rows[i].Columns {
			if int(c) >= cols {
				return nil, errors.Errorf("dance: row %d column %d out of range [0,%d)", i, c, cols)
			}
		}
		sort.Slice(p.Rows[i].Columns, func(a, b int) bool {
			return p.Rows[i].Columns[a] < p.Rows[i].Columns[b]
		})
		options += len(p.Rows[i].Columns)
		if options > math.MaxInt32 {
			return nil, errors.New("dance: option count overflow")
		}
	}
	nrows := len(p.Rows)
	total := cols + options + nrows + 1 // headers + options + spacers
	if total > math.MaxInt32 {
		return nil, errors.New("dance: node count overflow")
	}

	m := &Matrix{
		nodes:   make([]node, total+1), // +1 for the root
		cols:    cols,
		rows:    nrows,
		options: options,
		rowIDs:  make([]uint32, options+1),
		labels:  make([]string, options+1)}

	// Root and the column header ring.
	m.nodes[0] = node{}
	for c := 1; c <= cols; c++ {
		m.nodes[c] = node{data: c, up: c, down: c, left: c - 1, right: (c % cols) + 1}
	}
	if cols > 0 {
		m.nodes[cols].right = 0
		m.nodes[0].right = 1
		m.nodes[0].left = cols
	}

	// Row blocks, spacer-prefixed.  Each spacer's data carries the
	// negated id of the row it terminates; its down link to the last
	// node of the following row is patched when that row is done.
	cur := cols // last used index
	prevSpacer := 0
	for k := range p.Rows {
		sp := cur + 1
		m.nodes[sp] = node{top: 0, up: 0, down: 0}
		if k == 0 {
			m.nodes[sp].data = 0
		} else {
			m.nodes[sp].data = -int(p.Rows[k-1].RowID)
			if len(p.Rows[k-1].Columns) > 0 {
				m.nodes[sp].up = prevSpacer + 1 // first node of the previous row
				m.nodes[prevSpacer].down = sp - 1
			}
		}
		prevSpacer = sp
		cur = sp
		for _, c := range p.Rows[k].Columns {
			h := int(c) + 1
			i := cur + 1
			last := m.nodes[h].up
			m.nodes[i] = node{data: i, top: h, up: last, down: h}
			m.nodes[last].down = i
			m.nodes[h].up = i
			m.nodes[h].len++
			cur = i
		}
	}

	// Terminating spacer.
	sp := cur + 1
	m.nodes[sp] = node{top: 0, down: 0}
	if nrows > 0 {
		m.nodes[sp].data = -int(p.Rows[nrows-1].RowID)
		if len(p.Rows[nrows-1].Columns) > 0 {
			m.nodes[sp].up = prevSpacer + 1
			m.nodes[prevSpacer].down = sp - 1
		}
	}
	return m, nil
}

// Columns gives the column count.
func (m *Matrix) Columns() int { return m.cols }

// Rows gives the row count.
func (m *Matrix) Rows() int { return m.rows }

// Options gives the option node count.
func (m *Matrix) Options() int { return m.options }

// Dump writes a deterministic line-per-node description of the arena,
// usable for structural comparison around a search.
func (m *Matrix) Dump(w io.Writer) error {
	if _, e := fmt.Fprintf(w, "MATRIX cols=%d rows=%d nodes=%d\n", m.cols, m.rows, len(m.nodes)); e != nil {
		return e
	}
	for i := range m.nodes {
		kind := "NODE"
		switch {
		case i == 0:
			kind = "HEAD"
		case i <= m.cols:
			kind = "COLUMN"
		case m.spacer(i):
			kind = "SPACER"
		}
		n := &m.nodes[i]
		_, e := fmt.Fprintf(w, "%s index=%d data=%d len=%d top=%d left=%d right=%d up=%d down=%d\n",
			kind, i, n.data, n.len, n.top, n.left, n.right, n.up, n.down)
		if e != nil {
			return e
		}
	}
	return nil
}

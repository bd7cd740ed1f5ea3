// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sudoku maps 9x9 puzzles onto exact covers and back.
//
// The cover has 324 columns in four constraint bands at fixed offsets:
// cell occupancy at 0, row/digit at 81, column/digit at 162, and
// box/digit at 243.  Candidates are enumerated cell by cell in row
// major order; a given cell contributes exactly its digit, an empty
// cell one candidate per digit not already used in its row, column, or
// box.  Row ids are the 1-based candidate sequence numbers, so a
// decoder rebuilds the same candidate list to interpret them.
package sudoku

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/go-air/dlx/dlxio"
)

// Grid geometry and cover layout.
const (
	GridSize    = 9
	BoxSize     = 3
	DigitCount  = 9
	ColumnCount = 324

	cellOffset     = 0
	rowDigitOffset = 81
	colDigitOffset = 162
	boxDigitOffset = 243
)

// Grid is a 9x9 board; zero cells are empty.
type Grid struct {
	cells [GridSize * GridSize]int
}

// Candidate is one (row, col, digit) placement.
type Candidate struct {
	Row, Col, Digit int
}

func boxIndex(row, col int) int {
	return (row/BoxSize)*BoxSize + col/BoxSize
}

// usage tracks which digits are taken per row, column, and box.
type usage struct {
	row [GridSize][DigitCount + 1]bool
	col [GridSize][DigitCount + 1]bool
	box [GridSize][DigitCount + 1]bool
}

func (u *usage) allowed(row, col, digit int) bool {
	return !(u.row[row][digit] || u.col[col][digit] || u.box[boxIndex(row, col)][digit])
}

func (u *usage) take(row, col, digit int) {
	u.row[row][digit] = true
	u.col[col][digit] = true
	u.box[boxIndex(row, col)][digit] = true
}

// ParseGrid reads an 81-cell puzzle.  Digits 1-9 are givens, '0' and
// '.' are empty, whitespace is skipped.  Conflicting givens are
// rejected.
func ParseGrid(s string) (*Grid, error) {
	g := &Grid{}
	var u usage
	i := 0
	for _, ch := range s {
		switch {
		case ch == '\n' || ch == '\r' || ch == ' ' || ch == '\t':
			continue
		case i >= GridSize*GridSize:
			return nil, errors.New("sudoku: puzzle contains more than 81 cells")
		case ch == '.' || ch == '0':
			g.cells[i] = 0
		case ch >= '1' && ch <= '9':
			row, col := i/GridSize, i%GridSize
			d := int(ch - '0')
			if !u.allowed(row, col, d) {
				return nil, errors.Errorf("sudoku: conflicting digit %d at row %d col %d", d, row, col)
			}
			g.cells[i] = d
			u.take(row, col, d)
		default:
			return nil, errors.Errorf("sudoku: invalid character %q in puzzle", ch)
		}
		i++
	}
	if i != GridSize*GridSize {
		return nil, errors.Errorf("sudoku: puzzle has %d of 81 cells", i)
	}
	return g, nil
}

// At gives the digit at (row, col), 0 if empty.
func (g *Grid) At(row, col int) int { return g.cells[row*GridSize+col] }

// Set places digit d at (row, col).
func (g *Grid) Set(row, col, d int) { g.cells[row*GridSize+col] = d }

// String renders nine 9-digit lines, empties as 0.
func (g *Grid) String() string {
	buf := make([]byte, 0, GridSize*(GridSize+1))
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			buf = append(buf, byte('0'+g.At(row, col)))
		}
		buf = append(buf, '\n')
	}
	return string(buf)
}

func (g *Grid) used() *usage {
	u := &usage{}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if d := g.At(row, col); d > 0 {
				u.take(row, col, d)
			}
		}
	}
	return u
}

// Candidates enumerates every legal placement for g in encoding order.
// A cell with no legal digit is an error.
func Candidates(g *Grid) ([]Candidate, error) {
	u := g.used()
	var out []Candidate
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if d := g.At(row, col); d > 0 {
				out = append(out, Candidate{row, col, d})
				continue
			}
			emitted := false
			for d := 1; d <= DigitCount; d++ {
				if !u.allowed(row, col, d) {
					continue
				}
				out = append(out, Candidate{row, col, d})
				emitted = true
			}
			if !emitted {
				return nil, errors.Errorf("sudoku: no valid digits for cell (%d,%d)", row, col)
			}
		}
	}
	return out, nil
}

func columnsFor(c Candidate) []uint32 {
	return []uint32{
		uint32(cellOffset + c.Row*GridSize + c.Col),
		uint32(rowDigitOffset + c.Row*DigitCount + c.Digit - 1),
		uint32(colDigitOffset + c.Col*DigitCount + c.Digit - 1),
		uint32(boxDigitOffset + boxIndex(c.Row, c.Col)*DigitCount + c.Digit - 1)}
}

// Encode converts a puzzle into its DLXB cover.
func Encode(g *Grid) (*dlxio.Problem, error) {
	cands, e := Candidates(g)
	if e != nil {
		return nil, e
	}
	p := dlxio.NewProblem(ColumnCount)
	for _, c := range cands {
		p.AddRow(0, columnsFor(c)...)
	}
	return p, nil
}

// Decode interprets a DLXS solution stream against the original
// puzzle, giving one solved grid per solution row.
func Decode(g *Grid, sol *dlxio.Solution) ([]*Grid, error) {
	cands, e := Candidates(g)
	if e != nil {
		return nil, e
	}
	grids := make([]*Grid, 0, len(sol.Rows))
	for i := range sol.Rows {
		solved, e := apply(g, cands, sol.Rows[i].RowIndices)
		if e != nil {
			return nil, errors.Wrapf(e, "sudoku: solution %d", i+1)
		}
		grids = append(grids, solved)
	}
	return grids, nil
}

// apply replays one solution's row ids onto a copy of the puzzle.
func apply(g *Grid, cands []Candidate, ids []uint32) (*Grid, error) {
	solved := *g
	u := g.used()
	for _, id := range ids {
		if id == 0 || int(id) > len(cands) {
			return nil, errors.Errorf("invalid row identifier %d", id)
		}
		c := cands[id-1]
		switch {
		case g.At(c.Row, c.Col) != 0:
			if g.At(c.Row, c.Col) != c.Digit {
				return nil, errors.Errorf("digit %d conflicts with given at (%d,%d)", c.Digit, c.Row, c.Col)
			}
			continue
		case solved.At(c.Row, c.Col) != 0:
			return nil, errors.Errorf("conflicting assignment for cell (%d,%d)", c.Row, c.Col)
		case !u.allowed(c.Row, c.Col, c.Digit):
			return nil, errors.Errorf("digit %d invalid at cell (%d,%d)", c.Digit, c.Row, c.Col)
		}
		solved.Set(c.Row, c.Col, c.Digit)
		u.take(c.Row, c.Col, c.Digit)
	}
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if solved.At(row, col) == 0 {
				return nil, errors.Errorf("solution did not fill cell (%d,%d)", row, col)
			}
		}
	}
	return &solved, nil
}

// Print writes one solved grid in the decoder's report format.
func Print(w io.Writer, k int, g *Grid) error {
	if _, e := fmt.Fprintf(w, "Solution #%d\n", k); e != nil {
		return e
	}
	if _, e := io.WriteString(w, g.String()); e != nil {
		return e
	}
	_, e := io.WriteString(w, "\n")
	return e
}

// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sudoku

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/dlx"
	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/sink"
)

const puzzle = `
530070000
600195000
098000060
800060003
400803001
700020006
060000280
000419005
000080079
`

const solved = `534678912
672195348
198342567
859761423
426853791
713924856
961537284
287419635
345286179
`

func TestParseGrid(t *testing.T) {
	g, e := ParseGrid(puzzle)
	require.NoError(t, e)
	assert.Equal(t, 5, g.At(0, 0))
	assert.Equal(t, 0, g.At(0, 2))
	assert.Equal(t, 9, g.At(8, 8))

	dotted := strings.ReplaceAll(puzzle, "0", ".")
	g2, e := ParseGrid(dotted)
	require.NoError(t, e)
	assert.Equal(t, g.String(), g2.String())
}

func TestParseGridErrors(t *testing.T) {
	_, e := ParseGrid("12345")
	assert.Error(t, e)

	_, e = ParseGrid(puzzle + "1")
	assert.Error(t, e)

	_, e = ParseGrid(strings.Replace(puzzle, "5", "x", 1))
	assert.Error(t, e)

	// Two 5s in the first row conflict.
	bad := strings.Replace(puzzle, "530070000", "530070005", 1)
	_, e = ParseGrid(bad)
	assert.Error(t, e)
}

func TestEncodeShape(t *testing.T) {
	g, e := ParseGrid(puzzle)
	require.NoError(t, e)
	p, e := Encode(g)
	require.NoError(t, e)
	assert.Equal(t, uint32(ColumnCount), p.Header.ColumnCount)

	cands, e := Candidates(g)
	require.NoError(t, e)
	require.Len(t, p.Rows, len(cands))

	givens := 0
	for row := 0; row < GridSize; row++ {
		for col := 0; col < GridSize; col++ {
			if g.At(row, col) > 0 {
				givens++
			}
		}
	}
	assert.Equal(t, 30, givens)
	// Each given contributes exactly one candidate; empty cells at
	// least one each.
	assert.GreaterOrEqual(t, len(cands), 81)

	for i, row := range p.Rows {
		assert.Equal(t, uint32(i+1), row.RowID)
		require.Len(t, row.Columns, 4)
		c := cands[i]
		assert.Equal(t, uint32(c.Row*9+c.Col), row.Columns[0])
		assert.Equal(t, uint32(81+c.Row*9+c.Digit-1), row.Columns[1])
		assert.Equal(t, uint32(162+c.Col*9+c.Digit-1), row.Columns[2])
		box := (c.Row/3)*3 + c.Col/3
		assert.Equal(t, uint32(243+box*9+c.Digit-1), row.Columns[3])
	}
}

func TestSolvePipeline(t *testing.T) {
	g, e := ParseGrid(puzzle)
	require.NoError(t, e)
	p, e := Encode(g)
	require.NoError(t, e)

	m, e := dlx.New(p)
	require.NoError(t, e)

	var wire bytes.Buffer
	sw := dlxio.NewSolutionWriter(&wire)
	require.NoError(t, sw.Start(dlxio.NewSolutionHeader(ColumnCount)))

	cnt := &sink.Counting{}
	n, e := m.Solve(sink.NewBinary(sw), cnt)
	require.NoError(t, e)
	require.NoError(t, sw.Finish())

	assert.Equal(t, 1, n, "puzzle must have a unique solution")
	assert.Equal(t, 81, cnt.LastDepth)

	sol, e := dlxio.ReadSolution(&wire)
	require.NoError(t, e)
	require.Len(t, sol.Rows, 1)
	assert.Len(t, sol.Rows[0].RowIndices, 81)

	grids, e := Decode(g, sol)
	require.NoError(t, e)
	require.Len(t, grids, 1)
	assert.Equal(t, solved, grids[0].String())
}

func TestSolveDeterministic(t *testing.T) {
	run := func() []uint32 {
		g, e := ParseGrid(puzzle)
		require.NoError(t, e)
		p, e := Encode(g)
		require.NoError(t, e)
		m, e := dlx.New(p)
		require.NoError(t, e)
		var ids []uint32
		_, e = m.Solve(sink.Func(func(v sink.View) error {
			ids = append(ids, v.RowIDs...)
			return nil
		}))
		require.NoError(t, e)
		return ids
	}
	assert.Equal(t, run(), run())
}

func TestDecodeRejectsBadIDs(t *testing.T) {
	g, e := ParseGrid(puzzle)
	require.NoError(t, e)
	sol := &dlxio.Solution{
		Header: dlxio.NewSolutionHeader(ColumnCount),
		Rows:   []dlxio.SolutionRow{{SolutionID: 1, RowIndices: []uint32{0}}}}
	_, e = Decode(g, sol)
	assert.Error(t, e)

	sol.Rows[0].RowIndices = []uint32{1 << 20}
	_, e = Decode(g, sol)
	assert.Error(t, e)
}

func TestDecodeRejectsIncomplete(t *testing.T) {
	g, e := ParseGrid(puzzle)
	require.NoError(t, e)
	sol := &dlxio.Solution{
		Header: dlxio.NewSolutionHeader(ColumnCount),
		Rows:   []dlxio.SolutionRow{{SolutionID: 1, RowIndices: []uint32{1, 2, 3}}}}
	_, e = Decode(g, sol)
	assert.Error(t, e)
}

func TestPrintFormat(t *testing.T) {
	g, e := ParseGrid(strings.ReplaceAll(solved, "\n", ""))
	require.NoError(t, e)
	var buf bytes.Buffer
	require.NoError(t, Print(&buf, 1, g))
	want := "Solution #1\n" + solved + "\n"
	assert.Equal(t, want, buf.String())
}

// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package sink

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/dlx/dlxio"
)

func view(ids ...uint32) View {
	vals := make([]string, len(ids))
	for i, id := range ids {
		vals[i] = string(rune('0' + id))
	}
	return View{Values: vals, RowIDs: ids}
}

func TestStreamFormat(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	require.NoError(t, s.OnSolution(View{Values: []string{"12", "7", "3"}, RowIDs: []uint32{12, 7, 3}}))
	require.NoError(t, s.OnSolution(View{Values: []string{"9"}, RowIDs: []uint32{9}}))
	require.NoError(t, s.Flush())
	assert.Equal(t, "12 7 3\n9\n", buf.String())
}

func TestStreamEmptySolution(t *testing.T) {
	var buf bytes.Buffer
	s := NewStream(&buf)
	require.NoError(t, s.OnSolution(View{}))
	assert.Equal(t, "\n", buf.String())
}

func TestBinaryDelegates(t *testing.T) {
	var buf bytes.Buffer
	sw := dlxio.NewSolutionWriter(&buf)
	require.NoError(t, sw.Start(dlxio.NewSolutionHeader(4)))
	b := NewBinary(sw)
	require.NoError(t, b.OnSolution(view(3, 1)))
	require.NoError(t, b.OnSolution(view(2)))
	require.NoError(t, sw.Finish())

	sol, e := dlxio.ReadSolution(&buf)
	require.NoError(t, e)
	require.Len(t, sol.Rows, 2)
	assert.Equal(t, []uint32{3, 1}, sol.Rows[0].RowIndices)
	assert.Equal(t, uint32(1), sol.Rows[0].SolutionID)
	assert.Equal(t, []uint32{2}, sol.Rows[1].RowIndices)
	assert.Equal(t, uint32(2), sol.Rows[1].SolutionID)
}

func TestCompositeBroadcastsInOrder(t *testing.T) {
	var a, b bytes.Buffer
	c := NewComposite(NewStream(&a), nil, NewStream(&b))
	require.NoError(t, c.OnSolution(View{Values: []string{"1", "2"}, RowIDs: []uint32{1, 2}}))
	require.NoError(t, c.Flush())
	assert.Equal(t, "1 2\n", a.String())
	assert.Equal(t, "1 2\n", b.String())
}

func TestCompositeEmpty(t *testing.T) {
	c := NewComposite()
	assert.True(t, c.Empty())
	require.NoError(t, c.OnSolution(view(1)))
	require.NoError(t, c.Flush())
}

func TestCounting(t *testing.T) {
	c := &Counting{}
	require.NoError(t, c.OnSolution(view(1, 2, 3)))
	require.NoError(t, c.OnSolution(view(9)))
	assert.Equal(t, 2, c.Count)
	assert.Equal(t, 1, c.LastDepth)
}

func TestFunc(t *testing.T) {
	got := 0
	f := Func(func(v View) error {
		got = v.Depth()
		return nil
	})
	require.NoError(t, f.OnSolution(view(4, 5)))
	require.NoError(t, f.Flush())
	assert.Equal(t, 2, got)
}

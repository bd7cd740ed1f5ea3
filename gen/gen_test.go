// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package gen

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/dlx"
)

func TestIdentityShape(t *testing.T) {
	p := Identity(4)
	assert.Equal(t, uint32(4), p.Header.ColumnCount)
	require.Len(t, p.Rows, 4)
	for i, row := range p.Rows {
		assert.Equal(t, uint32(i+1), row.RowID)
		assert.Equal(t, []uint32{uint32(i)}, row.Columns)
	}
}

func TestGroupsSolutionIdentity(t *testing.T) {
	m, e := dlx.New(Groups(4, 3))
	require.NoError(t, e)
	n, e := m.Solve()
	require.NoError(t, e)
	assert.Equal(t, 81, n) // 3^4
}

func TestRandCoversEveryColumn(t *testing.T) {
	Seed(7)
	p := Rand(20, 12, 5)
	hit := make([]bool, 20)
	for _, row := range p.Rows {
		for _, c := range row.Columns {
			require.Less(t, int(c), 20)
			hit[c] = true
		}
	}
	for c, ok := range hit {
		assert.True(t, ok, "column %d uncovered", c)
	}
}

func TestRandSeedDeterminism(t *testing.T) {
	Seed(11)
	a := Rand(16, 10, 4)
	Seed(11)
	b := Rand(16, 10, 4)
	assert.Empty(t, cmp.Diff(a, b))
}

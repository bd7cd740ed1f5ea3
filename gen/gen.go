// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package gen generates cover problems for tests and benchmarks.
package gen

import (
	"math/rand"
	"sync"

	"github.com/go-air/dlx/dlxio"
)

// make the rng seedable
var rng = rand.New(rand.NewSource(33))
var mu sync.Mutex

// Seed reseeds the package rng.
func Seed(s int64) {
	mu.Lock()
	defer mu.Unlock()
	rng = rand.New(rand.NewSource(s))
}

// Identity generates the n by n identity cover: column i is covered by
// row i+1 alone, so there is exactly one solution of depth n.
func Identity(n int) *dlxio.Problem {
	p := dlxio.NewProblem(uint32(n))
	for i := 0; i < n; i++ {
		p.AddRow(0, uint32(i))
	}
	return p
}

// Groups generates g independent column groups of v interchangeable
// single-column rows each.  The cover has exactly v^g solutions, every
// one of depth g.
func Groups(g, v int) *dlxio.Problem {
	p := dlxio.NewProblem(uint32(g))
	for col := 0; col < g; col++ {
		for k := 0; k < v; k++ {
			p.AddRow(0, uint32(col))
		}
	}
	return p
}

// Rand generates a random cover over cols columns.  Its first rows-1
// rows each hold between 1 and width distinct random columns.  When
// some column appears in none of them, one last row holding exactly the
// missed columns is appended, so every column appears in at least one
// row; otherwise the cover has rows-1 rows.  The result is not
// guaranteed to have an exact cover.
func Rand(cols, rows, width int) *dlxio.Problem {
	mu.Lock() // for package rng
	defer mu.Unlock()
	p := dlxio.NewProblem(uint32(cols))
	hit := make([]bool, cols)
	for i := 0; i < rows-1; i++ {
		n := rng.Intn(width) + 1
		seen := make(map[uint32]bool, n)
		row := make([]uint32, 0, n)
		for len(row) < n {
			c := uint32(rng.Intn(cols))
			if seen[c] {
				continue
			}
			seen[c] = true
			hit[c] = true
			row = append(row, c)
		}
		p.AddRow(0, row...)
	}
	rest := []uint32{}
	for c, ok := range hit {
		if !ok {
			rest = append(rest, uint32(c))
		}
	}
	if len(rest) > 0 {
		p.AddRow(0, rest...)
	}
	return p
}

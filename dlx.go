// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlx

import (
	"io"

	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/internal/dance"
	"github.com/go-air/dlx/sink"
)

// Matrix is a built cover matrix ready to solve.
type Matrix struct {
	dance *dance.Matrix
}

// New builds a matrix from a decoded cover problem.
func New(p *dlxio.Problem) (*Matrix, error) {
	m, e := dance.New(p)
	if e != nil {
		return nil, e
	}
	return &Matrix{dance: m}, nil
}

// NewReader decodes a DLXB cover from r and builds its matrix.
func NewReader(r io.Reader) (*Matrix, error) {
	p, e := dlxio.ReadProblem(r)
	if e != nil {
		return nil, e
	}
	return New(p)
}

// Columns gives the cover's column count.
func (m *Matrix) Columns() int { return m.dance.Columns() }

// Rows gives the cover's row count.
func (m *Matrix) Rows() int { return m.dance.Rows() }

// Options gives the cover's option node count.
func (m *Matrix) Options() int { return m.dance.Options() }

// Solve searches exhaustively, broadcasting each solution to the given
// sinks, and returns the solution count.  With no sinks the search
// only counts.  The matrix is restored on return and may be solved
// again.
func (m *Matrix) Solve(sinks ...sink.Sink) (int, error) {
	switch len(sinks) {
	case 0:
		return m.dance.Search(sink.NewComposite())
	case 1:
		return m.dance.Search(sinks[0])
	default:
		return m.dance.Search(sink.NewComposite(sinks...))
	}
}

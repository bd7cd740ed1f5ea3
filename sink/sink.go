// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package sink defines where solved covers go.
//
// The search engine calls OnSolution once per solution with a borrowed
// view of the chosen rows; implementations must not retain the view or
// its slices past the call.  A non-nil error aborts the enclosing solve.
package sink

import (
	"io"

	"github.com/go-air/dlx/dlxio"
)

// View is a borrowed look at one solution: the textual row labels and
// the parallel numeric row ids, in the order the rows were chosen.
type View struct {
	Values []string
	RowIDs []uint32
}

// Depth gives the number of chosen rows.
func (v *View) Depth() int { return len(v.RowIDs) }

// Sink receives solutions.
type Sink interface {
	OnSolution(v View) error
	Flush() error
}

// Func adapts a function to the Sink interface.
type Func func(v View) error

func (f Func) OnSolution(v View) error { return f(v) }

func (f Func) Flush() error { return nil }

// Stream writes space-separated textual row ids, one solution per
// line.
type Stream struct {
	w io.Writer
}

// NewStream gives a textual sink over w.
func NewStream(w io.Writer) *Stream { return &Stream{w: w} }

func (s *Stream) OnSolution(v View) error {
	for i, val := range v.Values {
		sep := " "
		if i+1 == len(v.Values) {
			sep = "\n"
		}
		if _, e := io.WriteString(s.w, val); e != nil {
			return e
		}
		if _, e := io.WriteString(s.w, sep); e != nil {
			return e
		}
	}
	if len(v.Values) == 0 {
		if _, e := io.WriteString(s.w, "\n"); e != nil {
			return e
		}
	}
	return nil
}

func (s *Stream) Flush() error {
	if f, ok := s.w.(interface{ Flush() error }); ok {
		return f.Flush()
	}
	return nil
}

// Binary forwards the numeric row ids to a DLXS stream writer.  The
// caller starts and finishes the writer; Binary only emits rows.
type Binary struct {
	w *dlxio.SolutionWriter
}

// NewBinary gives a binary sink over an armed solution writer.
func NewBinary(w *dlxio.SolutionWriter) *Binary { return &Binary{w: w} }

func (b *Binary) OnSolution(v View) error { return b.w.WriteRow(v.RowIDs) }

func (b *Binary) Flush() error { return nil }

// Composite broadcasts to an ordered list of sinks.  An empty composite
// is a valid no-op sink.
type Composite struct {
	sinks []Sink
}

// NewComposite gives a composite over the given sinks, dropping nils.
func NewComposite(sinks ...Sink) *Composite {
	c := &Composite{}
	for _, s := range sinks {
		c.Add(s)
	}
	return c
}

// Add appends a child sink.  Nil sinks are ignored.
func (c *Composite) Add(s Sink) {
	if s != nil {
		c.sinks = append(c.sinks, s)
	}
}

// Empty reports whether the composite has no children.
func (c *Composite) Empty() bool { return len(c.sinks) == 0 }

func (c *Composite) OnSolution(v View) error {
	for _, s := range c.sinks {
		if e := s.OnSolution(v); e != nil {
			return e
		}
	}
	return nil
}

func (c *Composite) Flush() error {
	for _, s := range c.sinks {
		if e := s.Flush(); e != nil {
			return e
		}
	}
	return nil
}

// Counting records how many solutions arrived and the depth of the
// last one.
type Counting struct {
	Count     int
	LastDepth int
}

func (c *Counting) OnSolution(v View) error {
	c.Count++
	c.LastDepth = v.Depth()
	return nil
}

func (c *Counting) Flush() error { return nil }

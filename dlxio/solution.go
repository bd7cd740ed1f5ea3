// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// SolutionRow is one solution of a cover: the rows chosen, in the order
// the search selected them.
type SolutionRow struct {
	SolutionID uint32
	RowIndices []uint32
}

// Solution is a whole in-memory DLXS stream.
type Solution struct {
	Header SolutionHeader
	Rows   []SolutionRow
}

// ReadSolution reads a header, then rows until the {0,0} sentinel or a
// clean EOF.
func ReadSolution(r io.Reader) (*Solution, error) {
	sr := NewSolutionReader(r)
	h, e := sr.ReadHeader()
	if e != nil {
		return nil, errors.Wrap(e, "dlxio: read solution")
	}
	s := &Solution{Header: h}
	var row SolutionRow
	for {
		ok, e := sr.ReadRow(&row)
		if e != nil {
			return nil, errors.Wrapf(e, "dlxio: solution row %d", len(s.Rows))
		}
		if !ok {
			return s, nil
		}
		ids := make([]uint32, len(row.RowIndices))
		copy(ids, row.RowIndices)
		s.Rows = append(s.Rows, SolutionRow{SolutionID: row.SolutionID, RowIndices: ids})
	}
}

// WriteSolution writes a header, every row, and the sentinel.
func WriteSolution(w io.Writer, s *Solution) error {
	sw := NewSolutionWriter(w)
	if e := sw.Start(s.Header); e != nil {
		return e
	}
	for _, row := range s.Rows {
		if e := sw.WriteRow(row.RowIndices); e != nil {
			return e
		}
	}
	return sw.Finish()
}

// SolutionReader streams DLXS rows.  The reader owns reusable scratch
// for row indices.
type SolutionReader struct {
	r        io.Reader
	header   SolutionHeader
	headerOk bool
	scratch  []uint32
	prefix   [chunkPrefixSize]byte
}

// NewSolutionReader gives a reader over r.
func NewSolutionReader(r io.Reader) *SolutionReader {
	return &SolutionReader{r: r}
}

// ReadHeader reads the DLXS header.  After a sentinel it may be called
// again: successive (header, rows, sentinel) groups share a stream.
func (sr *SolutionReader) ReadHeader() (SolutionHeader, error) {
	h, e := ReadSolutionHeader(sr.r)
	if e != nil {
		return h, e
	}
	sr.header = h
	sr.headerOk = true
	return h, nil
}

// Header gives the most recently read header.
func (sr *SolutionReader) Header() SolutionHeader { return sr.header }

// ReadRow reads the next solution row into dst, reusing dst.RowIndices.
// It returns (false, nil) on the {0,0} sentinel or a clean EOF at the
// first byte; any other short read is an error.
func (sr *SolutionReader) ReadRow(dst *SolutionRow) (bool, error) {
	if !sr.headerOk {
		return false, errors.Wrap(ErrWriterState, "dlxio: row before header")
	}
	if _, e := io.ReadFull(sr.r, sr.prefix[:]); e != nil {
		if e == io.EOF {
			return false, nil
		}
		return false, errors.Wrap(e, "dlxio: row prefix")
	}
	id := binary.BigEndian.Uint32(sr.prefix[0:])
	n := int(binary.BigEndian.Uint16(sr.prefix[4:]))
	if id == 0 && n == 0 {
		sr.headerOk = false
		return false, nil
	}
	sr.scratch = growu32(sr.scratch, n)
	if e := readu32s(sr.r, sr.scratch); e != nil {
		return false, errors.Wrap(e, "dlxio: row indices")
	}
	dst.SolutionID = id
	dst.RowIndices = growu32(dst.RowIndices, n)
	copy(dst.RowIndices, sr.scratch)
	return true, nil
}

// SolutionWriter streams DLXS groups.  Start writes a header and resets
// the monotonic solution id; Finish writes the sentinel and disarms the
// writer so Start may begin a fresh group on the same stream.
type SolutionWriter struct {
	w       io.Writer
	nextID  uint32
	started bool
	scratch []byte
}

// NewSolutionWriter gives a writer over w.
func NewSolutionWriter(w io.Writer) *SolutionWriter {
	return &SolutionWriter{w: w}
}

// Start writes a DLXS header.  Magic and version are forced.
func (sw *SolutionWriter) Start(h SolutionHeader) error {
	if sw.started {
		return errors.Wrap(ErrWriterState, "dlxio: Start while started")
	}
	if e := WriteSolutionHeader(sw.w, h); e != nil {
		return e
	}
	sw.nextID = 1
	sw.started = true
	return nil
}

// WriteRow writes one solution row, assigning the next monotonic id.
func (sw *SolutionWriter) WriteRow(rowIndices []uint32) error {
	if !sw.started {
		return errors.Wrap(ErrWriterState, "dlxio: WriteRow before Start")
	}
	if len(rowIndices) > 0xffff {
		return errors.Wrapf(ErrRowTooLarge, "%d entries", len(rowIndices))
	}
	if e := sw.writeRow(sw.nextID, rowIndices); e != nil {
		return e
	}
	sw.nextID++
	return nil
}

// Finish writes the {0,0} sentinel and disarms the writer.
func (sw *SolutionWriter) Finish() error {
	if !sw.started {
		return errors.Wrap(ErrWriterState, "dlxio: Finish before Start")
	}
	if e := sw.writeRow(0, nil); e != nil {
		return e
	}
	sw.started = false
	return nil
}

func (sw *SolutionWriter) writeRow(id uint32, values []uint32) error {
	need := chunkPrefixSize + 4*len(values)
	if cap(sw.scratch) < need {
		sw.scratch = make([]byte, need)
	}
	buf := sw.scratch[:need]
	binary.BigEndian.PutUint32(buf[0:], id)
	binary.BigEndian.PutUint16(buf[4:], uint16(len(values)))
	for i, v := range values {
		binary.BigEndian.PutUint32(buf[chunkPrefixSize+4*i:], v)
	}
	_, e := sw.w.Write(buf)
	return errors.Wrap(e, "dlxio: write row")
}

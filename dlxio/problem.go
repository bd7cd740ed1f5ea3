// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxio

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
)

// RowChunk is one option row of a cover problem: the row's identifier
// and the column indices it covers.
type RowChunk struct {
	RowID   uint32
	Columns []uint32
}

// Problem is a whole in-memory DLXB cover.
type Problem struct {
	Header CoverHeader
	Rows   []RowChunk
}

// NewProblem gives an empty problem over the given column count.
func NewProblem(columns uint32) *Problem {
	return &Problem{Header: NewCoverHeader(columns, 0)}
}

// AddRow appends a row chunk.  A zero id assigns the 1-based sequence
// number.
func (p *Problem) AddRow(id uint32, columns ...uint32) {
	if id == 0 {
		id = uint32(len(p.Rows) + 1)
	}
	p.Rows = append(p.Rows, RowChunk{RowID: id, Columns: columns})
	p.Header.RowCount = uint32(len(p.Rows))
}

// ReadProblem reads a header and exactly RowCount chunks.
func ReadProblem(r io.Reader) (*Problem, error) {
	pr := NewProblemReader(r)
	h, e := pr.ReadHeader()
	if e != nil {
		return nil, errors.Wrap(e, "dlxio: read problem")
	}
	p := &Problem{Header: h, Rows: make([]RowChunk, 0, capHint(h.RowCount))}
	var chunk RowChunk
	for i := uint32(0); i < h.RowCount; i++ {
		ok, e := pr.ReadChunk(&chunk)
		if e != nil {
			return nil, errors.Wrapf(e, "dlxio: row %d", i)
		}
		if !ok {
			return nil, errors.Wrapf(io.ErrUnexpectedEOF, "dlxio: %d of %d rows", i, h.RowCount)
		}
		cols := make([]uint32, len(chunk.Columns))
		copy(cols, chunk.Columns)
		p.Rows = append(p.Rows, RowChunk{RowID: chunk.RowID, Columns: cols})
	}
	return p, nil
}

// WriteProblem writes p, forcing the header row count to the length of
// the row vector.
func WriteProblem(w io.Writer, p *Problem) error {
	h := p.Header
	h.RowCount = uint32(len(p.Rows))
	pw := NewProblemWriter(w)
	if e := pw.Start(h); e != nil {
		return e
	}
	for _, row := range p.Rows {
		if e := pw.WriteRow(row.RowID, row.Columns); e != nil {
			return e
		}
	}
	return pw.Finish()
}

// ProblemReader streams one cover problem: a header, then chunks.  The
// reader owns reusable scratch for column and validation buffers.
type ProblemReader struct {
	r         io.Reader
	header    CoverHeader
	headerOk  bool
	remaining uint32
	seq       uint32
	scratch   []uint32
	sorted    []uint32
	prefix    [chunkPrefixSize]byte
}

// NewProblemReader gives a reader over r.  The caller is responsible
// for buffering r if many small reads matter.
func NewProblemReader(r io.Reader) *ProblemReader {
	return &ProblemReader{r: r}
}

// ReadHeader reads the DLXB header.  It may be called again after the
// declared chunks are consumed to begin a concatenated problem on the
// same stream.
func (pr *ProblemReader) ReadHeader() (CoverHeader, error) {
	h, e := ReadCoverHeader(pr.r)
	if e != nil {
		return h, e
	}
	pr.header = h
	pr.headerOk = true
	pr.remaining = h.RowCount
	pr.seq = 0
	return h, nil
}

// Header gives the most recently read header.
func (pr *ProblemReader) Header() CoverHeader { return pr.header }

// ReadChunk reads the next row chunk into dst, reusing dst.Columns.
// It returns (false, nil) at end of stream: after the declared row
// count is consumed, or at a clean EOF on the first byte of a chunk.
// A short read anywhere else is an error.  A zero row id on the wire
// is replaced by the 1-based sequence number.
func (pr *ProblemReader) ReadChunk(dst *RowChunk) (bool, error) {
	if !pr.headerOk {
		return false, errors.Wrap(ErrWriterState, "dlxio: chunk before header")
	}
	if pr.remaining == 0 {
		return false, nil
	}
	if _, e := io.ReadFull(pr.r, pr.prefix[:]); e != nil {
		if e == io.EOF {
			return false, nil
		}
		return false, errors.Wrap(e, "dlxio: chunk prefix")
	}
	rowID := binary.BigEndian.Uint32(pr.prefix[0:])
	n := int(binary.BigEndian.Uint16(pr.prefix[4:]))

	pr.scratch = growu32(pr.scratch, n)
	if e := readu32s(pr.r, pr.scratch); e != nil {
		return false, errors.Wrap(e, "dlxio: chunk columns")
	}
	if e := pr.checkColumns(pr.scratch); e != nil {
		return false, e
	}

	pr.seq++
	pr.remaining--
	if rowID == 0 {
		rowID = pr.seq
	}
	dst.RowID = rowID
	dst.Columns = growu32(dst.Columns, n)
	copy(dst.Columns, pr.scratch)
	return true, nil
}

// checkColumns rejects out-of-range and duplicate indices.
func (pr *ProblemReader) checkColumns(cols []uint32) error {
	for _, c := range cols {
		if c >= pr.header.ColumnCount {
			return errors.Wrapf(ErrColumnRange, "column %d of %d", c, pr.header.ColumnCount)
		}
	}
	pr.sorted = growu32(pr.sorted, len(cols))
	copy(pr.sorted, cols)
	sort.Slice(pr.sorted, func(i, j int) bool { return pr.sorted[i] < pr.sorted[j] })
	for i := 1; i < len(pr.sorted); i++ {
		if pr.sorted[i] == pr.sorted[i-1] {
			return errors.Wrapf(ErrDupColumn, "column %d", pr.sorted[i])
		}
	}
	return nil
}

// ProblemWriter streams one or more cover problems.  Start writes a
// header and arms the writer; Finish checks the declared row count and
// disarms it so Start may begin a fresh problem on the same stream.
type ProblemWriter struct {
	w         io.Writer
	remaining uint32
	started   bool
	scratch   []byte
}

// NewProblemWriter gives a writer over w.
func NewProblemWriter(w io.Writer) *ProblemWriter {
	return &ProblemWriter{w: w}
}

// Start writes a DLXB header.  Magic and version are forced.
func (pw *ProblemWriter) Start(h CoverHeader) error {
	if pw.started {
		return errors.Wrap(ErrWriterState, "dlxio: Start while started")
	}
	if e := WriteCoverHeader(pw.w, h); e != nil {
		return e
	}
	pw.remaining = h.RowCount
	pw.started = true
	return nil
}

// WriteRow writes one chunk.  Writing more chunks than the header
// declared is refused.
func (pw *ProblemWriter) WriteRow(rowID uint32, columns []uint32) error {
	if !pw.started {
		return errors.Wrap(ErrWriterState, "dlxio: WriteRow before Start")
	}
	if pw.remaining == 0 {
		return errors.Wrap(ErrRowCount, "dlxio: more rows than declared")
	}
	if len(columns) > 0xffff {
		return errors.Wrapf(ErrRowTooLarge, "%d entries", len(columns))
	}
	if e := pw.writeChunk(rowID, columns); e != nil {
		return e
	}
	pw.remaining--
	return nil
}

// Finish validates the declared row count was met and disarms the
// writer.
func (pw *ProblemWriter) Finish() error {
	if !pw.started {
		return errors.Wrap(ErrWriterState, "dlxio: Finish before Start")
	}
	if pw.remaining != 0 {
		return errors.Wrapf(ErrRowCount, "%d rows short", pw.remaining)
	}
	pw.started = false
	return nil
}

func (pw *ProblemWriter) writeChunk(id uint32, values []uint32) error {
	need := chunkPrefixSize + 4*len(values)
	if cap(pw.scratch) < need {
		pw.scratch = make([]byte, need)
	}
	buf := pw.scratch[:need]
	binary.BigEndian.PutUint32(buf[0:], id)
	binary.BigEndian.PutUint16(buf[4:], uint16(len(values)))
	for i, v := range values {
		binary.BigEndian.PutUint32(buf[chunkPrefixSize+4*i:], v)
	}
	_, e := pw.w.Write(buf)
	return errors.Wrap(e, "dlxio: write chunk")
}

// capHint bounds row preallocation so a hostile header cannot force a
// huge allocation before any chunk bytes arrive.
func capHint(rows uint32) int {
	if rows > 4096 {
		return 4096
	}
	return int(rows)
}

// readu32s fills dst with big-endian values from r.  A short read is
// always an error here; the caller decides what a clean EOF before the
// first byte of a frame means.
func readu32s(r io.Reader, dst []uint32) error {
	var buf [4]byte
	for i := range dst {
		if _, e := io.ReadFull(r, buf[:]); e != nil {
			if e == io.EOF {
				e = io.ErrUnexpectedEOF
			}
			return e
		}
		dst[i] = binary.BigEndian.Uint32(buf[:])
	}
	return nil
}

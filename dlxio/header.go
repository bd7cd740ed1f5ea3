// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxio

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// Magic constants and the format version understood by this package.
const (
	CoverMagic    uint32 = 0x444C5842 // "DLXB"
	SolutionMagic uint32 = 0x444C5853 // "DLXS"
	Version       uint16 = 1
)

// Wire sizes in bytes.
const (
	coverHeaderSize    = 16
	solutionHeaderSize = 12
	chunkPrefixSize    = 6
)

// Errors returned by the codec.  Callers match them with errors.Cause.
var (
	ErrBadMagic    = errors.New("dlxio: bad magic")
	ErrVersion     = errors.New("dlxio: unsupported version")
	ErrColumnRange = errors.New("dlxio: column index out of range")
	ErrDupColumn   = errors.New("dlxio: duplicate column index")
	ErrRowTooLarge = errors.New("dlxio: entry count exceeds format limit")
	ErrRowCount    = errors.New("dlxio: row count mismatch")
	ErrWriterState = errors.New("dlxio: writer in wrong state")
)

// CoverHeader is the DLXB preamble.
type CoverHeader struct {
	Magic       uint32
	Version     uint16
	Flags       uint16
	ColumnCount uint32
	RowCount    uint32
}

// NewCoverHeader gives a header for a cover with the given shape.
func NewCoverHeader(columns, rows uint32) CoverHeader {
	return CoverHeader{
		Magic:       CoverMagic,
		Version:     Version,
		ColumnCount: columns,
		RowCount:    rows}
}

// SolutionHeader is the DLXS preamble.
type SolutionHeader struct {
	Magic       uint32
	Version     uint16
	Flags       uint16
	ColumnCount uint32
}

// NewSolutionHeader gives a header for a solution stream over a cover
// with the given column count.
func NewSolutionHeader(columns uint32) SolutionHeader {
	return SolutionHeader{
		Magic:       SolutionMagic,
		Version:     Version,
		ColumnCount: columns}
}

// WriteCoverHeader writes h in wire order.  The magic and version are
// forced to their canonical values.
func WriteCoverHeader(w io.Writer, h CoverHeader) error {
	var buf [coverHeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:], CoverMagic)
	binary.BigEndian.PutUint16(buf[4:], Version)
	binary.BigEndian.PutUint16(buf[6:], h.Flags)
	binary.BigEndian.PutUint32(buf[8:], h.ColumnCount)
	binary.BigEndian.PutUint32(buf[12:], h.RowCount)
	_, e := w.Write(buf[:])
	return errors.Wrap(e, "dlxio: write cover header")
}

// ReadCoverHeader reads and validates a DLXB header.  If the stream is
// cleanly at EOF before the first byte, the error is io.EOF; a partial
// header is io.ErrUnexpectedEOF.
func ReadCoverHeader(r io.Reader) (CoverHeader, error) {
	var buf [coverHeaderSize]byte
	var h CoverHeader
	if _, e := io.ReadFull(r, buf[:]); e != nil {
		return h, e
	}
	h.Magic = binary.BigEndian.Uint32(buf[0:])
	h.Version = binary.BigEndian.Uint16(buf[4:])
	h.Flags = binary.BigEndian.Uint16(buf[6:])
	h.ColumnCount = binary.BigEndian.Uint32(buf[8:])
	h.RowCount = binary.BigEndian.Uint32(buf[12:])
	if h.Magic != CoverMagic {
		return h, errors.Wrapf(ErrBadMagic, "got %08x", h.Magic)
	}
	if h.Version != Version {
		return h, errors.Wrapf(ErrVersion, "got %d", h.Version)
	}
	return h, nil
}

// WriteSolutionHeader writes h in wire order with canonical magic and
// version.
func WriteSolutionHeader(w io.Writer, h SolutionHeader) error {
	var buf [solutionHeaderSize]byte
	binary.BigEndian.PutUint32(buf[0:], SolutionMagic)
	binary.BigEndian.PutUint16(buf[4:], Version)
	binary.BigEndian.PutUint16(buf[6:], h.Flags)
	binary.BigEndian.PutUint32(buf[8:], h.ColumnCount)
	_, e := w.Write(buf[:])
	return errors.Wrap(e, "dlxio: write solution header")
}

// ReadSolutionHeader reads and validates a DLXS header with the same
// EOF discipline as ReadCoverHeader.
func ReadSolutionHeader(r io.Reader) (SolutionHeader, error) {
	var buf [solutionHeaderSize]byte
	var h SolutionHeader
	if _, e := io.ReadFull(r, buf[:]); e != nil {
		return h, e
	}
	h.Magic = binary.BigEndian.Uint32(buf[0:])
	h.Version = binary.BigEndian.Uint16(buf[4:])
	h.Flags = binary.BigEndian.Uint16(buf[6:])
	h.ColumnCount = binary.BigEndian.Uint32(buf[8:])
	if h.Magic != SolutionMagic {
		return h, errors.Wrapf(ErrBadMagic, "got %08x", h.Magic)
	}
	if h.Version != Version {
		return h, errors.Wrapf(ErrVersion, "got %d", h.Version)
	}
	return h, nil
}

// growu32 gives a slice of length need reusing buf's storage when it
// fits.  Growth doubles the capacity up to MaxUint16/2 and then clamps
// to the exact requirement.
func growu32(buf []uint32, need int) []uint32 {
	if cap(buf) >= need {
		return buf[:need]
	}
	newCap := cap(buf)
	if newCap == 0 {
		newCap = need
	}
	for newCap < need {
		if newCap > 0xffff/2 {
			newCap = need
			break
		}
		newCap *= 2
	}
	return make([]uint32, need, newCap)
}

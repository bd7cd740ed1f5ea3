// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxnet

import (
	"bufio"
	"encoding/binary"
	"net"

	"github.com/pkg/errors"

	"github.com/go-air/dlx/dlxio"
)

// Submit dials the request address, writes the covers in order on one
// connection, and closes.  The server queues each cover as its own
// problem.
func Submit(addr string, problems ...*dlxio.Problem) error {
	conn, e := net.Dial("tcp", addr)
	if e != nil {
		return errors.Wrap(e, "dlxnet: dial request port")
	}
	defer conn.Close()
	bw := bufio.NewWriter(conn)
	for _, p := range problems {
		if e := dlxio.WriteProblem(bw, p); e != nil {
			return e
		}
	}
	return errors.Wrap(bw.Flush(), "dlxnet: submit")
}

// Subscriber reads solution streams from a server's solution port.
type Subscriber struct {
	conn net.Conn
	br   *bufio.Reader
	r    *dlxio.SolutionReader
}

// DialSubscriber connects to the solution address.
func DialSubscriber(addr string) (*Subscriber, error) {
	conn, e := net.Dial("tcp", addr)
	if e != nil {
		return nil, errors.Wrap(e, "dlxnet: dial solution port")
	}
	br := bufio.NewReader(conn)
	return &Subscriber{
		conn: conn,
		br:   br,
		r:    dlxio.NewSolutionReader(br)}, nil
}

// Next reads one whole (header, rows, sentinel) group.  At a clean end
// of stream the error is io.EOF.  An aborted problem ends without a
// sentinel; Next detects the following group's header and returns the
// rows read so far, so the next call begins at that header.
func (s *Subscriber) Next() (*dlxio.Solution, error) {
	h, e := s.r.ReadHeader()
	if e != nil {
		return nil, e
	}
	sol := &dlxio.Solution{Header: h}
	var row dlxio.SolutionRow
	for {
		if s.atHeader() {
			return sol, nil
		}
		ok, e := s.r.ReadRow(&row)
		if e != nil {
			return nil, e
		}
		if !ok {
			return sol, nil
		}
		ids := make([]uint32, len(row.RowIndices))
		copy(ids, row.RowIndices)
		sol.Rows = append(sol.Rows, dlxio.SolutionRow{SolutionID: row.SolutionID, RowIndices: ids})
	}
}

// atHeader reports whether the next bytes look like a DLXS header
// rather than a row.  Solution ids stay far below the magic value, so
// the test is unambiguous in practice.
func (s *Subscriber) atHeader() bool {
	peek, e := s.br.Peek(6)
	if e != nil || len(peek) < 6 {
		return false
	}
	return binary.BigEndian.Uint32(peek) == dlxio.SolutionMagic &&
		binary.BigEndian.Uint16(peek[4:]) == dlxio.Version
}

// Close closes the subscriber connection.
func (s *Subscriber) Close() error { return s.conn.Close() }

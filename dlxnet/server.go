// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxnet

import (
	"bufio"
	"io"
	"net"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/go-air/dlx"
	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/metrics"
	"github.com/go-air/dlx/sink"
)

// Config gives the ports to bind on 127.0.0.1.  A zero port binds an
// ephemeral one; the effective port is observable after Start.
type Config struct {
	RequestPort  uint16
	SolutionPort uint16
}

// Loopback formats a loopback address for the given port.
func Loopback(port uint16) string {
	return net.JoinHostPort("127.0.0.1", strconv.Itoa(int(port)))
}

type eventKind int

const (
	evBegin eventKind = iota
	evRow
	evEnd
)

// event is one step of a problem's solution stream.
type event struct {
	kind eventKind
	cols uint32
	ids  []uint32
}

// subscriber owns its connection and its DLXS serialization state, so
// the broadcaster is a pure fan-out.
type subscriber struct {
	conn    net.Conn
	w       *dlxio.SolutionWriter
	started bool
	failed  bool
}

// Server is a loopback DLX solving service: a problem intake, a solver
// worker, and a broadcast fan-out of solution events to subscribers.
type Server struct {
	cfg Config
	log *logrus.Entry

	reqLn net.Listener
	solLn net.Listener

	problems *queue[*dlxio.Problem]
	events   *queue[event]

	mu     sync.Mutex
	subs   []*subscriber
	active *uint32 // column count of the in-flight problem
	intake map[net.Conn]struct{}

	grp      *errgroup.Group
	stopping atomic.Bool
	stopOnce sync.Once
}

// New gives an unstarted server.
func New(cfg Config) *Server {
	return &Server{
		cfg:      cfg,
		log:      logrus.WithField("component", "dlxnet"),
		problems: newQueue[*dlxio.Problem](),
		events:   newQueue[event](),
		intake:   map[net.Conn]struct{}{}}
}

// Start binds both listeners and launches the accept, worker, and
// broadcast loops.  It does not block; use Wait.
func (s *Server) Start() error {
	if s.reqLn != nil || s.solLn != nil {
		return errors.New("dlxnet: already started")
	}
	var e error
	s.reqLn, e = net.Listen("tcp", Loopback(s.cfg.RequestPort))
	if e != nil {
		return errors.Wrap(e, "dlxnet: bind request port")
	}
	s.solLn, e = net.Listen("tcp", Loopback(s.cfg.SolutionPort))
	if e != nil {
		s.reqLn.Close()
		s.reqLn = nil
		return errors.Wrap(e, "dlxnet: bind solution port")
	}
	s.log.WithFields(logrus.Fields{
		"request":  s.RequestPort(),
		"solution": s.SolutionPort(),
	}).Debug("listening")

	s.grp = &errgroup.Group{}
	s.grp.Go(s.acceptRequests)
	s.grp.Go(s.acceptSubscribers)
	s.grp.Go(s.work)
	s.grp.Go(s.broadcast)
	return nil
}

// RequestPort gives the bound problem port after Start.
func (s *Server) RequestPort() uint16 { return lnPort(s.reqLn) }

// SolutionPort gives the bound subscriber port after Start.
func (s *Server) SolutionPort() uint16 { return lnPort(s.solLn) }

func lnPort(ln net.Listener) uint16 {
	if ln == nil {
		return 0
	}
	if a, ok := ln.Addr().(*net.TCPAddr); ok {
		return uint16(a.Port)
	}
	return 0
}

// Subscribers gives the current subscriber count.
func (s *Server) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// Stop is idempotent: it closes both listeners, wakes both queues,
// drops every subscriber and intake connection, and lets the loops
// drain.  Nothing queued survives.
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		s.stopping.Store(true)
		if s.reqLn != nil {
			s.reqLn.Close()
		}
		if s.solLn != nil {
			s.solLn.Close()
		}
		s.problems.close()
		s.events.close()
		s.mu.Lock()
		for _, sub := range s.subs {
			sub.conn.Close()
			metrics.Subscribers.Dec()
		}
		s.subs = nil
		for conn := range s.intake {
			conn.Close()
		}
		s.intake = map[net.Conn]struct{}{}
		s.mu.Unlock()
		s.log.Debug("stopped")
	})
}

// Wait blocks until every loop has returned.
func (s *Server) Wait() error {
	if s.grp == nil {
		return nil
	}
	return s.grp.Wait()
}

func (s *Server) acceptRequests() error {
	for {
		conn, e := s.reqLn.Accept()
		if e != nil {
			if s.stopping.Load() {
				return nil
			}
			s.log.WithError(e).Warn("request accept")
			if errors.Is(e, net.ErrClosed) {
				return nil
			}
			continue
		}
		s.mu.Lock()
		s.intake[conn] = struct{}{}
		s.mu.Unlock()
		go s.serveProblems(conn)
	}
}

// serveProblems decodes concatenated DLXB covers off one connection,
// queueing each as its own problem.  A malformed cover drops the
// connection; the server keeps running.
func (s *Server) serveProblems(conn net.Conn) {
	defer func() {
		conn.Close()
		s.mu.Lock()
		delete(s.intake, conn)
		s.mu.Unlock()
	}()
	pr := dlxio.NewProblemReader(bufio.NewReader(conn))
	for {
		h, e := pr.ReadHeader()
		if e == io.EOF {
			return
		}
		if e != nil {
			if !s.stopping.Load() {
				s.log.WithError(e).Warn("problem header")
			}
			return
		}
		p := &dlxio.Problem{Header: h}
		var chunk dlxio.RowChunk
		for uint32(len(p.Rows)) < h.RowCount {
			ok, e := pr.ReadChunk(&chunk)
			if e != nil || !ok {
				if !s.stopping.Load() {
					s.log.WithError(e).Warn("problem chunk")
				}
				return
			}
			cols := make([]uint32, len(chunk.Columns))
			copy(cols, chunk.Columns)
			p.Rows = append(p.Rows, dlxio.RowChunk{RowID: chunk.RowID, Columns: cols})
		}
		metrics.ProblemsReceived.Inc()
		if !s.problems.push(p) {
			return
		}
	}
}

// work pops problems in FIFO order and solves them one at a time,
// turning the search's emissions into broadcast events.
func (s *Server) work() error {
	for {
		p, ok := s.problems.pop()
		if !ok {
			return nil
		}
		m, e := dlx.New(p)
		if e != nil {
			s.log.WithError(e).Warn("matrix build")
			metrics.ProblemsAborted.Inc()
			continue
		}
		if !s.events.push(event{kind: evBegin, cols: p.Header.ColumnCount}) {
			return nil
		}
		snk := sink.Func(func(v sink.View) error {
			ids := make([]uint32, len(v.RowIDs))
			copy(ids, v.RowIDs)
			if !s.events.push(event{kind: evRow, ids: ids}) {
				return errors.New("dlxnet: shutting down")
			}
			return nil
		})
		if _, e := m.Solve(snk); e != nil {
			// Aborted mid-search: no End; subscribers treat the
			// next header as the problem boundary.
			metrics.ProblemsAborted.Inc()
			continue
		}
		metrics.ProblemsSolved.Inc()
		if !s.events.push(event{kind: evEnd}) {
			return nil
		}
	}
}

// broadcast consumes events in order and fans each out to the current
// subscriber set.
func (s *Server) broadcast() error {
	for {
		ev, ok := s.events.pop()
		if !ok {
			return nil
		}
		s.mu.Lock()
		switch ev.kind {
		case evBegin:
			cols := ev.cols
			s.active = &cols
			for _, sub := range s.subs {
				if sub.w.Start(dlxio.NewSolutionHeader(cols)) != nil {
					sub.failed = true
					continue
				}
				sub.started = true
			}
		case evRow:
			for _, sub := range s.subs {
				if !sub.started || sub.failed {
					continue
				}
				if sub.w.WriteRow(ev.ids) != nil {
					sub.failed = true
				}
			}
			metrics.SolutionsEmitted.Inc()
		case evEnd:
			s.active = nil
			for _, sub := range s.subs {
				if !sub.started || sub.failed {
					continue
				}
				if sub.w.Finish() != nil {
					sub.failed = true
				}
				sub.started = false
			}
		}
		s.purgeLocked()
		s.mu.Unlock()
	}
}

func (s *Server) acceptSubscribers() error {
	for {
		conn, e := s.solLn.Accept()
		if e != nil {
			if s.stopping.Load() {
				return nil
			}
			s.log.WithError(e).Warn("subscriber accept")
			if errors.Is(e, net.ErrClosed) {
				return nil
			}
			continue
		}
		sub := &subscriber{conn: conn, w: dlxio.NewSolutionWriter(conn)}
		// Joining mid-problem: the fresh header is written under
		// the broadcast lock, so it cannot interleave with rows.
		s.mu.Lock()
		if s.active != nil {
			if sub.w.Start(dlxio.NewSolutionHeader(*s.active)) != nil {
				conn.Close()
				s.mu.Unlock()
				continue
			}
			sub.started = true
		}
		s.subs = append(s.subs, sub)
		metrics.Subscribers.Inc()
		s.mu.Unlock()
		s.log.Debug("subscriber joined")
	}
}

// purgeLocked removes subscribers whose writes failed.  Callers hold
// s.mu.
func (s *Server) purgeLocked() {
	kept := s.subs[:0]
	for _, sub := range s.subs {
		if sub.failed {
			sub.conn.Close()
			metrics.Subscribers.Dec()
			s.log.Debug("subscriber dropped")
			continue
		}
		kept = append(kept, sub)
	}
	s.subs = kept
}

// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package dlxnet

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-air/dlx/dlxio"
	"github.com/go-air/dlx/gen"
	"github.com/go-air/dlx/sudoku"
)

func startServer(t *testing.T) *Server {
	t.Helper()
	s := New(Config{})
	require.NoError(t, s.Start())
	t.Cleanup(func() {
		s.Stop()
		s.Wait()
	})
	require.NotZero(t, s.RequestPort())
	require.NotZero(t, s.SolutionPort())
	return s
}

func subscribe(t *testing.T, s *Server, want int) *Subscriber {
	t.Helper()
	sub, e := DialSubscriber(Loopback(s.SolutionPort()))
	require.NoError(t, e)
	t.Cleanup(func() { sub.Close() })
	waitFor(t, func() bool { return s.Subscribers() >= want })
	return sub
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not reached in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

// next runs sub.Next with a deadline.
func next(t *testing.T, sub *Subscriber) *dlxio.Solution {
	t.Helper()
	type res struct {
		sol *dlxio.Solution
		e   error
	}
	ch := make(chan res, 1)
	go func() {
		sol, e := sub.Next()
		ch <- res{sol, e}
	}()
	select {
	case r := <-ch:
		require.NoError(t, r.e)
		return r.sol
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a solution group")
		return nil
	}
}

func TestSingleSubscriber(t *testing.T) {
	s := startServer(t)
	sub := subscribe(t, s, 1)

	require.NoError(t, Submit(Loopback(s.RequestPort()), gen.Identity(3)))

	sol := next(t, sub)
	assert.Equal(t, uint32(3), sol.Header.ColumnCount)
	require.Len(t, sol.Rows, 1)
	assert.Equal(t, uint32(1), sol.Rows[0].SolutionID)
	assert.Equal(t, []uint32{1, 2, 3}, sol.Rows[0].RowIndices)
}

func TestSudokuOverTCP(t *testing.T) {
	g, e := sudoku.ParseGrid(
		"530070000" +
			"600195000" +
			"098000060" +
			"800060003" +
			"400803001" +
			"700020006" +
			"060000280" +
			"000419005" +
			"000080079")
	require.NoError(t, e)
	p, e := sudoku.Encode(g)
	require.NoError(t, e)

	s := startServer(t)
	sub := subscribe(t, s, 1)

	require.NoError(t, Submit(Loopback(s.RequestPort()), p))

	sol := next(t, sub)
	assert.Equal(t, uint32(324), sol.Header.ColumnCount)
	require.Len(t, sol.Rows, 1)
	assert.Len(t, sol.Rows[0].RowIndices, 81)

	grids, e := sudoku.Decode(g, sol)
	require.NoError(t, e)
	require.Len(t, grids, 1)
	assert.Equal(t,
		"534678912\n672195348\n198342567\n859761423\n426853791\n"+
			"713924856\n961537284\n287419635\n345286179\n",
		grids[0].String())
}

func TestSubscriberSocketReuseAcrossProblems(t *testing.T) {
	s := startServer(t)
	sub := subscribe(t, s, 1)

	addr := Loopback(s.RequestPort())
	require.NoError(t, Submit(addr, gen.Identity(3)))
	require.NoError(t, Submit(addr, gen.Identity(3)))

	first := next(t, sub)
	second := next(t, sub)
	require.Len(t, first.Rows, 1)
	require.Len(t, second.Rows, 1)
	assert.Equal(t, first.Rows[0].RowIndices, second.Rows[0].RowIndices)
	assert.Equal(t, first.Header, second.Header)
}

func TestConcatenatedProblemsOneConnection(t *testing.T) {
	s := startServer(t)
	sub := subscribe(t, s, 1)

	// Both covers travel on a single request connection, in order.
	require.NoError(t, Submit(Loopback(s.RequestPort()), gen.Identity(2), gen.Identity(4)))

	first := next(t, sub)
	second := next(t, sub)
	assert.Equal(t, uint32(2), first.Header.ColumnCount)
	assert.Equal(t, []uint32{1, 2}, first.Rows[0].RowIndices)
	assert.Equal(t, uint32(4), second.Header.ColumnCount)
	assert.Equal(t, []uint32{1, 2, 3, 4}, second.Rows[0].RowIndices)
}

func TestBroadcastToMultipleSubscribers(t *testing.T) {
	s := startServer(t)
	a := subscribe(t, s, 1)
	b := subscribe(t, s, 2)

	require.NoError(t, Submit(Loopback(s.RequestPort()), gen.Groups(2, 2)))

	solA := next(t, a)
	solB := next(t, b)
	require.Len(t, solA.Rows, 4)
	require.Len(t, solB.Rows, 4)
	for i := range solA.Rows {
		assert.Equal(t, solA.Rows[i].RowIndices, solB.Rows[i].RowIndices)
		assert.Equal(t, uint32(i+1), solA.Rows[i].SolutionID)
	}
}

func TestMalformedProblemKeepsServerRunning(t *testing.T) {
	s := startServer(t)
	sub := subscribe(t, s, 1)

	conn, e := net.Dial("tcp", Loopback(s.RequestPort()))
	require.NoError(t, e)
	_, e = conn.Write([]byte("this is not a DLXB header..."))
	require.NoError(t, e)
	conn.Close()

	// The bad connection is dropped; a good one still solves.
	require.NoError(t, Submit(Loopback(s.RequestPort()), gen.Identity(2)))
	sol := next(t, sub)
	require.Len(t, sol.Rows, 1)
	assert.Equal(t, []uint32{1, 2}, sol.Rows[0].RowIndices)
}

func TestNoSolutionStreamsEmptyGroup(t *testing.T) {
	s := startServer(t)
	sub := subscribe(t, s, 1)

	p := dlxio.NewProblem(3)
	p.AddRow(0, 0)
	p.AddRow(0, 1)
	require.NoError(t, Submit(Loopback(s.RequestPort()), p))

	sol := next(t, sub)
	assert.Equal(t, uint32(3), sol.Header.ColumnCount)
	assert.Empty(t, sol.Rows)
}

func TestDroppedSubscriberDoesNotAffectOthers(t *testing.T) {
	s := startServer(t)
	a := subscribe(t, s, 1)
	b := subscribe(t, s, 2)

	require.NoError(t, a.Close())

	addr := Loopback(s.RequestPort())
	require.NoError(t, Submit(addr, gen.Identity(3)))
	sol := next(t, b)
	require.Len(t, sol.Rows, 1)

	// The closed subscriber is purged once a write to it fails.
	require.NoError(t, Submit(addr, gen.Identity(3)))
	_ = next(t, b)
	waitFor(t, func() bool { return s.Subscribers() == 1 })
}

func TestStopIdempotent(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.Start())
	s.Stop()
	s.Stop()
	require.NoError(t, s.Wait())
}

func TestStopClosesSubscribers(t *testing.T) {
	s := New(Config{})
	require.NoError(t, s.Start())
	sub, e := DialSubscriber(Loopback(s.SolutionPort()))
	require.NoError(t, e)
	waitFor(t, func() bool { return s.Subscribers() == 1 })

	s.Stop()
	require.NoError(t, s.Wait())

	_, e = sub.Next()
	assert.Error(t, e)
	sub.Close()
}

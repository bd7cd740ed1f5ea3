// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package dlxnet serves the dlx pipeline over loopback TCP.
//
// A server binds two listeners on 127.0.0.1.  The request port accepts
// DLXB cover streams; any number of independent covers may be
// concatenated on one connection, and each is queued as a separate
// problem.  The solution port accepts subscribers; every subscriber
// receives, for each problem solved, one DLXS header, the solution
// rows as the search finds them, and the terminating sentinel row.
// The same subscriber socket carries an unbounded sequence of such
// groups until the peer or the server closes it.
//
// There is no handshake: connection semantics are purely by frame.
// Problems are solved one at a time in arrival order, and every
// subscriber sees a problem's events in emission order.  A subscriber
// that joins mid-problem receives a fresh header and participates from
// the next row on.  A failed subscriber write drops only that
// subscriber; a malformed cover drops only its connection.
package dlxnet

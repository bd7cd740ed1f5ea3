// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package metrics holds the server's Prometheus collectors.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// ProblemsReceived counts covers decoded from request connections.
	ProblemsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlx_problems_received_total",
		Help: "Cover problems decoded from request connections.",
	})
	// ProblemsSolved counts problems searched to completion.
	ProblemsSolved = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlx_problems_solved_total",
		Help: "Problems searched to completion.",
	})
	// ProblemsAborted counts problems dropped before completion.
	ProblemsAborted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlx_problems_aborted_total",
		Help: "Problems aborted before a terminating sentinel.",
	})
	// SolutionsEmitted counts solution rows broadcast to subscribers.
	SolutionsEmitted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "dlx_solutions_emitted_total",
		Help: "Solution rows broadcast to subscribers.",
	})
	// Subscribers tracks currently connected solution subscribers.
	Subscribers = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "dlx_subscribers",
		Help: "Currently connected solution subscribers.",
	})
)

// Register registers every collector on r.
func Register(r prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		ProblemsReceived,
		ProblemsSolved,
		ProblemsAborted,
		SolutionsEmitted,
		Subscribers,
	} {
		if e := r.Register(c); e != nil {
			return e
		}
	}
	return nil
}

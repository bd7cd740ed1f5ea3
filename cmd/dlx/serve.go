// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/go-air/dlx/dlxnet"
	"github.com/go-air/dlx/metrics"
)

func newServeCmd() *cobra.Command {
	var metricsAddr string
	cmd := &cobra.Command{
		Use:   "serve <request-port> <solution-port>",
		Short: "serve covers over loopback TCP",
		Long: `serve starts the loopback solving service: covers submitted to the
request port are solved in order, and solution streams fan out to every
subscriber on the solution port.  It blocks until interrupted.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reqPort, e := parsePort(args[0])
			if e != nil {
				return e
			}
			solPort, e := parsePort(args[1])
			if e != nil {
				return e
			}
			return runServe(dlxnet.Config{RequestPort: reqPort, SolutionPort: solPort}, metricsAddr)
		},
	}
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics (eg :9090)")
	return cmd
}

func parsePort(s string) (uint16, error) {
	v, e := strconv.ParseUint(s, 10, 16)
	if e != nil || v == 0 {
		return 0, errors.Errorf("port %q not in [1, 65535]", s)
	}
	return uint16(v), nil
}

func runServe(cfg dlxnet.Config, metricsAddr string) error {
	srv := dlxnet.New(cfg)
	if e := srv.Start(); e != nil {
		return e
	}
	log.WithFields(log.Fields{
		"request":  srv.RequestPort(),
		"solution": srv.SolutionPort(),
	}).Debug("server started")

	if metricsAddr != "" {
		reg := prometheus.NewRegistry()
		if e := metrics.Register(reg); e != nil {
			srv.Stop()
			return e
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			if e := http.ListenAndServe(metricsAddr, mux); e != nil {
				log.WithError(e).Warn("metrics listener")
			}
		}()
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	srv.Stop()
	return srv.Wait()
}

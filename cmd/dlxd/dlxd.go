// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/go-air/dlx/dlxnet"
)

var debug = flag.Bool("debug", false, "turn on debug logging")

var usage = `%s serves exact cover problems over loopback TCP.

usage: %s [options] <request-port> <solution-port>

options:
`

func main() {
	flag.Usage = func() {
		p := os.Args[0]
		_, p = filepath.Split(p)
		fmt.Fprintf(os.Stderr, usage, p, p)
		flag.PrintDefaults()
		fmt.Fprintln(os.Stderr)
	}
	flag.Parse()
	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(1)
	}
	log.SetOutput(os.Stderr)
	log.SetLevel(log.WarnLevel)
	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	reqPort, e := port(flag.Arg(0))
	if e != nil {
		log.Error(e.Error())
		os.Exit(1)
	}
	solPort, e := port(flag.Arg(1))
	if e != nil {
		log.Error(e.Error())
		os.Exit(1)
	}

	s := dlxnet.New(dlxnet.Config{RequestPort: reqPort, SolutionPort: solPort})
	if e := s.Start(); e != nil {
		log.Errorf("error starting dlx server: %s", e)
		os.Exit(1)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	s.Stop()
	if e := s.Wait(); e != nil {
		log.Errorf("error: %s", e)
		os.Exit(1)
	}
}

func port(s string) (uint16, error) {
	v, e := strconv.ParseUint(s, 10, 16)
	if e != nil || v == 0 {
		return 0, fmt.Errorf("port %q not in [1, 65535]", s)
	}
	return uint16(v), nil
}

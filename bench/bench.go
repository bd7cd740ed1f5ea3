// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

// Package bench runs timed solver suites over generated covers.
//
// A suite is configured in YAML; the DLX_PERF_CONFIG environment
// variable names a config file, and a built-in suite applies when it
// is unset.
package bench

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/go-air/dlx"
	"github.com/go-air/dlx/gen"
	"github.com/go-air/dlx/sink"
)

// ConfigEnv names the environment variable pointing at a suite file.
const ConfigEnv = "DLX_PERF_CONFIG"

// Suite is one timed workload: a groups-by-variants cover solved
// rounds times.
type Suite struct {
	Label    string `yaml:"label"`
	Groups   int    `yaml:"groups"`
	Variants int    `yaml:"variants"`
	Rounds   int    `yaml:"rounds"`
}

// Config is a set of suites.
type Config struct {
	Suites []Suite `yaml:"suites"`
}

// Default gives the built-in suite set.
func Default() *Config {
	return &Config{Suites: []Suite{
		{Label: "groups-8x4", Groups: 8, Variants: 4, Rounds: 3},
		{Label: "groups-10x3", Groups: 10, Variants: 3, Rounds: 3},
		{Label: "identity-2k", Groups: 2000, Variants: 1, Rounds: 5},
	}}
}

// Load reads a YAML config from path.
func Load(path string) (*Config, error) {
	buf, e := os.ReadFile(path)
	if e != nil {
		return nil, errors.Wrap(e, "bench: read config")
	}
	cfg := &Config{}
	if e := yaml.Unmarshal(buf, cfg); e != nil {
		return nil, errors.Wrap(e, "bench: parse config")
	}
	if len(cfg.Suites) == 0 {
		return nil, errors.New("bench: config has no suites")
	}
	return cfg, nil
}

// FromEnv loads the config named by DLX_PERF_CONFIG, or the built-in
// default when unset.
func FromEnv() (*Config, error) {
	p := os.Getenv(ConfigEnv)
	if p == "" {
		return Default(), nil
	}
	return Load(p)
}

// Result is one suite's timing.
type Result struct {
	Suite     Suite
	Solutions int
	Elapsed   time.Duration
}

// Run executes every suite and writes a line-per-suite report to w.
func (cfg *Config) Run(w io.Writer) ([]Result, error) {
	results := make([]Result, 0, len(cfg.Suites))
	for _, s := range cfg.Suites {
		if s.Rounds <= 0 || s.Groups <= 0 || s.Variants <= 0 {
			return results, errors.Errorf("bench: bad suite %q", s.Label)
		}
		p := gen.Groups(s.Groups, s.Variants)
		m, e := dlx.New(p)
		if e != nil {
			return results, e
		}
		cnt := &sink.Counting{}
		start := time.Now()
		for round := 0; round < s.Rounds; round++ {
			if _, e := m.Solve(cnt); e != nil {
				return results, e
			}
		}
		r := Result{Suite: s, Solutions: cnt.Count, Elapsed: time.Since(start)}
		results = append(results, r)
		_, e = fmt.Fprintf(w, "%s: %d solutions over %d rounds in %s\n",
			s.Label, r.Solutions, s.Rounds, r.Elapsed)
		if e != nil {
			return results, e
		}
	}
	return results, nil
}

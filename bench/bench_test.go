// Copyright 2022 The Dlx Authors. All rights reserved.  Use of this source
// code is governed by a license that can be found in the License file.

package bench

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuiteRun(t *testing.T) {
	cfg := &Config{Suites: []Suite{
		{Label: "tiny", Groups: 3, Variants: 2, Rounds: 2},
	}}
	var out bytes.Buffer
	results, e := cfg.Run(&out)
	require.NoError(t, e)
	require.Len(t, results, 1)
	assert.Equal(t, 16, results[0].Solutions) // 2^3 per round, 2 rounds
	assert.Contains(t, out.String(), "tiny:")
}

func TestLoadYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "perf.yaml")
	doc := `suites:
  - label: a
    groups: 2
    variants: 2
    rounds: 1
  - label: b
    groups: 3
    variants: 1
    rounds: 2
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, e := Load(path)
	require.NoError(t, e)
	require.Len(t, cfg.Suites, 2)
	assert.Equal(t, Suite{Label: "a", Groups: 2, Variants: 2, Rounds: 1}, cfg.Suites[0])

	t.Setenv(ConfigEnv, path)
	cfg2, e := FromEnv()
	require.NoError(t, e)
	assert.Equal(t, cfg, cfg2)
}

func TestLoadRejectsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.yaml")
	require.NoError(t, os.WriteFile(path, []byte("suites: []\n"), 0o644))
	_, e := Load(path)
	assert.Error(t, e)
}

func TestFromEnvDefault(t *testing.T) {
	t.Setenv(ConfigEnv, "")
	cfg, e := FromEnv()
	require.NoError(t, e)
	assert.NotEmpty(t, cfg.Suites)
}

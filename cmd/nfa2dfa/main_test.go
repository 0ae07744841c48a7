package main

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	automaton "github.com/geange/powerset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const workedOutput = `States: [{q0}, {q0, q1}, {q2}]
Start State: {q0}
Accept States: [{q2}]
Transitions:
  δ({q0}, 'a') → {q0, q1}
  δ({q0, q1}, 'a') → {q0, q1}
  δ({q0, q1}, 'b') → {q2}
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), args, &stdout, &stderr)
	return stdout.String(), stderr.String(), err
}

func TestRunDefaults(t *testing.T) {
	out, _, err := runCLI(t)
	require.NoError(t, err)
	assert.Equal(t, workedOutput, out)
}

func TestRunFlags(t *testing.T) {
	out, _, err := runCLI(t,
		"-states", "s,t",
		"-symbols", "x",
		"-start", "s",
		"-accept", "t",
		"-transitions", "s,x->s t")
	require.NoError(t, err)

	assert.Contains(t, out, "States: [{s}, {s, t}]")
	assert.Contains(t, out, "Accept States: [{s, t}]")
	assert.Contains(t, out, "δ({s, t}, 'x') → {s, t}")
}

func TestRunLenientWarns(t *testing.T) {
	out, logs, err := runCLI(t, "-transitions", "q0,a->q0 q1;garbage;q1,b->q2")
	require.NoError(t, err)

	assert.Equal(t, workedOutput, out)
	assert.Contains(t, logs, "skipped transition")
	assert.Contains(t, logs, "garbage")
}

func TestRunStrict(t *testing.T) {
	_, _, err := runCLI(t, "-strict", "-transitions", "q0,a->q0 q1;garbage")
	assert.ErrorIs(t, err, automaton.ErrMalformedTransition)

	_, _, err = runCLI(t, "-strict", "-transitions", "q0,a->q7")
	assert.ErrorIs(t, err, automaton.ErrUndeclaredState)
}

func TestRunFormats(t *testing.T) {
	out, _, err := runCLI(t, "-format", "dot")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "digraph DFA {"))

	out, _, err = runCLI(t, "-format", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "start: [q0]")
}

func TestRunMaxStates(t *testing.T) {
	_, _, err := runCLI(t, "-max-states", "2")
	assert.ErrorIs(t, err, automaton.ErrTooComplexToDeterminize)
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()

	first := filepath.Join(dir, "first.yaml")
	require.NoError(t, os.WriteFile(first, []byte(`
states: [q0, q1, q2]
symbols: [a, b]
start: q0
accept: [q2]
rules: |
  q0,a->q0 q1
  q1,b->q2
`), 0o600))

	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(second, []byte(`
states: [p]
symbols: [x]
start: p
accept: [p]
`), 0o600))

	out, _, err := runCLI(t, "-workers", "2", first, second)
	require.NoError(t, err)

	assert.Contains(t, out, "# "+first+"\n"+workedOutput)
	assert.Contains(t, out, "# "+second+"\nStates: [{p}]\n")

	out, _, err = runCLI(t, first)
	require.NoError(t, err)
	assert.Equal(t, workedOutput, out)

	_, _, err = runCLI(t, filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRunUsageErrors(t *testing.T) {
	tests := [][]string{
		{"-order", "random"},
		{"-format", "svg"},
		{"-log-level", "loud"},
	}
	for _, args := range tests {
		t.Run(strings.Join(args, " "), func(t *testing.T) {
			_, _, err := runCLI(t, args...)
			assert.Error(t, err)
		})
	}

	_, _, err := runCLI(t, "-h")
	assert.ErrorIs(t, err, flag.ErrHelp)
}

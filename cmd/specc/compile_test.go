package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const togglingSource = `
const
  NumProcs: 2;

type
  proc: 0..NumProcs-1;
  state: enum { Idle, Busy };

var
  phase: array [proc] of state;

startstate "init"
begin
  for p: proc do
    phase[p] := Idle;
  endfor;
end;

ruleset p: proc do
  rule "start work"
    phase[p] = Idle ==>
  begin
    phase[p] := Busy;
  end;
endruleset;

invariant "never all busy"
  exists p: proc do phase[p] = Idle endexists;
`

// TestRunCompileWritesGeneratedCheckerSource drives the whole compile
// pipeline (parse, resolve, validate, layout, codegen) the same way
// cobra's RunE does, and checks the output file lands on disk with the
// shape a generated checker is expected to have.
func TestRunCompileWritesGeneratedCheckerSource(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "toggle.m")
	require.NoError(t, os.WriteFile(input, []byte(togglingSource), 0o644))

	output := filepath.Join(dir, "toggle_checker.go")
	outputFile = output
	defer func() { outputFile = "" }()

	err := runCompile([]string{input})
	require.NoError(t, err)

	generated, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(generated), "package main")
	require.Contains(t, string(generated), "func buildModel() driver.Model")
}

func TestRunCompileRejectsMissingFile(t *testing.T) {
	outputFile = filepath.Join(t.TempDir(), "out.go")
	defer func() { outputFile = "" }()

	err := runCompile([]string{filepath.Join(t.TempDir(), "does-not-exist.m")})
	require.Error(t, err)
}

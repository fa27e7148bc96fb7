package codegen

import (
	"go/format"
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/internal/options"
	"github.com/specc-lang/specc/pkg/ast"
	"github.com/specc-lang/specc/pkg/resolve"
	"github.com/specc-lang/specc/pkg/validate"
)

func numLit(v int64) *ast.NumberExpr { return &ast.NumberExpr{Value: big.NewInt(v)} }

func rangeType(lo, hi int64) *ast.RangeType {
	return &ast.RangeType{Min: big.NewInt(lo), Max: big.NewInt(hi)}
}

// counterModel builds a minimal resolved model: one state counter with
// a start rule, a guarded increment rule, and an invariant that it
// never exceeds its declared bound, mirroring the smallest useful
// specification this compiler accepts.
func counterModel(t *testing.T) *ast.Model {
	t.Helper()
	counter := ast.NewVarDecl("counter", rangeType(0, 3), ast.ScopeState)

	start := &ast.StartStateRule{
		Name: "Init",
		Body: []ast.Stmt{
			&ast.AssignmentStmt{LHS: &ast.ExprID{Name: "counter"}, RHS: numLit(0)},
		},
	}

	increment := &ast.SimpleRule{
		Name: "Increment",
		Guard: &ast.BinaryExpr{
			Op:    ast.Lt,
			Left:  &ast.ExprID{Name: "counter"},
			Right: numLit(3),
		},
		Body: []ast.Stmt{
			&ast.AssignmentStmt{
				LHS: &ast.ExprID{Name: "counter"},
				RHS: &ast.BinaryExpr{
					Op:    ast.Add,
					Left:  &ast.ExprID{Name: "counter"},
					Right: numLit(1),
				},
			},
		},
	}

	bounded := &ast.PropertyRule{
		Name: "CounterBounded",
		Property: &ast.PropertyStmt{
			Kind: ast.Invariant,
			Cond: &ast.BinaryExpr{
				Op:    ast.Leq,
				Left:  &ast.ExprID{Name: "counter"},
				Right: numLit(3),
			},
		},
	}

	m := &ast.Model{
		Name:  "Counter",
		Decls: []ast.Decl{counter},
		Rules: []ast.Rule{start, increment, bounded},
	}

	require.NoError(t, resolve.Resolve(m))
	_, err := validate.Validate(m)
	require.NoError(t, err)
	return m
}

func TestGenerateProducesFormattedSource(t *testing.T) {
	m := counterModel(t)

	src, err := Generate(m, options.Default())
	require.NoError(t, err)

	formatted, err := format.Source([]byte(src))
	require.NoError(t, err, "generated source must already be gofmt'd")
	require.Equal(t, string(formatted), src)

	require.Contains(t, src, "package main")
	require.Contains(t, src, "func buildModel() driver.Model")
	require.Contains(t, src, "func main()")
	require.NotContains(t, src, "sirupsen/logrus", "generated runtime must not import the compiler's logging library")
	require.NotContains(t, src, "x/sys/unix", "--sandbox was not requested, so no capability-drop code should be emitted")
}

func TestGenerateSandboxEmitsCapabilityDrop(t *testing.T) {
	m := counterModel(t)
	opts := options.Default()
	opts.Sandbox = true

	src, err := Generate(m, opts)
	require.NoError(t, err)

	formatted, err := format.Source([]byte(src))
	require.NoError(t, err, "generated source must already be gofmt'd")
	require.Equal(t, string(formatted), src)

	require.Contains(t, src, `"golang.org/x/sys/unix"`)
	require.Contains(t, src, "func dropPrivileges()")
	require.Contains(t, src, "unix.Setrlimit(unix.RLIMIT_NOFILE")
	require.Contains(t, src, "unix.PR_SET_NO_NEW_PRIVS")
	require.Contains(t, src, "func main() {\n\tdropPrivileges()\n")
}

func TestGenerateEmitsOneFunctionPerFlattenedRule(t *testing.T) {
	m := counterModel(t)

	src, err := Generate(m, options.Default())
	require.NoError(t, err)

	require.Contains(t, src, "start_0")
	require.Contains(t, src, "rule_1")
	require.Contains(t, src, "prop_2")
	require.Equal(t, 1, strings.Count(src, "driver.StartFunc{"))
}

// equalityModel builds a model comparing two whole records with `=`,
// exercising the composite (non-scalar) equality codegen path.
func equalityModel(t *testing.T) *ast.Model {
	t.Helper()
	recType := &ast.RecordType{Fields: []ast.RecordField{
		{Name: "a", Type: rangeType(0, 1)},
		{Name: "b", Type: rangeType(0, 1)},
	}}
	x := ast.NewVarDecl("x", recType, ast.ScopeState)
	y := ast.NewVarDecl("y", recType, ast.ScopeState)

	start := &ast.StartStateRule{
		Name: "Init",
		Body: []ast.Stmt{
			&ast.ClearStmt{LHS: &ast.ExprID{Name: "x"}},
			&ast.ClearStmt{LHS: &ast.ExprID{Name: "y"}},
		},
	}

	same := &ast.PropertyRule{
		Name: "SameShape",
		Property: &ast.PropertyStmt{
			Kind: ast.Invariant,
			Cond: &ast.BinaryExpr{
				Op:    ast.Eq,
				Left:  &ast.ExprID{Name: "x"},
				Right: &ast.ExprID{Name: "y"},
			},
		},
	}

	m := &ast.Model{
		Name:  "Pair",
		Decls: []ast.Decl{x, y},
		Rules: []ast.Rule{start, same},
	}
	require.NoError(t, resolve.Resolve(m))
	vr, err := validate.Validate(m)
	require.NoError(t, err)
	require.NotEmpty(t, vr.NonSimpleComparisons, "a record-to-record == must be flagged as non-simple")
	return m
}

func TestGenerateRecordEqualityWalksLeaves(t *testing.T) {
	m := equalityModel(t)

	src, err := Generate(m, options.Default())
	require.NoError(t, err)

	formatted, err := format.Source([]byte(src))
	require.NoError(t, err)
	require.Equal(t, string(formatted), src)

	require.Contains(t, src, "state.Narrow", "leaf comparison must narrow each field's handle")
}

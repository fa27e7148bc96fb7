package smt

import (
	"context"
	"math/big"
	"os/exec"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

// findSolver locates an SMT-LIB2 solver for the integration test to
// exercise the real subprocess harness against; the unit tests above
// cover encoding/budget logic without needing one installed.
func findSolver(t *testing.T) string {
	t.Helper()
	for _, name := range []string{"z3", "cvc5", "cvc4"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}
	t.Skip("no SMT-LIB2 solver found on PATH; skipping end-to-end simplification test")
	return ""
}

func TestSimplifySubstitutesTautologyAndContradiction(t *testing.T) {
	solver := findSolver(t)

	rt := &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(9)}
	v := ast.NewVarDecl("x", rt, ast.ScopeState)

	tauto := &ast.BinaryExpr{ // x >= 0, always true over this range
		Op:    ast.Geq,
		Left:  &ast.ExprID{Name: "x", Decl: v},
		Right: &ast.NumberExpr{Value: big.NewInt(0)},
	}
	contra := &ast.BinaryExpr{ // x > 9, always false over this range
		Op:    ast.Gt,
		Left:  &ast.ExprID{Name: "x", Decl: v},
		Right: &ast.NumberExpr{Value: big.NewInt(9)},
	}

	m := &ast.Model{
		Decls: []ast.Decl{v},
		Rules: []ast.Rule{
			&ast.PropertyRule{Name: "p1", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: tauto}},
			&ast.PropertyRule{Name: "p2", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: contra}},
		},
	}
	ast.Reindex(m)

	stats, err := Simplify(context.Background(), m, Options{
		SolverPath:  solver,
		QueryBudget: 100,
		Timeout:     5 * time.Second,
		Concurrency: 2,
	})
	require.NoError(t, err)
	require.GreaterOrEqual(t, stats.Substitutions, 2)

	p1 := m.Rules[0].(*ast.PropertyRule)
	n1, ok := p1.Property.Cond.(*ast.NumberExpr)
	require.True(t, ok)
	require.Equal(t, int64(1), n1.Value.Int64())

	p2 := m.Rules[1].(*ast.PropertyRule)
	n2, ok := p2.Property.Cond.(*ast.NumberExpr)
	require.True(t, ok)
	require.Equal(t, int64(0), n2.Value.Int64())
}

func TestSimplifyLeavesUnsupportedExpressionsAlone(t *testing.T) {
	solver := findSolver(t)

	call := &ast.FunctionCallExpr{Name: "f"}
	fn := &ast.FunctionDecl{Name: "f", ReturnType: ast.BooleanType}
	m := &ast.Model{
		Functions: []*ast.FunctionDecl{fn},
		Rules: []ast.Rule{
			&ast.PropertyRule{Name: "p", Property: &ast.PropertyStmt{Kind: ast.Invariant, Cond: call}},
		},
	}
	ast.Reindex(m)

	_, err := Simplify(context.Background(), m, Options{SolverPath: solver, QueryBudget: 10})
	require.NoError(t, err)

	p := m.Rules[0].(*ast.PropertyRule)
	require.Same(t, call, p.Property.Cond)
}

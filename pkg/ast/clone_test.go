package ast

import (
	"math/big"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

// bigIntComparer lets cmp.Diff compare the *big.Int bounds embedded in
// RangeType/ScalarsetType by value (Cmp) rather than panicking on
// big.Int's unexported nat/neg fields.
var bigIntComparer = cmp.Comparer(func(a, b *big.Int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Cmp(b) == 0
})

// TestCloneIsStructurallyEqualToOriginal is a structural/golden
// comparison: Clone must reproduce the entire tree shape and every
// scalar field of the original, not merely the handful of spot-checks
// TestCloneIsDeepAndRebindsReferences makes.
func TestCloneIsStructurallyEqualToOriginal(t *testing.T) {
	rt := &RangeType{Min: big.NewInt(0), Max: big.NewInt(3)}
	v := NewVarDecl("x", rt, ScopeState)
	m := &Model{
		Name:  "M",
		Decls: []Decl{v},
		Rules: []Rule{
			&SimpleRule{
				Name:  "bump",
				Guard: &ExprID{Name: "x", Decl: v},
				Body: []Stmt{
					&AssignmentStmt{LHS: &ExprID{Name: "x", Decl: v}, RHS: n(1)},
				},
			},
		},
	}

	clone := Clone(m)
	if diff := cmp.Diff(m, clone, bigIntComparer); diff != "" {
		t.Fatalf("clone diverges structurally from original (-want +got):\n%s", diff)
	}
}

func TestCloneIsDeepAndRebindsReferences(t *testing.T) {
	rt := &RangeType{Min: big.NewInt(0), Max: big.NewInt(3)}
	v := NewVarDecl("x", rt, ScopeState)
	m := &Model{
		Name:  "M",
		Decls: []Decl{v},
		Rules: []Rule{
			&SimpleRule{
				Name:  "bump",
				Guard: &ExprID{Name: "x", Decl: v},
				Body: []Stmt{
					&AssignmentStmt{LHS: &ExprID{Name: "x", Decl: v}, RHS: n(1)},
				},
			},
		},
	}

	clone := Clone(m)
	require.NotSame(t, m, clone)
	require.Len(t, clone.Decls, 1)

	clonedVar := clone.Decls[0].(*VarDecl)
	require.NotSame(t, v, clonedVar)
	require.NotSame(t, rt, clonedVar.Type)

	rule := clone.Rules[0].(*SimpleRule)
	guardID := rule.Guard.(*ExprID)
	require.Same(t, clonedVar, guardID.Decl, "clone must rebind ExprID.Decl to the cloned VarDecl, not the original")

	assign := rule.Body[0].(*AssignmentStmt)
	lhsID := assign.LHS.(*ExprID)
	require.Same(t, clonedVar, lhsID.Decl)

	// Mutating the clone's type must not affect the original.
	clonedVar.Type.(*RangeType).Max.SetInt64(99)
	require.Equal(t, int64(3), rt.Max.Int64())
}

func TestReindexAssignsUniqueIDs(t *testing.T) {
	v := NewVarDecl("x", &RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}, ScopeState)
	m := &Model{
		Decls: []Decl{v},
		Rules: []Rule{
			&StartStateRule{Body: []Stmt{&AssignmentStmt{LHS: &ExprID{Name: "x", Decl: v}, RHS: n(0)}}},
		},
	}
	count := Reindex(m)
	require.Greater(t, count, 0)

	seen := map[ID]bool{}
	seen[v.NodeID()] = true
	for _, r := range m.Rules {
		require.False(t, seen[r.NodeID()])
		seen[r.NodeID()] = true
	}
	require.NotEqual(t, ID(0), v.NodeID())
}

package ast

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFlattenCollapsesNestedRulesetsAndAliases(t *testing.T) {
	innerRule := &SimpleRule{Name: "inner"}
	aliased := &AliasRule{
		Decls: []Decl{&AliasDecl{Name: "a", Value: n(1)}},
		Inner: []Rule{innerRule},
	}
	outer := &Ruleset{
		Name:       "rs",
		Quantifier: Quantifier{Name: "i", Type: &ScalarsetType{Bound: big.NewInt(3)}},
		Inner:      []Rule{aliased},
	}
	m := &Model{Rules: []Rule{outer}}

	flat := Flatten(m)
	require.Len(t, flat, 1)
	require.Same(t, innerRule, flat[0].Leaf)
	require.Len(t, flat[0].Quantifiers, 1)
	require.Len(t, flat[0].Aliases, 1)

	n, err := flat[0].BindingCount()
	require.NoError(t, err)
	require.Equal(t, 3, n)
}

func TestFlattenIncludesStartStatesAndPropertyRules(t *testing.T) {
	m := &Model{Rules: []Rule{
		&StartStateRule{Name: "init"},
		&PropertyRule{Name: "p", Property: &PropertyStmt{Kind: Invariant, Cond: n(1)}},
	}}
	flat := Flatten(m)
	require.Len(t, flat, 2)
}

package layout

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/pkg/ast"
)

func TestLayoutAssignsSequentialOffsets(t *testing.T) {
	// Range(0,3) needs bits-for(5) = 3 bits (zero reserved for undefined).
	a := ast.NewVarDecl("a", &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(3)}, ast.ScopeState)
	// Enum with 2 members needs bits-for(3) = 2 bits.
	b := ast.NewVarDecl("b", &ast.EnumType{Members: []string{"x", "y"}}, ast.ScopeState)
	local := ast.NewVarDecl("tmp", &ast.RangeType{Min: big.NewInt(0), Max: big.NewInt(1)}, ast.ScopeLocal)

	m := &ast.Model{Decls: []ast.Decl{a, b, local}}

	result, err := Layout(m)
	require.NoError(t, err)

	require.Equal(t, 0, a.Offset)
	require.Equal(t, 3, b.Offset)
	require.Equal(t, 5, result.StateSizeBits)
	require.Equal(t, -1, local.Offset, "local variables are not laid out into the state")
}

func TestLayoutErrorsOnUnresolvedType(t *testing.T) {
	v := ast.NewVarDecl("v", &ast.TypeExprID{Name: "Missing"}, ast.ScopeState)
	m := &ast.Model{Decls: []ast.Decl{v}}

	_, err := Layout(m)
	require.Error(t, err)
}

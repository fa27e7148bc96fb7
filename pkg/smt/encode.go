package smt

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/specc-lang/specc/pkg/ast"
)

// encoder turns a resolved, validated expression tree into an
// SMT-LIB2 term. encode returns ok=false for anything this package
// leaves untouched per §4.8: function calls, IsUndefined, array
// element access, a reference to a Decl not currently declared in any
// open prelude frame, and quantifiers whose bounds aren't closed
// compile-time constants.
type encoder struct {
	syms *symtab
}

func (enc *encoder) encode(e ast.Expr) (string, bool) {
	switch ee := e.(type) {
	case *ast.NumberExpr:
		return ee.Value.String(), true
	case *ast.ExprID:
		switch ee.Decl.(type) {
		case *ast.VarDecl, *ast.ConstDecl, *ast.AliasDecl:
			return enc.syms.lookup(ee.Decl)
		default:
			return "", false
		}
	case *ast.UnaryExpr:
		operand, ok := enc.encode(ee.Operand)
		if !ok {
			return "", false
		}
		switch ee.Op {
		case ast.Negative:
			return fmt.Sprintf("(- %s)", operand), true
		case ast.Not:
			return fmt.Sprintf("(not %s)", operand), true
		}
		return "", false
	case *ast.BinaryExpr:
		left, ok := enc.encode(ee.Left)
		if !ok {
			return "", false
		}
		right, ok := enc.encode(ee.Right)
		if !ok {
			return "", false
		}
		op, ok := binOpSymbol(ee.Op)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("(%s %s %s)", op, left, right), true
	case *ast.TernaryExpr:
		cond, ok := enc.encode(ee.Cond)
		if !ok {
			return "", false
		}
		then, ok := enc.encode(ee.Then)
		if !ok {
			return "", false
		}
		els, ok := enc.encode(ee.Else)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("(ite %s %s %s)", cond, then, els), true
	case *ast.FieldExpr:
		rec, ok := enc.encode(ee.Record)
		if !ok {
			return "", false
		}
		return fmt.Sprintf("(%s %s)", ee.Name, rec), true
	case *ast.QuantifiedExpr:
		return enc.encodeQuantified(ee)
	default:
		// ElementExpr, FunctionCallExpr, IsUndefinedExpr: unsupported.
		return "", false
	}
}

func binOpSymbol(op ast.BinOp) (string, bool) {
	switch op {
	case ast.Add:
		return "+", true
	case ast.Sub:
		return "-", true
	case ast.Mul:
		return "*", true
	case ast.Div:
		return "div", true
	case ast.Mod:
		return "mod", true
	case ast.Lt:
		return "<", true
	case ast.Leq:
		return "<=", true
	case ast.Gt:
		return ">", true
	case ast.Geq:
		return ">=", true
	case ast.Eq:
		return "=", true
	case ast.Neq:
		return "distinct", true
	case ast.And:
		return "and", true
	case ast.Or:
		return "or", true
	case ast.Implication:
		return "=>", true
	default:
		return "", false
	}
}

// encodeQuantified translates a Forall/Exists with a closed bound
// (an index Type, or explicit From/To literal bounds) into a native
// SMT-LIB quantifier with a range guard. Open bounds (a From/To that
// doesn't fold to a literal) are left untouched, per §4.8.
func (enc *encoder) encodeQuantified(qe *ast.QuantifiedExpr) (string, bool) {
	lo, hi, ok := quantifierBounds(qe.Quantifier)
	if !ok {
		return "", false
	}
	sym := fmt.Sprintf("q%d", qe.NodeID())
	body, ok := enc.encode(qe.Body)
	if !ok {
		return "", false
	}
	guard := fmt.Sprintf("(and (>= %s %s) (<= %s %s))", sym, lo.String(), sym, hi.String())

	quant := "forall"
	connective := "=>"
	if qe.Kind == ast.Exists {
		quant = "exists"
		connective = "and"
	}
	return fmt.Sprintf("(%s ((%s Int)) (%s %s %s))", quant, sym, connective, guard, body), true
}

// quantifierBounds returns the closed integer bounds of q, if any:
// either its index Type's Count-derived range, or literal From/To
// values. Step and non-literal From/To are rejected.
func quantifierBounds(q ast.Quantifier) (lo, hi *big.Int, ok bool) {
	if q.Step != nil {
		return nil, nil, false
	}
	if q.Type != nil {
		switch tt := q.Type.(type) {
		case *ast.RangeType:
			return tt.Min, tt.Max, true
		case *ast.ScalarsetType:
			return big.NewInt(0), new(big.Int).Sub(tt.Bound, big.NewInt(1)), true
		case *ast.EnumType:
			return big.NewInt(0), big.NewInt(int64(len(tt.Members) - 1)), true
		default:
			return nil, nil, false
		}
	}
	loE, err := ast.Fold(q.From)
	if err != nil {
		return nil, nil, false
	}
	hiE, err := ast.Fold(q.To)
	if err != nil {
		return nil, nil, false
	}
	loN, ok1 := loE.(*ast.NumberExpr)
	hiN, ok2 := hiE.(*ast.NumberExpr)
	if !ok1 || !ok2 {
		return nil, nil, false
	}
	return loN.Value, hiN.Value, true
}

// isBoolean reports whether e has boolean static type, the only kind
// of expression this pass attempts to simplify.
func isBoolean(e ast.Expr) bool {
	t, err := ast.StaticType(e)
	return err == nil && t == ast.BooleanType
}

func joinLines(lines []string) string { return strings.Join(lines, "\n") }

// boolLit returns the encoded value of the source boolean literal b,
// i.e. BooleanType's member index: 0 for false, 1 for true.
func boolLit(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

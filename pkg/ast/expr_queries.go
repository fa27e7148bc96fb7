package ast

import (
	"fmt"
	"math/big"
)

// BooleanType is the built-in two-valued enum every comparison,
// logical operator and quantified expression produces. It is not a
// TypeDecl a specification can reference by name; StaticType returns
// this shared instance whenever an expression's type is boolean.
var BooleanType = &EnumType{Members: []string{"false", "true"}}

// IsConstant reports whether e can be fully evaluated without a
// state, i.e. whether Fold can reduce it to a NumberExpr. This is a
// conservative, syntactic answer (Field/Element/FunctionCall/
// IsUndefined are always reported non-constant even when an argument
// happens to be) — sufficient for the validator's eager folding of
// Range/Scalarset/Array bounds, which never involve those forms.
func IsConstant(e Expr) bool {
	switch ee := e.(type) {
	case *NumberExpr:
		return true
	case *ExprID:
		switch d := ee.Decl.(type) {
		case *ConstDecl:
			return IsConstant(d.Value)
		case *AliasDecl:
			return IsConstant(d.Value)
		default:
			return false
		}
	case *BinaryExpr:
		return IsConstant(ee.Left) && IsConstant(ee.Right)
	case *UnaryExpr:
		return IsConstant(ee.Operand)
	case *TernaryExpr:
		return IsConstant(ee.Cond) && IsConstant(ee.Then) && IsConstant(ee.Else)
	default:
		// QuantifiedExpr, FieldExpr, ElementExpr, FunctionCallExpr,
		// IsUndefinedExpr: not evaluable without a state/environment.
		return false
	}
}

// StaticType returns the type an expression would have once
// evaluated, without requiring a state. A nil TypeExpr with a nil
// error means "untyped integer literal" (a bare NumberExpr or
// arithmetic over one) — compatible with any simple numeric type,
// resolved against context by the validator.
func StaticType(e Expr) (TypeExpr, error) {
	switch ee := e.(type) {
	case *NumberExpr:
		return nil, nil
	case *ExprID:
		switch d := ee.Decl.(type) {
		case *VarDecl:
			return d.Type, nil
		case *ConstDecl:
			return StaticType(d.Value)
		case *AliasDecl:
			return StaticType(d.Value)
		default:
			return nil, fmt.Errorf("ast: %q does not name a value", ee.Name)
		}
	case *FieldExpr:
		rt, err := StaticType(ee.Record)
		if err != nil {
			return nil, err
		}
		rec, ok := underlyingRecord(rt)
		if !ok {
			return nil, fmt.Errorf("ast: field access on non-record type")
		}
		for _, f := range rec.Fields {
			if f.Name == ee.Name {
				return f.Type, nil
			}
		}
		return nil, fmt.Errorf("ast: record has no field %q", ee.Name)
	case *ElementExpr:
		at, err := StaticType(ee.Array)
		if err != nil {
			return nil, err
		}
		arr, ok := underlyingArray(at)
		if !ok {
			return nil, fmt.Errorf("ast: index access on non-array type")
		}
		return arr.Element, nil
	case *BinaryExpr:
		switch ee.Op {
		case Lt, Leq, Gt, Geq, Eq, Neq, And, Or, Implication:
			return BooleanType, nil
		default:
			return nil, nil // arithmetic result is untyped integer
		}
	case *UnaryExpr:
		if ee.Op == Not {
			return BooleanType, nil
		}
		return nil, nil
	case *TernaryExpr:
		return StaticType(ee.Then)
	case *QuantifiedExpr:
		return BooleanType, nil
	case *FunctionCallExpr:
		if ee.Callee == nil {
			return nil, fmt.Errorf("ast: unresolved call to %q", ee.Name)
		}
		return ee.Callee.ReturnType, nil
	case *IsUndefinedExpr:
		return BooleanType, nil
	default:
		return nil, fmt.Errorf("ast: unknown expression %T", e)
	}
}

func underlyingRecord(t TypeExpr) (*RecordType, bool) {
	for {
		switch tt := t.(type) {
		case *RecordType:
			return tt, true
		case *TypeExprID:
			if tt.Decl == nil {
				return nil, false
			}
			t = tt.Decl.Type
		default:
			return nil, false
		}
	}
}

func underlyingArray(t TypeExpr) (*ArrayType, bool) {
	for {
		switch tt := t.(type) {
		case *ArrayType:
			return tt, true
		case *TypeExprID:
			if tt.Decl == nil {
				return nil, false
			}
			t = tt.Decl.Type
		default:
			return nil, false
		}
	}
}

// Fold constant-folds e, returning a new *NumberExpr when e is fully
// constant. Non-constant subexpressions are returned unchanged
// (wrapped back into the same node) rather than erroring, so callers
// that only need the folded bounds (pkg/validate) can call Fold on
// every Range/Scalarset/Array bound uniformly.
func Fold(e Expr) (Expr, error) {
	switch ee := e.(type) {
	case *NumberExpr:
		return ee, nil
	case *ExprID:
		switch d := ee.Decl.(type) {
		case *ConstDecl:
			return Fold(d.Value)
		case *AliasDecl:
			return Fold(d.Value)
		default:
			return ee, nil
		}
	case *UnaryExpr:
		operand, err := Fold(ee.Operand)
		if err != nil {
			return nil, err
		}
		n, ok := operand.(*NumberExpr)
		if !ok {
			return ee, nil
		}
		switch ee.Op {
		case Negative:
			return num(new(big.Int).Neg(n.Value)), nil
		case Not:
			return num(boolToInt(n.Value.Sign() == 0)), nil
		}
		return ee, nil
	case *BinaryExpr:
		l, err := Fold(ee.Left)
		if err != nil {
			return nil, err
		}
		r, err := Fold(ee.Right)
		if err != nil {
			return nil, err
		}
		ln, lok := l.(*NumberExpr)
		rn, rok := r.(*NumberExpr)
		if !lok || !rok {
			return &BinaryExpr{Base: ee.Base, Op: ee.Op, Left: l, Right: r}, nil
		}
		return foldBinary(ee.Op, ln.Value, rn.Value)
	case *TernaryExpr:
		c, err := Fold(ee.Cond)
		if err != nil {
			return nil, err
		}
		if cn, ok := c.(*NumberExpr); ok {
			if cn.Value.Sign() != 0 {
				return Fold(ee.Then)
			}
			return Fold(ee.Else)
		}
		return ee, nil
	default:
		return e, nil
	}
}

func foldBinary(op BinOp, l, r *big.Int) (Expr, error) {
	switch op {
	case Add:
		return num(new(big.Int).Add(l, r)), nil
	case Sub:
		return num(new(big.Int).Sub(l, r)), nil
	case Mul:
		return num(new(big.Int).Mul(l, r)), nil
	case Div:
		if r.Sign() == 0 {
			return nil, fmt.Errorf("ast: constant division by zero")
		}
		return num(new(big.Int).Quo(l, r)), nil
	case Mod:
		if r.Sign() == 0 {
			return nil, fmt.Errorf("ast: constant modulo by zero")
		}
		return num(new(big.Int).Rem(l, r)), nil
	case Lt:
		return num(boolToInt(l.Cmp(r) < 0)), nil
	case Leq:
		return num(boolToInt(l.Cmp(r) <= 0)), nil
	case Gt:
		return num(boolToInt(l.Cmp(r) > 0)), nil
	case Geq:
		return num(boolToInt(l.Cmp(r) >= 0)), nil
	case Eq:
		return num(boolToInt(l.Cmp(r) == 0)), nil
	case Neq:
		return num(boolToInt(l.Cmp(r) != 0)), nil
	case And:
		return num(boolToInt(l.Sign() != 0 && r.Sign() != 0)), nil
	case Or:
		return num(boolToInt(l.Sign() != 0 || r.Sign() != 0)), nil
	case Implication:
		return num(boolToInt(l.Sign() == 0 || r.Sign() != 0)), nil
	default:
		return nil, fmt.Errorf("ast: unknown binary operator %v", op)
	}
}

func num(v *big.Int) *NumberExpr { return &NumberExpr{Value: v} }

func boolToInt(b bool) *big.Int {
	if b {
		return big.NewInt(1)
	}
	return big.NewInt(0)
}

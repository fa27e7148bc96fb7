package validate

import (
	"errors"

	"github.com/specc-lang/specc/pkg/ast"
)

// Result carries information validation gathers as a side effect,
// consumed by later passes rather than re-derived there.
type Result struct {
	// NonSimpleComparisons are Eq/Neq comparisons between two
	// non-simple (composite) operands, accepted by the front end but
	// flagged so codegen emits a leaf-by-leaf comparison of the two
	// operands instead of a single scalar comparison (§4.5).
	NonSimpleComparisons []*ast.BinaryExpr
}

// Validate type-checks m, returning a Result alongside a joined error
// of every rejection found (see stdlib errors.Join).
func Validate(m *ast.Model) (*Result, error) {
	v := &validator{result: &Result{}}

	v.checkBoundSanity(m)
	v.checkDuplicateNames(m)
	v.checkIndexTypes(m)

	for _, f := range m.Functions {
		v.checkFunction(f)
	}
	for _, r := range m.Rules {
		v.checkRule(r)
	}

	return v.result, errors.Join(v.errs...)
}

type validator struct {
	result *Result
	errs   []error
}

func (v *validator) fail(err error) { v.errs = append(v.errs, err) }

func (v *validator) checkBoundSanity(m *ast.Model) {
	var walk func(ast.TypeExpr)
	walk = func(t ast.TypeExpr) {
		switch tt := t.(type) {
		case nil:
		case *ast.RangeType:
			if tt.Min.Cmp(tt.Max) > 0 {
				v.fail(typeErrorf(tt.Loc(), "range lower bound %s exceeds upper bound %s", tt.Min, tt.Max))
			}
		case *ast.ScalarsetType:
			if tt.Bound.Sign() <= 0 {
				v.fail(typeErrorf(tt.Loc(), "scalarset bound %s must be positive", tt.Bound))
			}
		case *ast.ArrayType:
			walk(tt.Index)
			walk(tt.Element)
		case *ast.RecordType:
			for _, f := range tt.Fields {
				walk(f.Type)
			}
		}
	}
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.TypeDecl:
			walk(dd.Type)
		case *ast.VarDecl:
			walk(dd.Type)
		}
	}
}

func (v *validator) checkIndexTypes(m *ast.Model) {
	var walk func(ast.TypeExpr)
	walk = func(t ast.TypeExpr) {
		switch tt := t.(type) {
		case nil:
		case *ast.ArrayType:
			if !isIndexType(tt.Index) {
				v.fail(typeErrorf(tt.Loc(), "array index type must be Range, Enum or Scalarset"))
			}
			walk(tt.Index)
			walk(tt.Element)
		case *ast.RecordType:
			for _, f := range tt.Fields {
				walk(f.Type)
			}
		}
	}
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.TypeDecl:
			walk(dd.Type)
		case *ast.VarDecl:
			walk(dd.Type)
		}
	}
	for _, f := range m.Functions {
		for _, p := range f.Params {
			walk(p.Type)
		}
		walk(f.ReturnType)
	}
}

func (v *validator) checkDuplicateNames(m *ast.Model) {
	seen := map[string]bool{}
	for _, d := range m.Decls {
		name := d.DeclName()
		if seen[name] {
			v.fail(&DuplicateNameError{Namespace: "model", Name: name, Loc: d.Loc()})
		}
		seen[name] = true
	}
	for _, f := range m.Functions {
		params := map[string]bool{}
		for _, p := range f.Params {
			if params[p.Name] {
				v.fail(&DuplicateNameError{Namespace: "parameter", Name: p.Name, Loc: p.Loc()})
			}
			params[p.Name] = true
		}
	}

	var walkType func(ast.TypeExpr)
	walkType = func(t ast.TypeExpr) {
		switch tt := t.(type) {
		case nil:
		case *ast.EnumType:
			members := map[string]bool{}
			for _, name := range tt.Members {
				if members[name] {
					v.fail(&DuplicateNameError{Namespace: "enum member", Name: name, Loc: tt.Loc()})
				}
				members[name] = true
			}
		case *ast.RecordType:
			fields := map[string]bool{}
			for _, f := range tt.Fields {
				if fields[f.Name] {
					v.fail(&DuplicateNameError{Namespace: "record field", Name: f.Name, Loc: tt.Loc()})
				}
				fields[f.Name] = true
				walkType(f.Type)
			}
		case *ast.ArrayType:
			walkType(tt.Index)
			walkType(tt.Element)
		}
	}
	for _, d := range m.Decls {
		switch dd := d.(type) {
		case *ast.TypeDecl:
			walkType(dd.Type)
		case *ast.VarDecl:
			walkType(dd.Type)
		}
	}
}

func (v *validator) checkFunction(f *ast.FunctionDecl) {
	for _, s := range f.Body {
		v.checkStmt(s, f)
	}
}

func (v *validator) checkRule(r ast.Rule) {
	switch rr := r.(type) {
	case *ast.StartStateRule:
		for _, s := range rr.Body {
			v.checkStmt(s, nil)
		}
	case *ast.SimpleRule:
		if rr.Guard != nil {
			v.checkExpr(rr.Guard)
		}
		for _, s := range rr.Body {
			v.checkStmt(s, nil)
		}
	case *ast.PropertyRule:
		if rr.Property != nil {
			v.checkExpr(rr.Property.Cond)
		}
	case *ast.Ruleset:
		for _, ir := range rr.Inner {
			v.checkRule(ir)
		}
	case *ast.AliasRule:
		for _, ir := range rr.Inner {
			v.checkRule(ir)
		}
	}
}

func (v *validator) checkStmt(s ast.Stmt, fn *ast.FunctionDecl) {
	switch ss := s.(type) {
	case *ast.AssignmentStmt:
		v.checkExpr(ss.LHS)
		v.checkExpr(ss.RHS)
		lt, lerr := ast.StaticType(ss.LHS)
		rt, rerr := ast.StaticType(ss.RHS)
		if lerr == nil && rerr == nil && !sameBaseType(lt, rt) {
			v.fail(typeErrorf(ss.Loc(), "cannot assign incompatible type"))
		}
	case *ast.ClearStmt:
		v.checkExpr(ss.LHS)
	case *ast.UndefineStmt:
		v.checkExpr(ss.LHS)
	case *ast.IfStmt:
		for _, c := range ss.Clauses {
			if c.Cond != nil {
				v.checkExpr(c.Cond)
			}
			for _, b := range c.Body {
				v.checkStmt(b, fn)
			}
		}
	case *ast.SwitchStmt:
		v.checkExpr(ss.Tag)
		for _, c := range ss.Cases {
			for _, m := range c.Matches {
				v.checkExpr(m)
			}
			for _, b := range c.Body {
				v.checkStmt(b, fn)
			}
		}
	case *ast.ForStmt:
		for _, b := range ss.Body {
			v.checkStmt(b, fn)
		}
	case *ast.WhileStmt:
		v.checkExpr(ss.Cond)
		for _, b := range ss.Body {
			v.checkStmt(b, fn)
		}
	case *ast.ReturnStmt:
		if ss.Value != nil {
			v.checkExpr(ss.Value)
		}
		v.checkReturn(ss, fn)
	case *ast.ProcedureCallStmt:
		for _, a := range ss.Args {
			v.checkExpr(a)
		}
	case *ast.PropertyStmt:
		v.checkExpr(ss.Cond)
	case *ast.AliasStmt:
		for _, b := range ss.Body {
			v.checkStmt(b, fn)
		}
	case *ast.PutStmt:
		if ss.Value != nil {
			v.checkExpr(ss.Value)
		}
	}
}

func (v *validator) checkReturn(ret *ast.ReturnStmt, fn *ast.FunctionDecl) {
	if fn == nil {
		return // bare rule/start-state body; grammar disallows Return here
	}
	if fn.IsProcedure() {
		if ret.Value != nil {
			v.fail(typeErrorf(ret.Loc(), "procedure %q must not return a value", fn.Name))
		}
		return
	}
	if ret.Value == nil {
		v.fail(typeErrorf(ret.Loc(), "function %q must return a value", fn.Name))
		return
	}
	rt, err := ast.StaticType(ret.Value)
	if err == nil && !sameBaseType(fn.ReturnType, rt) {
		v.fail(typeErrorf(ret.Loc(), "return type mismatch in function %q", fn.Name))
	}
}

func (v *validator) checkExpr(e ast.Expr) {
	switch ee := e.(type) {
	case nil:
	case *ast.BinaryExpr:
		v.checkExpr(ee.Left)
		v.checkExpr(ee.Right)
		v.checkComparison(ee)
	case *ast.UnaryExpr:
		v.checkExpr(ee.Operand)
	case *ast.TernaryExpr:
		v.checkExpr(ee.Cond)
		v.checkExpr(ee.Then)
		v.checkExpr(ee.Else)
	case *ast.QuantifiedExpr:
		v.checkExpr(ee.Body)
	case *ast.FieldExpr:
		v.checkExpr(ee.Record)
	case *ast.ElementExpr:
		v.checkExpr(ee.Array)
		v.checkExpr(ee.Index)
	case *ast.FunctionCallExpr:
		for _, a := range ee.Args {
			v.checkExpr(a)
		}
	case *ast.IsUndefinedExpr:
		v.checkExpr(ee.Operand)
	}
}

func (v *validator) checkComparison(be *ast.BinaryExpr) {
	switch be.Op {
	case ast.Eq, ast.Neq, ast.Lt, ast.Leq, ast.Gt, ast.Geq:
	default:
		return
	}
	lt, lerr := ast.StaticType(be.Left)
	rt, rerr := ast.StaticType(be.Right)
	if lerr != nil || rerr != nil {
		return
	}
	if !sameBaseType(lt, rt) {
		v.fail(typeErrorf(be.Loc(), "comparison between incompatible types"))
		return
	}
	if be.Op == ast.Eq || be.Op == ast.Neq {
		if !ast.IsSimple(lt) && !ast.IsSimple(rt) && lt != nil && rt != nil {
			v.result.NonSimpleComparisons = append(v.result.NonSimpleComparisons, be)
		}
		return
	}
	if !isOrderable(lt) || !isOrderable(rt) {
		v.fail(typeErrorf(be.Loc(), "ordering comparison on a non-orderable type"))
	}
}

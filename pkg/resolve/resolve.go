package resolve

import (
	"errors"

	"github.com/specc-lang/specc/pkg/ast"
)

// Resolve binds every ExprID and TypeExprID reachable from m to the
// nearest enclosing declaration of that name, and every
// FunctionCallExpr to the matching FunctionDecl in m's flat function
// namespace. It returns a joined error (see stdlib errors.Join) of
// every UnresolvedError and DuplicateFunctionError found; callers that want fail-fast
// behavior should check errors.As against the first element.
func Resolve(m *ast.Model) error {
	r := &resolver{functions: NewFunctionScope()}

	for _, f := range m.Functions {
		if _, dup := r.functions.Lookup(f.Name); dup {
			r.errs = append(r.errs, &DuplicateFunctionError{Name: f.Name, Loc: f.Loc()})
			continue
		}
		r.functions.Define(f)
	}

	model := NewScope(nil)
	for _, d := range m.Decls {
		r.resolveDecl(d, model)
		model.Define(d.DeclName(), d)
	}

	for _, f := range m.Functions {
		r.resolveFunction(f, model)
	}

	for _, rl := range m.Rules {
		r.resolveRule(rl, model)
	}

	return errors.Join(r.errs...)
}

type resolver struct {
	functions *FunctionScope
	errs      []error
}

func (r *resolver) resolveDecl(d ast.Decl, scope *Scope) {
	switch dd := d.(type) {
	case *ast.ConstDecl:
		r.resolveExpr(dd.Value, scope)
	case *ast.TypeDecl:
		r.resolveType(dd.Type, scope)
	case *ast.VarDecl:
		r.resolveType(dd.Type, scope)
	case *ast.AliasDecl:
		r.resolveExpr(dd.Value, scope)
	}
}

func (r *resolver) resolveType(t ast.TypeExpr, scope *Scope) {
	switch tt := t.(type) {
	case nil:
	case *ast.ArrayType:
		r.resolveType(tt.Index, scope)
		r.resolveType(tt.Element, scope)
	case *ast.RecordType:
		for _, f := range tt.Fields {
			r.resolveType(f.Type, scope)
		}
	case *ast.TypeExprID:
		d, ok := scope.Lookup(tt.Name)
		if !ok {
			r.errs = append(r.errs, Unresolved(tt.Name, tt.Loc()))
			return
		}
		td, ok := d.(*ast.TypeDecl)
		if !ok {
			r.errs = append(r.errs, Unresolved(tt.Name, tt.Loc()))
			return
		}
		tt.Decl = td
	case *ast.RangeType, *ast.EnumType, *ast.ScalarsetType:
		// no names to resolve
	}
}

func (r *resolver) resolveFunction(f *ast.FunctionDecl, enclosing *Scope) {
	fnScope := NewScope(enclosing)
	for _, p := range f.Params {
		r.resolveType(p.Type, enclosing)
		fnScope.Define(p.Name, p)
	}
	r.resolveType(f.ReturnType, enclosing)
	for _, s := range f.Body {
		r.resolveStmt(s, fnScope)
	}
}

func (r *resolver) resolveRule(rl ast.Rule, scope *Scope) {
	switch rr := rl.(type) {
	case *ast.StartStateRule:
		body := NewScope(scope)
		for _, s := range rr.Body {
			r.resolveStmt(s, body)
		}
	case *ast.SimpleRule:
		body := NewScope(scope)
		r.resolveExpr(rr.Guard, body)
		for _, s := range rr.Body {
			r.resolveStmt(s, body)
		}
	case *ast.PropertyRule:
		body := NewScope(scope)
		r.resolvePropertyStmt(rr.Property, body)
	case *ast.Ruleset:
		inner := r.openQuantifier(&rr.Quantifier, scope)
		for _, ir := range rr.Inner {
			r.resolveRule(ir, inner)
		}
	case *ast.AliasRule:
		inner := r.openAliases(rr.Decls, scope)
		for _, ir := range rr.Inner {
			r.resolveRule(ir, inner)
		}
	}
}

// openQuantifier resolves q's Type/From/To/Step against enclosing and
// returns a new scope with q.Name bound, for use by the quantifier's
// body (a Ruleset, ForStmt or QuantifiedExpr).
func (r *resolver) openQuantifier(q *ast.Quantifier, enclosing *Scope) *Scope {
	r.resolveType(q.Type, enclosing)
	r.resolveExpr(q.From, enclosing)
	r.resolveExpr(q.To, enclosing)
	r.resolveExpr(q.Step, enclosing)

	inner := NewScope(enclosing)
	inner.Define(q.Name, ast.NewVarDecl(q.Name, q.Type, ast.ScopeLocal))
	return inner
}

// openAliases resolves each AliasDecl's Value against enclosing and
// returns a new scope with every alias name bound, for use by the
// body the AliasStmt/AliasRule wraps.
func (r *resolver) openAliases(decls []ast.Decl, enclosing *Scope) *Scope {
	inner := NewScope(enclosing)
	for _, d := range decls {
		ad, ok := d.(*ast.AliasDecl)
		if !ok {
			continue
		}
		r.resolveExpr(ad.Value, enclosing)
		inner.Define(ad.Name, ad)
	}
	return inner
}

func (r *resolver) resolvePropertyStmt(p *ast.PropertyStmt, scope *Scope) {
	if p == nil {
		return
	}
	r.resolveExpr(p.Cond, scope)
}

func (r *resolver) resolveStmt(s ast.Stmt, scope *Scope) {
	switch ss := s.(type) {
	case *ast.AssignmentStmt:
		r.resolveExpr(ss.LHS, scope)
		r.resolveExpr(ss.RHS, scope)
	case *ast.ClearStmt:
		r.resolveExpr(ss.LHS, scope)
	case *ast.UndefineStmt:
		r.resolveExpr(ss.LHS, scope)
	case *ast.IfStmt:
		for _, c := range ss.Clauses {
			if c.Cond != nil {
				r.resolveExpr(c.Cond, scope)
			}
			clause := NewScope(scope)
			for _, b := range c.Body {
				r.resolveStmt(b, clause)
			}
		}
	case *ast.SwitchStmt:
		r.resolveExpr(ss.Tag, scope)
		for _, c := range ss.Cases {
			for _, m := range c.Matches {
				r.resolveExpr(m, scope)
			}
			caseScope := NewScope(scope)
			for _, b := range c.Body {
				r.resolveStmt(b, caseScope)
			}
		}
	case *ast.ForStmt:
		inner := r.openQuantifier(&ss.Quantifier, scope)
		for _, b := range ss.Body {
			r.resolveStmt(b, inner)
		}
	case *ast.WhileStmt:
		r.resolveExpr(ss.Cond, scope)
		inner := NewScope(scope)
		for _, b := range ss.Body {
			r.resolveStmt(b, inner)
		}
	case *ast.ReturnStmt:
		r.resolveExpr(ss.Value, scope)
	case *ast.ProcedureCallStmt:
		for _, a := range ss.Args {
			r.resolveExpr(a, scope)
		}
		if f, ok := r.functions.Lookup(ss.Name); ok {
			ss.Callee = f
		} else {
			r.errs = append(r.errs, Unresolved(ss.Name, ss.Loc()))
		}
	case *ast.PropertyStmt:
		r.resolvePropertyStmt(ss, scope)
	case *ast.ErrorStmt:
		// no names
	case *ast.AliasStmt:
		inner := r.openAliases(ss.Decls, scope)
		for _, b := range ss.Body {
			r.resolveStmt(b, inner)
		}
	case *ast.PutStmt:
		r.resolveExpr(ss.Value, scope)
	}
}

func (r *resolver) resolveExpr(e ast.Expr, scope *Scope) {
	switch ee := e.(type) {
	case nil:
	case *ast.BinaryExpr:
		r.resolveExpr(ee.Left, scope)
		r.resolveExpr(ee.Right, scope)
	case *ast.UnaryExpr:
		r.resolveExpr(ee.Operand, scope)
	case *ast.TernaryExpr:
		r.resolveExpr(ee.Cond, scope)
		r.resolveExpr(ee.Then, scope)
		r.resolveExpr(ee.Else, scope)
	case *ast.QuantifiedExpr:
		inner := r.openQuantifier(&ee.Quantifier, scope)
		r.resolveExpr(ee.Body, inner)
	case *ast.ExprID:
		d, ok := scope.Lookup(ee.Name)
		if !ok {
			r.errs = append(r.errs, Unresolved(ee.Name, ee.Loc()))
			return
		}
		ee.Decl = d
	case *ast.FieldExpr:
		r.resolveExpr(ee.Record, scope)
	case *ast.ElementExpr:
		r.resolveExpr(ee.Array, scope)
		r.resolveExpr(ee.Index, scope)
	case *ast.FunctionCallExpr:
		for _, a := range ee.Args {
			r.resolveExpr(a, scope)
		}
		if f, ok := r.functions.Lookup(ee.Name); ok {
			ee.Callee = f
		} else {
			r.errs = append(r.errs, Unresolved(ee.Name, ee.Loc()))
		}
	case *ast.NumberExpr:
		// leaf
	case *ast.IsUndefinedExpr:
		r.resolveExpr(ee.Operand, scope)
	}
}

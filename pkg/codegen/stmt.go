package codegen

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/ast"
)

// stmts emits one statement at a time; stmt dispatches on the concrete
// ast.Stmt variant.
func (e *emitter) stmts(list []ast.Stmt) error {
	for _, s := range list {
		if err := e.stmt(s); err != nil {
			return err
		}
	}
	return nil
}

func (e *emitter) stmt(s ast.Stmt) error {
	switch ss := s.(type) {
	case *ast.AssignmentStmt:
		rhs, err := e.rvalue(ss.RHS)
		if err != nil {
			return err
		}
		return e.assign(ss.LHS, rhs)

	case *ast.ClearStmt:
		handleVar, typ, err := e.handleOf(ss.LHS)
		if err != nil {
			return err
		}
		return e.clearComposite(handleVar, typ, false)

	case *ast.UndefineStmt:
		handleVar, typ, err := e.handleOf(ss.LHS)
		if err != nil {
			return err
		}
		return e.clearComposite(handleVar, typ, true)

	case *ast.IfStmt:
		return e.emitIfChain(ss.Clauses)

	case *ast.SwitchStmt:
		tagSrc, err := e.rvalue(ss.Tag)
		if err != nil {
			return err
		}
		return e.emitSwitchCases(tagSrc, ss.Cases)

	case *ast.ForStmt:
		return e.forEachBinding(ss.Quantifier, func() error {
			return e.stmts(ss.Body)
		})

	case *ast.WhileStmt:
		e.line("for {")
		e.indent++
		condSrc, err := e.rvalue(ss.Cond)
		if err != nil {
			return err
		}
		e.line("if %s == 0 { break }", condSrc)
		if err := e.stmts(ss.Body); err != nil {
			return err
		}
		e.indent--
		e.line("}")
		return nil

	case *ast.ReturnStmt:
		if !e.inFunction {
			return fmt.Errorf("codegen: return statement outside a function body")
		}
		if ss.Value == nil {
			if e.funcReturnsValue {
				e.line("return 0, nil")
			} else {
				e.line("return nil")
			}
			return nil
		}
		v, err := e.rvalue(ss.Value)
		if err != nil {
			return err
		}
		e.line("return %s, nil", v)
		return nil

	case *ast.ProcedureCallStmt:
		if ss.Callee == nil {
			return fmt.Errorf("codegen: unresolved call to %q", ss.Name)
		}
		if !ss.Callee.IsProcedure() {
			return fmt.Errorf("codegen: function %q called as a procedure", ss.Name)
		}
		args := make([]string, len(ss.Args))
		for i, a := range ss.Args {
			src, err := e.rvalue(a)
			if err != nil {
				return err
			}
			args[i] = src
		}
		errV := e.newTemp("err")
		e.line("%s := %s(s%s)", errV, functionGoName(ss.Callee), joinArgs(args))
		e.line("if %s != nil {", errV)
		e.indent++
		e.fail(errV)
		e.indent--
		e.line("}")
		return nil

	case *ast.PropertyStmt:
		return e.emitInlineProperty(ss)

	case *ast.ErrorStmt:
		e.fail(fmt.Sprintf("fmt.Errorf(%q)", ss.Message))
		return nil

	case *ast.AliasStmt:
		// Decls are stable *ast.AliasDecl pointers already resolved by
		// every ExprID within Body (pkg/resolve); rvalue/handleOf
		// substitute them textually via resolveAlias, so the bindings
		// themselves need no codegen of their own.
		return e.stmts(ss.Body)

	case *ast.PutStmt:
		if ss.Value != nil {
			v, err := e.rvalue(ss.Value)
			if err != nil {
				return err
			}
			e.line("putLine(fmt.Sprintf(\"%%d\", %s))", v)
			return nil
		}
		e.line("putLine(%q)", ss.Text)
		return nil

	default:
		return fmt.Errorf("codegen: %T is not a valid statement", s)
	}
}

func (e *emitter) assign(lhs ast.Expr, rhsSrc string) error {
	if sub, ok := resolveAlias(lhs); ok {
		return e.assign(sub, rhsSrc)
	}
	if id, ok := lhs.(*ast.ExprID); ok {
		vd, ok := id.Decl.(*ast.VarDecl)
		if !ok {
			return fmt.Errorf("codegen: %q is not assignable", id.Name)
		}
		if vd.Scope == ast.ScopeLocal {
			ident, ok := e.sc.lookup(id.Name, vd)
			if !ok {
				return fmt.Errorf("codegen: %q assigned before binding", id.Name)
			}
			e.line("%s = %s", ident, rhsSrc)
			return nil
		}
	}
	handleVar, typ, err := e.handleOf(lhs)
	if err != nil {
		return err
	}
	lo, hi, err := scalarBounds(typ)
	if err != nil {
		return err
	}
	errV := e.newTemp("err")
	e.line("%s := %s.Write(%s, %d, %d)", errV, handleVar, rhsSrc, lo, hi)
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return nil
}

// clearComposite recursively narrows typ down to its scalar leaves,
// calling Clear (or Undefine, identical today but kept distinct for
// clarity at the call site) on each: state.Handle's primitive only
// ever zeros a flat span, so a composite value is cleared one leaf
// handle at a time.
func (e *emitter) clearComposite(handleVar string, typ ast.TypeExpr, undefine bool) error {
	if rec, ok := asRecord(typ); ok {
		bitOff := 0
		for _, f := range rec.Fields {
			w, err := ast.Width(f.Type)
			if err != nil {
				return err
			}
			sub := e.newTemp("h")
			e.line("%s := state.Narrow(%s, %d, %d)", sub, handleVar, bitOff, w)
			if err := e.clearComposite(sub, f.Type, undefine); err != nil {
				return err
			}
			bitOff += w
		}
		return nil
	}
	if arr, ok := asArray(typ); ok {
		count, err := ast.Count(arr.Index)
		if err != nil {
			return err
		}
		ew, err := ast.Width(arr.Element)
		if err != nil {
			return err
		}
		iVar := e.newTemp("i")
		e.line("for %s := 0; %s < %d; %s++ {", iVar, iVar, count, iVar)
		e.indent++
		sub := e.newTemp("h")
		e.line("%s := state.Narrow(%s, %s*%d, %d)", sub, handleVar, iVar, ew, ew)
		if err := e.clearComposite(sub, arr.Element, undefine); err != nil {
			return err
		}
		e.indent--
		e.line("}")
		return nil
	}
	if undefine {
		e.line("%s.Undefine()", handleVar)
	} else {
		e.line("%s.Clear()", handleVar)
	}
	return nil
}

func (e *emitter) emitIfChain(clauses []ast.IfClause) error {
	if len(clauses) == 0 {
		return nil
	}
	c := clauses[0]
	if c.Cond == nil {
		return e.stmts(c.Body)
	}
	condSrc, err := e.rvalue(c.Cond)
	if err != nil {
		return err
	}
	e.line("if %s != 0 {", condSrc)
	e.indent++
	if err := e.stmts(c.Body); err != nil {
		return err
	}
	e.indent--
	if len(clauses) > 1 {
		e.line("} else {")
		e.indent++
		if err := e.emitIfChain(clauses[1:]); err != nil {
			return err
		}
		e.indent--
		e.line("}")
	} else {
		e.line("}")
	}
	return nil
}

// emitSwitchCases is written as a chain of nested if/else rather than
// a Go switch: a case's Matches expressions (and the Tag itself) may
// need preceding statements of their own (a Handle read, a nested
// quantified expression), which a bare Go `case` expression list
// cannot accommodate.
func (e *emitter) emitSwitchCases(tagSrc string, cases []ast.SwitchCase) error {
	if len(cases) == 0 {
		return nil
	}
	c := cases[0]
	if len(c.Matches) == 0 {
		return e.stmts(c.Body)
	}
	cond := ""
	for _, m := range c.Matches {
		matchSrc, err := e.rvalue(m)
		if err != nil {
			return err
		}
		if cond != "" {
			cond += " || "
		}
		cond += fmt.Sprintf("%s == %s", tagSrc, matchSrc)
	}
	e.line("if %s {", cond)
	e.indent++
	if err := e.stmts(c.Body); err != nil {
		return err
	}
	e.indent--
	if len(cases) > 1 {
		e.line("} else {")
		e.indent++
		if err := e.emitSwitchCases(tagSrc, cases[1:]); err != nil {
			return err
		}
		e.indent--
		e.line("}")
	} else {
		e.line("}")
	}
	return nil
}

// emitInlineProperty handles an assert/assume statement reached mid
// rule-or-procedure body, as opposed to a standalone top-level
// PropertyRule (see rule.go): an inline assumption abandons just the
// current binding, an inline assertion is a counted failure. Cover and
// Liveness never arise here (the parser only produces inline
// PropertyStmt nodes for assert/assume); if one somehow did, it is
// treated the same as an assertion.
func (e *emitter) emitInlineProperty(p *ast.PropertyStmt) error {
	condSrc, err := e.rvalue(p.Cond)
	if err != nil {
		return err
	}
	e.line("if %s == 0 {", condSrc)
	e.indent++
	if p.Kind == ast.Assumption {
		if e.onAbandon != nil {
			e.onAbandon()
		} else {
			e.fail(fmt.Sprintf("fmt.Errorf(%q)", propertyMessage(p.Name, "assumption violated")))
		}
	} else {
		e.fail(fmt.Sprintf("fmt.Errorf(%q)", propertyMessage(p.Name, "assertion failed")))
	}
	e.indent--
	e.line("}")
	return nil
}

func propertyMessage(name, fallback string) string {
	if name != "" {
		return name
	}
	return fallback
}

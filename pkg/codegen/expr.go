package codegen

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/ast"
)

// handleOf emits the statements needed to compute a state.Handle
// addressing expr and returns the Go variable holding it, together
// with expr's static type (needed by callers to know the handle's
// scalar bounds or to keep walking a composite chain). expr must
// bottom out at a ScopeState VarDecl: locals and aliases are resolved
// away before this point by rvalue/addressOf.
func (e *emitter) handleOf(expr ast.Expr) (string, ast.TypeExpr, error) {
	switch ee := expr.(type) {
	case *ast.ExprID:
		switch d := ee.Decl.(type) {
		case *ast.VarDecl:
			if d.Scope != ast.ScopeState {
				return "", nil, fmt.Errorf("codegen: %q is a local value, not addressable as state", ee.Name)
			}
			w, err := ast.Width(d.Type)
			if err != nil {
				return "", nil, err
			}
			tmp := e.newTemp("h")
			e.line("%s := state.Handle{Base: s, Offset: %d, Width: %d}", tmp, d.Offset, w)
			return tmp, d.Type, nil
		case *ast.AliasDecl:
			return e.handleOf(d.Value)
		default:
			return "", nil, fmt.Errorf("codegen: %q is not addressable", ee.Name)
		}

	case *ast.FieldExpr:
		baseVar, baseType, err := e.handleOf(ee.Record)
		if err != nil {
			return "", nil, err
		}
		rec, ok := asRecord(baseType)
		if !ok {
			return "", nil, fmt.Errorf("codegen: field access on non-record type")
		}
		bitOff := 0
		var fieldType ast.TypeExpr
		found := false
		for _, f := range rec.Fields {
			if f.Name == ee.Name {
				fieldType = f.Type
				found = true
				break
			}
			w, err := ast.Width(f.Type)
			if err != nil {
				return "", nil, err
			}
			bitOff += w
		}
		if !found {
			return "", nil, fmt.Errorf("codegen: record has no field %q", ee.Name)
		}
		fw, err := ast.Width(fieldType)
		if err != nil {
			return "", nil, err
		}
		tmp := e.newTemp("h")
		e.line("%s := state.Narrow(%s, %d, %d)", tmp, baseVar, bitOff, fw)
		return tmp, fieldType, nil

	case *ast.ElementExpr:
		baseVar, baseType, err := e.handleOf(ee.Array)
		if err != nil {
			return "", nil, err
		}
		arr, ok := asArray(baseType)
		if !ok {
			return "", nil, fmt.Errorf("codegen: index access on non-array type")
		}
		idxSrc, err := e.rvalue(ee.Index)
		if err != nil {
			return "", nil, err
		}
		lo, hi, err := scalarBounds(arr.Index)
		if err != nil {
			return "", nil, err
		}
		ew, err := ast.Width(arr.Element)
		if err != nil {
			return "", nil, err
		}
		tmp := e.newTemp("h")
		errV := e.newTemp("err")
		e.line("%s, %s := state.Index(%s, %d, %d, %d, %s)", tmp, errV, baseVar, ew, lo, hi, idxSrc)
		e.line("if %s != nil {", errV)
		e.indent++
		e.fail(errV)
		e.indent--
		e.line("}")
		return tmp, arr.Element, nil

	default:
		return "", nil, fmt.Errorf("codegen: %T is not addressable", expr)
	}
}

// resolveAlias textually substitutes a name bound to a ConstDecl or
// AliasDecl, the same unfolding ast.Fold/ast.StaticType perform, since
// neither carries any storage of its own to address.
func resolveAlias(expr ast.Expr) (ast.Expr, bool) {
	id, ok := expr.(*ast.ExprID)
	if !ok {
		return nil, false
	}
	switch d := id.Decl.(type) {
	case *ast.ConstDecl:
		return d.Value, true
	case *ast.AliasDecl:
		return d.Value, true
	default:
		return nil, false
	}
}

// rvalue emits whatever statements are needed to compute expr's value
// and returns a Go expression (a literal, a bound local's identifier,
// or a combination of already-materialized sub-results) yielding it.
func (e *emitter) rvalue(expr ast.Expr) (string, error) {
	if sub, ok := resolveAlias(expr); ok {
		return e.rvalue(sub)
	}

	switch ee := expr.(type) {
	case *ast.NumberExpr:
		return ee.Value.String(), nil

	case *ast.ExprID:
		vd, ok := ee.Decl.(*ast.VarDecl)
		if !ok {
			return "", fmt.Errorf("codegen: %q does not name a value", ee.Name)
		}
		if vd.Scope == ast.ScopeLocal {
			ident, ok := e.sc.lookup(ee.Name, vd)
			if !ok {
				return "", fmt.Errorf("codegen: %q read before binding", ee.Name)
			}
			return ident, nil
		}
		return e.readHandle(expr)

	case *ast.FieldExpr, *ast.ElementExpr:
		return e.readHandle(expr)

	case *ast.BinaryExpr:
		return e.rvalueBinary(ee)

	case *ast.UnaryExpr:
		operand, err := e.rvalue(ee.Operand)
		if err != nil {
			return "", err
		}
		switch ee.Op {
		case ast.Negative:
			return e.checkedUnary("checkedNeg", operand)
		case ast.Not:
			return fmt.Sprintf("boolToInt(%s == 0)", operand), nil
		}
		return "", fmt.Errorf("codegen: unknown unary operator %v", ee.Op)

	case *ast.TernaryExpr:
		cond, err := e.rvalue(ee.Cond)
		if err != nil {
			return "", err
		}
		then, err := e.rvalue(ee.Then)
		if err != nil {
			return "", err
		}
		els, err := e.rvalue(ee.Else)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("ternary(%s != 0, %s, %s)", cond, then, els), nil

	case *ast.QuantifiedExpr:
		return e.rvalueQuantified(ee)

	case *ast.IsUndefinedExpr:
		handleVar, _, err := e.handleOf(ee.Operand)
		if err != nil {
			return "", err
		}
		tmp := e.newTemp("u")
		e.line("%s := boolToInt(isUndefinedHandle(%s))", tmp, handleVar)
		return tmp, nil

	case *ast.FunctionCallExpr:
		return e.rvalueCall(ee)

	default:
		return "", fmt.Errorf("codegen: %T is not a valid expression", expr)
	}
}

func (e *emitter) readHandle(expr ast.Expr) (string, error) {
	handleVar, typ, err := e.handleOf(expr)
	if err != nil {
		return "", err
	}
	lo, _, err := scalarBounds(typ)
	if err != nil {
		return "", err
	}
	val := e.newTemp("v")
	errV := e.newTemp("err")
	e.line("%s, %s := %s.Read(%d)", val, errV, handleVar, lo)
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return val, nil
}

func (e *emitter) rvalueBinary(ee *ast.BinaryExpr) (string, error) {
	if ee.Op == ast.Eq || ee.Op == ast.Neq {
		if composite, typ, err := compositeOperandType(ee.Left); err != nil {
			return "", err
		} else if composite {
			return e.rvalueCompositeEq(ee, typ)
		}
	}

	// Boolean operators are evaluated eagerly rather than
	// short-circuited: the source language's guard/body expressions
	// are side-effect free except for the Handle reads rvalue already
	// threads through as ordinary (non-branching) statements, so
	// eager evaluation changes nothing observable and keeps this
	// emitter's control flow simple.
	l, err := e.rvalue(ee.Left)
	if err != nil {
		return "", err
	}
	r, err := e.rvalue(ee.Right)
	if err != nil {
		return "", err
	}
	switch ee.Op {
	case ast.Add:
		return e.checkedBinary("checkedAdd", l, r)
	case ast.Sub:
		return e.checkedBinary("checkedSub", l, r)
	case ast.Mul:
		return e.checkedBinary("checkedMul", l, r)
	case ast.Div:
		return e.checkedDiv(l, r, false)
	case ast.Mod:
		return e.checkedDiv(l, r, true)
	case ast.Lt:
		return fmt.Sprintf("boolToInt(%s < %s)", l, r), nil
	case ast.Leq:
		return fmt.Sprintf("boolToInt(%s <= %s)", l, r), nil
	case ast.Gt:
		return fmt.Sprintf("boolToInt(%s > %s)", l, r), nil
	case ast.Geq:
		return fmt.Sprintf("boolToInt(%s >= %s)", l, r), nil
	case ast.Eq:
		return fmt.Sprintf("boolToInt(%s == %s)", l, r), nil
	case ast.Neq:
		return fmt.Sprintf("boolToInt(%s != %s)", l, r), nil
	case ast.And:
		return fmt.Sprintf("boolToInt(%s != 0 && %s != 0)", l, r), nil
	case ast.Or:
		return fmt.Sprintf("boolToInt(%s != 0 || %s != 0)", l, r), nil
	case ast.Implication:
		return fmt.Sprintf("boolToInt(%s == 0 || %s != 0)", l, r), nil
	default:
		return "", fmt.Errorf("codegen: unknown binary operator %v", ee.Op)
	}
}

// compositeOperandType reports whether expr's static type is a
// Record or Array, and if so returns it: a model's validation pass
// flags exactly these operands (pkg/validate's NonSimpleComparisons)
// since Go's == has no meaning for the int64 handles/values rvalue
// would otherwise produce for them.
func compositeOperandType(expr ast.Expr) (bool, ast.TypeExpr, error) {
	typ, err := ast.StaticType(expr)
	if err != nil {
		return false, nil, err
	}
	if typ == nil {
		return false, nil, nil
	}
	if rec, ok := asRecord(typ); ok {
		return true, rec, nil
	}
	if arr, ok := asArray(typ); ok {
		return true, arr, nil
	}
	return false, nil, nil
}

// rvalueCompositeEq renders a Record/Array equality comparison as a
// leaf-by-leaf scalar comparison, since state.Handle has no single
// instruction to compare two composite spans.
func (e *emitter) rvalueCompositeEq(ee *ast.BinaryExpr, typ ast.TypeExpr) (string, error) {
	lh, _, err := e.handleOf(ee.Left)
	if err != nil {
		return "", err
	}
	rh, _, err := e.handleOf(ee.Right)
	if err != nil {
		return "", err
	}
	result := e.newTemp("eq")
	e.line("%s := true", result)
	if err := e.compareComposite(result, lh, rh, typ); err != nil {
		return "", err
	}
	if ee.Op == ast.Neq {
		return fmt.Sprintf("boolToInt(!%s)", result), nil
	}
	return fmt.Sprintf("boolToInt(%s)", result), nil
}

// compareComposite recursively narrows lh/rh (both already known to
// have type typ) down to their scalar leaves, reading and comparing
// each pair in turn and clearing the bool identified by result on the
// first mismatch. It does not short-circuit on a mismatch since doing
// so would require threading a break out of arbitrarily nested Record
// field loops and Array index loops; every leaf pair is always read.
func (e *emitter) compareComposite(result, lh, rh string, typ ast.TypeExpr) error {
	if rec, ok := asRecord(typ); ok {
		bitOff := 0
		for _, f := range rec.Fields {
			w, err := ast.Width(f.Type)
			if err != nil {
				return err
			}
			lsub := e.newTemp("h")
			rsub := e.newTemp("h")
			e.line("%s := state.Narrow(%s, %d, %d)", lsub, lh, bitOff, w)
			e.line("%s := state.Narrow(%s, %d, %d)", rsub, rh, bitOff, w)
			if err := e.compareComposite(result, lsub, rsub, f.Type); err != nil {
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
		lsub := e.newTemp("h")
		rsub := e.newTemp("h")
		e.line("%s := state.Narrow(%s, %s*%d, %d)", lsub, lh, iVar, ew, ew)
		e.line("%s := state.Narrow(%s, %s*%d, %d)", rsub, rh, iVar, ew, ew)
		if err := e.compareComposite(result, lsub, rsub, arr.Element); err != nil {
			return err
		}
		e.indent--
		e.line("}")
		return nil
	}

	lo, _, err := scalarBounds(typ)
	if err != nil {
		return err
	}
	lv := e.newTemp("v")
	lerr := e.newTemp("err")
	e.line("%s, %s := %s.Read(%d)", lv, lerr, lh, lo)
	e.line("if %s != nil {", lerr)
	e.indent++
	e.fail(lerr)
	e.indent--
	e.line("}")
	rv := e.newTemp("v")
	rerr := e.newTemp("err")
	e.line("%s, %s := %s.Read(%d)", rv, rerr, rh, lo)
	e.line("if %s != nil {", rerr)
	e.indent++
	e.fail(rerr)
	e.indent--
	e.line("}")
	e.line("if %s != %s { %s = false }", lv, rv, result)
	return nil
}

// checkedBinary emits a call to one of the checkedAdd/checkedSub/
// checkedMul helpers (see emitRuntimeHelpers) and fails the rule body
// through the same Outcome path as every other fallible op, matching
// §4.13/§7's "integer overflow in {add, sub, mul, ...}" taxonomy
// member. Go's int64 arithmetic wraps silently on overflow (no trap),
// so codegen must check bounds itself rather than rely on a runtime
// panic the way division-by-zero cannot.
func (e *emitter) checkedBinary(fn, l, r string) (string, error) {
	tmp := e.newTemp("a")
	errV := e.newTemp("err")
	e.line("%s, %s := %s(%s, %s)", tmp, errV, fn, l, r)
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return tmp, nil
}

// checkedUnary is checkedBinary's one-operand counterpart, used for
// checkedNeg (negating math.MinInt64 overflows: its magnitude has no
// positive int64 representation).
func (e *emitter) checkedUnary(fn, operand string) (string, error) {
	tmp := e.newTemp("a")
	errV := e.newTemp("err")
	e.line("%s, %s := %s(%s)", tmp, errV, fn, operand)
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return tmp, nil
}

// checkedDiv guards integer division/modulo against a zero divisor,
// matching the error taxonomy runtime/state declares for the purpose
// (ErrDivisionByZero/ErrModuloByZero).
func (e *emitter) checkedDiv(l, r string, mod bool) (string, error) {
	tmp := e.newTemp("d")
	errV := e.newTemp("err")
	op := "/"
	errName := "state.ErrDivisionByZero"
	if mod {
		op = "%"
		errName = "state.ErrModuloByZero"
	}
	e.line("var %s int64", tmp)
	e.line("var %s error", errV)
	e.line("if %s == 0 {", r)
	e.indent++
	e.line("%s = %s", errV, errName)
	e.indent--
	e.line("} else {")
	e.indent++
	e.line("%s = %s %s %s", tmp, l, op, r)
	e.indent--
	e.line("}")
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return tmp, nil
}

func (e *emitter) rvalueCall(ee *ast.FunctionCallExpr) (string, error) {
	if ee.Callee == nil {
		return "", fmt.Errorf("codegen: unresolved call to %q", ee.Name)
	}
	if ee.Callee.IsProcedure() {
		return "", fmt.Errorf("codegen: procedure %q used in an expression", ee.Name)
	}
	args := make([]string, len(ee.Args))
	for i, a := range ee.Args {
		src, err := e.rvalue(a)
		if err != nil {
			return "", err
		}
		args[i] = src
	}
	val := e.newTemp("c")
	errV := e.newTemp("err")
	e.line("%s, %s := %s(s%s)", val, errV, functionGoName(ee.Callee), joinArgs(args))
	e.line("if %s != nil {", errV)
	e.indent++
	e.fail(errV)
	e.indent--
	e.line("}")
	return val, nil
}

func joinArgs(args []string) string {
	out := ""
	for _, a := range args {
		out += ", " + a
	}
	return out
}

// functionGoName gives the Go identifier generated for a FunctionDecl,
// stable within one codegen run since it is keyed by the node's
// process-unique ID (assigned by ast.Reindex).
func functionGoName(f *ast.FunctionDecl) string {
	return fmt.Sprintf("fn_%s_%d", sanitizeIdent(f.Name), f.NodeID())
}

// rvalueQuantified emits a loop evaluating Body across Quantifier's
// domain, short-circuiting as soon as the answer is determined, and
// returns the int64-valued (0/1) temp holding the result.
func (e *emitter) rvalueQuantified(ee *ast.QuantifiedExpr) (string, error) {
	result := e.newTemp("q")
	wantAll := ee.Kind == ast.Forall
	if wantAll {
		e.line("%s := int64(1)", result)
	} else {
		e.line("%s := int64(0)", result)
	}

	err := e.forEachBinding(ee.Quantifier, func() error {
		body, err := e.rvalue(ee.Body)
		if err != nil {
			return err
		}
		if wantAll {
			e.line("if %s == 0 { %s = 0; break }", body, result)
		} else {
			e.line("if %s != 0 { %s = 1; break }", body, result)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return result, nil
}

// forEachBinding emits a Go for loop iterating q's domain, binding
// q.Name to a fresh local for the duration of body, and restoring the
// enclosing scope afterwards. The emitted loop variable is declared
// int64 throughout since every quantifiable domain (Range, Enum,
// Scalarset, or an explicit From..To[step Step]) is scalar.
func (e *emitter) forEachBinding(q ast.Quantifier, body func() error) error {
	var loSrc, hiSrc, stepSrc string
	if q.Type != nil {
		lo, hi, err := scalarBounds(q.Type)
		if err != nil {
			return err
		}
		loSrc = fmt.Sprintf("%d", lo)
		hiSrc = fmt.Sprintf("%d", hi)
		stepSrc = "1"
	} else {
		var err error
		loSrc, err = e.rvalue(q.From)
		if err != nil {
			return err
		}
		hiSrc, err = e.rvalue(q.To)
		if err != nil {
			return err
		}
		if q.Step != nil {
			stepSrc, err = e.rvalue(q.Step)
			if err != nil {
				return err
			}
		} else {
			stepSrc = "1"
		}
	}

	ident := e.sc.pushQuantifier(q.Name)
	defer e.sc.popQuantifier()

	e.line("for %s := int64(%s); %s <= int64(%s); %s += int64(%s) {", ident, loSrc, ident, hiSrc, ident, stepSrc)
	e.indent++
	if err := body(); err != nil {
		return err
	}
	e.indent--
	e.line("}")
	return nil
}

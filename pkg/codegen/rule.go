package codegen

import (
	"fmt"
	"strings"

	"github.com/specc-lang/specc/pkg/ast"
)

// ruleGoName gives the Go identifier for one flattened rule, keyed by
// its position in ast.Flatten's output (stable for one codegen run,
// same as functionGoName's use of node IDs).
func ruleGoName(kind string, index int) string {
	return fmt.Sprintf("%s_%d", kind, index)
}

// emitStartFunc renders fr (whose Leaf is a *ast.StartStateRule) as a
// driver.StartFunc: one fresh, fully-undefined state per quantifier
// binding, built by running Body against it.
func emitStartFunc(m *ast.Model, index int, fr ast.FlatRule) (name, src string, err error) {
	leaf := fr.Leaf.(*ast.StartStateRule)
	e := newEmitter(m)
	name = ruleGoName("start", index)

	e.line("var results []driver.RuleResult")
	err = e.nestedBindings(fr.Quantifiers, func() error {
		e.line("func() {")
		e.indent++
		e.line("s := state.New(%s)", stateSizeIdent)
		e.onFail = func(errExpr string) {
			e.line("results = append(results, driver.RuleResult{Outcome: state.Fail(%s)})", errExpr)
			e.line("return")
		}
		e.onAbandon = func() {
			e.line("results = append(results, driver.RuleResult{Outcome: state.Abandon()})")
			e.line("return")
		}
		if err := e.stmts(leaf.Body); err != nil {
			return err
		}
		e.line("results = append(results, driver.RuleResult{State: s, Outcome: state.OK})")
		e.indent--
		e.line("}()")
		return nil
	})
	if err != nil {
		return "", "", fmt.Errorf("codegen: start rule %q: %w", leaf.Name, err)
	}
	e.line("return results")

	var out strings.Builder
	fmt.Fprintf(&out, "func %s() []driver.RuleResult {\n", name)
	out.WriteString(e.buf.String())
	out.WriteString("}\n")
	return name, out.String(), nil
}

// emitRuleFunc renders fr (whose Leaf is a *ast.SimpleRule) as a
// driver.RuleFunc: for every quantifier binding, clone the incoming
// state, check Guard against the clone (cheap since nothing has been
// mutated yet), and if it holds run Body against the clone.
func emitRuleFunc(m *ast.Model, index int, fr ast.FlatRule) (name, src string, err error) {
	leaf := fr.Leaf.(*ast.SimpleRule)
	e := newEmitter(m)
	name = ruleGoName("rule", index)

	e.line("var results []driver.RuleResult")
	err = e.nestedBindings(fr.Quantifiers, func() error {
		e.line("func() {")
		e.indent++
		e.line("s := s.Clone()")
		e.onFail = func(errExpr string) {
			e.line("results = append(results, driver.RuleResult{Outcome: state.Fail(%s)})", errExpr)
			e.line("return")
		}
		e.onAbandon = func() {
			e.line("results = append(results, driver.RuleResult{Outcome: state.Abandon()})")
			e.line("return")
		}
		if leaf.Guard != nil {
			guardSrc, err := e.rvalue(leaf.Guard)
			if err != nil {
				return err
			}
			e.line("if %s == 0 { return }", guardSrc)
		}
		if err := e.stmts(leaf.Body); err != nil {
			return err
		}
		e.line("results = append(results, driver.RuleResult{State: s, Outcome: state.OK})")
		e.indent--
		e.line("}()")
		return nil
	})
	if err != nil {
		return "", "", fmt.Errorf("codegen: rule %q: %w", leaf.Name, err)
	}
	e.line("return results")

	var out strings.Builder
	fmt.Fprintf(&out, "func %s(s *state.State) []driver.RuleResult {\n", name)
	out.WriteString(e.buf.String())
	out.WriteString("}\n")
	return name, out.String(), nil
}

// emitPropertyFunc renders fr (whose Leaf is a *ast.PropertyRule) as a
// driver.PropertyFunc. Invariant/Assumption read as an implicit forall
// across the wrapping quantifier chain (one violation anywhere fails
// the whole property); Cover/Liveness read as an implicit exists (one
// satisfying binding suffices). This collapses what Rumur represents
// as one claim per binding into a single PropertyFunc per flattened
// declaration, trading per-binding cover/liveness reporting for a
// much simpler driver-facing shape.
func emitPropertyFunc(m *ast.Model, index int, fr ast.FlatRule) (name, src string, err error) {
	leaf := fr.Leaf.(*ast.PropertyRule)
	prop := leaf.Property
	existential := prop.Kind == ast.Cover || prop.Kind == ast.Liveness
	e := newEmitter(m)
	name = ruleGoName("prop", index)

	if existential {
		e.line("satisfied := false")
	} else {
		e.line("violated := false")
	}
	e.line("var propErr error")
	// A handle/arithmetic fault while evaluating Cond itself (e.g. an
	// undefined read) is reported the same way an explicit violation
	// is: it stops the search and surfaces as this property's error,
	// since there is no enclosing RuleFunc/StartFunc binding loop here
	// to abandon just one binding into.
	e.onFail = func(errExpr string) {
		if existential {
			e.line("propErr = %s", errExpr)
		} else {
			e.line("violated = true")
			e.line("propErr = %s", errExpr)
		}
		e.line("return")
	}
	e.line("func() {")
	e.indent++
	err = e.nestedBindings(fr.Quantifiers, func() error {
		condSrc, err := e.rvalue(prop.Cond)
		if err != nil {
			return err
		}
		if existential {
			e.line("if %s != 0 { satisfied = true; return }", condSrc)
		} else {
			e.line("if %s == 0 { violated = true; propErr = fmt.Errorf(%q); return }", condSrc, propertyMessage(prop.Name, "property violated"))
		}
		return nil
	})
	e.indent--
	e.line("}()")
	if err != nil {
		return "", "", fmt.Errorf("codegen: property %q: %w", leaf.Name, err)
	}
	if existential {
		e.line("if !satisfied {")
		e.indent++
		e.line("if propErr != nil { return false, propErr }")
		e.line("return false, fmt.Errorf(%q)", propertyMessage(prop.Name, "property never satisfied"))
		e.indent--
		e.line("}")
		e.line("return true, nil")
	} else {
		e.line("if violated { return false, propErr }")
		e.line("return true, nil")
	}

	var out strings.Builder
	fmt.Fprintf(&out, "func %s(s *state.State) (bool, error) {\n", name)
	out.WriteString(e.buf.String())
	out.WriteString("}\n")
	return name, out.String(), nil
}

// nestedBindings emits one nested Go for loop per entry of quants
// (outer to inner, matching the Ruleset wrapper chain Flatten
// recorded), invoking body once the full binding is established.
func (e *emitter) nestedBindings(quants []ast.Quantifier, body func() error) error {
	if len(quants) == 0 {
		return body()
	}
	return e.forEachBinding(quants[0], func() error {
		return e.nestedBindings(quants[1:], body)
	})
}

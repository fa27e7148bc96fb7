package codegen

import (
	"fmt"
	"strings"

	"github.com/specc-lang/specc/pkg/ast"
)

// emitter builds the body of a single Go function at a time: a shared
// text buffer plus the bookkeeping (indent level, temp-variable
// counter, local scope) every statement/expression emission method
// reads and writes. A fresh emitter is created per top-level function
// (rule, start state, property, procedure/function) codegen produces.
type emitter struct {
	m   *ast.Model
	sc  *scope
	buf strings.Builder

	indent int
	tmp    int

	// onFail emits whatever statement(s) the enclosing function kind
	// needs to unwind on a runtime (Handle/arithmetic) error: a
	// RuleFunc/StartFunc binding loop appends a failed RuleResult and
	// continues to the next binding, a PropertyFunc records the error
	// in propErr and returns, ending the property check, and a plain
	// function/procedure returns the
	// error immediately. errExpr is a Go expression (already in scope)
	// evaluating to the error value.
	onFail func(errExpr string)

	// onAbandon emits whatever statement(s) the enclosing function kind
	// needs on an inline assumption violation: nil outside a
	// RuleFunc/StartFunc binding loop, in which case emitInlineProperty
	// falls back to treating it as a failure.
	onAbandon func()

	// inFunction/funcReturnsValue are set while emitting a
	// FunctionDecl's body, so ReturnStmt can tell a bare `return` apart
	// from an error and shape its emitted statement accordingly; both
	// are false while emitting a rule/property/start-state body, where
	// the source language has no return statement.
	inFunction       bool
	funcReturnsValue bool
}

func newEmitter(m *ast.Model) *emitter {
	return &emitter{m: m, sc: newScope()}
}

// line writes one indented, newline-terminated statement into the
// function body under construction.
func (e *emitter) line(format string, args ...any) {
	e.buf.WriteString(strings.Repeat("\t", e.indent))
	fmt.Fprintf(&e.buf, format, args...)
	e.buf.WriteByte('\n')
}

// newTemp returns a fresh, function-unique identifier prefixed with
// prefix, used for intermediate Handles, decoded values and loop
// results.
func (e *emitter) newTemp(prefix string) string {
	e.tmp++
	return fmt.Sprintf("%s%d", prefix, e.tmp)
}

// fail routes a runtime error to whatever the current function kind's
// onFail does with it.
func (e *emitter) fail(errExpr string) {
	e.onFail(errExpr)
}

package codegen

import (
	"fmt"
	"strings"

	"github.com/specc-lang/specc/pkg/ast"
)

// emitFunction renders f as a standalone Go function taking the
// model's state as its first parameter, named by functionGoName so
// every call site (rvalueCall, ProcedureCallStmt) can address it
// without a lookup table.
func emitFunction(m *ast.Model, f *ast.FunctionDecl) (string, error) {
	e := newEmitter(m)
	e.inFunction = true
	e.funcReturnsValue = !f.IsProcedure()

	params := make([]string, len(f.Params))
	for i, p := range f.Params {
		if _, _, err := scalarBounds(p.Type); err != nil {
			return "", fmt.Errorf("codegen: function %q: parameter %q must be scalar-typed: %w", f.Name, p.Name, err)
		}
		ident := e.sc.bindParam(p)
		params[i] = fmt.Sprintf("%s int64", ident)
	}

	if f.IsProcedure() {
		e.onFail = func(errExpr string) { e.line("return %s", errExpr) }
	} else {
		e.onFail = func(errExpr string) { e.line("return 0, %s", errExpr) }
	}

	if err := e.stmts(f.Body); err != nil {
		return "", err
	}

	var out strings.Builder
	sig := fmt.Sprintf("func %s(s *state.State, %s) error {", functionGoName(f), strings.Join(params, ", "))
	if !f.IsProcedure() {
		sig = fmt.Sprintf("func %s(s *state.State, %s) (int64, error) {", functionGoName(f), strings.Join(params, ", "))
	}
	out.WriteString(sig)
	out.WriteByte('\n')
	out.WriteString(e.buf.String())
	if f.IsProcedure() {
		out.WriteString("\treturn nil\n")
	} else {
		out.WriteString("\treturn 0, nil\n")
	}
	out.WriteString("}\n")
	return out.String(), nil
}

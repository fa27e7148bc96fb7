// Package layout assigns each state-level VarDecl a bit offset equal
// to the sum of widths of the state variables preceding it in
// declaration order, and reports the model's total STATE_SIZE_BITS.
// Local and parameter variables are left untouched: they get
// separately allocated buffers at codegen time rather than a slot in
// the packed state (§4.6).
package layout

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/ast"
)

// Result is the outcome of laying out one model's state variables.
type Result struct {
	// StateSizeBits is the sum of widths of every ScopeState VarDecl,
	// i.e. the size of the packed state in bits.
	StateSizeBits int
}

// Layout assigns Offset to every ScopeState VarDecl in m, in
// declaration order, and returns the resulting state size. It must
// run after pkg/resolve and pkg/validate, since ast.Width follows
// TypeExprID references that only exist once resolved.
func Layout(m *ast.Model) (*Result, error) {
	offset := 0
	for _, vd := range m.StateVars() {
		w, err := ast.Width(vd.Type)
		if err != nil {
			return nil, fmt.Errorf("layout: variable %q: %w", vd.Name, err)
		}
		vd.Offset = offset
		offset += w
	}
	return &Result{StateSizeBits: offset}, nil
}

package resolve

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/token"
)

// UnresolvedError reports a name with no binding in scope at its
// point of use, for either an ExprID or a TypeExprID.
type UnresolvedError struct {
	Name string
	Loc  token.Location
}

func (e *UnresolvedError) Error() string {
	return fmt.Sprintf("%s: unresolved identifier %q", e.Loc, e.Name)
}

// Unresolved builds the failure resolution reports when name has no
// binding at loc.
func Unresolved(name string, loc token.Location) error {
	return &UnresolvedError{Name: name, Loc: loc}
}

// DuplicateFunctionError reports a function or procedure name
// declared more than once in the model's flat function namespace.
type DuplicateFunctionError struct {
	Name string
	Loc  token.Location
}

func (e *DuplicateFunctionError) Error() string {
	return fmt.Sprintf("%s: function %q already declared", e.Loc, e.Name)
}

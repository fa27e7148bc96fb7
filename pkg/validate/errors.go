package validate

import (
	"fmt"

	"github.com/specc-lang/specc/pkg/token"
)

// TypeError reports a type-compatibility failure at loc: an
// incompatible comparison, assignment, Return expression, or a
// non-index array index type.
type TypeError struct {
	Loc token.Location
	Msg string
}

func (e *TypeError) Error() string { return fmt.Sprintf("%s: %s", e.Loc, e.Msg) }

func typeErrorf(loc token.Location, format string, args ...any) error {
	return &TypeError{Loc: loc, Msg: fmt.Sprintf(format, args...)}
}

// DuplicateNameError reports a name declared twice within one
// namespace (model-level decls, record fields, enum members, or a
// single function's parameters).
type DuplicateNameError struct {
	Namespace string
	Name      string
	Loc       token.Location
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("%s: duplicate %s name %q", e.Loc, e.Namespace, e.Name)
}

package ast

import "errors"

// errUncountedQuantifier is returned by BindingCount when a
// From..To quantifier's bounds have not yet been constant-folded to
// NumberExpr literals.
var errUncountedQuantifier = errors.New("ast: quantifier bounds are not constant-folded")

// Package validate type-checks a resolved Model: it rejects
// comparisons and assignments between incompatible types, Return
// statements whose expression doesn't match the enclosing function's
// declared return type, array index types that aren't Range/Enum/
// Scalarset, and duplicate names within a single namespace (top-level
// declarations, record fields, enum members, function parameters).
//
// Range/Scalarset/Array bounds are constant integers by construction
// (pkg/ast.RangeType.Min/Max and ScalarsetType.Bound are *big.Int, not
// Expr) — the parser folds a bound expression into that integer as it
// builds the node, so Validate's "eager constant-folding of bounds"
// has already happened by the time a Model reaches this package; what
// remains is range sanity (Min <= Max, Bound > 0) together with the
// type/shape checks above.
package validate

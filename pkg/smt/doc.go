// Package smt is the optional simplification pass run after
// validation (§4.8). It re-opens lexical scopes at identical points to
// pkg/resolve — so solver symbols shadow the same way source
// identifiers do — declares each visible variable and enum member to
// an external SMT-LIB2 solver, and for every boolean subexpression
// asks "is this always true" / "is this always false". Only the
// boolean literal result, when conclusive, is substituted back into
// the tree; everything else (function calls, IsUndefined, open-bound
// quantifiers, comparisons between composite values with no declared
// record shape) is left untouched. A budget accumulator caps the
// number of queries issued; the solver runs one-shot (a fresh process
// per query), and scoping is a stack of prelude buffers rather than
// solver-level push/pop.
package smt

package ast

// FlatRule is one SimpleRule, StartStateRule or PropertyRule together
// with the full chain of enclosing Ruleset quantifiers and AliasRule
// bindings collected by Flatten. Nested Rulesets-of-Rulesets and
// AliasRules-of-AliasRules collapse into a single FlatRule per leaf
// rule, so later passes (codegen in particular) never need to
// recurse through arbitrary wrapper nesting.
//
// Flatten does not materialize one entry per concrete quantifier
// binding — for a Scalarset of a few thousand elements that would be
// both wasteful and, per §4.7, exactly what codegen avoids by
// emitting one function parameterized by the quantifier variables and
// wrapping each call site in generated loops. Flatten instead records
// the binding chain (Quantifiers/Aliases) so codegen and the driver
// can each decide how to realize it — codegen as nested loops, the
// driver's counterexample reconstruction as a division/modulo
// decoding of a stored index tuple.
type FlatRule struct {
	Leaf        Rule
	Quantifiers []Quantifier
	Aliases     [][]Decl
}

// Flatten walks m.Rules and returns one FlatRule per StartStateRule,
// SimpleRule and PropertyRule reachable, in source order.
func Flatten(m *Model) []FlatRule {
	var out []FlatRule
	var visit func(r Rule, quants []Quantifier, aliases [][]Decl)
	visit = func(r Rule, quants []Quantifier, aliases [][]Decl) {
		switch rr := r.(type) {
		case *StartStateRule, *SimpleRule, *PropertyRule:
			out = append(out, FlatRule{
				Leaf:        rr,
				Quantifiers: append([]Quantifier(nil), quants...),
				Aliases:     append([][]Decl(nil), aliases...),
			})
		case *Ruleset:
			for _, inner := range rr.Inner {
				visit(inner, append(quants, rr.Quantifier), aliases)
			}
		case *AliasRule:
			for _, inner := range rr.Inner {
				visit(inner, quants, append(aliases, rr.Decls))
			}
		}
	}
	for _, r := range m.Rules {
		visit(r, nil, nil)
	}
	return out
}

// BindingCount multiplies the domain size of every quantifier in the
// chain, giving the total number of concrete rule instances a
// FlatRule represents. Used by the driver to decode a stored
// (rule id, binding index) pair back into the tuple of quantifier
// values for a counterexample trace (§4.13).
func (f FlatRule) BindingCount() (int, error) {
	total := 1
	for _, q := range f.Quantifiers {
		n, err := quantifierDomainSize(q)
		if err != nil {
			return 0, err
		}
		total *= n
	}
	return total, nil
}

func quantifierDomainSize(q Quantifier) (int, error) {
	if q.Type != nil {
		return Count(q.Type)
	}
	// Explicit From..To[step Step] quantifiers are only countable once
	// constant-folded; callers needing a size for such a quantifier
	// must fold From/To/Step first (pkg/validate does this eagerly).
	fromN, fromOK := foldedInt(q.From)
	toN, toOK := foldedInt(q.To)
	if !fromOK || !toOK {
		return 0, errUncountedQuantifier
	}
	step := 1
	if q.Step != nil {
		if s, ok := foldedInt(q.Step); ok {
			step = s
		}
	}
	if step <= 0 {
		return 0, errUncountedQuantifier
	}
	return (toN-fromN)/step + 1, nil
}

func foldedInt(e Expr) (int, bool) {
	n, ok := e.(*NumberExpr)
	if !ok {
		return 0, false
	}
	return int(n.Value.Int64()), true
}

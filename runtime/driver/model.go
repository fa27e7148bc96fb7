package driver

import "github.com/specc-lang/specc/runtime/state"

// PropertyFunc evaluates one invariant/assumption/cover/liveness claim
// against a state, returning ok and, for a failed invariant/cover, an
// error describing the failure.
type PropertyFunc func(s *state.State) (ok bool, err error)

// RuleResult is one concrete firing of a rule: the resulting state
// (nil if the firing was abandoned via an assumption violation) and
// the structured Outcome in place of longjmp-based recovery (§9).
type RuleResult struct {
	State   *state.State
	Outcome state.Outcome
}

// RuleFunc fires every quantifier binding of one flattened SimpleRule
// against s (codegen emits the nested generate_quantifier_header/
// footer loops internally, §4.7), returning one RuleResult per binding
// whose guard held.
type RuleFunc func(s *state.State) []RuleResult

// StartFunc evaluates one flattened StartStateRule, producing the
// initial states it constructs.
type StartFunc func() []RuleResult

// Model is the compiled model codegen emits and Run explores: its
// start, rule and property functions with their names, and a
// Canonicalize function that closes over the runtime/symmetry.Plan
// values codegen emits, one per named Scalarset type (§4.12).
type Model struct {
	Name string

	Starts     []StartFunc
	Rules      []RuleFunc
	RuleNames  []string
	Invariants []PropertyFunc
	Assumptions []PropertyFunc
	Covers      []PropertyFunc
	CoverNames  []string
	Liveness    []PropertyFunc
	LivenessNames []string

	// Canonicalize replaces *s with its canonical representative
	// in place (§4.12); a no-op function when symmetry reduction is
	// off.
	Canonicalize func(s *state.State)

	StateSizeBits int
}

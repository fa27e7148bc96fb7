package liveness

import "github.com/specc-lang/specc/runtime/state"

// PropagateToPredecessors walks s's Previous chain, ORing s's current
// liveness bits into every ancestor that does not yet have them and
// stopping as soon as an ancestor already has every bit s carries
// (§4.13: "lazily propagated to all predecessors along the previous
// links"). Safe to call repeatedly from multiple goroutines on
// different states: SetLiveness is the atomic fetch-or primitive.
func PropagateToPredecessors(s *state.State) {
	bits := s.Liveness
	if bits == 0 {
		return
	}
	for p := s.Previous; p != nil; p = p.Previous {
		if p.HasLiveness(bits) {
			return
		}
		p.SetLiveness(bits)
	}
}

// Successor holds a fired rule's resulting (already canonicalized)
// state; it does not record the twin retained in the seen set.
type Successor struct {
	Canonical *state.State
}

// FireFunc re-fires every rule from s, returning the canonicalized
// successor states (codegen emits the concrete implementation; this
// package only consumes the signature).
type FireFunc func(s *state.State) []*state.State

// LookupFunc finds the state set's retained representative for a
// canonicalized candidate, if present.
type LookupFunc func(candidate *state.State) (*state.State, bool)

// FinalFixpoint implements §4.13's final propagation pass: after BFS
// terminates, repeatedly re-fire every rule from every seen state and
// pull forward any liveness bits the successor's retained twin already
// has that the predecessor lacks, until a full pass makes no change.
func FinalFixpoint(states []*state.State, fire FireFunc, lookup LookupFunc) {
	for {
		changed := false
		for _, s := range states {
			for _, successor := range fire(s) {
				twin, ok := lookup(successor)
				if !ok {
					continue
				}
				bits := twin.Liveness
				if bits == 0 || s.HasLiveness(bits) {
					continue
				}
				s.SetLiveness(bits)
				changed = true
			}
		}
		if !changed {
			return
		}
	}
}

// Violated returns the bits of mask never observed set across states
// — the liveness properties §4.13 reports as violated.
func Violated(states []*state.State, mask uint64) uint64 {
	var everSet uint64
	for _, s := range states {
		everSet |= s.Liveness
	}
	return mask &^ everSet
}

package driver

import (
	"sync"

	"github.com/specc-lang/specc/runtime/liveness"
	"github.com/specc-lang/specc/runtime/set"
	"github.com/specc-lang/specc/runtime/state"
)

// coverFlags is a concurrency-safe set of "cover property i was hit"
// flags, written by many exploration workers at once.
type coverFlags []bool

var coverFlagsMu sync.Mutex

func (c coverFlags) set(i int) {
	coverFlagsMu.Lock()
	c[i] = true
	coverFlagsMu.Unlock()
}

// allSeenStates accumulates every state accepted into the set, for the
// final liveness fixpoint pass (§4.13: "a final pass iterates all seen
// states").
type allSeenStates struct {
	mu     sync.Mutex
	states []*state.State
}

func (a *allSeenStates) add(s *state.State) {
	a.mu.Lock()
	a.states = append(a.states, s)
	a.mu.Unlock()
}

func (a *allSeenStates) snapshot() []*state.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*state.State(nil), a.states...)
}

// fireAll adapts Model's rule functions to liveness.FireFunc: re-fire
// every rule from s, collecting only the successor states of firings
// that actually completed (not abandoned, not failed).
func fireAll(model Model) liveness.FireFunc {
	return func(s *state.State) []*state.State {
		var out []*state.State
		for _, rule := range model.Rules {
			for _, res := range rule(s) {
				if res.Outcome.Abandoned || res.Outcome.Failed() {
					continue
				}
				model.Canonicalize(res.State)
				out = append(out, res.State)
			}
		}
		return out
	}
}

// lookupTwin adapts the seen set's read-only probe to
// liveness.LookupFunc.
func lookupTwin(seen *set.Set) liveness.LookupFunc {
	return seen.Get
}

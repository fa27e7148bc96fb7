package symmetry

import (
	"bytes"

	"github.com/specc-lang/specc/runtime/state"
)

// Mode selects §6's --symmetry-reduction setting.
type Mode int

const (
	Off Mode = iota
	Heuristic
	Exhaustive
)

// Canonicalize replaces s in place with the lexicographically least
// state equivalent to it under the permutation group generated by
// plans (§4.12, GLOSSARY "Canonicalization"). Off leaves s unchanged;
// Heuristic tries one transposition of each value against index 0 per
// type instead of the full factorial; Exhaustive enumerates every
// permutation of every type via Heap's algorithm.
func Canonicalize(s *state.State, plans []Plan, mode Mode) {
	if mode == Off || len(plans) == 0 {
		return
	}
	best := append([]byte(nil), s.Packed...)

	consider := func() {
		if bytes.Compare(s.Packed, best) < 0 {
			copy(best, s.Packed)
		}
	}
	consider()

	if mode == Heuristic {
		heuristicPermute(s, plans, consider)
	} else {
		exhaustivePermute(s, plans, 0, make([][]int, len(plans)), consider)
	}

	copy(s.Packed, best)
}

// heuristicPermute tries, for each type independently, swapping every
// non-zero index against index 0 and keeping whichever of the two
// states compares smaller, restoring the swap afterward. This is O(sum
// of bounds) rather than the full product of factorials.
func heuristicPermute(s *state.State, plans []Plan, consider func()) {
	for _, p := range plans {
		for x := 1; x < p.Bound; x++ {
			Swap(s, p, 0, x)
			consider()
			Swap(s, p, 0, x) // undo
		}
	}
}

// exhaustivePermute enumerates the product of every type's full
// permutation group via nested Heap's algorithm, recursing one type at
// a time so each combination of per-type permutations is visited
// exactly once (§4.12: "a nested loop with a per-type schedule array").
func exhaustivePermute(s *state.State, plans []Plan, typeIdx int, schedules [][]int, consider func()) {
	if typeIdx == len(plans) {
		consider()
		return
	}
	p := plans[typeIdx]
	n := p.Bound
	if n <= 1 {
		exhaustivePermute(s, plans, typeIdx+1, schedules, consider)
		return
	}
	schedule := make([]int, n)
	schedules[typeIdx] = schedule

	var heap func(k int)
	heap = func(k int) {
		if k == 1 {
			exhaustivePermute(s, plans, typeIdx+1, schedules, consider)
			return
		}
		heap(k - 1)
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				Swap(s, p, i, k-1)
			} else {
				Swap(s, p, 0, k-1)
			}
			heap(k - 1)
		}
	}
	heap(n)
}

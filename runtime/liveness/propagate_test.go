package liveness

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/runtime/state"
)

func TestPropagateToPredecessorsReachesEveryAncestor(t *testing.T) {
	root := state.New(8)
	mid := &state.State{Previous: root}
	leaf := &state.State{Previous: mid}
	leaf.SetLiveness(1)

	PropagateToPredecessors(leaf)
	require.True(t, mid.HasLiveness(1))
	require.True(t, root.HasLiveness(1))
}

func TestFinalFixpointPullsForwardBitsFromTwin(t *testing.T) {
	pred := state.New(8)
	succTwin := state.New(8)
	succTwin.SetLiveness(2)

	fire := func(s *state.State) []*state.State {
		if s == pred {
			return []*state.State{succTwin}
		}
		return nil
	}
	lookup := func(c *state.State) (*state.State, bool) {
		return succTwin, true
	}

	FinalFixpoint([]*state.State{pred, succTwin}, fire, lookup)
	require.True(t, pred.HasLiveness(2))
}

func TestViolatedReportsNeverSetBits(t *testing.T) {
	a := state.New(8)
	a.SetLiveness(1)
	b := state.New(8)
	b.SetLiveness(1)

	require.Equal(t, uint64(2), Violated([]*state.State{a, b}, 3))
}

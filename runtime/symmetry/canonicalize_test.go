package symmetry

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/runtime/state"
)

func TestSwapExchangesArrayElements(t *testing.T) {
	s := state.New(24) // 3 bytes, array of 3 one-byte-ish elements
	plan := Plan{Bound: 3, Arrays: []ArraySite{{ElemOffset: 0, ElemWidth: 8, Count: 3}}}
	s.Packed[0] = 10
	s.Packed[1] = 20
	s.Packed[2] = 30

	Swap(s, plan, 0, 2)
	require.Equal(t, byte(30), s.Packed[0])
	require.Equal(t, byte(20), s.Packed[1])
	require.Equal(t, byte(10), s.Packed[2])
}

func TestCanonicalizeFindsLexicographicMinimum(t *testing.T) {
	s := state.New(24)
	plan := Plan{Bound: 3, Arrays: []ArraySite{{ElemOffset: 0, ElemWidth: 8, Count: 3}}}
	s.Packed[0] = 30
	s.Packed[1] = 10
	s.Packed[2] = 20

	Canonicalize(s, []Plan{plan}, Exhaustive)
	require.Equal(t, []byte{10, 20, 30}, s.Packed)
}

func TestCanonicalizeOffLeavesStateUnchanged(t *testing.T) {
	s := state.New(24)
	plan := Plan{Bound: 3, Arrays: []ArraySite{{ElemOffset: 0, ElemWidth: 8, Count: 3}}}
	s.Packed[0] = 30
	s.Packed[1] = 10
	s.Packed[2] = 20
	before := append([]byte(nil), s.Packed...)

	Canonicalize(s, []Plan{plan}, Off)
	require.Equal(t, before, s.Packed)
}

func TestCanonicalizeIsIdempotent(t *testing.T) {
	s := state.New(24)
	plan := Plan{Bound: 3, Arrays: []ArraySite{{ElemOffset: 0, ElemWidth: 8, Count: 3}}}
	s.Packed[0] = 30
	s.Packed[1] = 10
	s.Packed[2] = 20

	Canonicalize(s, []Plan{plan}, Exhaustive)
	once := append([]byte(nil), s.Packed...)
	Canonicalize(s, []Plan{plan}, Exhaustive)
	require.Equal(t, once, s.Packed)
}

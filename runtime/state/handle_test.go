package state

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestHandleRoundTrip(t *testing.T) {
	s := New(16)
	h := Handle{Base: s, Offset: 3, Width: 5}

	require.NoError(t, h.Write(7, 0, 20))
	v, err := h.Read(0)
	require.NoError(t, err)
	require.Equal(t, int64(7), v)
}

func TestHandleUndefinedReadBeforeWrite(t *testing.T) {
	s := New(8)
	h := Handle{Base: s, Offset: 0, Width: 4}
	_, err := h.Read(0)
	require.True(t, errors.Is(err, ErrUndefinedRead))
}

func TestHandleWriteRejectsOutOfRange(t *testing.T) {
	s := New(8)
	h := Handle{Base: s, Offset: 0, Width: 4}
	err := h.Write(99, 0, 3)
	require.True(t, errors.Is(err, ErrOutOfRangeWrite))
}

func TestHandleIndexBoundsCheck(t *testing.T) {
	s := New(64)
	root := Handle{Base: s, Offset: 0, Width: 8}
	_, err := Index(root, 8, 0, 3, 9)
	require.True(t, errors.Is(err, ErrIndexOutOfRange))

	h, err := Index(root, 8, 0, 3, 2)
	require.NoError(t, err)
	require.Equal(t, 16, h.Offset)
}

// TestHandleRoundTripWideUnalignedField exercises a field wide and
// offset enough that its bit span crosses a 64-bit boundary without
// being byte-aligned — the case the two-word readBits/writeBits window
// must cover.
func TestHandleRoundTripWideUnalignedField(t *testing.T) {
	s := New(256)
	h := Handle{Base: s, Offset: 61, Width: 60}

	const v = int64(1)<<59 - 1
	require.NoError(t, h.Write(v, 0, 1<<60))
	got, err := h.Read(0)
	require.NoError(t, err)
	require.Equal(t, v, got)
}

// TestHandleNarrowSiblingsDoNotClobberAcrossWordBoundary checks that
// writing one wide, unaligned handle leaves an adjacent handle sharing
// the same 64-bit boundary untouched.
func TestHandleNarrowSiblingsDoNotClobberAcrossWordBoundary(t *testing.T) {
	s := New(256)
	lo := Handle{Base: s, Offset: 61, Width: 60}
	hi := Handle{Base: s, Offset: 121, Width: 30}

	require.NoError(t, hi.Write(42, 0, 1<<30))
	require.NoError(t, lo.Write(1, 0, 1<<60))

	v, err := hi.Read(0)
	require.NoError(t, err)
	require.Equal(t, int64(42), v)
}

func TestArenaAllocAndRelease(t *testing.T) {
	a := &Arena{buf: make([]byte, 32)}
	b1 := a.Alloc(10)
	require.Len(t, b1, 10)
	a.Release(10)
	b2 := a.Alloc(10)
	require.Len(t, b2, 10)
}

// TestStatePackedLayoutGolden pins the exact byte layout two adjacent
// bit-packed fields produce, the way a structural golden test would
// catch a future change to readBits/writeBits' encoding silently
// shifting every field's on-wire representation.
func TestStatePackedLayoutGolden(t *testing.T) {
	s := New(8)
	a := Handle{Base: s, Offset: 0, Width: 3}
	b := Handle{Base: s, Offset: 3, Width: 5}

	require.NoError(t, a.Write(2, 0, 3))
	require.NoError(t, b.Write(10, 0, 31))

	// a encodes 2-0+1=3 (0b011) in bits [0,3); b encodes 10-0+1=11
	// (0b01011) in bits [3,8): byte = 0b01011_011 = 0x5B.
	want := []byte{0x5B}
	if diff := cmp.Diff(want, s.Packed); diff != "" {
		t.Fatalf("packed layout mismatch (-want +got):\n%s", diff)
	}
}

func TestStateLivenessMonotone(t *testing.T) {
	s := New(8)
	s.SetLiveness(1)
	s.SetLiveness(2)
	require.True(t, s.HasLiveness(1))
	require.True(t, s.HasLiveness(2))
	require.True(t, s.HasLiveness(3))
}

package driver

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/runtime/state"
)

func TestKindOfMapsStateSentinels(t *testing.T) {
	cases := []struct {
		err  error
		want Kind
	}{
		{state.ErrOutOfRangeRead, KindOutOfRangeRead},
		{state.ErrOutOfRangeWrite, KindOutOfRangeWrite},
		{state.ErrUndefinedRead, KindUndefinedRead},
		{state.ErrIndexOutOfRange, KindIndexOutOfRange},
		{state.ErrIntegerOverflow, KindIntegerOverflow},
		{state.ErrDivisionByZero, KindDivisionByZero},
		{state.ErrModuloByZero, KindModuloByZero},
	}
	for _, c := range cases {
		require.Equal(t, c.want, kindOf(c.err))
		require.Equal(t, c.want, kindOf(fmt.Errorf("at bit offset 3: %w", c.err)))
	}
}

func TestKindOfFallsBackOnUnknownError(t *testing.T) {
	require.Equal(t, KindOutOfRangeWrite, kindOf(errors.New("some other failure")))
}

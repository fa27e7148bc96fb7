package set

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/runtime/state"
)

func mkState(b byte) *state.State {
	s := state.New(8)
	s.Packed[0] = b
	return s
}

func TestInsertIdempotent(t *testing.T) {
	s := New(16, 65)
	a := mkState(1)
	b := mkState(1) // distinct pointer, byte-identical

	require.True(t, s.Insert(a))
	require.False(t, s.Insert(b))
	require.Equal(t, int64(1), s.Len())
}

func TestInsertDistinctStatesBothSucceed(t *testing.T) {
	s := New(16, 65)
	require.True(t, s.Insert(mkState(1)))
	require.True(t, s.Insert(mkState(2)))
	require.Equal(t, int64(2), s.Len())
}

func TestConcurrentInsertSameStateExactlyOneWinner(t *testing.T) {
	s := New(16, 65)
	const n = 50
	wins := make([]bool, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			wins[i] = s.Insert(mkState(7))
		}(i)
	}
	wg.Wait()

	count := 0
	for _, w := range wins {
		if w {
			count++
		}
	}
	require.Equal(t, 1, count)
}

func TestExpandMigratesExistingEntries(t *testing.T) {
	s := New(4, 1) // threshold 1% forces expansion on first insert
	require.True(t, s.Insert(mkState(1)))
	// Trigger helper migration paths via further inserts.
	for i := byte(2); i < 10; i++ {
		s.Insert(mkState(i))
	}
	require.True(t, s.Insert(mkState(1)) == false) // still a duplicate post-migration
}

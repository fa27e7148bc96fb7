package queue

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/specc-lang/specc/runtime/state"
)

func TestEnqueueDequeueFIFO(t *testing.T) {
	q := New()
	h := NewHazardRegistry(1)
	d := newDeferredList(1)

	a, b := state.New(8), state.New(8)
	a.Packed[0] = 1
	b.Packed[0] = 2

	q.Enqueue(h, 0, a)
	q.Enqueue(h, 0, b)

	got1, ok := q.Dequeue(h, d, 0)
	require.True(t, ok)
	require.Same(t, a, got1)

	got2, ok := q.Dequeue(h, d, 0)
	require.True(t, ok)
	require.Same(t, b, got2)

	_, ok = q.Dequeue(h, d, 0)
	require.False(t, ok)
}

func TestQueueConservationUnderConcurrency(t *testing.T) {
	const producers, perProducer = 4, 500
	q := New()
	h := NewHazardRegistry(producers + 1)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				q.Enqueue(h, id, state.New(8))
			}
		}(p)
	}
	wg.Wait()

	d := newDeferredList(producers + 1)
	count := 0
	for {
		_, ok := q.Dequeue(h, d, producers)
		if !ok {
			break
		}
		count++
	}
	require.Equal(t, producers*perProducer, count)
	require.Equal(t, int64(0), q.Len())
}

func TestSetRoundRobinFallsThroughEmptyQueues(t *testing.T) {
	s := NewSet(3)
	only := state.New(8)
	s.Queues[2].Enqueue(s.Hazards, 0, only)

	got, ok := s.DequeueRoundRobin(0, 0)
	require.True(t, ok)
	require.Same(t, only, got)
}

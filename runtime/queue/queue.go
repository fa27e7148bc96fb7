package queue

import (
	"sync/atomic"

	"github.com/specc-lang/specc/runtime/state"
)

// Queue is one per-thread MPMC FIFO: a linked list of blocks, with
// head/tail kept as atomic block pointers. Concurrent producers claim
// slots by atomically incrementing tail.write; concurrent consumers race to
// CAS-advance head.read. When a consumer exhausts a block it follows
// next and retires the old block through the hazard registry.
type Queue struct {
	head atomic.Pointer[block]
	tail atomic.Pointer[block]

	enqueues atomic.Int64
	dequeues atomic.Int64
}

// New returns an empty queue seeded with one block.
func New() *Queue {
	b := newBlock()
	q := &Queue{}
	q.head.Store(b)
	q.tail.Store(b)
	return q
}

// Enqueue publishes s (owned by ownerThread, used as the hazard
// publication slot during the append) onto the tail block, chaining a
// fresh block when the current tail fills.
func (q *Queue) Enqueue(h *HazardRegistry, ownerThread int, s *state.State) {
	for {
		tail := q.tail.Load()
		h.Publish(ownerThread, tail)
		idx := tail.write.Add(1) - 1
		if idx < blockCapacity {
			tail.slots[idx].Store(s)
			q.enqueues.Add(1)
			h.Publish(ownerThread, nil)
			return
		}
		// This block is full (or another producer just claimed the
		// last slot first): help install the next block if nobody has
		// yet, then retry against the new tail.
		next := tail.next.Load()
		if next == nil {
			fresh := newBlock()
			if tail.next.CompareAndSwap(nil, fresh) {
				next = fresh
			} else {
				next = tail.next.Load()
			}
		}
		q.tail.CompareAndSwap(tail, next)
		h.Publish(ownerThread, nil)
	}
}

// Dequeue pops the oldest state, or reports ok=false if this queue is
// currently empty (advancing to a chained block and retiring the old
// one when the current block is exhausted).
func (q *Queue) Dequeue(h *HazardRegistry, deferred *deferredList, selfThread int) (*state.State, bool) {
	for {
		head := q.head.Load()
		h.Publish(selfThread, head)
		idx := head.read.Load()
		// write may run past blockCapacity when producers overshoot a
		// full block; only slots below the capacity ever hold a state.
		write := head.write.Load()
		if write > blockCapacity {
			write = blockCapacity
		}
		if idx >= write {
			next := head.next.Load()
			if next == nil {
				h.Publish(selfThread, nil)
				return nil, false
			}
			if q.head.CompareAndSwap(head, next) {
				deferred.Retire(h, selfThread, head)
			}
			continue
		}
		if !head.read.CompareAndSwap(idx, idx+1) {
			continue
		}
		// This slot index is now ours alone. The producer that
		// incremented write past idx may not have finished its Store
		// yet; spin on exactly this slot rather than re-entering the
		// outer loop, which would otherwise never revisit idx.
		var s *state.State
		for s == nil {
			s = head.slots[idx].Load()
		}
		h.Publish(selfThread, nil)
		q.dequeues.Add(1)
		return s, true
	}
}

// Len reports the queue's current conservation count (§8 property 4):
// enqueues minus dequeues observed so far. Approximate under
// concurrent mutation; exact once quiesced.
func (q *Queue) Len() int64 {
	return q.enqueues.Load() - q.dequeues.Load()
}

// Set is the collection of per-thread queues the driver dequeues from
// round-robin when a thread's own queue is empty (§4.10, §4.13 step 1).
type Set struct {
	Queues    []*Queue
	Hazards   *HazardRegistry
	deferreds []*deferredList
}

// NewSet allocates one Queue per thread plus the shared hazard
// registry and per-thread deferred lists.
func NewSet(threads int) *Set {
	qs := make([]*Queue, threads)
	ds := make([]*deferredList, threads)
	for i := range qs {
		qs[i] = New()
		ds[i] = newDeferredList(threads)
	}
	return &Set{Queues: qs, Hazards: NewHazardRegistry(threads), deferreds: ds}
}

// DequeueRoundRobin implements §4.13 step 1: try the caller's
// preferred queue first, then advance round-robin across the others
// until one yields a state or every queue has been tried.
func (s *Set) DequeueRoundRobin(selfThread, preferred int) (*state.State, bool) {
	n := len(s.Queues)
	for i := 0; i < n; i++ {
		qid := (preferred + i) % n
		if v, ok := s.Queues[qid].Dequeue(s.Hazards, s.deferreds[selfThread], selfThread); ok {
			return v, true
		}
	}
	return nil, false
}

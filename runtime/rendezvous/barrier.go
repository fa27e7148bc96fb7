// Package rendezvous provides a reusable condition-variable barrier,
// the synchronization primitive §4.13 and §9 describe for set migration
// hand-off and for the opt-out protocol a thread follows when it
// decides to exit. The last arrival becomes the leader and runs
// cleanup before waking every follower.
package rendezvous

import "sync"

// Barrier blocks n participants until all n have called Wait, then
// releases them together. It is reusable across generations: once a
// generation completes, the next call to Wait starts a fresh one.
type Barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	n       int
	arrived int
	gen     int
}

// NewBarrier creates a barrier for n participants.
func NewBarrier(n int) *Barrier {
	b := &Barrier{n: n}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// Wait blocks until all n participants have called Wait, running
// cleanup exactly once — by whichever goroutine happens to be the
// last arrival — before releasing every waiter.
func (b *Barrier) Wait(cleanup func()) {
	b.mu.Lock()
	gen := b.gen
	b.arrived++
	if b.arrived == b.n {
		b.arrived = 0
		b.gen++
		if cleanup != nil {
			cleanup()
		}
		b.cond.Broadcast()
		b.mu.Unlock()
		return
	}
	for gen == b.gen {
		b.cond.Wait()
	}
	b.mu.Unlock()
}

// Cancel force-releases every participant currently parked in Wait,
// without running cleanup. Used to unstick a barrier whose remaining
// participants will never arrive because the run is shutting down.
func (b *Barrier) Cancel() {
	b.mu.Lock()
	b.arrived = 0
	b.gen++
	b.cond.Broadcast()
	b.mu.Unlock()
}

package queue

import "sync/atomic"

// HazardRegistry implements §9's "per-thread single-slot publish-and-
// scan protocol": each thread publishes at most one block pointer it
// is about to dereference; Reclaim scans every thread's slot before
// freeing a retired block, and defers any block still hazarded onto
// the calling thread's own deferred list (bounded to THREADS-1
// entries, matching one possible hazard per other thread).
type HazardRegistry struct {
	slots []atomic.Pointer[block]
}

// NewHazardRegistry allocates one publish slot per thread.
func NewHazardRegistry(threads int) *HazardRegistry {
	return &HazardRegistry{slots: make([]atomic.Pointer[block], threads)}
}

// Publish announces that threadID is about to dereference b. Call
// with nil to retract the publication once the thread is done with b.
func (h *HazardRegistry) Publish(threadID int, b *block) {
	h.slots[threadID].Store(b)
}

// isHazarded reports whether any thread (other than excludeThread) has
// b currently published.
func (h *HazardRegistry) isHazarded(b *block, excludeThread int) bool {
	for i := range h.slots {
		if i == excludeThread {
			continue
		}
		if h.slots[i].Load() == b {
			return true
		}
	}
	return false
}

// deferredList is one thread's bounded retirement queue: blocks it has
// finished with but that were still hazarded by another thread the
// last time it scanned, so freeing was deferred.
type deferredList struct {
	threads int
	blocks  []*block
}

func newDeferredList(threads int) *deferredList {
	return &deferredList{threads: threads}
}

// Retire adds b to the deferred list and, once it grows past
// threads-1 entries, scans and frees every entry no longer hazarded by
// any other thread (§4.10: "Each thread maintains its own deferred
// list of bounded size THREADS-1").
func (d *deferredList) Retire(h *HazardRegistry, selfThread int, b *block) {
	d.blocks = append(d.blocks, b)
	if len(d.blocks) < d.threads {
		return
	}
	d.scanAndReclaim(h, selfThread)
}

func (d *deferredList) scanAndReclaim(h *HazardRegistry, selfThread int) {
	kept := d.blocks[:0]
	for _, b := range d.blocks {
		if h.isHazarded(b, selfThread) {
			kept = append(kept, b)
			continue
		}
		// Not hazarded by anyone: safe to let Go's GC reclaim it. There
		// is no explicit free in a garbage-collected runtime; dropping
		// the last reference is the reclamation step itself.
	}
	d.blocks = kept
}

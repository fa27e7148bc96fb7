package set

import (
	"sync/atomic"

	"github.com/spaolacci/murmur3"

	"github.com/specc-lang/specc/runtime/state"
)

// Set is the lock-free expanding hash set of seen states. current and
// next form the pointer pair §4.11 describes, without reference
// counts; while next is non-nil a migration is in progress and every
// inserting caller helps drain it one chunk at a time.
type Set struct {
	current atomic.Pointer[table]
	next    atomic.Pointer[table]

	expandThresholdPct int
	swapping           atomic.Bool
}

// New allocates a Set with the given initial capacity (a power of two)
// and expand threshold percentage (§6 --set-expand-threshold, default
// 65).
func New(capacity, expandThresholdPct int) *Set {
	s := &Set{expandThresholdPct: expandThresholdPct}
	s.current.Store(newTable(capacity))
	return s
}

func hash(s *state.State) uint64 {
	return murmur3.Sum64(s.Packed)
}

// Insert attempts to add s, returning inserted=true only for the
// thread that wins the race to be the first to store a byte-identical
// state (§8 property 3: idempotence, exactly one success=true under a
// concurrent race).
func (s *Set) Insert(candidate *state.State) bool {
	for {
		t := s.current.Load()
		inserted, retry := t.insert(candidate)
		if !retry {
			s.maybeExpand(t)
			if s.next.Load() != nil {
				s.helpMigrate(t)
			}
			return inserted
		}
		// Landed on a tombstone: this table is mid-migration. Help
		// finish it, then retry against whatever is current afterward.
		s.helpMigrate(t)
	}
}

// insert probes linearly from candidate's hash bucket. retry=true
// means the probe hit a tombstone and the caller must retry against
// the (possibly new) current table.
func (t *table) insert(candidate *state.State) (inserted, retry bool) {
	h := hash(candidate)
	n := len(t.slots)
	start := int(h % uint64(n))
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		slot := &t.slots[idx]
		existing := slot.Load()
		if existing == tombstone {
			return false, true
		}
		if existing == nil {
			if slot.CompareAndSwap(nil, candidate) {
				t.count.Add(1)
				return true, false
			}
			existing = slot.Load()
			if existing == tombstone {
				return false, true
			}
		}
		if existing != nil && existing.Equal(candidate) {
			return false, false
		}
	}
	// Table full without a tombstone anywhere: force a migration and
	// let the caller retry.
	return false, true
}

// maybeExpand starts a migration once occupancy crosses the configured
// threshold, by being the first caller to install a next table.
func (s *Set) maybeExpand(t *table) {
	if int(t.count.Load())*100 < len(t.slots)*s.expandThresholdPct {
		return
	}
	grown := newTable(len(t.slots) * 2)
	s.next.CompareAndSwap(nil, grown)
}

// helpMigrate claims chunks of t and rehashes their non-empty entries
// into s.next until every chunk is claimed. The caller that completes
// the last chunk shifts next into current. There is no rendezvous:
// other callers may still hold the old table, whose slots are all
// tombstones by then, so their inserts retry against the new current.
func (s *Set) helpMigrate(t *table) {
	next := s.next.Load()
	if next == nil {
		// Another thread already completed the swap under us.
		return
	}
	total := t.totalChunks()
	for {
		chunk := t.chunkCursor.Add(1) - 1
		if chunk >= total {
			break
		}
		migrateChunk(t, next, chunk)
		if t.chunksDone.Add(1) == total {
			if s.swapping.CompareAndSwap(false, true) {
				s.current.CompareAndSwap(t, next)
				s.next.CompareAndSwap(next, nil)
				s.swapping.Store(false)
			}
		}
	}
}

func migrateChunk(from, to *table, chunk int64) {
	start := int(chunk) * migrationChunk
	end := start + migrationChunk
	if end > len(from.slots) {
		end = len(from.slots)
	}
	for i := start; i < end; i++ {
		slot := &from.slots[i]
		existing := slot.Load()
		if existing == nil {
			slot.CompareAndSwap(nil, tombstone)
			continue
		}
		if existing == tombstone {
			continue
		}
		if slot.CompareAndSwap(existing, tombstone) {
			to.insert(existing)
		}
	}
}

// Get returns the retained representative byte-equal to candidate, if
// any is currently present — a read-only probe used by
// runtime/liveness's final fixpoint pass to find "the already-
// canonicalized twin" of a freshly fired successor (§4.13).
func (s *Set) Get(candidate *state.State) (*state.State, bool) {
	t := s.current.Load()
	h := hash(candidate)
	n := len(t.slots)
	start := int(h % uint64(n))
	for i := 0; i < n; i++ {
		idx := (start + i) % n
		existing := t.slots[idx].Load()
		if existing == nil {
			return nil, false
		}
		if existing != tombstone && existing.Equal(candidate) {
			return existing, true
		}
	}
	return nil, false
}

// Len reports the current table's occupancy, approximate during a
// migration.
func (s *Set) Len() int64 {
	return s.current.Load().count.Load()
}

package set

import (
	"sync/atomic"

	"github.com/specc-lang/specc/runtime/state"
)

// tombstone marks a slot a migration has already drained: a concurrent
// inserter that lands on it knows to retry against the next table
// rather than treating the slot as free (§4.11).
var tombstone = &state.State{}

const migrationChunk = 4096 / 8 // slots per 4 KiB chunk, matching runtime/queue's block sizing

// table is one generation of the hash set's backing array.
type table struct {
	slots []atomic.Pointer[state.State]
	count atomic.Int64

	// migration bookkeeping, valid once this table is superseded by a
	// next generation.
	chunkCursor atomic.Int64
	chunksDone  atomic.Int64
}

func newTable(capacity int) *table {
	return &table{slots: make([]atomic.Pointer[state.State], capacity)}
}

func (t *table) totalChunks() int64 {
	n := int64(len(t.slots)) / migrationChunk
	if int64(len(t.slots))%migrationChunk != 0 {
		n++
	}
	return n
}

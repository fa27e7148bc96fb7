package queue

import (
	"sync/atomic"

	"github.com/specc-lang/specc/runtime/state"
)

// blockCapacity holds enough *state.State slots to make one block
// approximately 4 KiB on a 64-bit target (§4.10).
const blockCapacity = 4096 / 8

// block is a fixed-size segment of the linked-list queue. write and
// read are atomically advanced indices into slots; next chains to the
// following block once this one fills.
type block struct {
	slots [blockCapacity]atomic.Pointer[state.State]
	write atomic.Int64
	read  atomic.Int64
	next  atomic.Pointer[block]
}

func newBlock() *block { return &block{} }

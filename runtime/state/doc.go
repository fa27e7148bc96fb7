// Package state implements §4.9's state representation and handles: a
// bit-packed snapshot of every model-level variable plus the metadata
// a state carries (predecessor, depth, last rule taken, liveness
// bits), and the (base, offset, width) handle that addresses a slice
// of that packing. It also implements the per-thread bump arena §5
// describes states as being allocated from.
package state

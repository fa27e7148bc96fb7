// Package queue implements §4.10's per-thread MPMC FIFO: a linked
// list of fixed-size blocks of state pointers, hazard-pointer
// reclamation of retired blocks, and the driver-facing round-robin
// dequeue across per-thread queues described in §4.13.
package queue

// Package liveness implements §4.13's liveness propagation: each
// state carries a bitset of satisfied liveness properties
// (state.State.Liveness), set as states are checked during exploration
// and lazily propagated backward along the predecessor DAG to a
// fixpoint once BFS terminates.
package liveness

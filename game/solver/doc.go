// Package solver finds shortest solutions for Gridlock boards.
//
// The engine runs a level-synchronized breadth-first search over immutable
// boards. A transposition table keyed by each board's canonical Key maps
// every discovered state to the move that first produced it (the root maps
// to no move), which both prevents re-exploration and supports walking the
// winning board back to the start to reconstruct the solution.
//
// Every discrete slide counts as one ply regardless of how many tiles the
// piece travels, and the level discipline guarantees the reported ply count
// is minimal: all states at depth k are discovered and checked before any
// state at depth k+1 is examined.
//
// A start board that is already won solves in zero plies, and an exhausted
// frontier (no undiscovered successors and no win) terminates with
// ErrUnsolvable rather than searching forever.
package solver

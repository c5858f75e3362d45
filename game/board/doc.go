// Package board implements the immutable board/move model for Gridlock
// sliding-block puzzles.
//
// A Board is a rectangular grid holding rigid Pieces that slide only along
// their own axis. One marked piece must reach the goal tile. Boards and
// Pieces are value objects: every transition produces a brand-new Board with
// freshly recomputed occupancy and win flag, so historical states can be
// retained safely (the search engine keeps every discovered Board in its
// transposition table).
//
// Core Operations:
//
//	b := board.New(6, 6, board.Tile{X: 5, Y: 2}, pieces)
//	for _, m := range b.AllMoves() {
//		next := b.Play(m)
//		_ = next.Undo(m) // equals b again
//	}
//
// AllMoves is the single source of move legality. Play trusts its input and
// performs no validation; callers must only pass moves obtained from
// AllMoves on the same Board.
package board

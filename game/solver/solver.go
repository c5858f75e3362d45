package solver

import (
	"errors"
	"time"

	"github.com/gridlock-game/gridlock/game/board"
)

// ErrUnsolvable is returned when the search exhausts every reachable state
// without finding a winning board.
var ErrUnsolvable = errors.New("puzzle has no solution")

// Result holds a completed solve: the winning board, the minimal number of
// slides to reach it, the forward move sequence, and search statistics.
type Result struct {
	Final    *board.Board
	Plies    int
	Moves    []board.Move
	Expanded int
	Elapsed  time.Duration
}

// entry records how a state was first reached. A nil move marks the root.
type entry struct {
	board *board.Board
	move  *board.Move
}

// Solve runs a breadth-first search from start and returns the shortest
// solution. The search is synchronous and single-threaded; the transposition
// table grows monotonically and is discarded when Solve returns.
func Solve(start *board.Board) (*Result, error) {
	began := time.Now()

	if start.IsWon {
		return &Result{Final: start, Plies: 0, Expanded: 1, Elapsed: time.Since(began)}, nil
	}

	visited := map[string]entry{start.Key(): {board: start}}
	frontier := start.FutureBoards()
	plies := 0

	for len(frontier) > 0 {
		// Drop configurations already in the table; each survivor is
		// recorded with the move that discovered it. The ply counter ticks
		// once per level, not once per board.
		survivors := frontier[:0]
		for _, s := range frontier {
			key := s.Board.Key()
			if _, seen := visited[key]; seen {
				continue
			}
			m := s.Move
			visited[key] = entry{board: s.Board, move: &m}
			survivors = append(survivors, s)
		}
		plies++

		var next []board.Successor
		for _, s := range survivors {
			if s.Board.IsWon {
				return &Result{
					Final:    s.Board,
					Plies:    plies,
					Moves:    reconstruct(s.Board, visited),
					Expanded: len(visited),
					Elapsed:  time.Since(began),
				}, nil
			}
			next = append(next, s.Board.FutureBoards()...)
		}
		frontier = next
	}

	return nil, ErrUnsolvable
}

// reconstruct walks from the winning board back to the root through the
// transposition table, undoing each recorded move, then reverses the
// collected moves into the forward solution.
func reconstruct(won *board.Board, visited map[string]entry) []board.Move {
	var history []board.Move
	b := won
	for {
		e, ok := visited[b.Key()]
		if !ok || e.move == nil {
			break
		}
		history = append(history, *e.move)
		b = b.Undo(*e.move)
	}
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	return history
}

package board

import (
	"strconv"
	"strings"
)

// Board is an immutable snapshot of a puzzle: dimensions, goal tile, the
// ordered piece list, and the occupancy set and win flag derived from it.
// Boards are only built through New, which keeps the derived fields
// consistent with the pieces.
type Board struct {
	Width  int
	Height int
	Goal   Tile
	IsWon  bool

	pieces   []Piece
	occupied map[Tile]struct{}
}

// Successor pairs a one-ply successor board with the move that produced it.
type Successor struct {
	Board *Board
	Move  Move
}

// New builds a board from an ordered piece list. The slice is copied, the
// occupancy set is the union of every piece's footprint, and the win flag is
// set when any marked piece covers the goal tile (any part of it, not just
// the leading edge). Pieces are assumed non-overlapping and in bounds; New
// does not check.
func New(width, height int, goal Tile, pieces []Piece) *Board {
	ps := make([]Piece, len(pieces))
	copy(ps, pieces)

	occupied := make(map[Tile]struct{})
	won := false
	for _, p := range ps {
		for _, t := range p.Occupies() {
			occupied[t] = struct{}{}
			if p.Marked && t == goal {
				won = true
			}
		}
	}

	return &Board{
		Width:    width,
		Height:   height,
		Goal:     goal,
		IsWon:    won,
		pieces:   ps,
		occupied: occupied,
	}
}

// Pieces returns a copy of the ordered piece list.
func (b *Board) Pieces() []Piece {
	ps := make([]Piece, len(b.pieces))
	copy(ps, b.pieces)
	return ps
}

// TileExists reports whether t lies within [0,Width) x [0,Height).
func (b *Board) TileExists(t Tile) bool {
	return t.X >= 0 && t.X < b.Width && t.Y >= 0 && t.Y < b.Height
}

// EmptyTile reports whether t is on the board and not covered by any piece.
func (b *Board) EmptyTile(t Tile) bool {
	if !b.TileExists(t) {
		return false
	}
	_, taken := b.occupied[t]
	return !taken
}

// AllMoves generates every legal move on the board. For each piece it probes
// outward from both ends of the footprint along the piece's own axis,
// stopping at the first blocked or off-board tile; each unobstructed step
// length is emitted as its own move, so a run of three free tiles yields
// slides of 1, 2 and 3. The scan is capped by the grid dimension, which
// bounds any probe.
func (b *Board) AllMoves() []Move {
	var moves []Move
	for _, p := range b.pieces {
		x, y := p.Location.X, p.Location.Y

		if p.Direction == Horizontal {
			end := x + p.Size - 1
			for i := 1; i <= b.Width; i++ {
				if !b.EmptyTile(Tile{X: end + i, Y: y}) {
					break
				}
				moves = append(moves, Move{Kind: Right, Tile: p.Location, Steps: i})
			}
			for i := 1; i <= b.Width; i++ {
				if x < i || !b.EmptyTile(Tile{X: x - i, Y: y}) {
					break
				}
				moves = append(moves, Move{Kind: Left, Tile: p.Location, Steps: i})
			}
		} else {
			end := y + p.Size - 1
			for i := 1; i <= b.Height; i++ {
				if y < i || !b.EmptyTile(Tile{X: x, Y: y - i}) {
					break
				}
				moves = append(moves, Move{Kind: Up, Tile: p.Location, Steps: i})
			}
			for i := 1; i <= b.Height; i++ {
				if !b.EmptyTile(Tile{X: x, Y: end + i}) {
					break
				}
				moves = append(moves, Move{Kind: Down, Tile: p.Location, Steps: i})
			}
		}
	}
	return moves
}

// Play applies a move and returns the resulting board. The piece whose
// location equals the move's origin tile is relocated by the move's offset;
// every other piece keeps its value and its position in the sequence, so two
// move histories reaching the same configuration produce identical boards.
// Play does not validate the move; legality is AllMoves' responsibility.
func (b *Board) Play(m Move) *Board {
	pieces := make([]Piece, len(b.pieces))
	for i, p := range b.pieces {
		if p.Location == m.Tile {
			switch m.Kind {
			case Left:
				p.Location.X -= m.Steps
			case Right:
				p.Location.X += m.Steps
			case Up:
				p.Location.Y -= m.Steps
			case Down:
				p.Location.Y += m.Steps
			}
		}
		pieces[i] = p
	}
	return New(b.Width, b.Height, b.Goal, pieces)
}

// Undo reverses a move previously applied with Play.
func (b *Board) Undo(m Move) *Board {
	return b.Play(m.Inverse())
}

// FutureBoards returns every one-ply successor paired with the move that
// produces it, in AllMoves order.
func (b *Board) FutureBoards() []Successor {
	moves := b.AllMoves()
	next := make([]Successor, len(moves))
	for i, m := range moves {
		next[i] = Successor{Board: b.Play(m), Move: m}
	}
	return next
}

// Key returns a canonical encoding of the board state, used as the
// transposition-table key. Dimensions, goal and the ordered piece sequence
// fully determine the state; the occupancy set and win flag are derived from
// the pieces, so they need no encoding of their own.
func (b *Board) Key() string {
	var sb strings.Builder
	sb.Grow(16 + 12*len(b.pieces))
	sb.WriteString(strconv.Itoa(b.Width))
	sb.WriteByte('x')
	sb.WriteString(strconv.Itoa(b.Height))
	sb.WriteByte('@')
	sb.WriteString(strconv.Itoa(b.Goal.X))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(b.Goal.Y))
	for _, p := range b.pieces {
		sb.WriteByte('|')
		if p.Direction == Horizontal {
			sb.WriteByte('h')
		} else {
			sb.WriteByte('v')
		}
		if p.Marked {
			sb.WriteByte('*')
		}
		sb.WriteString(strconv.Itoa(p.Size))
		sb.WriteByte(':')
		sb.WriteString(strconv.Itoa(p.Location.X))
		sb.WriteByte(',')
		sb.WriteString(strconv.Itoa(p.Location.Y))
	}
	return sb.String()
}

// RenderRows returns the board as one string per row: the marked piece as
// 'X', other pieces as letters in sequence order, the goal as '*' when
// uncovered, and empty tiles as '.'.
func (b *Board) RenderRows() []string {
	grid := make([][]byte, b.Height)
	for y := range grid {
		grid[y] = make([]byte, b.Width)
		for x := range grid[y] {
			grid[y][x] = '.'
		}
	}
	if b.TileExists(b.Goal) {
		grid[b.Goal.Y][b.Goal.X] = '*'
	}

	label := byte('a')
	for _, p := range b.pieces {
		c := byte('X')
		if !p.Marked {
			c = label
			label++
			if label > 'z' {
				label = 'a'
			}
		}
		for _, t := range p.Occupies() {
			if b.TileExists(t) {
				grid[t.Y][t.X] = c
			}
		}
	}

	rows := make([]string, b.Height)
	for y, row := range grid {
		rows[y] = string(row)
	}
	return rows
}

// Render returns the full ASCII rendering of the board.
func (b *Board) Render() string {
	return strings.Join(b.RenderRows(), "\n")
}

package board

import "fmt"

// MoveKind is one of the four directional slides.
type MoveKind int

const (
	Left MoveKind = iota
	Right
	Up
	Down
)

// String returns the lowercase direction name.
func (k MoveKind) String() string {
	switch k {
	case Left:
		return "left"
	case Right:
		return "right"
	case Up:
		return "up"
	default:
		return "down"
	}
}

// ParseMoveKind maps a lowercase direction name to its MoveKind.
func ParseMoveKind(s string) (MoveKind, error) {
	switch s {
	case "left":
		return Left, nil
	case "right":
		return Right, nil
	case "up":
		return Up, nil
	case "down":
		return Down, nil
	default:
		return 0, fmt.Errorf("unknown move direction %q", s)
	}
}

// Move slides one piece by Steps tiles in the Kind direction. Tile is the
// current location of the piece being moved and is how Play identifies it.
// Left/Right only ever apply to horizontal pieces and Up/Down to vertical
// ones; AllMoves enforces that, the Move type itself does not.
type Move struct {
	Kind  MoveKind `json:"kind"`
	Tile  Tile     `json:"tile"`
	Steps int      `json:"steps"`
}

// Inverse returns the unique move that undoes m, with its origin shifted to
// where the piece lands. Play(m) followed by Play(m.Inverse()) restores the
// original board.
func (m Move) Inverse() Move {
	switch m.Kind {
	case Left:
		return Move{Kind: Right, Tile: Tile{X: m.Tile.X - m.Steps, Y: m.Tile.Y}, Steps: m.Steps}
	case Right:
		return Move{Kind: Left, Tile: Tile{X: m.Tile.X + m.Steps, Y: m.Tile.Y}, Steps: m.Steps}
	case Up:
		return Move{Kind: Down, Tile: Tile{X: m.Tile.X, Y: m.Tile.Y - m.Steps}, Steps: m.Steps}
	default:
		return Move{Kind: Up, Tile: Tile{X: m.Tile.X, Y: m.Tile.Y + m.Steps}, Steps: m.Steps}
	}
}

// String renders the move as a human-readable line.
func (m Move) String() string {
	return fmt.Sprintf("Move (%d,%d) %s by %d steps", m.Tile.X, m.Tile.Y, m.Kind, m.Steps)
}

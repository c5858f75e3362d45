package puzzle

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gridlock-game/gridlock/game/board"
)

const (
	MinBoardSize = 2
	MaxBoardSize = 32
)

// PieceDef describes one piece in a puzzle file.
type PieceDef struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Size      int    `json:"size"`
	Direction string `json:"direction"` // "horizontal" or "vertical"
	Marked    bool   `json:"marked,omitempty"`
}

// Puzzle is the JSON definition of a puzzle instance.
type Puzzle struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Width       int        `json:"width"`
	Height      int        `json:"height"`
	Goal        board.Tile `json:"goal"`
	Pieces      []PieceDef `json:"pieces"`
}

// direction parses the JSON axis name.
func (pd PieceDef) direction() (board.Direction, error) {
	switch pd.Direction {
	case "horizontal":
		return board.Horizontal, nil
	case "vertical":
		return board.Vertical, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", pd.Direction)
	}
}

// Validate checks a puzzle definition for correctness and playability.
func Validate(p *Puzzle) error {
	if p.Name == "" {
		return fmt.Errorf("puzzle validation: name is required")
	}
	if p.Width < MinBoardSize || p.Width > MaxBoardSize {
		return fmt.Errorf("puzzle validation: width must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, p.Width)
	}
	if p.Height < MinBoardSize || p.Height > MaxBoardSize {
		return fmt.Errorf("puzzle validation: height must be between %d and %d, got %d", MinBoardSize, MaxBoardSize, p.Height)
	}
	if p.Goal.X < 0 || p.Goal.X >= p.Width || p.Goal.Y < 0 || p.Goal.Y >= p.Height {
		return fmt.Errorf("puzzle validation: goal (%d,%d) is off the %dx%d board", p.Goal.X, p.Goal.Y, p.Width, p.Height)
	}
	if len(p.Pieces) == 0 {
		return fmt.Errorf("puzzle validation: at least one piece is required")
	}

	marked := 0
	covered := make(map[board.Tile]int)
	for i, pd := range p.Pieces {
		if pd.Size < 1 {
			return fmt.Errorf("puzzle validation: piece %d size must be positive, got %d", i+1, pd.Size)
		}
		dir, err := pd.direction()
		if err != nil {
			return fmt.Errorf("puzzle validation: piece %d: %v", i+1, err)
		}
		if pd.Marked {
			marked++
		}

		pc := board.Piece{Size: pd.Size, Location: board.Tile{X: pd.X, Y: pd.Y}, Direction: dir, Marked: pd.Marked}
		for _, t := range pc.Occupies() {
			if t.X < 0 || t.X >= p.Width || t.Y < 0 || t.Y >= p.Height {
				return fmt.Errorf("puzzle validation: piece %d hangs off the board at (%d,%d)", i+1, t.X, t.Y)
			}
			if other, taken := covered[t]; taken {
				return fmt.Errorf("puzzle validation: pieces %d and %d overlap at (%d,%d)", other, i+1, t.X, t.Y)
			}
			covered[t] = i + 1
		}
	}

	if marked != 1 {
		return fmt.Errorf("puzzle validation: exactly one marked piece is required, got %d", marked)
	}
	return nil
}

// Board constructs the initial board for the puzzle. The pieces keep the
// order of the definition, which fixes the canonical state identity for the
// whole search.
func (p *Puzzle) Board() *board.Board {
	pieces := make([]board.Piece, 0, len(p.Pieces))
	for _, pd := range p.Pieces {
		dir, _ := pd.direction()
		pieces = append(pieces, board.Piece{
			Size:      pd.Size,
			Location:  board.Tile{X: pd.X, Y: pd.Y},
			Direction: dir,
			Marked:    pd.Marked,
		})
	}
	return board.New(p.Width, p.Height, p.Goal, pieces)
}

// Load reads and validates a puzzle definition from a JSON file.
func Load(path string) (*Puzzle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var p Puzzle
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse puzzle file '%s': %v", path, err)
	}
	if err := Validate(&p); err != nil {
		return nil, fmt.Errorf("invalid puzzle '%s': %v", path, err)
	}
	return &p, nil
}

// Classic returns the built-in 6x6 rush-hour instance used as the default
// puzzle when no definition files are available.
func Classic() *Puzzle {
	return &Puzzle{
		Name:        "Classic",
		Description: "The standard 6x6 gridlock opening: slide the marked car to the right edge of its row.",
		Width:       6,
		Height:      6,
		Goal:        board.Tile{X: 5, Y: 2},
		Pieces: []PieceDef{
			{X: 0, Y: 2, Size: 2, Direction: "horizontal", Marked: true},
			{X: 0, Y: 3, Size: 2, Direction: "horizontal"},
			{X: 0, Y: 4, Size: 2, Direction: "vertical"},
			{X: 1, Y: 4, Size: 2, Direction: "vertical"},
			{X: 2, Y: 0, Size: 2, Direction: "vertical"},
			{X: 2, Y: 2, Size: 2, Direction: "vertical"},
			{X: 2, Y: 4, Size: 2, Direction: "horizontal"},
			{X: 2, Y: 5, Size: 2, Direction: "horizontal"},
			{X: 3, Y: 0, Size: 3, Direction: "horizontal"},
			{X: 3, Y: 3, Size: 2, Direction: "horizontal"},
			{X: 3, Y: 1, Size: 2, Direction: "vertical"},
			{X: 5, Y: 2, Size: 3, Direction: "vertical"},
		},
	}
}

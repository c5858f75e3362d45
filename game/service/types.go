package service

import (
	"time"

	"github.com/gridlock-game/gridlock/game/board"
	"github.com/gridlock-game/gridlock/game/puzzle"
)

// Session is an active puzzle session: the definition it was created from,
// the current (immutable) board, and the moves played so far.
type Session struct {
	ID             string
	PuzzleID       string
	Puzzle         *puzzle.Puzzle
	Board          *board.Board
	Records        []MoveRecord
	Solution       *SolveInfo
	CreatedAt      time.Time
	LastAccessedAt time.Time
}

// MoveRecord is the wire form of a single slide.
type MoveRecord struct {
	Dir        string `json:"dir"` // left | right | up | down
	X          int    `json:"x"`   // origin tile of the piece being moved
	Y          int    `json:"y"`
	Steps      int    `json:"steps"`
	MoveNumber int    `json:"move_number,omitempty"`
	Timestamp  int64  `json:"timestamp,omitempty"`
}

// Move converts the record to a board move.
func (r MoveRecord) Move() (board.Move, error) {
	kind, err := board.ParseMoveKind(r.Dir)
	if err != nil {
		return board.Move{}, err
	}
	return board.Move{Kind: kind, Tile: board.Tile{X: r.X, Y: r.Y}, Steps: r.Steps}, nil
}

// RecordFromMove converts a board move to its wire form.
func RecordFromMove(m board.Move) MoveRecord {
	return MoveRecord{Dir: m.Kind.String(), X: m.Tile.X, Y: m.Tile.Y, Steps: m.Steps}
}

// PieceState is the wire form of a piece on the board.
type PieceState struct {
	X         int    `json:"x"`
	Y         int    `json:"y"`
	Size      int    `json:"size"`
	Direction string `json:"direction"`
	Marked    bool   `json:"marked,omitempty"`
}

// BoardState is the wire form of a board snapshot.
type BoardState struct {
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	Goal      board.Tile   `json:"goal"`
	Won       bool         `json:"won"`
	Pieces    []PieceState `json:"pieces"`
	Grid      []string     `json:"grid"`
	MoveCount int          `json:"move_count"`
}

// StateFromBoard builds the wire form of a board.
func StateFromBoard(b *board.Board, moveCount int) *BoardState {
	pieces := make([]PieceState, 0, len(b.Pieces()))
	for _, p := range b.Pieces() {
		pieces = append(pieces, PieceState{
			X:         p.Location.X,
			Y:         p.Location.Y,
			Size:      p.Size,
			Direction: p.Direction.String(),
			Marked:    p.Marked,
		})
	}
	return &BoardState{
		Width:     b.Width,
		Height:    b.Height,
		Goal:      b.Goal,
		Won:       b.IsWon,
		Pieces:    pieces,
		Grid:      b.RenderRows(),
		MoveCount: moveCount,
	}
}

// SessionInfo provides information about a puzzle session.
type SessionInfo struct {
	ID             string      `json:"id"`
	PuzzleID       string      `json:"puzzle_id"`
	PuzzleName     string      `json:"puzzle_name"`
	CreatedAt      time.Time   `json:"created_at"`
	LastAccessedAt time.Time   `json:"last_accessed_at"`
	BoardState     *BoardState `json:"board_state"`
	Solved         bool        `json:"solved"` // a cached solution exists
}

// MoveResult contains the result of a move or undo operation.
type MoveResult struct {
	Success    bool        `json:"success"`
	BoardState *BoardState `json:"board_state"`
	Message    string      `json:"message,omitempty"`
	Move       *MoveRecord `json:"move,omitempty"`
}

// SolveInfo contains the result of running the solver on a session.
type SolveInfo struct {
	Solvable  bool         `json:"solvable"`
	Plies     int          `json:"plies"`
	Moves     []MoveRecord `json:"moves,omitempty"`
	Expanded  int          `json:"expanded"`
	ElapsedMS int64        `json:"elapsed_ms"`
	Final     *BoardState  `json:"final,omitempty"`
}

// HistoryOptions configures move history retrieval.
type HistoryOptions struct {
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Order string `json:"order"` // "asc" or "desc"
}

// HistoryResponse contains paginated move history.
type HistoryResponse struct {
	Moves       []MoveRecord `json:"moves"`
	TotalMoves  int          `json:"total_moves"`
	Page        int          `json:"page"`
	PageSize    int          `json:"page_size"`
	TotalPages  int          `json:"total_pages"`
	HasNext     bool         `json:"has_next"`
	HasPrevious bool         `json:"has_previous"`
}

package service

import (
	"context"

	"github.com/gridlock-game/gridlock/game/puzzle"
)

// PuzzleService defines all session and puzzle operations exposed to the
// REST and MCP transports.
type PuzzleService interface {
	// Session management
	CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Interactive play
	BoardState(ctx context.Context, sessionID string) (*BoardState, error)
	LegalMoves(ctx context.Context, sessionID string) ([]MoveRecord, error)
	Move(ctx context.Context, sessionID string, req MoveRecord) (*MoveResult, error)
	Undo(ctx context.Context, sessionID string) (*MoveResult, error)
	Reset(ctx context.Context, sessionID string) (*BoardState, error)
	GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error)

	// Solving
	Solve(ctx context.Context, sessionID string) (*SolveInfo, error)

	// Puzzle definitions
	ListPuzzles(ctx context.Context) ([]*puzzle.Info, error)
	LoadPuzzle(ctx context.Context, puzzleID string) (*puzzle.Puzzle, error)
	SavePuzzle(ctx context.Context, puzzleID string, p *puzzle.Puzzle) error
}

// SessionManager defines session storage operations.
type SessionManager interface {
	Create(id, puzzleID string, p *puzzle.Puzzle) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	UpdateLastAccessed(id string) error
	Save(id string) error
}

// PuzzleManager handles puzzle definition loading.
type PuzzleManager interface {
	LoadPuzzle(name string) (*puzzle.Puzzle, error)
	ListPuzzles() ([]*puzzle.Info, error)
	GetDefault() *puzzle.Puzzle
	SavePuzzle(name string, p *puzzle.Puzzle) error
}

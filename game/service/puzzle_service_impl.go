package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gridlock-game/gridlock/game/puzzle"
	"github.com/gridlock-game/gridlock/game/solver"
)

// puzzleServiceImpl implements the PuzzleService interface.
type puzzleServiceImpl struct {
	sessions SessionManager
	puzzles  PuzzleManager
	mu       sync.RWMutex
}

// NewPuzzleService creates a new puzzle service instance.
func NewPuzzleService(sessions SessionManager, puzzles PuzzleManager) PuzzleService {
	return &puzzleServiceImpl{
		sessions: sessions,
		puzzles:  puzzles,
	}
}

// CreateSession creates a new session for the named puzzle, or for the
// built-in default when puzzleID is empty.
func (s *puzzleServiceImpl) CreateSession(ctx context.Context, puzzleID string) (*SessionInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var p *puzzle.Puzzle
	var err error
	if puzzleID != "" {
		p, err = s.puzzles.LoadPuzzle(puzzleID)
		if err != nil {
			if errors.Is(err, puzzle.ErrPuzzleNotFound) {
				if infos, listErr := s.puzzles.ListPuzzles(); listErr == nil && len(infos) > 0 {
					ids := make([]string, 0, len(infos))
					for _, info := range infos {
						ids = append(ids, info.PuzzleID)
					}
					return nil, fmt.Errorf("puzzle '%s' not found. Available puzzles: %v", puzzleID, ids)
				}
			}
			return nil, fmt.Errorf("failed to load puzzle %s: %w", puzzleID, err)
		}
	} else {
		p = s.puzzles.GetDefault()
		puzzleID = "classic"
	}

	sess, err := s.sessions.Create("", puzzleID, p)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return sessionInfo(sess), nil
}

// GetSession retrieves session information.
func (s *puzzleServiceImpl) GetSession(ctx context.Context, sessionID string) (*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	return sessionInfo(sess), nil
}

// ListSessions returns all active sessions.
func (s *puzzleServiceImpl) ListSessions(ctx context.Context) ([]*SessionInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := s.sessions.List()
	result := make([]*SessionInfo, 0, len(sessions))
	for _, sess := range sessions {
		result = append(result, sessionInfo(sess))
	}
	return result, nil
}

// DeleteSession removes a session.
func (s *puzzleServiceImpl) DeleteSession(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sessions.Delete(sessionID)
}

// BoardState returns the current board of a session.
func (s *puzzleServiceImpl) BoardState(ctx context.Context, sessionID string) (*BoardState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	return StateFromBoard(sess.Board, len(sess.Records)), nil
}

// LegalMoves returns every legal move on the session's current board.
func (s *puzzleServiceImpl) LegalMoves(ctx context.Context, sessionID string) ([]MoveRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	moves := sess.Board.AllMoves()
	records := make([]MoveRecord, len(moves))
	for i, m := range moves {
		records[i] = RecordFromMove(m)
	}
	return records, nil
}

// Move applies a single slide to the session's board. The move is only
// applied when it appears in the board's generated move list; the board
// itself performs no legality checks.
func (s *puzzleServiceImpl) Move(ctx context.Context, sessionID string, req MoveRecord) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	m, err := req.Move()
	if err != nil {
		return nil, err
	}

	legal := false
	for _, candidate := range sess.Board.AllMoves() {
		if candidate == m {
			legal = true
			break
		}
	}
	if !legal {
		return &MoveResult{
			Success:    false,
			BoardState: StateFromBoard(sess.Board, len(sess.Records)),
			Message:    fmt.Sprintf("illegal move: %s", m),
		}, nil
	}

	sess.Board = sess.Board.Play(m)
	record := RecordFromMove(m)
	record.MoveNumber = len(sess.Records) + 1
	record.Timestamp = time.Now().Unix()
	sess.Records = append(sess.Records, record)
	sess.Solution = nil // board changed, cached solution is stale

	msg := fmt.Sprintf("played %s", m)
	if sess.Board.IsWon {
		msg = fmt.Sprintf("solved in %d moves", len(sess.Records))
	}

	s.sessions.Save(sessionID)

	return &MoveResult{
		Success:    true,
		BoardState: StateFromBoard(sess.Board, len(sess.Records)),
		Message:    msg,
		Move:       &record,
	}, nil
}

// Undo reverses the most recent move of the session.
func (s *puzzleServiceImpl) Undo(ctx context.Context, sessionID string) (*MoveResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if len(sess.Records) == 0 {
		return &MoveResult{
			Success:    false,
			BoardState: StateFromBoard(sess.Board, 0),
			Message:    "nothing to undo",
		}, nil
	}

	last := sess.Records[len(sess.Records)-1]
	m, err := last.Move()
	if err != nil {
		return nil, fmt.Errorf("corrupt move record: %w", err)
	}

	sess.Board = sess.Board.Undo(m)
	sess.Records = sess.Records[:len(sess.Records)-1]
	sess.Solution = nil

	s.sessions.Save(sessionID)

	return &MoveResult{
		Success:    true,
		BoardState: StateFromBoard(sess.Board, len(sess.Records)),
		Message:    fmt.Sprintf("undid %s", m),
		Move:       &last,
	}, nil
}

// Reset restores the session to the puzzle's initial board.
func (s *puzzleServiceImpl) Reset(ctx context.Context, sessionID string) (*BoardState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	sess.Board = sess.Puzzle.Board()
	sess.Records = nil
	sess.Solution = nil

	s.sessions.Save(sessionID)

	return StateFromBoard(sess.Board, 0), nil
}

// Solve runs the search engine from the session's current board and caches
// the result until the board changes. An unsolvable board is reported as a
// result, not an error.
func (s *puzzleServiceImpl) Solve(ctx context.Context, sessionID string) (*SolveInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}
	s.sessions.UpdateLastAccessed(sessionID)

	if sess.Solution != nil {
		return sess.Solution, nil
	}

	result, err := solver.Solve(sess.Board)
	if err != nil {
		if errors.Is(err, solver.ErrUnsolvable) {
			info := &SolveInfo{Solvable: false}
			sess.Solution = info
			return info, nil
		}
		return nil, err
	}

	moves := make([]MoveRecord, len(result.Moves))
	for i, m := range result.Moves {
		moves[i] = RecordFromMove(m)
		moves[i].MoveNumber = i + 1
	}

	info := &SolveInfo{
		Solvable:  true,
		Plies:     result.Plies,
		Moves:     moves,
		Expanded:  result.Expanded,
		ElapsedMS: result.Elapsed.Milliseconds(),
		Final:     StateFromBoard(result.Final, len(sess.Records)+result.Plies),
	}
	sess.Solution = info
	return info, nil
}

// GetMoveHistory returns paginated move history for a session.
func (s *puzzleServiceImpl) GetMoveHistory(ctx context.Context, sessionID string, opts HistoryOptions) (*HistoryResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, err := s.sessions.Get(sessionID)
	if err != nil {
		return nil, fmt.Errorf("session not found: %w", err)
	}

	if opts.Page < 1 {
		opts.Page = 1
	}
	if opts.Limit < 1 {
		opts.Limit = 20
	}
	if opts.Order != "asc" {
		opts.Order = "desc"
	}

	total := len(sess.Records)
	ordered := make([]MoveRecord, total)
	copy(ordered, sess.Records)
	if opts.Order == "desc" {
		for i, j := 0, total-1; i < j; i, j = i+1, j-1 {
			ordered[i], ordered[j] = ordered[j], ordered[i]
		}
	}

	totalPages := (total + opts.Limit - 1) / opts.Limit
	if totalPages == 0 {
		totalPages = 1
	}

	start := (opts.Page - 1) * opts.Limit
	if start > total {
		start = total
	}
	end := start + opts.Limit
	if end > total {
		end = total
	}

	return &HistoryResponse{
		Moves:       ordered[start:end],
		TotalMoves:  total,
		Page:        opts.Page,
		PageSize:    opts.Limit,
		TotalPages:  totalPages,
		HasNext:     opts.Page < totalPages,
		HasPrevious: opts.Page > 1,
	}, nil
}

// ListPuzzles returns listing info for every available puzzle definition.
func (s *puzzleServiceImpl) ListPuzzles(ctx context.Context) ([]*puzzle.Info, error) {
	return s.puzzles.ListPuzzles()
}

// LoadPuzzle loads a puzzle definition by ID.
func (s *puzzleServiceImpl) LoadPuzzle(ctx context.Context, puzzleID string) (*puzzle.Puzzle, error) {
	return s.puzzles.LoadPuzzle(puzzleID)
}

// SavePuzzle validates and stores a puzzle definition.
func (s *puzzleServiceImpl) SavePuzzle(ctx context.Context, puzzleID string, p *puzzle.Puzzle) error {
	return s.puzzles.SavePuzzle(puzzleID, p)
}

// sessionInfo builds the wire form of a session.
func sessionInfo(sess *Session) *SessionInfo {
	return &SessionInfo{
		ID:             sess.ID,
		PuzzleID:       sess.PuzzleID,
		PuzzleName:     sess.Puzzle.Name,
		CreatedAt:      sess.CreatedAt,
		LastAccessedAt: sess.LastAccessedAt,
		BoardState:     StateFromBoard(sess.Board, len(sess.Records)),
		Solved:         sess.Solution != nil && sess.Solution.Solvable,
	}
}

package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlock-game/gridlock/game/service"
)

// FilePersistence implements SessionPersistence using file system storage.
type FilePersistence struct {
	sessionsDir   string
	puzzleManager service.PuzzleManager
}

// NewFilePersistence creates a new file-based session persistence layer.
func NewFilePersistence(sessionsDir string, puzzleManager service.PuzzleManager) (*FilePersistence, error) {
	if err := os.MkdirAll(sessionsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create sessions directory: %w", err)
	}

	return &FilePersistence{
		sessionsDir:   sessionsDir,
		puzzleManager: puzzleManager,
	}, nil
}

// Save persists a session to a JSON file. Only the puzzle ID and the move
// records are written; the board is reconstructed on load.
func (fp *FilePersistence) Save(session *service.Session) error {
	if session == nil {
		return fmt.Errorf("session cannot be nil")
	}

	data := PersistedSessionData{
		ID:             session.ID,
		PuzzleID:       session.PuzzleID,
		CreatedAt:      session.CreatedAt,
		LastAccessedAt: session.LastAccessedAt,
		Moves:          session.Records,
	}

	jsonData, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal session data: %w", err)
	}

	if err := os.WriteFile(fp.getFilePath(session.ID), jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write session file: %w", err)
	}
	return nil
}

// Load retrieves a session from a JSON file and replays its recorded moves
// to rebuild the current board.
func (fp *FilePersistence) Load(id string) (*service.Session, error) {
	filePath := fp.getFilePath(id)

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, ErrSessionNotFound
	}

	jsonData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var data PersistedSessionData
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session data: %w", err)
	}

	p, err := fp.puzzleManager.LoadPuzzle(data.PuzzleID)
	if err != nil {
		if data.PuzzleID == "classic" {
			p = fp.puzzleManager.GetDefault()
		} else {
			return nil, fmt.Errorf("failed to load puzzle '%s': %w", data.PuzzleID, err)
		}
	}

	// Replay the recorded moves from the initial position. The records were
	// legal when written, so Play is applied directly.
	b := p.Board()
	for i, record := range data.Moves {
		m, err := record.Move()
		if err != nil {
			return nil, fmt.Errorf("corrupt move record %d in session %s: %w", i+1, id, err)
		}
		b = b.Play(m)
	}

	return &service.Session{
		ID:             data.ID,
		PuzzleID:       data.PuzzleID,
		Puzzle:         p,
		Board:          b,
		Records:        data.Moves,
		CreatedAt:      data.CreatedAt,
		LastAccessedAt: data.LastAccessedAt,
	}, nil
}

// Delete removes a session file.
func (fp *FilePersistence) Delete(id string) error {
	if !fp.Exists(id) {
		return ErrSessionNotFound
	}

	if err := os.Remove(fp.getFilePath(id)); err != nil {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}

// ListAll returns all persisted session IDs.
func (fp *FilePersistence) ListAll() ([]string, error) {
	entries, err := os.ReadDir(fp.sessionsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read sessions directory: %w", err)
	}

	var sessionIDs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if name := entry.Name(); strings.HasSuffix(name, ".json") {
			sessionIDs = append(sessionIDs, strings.TrimSuffix(name, ".json"))
		}
	}
	return sessionIDs, nil
}

// Exists checks if a session file exists.
func (fp *FilePersistence) Exists(id string) bool {
	_, err := os.Stat(fp.getFilePath(id))
	return err == nil
}

// getFilePath returns the full file path for a session ID.
func (fp *FilePersistence) getFilePath(id string) string {
	return filepath.Join(fp.sessionsDir, fmt.Sprintf("%s.json", id))
}

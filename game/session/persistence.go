package session

import (
	"time"

	"github.com/gridlock-game/gridlock/game/service"
)

// SessionPersistence defines the interface for persisting sessions.
type SessionPersistence interface {
	// Save persists a session to storage
	Save(session *service.Session) error

	// Load retrieves a session from storage by ID
	Load(id string) (*service.Session, error)

	// Delete removes a session from storage
	Delete(id string) error

	// ListAll returns all persisted session IDs
	ListAll() ([]string, error)

	// Exists checks if a session exists in storage
	Exists(id string) bool
}

// PersistedSessionData is the JSON structure for persisted sessions. The
// board itself is not stored; it is rebuilt by replaying Moves from the
// puzzle's initial position.
type PersistedSessionData struct {
	ID             string               `json:"id"`
	PuzzleID       string               `json:"puzzle_id"`
	CreatedAt      time.Time            `json:"created_at"`
	LastAccessedAt time.Time            `json:"last_accessed_at"`
	Moves          []service.MoveRecord `json:"moves"`
}

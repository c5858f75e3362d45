package puzzle

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var (
	ErrPuzzleNotFound = errors.New("puzzle not found")
	ErrInvalidPuzzle  = errors.New("invalid puzzle")
)

// Info is a lightweight listing entry for a puzzle definition.
type Info struct {
	Filename    string `json:"filename"`
	PuzzleID    string `json:"puzzle_id"` // identifier used for session creation
	Name        string `json:"name"`      // display name
	Description string `json:"description"`
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	PieceCount  int    `json:"piece_count"`
}

// Manager handles puzzle definition loading and caching.
type Manager struct {
	puzzleDir string
	puzzles   map[string]*Puzzle
	mu        sync.RWMutex
}

// NewManager creates a puzzle manager rooted at puzzleDir. The directory is
// created if it does not exist so SavePuzzle always has somewhere to write.
func NewManager(puzzleDir string) (*Manager, error) {
	if err := os.MkdirAll(puzzleDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create puzzle directory: %w", err)
	}

	return &Manager{
		puzzleDir: puzzleDir,
		puzzles:   make(map[string]*Puzzle),
	}, nil
}

// LoadPuzzle loads a puzzle definition by ID (filename without extension).
func (m *Manager) LoadPuzzle(name string) (*Puzzle, error) {
	name = strings.TrimSuffix(name, ".json")

	m.mu.RLock()
	if p, exists := m.puzzles[name]; exists {
		m.mu.RUnlock()
		return p, nil
	}
	m.mu.RUnlock()

	path := filepath.Join(m.puzzleDir, name+".json")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrPuzzleNotFound, name)
	}

	p, err := Load(path)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.puzzles[name] = p
	m.mu.Unlock()

	return p, nil
}

// GetDefault returns the built-in classic puzzle.
func (m *Manager) GetDefault() *Puzzle {
	return Classic()
}

// ListPuzzles returns listing info for every definition in the directory.
func (m *Manager) ListPuzzles() ([]*Info, error) {
	entries, err := os.ReadDir(m.puzzleDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read puzzle directory: %w", err)
	}

	var infos []*Info
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		p, err := m.LoadPuzzle(id)
		if err != nil {
			// Skip unreadable or invalid files rather than failing the listing.
			continue
		}

		infos = append(infos, &Info{
			Filename:    entry.Name(),
			PuzzleID:    id,
			Name:        p.Name,
			Description: p.Description,
			Width:       p.Width,
			Height:      p.Height,
			PieceCount:  len(p.Pieces),
		})
	}

	return infos, nil
}

// SavePuzzle validates and writes a puzzle definition to the directory,
// then refreshes the cache entry.
func (m *Manager) SavePuzzle(name string, p *Puzzle) error {
	if err := Validate(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}

	name = strings.TrimSuffix(name, ".json")
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal puzzle: %w", err)
	}

	path := filepath.Join(m.puzzleDir, name+".json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write puzzle file: %w", err)
	}

	m.mu.Lock()
	m.puzzles[name] = p
	m.mu.Unlock()

	return nil
}

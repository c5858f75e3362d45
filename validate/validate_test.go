package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeTempPuzzle(t *testing.T, content string) string {
	t.Helper()

	tmpfile, err := os.CreateTemp("", "test_puzzle_*.json")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatalf("Failed to write puzzle: %v", err)
	}
	tmpfile.Close()
	return tmpfile.Name()
}

func TestValidatePuzzle_ValidPuzzle(t *testing.T) {
	validPuzzle := `{
		"name": "Test Puzzle",
		"description": "Test puzzle definition",
		"width": 4,
		"height": 3,
		"goal": {"x": 3, "y": 1},
		"pieces": [
			{"x": 0, "y": 1, "size": 2, "direction": "horizontal", "marked": true},
			{"x": 3, "y": 0, "size": 1, "direction": "vertical"}
		]
	}`

	path := writeTempPuzzle(t, validPuzzle)

	result := validatePuzzle(path)
	if !result.Valid {
		t.Errorf("Expected valid puzzle, but got errors: %v", result.Errors)
	}

	if result.File != filepath.Base(path) {
		t.Errorf("Expected file name %s, got %s", filepath.Base(path), result.File)
	}
}

func TestValidatePuzzle_InvalidJSON(t *testing.T) {
	path := writeTempPuzzle(t, `{"name": "test", invalid json}`)

	result := validatePuzzle(path)
	if result.Valid {
		t.Error("Expected invalid puzzle due to bad JSON")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "failed to parse") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected parse error, got: %v", result.Errors)
	}
}

func TestValidatePuzzle_MissingFile(t *testing.T) {
	result := validatePuzzle("/non/existent/file.json")
	if result.Valid {
		t.Error("Expected invalid result for missing file")
	}
}

func TestValidatePuzzle_NoMarkedPiece(t *testing.T) {
	puzzle := `{
		"name": "Test",
		"description": "Test",
		"width": 4,
		"height": 3,
		"goal": {"x": 3, "y": 1},
		"pieces": [
			{"x": 0, "y": 1, "size": 2, "direction": "horizontal"}
		]
	}`

	path := writeTempPuzzle(t, puzzle)

	result := validatePuzzle(path)
	if result.Valid {
		t.Error("Expected invalid puzzle due to missing marked piece")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "exactly one marked piece") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected 'exactly one marked piece' error, got: %v", result.Errors)
	}
}

func TestValidatePuzzle_OverlappingPieces(t *testing.T) {
	puzzle := `{
		"name": "Test",
		"description": "Test",
		"width": 4,
		"height": 3,
		"goal": {"x": 3, "y": 1},
		"pieces": [
			{"x": 0, "y": 1, "size": 2, "direction": "horizontal", "marked": true},
			{"x": 1, "y": 0, "size": 2, "direction": "vertical"}
		]
	}`

	path := writeTempPuzzle(t, puzzle)

	result := validatePuzzle(path)
	if result.Valid {
		t.Error("Expected invalid puzzle due to overlapping pieces")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "overlap") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected overlap error, got: %v", result.Errors)
	}
}

func TestValidatePuzzle_MarkedPieceOffGoalAxis(t *testing.T) {
	puzzle := `{
		"name": "Test",
		"description": "Test",
		"width": 4,
		"height": 3,
		"goal": {"x": 3, "y": 2},
		"pieces": [
			{"x": 0, "y": 1, "size": 2, "direction": "horizontal", "marked": true}
		]
	}`

	path := writeTempPuzzle(t, puzzle)

	result := validatePuzzle(path)
	if result.Valid {
		t.Error("Expected invalid puzzle: marked piece can never reach the goal row")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "never reaches goal row") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected winnability error, got: %v", result.Errors)
	}
}

func TestValidatePuzzle_PieceOffBoard(t *testing.T) {
	puzzle := `{
		"name": "Test",
		"description": "Test",
		"width": 4,
		"height": 3,
		"goal": {"x": 3, "y": 1},
		"pieces": [
			{"x": 3, "y": 1, "size": 2, "direction": "horizontal", "marked": true}
		]
	}`

	path := writeTempPuzzle(t, puzzle)

	result := validatePuzzle(path)
	if result.Valid {
		t.Error("Expected invalid puzzle due to piece hanging off the board")
	}

	found := false
	for _, err := range result.Errors {
		if strings.Contains(err, "hangs off the board") {
			found = true
			break
		}
	}
	if !found {
		t.Errorf("Expected out-of-bounds error, got: %v", result.Errors)
	}
}

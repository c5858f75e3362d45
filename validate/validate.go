// Command validate provides a small CLI that validates puzzle definition JSON
// files in the ../puzzles directory. It checks:
//   - JSON structure and required fields
//   - Board dimensions within supported bounds
//   - Goal tile inside the board
//   - Piece footprints in bounds, non-overlapping, on a single axis
//   - Exactly one marked piece
//   - Winnability: the marked piece's axis must pass through the goal tile
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gridlock-game/gridlock/game/puzzle"
)

// ValidationResult captures the outcome of validating a single file.
// If Valid is true, Errors contains informational messages; otherwise it
// accumulates the validation errors that were found.
type ValidationResult struct {
	File   string
	Valid  bool
	Errors []string
}

// validatePuzzle loads and validates a single puzzle JSON file.
// Structural checks come from the puzzle package; on success this adds a
// winnability check and informational summary lines.
func validatePuzzle(filePath string) ValidationResult {
	result := ValidationResult{
		File:   filepath.Base(filePath),
		Valid:  true,
		Errors: []string{},
	}

	p, err := puzzle.Load(filePath)
	if err != nil {
		result.Valid = false
		result.Errors = append(result.Errors, err.Error())
		return result
	}

	// Winnability: the marked piece slides along one axis only, so its axis
	// must pass through the goal tile for the puzzle to be solvable at all.
	for _, def := range p.Pieces {
		if !def.Marked {
			continue
		}
		switch strings.ToLower(def.Direction) {
		case "horizontal":
			if def.Y != p.Goal.Y {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Marked piece row %d never reaches goal row %d", def.Y, p.Goal.Y))
			}
		case "vertical":
			if def.X != p.Goal.X {
				result.Valid = false
				result.Errors = append(result.Errors, fmt.Sprintf("Marked piece column %d never reaches goal column %d", def.X, p.Goal.X))
			}
		}
	}

	// Add informational data
	if result.Valid {
		horizontal := 0
		vertical := 0
		occupied := 0
		for _, def := range p.Pieces {
			if strings.ToLower(def.Direction) == "horizontal" {
				horizontal++
			} else {
				vertical++
			}
			occupied += def.Size
		}

		result.Errors = append(result.Errors, fmt.Sprintf("✓ Name: %s", p.Name))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Grid: %dx%d", p.Width, p.Height))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Goal: (%d,%d)", p.Goal.X, p.Goal.Y))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Pieces: %d (%d horizontal, %d vertical)", len(p.Pieces), horizontal, vertical))
		result.Errors = append(result.Errors, fmt.Sprintf("✓ Density: %d/%d tiles occupied", occupied, p.Width*p.Height))
	}

	return result
}

// main scans ../puzzles for *.json files and validates each one, printing a
// concise report and exiting with non-zero status if any are invalid.
func main() {
	puzzleDir := "../puzzles"
	if len(os.Args) > 1 {
		puzzleDir = os.Args[1]
	}

	files, err := filepath.Glob(filepath.Join(puzzleDir, "*.json"))
	if err != nil {
		fmt.Printf("Error finding puzzle files: %v\n", err)
		os.Exit(1)
	}

	allValid := true
	for _, file := range files {
		result := validatePuzzle(file)

		fmt.Printf("\n%s %s\n", strings.Repeat("=", 20), result.File)

		if result.Valid {
			fmt.Println("✅ VALID")
			for _, info := range result.Errors {
				fmt.Println("  " + info)
			}
		} else {
			fmt.Println("❌ INVALID")
			allValid = false
			for _, err := range result.Errors {
				if !strings.HasPrefix(err, "✓") {
					fmt.Println("  ❌ " + err)
				}
			}
		}
	}

	fmt.Printf("\n%s\n", strings.Repeat("=", 40))
	if allValid {
		fmt.Println("✅ All puzzles are valid!")
	} else {
		fmt.Println("❌ Some puzzles have errors")
		os.Exit(1)
	}
}

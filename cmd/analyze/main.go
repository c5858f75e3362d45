// Command analyze prints quick, human-readable heuristics about puzzle
// definition files. It summarizes dimensions, piece counts by orientation,
// tile density, and the branching factor of the opening position; with
// --solve it also runs the solver and reports the optimal solution length.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/gridlock-game/gridlock/game/board"
	"github.com/gridlock-game/gridlock/game/puzzle"
	"github.com/gridlock-game/gridlock/game/solver"
)

func main() {
	cmd := &cli.Command{
		Name:  "analyze",
		Usage: "summarize puzzle definition files",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "puzzle-dir",
				Value: "puzzles",
				Usage: "directory containing puzzle JSON files",
			},
			&cli.BoolFlag{
				Name:  "solve",
				Usage: "run the solver on each puzzle and report the optimal solution length",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			dir := cmd.String("puzzle-dir")
			files, err := filepath.Glob(filepath.Join(dir, "*.json"))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no puzzle files found in %s", dir)
			}

			for _, file := range files {
				fmt.Printf("\n=== Analyzing %s ===\n", filepath.Base(file))
				analyzePuzzle(file, cmd.Bool("solve"))
			}
			return nil
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

// analyzePuzzle prints heuristics for a single puzzle file. Errors are
// reported inline so one bad file does not abort the whole scan.
func analyzePuzzle(path string, solve bool) {
	p, err := puzzle.Load(path)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}

	horizontal := 0
	vertical := 0
	occupied := 0
	sizes := make(map[int]int)
	for _, def := range p.Pieces {
		if strings.ToLower(def.Direction) == "horizontal" {
			horizontal++
		} else {
			vertical++
		}
		occupied += def.Size
		sizes[def.Size]++
	}

	b := p.Board()

	fmt.Printf("Name: %s\n", p.Name)
	fmt.Printf("Grid: %d x %d\n", p.Width, p.Height)
	fmt.Printf("Goal: (%d, %d)\n", p.Goal.X, p.Goal.Y)
	fmt.Printf("Pieces: %d (%d horizontal, %d vertical)\n", len(p.Pieces), horizontal, vertical)
	for size, count := range sizes {
		fmt.Printf("  size %d: %d\n", size, count)
	}
	fmt.Printf("Density: %d/%d tiles occupied (%.0f%%)\n",
		occupied, p.Width*p.Height, 100*float64(occupied)/float64(p.Width*p.Height))
	fmt.Printf("Opening moves: %d\n", len(b.AllMoves()))
	fmt.Printf("Marked piece moves: %d\n", countMarkedMoves(b))

	if solve {
		result, err := solver.Solve(b)
		if err == solver.ErrUnsolvable {
			fmt.Println("Solution: NONE (unsolvable)")
			return
		}
		if err != nil {
			fmt.Printf("Solver error: %v\n", err)
			return
		}
		fmt.Printf("Solution: %d moves (%d states expanded in %v)\n",
			result.Plies, result.Expanded, result.Elapsed)
	}
}

// countMarkedMoves counts the opening moves available to the marked piece.
func countMarkedMoves(b *board.Board) int {
	origins := make(map[board.Tile]bool)
	for _, p := range b.Pieces() {
		if p.Marked {
			origins[p.Location] = true
		}
	}

	count := 0
	for _, m := range b.AllMoves() {
		if origins[m.Tile] {
			count++
		}
	}
	return count
}

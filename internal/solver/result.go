package solver

import (
	"time"

	"github.com/jb361/sudoku-solver/internal/grid"
)

// Outcome classifies the result of a solve.
type Outcome int

const (
	// Solved means exactly one completion exists; Result.Solution holds it.
	Solved Outcome = iota
	// Unsolvable means no completion satisfies the constraints.
	Unsolvable
	// NotUnique means at least two distinct completions exist. The search
	// stops as soon as the second one is found.
	NotUnique
)

// String returns a short lower-case label for the outcome.
func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Unsolvable:
		return "unsolvable"
	case NotUnique:
		return "not-unique"
	default:
		return "unknown"
	}
}

// Stats captures performance characteristics of a solve.
type Stats struct {
	Nodes    int
	Duration time.Duration
}

// Result is the full answer to a solve: the outcome, the completed grid
// when the outcome is Solved, and search statistics.
type Result struct {
	Outcome  Outcome
	Solution *grid.Grid
	Stats    Stats
}

package solver

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/jb361/sudoku-solver/internal/grid"
)

// A classic published puzzle and its unique solution.
const (
	easyPuzzle   = "53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79"
	easySolution = "534678912672195348198342567859761423426853791713924856961537284287419635345286179"
)

// A 17-clue minimal puzzle (the fewest clues a unique puzzle can have).
const (
	hardPuzzle   = "...8.1..........435............7.8........1...2..3....6......75..34........2..6.."
	hardSolution = "237841569186795243594326718315674892469582137728139456642918375853467921971253684"
)

func mustParse(t *testing.T, s string) *grid.Grid {
	t.Helper()
	g, err := grid.FromString(s)
	if err != nil {
		t.Fatalf("FromString() error: %v", err)
	}
	return g
}

func TestSolvePuzzles(t *testing.T) {
	tests := []struct {
		name   string
		puzzle string
		want   string
	}{
		{"easy published puzzle", easyPuzzle, easySolution},
		{"17-clue minimal puzzle", hardPuzzle, hardSolution},
		{"one blank cell", easySolution[:40] + "." + easySolution[41:], easySolution},
		{"already solved", easySolution, easySolution},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Solve(mustParse(t, tt.puzzle))
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if result.Outcome != Solved {
				t.Fatalf("Outcome = %v, want %v", result.Outcome, Solved)
			}
			if got := result.Solution.String(); got != tt.want {
				t.Errorf("solution = %s, want %s", got, tt.want)
			}
			assertWellFormed(t, result.Solution)
		})
	}
}

// assertWellFormed checks that every row, column, and box contains each of
// 1-9 exactly once.
func assertWellFormed(t *testing.T, g *grid.Grid) {
	t.Helper()
	for row := 0; row < 9; row++ {
		var rowMask, colMask uint
		for i := 0; i < 9; i++ {
			rowMask |= 1 << (g.Get(grid.MakePos(row, i)) - 1)
			colMask |= 1 << (g.Get(grid.MakePos(i, row)) - 1)
		}
		if rowMask != 0x1FF {
			t.Errorf("row %d does not contain all nine digits", row)
		}
		if colMask != 0x1FF {
			t.Errorf("column %d does not contain all nine digits", row)
		}
	}
	for box := 0; box < 9; box++ {
		var mask uint
		for i := 0; i < 9; i++ {
			pos := grid.MakePos(3*(box/3)+i/3, 3*(box%3)+i%3)
			mask |= 1 << (g.Get(pos) - 1)
		}
		if mask != 0x1FF {
			t.Errorf("box %d does not contain all nine digits", box)
		}
	}
}

func TestSolveUnsolvable(t *testing.T) {
	// Row 0 holds 1-8; the 9 below empties (0,8)'s candidate set. The
	// givens themselves are consistent, so this must come back as an
	// outcome, not an error.
	puzzle := "12345678." + "........9" + strings.Repeat(".", 63)

	result, err := Solve(mustParse(t, puzzle))
	if err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if result.Outcome != Unsolvable {
		t.Errorf("Outcome = %v, want %v", result.Outcome, Unsolvable)
	}
	if result.Solution != nil {
		t.Error("Solution should be nil for an unsolvable puzzle")
	}
}

func TestSolveNotUnique(t *testing.T) {
	tests := []struct {
		name   string
		puzzle string
	}{
		// Blanking the rectangle (3,5)(3,8)(4,5)(4,8) of the solved grid
		// leaves the 1/3 pair free to swap, so exactly two completions
		// exist.
		{"blank grid", strings.Repeat(".", grid.CellCount)},
		{"interchangeable pair", blankCells(easySolution, 32, 35, 41, 44)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start := time.Now()
			result, err := Solve(mustParse(t, tt.puzzle))
			if err != nil {
				t.Fatalf("Solve() error: %v", err)
			}
			if result.Outcome != NotUnique {
				t.Fatalf("Outcome = %v, want %v", result.Outcome, NotUnique)
			}
			// The early exit must kick in; enumerating completions of a
			// blank grid would run effectively forever.
			if elapsed := time.Since(start); elapsed > 5*time.Second {
				t.Errorf("solve took %v, early exit did not trigger", elapsed)
			}
		})
	}
}

func TestInvalidGivensFailFast(t *testing.T) {
	// Two 5s in one row are rejected at parse time, before any search.
	if _, err := grid.FromString("55" + strings.Repeat(".", grid.CellCount-2)); !errors.Is(err, grid.ErrInvalidPuzzle) {
		t.Errorf("FromString() error = %v, want %v", err, grid.ErrInvalidPuzzle)
	}
}

// blankCells returns s with the given positions replaced by '.'.
func blankCells(s string, positions ...int) string {
	out := []byte(s)
	for _, p := range positions {
		out[p] = '.'
	}
	return string(out)
}

func TestSolveDeterministic(t *testing.T) {
	first, err := Solve(mustParse(t, hardPuzzle))
	if err != nil {
		t.Fatalf("first Solve() error: %v", err)
	}
	second, err := Solve(mustParse(t, hardPuzzle))
	if err != nil {
		t.Fatalf("second Solve() error: %v", err)
	}

	if first.Outcome != second.Outcome {
		t.Fatalf("outcomes differ: %v vs %v", first.Outcome, second.Outcome)
	}
	if first.Solution.String() != second.Solution.String() {
		t.Errorf("solutions differ:\n%s\n%s", first.Solution.String(), second.Solution.String())
	}
	if first.Stats.Nodes != second.Stats.Nodes {
		t.Errorf("node counts differ: %d vs %d", first.Stats.Nodes, second.Stats.Nodes)
	}
}

func TestSolveDoesNotMutateInput(t *testing.T) {
	g := mustParse(t, easyPuzzle)
	before := g.String()

	if _, err := Solve(g); err != nil {
		t.Fatalf("Solve() error: %v", err)
	}
	if got := g.String(); got != before {
		t.Errorf("input grid mutated: %s", got)
	}
}

func TestSolveNodeLimit(t *testing.T) {
	opts := &Options{NodeLimit: 1}
	_, err := New(mustParse(t, strings.Repeat(".", grid.CellCount)), opts).Solve(context.Background())
	if !errors.Is(err, ErrNodeLimit) {
		t.Errorf("Solve() error = %v, want %v", err, ErrNodeLimit)
	}
}

func TestSolveTimeout(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(mustParse(t, strings.Repeat(".", grid.CellCount)), &Options{}).Solve(ctx)
	if !errors.Is(err, ErrTimeout) {
		t.Errorf("Solve() error = %v, want %v", err, ErrTimeout)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Solved, "solved"},
		{Unsolvable, "unsolvable"},
		{NotUnique, "not-unique"},
		{Outcome(42), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}

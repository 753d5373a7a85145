// Package solver finds the unique solution of a 9×9 Sudoku puzzle using a
// depth-first search interleaved with constraint propagation. The search
// tree is pruned at the start of the solve and after each guess by
// eliminating digits that solved peers rule out.
package solver

import (
	"context"
	"errors"
	"time"

	"github.com/jb361/sudoku-solver/internal/grid"
)

var (
	ErrInvalidPuzzle = errors.New("puzzle violates Sudoku constraints")
	ErrTimeout       = errors.New("solver timeout exceeded")
	ErrNodeLimit     = errors.New("solver node limit exceeded")
)

// errSecondSolution aborts the search as soon as a second completion is
// found; it never escapes Solve.
var errSecondSolution = errors.New("second solution found")

// Solver drives the search over a candidate grid.
type Solver struct {
	Grid    *grid.Grid
	options *Options

	nodes     int
	solutions int
	first     *grid.Grid
}

// New creates a solver for the given grid. The grid is cloned, so the
// caller's copy is never mutated. A nil options uses DefaultOptions.
func New(g *grid.Grid, options *Options) *Solver {
	if options == nil {
		options = DefaultOptions()
	}
	return &Solver{
		Grid:    g.Clone(),
		options: options,
	}
}

// Solve runs the search to completion or early exit.
//
// Unsolvable and non-unique puzzles are outcomes, not errors: the returned
// error is non-nil only when the givens already break the uniqueness
// invariant (ErrInvalidPuzzle) or a configured cap fires (ErrTimeout,
// ErrNodeLimit). The search order is fully deterministic, so repeated
// calls on the same input yield identical results.
func (s *Solver) Solve(ctx context.Context) (Result, error) {
	start := time.Now()

	if !s.Grid.Valid() {
		return Result{Stats: s.stats(start)}, ErrInvalidPuzzle
	}

	if s.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.options.Timeout)
		defer cancel()
	}

	s.nodes = 0
	s.solutions = 0
	s.first = nil

	err := s.search(ctx, s.Grid.Clone())
	switch {
	case errors.Is(err, errSecondSolution):
		return Result{Outcome: NotUnique, Stats: s.stats(start)}, nil
	case err != nil:
		return Result{Stats: s.stats(start)}, err
	}

	if s.solutions == 0 {
		return Result{Outcome: Unsolvable, Stats: s.stats(start)}, nil
	}

	// The completed grid is re-checked before it is reported; a failure
	// here would mean a bug in the placement discipline, not bad input.
	if !s.first.IsComplete() {
		return Result{Outcome: Unsolvable, Stats: s.stats(start)}, nil
	}
	return Result{Outcome: Solved, Solution: s.first, Stats: s.stats(start)}, nil
}

// search recursively extends the partial assignment in g. Each level runs
// propagation first, prunes on contradiction, records a completion, or
// branches on the most constrained cell, cloning the grid before every
// guess so sibling branches never interfere.
func (s *Solver) search(ctx context.Context, g *grid.Grid) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}

	if err := g.Propagate(); err != nil {
		// Contradiction: prune this branch.
		return nil
	}

	if g.EmptyCount() == 0 {
		s.solutions++
		if s.solutions == 1 {
			s.first = g.Clone()
			return nil
		}
		return errSecondSolution
	}

	pos, candidates := g.FirstBranchCell()
	if pos == -1 {
		return nil
	}

	for _, val := range candidates {
		s.nodes++
		if s.options.NodeLimit > 0 && s.nodes > s.options.NodeLimit {
			return ErrNodeLimit
		}

		// Guess on a clone; discarding it on return is the backtrack.
		branch := g.Clone()
		if err := branch.Fix(pos, val); err != nil {
			continue
		}
		if err := s.search(ctx, branch); err != nil {
			return err
		}
	}

	return nil
}

func (s *Solver) stats(start time.Time) Stats {
	return Stats{Nodes: s.nodes, Duration: time.Since(start)}
}

// Solve is a convenience wrapper running a solver with default options and
// no external cancellation.
func Solve(g *grid.Grid) (Result, error) {
	return New(g, nil).Solve(context.Background())
}

package grid

import (
	"fmt"
	"math/bits"
)

// Propagate applies constraint elimination until a fixed point is reached.
// Two rules run in alternation: naked singles (a cell whose candidate set
// has collapsed to one digit) and hidden singles (a digit with only one
// possible cell left within a row, column, or box). Each placement
// eliminates the digit from the cell's peers, which may expose further
// singles, so the loop repeats until a full pass changes nothing.
//
// Returns nil when the grid is stable and ErrContradiction when any
// unfixed cell runs out of candidates. Calling Propagate on a stable grid
// is a no-op.
func (g *Grid) Propagate() error {
	for {
		changed := false

		if fixed, err := g.applyNakedSingles(); err != nil {
			return err
		} else if fixed {
			changed = true
		}

		if g.applyHiddenSingles() {
			changed = true
		}

		if !changed {
			return nil
		}
	}
}

// applyNakedSingles fixes every cell with exactly one candidate left.
// Reports a contradiction as soon as an unfixed cell has none.
func (g *Grid) applyNakedSingles() (bool, error) {
	changed := false

	for pos := 0; pos < CellCount; pos++ {
		if g.cells[pos] != EmptyCell {
			continue
		}
		mask := g.cand[pos]

		if mask == 0 {
			return changed, fmt.Errorf("%w: cell %d", ErrContradiction, pos)
		}
		if bits.OnesCount(mask) == 1 {
			g.fix(pos, bits.TrailingZeros(mask)+1)
			changed = true
		}
	}

	return changed, nil
}

// applyHiddenSingles fixes digits that have a single possible cell left
// within some unit. A contradiction this exposes is caught by the naked
// single pass on the next iteration of the fixed-point loop.
func (g *Grid) applyHiddenSingles() bool {
	changed := false

	for unit := range units {
		if g.findHiddenSinglesInUnit(unit) {
			changed = true
		}
	}

	return changed
}

// findHiddenSinglesInUnit checks one row, column, or box for digits with
// exactly one remaining home.
func (g *Grid) findHiddenSinglesInUnit(unit int) bool {
	changed := false

	// lastPos[val] holds the only candidate position seen so far for val;
	// seen[val] counts them, saturating at 2.
	var lastPos [10]int
	var seen [10]int

	for _, pos := range units[unit] {
		if g.cells[pos] != EmptyCell {
			continue
		}
		mask := g.cand[pos]
		for val := 1; val <= 9; val++ {
			if mask&digitMask(val) == 0 {
				continue
			}
			if seen[val] < 2 {
				seen[val]++
				lastPos[val] = pos
			}
		}
	}

	for val := 1; val <= 9; val++ {
		if seen[val] == 1 {
			pos := lastPos[val]
			// An earlier fix in this unit may have eliminated val here.
			if g.cells[pos] == EmptyCell && g.cand[pos]&digitMask(val) != 0 {
				g.fix(pos, val)
				changed = true
			}
		}
	}

	return changed
}

// units lists the cell positions of each of the 27 constraint groups:
// 9 rows, then 9 columns, then 9 boxes.
var units [27][9]int

func init() {
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			// Row i, column i, box i.
			units[i][j] = MakePos(i, j)
			units[9+i][j] = MakePos(j, i)
			units[18+i][j] = MakePos(3*(i/3)+j/3, 3*(i%3)+j%3)
		}
	}
}

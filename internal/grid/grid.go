// Package grid implements the candidate grid for a standard 9×9 Sudoku:
// each unfixed cell carries the set of digits not excluded by any solved
// peer, kept as a 9-bit mask. All solver mutations go through Fix, which
// maintains the row/column/box uniqueness invariant.
package grid

import (
	"fmt"
	"math/bits"
	"strings"
)

// Special cell values
const (
	EmptyCell   = 0
	InvalidCell = -1
	CellCount   = 81
	PeerCount   = 20
)

// allNine is the candidate mask with bits 0-8 set.
// Bit i represents digit i+1 (bit 0 = digit 1, bit 8 = digit 9).
const allNine = 511

// Grid represents a 9x9 Sudoku grid with per-cell candidate tracking.
// A cell is either fixed to a digit 1-9 or carries a non-empty candidate
// mask, never both; a fixed cell's mask is zero.
type Grid struct {
	cells [CellCount]int
	cand  [CellCount]uint

	// emptyCount tracks unfixed cells for quick completion checks.
	// Once initialized, emptyCount should only be touched inside fix.
	emptyCount int
}

// New creates an empty Grid with every cell open to all nine digits.
func New() *Grid {
	g := &Grid{emptyCount: CellCount}
	for pos := 0; pos < CellCount; pos++ {
		g.cand[pos] = allNine
	}
	return g
}

// FromString creates a Grid from an 81-character string.
// Use '.' or '0' for empty cells, '1'-'9' for given cells.
// Returns ErrBadInput for malformed strings and ErrInvalidPuzzle when the
// givens already duplicate a digit within a row, column, or box.
func FromString(s string) (*Grid, error) {
	if len(s) != CellCount {
		return nil, fmt.Errorf("%w: string must be exactly %d characters, got %d", ErrBadInput, CellCount, len(s))
	}

	g := New()
	for pos := 0; pos < CellCount; pos++ {
		ch := s[pos]
		switch ch {
		case '.', '0':
			// Empty cell, already initialized
		case '1', '2', '3', '4', '5', '6', '7', '8', '9':
			if err := g.Fix(pos, int(ch-'0')); err != nil {
				return nil, fmt.Errorf("%w: given at position %d: %v", ErrInvalidPuzzle, pos, err)
			}
		default:
			return nil, fmt.Errorf("%w: invalid character '%c' at position %d", ErrBadInput, ch, pos)
		}
	}
	return g, nil
}

// FromValues creates a Grid from 81 numeric values in row-major order.
// EmptyCell (0) marks a blank; anything outside [0, 9] is rejected.
func FromValues(values [CellCount]int) (*Grid, error) {
	g := New()
	for pos, val := range values {
		if val == EmptyCell {
			continue
		}
		if val < 1 || val > 9 {
			return nil, fmt.Errorf("%w: value %d at position %d", ErrBadInput, val, pos)
		}
		if err := g.Fix(pos, val); err != nil {
			return nil, fmt.Errorf("%w: given at position %d: %v", ErrInvalidPuzzle, pos, err)
		}
	}
	return g, nil
}

// Clone creates an independent copy of the Grid.
// This is the snapshot primitive for search branches: mutate the clone,
// discard it on backtrack, and the original is untouched.
func (g *Grid) Clone() *Grid {
	if g == nil {
		return nil
	}
	clone := *g
	return &clone
}

// Fix places digit val at pos and eliminates val from all 20 peers.
// Returns an error if pos or val is out of range, the cell is already
// fixed, or val has been excluded by a solved peer.
func (g *Grid) Fix(pos, val int) error {
	if err := validatePosition(pos); err != nil {
		return err
	}
	if val < 1 || val > 9 {
		return fmt.Errorf("%w: got %d", ErrInvalidValue, val)
	}
	if g.cells[pos] != EmptyCell {
		if g.cells[pos] == val {
			return nil
		}
		return fmt.Errorf("%w: cell %d already fixed to %d", ErrIllegalMove, pos, g.cells[pos])
	}
	if g.cand[pos]&digitMask(val) == 0 {
		return fmt.Errorf("%w: digit %d excluded at cell %d", ErrIllegalMove, val, pos)
	}
	g.fix(pos, val)
	return nil
}

// fix performs the placement without validation. Callers must have
// verified that val is a live candidate at pos.
func (g *Grid) fix(pos, val int) {
	mask := digitMask(val)
	g.cells[pos] = val
	g.cand[pos] = 0
	g.emptyCount--
	for _, p := range peers[pos] {
		g.cand[p] &^= mask
	}
}

// Get returns the fixed digit at pos, EmptyCell if the cell is unfixed,
// or InvalidCell for out-of-range positions.
func (g *Grid) Get(pos int) int {
	if !isValidPosition(pos) {
		return InvalidCell
	}
	return g.cells[pos]
}

// CandidatesMask returns the candidate bitmask at pos.
// Fixed cells and invalid positions report 0.
func (g *Grid) CandidatesMask(pos int) uint {
	if !isValidPosition(pos) {
		return 0
	}
	return g.cand[pos]
}

// Candidates returns the live candidate digits 1-9 at pos in ascending
// order. Fixed cells and invalid positions yield an empty slice.
func (g *Grid) Candidates(pos int) []int {
	mask := g.CandidatesMask(pos)
	candidates := make([]int, 0, 9)
	for val := 1; val <= 9; val++ {
		if mask&digitMask(val) != 0 {
			candidates = append(candidates, val)
		}
	}
	return candidates
}

// EmptyCount returns the number of unfixed cells.
func (g *Grid) EmptyCount() int {
	return g.emptyCount
}

// IsComplete reports whether every cell is fixed and the uniqueness
// invariant holds.
func (g *Grid) IsComplete() bool {
	return g.emptyCount == 0 && g.Valid()
}

// FirstBranchCell selects the cell to guess next: the unfixed cell with
// the fewest remaining candidates, ties broken by lowest position.
// Returns pos -1 and a nil slice when no cell is unfixed.
func (g *Grid) FirstBranchCell() (int, []int) {
	bestPos := -1
	bestCount := 10

	for pos := 0; pos < CellCount; pos++ {
		if g.cells[pos] != EmptyCell {
			continue
		}
		count := bits.OnesCount(g.cand[pos])
		if count < bestCount {
			bestCount = count
			bestPos = pos

			if count <= 1 {
				break
			}
		}
	}

	if bestPos == -1 {
		return -1, nil
	}
	return bestPos, g.Candidates(bestPos)
}

// String returns the grid as an 81-character string.
// Unfixed cells are represented as '.', fixed cells as '1'-'9'.
func (g *Grid) String() string {
	var sb strings.Builder
	sb.Grow(CellCount)

	for _, cell := range g.cells {
		if cell == EmptyCell {
			sb.WriteByte('.')
		} else {
			sb.WriteByte('0' + byte(cell))
		}
	}

	return sb.String()
}

// Format returns a human-readable grid representation with box lines.
func (g *Grid) Format() string {
	var sb strings.Builder
	line := "+-------+-------+-------+\n"
	sb.WriteString(line)

	for row := 0; row < 9; row++ {
		sb.WriteString("| ")
		for col := 0; col < 9; col++ {
			val := g.Get(MakePos(row, col))
			if val == EmptyCell {
				sb.WriteByte('.')
			} else {
				sb.WriteByte('0' + byte(val))
			}
			sb.WriteByte(' ')

			if (col+1)%3 == 0 {
				sb.WriteString("| ")
			}
		}
		sb.WriteString("\n")

		if (row+1)%3 == 0 {
			sb.WriteString(line)
		}
	}

	return sb.String()
}

// digitMask returns the candidate bit for digit val (1-9).
func digitMask(val int) uint {
	return 1 << (val - 1)
}

// MakePos transforms a row and column into a linear position.
// Returns InvalidCell if row and/or col are invalid.
func MakePos(row, col int) int {
	if row < 0 || row >= 9 || col < 0 || col >= 9 {
		return InvalidCell
	}
	return 9*row + col
}

// Precomputed lookup tables. peers[pos] lists the 20 cells sharing a row,
// column, or box with pos, excluding pos itself.
var (
	posToRow [CellCount]int
	posToCol [CellCount]int
	posToBox [CellCount]int
	peers    [CellCount][PeerCount]int
)

func init() {
	for pos := 0; pos < CellCount; pos++ {
		posToRow[pos] = pos / 9
		posToCol[pos] = pos % 9
		posToBox[pos] = 3*(pos/27) + (pos%9)/3
	}
	for pos := 0; pos < CellCount; pos++ {
		n := 0
		for other := 0; other < CellCount; other++ {
			if other == pos {
				continue
			}
			if posToRow[other] == posToRow[pos] ||
				posToCol[other] == posToCol[pos] ||
				posToBox[other] == posToBox[pos] {
				peers[pos][n] = other
				n++
			}
		}
	}
}

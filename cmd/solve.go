package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jb361/sudoku-solver/internal/grid"
	"github.com/jb361/sudoku-solver/internal/solver"
)

var (
	puzzleFile   string
	solveTimeout time.Duration
	nodeLimit    int
)

func init() {
	solveCmd := &cobra.Command{
		Use:   "solve [puzzle]",
		Short: "Solve a Sudoku puzzle",
		Long: `Solve a Sudoku puzzle given as 81 characters in row-major order,
with '.' or '0' for blank cells. The puzzle is read from the argument,
from --file, or from stdin. Whitespace is ignored, so 9 lines of 9
characters work too.

Examples:
  sudoku-solver solve 53..7....6..195....98....6.8...6...34..8.3..17...2...6.6....28....419..5....8..79
  sudoku-solver solve --file puzzle.txt
  cat puzzle.txt | sudoku-solver solve`,
		Args: cobra.MaximumNArgs(1),
		RunE: runSolve,
	}

	solveCmd.Flags().StringVarP(&puzzleFile, "file", "f", "", "Read the puzzle from a file")
	solveCmd.Flags().DurationVar(&solveTimeout, "timeout", 10*time.Second, "Abort the search after this long")
	solveCmd.Flags().IntVar(&nodeLimit, "nodes", 0, "Abort the search after this many guesses (0 = unlimited)")

	rootCmd.AddCommand(solveCmd)
}

// readPuzzle collects the puzzle text from the argument, file, or stdin
// and strips all whitespace.
func readPuzzle(cmd *cobra.Command, args []string) (string, error) {
	var raw string
	switch {
	case len(args) == 1:
		raw = args[0]
	case puzzleFile != "":
		data, err := os.ReadFile(puzzleFile)
		if err != nil {
			return "", fmt.Errorf("failed to read puzzle file: %w", err)
		}
		raw = string(data)
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("failed to read puzzle from stdin: %w", err)
		}
		raw = string(data)
	}

	return strings.Join(strings.Fields(raw), ""), nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	puzzle, err := readPuzzle(cmd, args)
	if err != nil {
		return err
	}

	g, err := grid.FromString(puzzle)
	if err != nil {
		return fmt.Errorf("invalid puzzle: %w", err)
	}

	opts := &solver.Options{Timeout: solveTimeout, NodeLimit: nodeLimit}
	result, err := solver.New(g, opts).Solve(cmd.Context())
	if err != nil {
		return fmt.Errorf("solve failed: %w", err)
	}

	log.Debug().
		Int("nodes", result.Stats.Nodes).
		Dur("duration", result.Stats.Duration).
		Msg("search finished")

	switch result.Outcome {
	case solver.Solved:
		fmt.Fprintln(cmd.OutOrStdout(), result.Solution.Format())
	case solver.Unsolvable:
		fmt.Fprintln(cmd.OutOrStdout(), "No solution exists.")
	case solver.NotUnique:
		fmt.Fprintln(cmd.OutOrStdout(), "Multiple solutions exist.")
	}
	return nil
}

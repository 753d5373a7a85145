package cmd

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jb361/sudoku-solver/internal/server"
	"github.com/jb361/sudoku-solver/internal/solver"
)

var (
	serveAddr    string
	serveTimeout time.Duration
	serveNodes   int
)

func init() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the solver over HTTP",
		Long: `Start an HTTP server exposing POST /api/v1/solve. The request body is
{"puzzle": "<81 characters>"} and the response carries the outcome, the
solved grid when one exists, and search statistics.`,
		RunE: runServe,
	}

	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().DurationVar(&serveTimeout, "timeout", 5*time.Second, "Per-request search timeout")
	serveCmd.Flags().IntVar(&serveNodes, "nodes", 0, "Per-request guess limit (0 = unlimited)")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	opts := &solver.Options{Timeout: serveTimeout, NodeLimit: serveNodes}
	srv := server.New(log.Logger, opts)
	return srv.Run(serveAddr)
}

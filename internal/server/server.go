// Package server exposes the solver over HTTP.
package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/jb361/sudoku-solver/internal/grid"
	"github.com/jb361/sudoku-solver/internal/solver"
)

// Server wraps a gin engine around the solver core.
type Server struct {
	engine  *gin.Engine
	options *solver.Options
	log     zerolog.Logger
}

// New creates a Server. options bounds the work done per request; nil uses
// solver defaults.
func New(log zerolog.Logger, options *solver.Options) *Server {
	if options == nil {
		options = solver.DefaultOptions()
	}

	s := &Server{
		engine:  gin.New(),
		options: options,
		log:     log,
	}
	s.engine.Use(gin.Recovery())

	v1 := s.engine.Group("/api").
		Group("/v1")
	v1.POST("/solve", s.handleSolve)

	return s
}

// Run serves HTTP on addr until the listener fails.
func (s *Server) Run(addr string) error {
	s.log.Info().Str("addr", addr).Msg("listening")
	return s.engine.Run(addr)
}

// Handler returns the underlying http.Handler, used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

type solveRequest struct {
	// Puzzle is the 81-character row-major form; '.' or '0' marks a blank.
	Puzzle string `json:"puzzle" binding:"required"`
}

type solveResponse struct {
	Outcome    string `json:"outcome"`
	Solution   string `json:"solution,omitempty"`
	Pretty     string `json:"pretty,omitempty"`
	Nodes      int    `json:"nodes"`
	DurationMs int64  `json:"durationMs"`
}

func (s *Server) handleSolve(c *gin.Context) {
	var req solveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "message": err.Error()})
		return
	}

	g, err := grid.FromString(req.Puzzle)
	if err != nil {
		s.log.Debug().Err(err).Msg("reject puzzle")
		status := http.StatusBadRequest
		if errors.Is(err, grid.ErrInvalidPuzzle) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{"error": "invalid puzzle", "message": err.Error()})
		return
	}

	result, err := solver.New(g, s.options).Solve(c.Request.Context())
	if err != nil {
		s.log.Err(err).Int("nodes", result.Stats.Nodes).Msg("solve failed")
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, solver.ErrInvalidPuzzle):
			status = http.StatusUnprocessableEntity
		case errors.Is(err, solver.ErrTimeout), errors.Is(err, solver.ErrNodeLimit):
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": "solve failed", "message": err.Error()})
		return
	}

	resp := solveResponse{
		Outcome:    result.Outcome.String(),
		Nodes:      result.Stats.Nodes,
		DurationMs: result.Stats.Duration.Milliseconds(),
	}
	if result.Outcome == solver.Solved {
		resp.Solution = result.Solution.String()
		resp.Pretty = result.Solution.Format()
	}

	s.log.Info().
		Str("outcome", resp.Outcome).
		Int("nodes", resp.Nodes).
		Dur("duration", result.Stats.Duration).
		Msg("solve")
	c.JSON(http.StatusOK, resp)
}

package api

import (
	"context"
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/themindgauge/woo-content-optimizer/internal/ledger"
	"github.com/themindgauge/woo-content-optimizer/internal/optimizer"
)

// Runner starts one optimization pass. Satisfied by *optimizer.Pipeline.
type Runner interface {
	Run(ctx context.Context, opts optimizer.RunOptions) []ledger.Result
}

// History is the ledger surface the API exposes.
type History interface {
	All() []ledger.Result
	Clear() error
}

// Server exposes the run trigger and results over HTTP.
type Server struct {
	runner  Runner
	history History

	// running guards against concurrent runs: the pipeline is strictly
	// serial by design.
	running sync.Mutex
}

// NewServer creates the API server.
func NewServer(runner Runner, history History) *Server {
	return &Server{runner: runner, history: history}
}

// Router builds the gin engine with all routes configured.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())

	r.POST("/optimize", s.startOptimization)
	r.GET("/results", s.getResults)
	r.DELETE("/results", s.clearResults)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}

// startOptimization launches a pipeline run in the background. A second
// request while a run is active gets 409.
func (s *Server) startOptimization(c *gin.Context) {
	opts := optimizer.RunOptions{
		StartPage:   queryInt(c, "start_page", 1),
		MaxProducts: queryInt(c, "max_products", 10),
		ForceUpdate: queryBool(c, "force_update"),
		DryRun:      queryBool(c, "dry_run"),
	}
	if v := c.Query("use_trends"); v != "" {
		useTrends := v == "true" || v == "1"
		opts.UseTrends = &useTrends
	}

	if !s.running.TryLock() {
		c.JSON(http.StatusConflict, gin.H{"error": "an optimization run is already in progress"})
		return
	}

	go func() {
		defer s.running.Unlock()
		s.runner.Run(context.Background(), opts)
	}()

	log.Info().
		Int("startPage", opts.StartPage).
		Int("maxProducts", opts.MaxProducts).
		Bool("forceUpdate", opts.ForceUpdate).
		Bool("dryRun", opts.DryRun).
		Msg("optimization run started via API")

	resp := gin.H{
		"status":       "started",
		"start_page":   opts.StartPage,
		"max_products": opts.MaxProducts,
		"force_update": opts.ForceUpdate,
		"dry_run":      opts.DryRun,
	}
	if opts.UseTrends != nil {
		resp["use_trends"] = *opts.UseTrends
	}
	c.JSON(http.StatusAccepted, resp)
}

func (s *Server) getResults(c *gin.Context) {
	results := s.history.All()
	if results == nil {
		results = []ledger.Result{}
	}
	c.JSON(http.StatusOK, gin.H{"results": results})
}

func (s *Server) clearResults(c *gin.Context) {
	if err := s.history.Clear(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}

func queryInt(c *gin.Context, name string, fallback int) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return fallback
	}
	return v
}

func queryBool(c *gin.Context, name string) bool {
	return c.Query(name) == "true" || c.Query(name) == "1"
}

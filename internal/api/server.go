// Package api exposes the simulation services over a JSON HTTP API.
package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"linmod/app"
	"linmod/internal"
	"linmod/ports"
)

// Server represents the JSON API server
type Server struct {
	router     *gin.Engine
	simService *app.SimulationService
	sweepSvc   *app.SweepService
	reader     ports.RunLedgerReaderPort // nil when no ledger is configured
	logger     *internal.Logger
}

// NewServer creates an API server wired to the simulation services
func NewServer(simService *app.SimulationService, sweepSvc *app.SweepService, reader ports.RunLedgerReaderPort) *Server {
	s := &Server{
		router:     gin.Default(),
		simService: simService,
		sweepSvc:   sweepSvc,
		reader:     reader,
		logger:     internal.DefaultLogger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.Group("/api")
	api.POST("/simulate", s.handleSimulate)
	api.POST("/sweep", s.handleSweep)
	api.GET("/runs", s.handleListRuns)
	api.GET("/runs/:id", s.handleGetRun)
	api.POST("/runs/:id/replay", s.handleReplay)

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// Run starts the server on the given address
func (s *Server) Run(addr string) error {
	s.logger.Info("API server listening on %s", addr)
	return s.router.Run(addr)
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

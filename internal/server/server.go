package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zgpcy/calltimer/internal/config"
	"github.com/zgpcy/calltimer/internal/logger"
	"github.com/zgpcy/calltimer/internal/version"
)

// HTTP server timeout constants
const (
	DefaultReadTimeout  = 15 * time.Second // Maximum duration for reading the entire request
	DefaultWriteTimeout = 15 * time.Second // Maximum duration before timing out writes of the response
	DefaultIdleTimeout  = 60 * time.Second // Maximum amount of time to wait for the next request
)

// Server represents the metrics HTTP server
type Server struct {
	server *http.Server
	router *mux.Router
	logger *logger.Logger
}

// NewServer creates a new HTTP server serving metrics from gatherer
func NewServer(cfg *config.Config, gatherer prometheus.Gatherer, log *logger.Logger) *Server {
	router := mux.NewRouter()

	s := &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Metrics.HTTPPort),
			Handler:      router,
			ReadTimeout:  DefaultReadTimeout,
			WriteTimeout: DefaultWriteTimeout,
			IdleTimeout:  DefaultIdleTimeout,
		},
		router: router,
		logger: log,
	}

	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/version", s.handleVersion).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	return s
}

// Handler returns the root handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.logger.Info("Starting HTTP server", "address", s.server.Addr)
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// handleHealth handles liveness requests (always 200)
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(`{"status":"healthy"}`)); err != nil {
		s.logger.Error("Failed to write health response", "error", err)
	}
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(version.Info()); err != nil {
		s.logger.Error("Failed to write version response", "error", err)
	}
}

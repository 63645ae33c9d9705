// Package server exposes the quality check pipeline over HTTP.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jerald6111/video-quality-checker/internal/config"
	"github.com/jerald6111/video-quality-checker/internal/download"
	"github.com/jerald6111/video-quality-checker/internal/logging"
	"github.com/jerald6111/video-quality-checker/internal/processing"
)

// Timeouts sized for long-running check requests; WriteTimeout has to cover
// a full download plus pipeline run.
const (
	readTimeout       = 30 * time.Second
	readHeaderTimeout = 10 * time.Second
	writeTimeout      = 300 * time.Second
	idleTimeout       = 120 * time.Second
	maxHeaderBytes    = 1 << 20
	shutdownGrace     = 10 * time.Second
)

// Server routes quality check requests into the processing pipeline.
type Server struct {
	cfg        *config.Server
	deps       processing.Deps
	downloader *download.Downloader
	logger     *logging.Logger
	httpServer *http.Server
}

// New builds a Server. Zero-valued deps are filled with production
// implementations when the first check runs.
func New(cfg *config.Server, deps processing.Deps, logger *logging.Logger) *Server {
	if cfg == nil {
		cfg = config.LoadServer()
	}
	if logger == nil {
		logger = logging.Global()
	}
	s := &Server{
		cfg:        cfg,
		deps:       deps,
		downloader: download.New(nil, logger),
		logger:     logger,
	}
	s.httpServer = &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s.Handler(),
		ReadTimeout:       readTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		MaxHeaderBytes:    maxHeaderBytes,
	}
	return s
}

// Handler returns the routed handler with logging, metrics, and CORS
// middleware applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/check_quality", s.handleCheckQuality)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.Handle("GET /metrics", promhttp.Handler())

	var h http.Handler = mux
	h = s.corsMiddleware(h)
	h = s.metricsMiddleware(h)
	h = s.loggingMiddleware(h)
	return h
}

// ListenAndServe runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "grace", shutdownGrace)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}

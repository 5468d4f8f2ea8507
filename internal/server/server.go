package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/klauspost/compress/gzhttp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/iksnae/question-digest/internal"
)

const shutdownTimeout = 5 * time.Second

// Server is the interactive driver: published artifacts, local uploads,
// health, metrics and the static viewer.
type Server struct {
	WebServer *http.Server
	siteDir   string
}

// NewServer assembles the handler tree for conf.
func NewServer(conf *internal.Config, router *Router, handlers *Handlers, reg *prometheus.Registry) *Server {
	mux := http.NewServeMux()
	for _, route := range router.Routes() {
		mux.Handle(route.Pattern, route.Handler)
	}

	mux.HandleFunc("/health", handlers.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	}

	siteDir := ""
	if conf.Serve.SiteDir != "" {
		if info, err := os.Stat(conf.Serve.SiteDir); err == nil && info.IsDir() {
			siteDir = conf.Serve.SiteDir
			mux.Handle("/", http.FileServer(http.Dir(siteDir)))
		} else {
			internal.LogWarn("Site directory %s not found, static files disabled", conf.Serve.SiteDir)
		}
	}

	return &Server{
		WebServer: &http.Server{
			Addr:         conf.Addr(),
			Handler:      gzhttp.GzipHandler(mux),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		siteDir: siteDir,
	}
}

// Handler returns the root handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.WebServer.Handler
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.WebServer.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.WebServer.Addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	serverErr := make(chan error, 1)
	go func() {
		internal.LogInfo("Listening on http://%s", ln.Addr())
		if s.siteDir != "" {
			internal.LogInfo("Serving viewer from %s", s.siteDir)
		}
		if err := s.WebServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		internal.LogInfo("Shutdown signal received")
	case err, ok := <-serverErr:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.WebServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	internal.LogInfo("Server gracefully stopped")
	return nil
}

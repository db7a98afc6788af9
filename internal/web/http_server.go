// Package web serves the local HTTP API of the frame
package web

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultListenAddr is the default API address
const DefaultListenAddr = ":5006"

// ServerConfig contains settings for running the HTTP server
type ServerConfig struct {
	ListenAddr string
	DevMode    bool
}

// HTTPServer serves /ping and the /api/v1 routes
type HTTPServer struct {
	logger *zap.Logger
	cfg    ServerConfig
	deps   APIV1Deps

	mu     sync.Mutex
	srv    *http.Server
	ln     net.Listener
	closed bool
}

// NewHTTPServer creates a server; nothing listens until Start
func NewHTTPServer(logger *zap.Logger, cfg ServerConfig, deps APIV1Deps) *HTTPServer {
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	return &HTTPServer{logger: logger, cfg: cfg, deps: deps}
}

// Handler builds the route tree
func (s *HTTPServer) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ping", handlePing)
	mux.Handle("/api/v1/", http.StripPrefix("/api/v1", apiV1Router(s.deps)))

	if s.cfg.DevMode {
		return WithDevCORS(mux)
	}
	return mux
}

// Start listens and serves in the background. It returns once the socket
// is bound.
func (s *HTTPServer) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.New("web server already stopped")
	}
	if s.srv != nil {
		return nil
	}

	ln, err := net.Listen("tcp", s.cfg.ListenAddr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.cfg.ListenAddr, err)
	}
	s.ln = ln
	s.srv = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	srv := s.srv
	go func() {
		err := srv.Serve(ln)
		if err == nil || errors.Is(err, http.ErrServerClosed) {
			return
		}
		s.logger.Error("HTTP server failed", zap.Error(err))
	}()

	s.logger.Info("HTTP API listening", zap.String("addr", ln.Addr().String()))
	return nil
}

// Addr returns the bound address, or nil before Start
func (s *HTTPServer) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop shuts the server down, waiting for in-flight requests until ctx ends
func (s *HTTPServer) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	srv := s.srv
	s.srv = nil
	s.ln = nil
	s.mu.Unlock()

	if srv == nil {
		return nil
	}
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	s.logger.Info("HTTP API stopped")
	return nil
}

// Package api provides the HTTP surface of the bot.
//
// Endpoints:
//
//	POST /chat        - one chat turn (JSON in, JSON out)
//	POST /chat/stream - one chat turn over Server-Sent Events
//	GET  /health      - liveness probe
//	GET  /ready       - readiness probe
//
// The chat routes sit behind the full middleware chain
// (recovery, request ID, logging, CORS, per-IP rate limit);
// the probes are registered outside it so load balancers are never
// rate-limited or CORS-filtered.
package api

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/furiabot/furiabot/internal/chat"
)

const (
	// DefaultAddr is the default address for the HTTP server.
	DefaultAddr = "127.0.0.1:3400"

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	ShutdownTimeout = 10 * time.Second

	// ReadHeaderTimeout prevents Slowloris-style header trickling.
	ReadHeaderTimeout = 10 * time.Second

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout = 30 * time.Second

	// WriteTimeout is the maximum duration for writing the response.
	// Generous because a chat turn includes the model round-trip.
	WriteTimeout = 2 * time.Minute

	// IdleTimeout bounds keep-alive connections between requests.
	IdleTimeout = 120 * time.Second
)

// ServerConfig holds the HTTP server's dependencies and settings.
type ServerConfig struct {
	Flow   *chat.Flow
	Logger *slog.Logger

	Addr        string
	CORSOrigins []string
	RateBurst   int  // per-IP burst size; sustained rate is RateBurst per minute
	TrustProxy  bool // take client IP from X-Forwarded-For
}

// Server is the HTTP server for the bot's REST API.
type Server struct {
	mux     *http.ServeMux // chat routes, behind middleware
	topMux  *http.ServeMux // probes + wrapped chat routes
	logger  *slog.Logger
	addr    string
	limiter *rateLimiter
	ready   atomic.Bool // true while the listener is accepting traffic
}

// NewServer creates an HTTP server with all routes registered.
func NewServer(cfg ServerConfig) (*Server, error) {
	if cfg.Flow == nil {
		return nil, errors.New("chat flow is required")
	}
	if cfg.Logger == nil {
		return nil, errors.New("logger is required")
	}

	burst := cfg.RateBurst
	if burst <= 0 {
		burst = 60
	}

	s := &Server{
		mux:    http.NewServeMux(),
		topMux: http.NewServeMux(),
		logger: cfg.Logger,
		addr:   cfg.Addr,
		// Sustained rate of one burst per minute.
		limiter: newRateLimiter(float64(burst)/60.0, burst, cfg.TrustProxy, cfg.Logger),
	}

	NewChatHandler(cfg.Flow, cfg.Logger).RegisterRoutes(s.mux)

	chatRoutes := chain(s.mux,
		recoveryMiddleware(cfg.Logger),
		requestIDMiddleware,
		loggingMiddleware(cfg.Logger),
		corsMiddleware(cfg.CORSOrigins),
		s.limiter.middleware,
	)

	// Probes bypass the chat middleware chain. Readiness follows the
	// listener: true only between bind and shutdown.
	NewHealthHandler(s.ready.Load).RegisterRoutes(s.topMux)
	s.topMux.Handle("/", chatRoutes)

	return s, nil
}

// Handler returns the fully assembled HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.topMux
}

// Run starts the HTTP server and blocks until the context is
// cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	addr := s.addr
	if addr == "" {
		addr = DefaultAddr
	}

	stopCleanup := make(chan struct{})
	go s.limiter.cleanup(stopCleanup)
	defer close(stopCleanup)

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: ReadHeaderTimeout,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		IdleTimeout:       IdleTimeout,
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	s.ready.Store(true)
	defer s.ready.Store(false)

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("shutting down HTTP server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

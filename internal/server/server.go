// ABOUTME: Server orchestrator wiring API client, audit journal and web console
// ABOUTME: Manages the HTTP listener, health endpoints and graceful shutdown

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/pvchallenge/banca-console/internal/api"
	"github.com/pvchallenge/banca-console/internal/config"
	"github.com/pvchallenge/banca-console/internal/store"
	"github.com/pvchallenge/banca-console/internal/webconsole"
)

// readyTimeout bounds the backend probe of /health/ready.
const readyTimeout = 3 * time.Second

// Server runs the web console.
type Server struct {
	config     *config.Config
	client     *api.Client
	store      *store.SQLiteStore
	console    *webconsole.Console
	httpServer *http.Server
	logger     *slog.Logger
}

// New builds a server from cfg. The audit journal is opened only when
// cfg.Audit.Path is set.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	client := api.New(cfg.API.BaseURL,
		api.WithTimeout(cfg.API.Timeout),
		api.WithLogger(logger),
	)

	s := &Server{
		config: cfg,
		client: client,
		logger: logger,
	}

	var journal store.Journal
	if cfg.Audit.Path != "" {
		sqlStore, err := store.NewSQLiteStore(cfg.Audit.Path)
		if err != nil {
			return nil, fmt.Errorf("opening audit journal: %w", err)
		}
		s.store = sqlStore
		journal = sqlStore
		logger.Info("audit journal enabled", "path", cfg.Audit.Path)
	}

	s.console = webconsole.New(client, journal, webconsole.Config{
		SessionTTL:  cfg.Session.TTL,
		MaxSessions: cfg.Session.MaxSessions,
	})

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /health/ready", s.handleReady)
	s.console.RegisterRoutes(mux)

	s.httpServer = &http.Server{
		Handler:           otelhttp.NewHandler(mux, cfg.Telemetry.ServiceName),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s, nil
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run listens on the configured address and blocks until ctx is canceled or
// the HTTP server fails.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.config.Server.HTTPAddr)
	if err != nil {
		_ = s.gracefulShutdown()
		return fmt.Errorf("listening on HTTP address: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve runs the server on ln until ctx is canceled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting banca-console",
		"http_addr", ln.Addr().String(),
		"api", s.client.BaseURL(),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()
	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown uses a fresh context since the run context is already done.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.Shutdown(ctx)
}

// Shutdown stops the HTTP server and releases the console and the journal.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down banca-console")

	var errs []error
	if err := s.httpServer.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("HTTP shutdown: %w", err))
	}
	s.console.Close()
	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store close: %w", err))
		}
	}
	return errors.Join(errs...)
}

// handleHealth returns 200 OK if the server is alive.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// handleReady returns 200 OK if the banking API answers.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if _, err := s.client.ListCustomers(ctx); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		_, _ = fmt.Fprintf(w, "banking API unavailable: %s", api.Message(err, "error"))
		return
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// Package server runs stubservice as a standalone HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/getmockd/stubservice/pkg/config"
	"github.com/getmockd/stubservice/pkg/fixture"
	"github.com/getmockd/stubservice/pkg/logging"
	"github.com/getmockd/stubservice/pkg/stub"
	"github.com/getmockd/stubservice/pkg/watch"
)

// ShutdownTimeout bounds graceful shutdown in Run.
const ShutdownTimeout = 10 * time.Second

// Server is the standalone stub server: the stub handlers plus CORS,
// request ids, access logging, panic recovery, a health probe and the
// catch-all route.
type Server struct {
	cfg    config.Config
	log    *slog.Logger
	getenv func(string) string
	router chi.Router
	stub   *stub.Handler

	mu         sync.RWMutex
	httpServer *http.Server
	listener   net.Listener
	stopWatch  context.CancelFunc
	watchDone  chan struct{}
	running    bool
	startTime  time.Time
}

// Option is a functional option for configuring a Server.
type Option func(*Server)

// WithLogger sets the operational logger for the server.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// WithGetenv replaces os.Getenv when resolving the PORT variable.
func WithGetenv(getenv func(string) string) Option {
	return func(s *Server) {
		if getenv != nil {
			s.getenv = getenv
		}
	}
}

// New creates a Server for cfg. Nothing is bound until Start.
func New(cfg config.Config, opts ...Option) *Server {
	s := &Server{
		cfg:    cfg,
		log:    logging.Nop(),
		getenv: os.Getenv,
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(corsMiddleware(cfg.CORS))
	r.Use(accessLog(s.log))
	r.Use(recoverer(s.log))

	s.stub = stub.Register(r, cfg, stub.WithLogger(s.log))
	r.Get(HealthPath, s.handleHealth)

	r.NotFound(stub.CatchAll)
	r.MethodNotAllowed(stub.CatchAll)

	s.router = r
	return s
}

// Handler returns the fully wired HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Config returns the server configuration.
func (s *Server) Config() config.Config {
	return s.cfg
}

// Start binds the effective port and serves in the background. Bind
// errors, such as a port already in use, are returned.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("server is already running")
	}

	port := config.EffectivePort(s.cfg, s.getenv)
	addr := fmt.Sprintf(":%d", port)
	//nolint:gosec // G102: binding to all interfaces is intentional for a mock server
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	if s.cfg.Watch {
		if err := s.startWatcher(); err != nil {
			_ = ln.Close()
			return err
		}
	}

	s.listener = ln
	s.httpServer = &http.Server{
		Handler:      s.router,
		ReadTimeout:  time.Duration(s.cfg.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(s.cfg.WriteTimeout) * time.Second,
	}

	go func(srv *http.Server) {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error("HTTP server error", "error", err)
		}
	}(s.httpServer)

	s.running = true
	s.startTime = time.Now()
	s.log.Info("stubservice started", "port", s.portLocked(), "stubDir", s.cfg.StubDir)
	return nil
}

func (s *Server) startWatcher() error {
	root, err := fixture.NewResolver(s.cfg.StubDir).Root()
	if err != nil {
		return err
	}
	w, err := watch.New(root, watch.WithLogger(s.log))
	if err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := w.Run(ctx); err != nil {
			s.log.Warn("fixture watcher stopped", "error", err)
		}
	}()
	s.stopWatch = cancel
	s.watchDone = done
	return nil
}

// Stop gracefully shuts the server down, waiting until ctx expires for
// in-flight requests.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return nil
	}
	srv := s.httpServer
	stopWatch, watchDone := s.stopWatch, s.watchDone
	s.stopWatch, s.watchDone = nil, nil
	s.running = false
	s.mu.Unlock()

	if stopWatch != nil {
		stopWatch()
		<-watchDone
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("HTTP shutdown: %w", err)
		}
	}

	s.log.Info("stubservice stopped")
	return nil
}

// Run starts the server, blocks until ctx is cancelled, then shuts down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(); err != nil {
		return err
	}
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
	defer cancel()
	return s.Stop(shutdownCtx)
}

// IsRunning returns whether the server is running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Port returns the bound port, or 0 before Start.
func (s *Server) Port() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.portLocked()
}

func (s *Server) portLocked() int {
	if s.listener == nil {
		return 0
	}
	if addr, ok := s.listener.Addr().(*net.TCPAddr); ok {
		return addr.Port
	}
	return 0
}

// Uptime returns the server uptime in seconds.
func (s *Server) Uptime() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.running {
		return 0
	}
	return int(time.Since(s.startTime).Seconds())
}

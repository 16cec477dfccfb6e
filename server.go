package sugar

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/sugar/pkg/logger"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultShutdownTimeout   = 30 * time.Second
	defaultMaxHeaderBytes    = 1 << 20
)

// ErrServerStarted is returned by Run when the server has already been run.
var ErrServerStarted = errors.New("sugar: server already started")

// Server runs an http.Handler with graceful shutdown.
type Server struct {
	logger          *slog.Logger
	server          *http.Server
	shutdownTimeout time.Duration
	shutdownHooks   []func(ctx context.Context) error

	mu       sync.Mutex
	listener net.Listener
	ready     chan struct{}
	done      chan struct{}
	started   atomic.Bool
	readyOnce sync.Once
	stopOnce  sync.Once
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithAddress sets the listen address. Defaults to ":8080".
func WithAddress(addr string) ServerOption {
	return func(s *Server) {
		if addr != "" {
			s.server.Addr = addr
		}
	}
}

// WithReadTimeout sets the HTTP server read timeout. Defaults to 15 seconds.
func WithReadTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.server.ReadTimeout = d
		}
	}
}

// WithWriteTimeout sets the HTTP server write timeout. Defaults to 30 seconds.
func WithWriteTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.server.WriteTimeout = d
		}
	}
}

// WithIdleTimeout sets the HTTP server idle timeout. Defaults to 120 seconds.
func WithIdleTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.server.IdleTimeout = d
		}
	}
}

// WithShutdownTimeout bounds server shutdown and hooks together.
// Defaults to 30 seconds.
func WithShutdownTimeout(d time.Duration) ServerOption {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers a cleanup function. Hooks run in registration
// order after the HTTP server has stopped.
//
//	sugar.WithShutdownHook(db.Shutdown(conn))
func WithShutdownHook(fn func(context.Context) error) ServerOption {
	return func(s *Server) {
		if fn != nil {
			s.shutdownHooks = append(s.shutdownHooks, fn)
		}
	}
}

// WithServerLogger sets the logger for lifecycle events.
func WithServerLogger(l *slog.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewServer creates a Server for h.
func NewServer(h http.Handler, opts ...ServerOption) *Server {
	s := &Server{
		logger:          logger.NewNope(),
		shutdownTimeout: defaultShutdownTimeout,
		ready:           make(chan struct{}),
		done:            make(chan struct{}),
		server: &http.Server{
			Addr:              defaultAddress,
			Handler:           h,
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ReadHeaderTimeout: defaultReadHeaderTimeout,
			MaxHeaderBytes:    defaultMaxHeaderBytes,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run listens and serves until ctx is cancelled, SIGINT or SIGTERM arrives,
// or Stop is called. Returns nil on a clean shutdown, otherwise the serve
// error joined with any shutdown failures. A Server runs once; later calls
// return ErrServerStarted.
func (s *Server) Run(ctx context.Context) error {
	if !s.started.CompareAndSwap(false, true) {
		return ErrServerStarted
	}
	defer s.markReady()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ln, err := net.Listen("tcp", s.server.Addr)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.listener = ln
	s.mu.Unlock()
	s.markReady()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := s.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		select {
		case <-gctx.Done():
		case <-s.done:
		}
		return s.shutdown()
	})

	return g.Wait()
}

func (s *Server) shutdown() error {
	s.logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	for _, hook := range s.shutdownHooks {
		if err := hook(ctx); err != nil {
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}
	s.logger.Info("shutdown completed")
	return nil
}

// Stop triggers a graceful shutdown. Safe to call more than once.
func (s *Server) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

// Ready is closed once the server is listening, or once Run has returned
// without binding. Addr is empty in the latter case.
func (s *Server) Ready() <-chan struct{} {
	return s.ready
}

func (s *Server) markReady() {
	s.readyOnce.Do(func() { close(s.ready) })
}

// Addr returns the listening address, or "" before Run has bound it.
func (s *Server) Addr() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

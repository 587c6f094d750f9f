// Package api serves the todo resource over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/colonyops/journey/internal/core/todo"
	"github.com/rs/zerolog"
)

// TodoService is the subset of the journey todo service the API calls.
type TodoService interface {
	List(ctx context.Context, filter todo.Filter) ([]todo.Todo, error)
	Get(ctx context.Context, id int64) (todo.Todo, error)
	Create(ctx context.Context, in todo.Input) (todo.Todo, error)
	Update(ctx context.Context, id int64, in todo.Input) (todo.Todo, error)
	Delete(ctx context.Context, id int64) error
}

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Todos  TodoService
	Health Pinger
	Logger zerolog.Logger

	// AllowedOrigins are glob patterns for CORS. Empty disables CORS headers.
	AllowedOrigins []string

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Server is the journey HTTP API.
type Server struct {
	todos   TodoService
	health  Pinger
	log     zerolog.Logger
	origins []string

	shutdownTimeout time.Duration
	httpServer      *http.Server
	listener        net.Listener
}

// New creates a Server. Call Listen and Serve to accept connections, or
// mount Handler on an existing server.
func New(opts Options) *Server {
	s := &Server{
		todos:           opts.Todos,
		health:          opts.Health,
		log:             opts.Logger,
		origins:         opts.AllowedOrigins,
		shutdownTimeout: opts.ShutdownTimeout,
	}
	if s.shutdownTimeout <= 0 {
		s.shutdownTimeout = 10 * time.Second
	}

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadTimeout,
		WriteTimeout:      opts.WriteTimeout,
	}

	return s
}

// Handler returns the HTTP handler with all routes and middleware.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	// The browser client calls /api/todos; both trees serve the same routes.
	for _, prefix := range []string{"", "/api"} {
		mux.HandleFunc("GET "+prefix+"/todos", s.handleList)
		mux.HandleFunc("POST "+prefix+"/todos", s.handleCreate)
		mux.HandleFunc("GET "+prefix+"/todos/{id}", s.handleGet)
		mux.HandleFunc("PUT "+prefix+"/todos/{id}", s.handleUpdate)
		mux.HandleFunc("DELETE "+prefix+"/todos/{id}", s.handleDelete)

		// Method-less patterns only match when no method route does.
		mux.Handle(prefix+"/todos", methodNotAllowed("GET, HEAD, POST"))
		mux.Handle(prefix+"/todos/{id}", methodNotAllowed("GET, HEAD, PUT, DELETE"))
	}
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.Handle("/healthz", methodNotAllowed("GET, HEAD"))
	mux.HandleFunc("/", handleNotFound)

	return s.middleware(mux)
}

// Listen binds the server to addr. Use ":0" for a random port.
func (s *Server) Listen(addr string) error {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener
	return nil
}

// Addr returns the bound address, or "" before Listen.
func (s *Server) Addr() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// Serve accepts connections until ctx is cancelled, then shuts down
// gracefully within the configured shutdown timeout.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("server is not listening")
	}

	s.log.Info().Str("addr", s.Addr()).Msg("starting api server")

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.httpServer.Serve(s.listener)
	}()

	select {
	case err := <-errChan:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("api server: %w", err)
	case <-ctx.Done():
	}

	s.log.Info().Msg("shutting down api server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown api server: %w", err)
	}

	if err := <-errChan; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

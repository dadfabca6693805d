package server

import (
	"context"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/shelfplan/pkg/editor"
)

// DefaultAddr is the listen address used when none is configured.
const DefaultAddr = "127.0.0.1:8080"

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 10 * time.Second
	requestTimeout    = 30 * time.Second
)

// Server serves the planogram API.
type Server struct {
	runner *editor.Runner
	logger *log.Logger
	router chi.Router
}

// New creates a server. A nil logger uses log.Default().
func New(runner *editor.Runner, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	s := &Server{runner: runner, logger: logger}
	s.router = s.routes()
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	// ===== Global middleware =====
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(s.recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	// ===== Health =====
	r.Get("/healthz", s.handleHealth)

	// ===== Catalog =====
	r.Route("/catalog", func(r chi.Router) {
		r.Get("/", s.handleCatalog)
		r.Get("/{productID}", s.handleProduct)
	})

	// ===== Planograms =====
	r.Route("/planograms", func(r chi.Router) {
		r.Get("/", s.handleList)
		r.Post("/", s.handleCreate)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGet)
			r.Put("/", s.handleImport)
			r.Delete("/", s.handleDelete)

			r.Post("/preview", s.handlePreview)
			r.Get("/supports", s.handleSupports)
			r.Get("/graph", s.handleGraph)

			r.Post("/items", s.handleDrop)
			r.Patch("/items/{uid}", s.handleMove)
			r.Delete("/items/{uid}", s.handleRemoveItem)

			r.Post("/units", s.handleAddUnit)
			r.Route("/units/{unitID}", func(r chi.Router) {
				r.Patch("/", s.handleSetUnitWidth)
				r.Delete("/", s.handleRemoveUnit)
				r.Post("/surfaces", s.handleAddSurface)
				r.Patch("/surfaces/{surfaceID}", s.handleMoveSurface)
				r.Delete("/surfaces/{surfaceID}", s.handleRemoveSurface)
			})
		})
	})

	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is ListenAndServe on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if stderrors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; err != nil && !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

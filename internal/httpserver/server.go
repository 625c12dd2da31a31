// internal/httpserver/server.go
//
// HTTP server wiring for the game catalog frontend.
// Responsibilities:
//   - Router + middleware (request IDs, real IP, request logging, panic
//     recovery, timeouts, CORS).
//   - Page endpoints: "/", "/index.html", "/results.html", "/game-details.html".
//   - Search form target: "/search" redirects to the results page.
//   - Stylesheet under "/static/", diagnostics under "/health".
//
// Notes:
//   - Every page request parses a fresh copy of its shell, so the dispatcher
//     runs exactly once per served document.
//   - CORS is origin-aware and credentials-enabled.

package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/gamecatalog/web/assets"
	"github.com/gamecatalog/web/internal/dispatch"
)

const shutdownGrace = 5 * time.Second

// Options tunes the server.
type Options struct {
	Origins        []string      // allowed CORS origins
	HandlerTimeout time.Duration // 0 disables the per-request timeout
	Logger         zerolog.Logger
}

// Server bundles router, page loader and dispatcher.
type Server struct {
	r     *chi.Mux
	pages *assets.Pages
	disp  *dispatch.Dispatcher
	log   zerolog.Logger
}

// New constructs a Server, installs middleware, and registers routes.
func New(pages *assets.Pages, disp *dispatch.Dispatcher, opts Options) *Server {
	s := &Server{r: chi.NewRouter(), pages: pages, disp: disp, log: opts.Logger}

	// --- middleware ---
	s.r.Use(chimw.RequestID) // add X-Request-ID
	s.r.Use(chimw.RealIP)    // set RemoteAddr from X-Forwarded-For etc.
	for _, mw := range requestLogging(s.log) {
		s.r.Use(mw)
	}
	s.r.Use(chimw.Recoverer) // recover from panics
	if opts.HandlerTimeout > 0 {
		s.r.Use(chimw.Timeout(opts.HandlerTimeout)) // bound handler time
	}
	s.r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.Origins,
		AllowedMethods:   []string{"GET", "HEAD", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// --- diagnostics ---
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})

	s.mountPages()

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start serves HTTP on addr until ctx is canceled, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// writeJSON encodes v with the given status.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

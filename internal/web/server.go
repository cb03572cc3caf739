// Package web serves books over HTTP: a JSON API for sheets and a small HTML
// view for browsing them.
package web

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/JonMunkholm/gridbook/internal/catalog"
	"github.com/JonMunkholm/gridbook/internal/config"
	"github.com/JonMunkholm/gridbook/internal/logging"
	"github.com/JonMunkholm/gridbook/internal/reader"
	weblog "github.com/JonMunkholm/gridbook/internal/web/middleware"
)

// Server is the HTTP front end of a catalog.
type Server struct {
	catalog *catalog.Catalog
	cfg     *config.Config
	db      reader.Querier
	imports *importLimiter
	router  *chi.Mux
	server  *http.Server
}

// NewServer creates a server for cat. db may be nil, which disables query
// imports.
func NewServer(cat *catalog.Catalog, cfg *config.Config, db reader.Querier) *Server {
	s := &Server{
		catalog: cat,
		cfg:     cfg,
		db:      db,
		imports: newImportLimiter(cfg.Catalog.MaxConcurrentImports, cfg.Catalog.ImportWait),
		router:  chi.NewRouter(),
	}
	s.setupMiddleware()
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(weblog.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(s.requestTimeout()))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Pages
	s.router.Get("/", s.handleIndex)
	s.router.Get("/books/{bookID}/sheets/{sheet}", s.handleSheetPage)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/books", s.handleListBooks)
		r.Post("/books", s.handleUploadBook)
		r.Post("/books/query", s.handleQueryBook)
		r.Get("/books/{bookID}", s.handleGetBook)
		r.Delete("/books/{bookID}", s.handleDeleteBook)

		r.Route("/books/{bookID}/sheets/{sheet}", func(r chi.Router) {
			r.Get("/", s.handleSheet)
			r.Get("/rows", s.handleSheetRows)
			r.Get("/value", s.handleSheetValue)
			r.Get("/validate", s.handleValidateSheet)
			r.Put("/columns/{index}", s.handleRenameColumn)
		})
	})
}

func (s *Server) requestTimeout() time.Duration {
	if s.cfg.Server.RequestTimeout > 0 {
		return s.cfg.Server.RequestTimeout
	}
	return 60 * time.Second
}

// Start begins listening for HTTP requests. It returns nil after Shutdown.
func (s *Server) Start(addr string) error {
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	logging.FromContext(context.Background()).Info("starting server", "addr", addr)
	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, letting running imports finish
// within ctx.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	err := s.server.Shutdown(ctx)

	if n := s.imports.active(); n > 0 {
		logger := logging.FromContext(ctx)
		logger.Info("waiting for imports to complete", "active", n)
		if derr := s.imports.drain(ctx); derr != nil {
			logger.Warn("imports did not complete in time", "error", derr)
		}
	}
	return err
}

// Router returns the underlying chi router for testing.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// securityHeaders adds security headers to all responses.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; style-src 'self' 'unsafe-inline'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		next.ServeHTTP(w, r)
	})
}

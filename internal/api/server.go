// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/theveganplaylist/server/internal/catalog/album"
	"github.com/theveganplaylist/server/internal/catalog/artist"
	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/importer/spotify"
	"github.com/theveganplaylist/server/internal/platform/config"
	"github.com/theveganplaylist/server/internal/platform/constants"
	"github.com/theveganplaylist/server/internal/platform/middleware"
	"github.com/theveganplaylist/server/internal/platform/sec"
	"github.com/theveganplaylist/server/internal/users/admin"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Admin handles the console login.
	Admin *admin.Handler

	// Song handles faceted search and song management. Its FilterOptions
	// endpoint is additionally exposed at the top level as /filters.
	Song *song.Handler

	// Artist handles artist discovery, discographies, and management.
	Artist *artist.Handler

	// Album handles release browsing and management.
	Album *album.Handler

	// Genre serves the taxonomy tree, selection, and classification views.
	Genre *genre.Handler

	// Import runs Spotify discography imports. Admin only; nil when no
	// Spotify credentials are configured.
	Import *spotify.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/songs", h.Song.Routes())
		api.Mount("/artists", h.Artist.Routes())
		api.Mount("/albums", h.Album.Routes())
		api.Mount("/genres", h.Genre.Routes())
		api.Get("/filters", h.Song.FilterOptions)

		api.Route("/admin", func(console chi.Router) {
			console.Mount("/", h.Admin.Routes())

			if h.Import != nil {
				console.Group(func(protected chi.Router) {
					protected.Use(middleware.RequireRole(sec.RoleAdmin))
					protected.Mount("/import", h.Import.Routes())
				})
			}
		})
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}

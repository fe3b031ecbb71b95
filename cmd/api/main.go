// Copyright (c) 2026 The Vegan Playlist. All rights reserved.
// Author: dev@theveganplaylist.com

// Command api is the entry point for the Vegan Playlist HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/theveganplaylist/server/internal/api"
	"github.com/theveganplaylist/server/internal/catalog/album"
	"github.com/theveganplaylist/server/internal/catalog/artist"
	"github.com/theveganplaylist/server/internal/catalog/song"
	"github.com/theveganplaylist/server/internal/genre"
	"github.com/theveganplaylist/server/internal/importer/spotify"
	"github.com/theveganplaylist/server/internal/platform/config"
	"github.com/theveganplaylist/server/internal/platform/constants"
	"github.com/theveganplaylist/server/internal/platform/migration"
	pgstore "github.com/theveganplaylist/server/internal/platform/postgres"
	redisstore "github.com/theveganplaylist/server/internal/platform/redis"
	"github.com/theveganplaylist/server/internal/platform/sec"
	"github.com/theveganplaylist/server/internal/users/admin"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	// A local .env is a development convenience; in production all
	// configuration arrives through real environment variables.
	_ = godotenv.Load()

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Auth Service ───────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.TokenSecret, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	hierarchy := genre.Default()
	planner := song.NewPlanner(hierarchy)

	songRepository := song.NewRepository(pool, planner)
	songService := song.NewService(songRepository, hierarchy, rdb, log)

	artistRepository := artist.NewRepository(pool, hierarchy)
	artistService := artist.NewService(artistRepository, log)

	albumRepository := album.NewRepository(pool)
	albumService := album.NewService(albumRepository, log)

	adminService := admin.NewService(cfg.AdminUsername, cfg.AdminPasswordHash, jwtSvc, log)

	var importHandler *spotify.Handler
	if cfg.SpotifyConfigured() {
		client := spotify.NewClient(spotify.ClientConfig{
			ClientID:     cfg.SpotifyClientID,
			ClientSecret: cfg.SpotifyClientSecret,
		})
		importer := spotify.NewImporter(client, artistService, albumService, songService, hierarchy, log)
		importHandler = spotify.NewHandler(importer)
	} else {
		log.Warn("spotify_credentials_missing", slog.String("effect", "import endpoints disabled"))
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Admin:     admin.NewHandler(adminService),
		Song:      song.NewHandler(songService),
		Artist:    artist.NewHandler(artistService, songService),
		Album:     album.NewHandler(albumService),
		Genre:     genre.NewHandler(hierarchy),
		Import:    importHandler,
	}

	// The server context outlives startup; it scopes background work such
	// as the rate limiter's cleanup loop.
	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}

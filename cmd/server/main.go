// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package main is the entry point for the Foodgram API server.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: defaults, optional config.yaml, .env and environment (Koanf v2)
//  2. Logging: zerolog, with a slog bridge for the supervisor
//  3. Database: DuckDB schema and indexes
//  4. Admin bootstrap: optional staff account from ADMIN_* variables
//  5. Auth: JWT token manager, Casbin enforcer, login rate limiter
//  6. Media: recipe image store
//  7. HTTP: chi router with the /api routes, /media files and probes
//  8. Supervisor tree: HTTP server and maintenance services
//
// # Configuration
//
// Required in production:
//   - TOKEN_SECRET: 32+ character secret for token signing
//
// Optional staff bootstrap:
//   - ADMIN_EMAIL, ADMIN_USERNAME, ADMIN_PASSWORD
//
// # Signal Handling
//
// SIGINT and SIGTERM cancel the root context. The HTTP server stops
// accepting connections and drains in-flight requests within
// HTTP_SHUTDOWN_TIMEOUT, then the database is closed.
//
// # Example Usage
//
//	export TOKEN_SECRET=$(openssl rand -base64 48)
//	export DUCKDB_PATH=./foodgram.duckdb
//	export MEDIA_DIR=./media
//	./foodgram
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/supervisor"
	"github.com/tomtom215/foodgram/internal/supervisor/services"
)

func main() {
	cfg, err := config.LoadWithKoanf()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	logging.Info().
		Str("environment", cfg.Server.Environment).
		Str("db_path", cfg.Database.Path).
		Str("media_dir", cfg.Media.Dir).
		Msg("Starting Foodgram")

	if err := run(cfg); err != nil {
		logging.Fatal().Err(err).Msg("Server exited with error")
	}
	logging.Info().Msg("Application stopped gracefully")
}

func run(cfg *config.Config) error {
	db, err := database.New(&cfg.Database)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing database")
		}
	}()
	logging.Info().Msg("Database initialized successfully")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bootstrapAdmin(ctx, db, &cfg.Security); err != nil {
		return err
	}

	components, err := newApp(cfg, db)
	if err != nil {
		return err
	}

	if cfg.Security.RateLimitDisabled {
		logging.Warn().Msg("API rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}
	if cfg.IsProduction() && len(cfg.Security.CORSOrigins) == 1 && cfg.Security.CORSOrigins[0] == "*" {
		logging.Warn().Msg("CORS_ORIGINS=* in production; set explicit origins")
	}

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfig{
		FailureThreshold: 5,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  cfg.Server.ShutdownTimeout,
	})
	if err != nil {
		return err
	}

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           components.router.SetupChi(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree.AddMaintenanceService(services.NewTokenJanitor(db, cfg.Security.TokenPurgeEvery))
	tree.AddMaintenanceService(components.loginLimiter)
	tree.AddMaintenanceService(components.handler.Cache())
	if decisions := components.enforcer.DecisionCache(); decisions != nil {
		tree.AddMaintenanceService(decisions)
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	logging.Info().Msg("Starting supervisor tree")
	err = <-tree.ServeBackground(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	return nil
}

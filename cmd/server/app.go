// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/tomtom215/foodgram/internal/api"
	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/models"
)

// app holds the components main hands to the supervisor tree.
type app struct {
	handler      *api.Handler
	router       *api.Router
	loginLimiter *auth.RateLimiter
	enforcer     *authz.Enforcer
}

func newApp(cfg *config.Config, db *database.DB) (*app, error) {
	tokens, err := auth.NewTokenManager(&cfg.Security, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize token manager: %w", err)
	}

	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize RBAC enforcer: %w", err)
	}

	store, err := media.NewStore(&cfg.Media)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize media store: %w", err)
	}

	loginLimiter := auth.NewRateLimiter(cfg.Security.LoginRatePerMin, cfg.Security.LoginBurst)

	handler := api.NewHandler(api.HandlerDeps{
		DB:           db,
		Config:       cfg,
		Tokens:       tokens,
		Enforcer:     enforcer,
		Media:        store,
		LoginLimiter: loginLimiter,
	})

	chiMw := api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security))
	router := api.NewRouter(handler, auth.NewMiddleware(tokens, db), chiMw)

	return &app{handler: handler, router: router, loginLimiter: loginLimiter, enforcer: enforcer}, nil
}

// bootstrapAdmin creates or promotes the staff account named by ADMIN_*.
// Config validation has already checked the password against the policy.
func bootstrapAdmin(ctx context.Context, db *database.DB, sec *config.SecurityConfig) error {
	if sec.AdminEmail == "" {
		return nil
	}

	hash, err := auth.HashPassword(sec.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:        strings.ToLower(strings.TrimSpace(sec.AdminEmail)),
		Username:     sec.AdminUsername,
		FirstName:    "Admin",
		LastName:     "Foodgram",
		PasswordHash: hash,
	}
	created, err := db.EnsureStaffUser(ctx, admin)
	if err != nil {
		return fmt.Errorf("failed to bootstrap admin account: %w", err)
	}

	if created {
		logging.Info().Int64("user_id", admin.ID).Str("email", admin.Email).Msg("Admin account created")
	} else {
		logging.Info().Int64("user_id", admin.ID).Msg("Admin account present")
	}
	return nil
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/cache"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/media"
)

// catalogCacheTTL bounds how stale the cached tag list and ingredient
// searches may get when another process writes the catalog.
const catalogCacheTTL = 10 * time.Minute

// Handler contains dependencies for API handlers
//
// Handler methods are split across files by resource:
//   - handlers_recipes.go: recipe CRUD
//   - handlers_recipe_lists.go: favorites, shopping cart, download
//   - handlers_catalog.go: tags and ingredients
//   - handlers_users.go: user directory, account, subscriptions
//   - handlers_auth.go: token login and logout
//   - handlers_health.go: probes and not-found responses
type Handler struct {
	db           *database.DB
	config       *config.Config
	tokens       *auth.TokenManager
	enforcer     *authz.Enforcer
	media        *media.Store
	cache        *cache.Cache
	loginLimiter *auth.RateLimiter
	startTime    time.Time
}

// HandlerDeps groups the collaborators built by main.
type HandlerDeps struct {
	DB           *database.DB
	Config       *config.Config
	Tokens       *auth.TokenManager
	Enforcer     *authz.Enforcer
	Media        *media.Store
	LoginLimiter *auth.RateLimiter

	// Cache is optional; a private catalog cache is created when nil.
	Cache *cache.Cache
}

// NewHandler creates the API handler.
//
//	handler := api.NewHandler(api.HandlerDeps{DB: db, Config: cfg, ...})
//	router := api.NewRouter(handler, authMiddleware)
//	srv := &http.Server{Handler: router.SetupChi()}
func NewHandler(deps HandlerDeps) *Handler {
	c := deps.Cache
	if c == nil {
		c = cache.New("catalog", catalogCacheTTL)
	}
	return &Handler{
		db:           deps.DB,
		config:       deps.Config,
		tokens:       deps.Tokens,
		enforcer:     deps.Enforcer,
		media:        deps.Media,
		cache:        c,
		loginLimiter: deps.LoginLimiter,
		startTime:    time.Now(),
	}
}

// Cache exposes the catalog cache so the supervisor can run its sweeper.
func (h *Handler) Cache() *cache.Cache {
	return h.cache
}

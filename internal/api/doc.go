// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package api provides the HTTP REST API layer for Foodgram.

Key Components:

  - Router: chi routes and the global middleware stack
  - Handler: request handlers for recipes, recipe lists, the catalog, users,
    subscriptions and token auth
  - Operation contracts: one table maps each operation kind to whether it
    reads a body, its success status and its responder
  - Response formatting: the {status, data, metadata, error} envelope

Routes (all under /api, trailing slash optional):

	GET/POST          /recipes/
	GET/PATCH/DELETE  /recipes/{id}/
	POST/DELETE       /recipes/{id}/favorite/
	POST/DELETE       /recipes/{id}/shopping_cart/
	GET               /recipes/download_shopping_cart/
	GET/POST          /tags/, /ingredients/
	GET               /tags/{id}/, /ingredients/{id}/
	GET/POST          /users/
	GET               /users/{id}/, /users/subscriptions/
	GET/DELETE        /users/me/
	POST              /users/set_password/
	POST/DELETE       /users/{id}/subscribe/
	POST              /auth/token/login/, /auth/token/logout/

Authentication:

The auth middleware resolves an optional caller from "Authorization: Token
<t>". Handlers check what they need with requireAuth, requireOwner and
requireStaff, which consult the casbin policy in internal/authz.

Errors:

Failures use stable codes (VALIDATION_ERROR, CONFLICT, NOT_IN_LIST,
NOT_FOUND, UNAUTHORIZED, FORBIDDEN, INVALID_CREDENTIALS,
RATE_LIMIT_EXCEEDED, DATABASE_ERROR). Bodyless 204 responses carry their
outcome in the X-Foodgram-Message header.

Usage Example:

	handler := api.NewHandler(api.HandlerDeps{
	    DB: db, Config: cfg, Tokens: tokens, Enforcer: enforcer,
	    Media: store, LoginLimiter: limiter,
	})
	router := api.NewRouter(handler, auth.NewMiddleware(tokens, db),
	    api.NewChiMiddleware(api.ChiMiddlewareConfigFromSecurity(&cfg.Security)))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api

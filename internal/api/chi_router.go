// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/middleware"
)

// Router sets up HTTP routes using Chi router.
type Router struct {
	handler       *Handler
	middleware    *auth.Middleware
	chiMiddleware *ChiMiddleware
}

// NewRouter creates a router. chiMw may be nil for the defaults.
func NewRouter(handler *Handler, authMiddleware *auth.Middleware, chiMw *ChiMiddleware) *Router {
	if chiMw == nil {
		chiMw = NewChiMiddleware(nil)
	}
	return &Router{
		handler:       handler,
		middleware:    authMiddleware,
		chiMiddleware: chiMw,
	}
}

// SetupChi configures all HTTP routes. Trailing slashes are optional on
// every route.
func (router *Router) SetupChi() http.Handler {
	h := router.handler
	r := chi.NewRouter()

	// ========================
	// Global Middleware Stack
	// ========================
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS()) // CORS must be global to handle OPTIONS preflight
	r.Use(auth.SecurityHeaders)
	r.Use(chimiddleware.StripSlashes)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)

	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", h.HealthLive)
		r.Get("/ready", h.HealthReady)
	})

	if h.media != nil {
		r.Get(h.media.URLPrefix()+"*", h.media.Handler().ServeHTTP)
	}

	// ========================
	// API Endpoints
	// ========================
	// The auth middleware only resolves the optional caller; handlers decide
	// what they require.
	r.Route("/api", func(r chi.Router) {
		r.Use(router.chiMiddleware.RateLimit())
		r.Use(router.middleware.Resolve)

		r.Route("/auth/token", func(r chi.Router) {
			r.Post("/login", h.Login)
			r.Post("/logout", h.Logout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Get("/", h.UserList)
			r.Post("/", h.UserSignup)
			r.Get("/me", h.UserMe)
			r.Delete("/me", h.DeleteAccount)
			r.Post("/set_password", h.SetPassword)
			r.Get("/subscriptions", h.Subscriptions)
			r.Get("/{id}", h.UserGet)
			r.Post("/{id}/subscribe", h.Subscribe)
			r.Delete("/{id}/subscribe", h.Unsubscribe)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", h.TagList)
			r.Post("/", h.TagCreate)
			r.Get("/{id}", h.TagGet)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", h.IngredientList)
			r.Post("/", h.IngredientCreate)
			r.Get("/{id}", h.IngredientGet)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", h.RecipeList)
			r.Post("/", h.RecipeCreate)
			r.Get("/download_shopping_cart", h.DownloadShoppingCart)
			r.Get("/{id}", h.RecipeGet)
			r.Patch("/{id}", h.RecipeUpdate)
			r.Delete("/{id}", h.RecipeDelete)
			r.Post("/{id}/favorite", h.FavoriteAdd)
			r.Delete("/{id}/favorite", h.FavoriteRemove)
			r.Post("/{id}/shopping_cart", h.ShoppingCartAdd)
			r.Delete("/{id}/shopping_cart", h.ShoppingCartRemove)
		})
	})

	return r
}

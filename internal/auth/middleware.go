// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
)

// UserLookup loads the account behind a validated token.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// Middleware resolves the optional caller of each request. It never rejects
// anonymous requests; handlers decide what they require.
type Middleware struct {
	tokens *TokenManager
	users  UserLookup
}

// NewMiddleware creates the authentication middleware.
func NewMiddleware(tokens *TokenManager, users UserLookup) *Middleware {
	return &Middleware{tokens: tokens, users: users}
}

// tokenSchemes are the accepted Authorization prefixes.
var tokenSchemes = []string{"token", "bearer"}

// ExtractToken returns the credential of a "Token <t>" or "Bearer <t>"
// Authorization header, or "" when the header carries another scheme.
func ExtractToken(header string) string {
	scheme, credential, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok {
		return ""
	}
	for _, s := range tokenSchemes {
		if strings.EqualFold(scheme, s) {
			return strings.TrimSpace(credential)
		}
	}
	return ""
}

// Resolve stores the Principal of a valid token in the request context. A
// presented but invalid token is rejected with 401 even on public routes.
func (m *Middleware) Resolve(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := ExtractToken(r.Header.Get("Authorization"))
		if raw == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		claims, err := m.tokens.Validate(ctx, raw)
		if err != nil {
			logging.Ctx(ctx).Debug().Err(err).Msg("Rejected auth token")
			authFailuresTotal.WithLabelValues("invalid_token").Inc()
			writeUnauthorized(w, "Invalid token.")
			return
		}

		user, err := m.users.GetUserByID(ctx, claims.UserID)
		if err != nil {
			logging.Ctx(ctx).Warn().Err(err).Int64("user_id", claims.UserID).Msg("Token owner not found")
			authFailuresTotal.WithLabelValues("unknown_user").Inc()
			writeUnauthorized(w, "User inactive or deleted.")
			return
		}

		ctx = ContextWithPrincipal(ctx, &Principal{User: user, Claims: claims})
		ctx = logging.ContextWithUserID(ctx, user.ID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Token")
	w.WriteHeader(http.StatusUnauthorized)

	resp := models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now()},
		Error:    &models.APIError{Code: "UNAUTHORIZED", Message: message},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		logging.Error().Err(err).Msg("Failed to encode auth error")
	}
}

// ClientIP returns the host part of RemoteAddr. Proxy headers are applied
// earlier by chi's RealIP middleware.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// SecurityHeaders sets the response headers of a JSON API that is never
// framed or rendered as HTML.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "same-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; img-src 'self'; frame-ancestors 'none'")
		next.ServeHTTP(w, r)
	})
}

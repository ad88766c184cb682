// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
)

// invalidCredentials is returned for unknown emails and wrong passwords
// alike.
const invalidCredentials = "Unable to log in with provided credentials."

// dummyHash keeps the response time of unknown emails close to that of
// wrong passwords.
var dummyHash, _ = auth.HashPassword("foodgram-timing-equaliser")

// TokenResponse is the body of a successful login.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}

// Login handles POST /api/auth/token/login/. Attempts are rate limited per
// client IP.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allow(w, r, authz.ObjToken, authz.ActCreate) {
		return
	}
	if h.loginLimiter != nil && !h.loginLimiter.Allow(auth.ClientIP(r)) {
		metrics.RecordRateLimitHit("login")
		w.Header().Set("Retry-After", "60")
		respondError(w, http.StatusTooManyRequests, ErrCodeRateLimited, "Too many login attempts. Please try again later.", nil)
		return
	}
	var req TokenLoginRequest
	if !h.decode(w, r, opLogin, &req) {
		return
	}

	u, err := h.db.GetUserByEmail(r.Context(), normalizeEmail(req.Email))
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		respondStoreError(w, r, err)
		return
	}
	if u == nil {
		auth.CheckPassword(dummyHash, req.Password)
		respondError(w, http.StatusBadRequest, ErrCodeInvalidCredentials, invalidCredentials, nil)
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.Password) {
		logging.Ctx(r.Context()).Info().Int64("login_user_id", u.ID).Msg("Login failed")
		respondError(w, http.StatusBadRequest, ErrCodeInvalidCredentials, invalidCredentials, nil)
		return
	}

	token, err := h.tokens.Issue(r.Context(), u.ID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
		return
	}
	metrics.RecordTokenOperation("issue", 1)
	logging.Ctx(r.Context()).Info().Int64("login_user_id", u.ID).Msg("Token issued")

	h.finish(w, opLogin, TokenResponse{AuthToken: token}, start)
}

// Logout handles POST /api/auth/token/logout/ and revokes the token the
// request was authenticated with.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.requireAuth(w, r, authz.ObjToken, authz.ActDelete) == nil {
		return
	}
	p := auth.PrincipalFromContext(r.Context())
	if err := h.tokens.Revoke(r.Context(), p.Claims); err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
		return
	}
	metrics.RecordTokenOperation("revoke", 1)

	h.finish(w, opDelete, "logged out", start)
}

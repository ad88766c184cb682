// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// UserList handles GET /api/users/ (paginated).
func (h *Handler) UserList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjUser) {
		return
	}

	p := h.parsePage(r)
	users, count, err := h.db.ListUsers(r.Context(), p.Limit, p.Offset())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if pageOutOfRange(p, count) {
		respondInvalidPage(w)
		return
	}

	ids := make([]int64, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	subscribed, err := h.db.SubscribedSet(r.Context(), auth.ViewerID(r.Context()), ids)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}

	profiles := make([]models.UserProfile, len(users))
	for i := range users {
		profiles[i] = users[i].Profile(subscribed[users[i].ID])
	}
	h.finish(w, opList, newPage(r, p, count, profiles), start)
}

// UserGet handles GET /api/users/{id}/.
func (h *Handler) UserGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjUser) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	u, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	subscribed, err := h.db.IsSubscribed(r.Context(), auth.ViewerID(r.Context()), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opRetrieve, u.Profile(subscribed), start)
}

// UserMe handles GET /api/users/me/.
func (h *Handler) UserMe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjAccount, authz.ActRead)
	if u == nil {
		return
	}
	h.finish(w, opRetrieve, u.Profile(false), start)
}

// UserSignup handles POST /api/users/.
func (h *Handler) UserSignup(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allow(w, r, authz.ObjUser, authz.ActCreate) {
		return
	}
	var req SignupRequest
	if !h.decode(w, r, opCreate, &req) {
		return
	}

	email := normalizeEmail(req.Email)
	if verr := passwordViolations("password", req.Password, req.Username, email, req.FirstName, req.LastName); verr != nil {
		respondValidation(w, verr)
		return
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
		return
	}

	u := &models.User{
		Email:        email,
		Username:     req.Username,
		FirstName:    validation.SanitizeText(req.FirstName),
		LastName:     validation.SanitizeText(req.LastName),
		PasswordHash: hash,
	}
	if err := h.db.CreateUser(r.Context(), u); err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordUserRegistered()
	logging.Ctx(r.Context()).Info().Int64("new_user_id", u.ID).Str("username", u.Username).Msg("User registered")

	h.finish(w, opCreate, models.CreatedUser{
		Email:     u.Email,
		ID:        u.ID,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	}, start)
}

// SetPassword handles POST /api/users/set_password/.
func (h *Handler) SetPassword(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjAccount, authz.ActWrite)
	if u == nil {
		return
	}
	var req SetPasswordRequest
	if !h.decode(w, r, opCommand, &req) {
		return
	}

	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		respondValidation(w, validation.NewFieldError("current_password", "password", "invalid password"))
		return
	}
	if verr := passwordViolations("new_password", req.NewPassword, u.Username, u.Email, u.FirstName, u.LastName); verr != nil {
		respondValidation(w, verr)
		return
	}
	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", err)
		return
	}
	if err := h.db.SetPassword(r.Context(), u.ID, hash); err != nil {
		respondStoreError(w, r, err)
		return
	}
	logging.Ctx(r.Context()).Info().Msg("Password changed")

	h.finish(w, opCommand, "password changed", start)
}

// DeleteAccount handles DELETE /api/users/me/. The caller confirms with the
// current password; the account goes together with its recipes, lists,
// follows and tokens.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjAccount, authz.ActDelete)
	if u == nil {
		return
	}
	var req DeleteAccountRequest
	if !h.decode(w, r, opCommand, &req) {
		return
	}
	if !auth.CheckPassword(u.PasswordHash, req.CurrentPassword) {
		respondValidation(w, validation.NewFieldError("current_password", "password", "invalid password"))
		return
	}

	images, err := h.db.DeleteUser(r.Context(), u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	for _, img := range images {
		h.media.Remove(img)
	}
	logging.Ctx(r.Context()).Info().Int("recipes_removed", len(images)).Msg("Account deleted")

	h.finish(w, opCommand, "account deleted", start)
}

// Subscriptions handles GET /api/users/subscriptions/. Each followed user
// carries their newest recipes (capped by recipes_limit when given) and
// their total recipe count.
func (h *Handler) Subscriptions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjSubscription, authz.ActRead)
	if u == nil {
		return
	}

	p := h.parsePage(r)
	users, count, err := h.db.Subscriptions(r.Context(), u.ID, p.Limit, p.Offset())
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if pageOutOfRange(p, count) {
		respondInvalidPage(w)
		return
	}

	subs, err := h.subscriptionsFor(r.Context(), users, recipesLimit(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opList, newPage(r, p, count, subs), start)
}

// Subscribe handles POST /api/users/{id}/subscribe/.
func (h *Handler) Subscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjSubscription, authz.ActCreate)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.db.Follow(r.Context(), u.ID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordSubscriptionChange(true)

	target, err := h.db.GetUserByID(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	subs, err := h.subscriptionsFor(r.Context(), []models.User{*target}, recipesLimit(r))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opSubscribe, subs[0], start)
}

// Unsubscribe handles DELETE /api/users/{id}/subscribe/.
func (h *Handler) Unsubscribe(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjSubscription, authz.ActDelete)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.db.Unfollow(r.Context(), u.ID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordSubscriptionChange(false)

	h.finish(w, opUnsubscribe, "unsubscribed", start)
}

// subscriptionsFor enriches followed users with their recipes.
func (h *Handler) subscriptionsFor(ctx context.Context, users []models.User, perAuthor int) ([]models.Subscription, error) {
	ids := make([]int64, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	byAuthor, err := h.db.RecipesByAuthors(ctx, ids, perAuthor)
	if err != nil {
		return nil, err
	}

	subs := make([]models.Subscription, len(users))
	for i := range users {
		ar := byAuthor[users[i].ID]
		subs[i] = models.Subscription{
			UserProfile:  users[i].Profile(true),
			Recipes:      ar.Recipes,
			RecipesCount: ar.Total,
		}
	}
	return subs, nil
}

// recipesLimit reads ?recipes_limit=; 0 means no cap.
func recipesLimit(r *http.Request) int {
	n := getIntParam(r, "recipes_limit", 0)
	if n < 0 {
		return 0
	}
	return n
}

// passwordViolations runs the password policy and reports failures on field.
func passwordViolations(field, password string, attrs ...string) *validation.RequestValidationError {
	var verr *validation.RequestValidationError
	for _, msg := range config.DefaultPasswordPolicy().Violations(password, attrs...) {
		if verr == nil {
			verr = validation.NewFieldError(field, "password", msg)
			continue
		}
		verr.Add(field, "password", msg)
	}
	return verr
}

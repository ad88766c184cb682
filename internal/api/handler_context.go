// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/models"
)

// currentUser returns the authenticated caller or nil.
func currentUser(r *http.Request) *models.User {
	if p := auth.PrincipalFromContext(r.Context()); p != nil {
		return p.User
	}
	return nil
}

// requireAuth returns the caller, or writes 401 and returns nil. The
// caller's role must also be granted action on object.
func (h *Handler) requireAuth(w http.ResponseWriter, r *http.Request, object, action string) *models.User {
	u := currentUser(r)
	if u == nil {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication credentials were not provided.", nil)
		return nil
	}
	if !h.enforcer.Can(u, object, action) {
		respondError(w, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action.", nil)
		return nil
	}
	return u
}

// requireOwner checks that u authored the resource. Roles granted
// anyAction on object (staff moderation) pass for foreign resources.
func (h *Handler) requireOwner(w http.ResponseWriter, u *models.User, ownerID int64, object, ownAction, anyAction string) bool {
	if u.ID == ownerID && h.enforcer.Can(u, object, ownAction) {
		return true
	}
	if anyAction != "" && h.enforcer.Can(u, object, anyAction) {
		return true
	}
	respondError(w, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action.", nil)
	return false
}

// requireStaff returns a staff caller allowed to create object, or writes
// 401/403 and returns nil.
func (h *Handler) requireStaff(w http.ResponseWriter, r *http.Request, object string) *models.User {
	return h.requireAuth(w, r, object, authz.ActCreate)
}

// allowRead applies the policy to read-only routes that anonymous callers
// may use. It only fails if the policy has been narrowed.
func (h *Handler) allowRead(w http.ResponseWriter, r *http.Request, object string) bool {
	return h.allow(w, r, object, authz.ActRead)
}

// allow checks object/action for the optional caller.
func (h *Handler) allow(w http.ResponseWriter, r *http.Request, object, action string) bool {
	u := currentUser(r)
	if h.enforcer.Can(u, object, action) {
		return true
	}
	if u == nil {
		respondError(w, http.StatusUnauthorized, ErrCodeUnauthorized, "Authentication credentials were not provided.", nil)
	} else {
		respondError(w, http.StatusForbidden, ErrCodeForbidden, "You do not have permission to perform this action.", nil)
	}
	return false
}

// idParam parses the {id} URL parameter. A malformed id is a 404, the same
// as an id that does not exist.
func idParam(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found.", nil)
		return 0, false
	}
	return id, true
}

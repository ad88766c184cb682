// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"

	"github.com/tomtom215/foodgram/internal/models"
)

type contextKey string

const principalContextKey contextKey = "principal"

// Principal is the authenticated caller of a request.
type Principal struct {
	User   *models.User
	Claims *Claims
}

// ContextWithPrincipal stores the caller in ctx.
func ContextWithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey, p)
}

// PrincipalFromContext returns the caller, or nil for anonymous requests.
func PrincipalFromContext(ctx context.Context) *Principal {
	p, _ := ctx.Value(principalContextKey).(*Principal)
	return p
}

// ViewerID returns the caller's user id, 0 when anonymous.
func ViewerID(ctx context.Context) int64 {
	if p := PrincipalFromContext(ctx); p != nil && p.User != nil {
		return p.User.ID
	}
	return 0
}

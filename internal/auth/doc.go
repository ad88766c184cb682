// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package auth provides password hashing, token authentication and the
request-scoped caller.

Key Components:

  - HashPassword / CheckPassword: bcrypt password storage
  - TokenManager: HS256 tokens whose jti is recorded in auth_tokens, so a
    logout revokes the token server-side before it expires
  - Middleware.Resolve: reads "Authorization: Token <t>" (or Bearer) and puts
    the Principal in the request context; it never rejects anonymous callers
  - RateLimiter: per-key token bucket used to throttle logins
  - SecurityHeaders: nosniff, frame and CSP headers for the JSON API

Authorization decisions are not made here. Handlers check the Principal
explicitly (see internal/api) and consult internal/authz for role rules.

Usage:

	tokens, err := auth.NewTokenManager(&cfg.Security, db)
	if err != nil {
	    return err
	}
	mw := auth.NewMiddleware(tokens, db)
	r.Use(mw.Resolve)
*/
package auth

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package services adapts Foodgram components to suture.Service.
//
// Components that already implement Serve(ctx) error (auth.RateLimiter,
// cache.Cache) are added to the tree directly. This package holds the
// wrappers for the rest:
//   - HTTPServerService: net/http server with graceful shutdown
//   - TokenJanitor: periodic removal of expired and revoked tokens
package services

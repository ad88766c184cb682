// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: reuses or generates X-Request-ID and stores it for logging.Ctx
  - AccessLog: one zerolog entry per request, warn for slow, error for 5xx
  - PrometheusMetrics: request totals, latency and in-flight gauge keyed by
    chi route pattern
  - Compression: pooled gzip for clients sending Accept-Encoding: gzip

All middleware uses the func(http.Handler) http.Handler shape accepted by
chi.Router.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(middleware.PrometheusMetrics)
	r.Use(middleware.Compression)
*/
package middleware

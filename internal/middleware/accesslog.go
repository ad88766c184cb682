// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/foodgram/internal/logging"
)

// SlowRequestThreshold marks requests logged at warn level.
var SlowRequestThreshold = time.Second

// AccessLog writes one structured entry per request. Server errors log at
// error level and slow requests at warn.
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		duration := time.Since(start)

		logger := logging.Ctx(r.Context())
		ev := logger.Info()
		switch {
		case status >= http.StatusInternalServerError:
			ev = logger.Error()
		case duration > SlowRequestThreshold:
			ev = logger.Warn().Bool("slow", true)
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", duration).
			Msg("HTTP request")
	})
}

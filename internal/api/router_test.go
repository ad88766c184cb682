// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/models"
)

func decodeEnvelopeMeta(t *testing.T, rec *httptest.ResponseRecorder) models.Metadata {
	t.Helper()
	var env struct {
		Metadata models.Metadata `json:"metadata"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode metadata: %v", err)
	}
	return env.Metadata
}

func TestUnknownRoute(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		wantPath bool
	}{
		{"production", false, false},
		{"debug", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t, func(c *config.Config) { c.Server.Debug = tt.debug })
			rec := s.do(http.MethodGet, "/api/nothing-here/", "", nil)
			env := expectError(t, rec, http.StatusNotFound, ErrCodeNotFound)
			_, hasPath := env.Error.Details["path"]
			if hasPath != tt.wantPath {
				t.Errorf("details = %+v, want path=%v", env.Error.Details, tt.wantPath)
			}
		})
	}
}

func TestRouterBasics(t *testing.T) {
	s := newTestServer(t)

	t.Run("method not allowed", func(t *testing.T) {
		expectError(t, s.do(http.MethodPut, "/api/tags/", "", nil), http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed)
	})

	t.Run("trailing slash optional", func(t *testing.T) {
		expectStatus(t, s.do(http.MethodGet, "/api/tags", "", nil), http.StatusOK)
		expectStatus(t, s.do(http.MethodGet, "/api/tags/", "", nil), http.StatusOK)
	})

	t.Run("health", func(t *testing.T) {
		expectStatus(t, s.do(http.MethodGet, "/health/live", "", nil), http.StatusOK)
		expectStatus(t, s.do(http.MethodGet, "/health/ready", "", nil), http.StatusOK)
	})

	t.Run("metrics", func(t *testing.T) {
		expectStatus(t, s.do(http.MethodGet, "/api/tags/", "", nil), http.StatusOK)
		rec := s.do(http.MethodGet, "/metrics", "", nil)
		expectStatus(t, rec, http.StatusOK)
		if !strings.Contains(rec.Body.String(), "api_requests_total") {
			t.Error("metrics output lacks api_requests_total")
		}
	})

	t.Run("request id and security headers", func(t *testing.T) {
		rec := s.do(http.MethodGet, "/api/tags/", "", nil)
		if rec.Header().Get("X-Request-ID") == "" {
			t.Error("missing X-Request-ID")
		}
		if rec.Header().Get("X-Content-Type-Options") != "nosniff" {
			t.Error("missing nosniff")
		}
	})

	t.Run("gzip", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/tags/", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		rec := httptest.NewRecorder()
		s.http.ServeHTTP(rec, req)
		if rec.Header().Get("Content-Encoding") != "gzip" {
			t.Errorf("Content-Encoding = %q", rec.Header().Get("Content-Encoding"))
		}
	})
}

func TestAPIRateLimit(t *testing.T) {
	s := newTestServer(t, func(c *config.Config) {
		c.Security.RateLimitDisabled = false
		c.Security.RateLimitReqs = 2
	})
	for i := 0; i < 2; i++ {
		expectStatus(t, s.do(http.MethodGet, "/api/tags/", "", nil), http.StatusOK)
	}
	expectError(t, s.do(http.MethodGet, "/api/tags/", "", nil), http.StatusTooManyRequests, ErrCodeRateLimited)
}

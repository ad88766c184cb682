// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Server:   config.ServerConfig{Environment: "test"},
		Database: config.DatabaseConfig{Path: ":memory:", MaxMemory: "512MB", SkipIndexes: true},
		API:      config.APIConfig{DefaultPageSize: 6, MaxPageSize: 100},
		Security: config.SecurityConfig{
			TokenSecret:       "test-secret-that-is-long-enough-for-hs256",
			TokenTTL:          time.Hour,
			RateLimitDisabled: true,
			LoginRatePerMin:   60,
			LoginBurst:        10,
			AdminEmail:        "Chef@Example.com",
			AdminUsername:     "chef",
			AdminPassword:     "Kitchen-Brigade-42",
		},
		Media: config.MediaConfig{
			Dir:          t.TempDir(),
			URLPrefix:    "/media/",
			MaxBytes:     1 << 20,
			MaxDimension: 256,
		},
	}
}

func openDB(t *testing.T, cfg *config.Config) *database.DB {
	t.Helper()
	db, err := database.New(&cfg.Database)
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestBootstrapAdmin(t *testing.T) {
	cfg := testConfig(t)
	db := openDB(t, cfg)
	ctx := context.Background()

	if err := bootstrapAdmin(ctx, db, &cfg.Security); err != nil {
		t.Fatalf("bootstrapAdmin: %v", err)
	}
	admin, err := db.GetUserByEmail(ctx, "chef@example.com")
	if err != nil {
		t.Fatalf("admin not created: %v", err)
	}
	if !admin.IsStaff {
		t.Error("bootstrap account should be staff")
	}
	if !auth.CheckPassword(admin.PasswordHash, cfg.Security.AdminPassword) {
		t.Error("bootstrap password does not verify")
	}

	// A second start leaves the account alone.
	if err := bootstrapAdmin(ctx, db, &cfg.Security); err != nil {
		t.Fatalf("second bootstrapAdmin: %v", err)
	}
	again, err := db.GetUserByEmail(ctx, "chef@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail: %v", err)
	}
	if again.ID != admin.ID {
		t.Errorf("bootstrap created a second account: %d != %d", again.ID, admin.ID)
	}
}

func TestBootstrapAdminSkippedWithoutEmail(t *testing.T) {
	cfg := testConfig(t)
	cfg.Security.AdminEmail = ""
	db := openDB(t, cfg)

	if err := bootstrapAdmin(context.Background(), db, &cfg.Security); err != nil {
		t.Fatalf("bootstrapAdmin: %v", err)
	}
	if _, err := db.GetUserByEmail(context.Background(), "chef@example.com"); err == nil {
		t.Error("no account should be created without ADMIN_EMAIL")
	}
}

func TestNewAppServesRoutes(t *testing.T) {
	cfg := testConfig(t)
	db := openDB(t, cfg)

	a, err := newApp(cfg, db)
	if err != nil {
		t.Fatalf("newApp: %v", err)
	}

	h := a.router.SetupChi()
	tests := []struct {
		path string
		want int
	}{
		{"/health/live", http.StatusOK},
		{"/api/tags/", http.StatusOK},
		{"/api/users/me/", http.StatusUnauthorized},
		{"/api/nowhere/", http.StatusNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.want {
				t.Errorf("GET %s = %d, want %d", tt.path, rec.Code, tt.want)
			}
		})
	}
}

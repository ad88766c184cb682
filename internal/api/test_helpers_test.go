// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests.
var testDBSemaphore = make(chan struct{}, 1)

var testDBMutex sync.Mutex

type testServer struct {
	t       *testing.T
	db      *database.DB
	handler *Handler
	tokens  *auth.TokenManager
	http    http.Handler
}

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
			LoginRatePerMin:   600,
			LoginBurst:        100,
		},
		Media: config.MediaConfig{
			Dir:          t.TempDir(),
			URLPrefix:    "/media/",
			MaxBytes:     1 << 20,
			MaxDimension: 256,
		},
	}
}

// newTestServer wires the full router over an in-memory database.
func newTestServer(t *testing.T, mutate ...func(*config.Config)) *testServer {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() { <-testDBSemaphore })

	cfg := testConfig(t)
	for _, m := range mutate {
		m(cfg)
	}

	testDBMutex.Lock()
	db, err := database.New(&cfg.Database)
	testDBMutex.Unlock()
	if err != nil {
		t.Fatalf("database.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	tokens, err := auth.NewTokenManager(&cfg.Security, db)
	if err != nil {
		t.Fatalf("NewTokenManager: %v", err)
	}
	enforcer, err := authz.NewEnforcer(authz.DefaultEnforcerConfig())
	if err != nil {
		t.Fatalf("NewEnforcer: %v", err)
	}
	store, err := media.NewStore(&cfg.Media)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}

	handler := NewHandler(HandlerDeps{
		DB:           db,
		Config:       cfg,
		Tokens:       tokens,
		Enforcer:     enforcer,
		Media:        store,
		LoginLimiter: auth.NewRateLimiter(cfg.Security.LoginRatePerMin, cfg.Security.LoginBurst),
	})
	router := NewRouter(handler, auth.NewMiddleware(tokens, db),
		NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)))

	return &testServer{t: t, db: db, handler: handler, tokens: tokens, http: router.SetupChi()}
}

// do sends a request; body is JSON encoded unless it is nil.
func (s *testServer) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	s.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			s.t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}
	rec := httptest.NewRecorder()
	s.http.ServeHTTP(rec, req)
	return rec
}

// userWithToken creates an account directly in the store and issues a token.
func (s *testServer) userWithToken(username string, staff bool) (*models.User, string) {
	s.t.Helper()
	hash, err := auth.HashPassword("Str0ng-Passw0rd")
	if err != nil {
		s.t.Fatalf("HashPassword: %v", err)
	}
	u := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: hash,
		IsStaff:      staff,
	}
	if err := s.db.CreateUser(context.Background(), u); err != nil {
		s.t.Fatalf("CreateUser: %v", err)
	}
	token, err := s.tokens.Issue(context.Background(), u.ID)
	if err != nil {
		s.t.Fatalf("Issue: %v", err)
	}
	return u, token
}

func (s *testServer) tag(name, color, slug string) models.Tag {
	s.t.Helper()
	tag := models.Tag{Name: name, Color: color, Slug: slug}
	if err := s.db.CreateTag(context.Background(), &tag); err != nil {
		s.t.Fatalf("CreateTag: %v", err)
	}
	return tag
}

func (s *testServer) ingredient(name, unit string) models.Ingredient {
	s.t.Helper()
	i := models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.db.CreateIngredient(context.Background(), &i); err != nil {
		s.t.Fatalf("CreateIngredient: %v", err)
	}
	return i
}

// createRecipe posts a recipe and returns its decoded payload.
func (s *testServer) createRecipe(token string, body map[string]interface{}) models.Recipe {
	s.t.Helper()
	rec := s.do(http.MethodPost, "/api/recipes/", token, body)
	if rec.Code != http.StatusCreated {
		s.t.Fatalf("create recipe: status %d body %s", rec.Code, rec.Body.String())
	}
	var recipe models.Recipe
	decodeData(s.t, rec, &recipe)
	return recipe
}

func recipeBody(name string, tagIDs []int64, ingredients ...models.IngredientAmount) map[string]interface{} {
	return map[string]interface{}{
		"name":         name,
		"text":         "Mix and serve.",
		"cooking_time": 15,
		"image":        testImage,
		"tags":         tagIDs,
		"ingredients":  ingredients,
	}
}

// testImage is a 2x2 PNG data URI.
var testImage = func() string {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	for x := 0; x < 2; x++ {
		for y := 0; y < 2; y++ {
			img.Set(x, y, color.NRGBA{R: 200, G: 100, B: 50, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes())
}()

type envelope struct {
	Status string          `json:"status"`
	Data   json.RawMessage `json:"data"`
	Error  *struct {
		Code    string                 `json:"code"`
		Message string                 `json:"message"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v (body %q)", err, rec.Body.String())
	}
	return env
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	env := decodeEnvelope(t, rec)
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode data: %v (body %q)", err, rec.Body.String())
	}
}

// expectError checks status and error code of an error envelope.
func expectError(t *testing.T, rec *httptest.ResponseRecorder, status int, code string) envelope {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, rec.Body.String())
	}
	env := decodeEnvelope(t, rec)
	if env.Error == nil || env.Error.Code != code {
		t.Fatalf("error = %+v, want code %s", env.Error, code)
	}
	return env
}

func expectStatus(t *testing.T, rec *httptest.ResponseRecorder, status int) {
	t.Helper()
	if rec.Code != status {
		t.Fatalf("status = %d, want %d (body %s)", rec.Code, status, strings.TrimSpace(rec.Body.String()))
	}
}

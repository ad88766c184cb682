// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/models"
)

// testDBSemaphore serializes DuckDB usage across tests; concurrent CGO
// calls from many in-memory databases can hang under CI pressure.
var testDBSemaphore = make(chan struct{}, 1)

var testDBMutex sync.Mutex

// setupTestDB creates an in-memory database held for the whole test.
func setupTestDB(t *testing.T) *DB {
	t.Helper()

	testDBSemaphore <- struct{}{}
	t.Cleanup(func() {
		<-testDBSemaphore
	})

	cfg := &config.DatabaseConfig{
		Path:        ":memory:",
		MaxMemory:   "512MB",
		SkipIndexes: true,
	}

	type result struct {
		db  *DB
		err error
	}
	resultCh := make(chan result, 1)
	go func() {
		testDBMutex.Lock()
		db, err := New(cfg)
		testDBMutex.Unlock()
		resultCh <- result{db: db, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err != nil {
			t.Fatalf("Failed to create test database: %v", res.err)
		}
		t.Cleanup(func() {
			if err := res.db.Close(); err != nil {
				t.Logf("close test database: %v", err)
			}
		})
		return res.db
	case <-time.After(120 * time.Second):
		t.Fatalf("Timeout: database creation took longer than 120s")
		return nil
	}
}

func mustCreateUser(t *testing.T, db *DB, username string) *models.User {
	t.Helper()
	u := &models.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    "First",
		LastName:     "Last",
		PasswordHash: "hash",
	}
	checkNoError(t, db.CreateUser(context.Background(), u))
	return u
}

func mustCreateTag(t *testing.T, db *DB, name, color string) *models.Tag {
	t.Helper()
	tag := &models.Tag{Name: name, Color: color, Slug: name}
	checkNoError(t, db.CreateTag(context.Background(), tag))
	return tag
}

func mustCreateIngredient(t *testing.T, db *DB, name, unit string) *models.Ingredient {
	t.Helper()
	ing := &models.Ingredient{Name: name, MeasurementUnit: unit}
	checkNoError(t, db.CreateIngredient(context.Background(), ing))
	return ing
}

func mustCreateRecipe(t *testing.T, db *DB, author int64, name string, tags []int64, items []models.IngredientAmount) int64 {
	t.Helper()
	id, err := db.CreateRecipe(context.Background(), &models.RecipeWrite{
		AuthorID:    author,
		Name:        name,
		Text:        "Cook it.",
		Image:       "/media/recipes/" + name + ".png",
		CookingTime: 10,
		TagIDs:      tags,
		Ingredients: items,
	})
	checkNoError(t, err)
	return id
}

func TestNewAppliesMigrations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	checkNoError(t, db.Ping(ctx))

	version, err := db.GetCurrentSchemaVersion(ctx)
	checkNoError(t, err)
	checkIntEqual(t, "schema version", version, len(db.getMigrations()))

	history, err := db.GetMigrationHistory(ctx)
	checkNoError(t, err)
	checkIntEqual(t, "history length", len(history), len(db.getMigrations()))

	// Re-running is a no-op.
	checkNoError(t, db.runVersionedMigrations())
	checkNoError(t, db.CreateIndexes())
}

func TestInClause(t *testing.T) {
	t.Parallel()

	tests := []struct {
		n    int
		want string
	}{
		{0, "(NULL)"},
		{1, "(?)"},
		{3, "(?, ?, ?)"},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			t.Parallel()
			checkStringEqual(t, "inClause", inClause(tt.n), tt.want)
		})
	}
}

func TestIsDuplicateKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want bool
	}{
		{nil, false},
		{fmt.Errorf("Constraint Error: Duplicate key \"email: a@b.c\" violates unique constraint"), true},
		{fmt.Errorf("Constraint Error: Duplicate key \"id: 1\" violates primary key constraint"), true},
		{fmt.Errorf("Constraint Error: CHECK constraint failed on table recipe_ingredients with expression CHECK((amount BETWEEN 1 AND 10000))"), false},
		{fmt.Errorf("Constraint Error: Violates foreign key constraint because key \"id: 9\" does not exist"), false},
		{fmt.Errorf("Catalog Error: Table does not exist"), false},
	}
	for _, tt := range tests {
		checkBool(t, fmt.Sprint(tt.err), isDuplicateKey(tt.err), tt.want)
	}
}

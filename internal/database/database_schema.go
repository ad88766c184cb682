// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext bounds DDL work during startup.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates sequences and tables. Uniqueness rules live in the
// table definitions so that they hold even when secondary indexes are skipped.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getTableCreationQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}
	return nil
}

// getTableCreationQueries returns all CREATE SEQUENCE/TABLE statements in
// dependency order. There are no foreign keys: cascades run explicitly inside
// the delete transactions.
func (db *DB) getTableCreationQueries() []string {
	return []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS tags_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS ingredients_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS recipes_id_seq START 1;`,
		`CREATE SEQUENCE IF NOT EXISTS recipe_ingredients_id_seq START 1;`,

		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			email VARCHAR NOT NULL UNIQUE,
			username VARCHAR NOT NULL UNIQUE,
			first_name VARCHAR NOT NULL DEFAULT '',
			last_name VARCHAR NOT NULL DEFAULT '',
			password_hash VARCHAR NOT NULL,
			is_staff BOOLEAN NOT NULL DEFAULT false,
			date_joined TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS auth_tokens (
			id VARCHAR PRIMARY KEY,
			user_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			expires_at TIMESTAMP NOT NULL
		);`,

		`CREATE TABLE IF NOT EXISTS tags (
			id BIGINT PRIMARY KEY DEFAULT nextval('tags_id_seq'),
			name VARCHAR NOT NULL UNIQUE,
			color VARCHAR NOT NULL UNIQUE,
			slug VARCHAR NOT NULL UNIQUE
		);`,

		`CREATE TABLE IF NOT EXISTS ingredients (
			id BIGINT PRIMARY KEY DEFAULT nextval('ingredients_id_seq'),
			name VARCHAR NOT NULL,
			measurement_unit VARCHAR NOT NULL,
			UNIQUE (name, measurement_unit)
		);`,

		`CREATE TABLE IF NOT EXISTS recipes (
			id BIGINT PRIMARY KEY DEFAULT nextval('recipes_id_seq'),
			author_id BIGINT NOT NULL,
			name VARCHAR NOT NULL,
			image VARCHAR NOT NULL,
			text VARCHAR NOT NULL,
			cooking_time INTEGER NOT NULL CHECK (cooking_time BETWEEN 1 AND 3600),
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_ingredients (
			id BIGINT PRIMARY KEY DEFAULT nextval('recipe_ingredients_id_seq'),
			recipe_id BIGINT NOT NULL,
			ingredient_id BIGINT NOT NULL,
			amount INTEGER NOT NULL CHECK (amount BETWEEN 1 AND 10000),
			UNIQUE (recipe_id, ingredient_id)
		);`,

		`CREATE TABLE IF NOT EXISTS recipe_tags (
			recipe_id BIGINT NOT NULL,
			tag_id BIGINT NOT NULL,
			PRIMARY KEY (recipe_id, tag_id)
		);`,

		`CREATE TABLE IF NOT EXISTS favorite_recipes (
			user_id BIGINT NOT NULL,
			recipe_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		);`,

		`CREATE TABLE IF NOT EXISTS shopping_recipes (
			user_id BIGINT NOT NULL,
			recipe_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, recipe_id)
		);`,

		`CREATE TABLE IF NOT EXISTS follows (
			user_id BIGINT NOT NULL,
			following_id BIGINT NOT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (user_id, following_id),
			CHECK (user_id <> following_id)
		);`,
	}
}

// createIndexes creates secondary lookup indexes unless the config skips them.
func (db *DB) createIndexes() error {
	// Tests skip index creation for fast setup
	if db.cfg != nil && db.cfg.SkipIndexes {
		return nil
	}
	return db.CreateIndexes()
}

// CreateIndexes creates all secondary indexes.
func (db *DB) CreateIndexes() error {
	ctx, cancel := schemaContext()
	defer cancel()

	for _, query := range db.getIndexQueries() {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute index query: %s: %w", query, err)
		}
	}
	return nil
}

func (db *DB) getIndexQueries() []string {
	return []string{
		`CREATE INDEX IF NOT EXISTS idx_recipes_author ON recipes(author_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipes_created_at ON recipes(created_at DESC);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_ingredients_ingredient ON recipe_ingredients(ingredient_id);`,
		`CREATE INDEX IF NOT EXISTS idx_recipe_tags_tag ON recipe_tags(tag_id);`,
		`CREATE INDEX IF NOT EXISTS idx_favorite_recipes_recipe ON favorite_recipes(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_shopping_recipes_recipe ON shopping_recipes(recipe_id);`,
		`CREATE INDEX IF NOT EXISTS idx_follows_following ON follows(following_id);`,
		`CREATE INDEX IF NOT EXISTS idx_auth_tokens_user ON auth_tokens(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_ingredients_name ON ingredients(name);`,
	}
}

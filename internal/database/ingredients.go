// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// SearchIngredients returns ingredients whose name starts with prefix,
// ignoring case. An empty prefix returns the whole catalog.
func (db *DB) SearchIngredients(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	defer observeQuery("search", "ingredients", time.Now())
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT id, name, measurement_unit FROM ingredients
		WHERE starts_with(lower(name), lower(?))
		ORDER BY name, measurement_unit`, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to search ingredients: %w", err)
	}
	defer closeWithLog(rows, "rows")

	items := []models.Ingredient{}
	for rows.Next() {
		var i models.Ingredient
		if err := rows.Scan(&i.ID, &i.Name, &i.MeasurementUnit); err != nil {
			return nil, fmt.Errorf("failed to scan ingredient: %w", err)
		}
		items = append(items, i)
	}
	return items, rows.Err()
}

// GetIngredient returns an ingredient by id or ErrNotFound.
func (db *DB) GetIngredient(ctx context.Context, id int64) (*models.Ingredient, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var i models.Ingredient
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, measurement_unit FROM ingredients WHERE id = ?`, id).
		Scan(&i.ID, &i.Name, &i.MeasurementUnit)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("ingredient %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get ingredient: %w", err)
	}
	return &i, nil
}

// CreateIngredient inserts an ingredient; (name, unit) is unique.
func (db *DB) CreateIngredient(ctx context.Context, i *models.Ingredient) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO ingredients (name, measurement_unit) VALUES (?, ?) RETURNING id`,
		i.Name, i.MeasurementUnit).Scan(&i.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: ingredient %q (%s) already exists", ErrConflict, i.Name, i.MeasurementUnit)
		}
		return fmt.Errorf("failed to insert ingredient: %w", err)
	}
	return nil
}

// ImportIngredients inserts the rows that are not in the catalog yet and
// reports how many were added.
func (db *DB) ImportIngredients(ctx context.Context, items []models.Ingredient) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	added := 0
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		for _, i := range items {
			res, err := tx.ExecContext(ctx, `
				INSERT INTO ingredients (name, measurement_unit)
				SELECT ?, ?
				WHERE NOT EXISTS (SELECT 1 FROM ingredients WHERE name = ? AND measurement_unit = ?)`,
				i.Name, i.MeasurementUnit, i.Name, i.MeasurementUnit)
			if err != nil {
				return fmt.Errorf("failed to import ingredient %q: %w", i.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
			}
		}
		return nil
	})
	return added, err
}

// recipeIngredients loads the ingredient lines of several recipes.
func (db *DB) recipeIngredients(ctx context.Context, recipeIDs []int64) (map[int64][]models.RecipeIngredient, error) {
	out := make(map[int64][]models.RecipeIngredient, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT ri.recipe_id, i.id, i.name, i.measurement_unit, ri.amount
		FROM recipe_ingredients ri
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE ri.recipe_id IN `+inClause(len(recipeIDs))+`
		ORDER BY ri.id`, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var recipeID int64
		var ri models.RecipeIngredient
		if err := rows.Scan(&recipeID, &ri.ID, &ri.Name, &ri.MeasurementUnit, &ri.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		out[recipeID] = append(out[recipeID], ri)
	}
	return out, rows.Err()
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// ShoppingListItems aggregates the ingredients of every recipe in the user's
// cart, summing amounts per (name, unit), ordered by name then unit.
func (db *DB) ShoppingListItems(ctx context.Context, userID int64) ([]models.ShoppingListItem, error) {
	defer observeQuery("aggregate", "shopping_recipes", time.Now())
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `
		SELECT i.name, i.measurement_unit, CAST(SUM(ri.amount) AS BIGINT) AS total
		FROM shopping_recipes sr
		JOIN recipe_ingredients ri ON ri.recipe_id = sr.recipe_id
		JOIN ingredients i ON i.id = ri.ingredient_id
		WHERE sr.user_id = ?
		GROUP BY i.name, i.measurement_unit
		ORDER BY i.name, i.measurement_unit`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate shopping list: %w", err)
	}
	defer closeWithLog(rows, "rows")

	items := []models.ShoppingListItem{}
	for rows.Next() {
		var it models.ShoppingListItem
		if err := rows.Scan(&it.Name, &it.MeasurementUnit, &it.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

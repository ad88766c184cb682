// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"fmt"
)

// RecipeList identifies a per-user recipe membership table.
type RecipeList int

const (
	// Favorites is the user's favorite recipes.
	Favorites RecipeList = iota
	// ShoppingCart is the set of recipes whose ingredients go on the
	// shopping list.
	ShoppingCart
)

func (l RecipeList) table() string {
	if l == ShoppingCart {
		return "shopping_recipes"
	}
	return "favorite_recipes"
}

// String returns the human name used in messages.
func (l RecipeList) String() string {
	if l == ShoppingCart {
		return "shopping cart"
	}
	return "favorites"
}

// AddToList adds recipeID to the user's list. An unknown recipe is
// ErrNotFound and an existing pair is ErrConflict.
func (db *DB) AddToList(ctx context.Context, list RecipeList, userID, recipeID int64) error {
	if _, err := db.RecipeAuthor(ctx, recipeID); err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO `+list.table()+` (user_id, recipe_id) VALUES (?, ?)`, userID, recipeID)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: recipe is already in %s", ErrConflict, list)
		}
		return fmt.Errorf("failed to add recipe to %s: %w", list, err)
	}
	return nil
}

// RemoveFromList removes recipeID from the user's list. An unknown recipe
// is ErrNotFound and a missing pair is ErrNotInList.
func (db *DB) RemoveFromList(ctx context.Context, list RecipeList, userID, recipeID int64) error {
	if _, err := db.RecipeAuthor(ctx, recipeID); err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM `+list.table()+` WHERE user_id = ? AND recipe_id = ?`, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to remove recipe from %s: %w", list, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: recipe is not in %s", ErrNotInList, list)
	}
	return nil
}

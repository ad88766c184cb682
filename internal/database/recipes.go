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
	"strings"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// recipeRowSelect reads a recipe with its author and the viewer-relative
// flags. The three viewer placeholders come first in the argument list; a
// viewer id of 0 (anonymous) never matches.
const recipeRowSelect = `
	SELECT r.id, r.name, r.image, r.text, r.cooking_time, r.created_at,
		u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.is_staff, u.date_joined,
		EXISTS (SELECT 1 FROM follows f WHERE f.user_id = ? AND f.following_id = r.author_id),
		EXISTS (SELECT 1 FROM favorite_recipes fr WHERE fr.user_id = ? AND fr.recipe_id = r.id),
		EXISTS (SELECT 1 FROM shopping_recipes sr WHERE sr.user_id = ? AND sr.recipe_id = r.id),
		(SELECT COUNT(*) FROM favorite_recipes fc WHERE fc.recipe_id = r.id)
	FROM recipes r
	JOIN users u ON u.id = r.author_id`

func scanRecipeRow(s rowScanner) (*models.RecipeRow, error) {
	var r models.RecipeRow
	a := &r.Author
	if err := s.Scan(&r.ID, &r.Name, &r.Image, &r.Text, &r.CookingTime, &r.CreatedAt,
		&a.ID, &a.Email, &a.Username, &a.FirstName, &a.LastName, &a.PasswordHash, &a.IsStaff, &a.DateJoined,
		&r.AuthorFollowed, &r.IsFavorited, &r.IsInShoppingCart, &r.FavoritesCount); err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipeRow returns one recipe row as seen by viewerID.
func (db *DB) GetRecipeRow(ctx context.Context, id, viewerID int64) (*models.RecipeRow, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	r, err := scanRecipeRow(db.conn.QueryRowContext(ctx,
		recipeRowSelect+` WHERE r.id = ?`, viewerID, viewerID, viewerID, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	return r, nil
}

// GetRecipe returns the full recipe payload as seen by viewerID.
func (db *DB) GetRecipe(ctx context.Context, id, viewerID int64) (*models.Recipe, error) {
	row, err := db.GetRecipeRow(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	recipes, err := db.assemble(ctx, []models.RecipeRow{*row})
	if err != nil {
		return nil, err
	}
	return &recipes[0], nil
}

// RecipeAuthor returns the author id of a recipe, for ownership checks.
func (db *DB) RecipeAuthor(ctx context.Context, id int64) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var authorID int64
	err := db.conn.QueryRowContext(ctx, `SELECT author_id FROM recipes WHERE id = ?`, id).Scan(&authorID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("recipe %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to get recipe author: %w", err)
	}
	return authorID, nil
}

// recipeFilterClause builds the WHERE clause for a RecipeFilter.
func recipeFilterClause(f *models.RecipeFilter) (string, []interface{}) {
	var conds []string
	var args []interface{}

	if f.AuthorID > 0 {
		conds = append(conds, `r.author_id = ?`)
		args = append(args, f.AuthorID)
	}
	if len(f.TagSlugs) > 0 {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id
			WHERE rt.recipe_id = r.id AND t.slug IN `+inClause(len(f.TagSlugs))+`)`)
		for _, s := range f.TagSlugs {
			args = append(args, s)
		}
	}
	// Membership filters are no-ops for anonymous viewers.
	if f.Favorited && f.ViewerID > 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM favorite_recipes fq WHERE fq.user_id = ? AND fq.recipe_id = r.id)`)
		args = append(args, f.ViewerID)
	}
	if f.InShoppingCart && f.ViewerID > 0 {
		conds = append(conds, `EXISTS (SELECT 1 FROM shopping_recipes sq WHERE sq.user_id = ? AND sq.recipe_id = r.id)`)
		args = append(args, f.ViewerID)
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListRecipeRows returns one page of recipe rows, newest first, and the
// number of rows matching the filter.
func (db *DB) ListRecipeRows(ctx context.Context, f *models.RecipeFilter) ([]models.RecipeRow, int, error) {
	defer observeQuery("list", "recipes", time.Now())
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	where, whereArgs := recipeFilterClause(f)

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes r`+where, whereArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count recipes: %w", err)
	}

	args := make([]interface{}, 0, len(whereArgs)+5)
	args = append(args, f.ViewerID, f.ViewerID, f.ViewerID)
	args = append(args, whereArgs...)
	args = append(args, f.Limit, f.Offset)

	rows, err := db.conn.QueryContext(ctx,
		recipeRowSelect+where+` ORDER BY r.created_at DESC, r.id DESC LIMIT ? OFFSET ?`, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	out := make([]models.RecipeRow, 0, f.Limit)
	for rows.Next() {
		r, err := scanRecipeRow(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan recipe: %w", err)
		}
		out = append(out, *r)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating recipes: %w", err)
	}
	return out, total, nil
}

// ListRecipes returns one page of full recipe payloads and the total count.
func (db *DB) ListRecipes(ctx context.Context, f *models.RecipeFilter) ([]models.Recipe, int, error) {
	rows, total, err := db.ListRecipeRows(ctx, f)
	if err != nil {
		return nil, 0, err
	}
	recipes, err := db.assemble(ctx, rows)
	if err != nil {
		return nil, 0, err
	}
	return recipes, total, nil
}

// assemble batch-loads tags and ingredients for rows.
func (db *DB) assemble(ctx context.Context, rows []models.RecipeRow) ([]models.Recipe, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	ids := make([]int64, len(rows))
	for i := range rows {
		ids[i] = rows[i].ID
	}
	tags, err := db.recipeTags(ctx, ids)
	if err != nil {
		return nil, err
	}
	ingredients, err := db.recipeIngredients(ctx, ids)
	if err != nil {
		return nil, err
	}

	out := make([]models.Recipe, len(rows))
	for i := range rows {
		out[i] = rows[i].Recipe(tags[rows[i].ID], ingredients[rows[i].ID])
	}
	return out, nil
}

// checkReferences verifies that every tag and ingredient id exists.
func checkReferences(ctx context.Context, tx *sql.Tx, w *models.RecipeWrite) error {
	if n := len(w.TagIDs); n > 0 {
		var found int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM tags WHERE id IN `+inClause(n), int64Args(w.TagIDs)...).Scan(&found); err != nil {
			return fmt.Errorf("failed to check tags: %w", err)
		}
		if found != n {
			return fmt.Errorf("%w: tags: unknown tag id", ErrUnknownReference)
		}
	}

	if n := len(w.Ingredients); n > 0 {
		ids := make([]int64, n)
		for i, ia := range w.Ingredients {
			ids[i] = ia.ID
		}
		var found int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM ingredients WHERE id IN `+inClause(n), int64Args(ids)...).Scan(&found); err != nil {
			return fmt.Errorf("failed to check ingredients: %w", err)
		}
		if found != n {
			return fmt.Errorf("%w: ingredients: unknown ingredient id", ErrUnknownReference)
		}
	}
	return nil
}

// CreateRecipe writes the recipe row with its tags and ingredient amounts in
// one transaction and returns the new id.
func (db *DB) CreateRecipe(ctx context.Context, w *models.RecipeWrite) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var id int64
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, w); err != nil {
			return err
		}
		if err := tx.QueryRowContext(ctx, `
			INSERT INTO recipes (author_id, name, image, text, cooking_time)
			VALUES (?, ?, ?, ?, ?) RETURNING id`,
			w.AuthorID, w.Name, w.Image, w.Text, w.CookingTime).Scan(&id); err != nil {
			return fmt.Errorf("failed to insert recipe: %w", err)
		}
		if err := insertRecipeTags(ctx, tx, id, w.TagIDs); err != nil {
			return err
		}
		return insertRecipeIngredients(ctx, tx, id, w.Ingredients)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateRecipe rewrites the recipe fields and replaces its tag and
// ingredient sets: removed links are deleted, new ones inserted and changed
// amounts updated, all in one transaction.
func (db *DB) UpdateRecipe(ctx context.Context, id int64, w *models.RecipeWrite) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		if err := checkReferences(ctx, tx, w); err != nil {
			return err
		}

		res, err := tx.ExecContext(ctx,
			`UPDATE recipes SET name = ?, image = ?, text = ?, cooking_time = ? WHERE id = ?`,
			w.Name, w.Image, w.Text, w.CookingTime, id)
		if err != nil {
			return fmt.Errorf("failed to update recipe: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}

		if err := replaceRecipeTags(ctx, tx, id, w.TagIDs); err != nil {
			return err
		}
		return replaceRecipeIngredients(ctx, tx, id, w.Ingredients)
	})
}

// DeleteRecipe removes a recipe with its links, favorite and cart rows.
func (db *DB) DeleteRecipe(ctx context.Context, id int64) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	return db.withTx(ctx, func(tx *sql.Tx) error {
		for _, table := range []string{"recipe_ingredients", "recipe_tags", "favorite_recipes", "shopping_recipes"} {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table+` WHERE recipe_id = ?`, id); err != nil {
				return fmt.Errorf("failed to delete from %s: %w", table, err)
			}
		}
		res, err := tx.ExecContext(ctx, `DELETE FROM recipes WHERE id = ?`, id)
		if err != nil {
			return fmt.Errorf("failed to delete recipe: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("recipe %d: %w", id, ErrNotFound)
		}
		return nil
	})
}

func insertRecipeTags(ctx context.Context, tx *sql.Tx, recipeID int64, tagIDs []int64) error {
	for _, tagID := range tagIDs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_tags (recipe_id, tag_id) VALUES (?, ?)`, recipeID, tagID); err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: duplicate tags", ErrConflict)
			}
			return fmt.Errorf("failed to link tag: %w", err)
		}
	}
	return nil
}

func insertRecipeIngredients(ctx context.Context, tx *sql.Tx, recipeID int64, items []models.IngredientAmount) error {
	for _, ia := range items {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO recipe_ingredients (recipe_id, ingredient_id, amount) VALUES (?, ?, ?)`,
			recipeID, ia.ID, ia.Amount); err != nil {
			if isDuplicateKey(err) {
				return fmt.Errorf("%w: duplicate ingredients", ErrConflict)
			}
			return fmt.Errorf("failed to link ingredient: %w", err)
		}
	}
	return nil
}

func replaceRecipeTags(ctx context.Context, tx *sql.Tx, recipeID int64, tagIDs []int64) error {
	current, err := queryInt64Set(ctx, tx, `SELECT tag_id FROM recipe_tags WHERE recipe_id = ?`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to load recipe tags: %w", err)
	}

	wanted := make(map[int64]bool, len(tagIDs))
	var added []int64
	for _, id := range tagIDs {
		wanted[id] = true
		if !current[id] {
			added = append(added, id)
		}
	}
	for id := range current {
		if wanted[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recipe_tags WHERE recipe_id = ? AND tag_id = ?`, recipeID, id); err != nil {
			return fmt.Errorf("failed to unlink tag: %w", err)
		}
	}
	return insertRecipeTags(ctx, tx, recipeID, added)
}

func replaceRecipeIngredients(ctx context.Context, tx *sql.Tx, recipeID int64, items []models.IngredientAmount) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT ingredient_id, amount FROM recipe_ingredients WHERE recipe_id = ?`, recipeID)
	if err != nil {
		return fmt.Errorf("failed to load recipe ingredients: %w", err)
	}
	current := make(map[int64]int)
	for rows.Next() {
		var id int64
		var amount int
		if err := rows.Scan(&id, &amount); err != nil {
			closeQuietly(rows)
			return fmt.Errorf("failed to scan recipe ingredient: %w", err)
		}
		current[id] = amount
	}
	if err := rows.Err(); err != nil {
		closeQuietly(rows)
		return fmt.Errorf("error iterating recipe ingredients: %w", err)
	}
	closeWithLog(rows, "rows")

	wanted := make(map[int64]bool, len(items))
	var added []models.IngredientAmount
	for _, ia := range items {
		wanted[ia.ID] = true
		amount, ok := current[ia.ID]
		switch {
		case !ok:
			added = append(added, ia)
		case amount != ia.Amount:
			if _, err := tx.ExecContext(ctx,
				`UPDATE recipe_ingredients SET amount = ? WHERE recipe_id = ? AND ingredient_id = ?`,
				ia.Amount, recipeID, ia.ID); err != nil {
				return fmt.Errorf("failed to update ingredient amount: %w", err)
			}
		}
	}
	for id := range current {
		if wanted[id] {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM recipe_ingredients WHERE recipe_id = ? AND ingredient_id = ?`, recipeID, id); err != nil {
			return fmt.Errorf("failed to unlink ingredient: %w", err)
		}
	}
	return insertRecipeIngredients(ctx, tx, recipeID, added)
}

func queryInt64Set(ctx context.Context, tx *sql.Tx, query string, args ...interface{}) (map[int64]bool, error) {
	rows, err := tx.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeWithLog(rows, "rows")

	set := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		set[id] = true
	}
	return set, rows.Err()
}

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

	"github.com/tomtom215/foodgram/internal/models"
)

// ListTags returns every tag ordered by name.
func (db *DB) ListTags(ctx context.Context) ([]models.Tag, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	rows, err := db.conn.QueryContext(ctx, `SELECT id, name, color, slug FROM tags ORDER BY name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer closeWithLog(rows, "rows")

	tags := []models.Tag{}
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, t)
	}
	return tags, rows.Err()
}

// GetTag returns a tag by id or ErrNotFound.
func (db *DB) GetTag(ctx context.Context, id int64) (*models.Tag, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var t models.Tag
	err := db.conn.QueryRowContext(ctx,
		`SELECT id, name, color, slug FROM tags WHERE id = ?`, id).Scan(&t.ID, &t.Name, &t.Color, &t.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("tag %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get tag: %w", err)
	}
	return &t, nil
}

// CreateTag inserts a tag. Name, color and slug are each unique.
func (db *DB) CreateTag(ctx context.Context, t *models.Tag) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	if t.Color == "" {
		t.Color = models.DefaultTagColor
	}
	err := db.conn.QueryRowContext(ctx,
		`INSERT INTO tags (name, color, slug) VALUES (?, ?, ?) RETURNING id`,
		t.Name, t.Color, t.Slug).Scan(&t.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: a tag with this name, color or slug already exists", ErrConflict)
		}
		return fmt.Errorf("failed to insert tag: %w", err)
	}
	return nil
}

// ImportTags inserts tags whose name, color and slug are all unused and
// reports how many were added.
func (db *DB) ImportTags(ctx context.Context, tags []models.Tag) (int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	added := 0
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		for _, t := range tags {
			if t.Color == "" {
				t.Color = models.DefaultTagColor
			}
			res, err := tx.ExecContext(ctx, `
				INSERT INTO tags (name, color, slug)
				SELECT ?, ?, ?
				WHERE NOT EXISTS (SELECT 1 FROM tags WHERE name = ? OR color = ? OR slug = ?)`,
				t.Name, t.Color, t.Slug, t.Name, t.Color, t.Slug)
			if err != nil {
				return fmt.Errorf("failed to import tag %q: %w", t.Name, err)
			}
			if n, _ := res.RowsAffected(); n > 0 {
				added++
			}
		}
		return nil
	})
	return added, err
}

// recipeTags loads the tags of several recipes in one query.
func (db *DB) recipeTags(ctx context.Context, recipeIDs []int64) (map[int64][]models.Tag, error) {
	out := make(map[int64][]models.Tag, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT rt.recipe_id, t.id, t.name, t.color, t.slug
		FROM recipe_tags rt
		JOIN tags t ON t.id = rt.tag_id
		WHERE rt.recipe_id IN `+inClause(len(recipeIDs))+`
		ORDER BY t.name, t.id`, int64Args(recipeIDs)...)
	if err != nil {
		return nil, fmt.Errorf("failed to load recipe tags: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var recipeID int64
		var t models.Tag
		if err := rows.Scan(&recipeID, &t.ID, &t.Name, &t.Color, &t.Slug); err != nil {
			return nil, fmt.Errorf("failed to scan recipe tag: %w", err)
		}
		out[recipeID] = append(out[recipeID], t)
	}
	return out, rows.Err()
}

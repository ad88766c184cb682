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

// Follow subscribes userID to targetID. Following oneself is ErrSelfFollow,
// an unknown target ErrNotFound and an existing follow ErrConflict.
func (db *DB) Follow(ctx context.Context, userID, targetID int64) error {
	if userID == targetID {
		return ErrSelfFollow
	}
	if _, err := db.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO follows (user_id, following_id) VALUES (?, ?)`, userID, targetID)
	if err != nil {
		if isDuplicateKey(err) {
			return fmt.Errorf("%w: already subscribed to this user", ErrConflict)
		}
		return fmt.Errorf("failed to follow user: %w", err)
	}
	return nil
}

// Unfollow removes the subscription; a missing one is ErrNotInList.
func (db *DB) Unfollow(ctx context.Context, userID, targetID int64) error {
	if _, err := db.GetUserByID(ctx, targetID); err != nil {
		return err
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM follows WHERE user_id = ? AND following_id = ?`, userID, targetID)
	if err != nil {
		return fmt.Errorf("failed to unfollow user: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: not subscribed to this user", ErrNotInList)
	}
	return nil
}

// Subscriptions returns one page of users followed by userID, ordered by
// username, plus the total.
func (db *DB) Subscriptions(ctx context.Context, userID int64, limit, offset int) ([]models.User, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var total int
	if err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM follows WHERE user_id = ?`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count subscriptions: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx, `
		SELECT u.id, u.email, u.username, u.first_name, u.last_name, u.password_hash, u.is_staff, u.date_joined
		FROM follows f
		JOIN users u ON u.id = f.following_id
		WHERE f.user_id = ?
		ORDER BY u.username, u.id
		LIMIT ? OFFSET ?`, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list subscriptions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	users := make([]models.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan subscription: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating subscriptions: %w", err)
	}
	return users, total, nil
}

// SubscribedSet reports which of targetIDs viewerID follows.
func (db *DB) SubscribedSet(ctx context.Context, viewerID int64, targetIDs []int64) (map[int64]bool, error) {
	set := make(map[int64]bool, len(targetIDs))
	if viewerID == 0 || len(targetIDs) == 0 {
		return set, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := append([]interface{}{viewerID}, int64Args(targetIDs)...)
	rows, err := db.conn.QueryContext(ctx,
		`SELECT following_id FROM follows WHERE user_id = ? AND following_id IN `+inClause(len(targetIDs)), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load subscriptions: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan subscription: %w", err)
		}
		set[id] = true
	}
	return set, rows.Err()
}

// IsSubscribed reports whether viewerID follows targetID.
func (db *DB) IsSubscribed(ctx context.Context, viewerID, targetID int64) (bool, error) {
	set, err := db.SubscribedSet(ctx, viewerID, []int64{targetID})
	if err != nil {
		return false, err
	}
	return set[targetID], nil
}

// AuthorRecipes holds the newest recipes of an author and the author's total
// recipe count.
type AuthorRecipes struct {
	Recipes []models.RecipeShort
	Total   int
}

// RecipesByAuthors returns, per author, the newest recipes (at most
// perAuthor when perAuthor > 0) and the total number of recipes.
func (db *DB) RecipesByAuthors(ctx context.Context, authorIDs []int64, perAuthor int) (map[int64]*AuthorRecipes, error) {
	defer observeQuery("list", "recipes_by_author", time.Now())
	out := make(map[int64]*AuthorRecipes, len(authorIDs))
	for _, id := range authorIDs {
		out[id] = &AuthorRecipes{Recipes: []models.RecipeShort{}}
	}
	if len(authorIDs) == 0 {
		return out, nil
	}

	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	args := int64Args(authorIDs)
	rows, err := db.conn.QueryContext(ctx, `
		SELECT author_id, id, name, image, cooking_time, rn, total FROM (
			SELECT author_id, id, name, image, cooking_time,
				ROW_NUMBER() OVER (PARTITION BY author_id ORDER BY created_at DESC, id DESC) AS rn,
				COUNT(*) OVER (PARTITION BY author_id) AS total
			FROM recipes
			WHERE author_id IN `+inClause(len(authorIDs))+`
		) ranked
		ORDER BY author_id, rn`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load author recipes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	for rows.Next() {
		var authorID int64
		var rn int64
		var total int
		var r models.RecipeShort
		if err := rows.Scan(&authorID, &r.ID, &r.Name, &r.Image, &r.CookingTime, &rn, &total); err != nil {
			return nil, fmt.Errorf("failed to scan author recipe: %w", err)
		}
		ar := out[authorID]
		ar.Total = total
		if perAuthor <= 0 || rn <= int64(perAuthor) {
			ar.Recipes = append(ar.Recipes, r)
		}
	}
	return out, rows.Err()
}

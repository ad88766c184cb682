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

	"github.com/tomtom215/foodgram/internal/models"
)

const userColumns = `id, email, username, first_name, last_name, password_hash, is_staff, date_joined`

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(s rowScanner) (*models.User, error) {
	var u models.User
	if err := s.Scan(&u.ID, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.IsStaff, &u.DateJoined); err != nil {
		return nil, err
	}
	return &u, nil
}

// userConflict names the duplicated field from a DuckDB constraint message.
func userConflict(err error) error {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "email"):
		return fmt.Errorf("%w: a user with this email already exists", ErrConflict)
	case strings.Contains(msg, "username"):
		return fmt.Errorf("%w: a user with this username already exists", ErrConflict)
	default:
		return fmt.Errorf("%w: user already exists", ErrConflict)
	}
}

// CreateUser inserts u and fills in its id and join timestamp.
func (db *DB) CreateUser(ctx context.Context, u *models.User) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	err := db.conn.QueryRowContext(ctx, `
		INSERT INTO users (email, username, first_name, last_name, password_hash, is_staff)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING id, date_joined`,
		u.Email, u.Username, u.FirstName, u.LastName, u.PasswordHash, u.IsStaff,
	).Scan(&u.ID, &u.DateJoined)
	if err != nil {
		if isDuplicateKey(err) {
			return userConflict(err)
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetUserByID returns the user or ErrNotFound.
func (db *DB) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// GetUserByEmail looks a user up by login identifier, case-insensitively.
func (db *DB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	u, err := scanUser(db.conn.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower(?)`, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("user %q: %w", email, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return u, nil
}

// ListUsers returns one page of users ordered by username, plus the total.
func (db *DB) ListUsers(ctx context.Context, limit, offset int) ([]models.User, int, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var total int
	if err := db.conn.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	rows, err := db.conn.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users ORDER BY username, id LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list users: %w", err)
	}
	defer closeWithLog(rows, "rows")

	users := make([]models.User, 0, limit)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error iterating users: %w", err)
	}
	return users, total, nil
}

// SetPassword stores a new password hash.
func (db *DB) SetPassword(ctx context.Context, userID int64, hash string) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, hash, userID)
	if err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}
	return nil
}

// EnsureStaffUser creates the bootstrap administrator, or grants staff to an
// existing account with the same email. It reports whether a row was created.
func (db *DB) EnsureStaffUser(ctx context.Context, u *models.User) (bool, error) {
	existing, err := db.GetUserByEmail(ctx, u.Email)
	switch {
	case err == nil:
		*u = *existing
		if existing.IsStaff {
			return false, nil
		}
		ctx, cancel := db.ensureContext(ctx)
		defer cancel()
		if _, err := db.conn.ExecContext(ctx, `UPDATE users SET is_staff = true WHERE id = ?`, existing.ID); err != nil {
			return false, fmt.Errorf("failed to grant staff: %w", err)
		}
		u.IsStaff = true
		return false, nil
	case errors.Is(err, ErrNotFound):
		u.IsStaff = true
		if err := db.CreateUser(ctx, u); err != nil {
			return false, err
		}
		return true, nil
	default:
		return false, err
	}
}

// DeleteUser removes a user with everything that hangs off the account:
// their recipes (and those recipes' links, favorites and cart rows), their
// own favorites and cart rows, follows in both directions and auth tokens.
// It returns the image URLs of the deleted recipes, read in the same
// transaction as the delete.
func (db *DB) DeleteUser(ctx context.Context, userID int64) ([]string, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var images []string
	err := db.withTx(ctx, func(tx *sql.Tx) error {
		ownRecipes := `SELECT id FROM recipes WHERE author_id = ?`
		for _, stmt := range []string{
			`DELETE FROM recipe_ingredients WHERE recipe_id IN (` + ownRecipes + `)`,
			`DELETE FROM recipe_tags WHERE recipe_id IN (` + ownRecipes + `)`,
			`DELETE FROM favorite_recipes WHERE recipe_id IN (` + ownRecipes + `)`,
			`DELETE FROM shopping_recipes WHERE recipe_id IN (` + ownRecipes + `)`,
		} {
			if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
				return fmt.Errorf("failed to delete user recipe links: %w", err)
			}
		}

		var err error
		images, err = deleteOwnRecipes(ctx, tx, userID)
		if err != nil {
			return err
		}

		stmts := []string{
			`DELETE FROM favorite_recipes WHERE user_id = ?`,
			`DELETE FROM shopping_recipes WHERE user_id = ?`,
			`DELETE FROM auth_tokens WHERE user_id = ?`,
		}
		for _, stmt := range stmts {
			if _, err := tx.ExecContext(ctx, stmt, userID); err != nil {
				return fmt.Errorf("failed to delete user data: %w", err)
			}
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM follows WHERE user_id = ? OR following_id = ?`, userID, userID); err != nil {
			return fmt.Errorf("failed to delete follows: %w", err)
		}

		res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, userID)
		if err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return images, nil
}

func deleteOwnRecipes(ctx context.Context, tx *sql.Tx, userID int64) ([]string, error) {
	rows, err := tx.QueryContext(ctx, `DELETE FROM recipes WHERE author_id = ? RETURNING image`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user recipes: %w", err)
	}
	defer closeWithLog(rows, "rows")

	var images []string
	for rows.Next() {
		var image string
		if err := rows.Scan(&image); err != nil {
			return nil, fmt.Errorf("failed to scan recipe image: %w", err)
		}
		images = append(images, image)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deleted recipes: %w", err)
	}
	return images, nil
}

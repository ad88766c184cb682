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

// SaveToken records an issued token id so that it can be revoked later.
func (db *DB) SaveToken(ctx context.Context, tok *models.AuthToken) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO auth_tokens (id, user_id, created_at, expires_at) VALUES (?, ?, ?, ?)`,
		tok.ID, tok.UserID, tok.CreatedAt.UTC(), tok.ExpiresAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}
	return nil
}

// TokenActive returns the owner of a token that is neither revoked nor
// expired, stamping its last use. Unknown or dead tokens yield ErrNotFound.
func (db *DB) TokenActive(ctx context.Context, id string, now time.Time) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	var userID int64
	err := db.conn.QueryRowContext(ctx, `
		UPDATE auth_tokens SET last_used_at = ?
		WHERE id = ? AND revoked_at IS NULL AND expires_at > ?
		RETURNING user_id`,
		now.UTC(), id, now.UTC(),
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("token: %w", ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to check token: %w", err)
	}
	return userID, nil
}

// RevokeToken marks a token as revoked. Revoking twice is ErrNotFound.
func (db *DB) RevokeToken(ctx context.Context, id string, now time.Time) error {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`UPDATE auth_tokens SET revoked_at = ? WHERE id = ? AND revoked_at IS NULL`, now.UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("token: %w", ErrNotFound)
	}
	return nil
}

// PurgeExpiredTokens deletes tokens that expired or were revoked before now.
func (db *DB) PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	ctx, cancel := db.ensureContext(ctx)
	defer cancel()

	res, err := db.conn.ExecContext(ctx,
		`DELETE FROM auth_tokens WHERE expires_at <= ? OR revoked_at IS NOT NULL`, now.UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to purge tokens: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count purged tokens: %w", err)
	}
	return n, nil
}

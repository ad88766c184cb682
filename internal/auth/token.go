// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/tomtom215/foodgram/internal/config"
	"github.com/tomtom215/foodgram/internal/models"
)

// ErrInvalidToken is returned for tokens that are malformed, badly signed,
// expired or revoked.
var ErrInvalidToken = errors.New("invalid token")

// TokenStore persists issued token ids so that logout can revoke them.
// *database.DB implements it.
type TokenStore interface {
	SaveToken(ctx context.Context, tok *models.AuthToken) error
	TokenActive(ctx context.Context, id string, now time.Time) (int64, error)
	RevokeToken(ctx context.Context, id string, now time.Time) error
}

// Claims are the JWT claims of an auth token. The registered ID (jti) is the
// key of the auth_tokens row.
type Claims struct {
	UserID int64 `json:"uid"`
	jwt.RegisteredClaims
}

// TokenManager issues, validates and revokes HS256 auth tokens.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	store  TokenStore
	now    func() time.Time
}

// NewTokenManager creates a manager from the security config.
func NewTokenManager(cfg *config.SecurityConfig, store TokenStore) (*TokenManager, error) {
	if cfg.TokenSecret == "" {
		return nil, fmt.Errorf("TOKEN_SECRET is required but was empty")
	}
	if store == nil {
		return nil, fmt.Errorf("token store is required")
	}
	return &TokenManager{
		secret: []byte(cfg.TokenSecret),
		ttl:    cfg.TokenTTL,
		store:  store,
		now:    time.Now,
	}, nil
}

// Issue signs a new token for userID and records its jti.
func (m *TokenManager) Issue(ctx context.Context, userID int64) (string, error) {
	now := m.now()
	tok := &models.AuthToken{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}

	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tok.ID,
			Subject:   strconv.FormatInt(userID, 10),
			ExpiresAt: jwt.NewNumericDate(tok.ExpiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	if err := m.store.SaveToken(ctx, tok); err != nil {
		return "", err
	}
	return signed, nil
}

// Validate checks the signature and expiry, then confirms that the jti is
// still active and belongs to the claimed user.
func (m *TokenManager) Validate(ctx context.Context, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(m.now), jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.ID == "" {
		return nil, ErrInvalidToken
	}

	owner, err := m.store.TokenActive(ctx, claims.ID, m.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if owner != claims.UserID {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// Revoke invalidates the token identified by claims.
func (m *TokenManager) Revoke(ctx context.Context, claims *Claims) error {
	if err := m.store.RevokeToken(ctx, claims.ID, m.now()); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

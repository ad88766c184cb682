// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package services

import (
	"context"
	"time"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
)

// TokenPurger deletes auth tokens that can no longer authenticate.
// *database.DB implements it.
type TokenPurger interface {
	PurgeExpiredTokens(ctx context.Context, now time.Time) (int64, error)
}

// DefaultJanitorInterval is used when NewTokenJanitor gets a non-positive interval.
const DefaultJanitorInterval = time.Hour

// TokenJanitor removes expired and revoked auth_tokens rows on a fixed
// interval. A purge error is logged and retried on the next tick; only a
// canceled context stops the service.
type TokenJanitor struct {
	store    TokenPurger
	interval time.Duration
	now      func() time.Time
}

// NewTokenJanitor creates a janitor purging every interval.
func NewTokenJanitor(store TokenPurger, interval time.Duration) *TokenJanitor {
	if interval <= 0 {
		interval = DefaultJanitorInterval
	}
	return &TokenJanitor{store: store, interval: interval, now: time.Now}
}

// Serve implements suture.Service. It purges once at start.
func (j *TokenJanitor) Serve(ctx context.Context) error {
	j.purge(ctx)

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			j.purge(ctx)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// purge runs one pass and returns the number of rows removed.
func (j *TokenJanitor) purge(ctx context.Context) int64 {
	n, err := j.store.PurgeExpiredTokens(ctx, j.now())
	if err != nil {
		if ctx.Err() == nil {
			logging.Warn().Err(err).Msg("Token purge failed")
		}
		return 0
	}
	if n > 0 {
		metrics.RecordTokenOperation("purge", n)
		logging.Debug().Int64("purged", n).Msg("Purged stale auth tokens")
	}
	return n
}

// String names the service in supervisor logs.
func (j *TokenJanitor) String() string {
	return "token-janitor"
}

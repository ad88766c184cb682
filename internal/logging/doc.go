// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package logging is the single structured logging entry point for Foodgram,
// built on zerolog.
//
// Initialize once from main with the values loaded by internal/config:
//
//	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
//
// Always terminate an entry with Msg or Send, and prefer typed fields over
// formatted strings:
//
//	logging.Info().Int64("recipe_id", id).Msg("Recipe created")
//
// Inside HTTP handlers use Ctx so the request id and the caller's user id are
// attached automatically:
//
//	logging.Ctx(r.Context()).Warn().Err(err).Msg("Favorite rejected")
//
// Libraries that only accept log/slog (the suture supervisor) are bridged with
// NewSlogLogger.
package logging

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"errors"
	"io"
	"strings"

	"github.com/tomtom215/foodgram/internal/logging"
)

// Sentinel errors returned (wrapped) by the query functions. Callers match
// them with errors.Is.
var (
	// ErrNotFound means the addressed row does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict means a uniqueness rule rejected the write.
	ErrConflict = errors.New("already exists")

	// ErrNotInList means a membership row to remove does not exist.
	ErrNotInList = errors.New("not in list")

	// ErrSelfFollow rejects a follow whose target is the follower.
	ErrSelfFollow = errors.New("cannot follow yourself")

	// ErrUnknownReference means a write referenced a tag or ingredient id
	// that is not in the catalog.
	ErrUnknownReference = errors.New("unknown reference")
)

// isDuplicateKey recognises DuckDB unique and primary key failures. CHECK
// and foreign key failures share the "Constraint Error" prefix and are not
// matched.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "Duplicate key") ||
		strings.Contains(msg, "violates unique constraint") ||
		strings.Contains(msg, "violates primary key constraint")
}

// closeWithLog closes a resource and logs any error
func closeWithLog(closer io.Closer, resourceType string) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.Warn().Str("type", resourceType).Err(err).Msg("Failed to close resource")
	}
}

// closeQuietly closes a resource on an error path where Close errors are not actionable
func closeQuietly(closer io.Closer) {
	if closer != nil {
		_ = closer.Close()
	}
}

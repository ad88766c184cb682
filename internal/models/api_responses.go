// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package models

import (
	"time"
)

// APIResponse is the envelope written by every JSON endpoint.
//
// Successful response:
//
//	{
//	  "status": "success",
//	  "data": {"id": 3, "name": "Borscht", ...},
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z", "query_time_ms": 4}
//	}
//
// Error response:
//
//	{
//	  "status": "error",
//	  "data": null,
//	  "metadata": {"timestamp": "2026-03-01T12:00:00Z"},
//	  "error": {"code": "VALIDATION_ERROR", "message": "duplicate tags", "details": {"field": "tags"}}
//	}
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata carries response timing information.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
	Cached      bool      `json:"cached,omitempty"`
}

// APIError is the machine-readable part of an error response.
//
// Codes in use: VALIDATION_ERROR, CONFLICT, NOT_IN_LIST, NOT_FOUND,
// UNAUTHORIZED, FORBIDDEN, INVALID_CREDENTIALS, RATE_LIMIT_EXCEEDED,
// DATABASE_ERROR, INTERNAL_ERROR.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Page is a page-number paginated listing. Next and Previous hold absolute
// request URLs, nil at either end.
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/media"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// Error codes for API responses
const (
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeConflict           = "CONFLICT"
	ErrCodeNotInList          = "NOT_IN_LIST"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeMethodNotAllowed   = "METHOD_NOT_ALLOWED"
	ErrCodeRateLimited        = "RATE_LIMIT_EXCEEDED"
	ErrCodeDatabase           = "DATABASE_ERROR"
	ErrCodeInternal           = "INTERNAL_ERROR"
)

// MessageHeader carries the human readable outcome of bodyless (204)
// responses.
const MessageHeader = "X-Foodgram-Message"

// sanitizeLogValue removes control characters from strings to prevent log injection attacks.
func sanitizeLogValue(s string) string {
	var result strings.Builder
	result.Grow(len(s))
	for _, r := range s {
		if r < 0x20 || r == 0x7F {
			result.WriteString(fmt.Sprintf("\\x%02x", r))
		} else {
			result.WriteRune(r)
		}
	}
	return result.String()
}

// respondJSON sends a JSON response with proper headers
func respondJSON(w http.ResponseWriter, status int, response *models.APIResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		logging.Error().Err(err).Msg("Failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logging.Error().Err(err).Msg("Failed to write JSON response")
	}
}

// respondData sends a success envelope. start is when the handler began
// work and feeds metadata.query_time_ms.
func respondData(w http.ResponseWriter, status int, data interface{}, start time.Time) {
	meta := models.Metadata{
		Timestamp:   time.Now().UTC(),
		QueryTimeMS: time.Since(start).Milliseconds(),
	}
	if c, ok := data.(cachedPayload); ok {
		data = c.value
		meta.Cached = true
	}
	respondJSON(w, status, &models.APIResponse{Status: "success", Data: data, Metadata: meta})
}

// cachedPayload marks data served from the catalog cache.
type cachedPayload struct {
	value interface{}
}

// respondNoContent sends 204 with the outcome in MessageHeader.
func respondNoContent(w http.ResponseWriter, message string) {
	if message != "" {
		w.Header().Set(MessageHeader, message)
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondError sends an error response
func respondError(w http.ResponseWriter, status int, code, message string, err error) {
	respondAPIError(w, status, &models.APIError{Code: code, Message: message}, err)
}

// respondAPIError sends a prepared error envelope. err, when set, is logged
// and never shown to the client.
func respondAPIError(w http.ResponseWriter, status int, apiErr *models.APIError, err error) {
	if err != nil {
		ev := logging.Warn()
		if status >= http.StatusInternalServerError {
			ev = logging.Error()
		}
		ev.Str("code", sanitizeLogValue(apiErr.Code)).Str("error", sanitizeLogValue(err.Error())).Msg("API Error")
	}
	metrics.RecordAPIError(apiErr.Code)

	respondJSON(w, status, &models.APIResponse{
		Status:   "error",
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
		Error:    apiErr,
	})
}

// respondValidation sends a VALIDATION_ERROR with per-field details.
func respondValidation(w http.ResponseWriter, verr *validation.RequestValidationError) {
	respondAPIError(w, http.StatusBadRequest, verr.ToAPIError(), nil)
}

// respondStoreError maps the database sentinels to API errors. Anything
// unrecognised is a DATABASE_ERROR.
func respondStoreError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, database.ErrNotFound):
		respondError(w, http.StatusNotFound, ErrCodeNotFound, "Not found.", nil)
	case errors.Is(err, database.ErrConflict):
		respondError(w, http.StatusBadRequest, ErrCodeConflict, sentinelDetail(err, database.ErrConflict), nil)
	case errors.Is(err, database.ErrNotInList):
		respondError(w, http.StatusBadRequest, ErrCodeNotInList, sentinelDetail(err, database.ErrNotInList), nil)
	case errors.Is(err, database.ErrSelfFollow):
		respondValidation(w, validation.NewFieldError("user", "self", "you cannot subscribe to yourself"))
	case errors.Is(err, database.ErrUnknownReference):
		field, msg, _ := strings.Cut(sentinelDetail(err, database.ErrUnknownReference), ": ")
		respondValidation(w, validation.NewFieldError(field, "exists", msg))
	case errors.Is(err, media.ErrInvalidImage), errors.Is(err, media.ErrImageTooLarge):
		respondValidation(w, validation.NewFieldError("image", "image", err.Error()))
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", sanitizeLogValue(r.URL.Path)).Msg("Database error")
		respondError(w, http.StatusInternalServerError, ErrCodeDatabase, "A database error occurred", nil)
	}
}

// sentinelDetail returns the text wrapped around sentinel, so that
// "already exists: recipe is already in favorites" reads
// "recipe is already in favorites".
func sentinelDetail(err, sentinel error) string {
	msg := err.Error()
	if rest, ok := strings.CutPrefix(msg, sentinel.Error()+": "); ok {
		return rest
	}
	return msg
}

// decodeJSON reads a JSON request body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}, maxBytes int64) *models.APIError {
	if r.Body == nil {
		return &models.APIError{Code: ErrCodeBadRequest, Message: "request body is required"}
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return &models.APIError{Code: ErrCodeBadRequest, Message: "request body too large"}
		}
		return &models.APIError{Code: ErrCodeBadRequest, Message: "malformed JSON body"}
	}
	return nil
}

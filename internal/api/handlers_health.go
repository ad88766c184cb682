// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/foodgram/internal/models"
)

// HealthLive handles liveness probe requests (Kubernetes-style).
// Returns 200 OK if the process is alive, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, &models.APIResponse{
		Status: "success",
		Data: map[string]interface{}{
			"alive":  true,
			"uptime": time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// HealthReady handles readiness probe requests (Kubernetes-style).
// Returns 503 until the database answers.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	dbConnected := h.db != nil && h.db.Ping(r.Context()) == nil

	statusCode := http.StatusOK
	status := "ready"
	if !dbConnected {
		statusCode = http.StatusServiceUnavailable
		status = "not_ready"
	}

	respondJSON(w, statusCode, &models.APIResponse{
		Status: status,
		Data: map[string]interface{}{
			"database_connected": dbConnected,
			"ready_to_serve":     dbConnected,
			"uptime":             time.Since(h.startTime).Seconds(),
		},
		Metadata: models.Metadata{Timestamp: time.Now().UTC()},
	})
}

// NotFound answers unknown routes with the error envelope. In debug mode the
// details carry the requested method and path.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	apiErr := &models.APIError{Code: ErrCodeNotFound, Message: "Not found."}
	if h.config != nil && h.config.Server.Debug {
		apiErr.Details = map[string]interface{}{
			"method": r.Method,
			"path":   sanitizeLogValue(r.URL.Path),
		}
	}
	respondAPIError(w, http.StatusNotFound, apiErr, nil)
}

// MethodNotAllowed answers known routes called with the wrong method.
func (h *Handler) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	respondError(w, http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed,
		"Method \""+r.Method+"\" not allowed.", nil)
}

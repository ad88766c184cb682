// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/validation"
)

// operation names the kind of work a handler performs.
type operation string

const (
	opList        operation = "list"
	opRetrieve    operation = "retrieve"
	opCreate      operation = "create"
	opUpdate      operation = "update"
	opDelete      operation = "delete"
	opListAdd     operation = "list_add"
	opListRemove  operation = "list_remove"
	opSubscribe   operation = "subscribe"
	opUnsubscribe operation = "unsubscribe"
	opDownload    operation = "download"
	opLogin       operation = "login"
	opCommand     operation = "command"
)

// responder writes the success payload of an operation.
type responder func(w http.ResponseWriter, status int, payload interface{}, start time.Time)

// contract fixes how an operation reads its request and answers.
type contract struct {
	// readsBody operations decode and validate a JSON body.
	readsBody bool
	status    int
	respond   responder
}

// contracts is the operation table consulted by every handler.
var contracts = map[operation]contract{
	opList:        {status: http.StatusOK, respond: respondData},
	opRetrieve:    {status: http.StatusOK, respond: respondData},
	opCreate:      {readsBody: true, status: http.StatusCreated, respond: respondData},
	opUpdate:      {readsBody: true, status: http.StatusOK, respond: respondData},
	opDelete:      {status: http.StatusNoContent, respond: respondMessage},
	opListAdd:     {status: http.StatusCreated, respond: respondData},
	opListRemove:  {status: http.StatusNoContent, respond: respondMessage},
	opSubscribe:   {status: http.StatusCreated, respond: respondData},
	opUnsubscribe: {status: http.StatusNoContent, respond: respondMessage},
	opDownload:    {status: http.StatusOK, respond: respondAttachment},
	opLogin:       {readsBody: true, status: http.StatusOK, respond: respondData},
	opCommand:     {readsBody: true, status: http.StatusNoContent, respond: respondMessage},
}

// contractFor returns the contract of op. A missing entry is a programming
// error.
func contractFor(op operation) contract {
	c, ok := contracts[op]
	if !ok {
		panic(fmt.Sprintf("api: no contract for operation %q", op))
	}
	return c
}

// attachment is the payload of a file download.
type attachment struct {
	filename    string
	contentType string
	body        []byte
}

func respondAttachment(w http.ResponseWriter, status int, payload interface{}, _ time.Time) {
	a, ok := payload.(attachment)
	if !ok {
		respondError(w, http.StatusInternalServerError, ErrCodeInternal, "Internal server error", fmt.Errorf("attachment payload has type %T", payload))
		return
	}
	w.Header().Set("Content-Type", a.contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", a.filename))
	w.WriteHeader(status)
	if _, err := w.Write(a.body); err != nil {
		logging.Error().Err(err).Msg("Failed to write attachment")
	}
}

func respondMessage(w http.ResponseWriter, _ int, payload interface{}, _ time.Time) {
	msg, _ := payload.(string)
	respondNoContent(w, msg)
}

// decode reads and validates the body of a readsBody operation into dst.
// It writes the error response and returns false on failure.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, op operation, dst interface{}) bool {
	if !contractFor(op).readsBody {
		return true
	}
	if apiErr := decodeJSON(w, r, dst, h.maxBodyBytes()); apiErr != nil {
		respondAPIError(w, http.StatusBadRequest, apiErr, nil)
		return false
	}
	if verr := validation.ValidateStruct(dst); verr != nil {
		respondValidation(w, verr)
		return false
	}
	return true
}

// finish answers a successful operation according to its contract.
func (h *Handler) finish(w http.ResponseWriter, op operation, payload interface{}, start time.Time) {
	c := contractFor(op)
	c.respond(w, c.status, payload, start)
}

// maxBodyBytes leaves room for a base64 image of the configured size.
func (h *Handler) maxBodyBytes() int64 {
	const overhead = 64 << 10
	if h.config == nil || h.config.Media.MaxBytes <= 0 {
		return overhead
	}
	return h.config.Media.MaxBytes*4/3 + overhead
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/tomtom215/foodgram/internal/models"
)

// pageRequest is a validated page-number pagination request.
type pageRequest struct {
	Page  int
	Limit int
}

// Offset is the number of rows before the requested page.
func (p pageRequest) Offset() int {
	return (p.Page - 1) * p.Limit
}

// parsePage reads page and limit. Non-numeric or non-positive values fall
// back to the defaults; limit is capped at the configured maximum.
func (h *Handler) parsePage(r *http.Request) pageRequest {
	limit := getIntParam(r, "limit", h.config.API.DefaultPageSize)
	if limit < 1 {
		limit = h.config.API.DefaultPageSize
	}
	if limit > h.config.API.MaxPageSize {
		limit = h.config.API.MaxPageSize
	}
	page := getIntParam(r, "page", 1)
	if page < 1 {
		page = 1
	}
	return pageRequest{Page: page, Limit: limit}
}

// pageOutOfRange reports a page past the last one. The first page is
// always valid, even when empty.
func pageOutOfRange(p pageRequest, count int) bool {
	return p.Page > 1 && p.Offset() >= count
}

// respondInvalidPage is the 404 for pageOutOfRange.
func respondInvalidPage(w http.ResponseWriter) {
	respondError(w, http.StatusNotFound, ErrCodeNotFound, "Invalid page.", nil)
}

// newPage builds {count, next, previous, results} with absolute links that
// keep every other query parameter.
func newPage[T any](r *http.Request, p pageRequest, count int, results []T) models.Page[T] {
	if results == nil {
		results = []T{}
	}
	page := models.Page[T]{Count: count, Results: results}
	if p.Offset()+len(results) < count {
		next := pageURL(r, p.Page+1)
		page.Next = &next
	}
	if p.Page > 1 {
		prev := pageURL(r, p.Page-1)
		page.Previous = &prev
	}
	return page
}

// pageURL rewrites the page parameter of the request URL. Page 1 drops the
// parameter.
func pageURL(r *http.Request, page int) string {
	q := r.URL.Query()
	if page <= 1 {
		q.Del("page")
	} else {
		q.Set("page", strconv.Itoa(page))
	}
	u := url.URL{
		Scheme:   requestScheme(r),
		Host:     r.Host,
		Path:     r.URL.Path,
		RawQuery: q.Encode(),
	}
	return u.String()
}

func requestScheme(r *http.Request) string {
	if r.TLS != nil {
		return "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		return strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return "http"
}

// getIntParam extracts an integer query parameter with a default value
func getIntParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// getBoolParam accepts 1/true/yes (any case) as true.
func getBoolParam(r *http.Request, key string) bool {
	switch strings.ToLower(strings.TrimSpace(r.URL.Query().Get(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

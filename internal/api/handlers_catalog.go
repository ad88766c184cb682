// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/cache"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// Catalog cache key prefixes. Writes drop every key under their prefix.
const (
	tagCachePrefix        = "tags"
	ingredientCachePrefix = "ingredients"
)

// cached serves key from the catalog cache or fills it with load.
func (h *Handler) cached(key string, load func() (interface{}, error)) (interface{}, error) {
	if v, ok := h.cache.Get(key); ok {
		return cachedPayload{value: v}, nil
	}
	v, err := load()
	if err != nil {
		return nil, err
	}
	h.cache.Set(key, v)
	return v, nil
}

// TagList handles GET /api/tags/. The list is not paginated.
func (h *Handler) TagList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjTag) {
		return
	}

	tags, err := h.cached(cache.GenerateKey(tagCachePrefix, "all"), func() (interface{}, error) {
		return h.db.ListTags(r.Context())
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opList, tags, start)
}

// TagGet handles GET /api/tags/{id}/.
func (h *Handler) TagGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjTag) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	tag, err := h.db.GetTag(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opRetrieve, tag, start)
}

// TagCreate handles POST /api/tags/ (staff only).
func (h *Handler) TagCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.requireStaff(w, r, authz.ObjTag) == nil {
		return
	}
	var req TagRequest
	if !h.decode(w, r, opCreate, &req) {
		return
	}

	tag := &models.Tag{
		Name:  validation.SanitizeText(req.Name),
		Color: strings.ToUpper(req.Color),
		Slug:  req.Slug,
	}
	if tag.Name == "" {
		respondValidation(w, validation.NewFieldError("name", "required", "missing name"))
		return
	}
	if err := h.db.CreateTag(r.Context(), tag); err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.cache.DeletePrefix(tagCachePrefix + ":")
	logging.Ctx(r.Context()).Info().Int64("tag_id", tag.ID).Str("slug", tag.Slug).Msg("Tag created")

	h.finish(w, opCreate, tag, start)
}

// IngredientList handles GET /api/ingredients/?name=<prefix>. Matching is
// a case-insensitive prefix match and the list is not paginated.
func (h *Handler) IngredientList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjIngredient) {
		return
	}

	prefix := strings.TrimSpace(r.URL.Query().Get("name"))
	key := cache.GenerateKey(ingredientCachePrefix, strings.ToLower(prefix))
	items, err := h.cached(key, func() (interface{}, error) {
		return h.db.SearchIngredients(r.Context(), prefix)
	})
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opList, items, start)
}

// IngredientGet handles GET /api/ingredients/{id}/.
func (h *Handler) IngredientGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjIngredient) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	ingredient, err := h.db.GetIngredient(r.Context(), id)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opRetrieve, ingredient, start)
}

// IngredientCreate handles POST /api/ingredients/ (staff only).
func (h *Handler) IngredientCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if h.requireStaff(w, r, authz.ObjIngredient) == nil {
		return
	}
	var req IngredientRequest
	if !h.decode(w, r, opCreate, &req) {
		return
	}

	ingredient := &models.Ingredient{
		Name:            validation.SanitizeText(req.Name),
		MeasurementUnit: validation.SanitizeText(req.MeasurementUnit),
	}
	if ingredient.Name == "" {
		respondValidation(w, validation.NewFieldError("name", "required", "missing name"))
		return
	}
	if ingredient.MeasurementUnit == "" {
		respondValidation(w, validation.NewFieldError("measurement_unit", "required", "missing measurement_unit"))
		return
	}
	if err := h.db.CreateIngredient(r.Context(), ingredient); err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.cache.DeletePrefix(ingredientCachePrefix + ":")
	logging.Ctx(r.Context()).Info().Int64("ingredient_id", ingredient.ID).Msg("Ingredient created")

	h.finish(w, opCreate, ingredient, start)
}

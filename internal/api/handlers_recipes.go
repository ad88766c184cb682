// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/tomtom215/foodgram/internal/auth"
	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
)

// RecipeList handles GET /api/recipes/.
//
// Query parameters:
//   - author: author user id
//   - tags: tag slug, repeatable; a recipe matches when it has any of them
//   - is_favorited, is_in_shopping_cart: 1/true, ignored for anonymous callers
//   - page, limit: page-number pagination
func (h *Handler) RecipeList(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjRecipe) {
		return
	}

	p := h.parsePage(r)
	viewer := auth.ViewerID(r.Context())
	filter := &models.RecipeFilter{
		ViewerID: viewer,
		TagSlugs: r.URL.Query()["tags"],
		Limit:    p.Limit,
		Offset:   p.Offset(),
	}
	if author, err := strconv.ParseInt(r.URL.Query().Get("author"), 10, 64); err == nil && author > 0 {
		filter.AuthorID = author
	}
	if viewer != 0 {
		filter.Favorited = getBoolParam(r, "is_favorited")
		filter.InShoppingCart = getBoolParam(r, "is_in_shopping_cart")
	}

	recipes, count, err := h.db.ListRecipes(r.Context(), filter)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if pageOutOfRange(p, count) {
		respondInvalidPage(w)
		return
	}
	h.finish(w, opList, newPage(r, p, count, recipes), start)
}

// RecipeGet handles GET /api/recipes/{id}/.
func (h *Handler) RecipeGet(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	if !h.allowRead(w, r, authz.ObjRecipe) {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	recipe, err := h.db.GetRecipe(r.Context(), id, auth.ViewerID(r.Context()))
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opRetrieve, recipe, start)
}

// RecipeCreate handles POST /api/recipes/.
func (h *Handler) RecipeCreate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjRecipe, authz.ActCreate)
	if u == nil {
		return
	}
	var req RecipeRequest
	if !h.decode(w, r, opCreate, &req) {
		return
	}
	if verr := req.sanitizedEmpty(); verr != nil {
		respondValidation(w, verr)
		return
	}

	image, err := h.storeImage(req.Image)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	id, err := h.db.CreateRecipe(r.Context(), req.toWrite(u.ID, image))
	if err != nil {
		h.media.Remove(image)
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordRecipeWrite("create")
	logging.Ctx(r.Context()).Info().Int64("recipe_id", id).Msg("Recipe created")

	recipe, err := h.db.GetRecipe(r.Context(), id, u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opCreate, recipe, start)
}

// RecipeUpdate handles PATCH /api/recipes/{id}/. Tags and ingredients are
// replaced as whole sets. Sending back the stored image URL keeps the image.
func (h *Handler) RecipeUpdate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjRecipe, authz.ActUpdateOwn)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	current, err := h.db.GetRecipeRow(r.Context(), id, u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if !h.requireOwner(w, u, current.Author.ID, authz.ObjRecipe, authz.ActUpdateOwn, "") {
		return
	}

	var req RecipeRequest
	if !h.decode(w, r, opUpdate, &req) {
		return
	}
	if verr := req.sanitizedEmpty(); verr != nil {
		respondValidation(w, verr)
		return
	}

	image := current.Image
	replaced := req.Image != current.Image
	if replaced {
		if image, err = h.storeImage(req.Image); err != nil {
			respondStoreError(w, r, err)
			return
		}
	}
	if err := h.db.UpdateRecipe(r.Context(), id, req.toWrite(u.ID, image)); err != nil {
		if replaced {
			h.media.Remove(image)
		}
		respondStoreError(w, r, err)
		return
	}
	if replaced {
		h.media.Remove(current.Image)
	}
	metrics.RecordRecipeWrite("update")
	logging.Ctx(r.Context()).Info().Int64("recipe_id", id).Bool("image_replaced", replaced).Msg("Recipe updated")

	recipe, err := h.db.GetRecipe(r.Context(), id, u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.finish(w, opUpdate, recipe, start)
}

// RecipeDelete handles DELETE /api/recipes/{id}/. Authors delete their own
// recipes; staff may delete any.
func (h *Handler) RecipeDelete(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjRecipe, authz.ActDeleteOwn)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}
	current, err := h.db.GetRecipeRow(r.Context(), id, u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if !h.requireOwner(w, u, current.Author.ID, authz.ObjRecipe, authz.ActDeleteOwn, authz.ActDeleteAny) {
		return
	}

	if err := h.db.DeleteRecipe(r.Context(), id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	h.media.Remove(current.Image)
	metrics.RecordRecipeWrite("delete")
	logging.Ctx(r.Context()).Info().
		Int64("recipe_id", id).
		Bool("moderated", current.Author.ID != u.ID).
		Msg("Recipe deleted")

	h.finish(w, opDelete, "recipe deleted", start)
}

// storeImage decodes a data URI and writes it to the media store.
func (h *Handler) storeImage(dataURI string) (string, error) {
	url, err := h.media.SaveDataURI(dataURI)
	metrics.RecordImage(err == nil)
	return url, err
}

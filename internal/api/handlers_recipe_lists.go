// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/foodgram/internal/authz"
	"github.com/tomtom215/foodgram/internal/database"
	"github.com/tomtom215/foodgram/internal/logging"
	"github.com/tomtom215/foodgram/internal/metrics"
	"github.com/tomtom215/foodgram/internal/models"
)

// FavoriteAdd handles POST /api/recipes/{id}/favorite/.
func (h *Handler) FavoriteAdd(w http.ResponseWriter, r *http.Request) {
	h.listAdd(w, r, database.Favorites)
}

// FavoriteRemove handles DELETE /api/recipes/{id}/favorite/.
func (h *Handler) FavoriteRemove(w http.ResponseWriter, r *http.Request) {
	h.listRemove(w, r, database.Favorites)
}

// ShoppingCartAdd handles POST /api/recipes/{id}/shopping_cart/.
func (h *Handler) ShoppingCartAdd(w http.ResponseWriter, r *http.Request) {
	h.listAdd(w, r, database.ShoppingCart)
}

// ShoppingCartRemove handles DELETE /api/recipes/{id}/shopping_cart/.
func (h *Handler) ShoppingCartRemove(w http.ResponseWriter, r *http.Request) {
	h.listRemove(w, r, database.ShoppingCart)
}

// listAdd puts a recipe on one of the caller's lists and returns the short
// recipe form.
func (h *Handler) listAdd(w http.ResponseWriter, r *http.Request, list database.RecipeList) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjRecipeList, authz.ActCreate)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	recipe, err := h.db.GetRecipeRow(r.Context(), id, u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	if err := h.db.AddToList(r.Context(), list, u.ID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordListChange(list.String(), true)
	logging.Ctx(r.Context()).Debug().Int64("recipe_id", id).Str("list", list.String()).Msg("Recipe added to list")

	h.finish(w, opListAdd, models.RecipeShort{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.Image,
		CookingTime: recipe.CookingTime,
	}, start)
}

// listRemove takes a recipe off one of the caller's lists.
func (h *Handler) listRemove(w http.ResponseWriter, r *http.Request, list database.RecipeList) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjRecipeList, authz.ActDelete)
	if u == nil {
		return
	}
	id, ok := idParam(w, r)
	if !ok {
		return
	}

	if err := h.db.RemoveFromList(r.Context(), list, u.ID, id); err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordListChange(list.String(), false)

	h.finish(w, opListRemove, "recipe removed from "+list.String(), start)
}

// DownloadShoppingCart handles GET /api/recipes/download_shopping_cart/. The
// caller's cart is aggregated per (ingredient, unit) and sent as plain text.
func (h *Handler) DownloadShoppingCart(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	u := h.requireAuth(w, r, authz.ObjShoppingList, authz.ActRead)
	if u == nil {
		return
	}

	items, err := h.db.ShoppingListItems(r.Context(), u.ID)
	if err != nil {
		respondStoreError(w, r, err)
		return
	}
	metrics.RecordShoppingListDownload()
	logging.Ctx(r.Context()).Debug().Int("lines", len(items)).Msg("Shopping list rendered")

	h.finish(w, opDownload, attachment{
		filename:    models.ShoppingListFilename,
		contentType: "text/plain; charset=utf-8",
		body:        []byte(models.RenderShoppingList(items)),
	}, start)
}

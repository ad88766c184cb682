// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package models

import "time"

// Recipe and amount bounds.
const (
	MinCookingTime = 1
	MaxCookingTime = 3600
	MinAmount      = 1
	MaxAmount      = 10000
	NameMaxLength  = 200
)

// DefaultTagColor is applied when a tag is created without a color.
const DefaultTagColor = "#E26C2D"

// Tag labels recipes for filtering.
type Tag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// Ingredient is a catalog entry, unique on (Name, MeasurementUnit).
type Ingredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredient is an ingredient usage inside a recipe.
type RecipeIngredient struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// IngredientAmount references a catalog ingredient in a write request.
type IngredientAmount struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// RecipeRow is a recipe as read for a particular viewer. Flags are false for
// anonymous viewers.
type RecipeRow struct {
	ID               int64
	Author           User
	AuthorFollowed   bool
	Name             string
	Image            string
	Text             string
	CookingTime      int
	CreatedAt        time.Time
	IsFavorited      bool
	IsInShoppingCart bool
	FavoritesCount   int
}

// Recipe is the full read payload.
type Recipe struct {
	ID               int64              `json:"id"`
	Tags             []Tag              `json:"tags"`
	Author           UserProfile        `json:"author"`
	Ingredients      []RecipeIngredient `json:"ingredients"`
	IsFavorited      bool               `json:"is_favorited"`
	IsInShoppingCart bool               `json:"is_in_shopping_cart"`
	Name             string             `json:"name"`
	Image            string             `json:"image"`
	Text             string             `json:"text"`
	CookingTime      int                `json:"cooking_time"`
	FavoritesCount   int                `json:"favorites_count"`
}

// RecipeShort is the compact payload used by favorites, cart and
// subscription listings.
type RecipeShort struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// RecipeWrite is a validated create or update. Image holds the stored media
// URL; update replaces every field.
type RecipeWrite struct {
	AuthorID    int64
	Name        string
	Text        string
	Image       string
	CookingTime int
	TagIDs      []int64
	Ingredients []IngredientAmount
}

// RecipeFilter narrows a recipe listing. ViewerID 0 means anonymous, in which
// case the Favorited and InShoppingCart flags are ignored.
type RecipeFilter struct {
	ViewerID       int64
	AuthorID       int64
	TagSlugs       []string
	Favorited      bool
	InShoppingCart bool
	Limit          int
	Offset         int
}

// ShoppingListItem is one aggregated line of a shopping list.
type ShoppingListItem struct {
	Name            string
	MeasurementUnit string
	Amount          int64
}

// Recipe assembles the response payload from a row and its associations.
func (r *RecipeRow) Recipe(tags []Tag, ingredients []RecipeIngredient) Recipe {
	if tags == nil {
		tags = []Tag{}
	}
	if ingredients == nil {
		ingredients = []RecipeIngredient{}
	}
	return Recipe{
		ID:               r.ID,
		Tags:             tags,
		Author:           r.Author.Profile(r.AuthorFollowed),
		Ingredients:      ingredients,
		IsFavorited:      r.IsFavorited,
		IsInShoppingCart: r.IsInShoppingCart,
		Name:             r.Name,
		Image:            r.Image,
		Text:             r.Text,
		CookingTime:      r.CookingTime,
		FavoritesCount:   r.FavoritesCount,
	}
}

// Short returns the compact form used by favorites, cart and subscriptions.
func (r *Recipe) Short() RecipeShort {
	return RecipeShort{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}

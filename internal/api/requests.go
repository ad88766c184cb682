// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Request payloads with go-playground/validator tags. Field names in
// validation errors come from the json tags.
package api

import (
	"strings"

	"github.com/tomtom215/foodgram/internal/models"
	"github.com/tomtom215/foodgram/internal/validation"
)

// RecipeIngredientRequest is one (ingredient, amount) pair of a recipe.
type RecipeIngredientRequest struct {
	ID     int64 `json:"id" validate:"required,gt=0"`
	Amount int   `json:"amount" validate:"gte=1,lte=10000"`
}

// RecipeRequest is the body of recipe create and update. Both require the
// full tag and ingredient sets.
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []int64                   `json:"tags" validate:"required,min=1,unique,dive,gt=0"`
	Image       string                    `json:"image" validate:"required"`
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"gte=1,lte=3600"`
}

// toWrite converts the request for the store. Free text is stripped of
// markup; image is the stored URL.
func (req *RecipeRequest) toWrite(authorID int64, image string) *models.RecipeWrite {
	ingredients := make([]models.IngredientAmount, len(req.Ingredients))
	for i, ing := range req.Ingredients {
		ingredients[i] = models.IngredientAmount{ID: ing.ID, Amount: ing.Amount}
	}
	return &models.RecipeWrite{
		AuthorID:    authorID,
		Name:        validation.SanitizeText(req.Name),
		Text:        validation.SanitizeText(req.Text),
		Image:       image,
		CookingTime: req.CookingTime,
		TagIDs:      req.Tags,
		Ingredients: ingredients,
	}
}

// sanitizedEmpty reports fields that only held markup.
func (req *RecipeRequest) sanitizedEmpty() *validation.RequestValidationError {
	var verr *validation.RequestValidationError
	add := func(field string) {
		if verr == nil {
			verr = validation.NewFieldError(field, "required", "missing "+field)
			return
		}
		verr.Add(field, "required", "missing "+field)
	}
	if validation.SanitizeText(req.Name) == "" {
		add("name")
	}
	if validation.SanitizeText(req.Text) == "" {
		add("text")
	}
	return verr
}

// SignupRequest is the body of POST /api/users/.
type SignupRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150,username,notme"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,max=128"`
}

// SetPasswordRequest is the body of POST /api/users/set_password/.
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password" validate:"required,max=128"`
	CurrentPassword string `json:"current_password" validate:"required"`
}

// DeleteAccountRequest confirms DELETE /api/users/me/.
type DeleteAccountRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
}

// TokenLoginRequest is the body of POST /api/auth/token/login/.
type TokenLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// TagRequest is the body of POST /api/tags/.
type TagRequest struct {
	Name  string `json:"name" validate:"required,max=200"`
	Color string `json:"color" validate:"omitempty,hexcolor6"`
	Slug  string `json:"slug" validate:"required,max=200,slug"`
}

// IngredientRequest is the body of POST /api/ingredients/.
type IngredientRequest struct {
	Name            string `json:"name" validate:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
}

// normalizeEmail lower-cases the address the way lookups do.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

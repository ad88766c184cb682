// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package models

import "time"

// User is an account row. Email is the login identifier.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	PasswordHash string    `json:"-"`
	IsStaff      bool      `json:"-"`
	DateJoined   time.Time `json:"-"`
}

// UserProfile is the public representation of a user as seen by a caller.
type UserProfile struct {
	Email        string `json:"email"`
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// Profile converts an account row into its public form.
func (u *User) Profile(isSubscribed bool) UserProfile {
	return UserProfile{
		Email:        u.Email,
		ID:           u.ID,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: isSubscribed,
	}
}

// CreatedUser is returned by signup; it never carries subscription state.
type CreatedUser struct {
	Email     string `json:"email"`
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// Subscription is a followed author with a preview of their recipes.
type Subscription struct {
	UserProfile
	Recipes      []RecipeShort `json:"recipes"`
	RecipesCount int           `json:"recipes_count"`
}

// AuthToken is an issued login token. Only its id is persisted; the signed
// value is handed to the client once.
type AuthToken struct {
	ID        string
	UserID    int64
	CreatedAt time.Time
	ExpiresAt time.Time
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/tomtom215/foodgram/internal/models"
)

func TestUserSignup(t *testing.T) {
	s := newTestServer(t)

	valid := func() map[string]interface{} {
		return map[string]interface{}{
			"email":      "New.User@Example.com",
			"username":   "new.user",
			"first_name": "New",
			"last_name":  "User",
			"password":   "Kettle-Basil-42",
		}
	}

	rec := s.do(http.MethodPost, "/api/users/", "", valid())
	expectStatus(t, rec, http.StatusCreated)
	var created models.CreatedUser
	decodeData(t, rec, &created)
	if created.ID == 0 || created.Email != "new.user@example.com" || created.Username != "new.user" {
		t.Errorf("created = %+v", created)
	}

	tests := []struct {
		name   string
		mutate func(map[string]interface{})
		status int
		code   string
	}{
		{"duplicate email", func(b map[string]interface{}) { b["username"] = "other" }, http.StatusBadRequest, ErrCodeConflict},
		{"duplicate username", func(b map[string]interface{}) { b["email"] = "other@example.com" }, http.StatusBadRequest, ErrCodeConflict},
		{"reserved username", func(b map[string]interface{}) { b["username"] = "me"; b["email"] = "me@example.com" }, http.StatusBadRequest, ErrCodeValidation},
		{"bad username", func(b map[string]interface{}) { b["username"] = "bad name!"; b["email"] = "x@example.com" }, http.StatusBadRequest, ErrCodeValidation},
		{"bad email", func(b map[string]interface{}) { b["email"] = "not-an-email" }, http.StatusBadRequest, ErrCodeValidation},
		{"numeric password", func(b map[string]interface{}) {
			b["email"] = "y@example.com"
			b["username"] = "y"
			b["password"] = "12345678901"
		}, http.StatusBadRequest, ErrCodeValidation},
		{"missing last name", func(b map[string]interface{}) { delete(b, "last_name") }, http.StatusBadRequest, ErrCodeValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := valid()
			tt.mutate(body)
			expectError(t, s.do(http.MethodPost, "/api/users/", "", body), tt.status, tt.code)
		})
	}
}

func TestUserDirectory(t *testing.T) {
	s := newTestServer(t)
	alice, aliceToken := s.userWithToken("alice", false)
	bob, _ := s.userWithToken("bob", false)

	expectStatus(t, s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", bob.ID), aliceToken, nil), http.StatusCreated)

	var page struct {
		Count   int                  `json:"count"`
		Results []models.UserProfile `json:"results"`
	}
	decodeData(t, s.do(http.MethodGet, "/api/users/", aliceToken, nil), &page)
	if page.Count != 2 || len(page.Results) != 2 {
		t.Fatalf("page = %+v", page)
	}
	for _, p := range page.Results {
		if want := p.ID == bob.ID; p.IsSubscribed != want {
			t.Errorf("%s is_subscribed = %v, want %v", p.Username, p.IsSubscribed, want)
		}
	}

	var profile models.UserProfile
	decodeData(t, s.do(http.MethodGet, fmt.Sprintf("/api/users/%d/", bob.ID), "", nil), &profile)
	if profile.Username != "bob" || profile.IsSubscribed {
		t.Errorf("anonymous profile = %+v", profile)
	}

	decodeData(t, s.do(http.MethodGet, "/api/users/me/", aliceToken, nil), &profile)
	if profile.ID != alice.ID {
		t.Errorf("me = %+v", profile)
	}
	expectError(t, s.do(http.MethodGet, "/api/users/me/", "", nil), http.StatusUnauthorized, ErrCodeUnauthorized)
	expectError(t, s.do(http.MethodGet, "/api/users/9999/", "", nil), http.StatusNotFound, ErrCodeNotFound)
}

func TestSubscriptions(t *testing.T) {
	s := newTestServer(t)
	follower, token := s.userWithToken("follower", false)
	author, authorToken := s.userWithToken("author", false)
	tag := s.tag("Lunch", "#49B64E", "lunch")
	salt := s.ingredient("salt", "g")
	for i := 0; i < 3; i++ {
		s.createRecipe(authorToken, recipeBody(fmt.Sprintf("Soup %d", i), []int64{tag.ID},
			models.IngredientAmount{ID: salt.ID, Amount: 1}))
	}
	subscribe := fmt.Sprintf("/api/users/%d/subscribe/", author.ID)

	t.Run("self subscription fails", func(t *testing.T) {
		rec := s.do(http.MethodPost, fmt.Sprintf("/api/users/%d/subscribe/", follower.ID), token, nil)
		expectError(t, rec, http.StatusBadRequest, ErrCodeValidation)
	})

	t.Run("unknown target", func(t *testing.T) {
		expectError(t, s.do(http.MethodPost, "/api/users/9999/subscribe/", token, nil), http.StatusNotFound, ErrCodeNotFound)
	})

	t.Run("subscribe", func(t *testing.T) {
		rec := s.do(http.MethodPost, subscribe+"?recipes_limit=2", token, nil)
		expectStatus(t, rec, http.StatusCreated)
		var sub models.Subscription
		decodeData(t, rec, &sub)
		if !sub.IsSubscribed || sub.ID != author.ID || sub.RecipesCount != 3 || len(sub.Recipes) != 2 {
			t.Errorf("subscription = %+v", sub)
		}
	})

	t.Run("duplicate subscription", func(t *testing.T) {
		expectError(t, s.do(http.MethodPost, subscribe, token, nil), http.StatusBadRequest, ErrCodeConflict)
	})

	t.Run("list", func(t *testing.T) {
		var page struct {
			Count   int                   `json:"count"`
			Results []models.Subscription `json:"results"`
		}
		decodeData(t, s.do(http.MethodGet, "/api/users/subscriptions/?recipes_limit=1", token, nil), &page)
		if page.Count != 1 || len(page.Results) != 1 {
			t.Fatalf("page = %+v", page)
		}
		if got := page.Results[0]; got.RecipesCount != 3 || len(got.Recipes) != 1 || got.Recipes[0].Name != "Soup 2" {
			t.Errorf("subscription = %+v", got)
		}
	})

	t.Run("unsubscribe", func(t *testing.T) {
		expectStatus(t, s.do(http.MethodDelete, subscribe, token, nil), http.StatusNoContent)
		expectError(t, s.do(http.MethodDelete, subscribe, token, nil), http.StatusBadRequest, ErrCodeNotInList)
	})
}

func TestSetPassword(t *testing.T) {
	s := newTestServer(t)
	_, token := s.userWithToken("cook", false)

	rec := s.do(http.MethodPost, "/api/users/set_password/", token, map[string]string{
		"current_password": "wrong",
		"new_password":     "Fresh-Thyme-77",
	})
	expectError(t, rec, http.StatusBadRequest, ErrCodeValidation)

	rec = s.do(http.MethodPost, "/api/users/set_password/", token, map[string]string{
		"current_password": "Str0ng-Passw0rd",
		"new_password":     "Fresh-Thyme-77",
	})
	expectStatus(t, rec, http.StatusNoContent)

	rec = s.do(http.MethodPost, "/api/auth/token/login/", "", map[string]string{
		"email":    "cook@example.com",
		"password": "Fresh-Thyme-77",
	})
	expectStatus(t, rec, http.StatusOK)
}

func TestDeleteAccount(t *testing.T) {
	s := newTestServer(t)
	_, token := s.userWithToken("leaver", false)
	tag := s.tag("Lunch", "#49B64E", "lunch")
	salt := s.ingredient("salt", "g")
	recipe := s.createRecipe(token, recipeBody("Soup", []int64{tag.ID}, models.IngredientAmount{ID: salt.ID, Amount: 1}))

	expectStatus(t, s.do(http.MethodGet, recipe.Image, "", nil), http.StatusOK)

	rec := s.do(http.MethodDelete, "/api/users/me/", token, map[string]string{"current_password": "nope"})
	expectError(t, rec, http.StatusBadRequest, ErrCodeValidation)
	expectStatus(t, s.do(http.MethodGet, recipe.Image, "", nil), http.StatusOK)

	rec = s.do(http.MethodDelete, "/api/users/me/", token, map[string]string{"current_password": "Str0ng-Passw0rd"})
	expectStatus(t, rec, http.StatusNoContent)

	expectError(t, s.do(http.MethodGet, fmt.Sprintf("/api/recipes/%d/", recipe.ID), "", nil), http.StatusNotFound, ErrCodeNotFound)
	expectStatus(t, s.do(http.MethodGet, recipe.Image, "", nil), http.StatusNotFound)
	expectStatus(t, s.do(http.MethodGet, "/api/users/me/", token, nil), http.StatusUnauthorized)
}

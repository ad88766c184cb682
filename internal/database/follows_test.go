// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package database

import (
	"context"
	"errors"
	"testing"

	"github.com/tomtom215/foodgram/internal/models"
)

func TestFollowRules(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")

	if err := db.Follow(ctx, alice.ID, alice.ID); !errors.Is(err, ErrSelfFollow) {
		t.Errorf("self follow: got %v, want ErrSelfFollow", err)
	}
	checkErrorIs(t, db.Follow(ctx, alice.ID, 9999), ErrNotFound)

	checkNoError(t, db.Follow(ctx, alice.ID, bob.ID))
	checkErrorIs(t, db.Follow(ctx, alice.ID, bob.ID), ErrConflict)

	sub, err := db.IsSubscribed(ctx, alice.ID, bob.ID)
	checkNoError(t, err)
	checkBool(t, "alice follows bob", sub, true)

	sub, err = db.IsSubscribed(ctx, bob.ID, alice.ID)
	checkNoError(t, err)
	checkBool(t, "follow is directed", sub, false)

	checkNoError(t, db.Unfollow(ctx, alice.ID, bob.ID))
	checkErrorIs(t, db.Unfollow(ctx, alice.ID, bob.ID), ErrNotInList)
	checkErrorIs(t, db.Unfollow(ctx, alice.ID, 9999), ErrNotFound)
}

func TestSubscriptionsWithRecipes(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	reader := mustCreateUser(t, db, "reader")
	zed := mustCreateUser(t, db, "zed")
	amy := mustCreateUser(t, db, "amy")
	mustCreateUser(t, db, "ignored")

	tag := mustCreateTag(t, db, "t", "#0F0F0F")
	ing := mustCreateIngredient(t, db, "Rice", "g")
	items := []models.IngredientAmount{{ID: ing.ID, Amount: 1}}
	mustCreateRecipe(t, db, amy.ID, "amy-1", []int64{tag.ID}, items)
	mustCreateRecipe(t, db, amy.ID, "amy-2", []int64{tag.ID}, items)
	newest := mustCreateRecipe(t, db, amy.ID, "amy-3", []int64{tag.ID}, items)

	checkNoError(t, db.Follow(ctx, reader.ID, zed.ID))
	checkNoError(t, db.Follow(ctx, reader.ID, amy.ID))

	users, total, err := db.Subscriptions(ctx, reader.ID, 10, 0)
	checkNoError(t, err)
	checkIntEqual(t, "total", total, 2)
	checkStringEqual(t, "ordered by username", users[0].Username, "amy")

	set, err := db.SubscribedSet(ctx, reader.ID, []int64{zed.ID, amy.ID, reader.ID})
	checkNoError(t, err)
	checkBool(t, "zed", set[zed.ID], true)
	checkBool(t, "self", set[reader.ID], false)

	byAuthor, err := db.RecipesByAuthors(ctx, []int64{amy.ID, zed.ID}, 2)
	checkNoError(t, err)
	checkIntEqual(t, "amy limited recipes", len(byAuthor[amy.ID].Recipes), 2)
	checkIntEqual(t, "amy total", byAuthor[amy.ID].Total, 3)
	if byAuthor[amy.ID].Recipes[0].ID != newest {
		t.Errorf("newest recipe should come first, got %+v", byAuthor[amy.ID].Recipes)
	}
	checkIntEqual(t, "zed recipes", len(byAuthor[zed.ID].Recipes), 0)
	checkIntEqual(t, "zed total", byAuthor[zed.ID].Total, 0)

	unlimited, err := db.RecipesByAuthors(ctx, []int64{amy.ID}, 0)
	checkNoError(t, err)
	checkIntEqual(t, "unlimited", len(unlimited[amy.ID].Recipes), 3)
}

func TestSubscribedSetAnonymous(t *testing.T) {
	db := setupTestDB(t)

	set, err := db.SubscribedSet(context.Background(), 0, []int64{1, 2})
	checkNoError(t, err)
	checkIntEqual(t, "anonymous set", len(set), 0)
}

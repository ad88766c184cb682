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

func TestCreateAndGetRecipe(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	lunch := mustCreateTag(t, db, "lunch", "#00FF00")
	dinner := mustCreateTag(t, db, "dinner", "#0000FF")
	flour := mustCreateIngredient(t, db, "Flour", "g")
	milk := mustCreateIngredient(t, db, "Milk", "ml")

	id := mustCreateRecipe(t, db, alice.ID, "pancakes", []int64{lunch.ID, dinner.ID},
		[]models.IngredientAmount{{ID: flour.ID, Amount: 200}, {ID: milk.ID, Amount: 300}})

	checkNoError(t, db.Follow(ctx, bob.ID, alice.ID))
	checkNoError(t, db.AddToList(ctx, Favorites, bob.ID, id))

	r, err := db.GetRecipe(ctx, id, bob.ID)
	checkNoError(t, err)
	checkStringEqual(t, "name", r.Name, "pancakes")
	checkStringEqual(t, "author", r.Author.Username, "alice")
	checkBool(t, "author.is_subscribed", r.Author.IsSubscribed, true)
	checkBool(t, "is_favorited", r.IsFavorited, true)
	checkBool(t, "is_in_shopping_cart", r.IsInShoppingCart, false)
	checkIntEqual(t, "favorites_count", r.FavoritesCount, 1)
	checkIntEqual(t, "tags", len(r.Tags), 2)
	// Tags are ordered by name.
	checkStringEqual(t, "first tag", r.Tags[0].Slug, "dinner")
	checkIntEqual(t, "ingredients", len(r.Ingredients), 2)
	checkStringEqual(t, "first ingredient", r.Ingredients[0].Name, "Flour")
	checkIntEqual(t, "flour amount", r.Ingredients[0].Amount, 200)

	anon, err := db.GetRecipe(ctx, id, 0)
	checkNoError(t, err)
	checkBool(t, "anonymous is_favorited", anon.IsFavorited, false)
	checkBool(t, "anonymous author.is_subscribed", anon.Author.IsSubscribed, false)

	_, err = db.GetRecipe(ctx, 999, 0)
	checkErrorIs(t, err, ErrNotFound)
}

func TestCreateRecipeRejectsUnknownReferences(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	tag := mustCreateTag(t, db, "soup", "#123456")
	salt := mustCreateIngredient(t, db, "Salt", "g")

	tests := []struct {
		name  string
		tags  []int64
		items []models.IngredientAmount
	}{
		{"unknown tag", []int64{tag.ID, 777}, []models.IngredientAmount{{ID: salt.ID, Amount: 1}}},
		{"unknown ingredient", []int64{tag.ID}, []models.IngredientAmount{{ID: 888, Amount: 1}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := db.CreateRecipe(ctx, &models.RecipeWrite{
				AuthorID: alice.ID, Name: "x", Text: "y", Image: "z", CookingTime: 5,
				TagIDs: tt.tags, Ingredients: tt.items,
			})
			checkErrorIs(t, err, ErrUnknownReference)
		})
	}

	// Nothing was written by the failed transactions.
	_, total, err := db.ListRecipeRows(ctx, &models.RecipeFilter{Limit: 10})
	checkNoError(t, err)
	checkIntEqual(t, "recipes", total, 0)
}

func TestUpdateRecipeRollsBackLateFailure(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	a := mustCreateTag(t, db, "a", "#AAAAAA")
	b := mustCreateTag(t, db, "b", "#BBBBBB")
	egg := mustCreateIngredient(t, db, "Egg", "pcs")
	oil := mustCreateIngredient(t, db, "Oil", "ml")

	id := mustCreateRecipe(t, db, alice.ID, "orig", []int64{a.ID},
		[]models.IngredientAmount{{ID: egg.ID, Amount: 2}})

	// Each write gets past the recipe row and tag links before the
	// amount CHECK rejects it.
	tests := []struct {
		name  string
		items []models.IngredientAmount
	}{
		{"new ingredient out of range", []models.IngredientAmount{{ID: egg.ID, Amount: 2}, {ID: oil.ID, Amount: 0}}},
		{"changed amount out of range", []models.IngredientAmount{{ID: egg.ID, Amount: 0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := db.UpdateRecipe(ctx, id, &models.RecipeWrite{
				AuthorID:    alice.ID,
				Name:        "changed",
				Text:        "changed",
				Image:       "/media/recipes/changed.png",
				CookingTime: 9,
				TagIDs:      []int64{b.ID},
				Ingredients: tt.items,
			})
			if err == nil {
				t.Fatal("expected the update to fail")
			}
			if errors.Is(err, ErrConflict) {
				t.Errorf("range failure reported as conflict: %v", err)
			}

			r, err := db.GetRecipe(ctx, id, 0)
			checkNoError(t, err)
			checkStringEqual(t, "name", r.Name, "orig")
			checkIntEqual(t, "tags", len(r.Tags), 1)
			checkStringEqual(t, "tag", r.Tags[0].Slug, "a")
			checkIntEqual(t, "ingredients", len(r.Ingredients), 1)
			checkStringEqual(t, "ingredient", r.Ingredients[0].Name, "Egg")
			checkIntEqual(t, "amount", r.Ingredients[0].Amount, 2)
		})
	}
}

func TestUpdateRecipeReplacesAssociations(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	a := mustCreateTag(t, db, "a", "#AAAAAA")
	b := mustCreateTag(t, db, "b", "#BBBBBB")
	c := mustCreateTag(t, db, "c", "#CCCCCC")
	egg := mustCreateIngredient(t, db, "Egg", "pcs")
	oil := mustCreateIngredient(t, db, "Oil", "ml")
	salt := mustCreateIngredient(t, db, "Salt", "g")

	id := mustCreateRecipe(t, db, alice.ID, "fried egg", []int64{a.ID, b.ID},
		[]models.IngredientAmount{{ID: egg.ID, Amount: 2}, {ID: oil.ID, Amount: 10}})

	err := db.UpdateRecipe(ctx, id, &models.RecipeWrite{
		AuthorID:    alice.ID,
		Name:        "salted egg",
		Text:        "Fry and salt.",
		Image:       "/media/recipes/new.png",
		CookingTime: 7,
		TagIDs:      []int64{b.ID, c.ID},
		Ingredients: []models.IngredientAmount{{ID: egg.ID, Amount: 3}, {ID: salt.ID, Amount: 1}},
	})
	checkNoError(t, err)

	r, err := db.GetRecipe(ctx, id, 0)
	checkNoError(t, err)
	checkStringEqual(t, "name", r.Name, "salted egg")
	checkIntEqual(t, "cooking_time", r.CookingTime, 7)

	slugs := map[string]bool{}
	for _, tag := range r.Tags {
		slugs[tag.Slug] = true
	}
	if len(slugs) != 2 || !slugs["b"] || !slugs["c"] {
		t.Errorf("tags after update = %v, want b and c", slugs)
	}

	amounts := map[string]int{}
	for _, ri := range r.Ingredients {
		amounts[ri.Name] = ri.Amount
	}
	if len(amounts) != 2 || amounts["Egg"] != 3 || amounts["Salt"] != 1 {
		t.Errorf("ingredients after update = %v, want Egg:3 Salt:1", amounts)
	}

	checkErrorIs(t, db.UpdateRecipe(ctx, 999, &models.RecipeWrite{
		Name: "x", Text: "y", Image: "z", CookingTime: 1,
		TagIDs: []int64{a.ID}, Ingredients: []models.IngredientAmount{{ID: egg.ID, Amount: 1}},
	}), ErrNotFound)
}

func TestDeleteRecipeCascades(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	tag := mustCreateTag(t, db, "x", "#ABCDEF")
	salt := mustCreateIngredient(t, db, "Salt", "g")
	id := mustCreateRecipe(t, db, alice.ID, "brine", []int64{tag.ID},
		[]models.IngredientAmount{{ID: salt.ID, Amount: 50}})
	checkNoError(t, db.AddToList(ctx, Favorites, alice.ID, id))
	checkNoError(t, db.AddToList(ctx, ShoppingCart, alice.ID, id))

	checkNoError(t, db.DeleteRecipe(ctx, id))
	_, err := db.GetRecipeRow(ctx, id, 0)
	checkErrorIs(t, err, ErrNotFound)

	items, err := db.ShoppingListItems(ctx, alice.ID)
	checkNoError(t, err)
	checkIntEqual(t, "shopping list", len(items), 0)

	checkErrorIs(t, db.DeleteRecipe(ctx, id), ErrNotFound)
}

func TestListRecipesFilters(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	bob := mustCreateUser(t, db, "bob")
	breakfast := mustCreateTag(t, db, "breakfast", "#111111")
	dinner := mustCreateTag(t, db, "dinner", "#222222")
	salt := mustCreateIngredient(t, db, "Salt", "g")
	items := []models.IngredientAmount{{ID: salt.ID, Amount: 1}}

	r1 := mustCreateRecipe(t, db, alice.ID, "r1", []int64{breakfast.ID}, items)
	r2 := mustCreateRecipe(t, db, alice.ID, "r2", []int64{dinner.ID}, items)
	r3 := mustCreateRecipe(t, db, bob.ID, "r3", []int64{breakfast.ID, dinner.ID}, items)

	checkNoError(t, db.AddToList(ctx, Favorites, bob.ID, r1))
	checkNoError(t, db.AddToList(ctx, ShoppingCart, bob.ID, r2))

	tests := []struct {
		name   string
		filter models.RecipeFilter
		want   []int64
	}{
		{"all newest first", models.RecipeFilter{}, []int64{r3, r2, r1}},
		{"by author", models.RecipeFilter{AuthorID: alice.ID}, []int64{r2, r1}},
		{"by one tag", models.RecipeFilter{TagSlugs: []string{"breakfast"}}, []int64{r3, r1}},
		{"by any of tags", models.RecipeFilter{TagSlugs: []string{"breakfast", "dinner"}}, []int64{r3, r2, r1}},
		{"favorited", models.RecipeFilter{ViewerID: bob.ID, Favorited: true}, []int64{r1}},
		{"in cart", models.RecipeFilter{ViewerID: bob.ID, InShoppingCart: true}, []int64{r2}},
		{"anonymous favorited is a no-op", models.RecipeFilter{Favorited: true}, []int64{r3, r2, r1}},
		{"author and tag", models.RecipeFilter{AuthorID: alice.ID, TagSlugs: []string{"dinner"}}, []int64{r2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := tt.filter
			f.Limit = 10
			recipes, total, err := db.ListRecipes(ctx, &f)
			checkNoError(t, err)
			checkIntEqual(t, "total", total, len(tt.want))
			if len(recipes) != len(tt.want) {
				t.Fatalf("got %d recipes, want %d", len(recipes), len(tt.want))
			}
			for i, id := range tt.want {
				if recipes[i].ID != id {
					t.Errorf("position %d: got recipe %d, want %d", i, recipes[i].ID, id)
				}
			}
		})
	}

	// Pagination
	page, total, err := db.ListRecipes(ctx, &models.RecipeFilter{Limit: 2, Offset: 2})
	checkNoError(t, err)
	checkIntEqual(t, "paged total", total, 3)
	checkIntEqual(t, "page length", len(page), 1)
}

func TestRecipeAuthor(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	alice := mustCreateUser(t, db, "alice")
	tag := mustCreateTag(t, db, "t", "#010101")
	ing := mustCreateIngredient(t, db, "Water", "ml")
	id := mustCreateRecipe(t, db, alice.ID, "water", []int64{tag.ID},
		[]models.IngredientAmount{{ID: ing.ID, Amount: 1}})

	author, err := db.RecipeAuthor(ctx, id)
	checkNoError(t, err)
	checkIntEqual(t, "author", int(author), int(alice.ID))

	_, err = db.RecipeAuthor(ctx, id+100)
	checkErrorIs(t, err, ErrNotFound)
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package models defines the data structures shared by the database, auth and
api packages.

Storage rows (User, RecipeRow, ShoppingListItem, ...) are returned by the
named query functions in internal/database. Response payloads (Recipe,
RecipeShort, UserProfile, Subscription, Page) are what the API encodes inside
the APIResponse envelope. Request payloads live in internal/api next to the
validation rules that guard them.
*/
package models

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package models

import (
	"fmt"
	"strings"
)

// ShoppingListFilename is the attachment name of the downloaded list.
const ShoppingListFilename = "shopping_list.txt"

// RenderShoppingList formats aggregated items one per line as
// "- {name}: {amount} {unit}.".
func RenderShoppingList(items []ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("- %s: %d %s.", it.Name, it.Amount, it.MeasurementUnit))
	}
	return strings.Join(lines, "\n")
}

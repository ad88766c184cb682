// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package cache provides a thread-safe in-memory TTL cache.

The API layer keeps the tag list and ingredient prefix searches here since
both change rarely and are requested on every recipe form. Writers that
create tags or ingredients invalidate the affected keys:

	c := cache.New("catalog", 10*time.Minute)

	key := cache.GenerateKey("ingredients", prefix)
	if v, ok := c.Get(key); ok {
	    return v.([]models.Ingredient), nil
	}
	list, err := db.SearchIngredients(ctx, prefix)
	if err != nil {
	    return nil, err
	}
	c.Set(key, list)

	// after CreateIngredient
	c.DeletePrefix("ingredients:")

Hits and misses are exported as foodgram_cache_lookups_total and the size as
foodgram_cache_entries, both labelled with the cache name.

Serve implements suture.Service so the periodic sweep of expired entries
stops with the rest of the process.
*/
package cache

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package metrics

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordAPIRequest(t *testing.T) {
	before := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/tags/", "200"))

	RecordAPIRequest("GET", "/api/tags/", "200", 3*time.Millisecond)
	RecordAPIRequest("GET", "/api/tags/", "200", 5*time.Millisecond)

	after := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("GET", "/api/tags/", "200"))
	if after-before != 2 {
		t.Errorf("api_requests_total grew by %v, want 2", after-before)
	}
}

func TestTrackActiveRequest(t *testing.T) {
	before := testutil.ToFloat64(APIActiveRequests)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			TrackActiveRequest(true)
			TrackActiveRequest(false)
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(APIActiveRequests); got != before {
		t.Errorf("active requests = %v, want %v", got, before)
	}
}

func TestDomainCounters(t *testing.T) {
	tests := []struct {
		name   string
		record func()
		read   func() float64
		delta  float64
	}{
		{
			name:   "recipe create",
			record: func() { RecordRecipeWrite("create") },
			read:   func() float64 { return testutil.ToFloat64(RecipesWritten.WithLabelValues("create")) },
			delta:  1,
		},
		{
			name:   "favorite add",
			record: func() { RecordListChange("favorites", true) },
			read:   func() float64 { return testutil.ToFloat64(RecipeListChanges.WithLabelValues("favorites", "add")) },
			delta:  1,
		},
		{
			name:   "cart remove",
			record: func() { RecordListChange("shopping cart", false) },
			read: func() float64 {
				return testutil.ToFloat64(RecipeListChanges.WithLabelValues("shopping cart", "remove"))
			},
			delta: 1,
		},
		{
			name:   "unfollow",
			record: func() { RecordSubscriptionChange(false) },
			read:   func() float64 { return testutil.ToFloat64(SubscriptionChanges.WithLabelValues("unfollow")) },
			delta:  1,
		},
		{
			name:   "token purge adds n",
			record: func() { RecordTokenOperation("purge", 3) },
			read:   func() float64 { return testutil.ToFloat64(TokenOperations.WithLabelValues("purge")) },
			delta:  3,
		},
		{
			name:   "token purge of zero is ignored",
			record: func() { RecordTokenOperation("purge", 0) },
			read:   func() float64 { return testutil.ToFloat64(TokenOperations.WithLabelValues("purge")) },
			delta:  0,
		},
		{
			name:   "rejected image",
			record: func() { RecordImage(false) },
			read:   func() float64 { return testutil.ToFloat64(ImagesStored.WithLabelValues("rejected")) },
			delta:  1,
		},
		{
			name:   "download",
			record: RecordShoppingListDownload,
			read:   func() float64 { return testutil.ToFloat64(ShoppingListDownloads) },
			delta:  1,
		},
		{
			name:   "api error",
			record: func() { RecordAPIError("NOT_FOUND") },
			read:   func() float64 { return testutil.ToFloat64(APIErrorsTotal.WithLabelValues("NOT_FOUND")) },
			delta:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := tt.read()
			tt.record()
			if got := tt.read() - before; got != tt.delta {
				t.Errorf("delta = %v, want %v", got, tt.delta)
			}
		})
	}
}

func TestRecordDBQuery(t *testing.T) {
	RecordDBQuery("list", "recipes", 2*time.Millisecond)
	if n := testutil.CollectAndCount(DBQueryDuration); n == 0 {
		t.Error("expected at least one histogram series")
	}
}

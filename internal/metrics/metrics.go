// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Database Metrics
	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "duckdb_query_duration_seconds",
			Help:    "Duration of DuckDB read queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	APIErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Error responses by error code",
		},
		[]string{"code"},
	)

	// Domain Metrics
	RecipesWritten = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipes_written_total",
			Help: "Recipe writes by action (create, update, delete)",
		},
		[]string{"action"},
	)

	RecipeListChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_recipe_list_changes_total",
			Help: "Favorite and shopping cart changes by list and action (add, remove)",
		},
		[]string{"list", "action"},
	)

	SubscriptionChanges = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_subscription_changes_total",
			Help: "Follow and unfollow operations",
		},
		[]string{"action"},
	)

	ShoppingListDownloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_shopping_list_downloads_total",
			Help: "Shopping list files served",
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "foodgram_users_registered_total",
			Help: "Accounts created through sign up",
		},
	)

	TokenOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_token_operations_total",
			Help: "Token lifecycle events by operation (issue, revoke, purge)",
		},
		[]string{"operation"},
	)

	ImagesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "foodgram_images_stored_total",
			Help: "Recipe image uploads by result (stored, rejected)",
		},
		[]string{"result"},
	)
)

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table string, duration time.Duration) {
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration.Seconds())
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordAPIError counts an error envelope sent to a client.
func RecordAPIError(code string) {
	APIErrorsTotal.WithLabelValues(code).Inc()
}

// RecordRateLimitHit counts a rejected request.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// RecordRecipeWrite counts a recipe create, update or delete.
func RecordRecipeWrite(action string) {
	RecipesWritten.WithLabelValues(action).Inc()
}

// RecordListChange counts a favorite or shopping cart change.
func RecordListChange(list string, added bool) {
	RecipeListChanges.WithLabelValues(list, addRemove(added)).Inc()
}

// RecordSubscriptionChange counts a follow or unfollow.
func RecordSubscriptionChange(followed bool) {
	action := "unfollow"
	if followed {
		action = "follow"
	}
	SubscriptionChanges.WithLabelValues(action).Inc()
}

// RecordShoppingListDownload counts a served shopping list.
func RecordShoppingListDownload() {
	ShoppingListDownloads.Inc()
}

// RecordUserRegistered counts a sign up.
func RecordUserRegistered() {
	UsersRegistered.Inc()
}

// RecordTokenOperation counts n token events of one kind.
func RecordTokenOperation(operation string, n int64) {
	if n <= 0 {
		return
	}
	TokenOperations.WithLabelValues(operation).Add(float64(n))
}

// RecordImage counts an image upload outcome.
func RecordImage(stored bool) {
	result := "rejected"
	if stored {
		result = "stored"
	}
	ImagesStored.WithLabelValues(result).Inc()
}

func addRemove(added bool) string {
	if added {
		return "add"
	}
	return "remove"
}

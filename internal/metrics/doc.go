// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

/*
Package metrics declares the Prometheus collectors shared across the service.

Collectors register with the default registry through promauto and are
exposed by promhttp at /metrics:

	curl http://localhost:8000/metrics

# Available Metrics

HTTP:
  - api_requests_total{method, endpoint, status_code}
  - api_request_duration_seconds{method, endpoint}
  - api_active_requests
  - api_rate_limit_hits_total{endpoint}
  - api_errors_total{code}

Database:
  - duckdb_query_duration_seconds{operation, table}

Domain:
  - foodgram_recipes_written_total{action}
  - foodgram_recipe_list_changes_total{list, action}
  - foodgram_subscription_changes_total{action}
  - foodgram_shopping_list_downloads_total
  - foodgram_users_registered_total
  - foodgram_token_operations_total{operation}
  - foodgram_images_stored_total{result}

The endpoint label is the chi route pattern (for example
/api/recipes/{id}/), never the raw path, so ids do not create new series.

Packages with their own collectors (auth, authz, cache) register them next to
the code that updates them.
*/
package metrics

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package authz

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DecisionsTotal counts authorization decisions by role, object, action and outcome.
var DecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodgram_authz_decisions_total",
		Help: "Total number of authorization decisions",
	},
	[]string{"role", "object", "action", "decision"},
)

func recordDecision(role, object, action string, allowed bool) {
	decision := "deny"
	if allowed {
		decision = "allow"
	}
	DecisionsTotal.WithLabelValues(role, object, action, decision).Inc()
}

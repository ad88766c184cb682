// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package auth

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var authFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "foodgram_auth_failures_total",
		Help: "Rejected authentication attempts by reason",
	},
	[]string{"reason"},
)

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package validation

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy     *bluemonday.Policy
	strictPolicyOnce sync.Once
)

func policy() *bluemonday.Policy {
	strictPolicyOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
	return strictPolicy
}

// SanitizeText strips all markup from user supplied free text. Entities
// produced by the policy are decoded again because responses are JSON,
// not HTML.
//
//	name := validation.SanitizeText(req.Name) // "<b>Soup</b> & bread" -> "Soup & bread"
func SanitizeText(input string) string {
	if input == "" {
		return input
	}
	if !strings.ContainsAny(input, "<>&") {
		return strings.TrimSpace(input)
	}
	return strings.TrimSpace(html.UnescapeString(policy().Sanitize(input)))
}

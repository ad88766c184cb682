// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package config

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// PasswordPolicy describes the checks applied to account passwords at signup,
// on password change and to the bootstrap admin password.
type PasswordPolicy struct {
	MinLength int

	// ForbidNumeric rejects passwords made only of digits.
	ForbidNumeric bool

	// ForbidCommon rejects passwords from a short breached-password list.
	ForbidCommon bool

	// ForbidAttributeSimilarity rejects passwords containing the username or
	// the local part of the email (or contained in them).
	ForbidAttributeSimilarity bool
}

// DefaultPasswordPolicy returns the policy used for every account.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{
		MinLength:                 8,
		ForbidNumeric:             true,
		ForbidCommon:              true,
		ForbidAttributeSimilarity: true,
	}
}

// Violations returns every rule the password breaks, empty when it passes.
// attrs are user attributes such as username and email.
func (p PasswordPolicy) Violations(password string, attrs ...string) []string {
	var out []string

	if len([]rune(password)) < p.MinLength {
		out = append(out, fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	if p.ForbidNumeric && password != "" && isAllDigits(password) {
		out = append(out, "password must not be entirely numeric")
	}
	if p.ForbidCommon && commonPasswords[strings.ToLower(password)] {
		out = append(out, "password is too common")
	}
	if p.ForbidAttributeSimilarity {
		for _, attr := range attrs {
			if similarToAttribute(password, attr) {
				out = append(out, "password is too similar to the account details")
				break
			}
		}
	}
	return out
}

// Check is Violations joined into a single error.
func (p PasswordPolicy) Check(password string, attrs ...string) error {
	if v := p.Violations(password, attrs...); len(v) > 0 {
		return errors.New(strings.Join(v, "; "))
	}
	return nil
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// similarToAttribute compares case-insensitively; emails are reduced to their
// local part. Attributes shorter than 3 characters are ignored.
func similarToAttribute(password, attr string) bool {
	attr = strings.ToLower(strings.TrimSpace(attr))
	if at := strings.IndexByte(attr, '@'); at > 0 {
		attr = attr[:at]
	}
	if len(attr) < 3 {
		return false
	}
	pass := strings.ToLower(password)
	return strings.Contains(pass, attr) || strings.Contains(attr, pass)
}

var commonPasswords = map[string]bool{
	"123456":      true,
	"password":    true,
	"123456789":   true,
	"12345678":    true,
	"qwerty":      true,
	"qwerty123":   true,
	"qwertyuiop":  true,
	"abc123":      true,
	"abcd1234":    true,
	"password1":   true,
	"password123": true,
	"passw0rd":    true,
	"p@ssw0rd":    true,
	"admin":       true,
	"admin123":    true,
	"letmein":     true,
	"welcome":     true,
	"welcome1":    true,
	"iloveyou":    true,
	"sunshine":    true,
	"princess":    true,
	"football":    true,
	"baseball":    true,
	"dragon":      true,
	"monkey":      true,
	"master":      true,
	"trustno1":    true,
	"1q2w3e4r":    true,
	"1qaz2wsx":    true,
	"zxcvbnm":     true,
	"asdfghjkl":   true,
	"changeme":    true,
	"foodgram":    true,
	"recipes":     true,
	"cooking":     true,
	"delicious":   true,
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package config

import (
	"fmt"
	"strings"
	"time"
)

// Validate checks that required configuration is present and valid
func (c *Config) Validate() error {
	validators := []func() error{
		c.validateServer,
		c.validateDatabase,
		c.validateAPI,
		c.validateSecurity,
		c.validateMedia,
		c.validateLogging,
	}
	for _, v := range validators {
		if err := v(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535")
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) validateDatabase() error {
	if strings.TrimSpace(c.Database.Path) == "" {
		return fmt.Errorf("DUCKDB_PATH is required")
	}
	if c.Database.Threads < 0 {
		return fmt.Errorf("DUCKDB_THREADS must not be negative")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.DefaultPageSize < 1 {
		return fmt.Errorf("API_DEFAULT_PAGE_SIZE must be at least 1")
	}
	if c.API.MaxPageSize < c.API.DefaultPageSize {
		return fmt.Errorf("API_MAX_PAGE_SIZE (%d) must not be smaller than API_DEFAULT_PAGE_SIZE (%d)",
			c.API.MaxPageSize, c.API.DefaultPageSize)
	}
	return nil
}

// Rate limit bounds
const (
	minRateLimitRequests = 1
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
	minTokenSecretLength = 32
)

func (c *Config) validateSecurity() error {
	if err := c.validateTokenSecret(); err != nil {
		return err
	}
	if c.Security.TokenTTL < time.Minute {
		return fmt.Errorf("TOKEN_TTL must be at least 1m")
	}
	if err := c.validateCORS(); err != nil {
		return err
	}
	if err := c.validateRateLimits(); err != nil {
		return err
	}
	return c.validateAdminBootstrap()
}

func (c *Config) validateTokenSecret() error {
	if c.Security.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET is required")
	}
	if len(c.Security.TokenSecret) < minTokenSecretLength {
		return fmt.Errorf("TOKEN_SECRET must be at least %d characters", minTokenSecretLength)
	}
	if containsPlaceholder(c.Security.TokenSecret) {
		return fmt.Errorf("TOKEN_SECRET contains a placeholder value - generate one with: openssl rand -base64 32")
	}
	return nil
}

// validateCORS rejects wildcard origins in production, where tokens would be
// usable from any site.
func (c *Config) validateCORS() error {
	if c.IsProduction() && c.hasWildcardCORS() {
		return fmt.Errorf("CORS_ORIGINS=* is not allowed when ENVIRONMENT=production; list the frontend origins explicitly")
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

func (c *Config) validateRateLimits() error {
	if c.Security.LoginRatePerMin < 1 || c.Security.LoginBurst < 1 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN and LOGIN_BURST must be at least 1")
	}
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs < minRateLimitRequests || c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be between %d and %d", minRateLimitRequests, maxRateLimitRequests)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v", minRateLimitWindow, maxRateLimitWindow)
	}
	return nil
}

// validateAdminBootstrap only applies when an admin account is requested.
func (c *Config) validateAdminBootstrap() error {
	s := c.Security
	if s.AdminEmail == "" && s.AdminPassword == "" {
		return nil
	}
	if s.AdminEmail == "" || s.AdminPassword == "" || s.AdminUsername == "" {
		return fmt.Errorf("ADMIN_EMAIL, ADMIN_USERNAME and ADMIN_PASSWORD must be set together")
	}
	if containsPlaceholder(s.AdminPassword) {
		return fmt.Errorf("ADMIN_PASSWORD contains a placeholder value - set a real password")
	}
	if err := DefaultPasswordPolicy().Check(s.AdminPassword, s.AdminUsername, s.AdminEmail); err != nil {
		return fmt.Errorf("ADMIN_PASSWORD: %w", err)
	}
	return nil
}

func (c *Config) validateMedia() error {
	if strings.TrimSpace(c.Media.Dir) == "" {
		return fmt.Errorf("MEDIA_DIR is required")
	}
	if !strings.HasPrefix(c.Media.URLPrefix, "/") || !strings.HasSuffix(c.Media.URLPrefix, "/") {
		return fmt.Errorf("MEDIA_URL_PREFIX must start and end with '/'")
	}
	if c.Media.MaxBytes < 1024 {
		return fmt.Errorf("MEDIA_MAX_BYTES must be at least 1024")
	}
	if c.Media.MaxDimension < 16 {
		return fmt.Errorf("MEDIA_MAX_DIMENSION must be at least 16")
	}
	if c.Media.MaxPixels < int64(c.Media.MaxDimension)*int64(c.Media.MaxDimension) {
		return fmt.Errorf("MEDIA_MAX_PIXELS must be at least MEDIA_MAX_DIMENSION squared")
	}
	return nil
}

var validLogLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true, "error": true,
}

var validLogFormats = map[string]bool{
	"json": true, "console": true,
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

// IsProduction reports whether ENVIRONMENT names a production deployment.
func (c *Config) IsProduction() bool {
	env := strings.ToLower(c.Server.Environment)
	return env == "production" || env == "prod"
}

// placeholderPatterns flag values copied from example files.
var placeholderPatterns = []string{
	"REPLACE",
	"CHANGEME",
	"CHANGE_ME",
	"YOUR_SECRET",
	"PLACEHOLDER",
	"EXAMPLE",
}

func containsPlaceholder(value string) bool {
	upper := strings.ToUpper(value)
	for _, p := range placeholderPatterns {
		if strings.Contains(upper, p) {
			return true
		}
	}
	return false
}

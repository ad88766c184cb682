// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	API      APIConfig      `koanf:"api"`
	Security SecurityConfig `koanf:"security"`
	Media    MediaConfig    `koanf:"media"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port            int           `koanf:"port"`
	Host            string        `koanf:"host"`
	Timeout         time.Duration `koanf:"timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	Environment     string        `koanf:"environment"` // development, staging, production
	Debug           bool          `koanf:"debug"`       // adds request details to 404 responses
}

// Addr returns host:port for net/http.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig holds DuckDB settings
type DatabaseConfig struct {
	Path        string `koanf:"path"`
	MaxMemory   string `koanf:"max_memory"`
	Threads     int    `koanf:"threads"`      // 0 = runtime.NumCPU()
	SkipIndexes bool   `koanf:"skip_indexes"` // tests only; unique indexes back the conflict checks
}

// APIConfig holds pagination settings
type APIConfig struct {
	DefaultPageSize int `koanf:"default_page_size"`
	MaxPageSize     int `koanf:"max_page_size"`
}

// SecurityConfig holds authentication and request limiting settings
type SecurityConfig struct {
	TokenSecret       string        `koanf:"token_secret"`
	TokenTTL          time.Duration `koanf:"token_ttl"`
	TokenPurgeEvery   time.Duration `koanf:"token_purge_every"` // expired and revoked token cleanup
	RateLimitReqs     int           `koanf:"rate_limit_reqs"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
	LoginRatePerMin   int           `koanf:"login_rate_per_min"`
	LoginBurst        int           `koanf:"login_burst"`
	CORSOrigins       []string      `koanf:"cors_origins"`

	// AdminEmail and AdminPassword bootstrap a staff account at startup when both are set.
	AdminEmail    string `koanf:"admin_email"`
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
}

// MediaConfig holds uploaded image storage settings
type MediaConfig struct {
	Dir          string `koanf:"dir"`
	URLPrefix    string `koanf:"url_prefix"`
	MaxBytes     int64  `koanf:"max_bytes"`     // decoded image size limit
	MaxDimension int    `koanf:"max_dimension"` // longer side is downscaled to this
	MaxPixels    int64  `koanf:"max_pixels"`    // width*height limit checked before decoding
}

// LoggingConfig holds zerolog settings
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Foodgram - Recipe Sharing Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/foodgram

// Package config loads Foodgram configuration with koanf.
//
// Precedence, highest first: environment variables, YAML config file,
// built-in defaults. A .env file (or DOTENV_PATH) is applied to the process
// environment before the environment layer is read.
//
// Environment variables are mapped explicitly (see envMappings):
//
//	TOKEN_SECRET        security.token_secret (required, 32+ characters)
//	DUCKDB_PATH         database.path
//	HTTP_PORT           server.port
//	CORS_ORIGINS        security.cors_origins (comma separated)
//	MEDIA_DIR           media.dir
//	LOG_LEVEL           logging.level
//
// Example config.yaml:
//
//	server:
//	  port: 8000
//	api:
//	  default_page_size: 6
//	security:
//	  token_secret: "..."
//	  cors_origins: ["https://foodgram.example.org"]
package config

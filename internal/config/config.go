// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the server configuration.
type StructuredConfig struct {
	App App `envPrefix:"APP_"`

	Storage Storage `envPrefix:"STORAGE_"`

	Server Server `envPrefix:"SERVER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Env: CONFIG, flags: -c / -config.
	JSONFilePath string `env:"CONFIG"`
}

// App holds secrets, token settings and the reported version.
type App struct {
	// PasswordHashKey keys the HMAC applied to client auth hashes before
	// they are stored. Env: APP_PASSWORD_HASH_KEY
	PasswordHashKey string `env:"PASSWORD_HASH_KEY"`

	// TokenSignKey signs and verifies session JWTs. Env: APP_TOKEN_SIGN_KEY
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenIssuer is the "iss" claim. Env: APP_TOKEN_ISSUER
	TokenIssuer string `env:"TOKEN_ISSUER"`

	// TokenDuration is the session lifetime (e.g. "24h").
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// Version is exposed via /api/version. Env: APP_VERSION
	Version string `env:"VERSION"`

	// LogLevel is a zerolog level name. Env: APP_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// Storage groups persistence settings.
type Storage struct {
	DB DB `envPrefix:"DB_"`
}

// DB holds the relational database connection settings.
type DB struct {
	// DSN selects the backend: a postgres:// or postgresql:// URL opens
	// PostgreSQL through pgx, anything else is treated as a SQLite file path
	// or file: URI. Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Server holds the inbound HTTP transport settings.
type Server struct {
	// HTTPAddress is the listen address, "host:port". Env: SERVER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds a single request. Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// ShutdownTimeout bounds graceful shutdown. Env: SERVER_SHUTDOWN_TIMEOUT
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT"`
}

func defaultStructuredConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:   "pass-guard",
			TokenDuration: 24 * time.Hour,
			LogLevel:      "info",
		},
		Server: Server{
			HTTPAddress:     "localhost:8080",
			RequestTimeout:  30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
	}
}

// GetStructuredConfig loads the server configuration from the environment,
// the process command line and the optional JSON file, fills defaults and
// validates the result.
func GetStructuredConfig() (*StructuredConfig, error) {
	flagCfg, err := ParseFlags()
	if err != nil {
		return nil, err
	}

	return newConfigBuilder(serverJSONPath, (*StructuredConfig).validate).
		withEnv().
		with(flagCfg).
		withJSON(parseJSON).
		with(defaultStructuredConfig()).
		build()
}

func serverJSONPath(cfg *StructuredConfig) string {
	return cfg.JSONFilePath
}

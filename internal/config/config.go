// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container of the
// playground-auth server. It aggregates all sub-configurations and is
// populated by merging values from a .env file, environment variables,
// command-line flags, and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// App holds token, password hashing and timestamp settings.
	App App `envPrefix:"APP_"`

	// Storage holds the record store connection settings.
	Storage Storage `envPrefix:"STORAGE_"`

	// Server holds network address, timeout and CORS settings for the
	// HTTP server.
	Server Server `envPrefix:"SERVER_"`

	// Adapter holds the settings of the command-line client.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// Populated via the CONFIG environment variable or the -c / -config flag.
	JSONFilePath string `env:"CONFIG"`

	// EnvFilePath is the optional path to a dotenv file loaded before the
	// environment is read. Defaults to ".env" in the working directory.
	EnvFilePath string `env:"ENV_FILE"`
}

// Storage groups the configuration of the record store.
type Storage struct {
	// DB holds the record store connection settings.
	DB DB `envPrefix:"DB_"`
}

// App holds application-level configuration values that control security,
// token lifecycle, and versioning.
type App struct {
	// TokenSignKey is the secret key used to sign and verify JWT tokens.
	// Env: APP_TOKEN_SIGN_KEY (legacy: JWT_SECRET)
	TokenSignKey string `env:"TOKEN_SIGN_KEY"`

	// TokenDuration specifies how long a JWT token remains valid after
	// issuance (e.g. "1h", "30m"). Zero issues tokens without expiry.
	// Env: APP_TOKEN_DURATION
	TokenDuration time.Duration `env:"TOKEN_DURATION"`

	// PasswordHashCost is the bcrypt work factor.
	// Env: APP_PASSWORD_HASH_COST
	PasswordHashCost int `env:"PASSWORD_HASH_COST"`

	// TimestampOffset is added to the wall clock when createdAt and
	// lastLogin are stamped (e.g. "5h30m", "0s").
	// Env: APP_TIMESTAMP_OFFSET
	TimestampOffset string `env:"TIMESTAMP_OFFSET"`

	// Version is exposed via the /api/version endpoint.
	// Env: APP_VERSION
	Version string `env:"VERSION"`
}

// Server holds network and timeout settings for the inbound transport layer.
type Server struct {
	// HTTPAddress is the TCP address on which the HTTP server listens,
	// in "host:port" format (e.g. "0.0.0.0:8080" or ":5001").
	// Env: SERVER_ADDRESS (legacy: PORT)
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout is the maximum duration allowed for a single inbound
	// request before the server cancels it (e.g. "30s", "1m").
	// Env: SERVER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// AllowedOrigins lists the CORS origins accepted by the API.
	// Env: SERVER_ALLOWED_ORIGINS (comma separated)
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
}

// DB holds connection settings for the record store.
type DB struct {
	// DSN selects the backend by scheme: mongodb://, mongodb+srv://,
	// postgres://, postgresql://, sqlite:// or file:.
	// Env: STORAGE_DB_DATABASE_URI (legacy: MONGO_URI)
	DSN string `env:"DATABASE_URI"`

	// Name is the Mongo database used when the DSN does not carry one.
	// Env: STORAGE_DB_NAME
	Name string `env:"NAME"`

	// ConnectTimeout bounds the initial connection and ping.
	// Env: STORAGE_DB_CONNECT_TIMEOUT
	ConnectTimeout time.Duration `env:"CONNECT_TIMEOUT"`
}

// Adapter holds the settings of the command-line API client.
type Adapter struct {
	// HTTPAddress is the base address of the API (e.g. "localhost:5001").
	// Env: ADAPTER_ADDRESS
	HTTPAddress string `env:"ADDRESS"`

	// RequestTimeout bounds every outbound request.
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// TokenFile keeps the bearer token between client invocations.
	// Env: ADAPTER_TOKEN_FILE
	TokenFile string `env:"TOKEN_FILE"`
}

// Default values applied to zero fields after all sources are merged.
const (
	DefaultHTTPAddress      = ":5001"
	DefaultPasswordHashCost = 10
	DefaultTimestampOffset  = "5h30m"
	DefaultDBName           = "test"
	DefaultConnectTimeout   = 10 * time.Second
	DefaultVersion          = "N/A"
	DefaultAdapterAddress   = "localhost:5001"
	DefaultAdapterTimeout   = 10 * time.Second
	DefaultTokenFile        = ".playground-auth-token"
	DefaultEnvFile          = ".env"
)

// Offset parses TimestampOffset.
func (a App) Offset() (time.Duration, error) {
	if a.TimestampOffset == "" {
		return time.ParseDuration(DefaultTimestampOffset)
	}
	return time.ParseDuration(a.TimestampOffset)
}

// GetStructuredConfig loads, merges, and validates the server configuration
// from all available sources in the following priority order (later sources
// win for non-zero fields):
//  1. .env file
//  2. Legacy environment variables (PORT, MONGO_URI, JWT_SECRET)
//  3. Prefixed environment variables
//  4. Command-line flags
//  5. JSON file (path resolved from sources 3 and 4)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load or the final config fails validation.
func GetStructuredConfig(args []string) (*StructuredConfig, error) {
	return newConfigBuilder().
		withDotEnv().
		withLegacyEnv().
		withEnv().
		withFlags(args).
		withJSON().
		build()
}

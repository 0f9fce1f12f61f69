// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. .env file (godotenv)
//  2. Legacy environment variables of the earlier deployment
//  3. Prefixed environment variables (caarlos0/env)
//  4. Command-line flags
//  5. JSON config file
//
// Defaults are applied to fields that are still zero after merging. The main
// entry points are [GetStructuredConfig] for the server and
// [GetClientConfig] for the command-line client.
package config

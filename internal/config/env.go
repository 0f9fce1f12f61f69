// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// parseEnv populates cfg from environment variables using the caarlos0/env
// library. Struct fields are mapped via their `env` and `envPrefix` tags
// defined on [StructuredConfig] and its nested types.
//
// Returns a wrapped error if env.Parse fails (e.g. a value cannot be
// converted to the target type).
func parseEnv(cfg any) error {
	err := env.Parse(cfg)
	if err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	return nil
}

// legacyEnv mirrors the variable names of the earlier deployment so
// existing .env files keep working.
type legacyEnv struct {
	Port      string `env:"PORT"`
	MongoURI  string `env:"MONGO_URI"`
	JWTSecret string `env:"JWT_SECRET"`
}

// parseLegacyEnv maps PORT, MONGO_URI and JWT_SECRET onto a
// [StructuredConfig]. PORT is turned into an all-interfaces listen address.
func parseLegacyEnv() (*StructuredConfig, error) {
	var legacy legacyEnv
	if err := parseEnv(&legacy); err != nil {
		return nil, fmt.Errorf("error getting legacy env configs: %w", err)
	}

	cfg := &StructuredConfig{
		App:     App{TokenSignKey: legacy.JWTSecret},
		Storage: Storage{DB: DB{DSN: legacy.MongoURI}},
	}
	if port := strings.TrimSpace(legacy.Port); port != "" {
		cfg.Server.HTTPAddress = ":" + strings.TrimPrefix(port, ":")
	}

	return cfg, nil
}

// loadDotEnv loads the dotenv file named by ENV_FILE (default ".env") into
// the process environment. Variables already set are not overwritten and a
// missing default file is not an error.
func loadDotEnv() error {
	path := os.Getenv("ENV_FILE")
	explicit := path != ""
	if !explicit {
		path = DefaultEnvFile
	}

	if err := godotenv.Load(path); err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("error loading env file %q: %w", path, err)
	}

	return nil
}

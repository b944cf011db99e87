// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"time"

	"dario.cat/mergo"
)

const clientEnvPrefix = "BOOKS_"

// ClientConfig is the configuration of the CLI client. Every field can be set
// through a BOOKS_-prefixed environment variable or a .env file.
type ClientConfig struct {
	// ServerAddress is the base URL or host:port of the service.
	// Env: BOOKS_SERVER_ADDRESS
	ServerAddress string `env:"SERVER_ADDRESS"`

	// RequestTimeout bounds each outbound request.
	// Env: BOOKS_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`

	// Token is the bearer token used for authenticated commands.
	// Env: BOOKS_TOKEN
	Token string `env:"TOKEN"`

	// LogLevel is a zerolog level name.
	// Env: BOOKS_LOG_LEVEL
	LogLevel string `env:"LOG_LEVEL"`
}

// GetClientConfig loads the client configuration from defaults, .env and the
// environment, then validates it.
func GetClientConfig() (*ClientConfig, error) {
	if err := loadDotEnv(os.Getenv("ENV_FILE")); err != nil {
		return nil, err
	}

	envCfg := &ClientConfig{}
	if err := parseEnvWithPrefix(envCfg, clientEnvPrefix); err != nil {
		return nil, err
	}

	cfg := &ClientConfig{
		ServerAddress:  "http://localhost:3000",
		RequestTimeout: 10 * time.Second,
		LogLevel:       "warn",
	}
	if err := mergo.Merge(cfg, envCfg, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging configs: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Package config reads server configuration from the environment.
package config

import (
	"errors"
	"os"

	"github.com/neutronpay/neutronpay-mcp-go/internal/log"
)

// Environment variable names.
const (
	EnvAPIKey     = "NEUTRONPAY_API_KEY"
	EnvAPISecret  = "NEUTRONPAY_API_SECRET"
	EnvAPIURL     = "NEUTRONPAY_API_URL"
	EnvLendingURL = "LENDING_API_URL"
	EnvLogLevel   = "LOG_LEVEL"
)

// ErrMissingCredentials indicates the mandatory API key or secret is absent.
// This is fatal at startup, before any tool is served.
var ErrMissingCredentials = errors.New("NEUTRONPAY_API_KEY and NEUTRONPAY_API_SECRET must be set")

// Config is the resolved process configuration.
type Config struct {
	APIKey     string
	APISecret  string
	APIBaseURL string // empty means the client default
	LendingURL string // empty means the lending client default
	LogLevel   string
}

// FromEnv resolves the configuration from environment variables. The API key
// and secret are mandatory; everything else is defaulted.
func FromEnv() (Config, error) {
	cfg := Config{
		APIKey:     os.Getenv(EnvAPIKey),
		APISecret:  os.Getenv(EnvAPISecret),
		APIBaseURL: ParseString(EnvAPIURL, ""),
		LendingURL: ParseString(EnvLendingURL, ""),
		LogLevel:   ParseString(EnvLogLevel, "info"),
	}
	if cfg.APIKey == "" || cfg.APISecret == "" {
		return Config{}, ErrMissingCredentials
	}
	return cfg, nil
}

// ParseString reads a string from an environment variable or returns the
// default. The source is logged for observability; values of sensitive keys
// are never logged.
func ParseString(key, defaultValue string) string {
	logger := log.WithComponent("config")
	if value, exists := os.LookupEnv(key); exists && value != "" {
		logger.Debug().
			Str("key", key).
			Str("source", "environment").
			Msg("using environment variable")
		return value
	}
	logger.Debug().
		Str("key", key).
		Str("default", defaultValue).
		Str("source", "default").
		Msg("using default value")
	return defaultValue
}

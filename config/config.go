// Package config provides configuration management for the fin tools.
// It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Environment variables read by Load.
const (
	EnvStore      = "FIN_STORE"
	EnvBackend    = "FIN_BACKEND"
	EnvCurrency   = "FIN_CURRENCY"
	EnvCategories = "FIN_CATEGORIES"
	EnvAddr       = "FIN_ADDR"
	EnvVerbose    = "FIN_VERBOSE"
	EnvTestingNow = "FIN_TESTING_NOW"
)

// Storage backends.
const (
	BackendBolt   = "bolt"
	BackendSQLite = "sqlite"
	BackendFile   = "file"
)

// Config represents the application configuration.
type Config struct {
	Store      string // path of the ledger database
	Backend    string // one of BackendBolt, BackendSQLite or BackendFile
	Currency   string // ISO currency code used to display amounts
	Categories string // optional YAML file overriding the expense categories
	Addr       string // listen address of the http server
	Verbose    bool
	TestingNow string // when set, the date the ledger believes it is
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	backend := strings.ToLower(getEnvOrDefault(EnvBackend, BackendBolt))
	cfg := &Config{
		Store:      os.Getenv(EnvStore),
		Backend:    backend,
		Currency:   strings.ToUpper(getEnvOrDefault(EnvCurrency, "INR")),
		Categories: os.Getenv(EnvCategories),
		Addr:       getEnvOrDefault(EnvAddr, "localhost:8080"),
		Verbose:    os.Getenv(EnvVerbose) == "true",
		TestingNow: os.Getenv(EnvTestingNow),
	}
	if cfg.Store == "" {
		cfg.Store = DefaultStore(backend)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultStore returns the default ledger path for backend.
func DefaultStore(backend string) string {
	switch backend {
	case BackendSQLite:
		return filepath.Join(".fin", "ledger.sqlite")
	case BackendFile:
		return filepath.Join(".fin", "ledger.json")
	default:
		return filepath.Join(".fin", "ledger.db")
	}
}

// Validate checks the configuration values.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBolt, BackendSQLite, BackendFile:
	default:
		return fmt.Errorf("invalid %s %q, want %s, %s or %s", EnvBackend, c.Backend, BackendBolt, BackendSQLite, BackendFile)
	}
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid %s %q, want an ISO 4217 code like INR", EnvCurrency, c.Currency)
	}
	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

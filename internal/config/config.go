// Package config loads server configuration from the environment.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all settings read at startup.
type Config struct {
	Port      int           `env:"TIPSPLIT_PORT" envDefault:"8080"`
	DBPath    string        `env:"TIPSPLIT_DB_PATH" envDefault:"./data/tipsplit.db"`
	JWTSecret string        `env:"TIPSPLIT_JWT_SECRET,required"`
	TokenTTL  time.Duration `env:"TIPSPLIT_TOKEN_TTL" envDefault:"24h"`

	// ServiceAccount is the raw service-account JSON payload used for
	// privileged store access. Empty means ambient credentials.
	ServiceAccount string `env:"TIPSPLIT_SERVICE_ACCOUNT"`

	// OTelEndpoint enables trace export when set.
	OTelEndpoint string `env:"TIPSPLIT_OTEL_ENDPOINT"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// Load parses Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg); err != nil {
		return Config{}, err
	}
	if len(cfg.JWTSecret) < 16 {
		return Config{}, fmt.Errorf("TIPSPLIT_JWT_SECRET must be at least 16 characters")
	}
	return cfg, nil
}

// ParseEnv loads configuration from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Exitf writes a formatted error message to stderr and exits with code 1.
func Exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

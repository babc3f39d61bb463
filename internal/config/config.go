// Package config provides application configuration management.
// Configuration is loaded from environment variables, with an optional
// local .env file for development.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	// Application settings
	AppEnv string `env:"ENVIRONMENT" envDefault:"development"`
	Port   int    `env:"PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// Store accessor timeouts
	StoreConnectTimeout time.Duration `env:"STORE_CONNECT_TIMEOUT" envDefault:"5s"`
	StoreOpTimeout      time.Duration `env:"STORE_OP_TIMEOUT" envDefault:"45s"`

	// Cache (Redis). Optional; the spot cache is disabled when empty.
	RedisURL string `env:"REDIS_URL" envDefault:""`

	// Sessions
	JWTSecret     string        `env:"JWT_SECRET,required"`
	SessionMaxAge time.Duration `env:"SESSION_MAX_AGE" envDefault:"720h"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Rate limiting for credential endpoints, requests per minute per IP
	AuthRateLimit int `env:"AUTH_RATE_LIMIT" envDefault:"20"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Load parses environment variables and returns a Config.
// Returns an error if required variables are missing.
func Load() (*Config, error) {
	// Best effort; the .env file is absent outside development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

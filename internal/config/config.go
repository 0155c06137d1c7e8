// Package config loads runtime settings from the environment.
package config

import (
	"errors"
	"os"
	"strings"
	"time"
)

// devTokenSecret is only acceptable outside production.
const devTokenSecret = "dev-secret-change-me"

type Config struct {
	Port string
	Env  string

	// DatabaseURL selects the storage backend: a Postgres DSN when set,
	// the in-memory store when empty.
	DatabaseURL string

	TokenSecret string
	TokenTTL    time.Duration

	CORSAllowedOrigins []string
}

// Load reads configuration from environment variables, applying
// development defaults.
func Load() (*Config, error) {
	ttl, err := time.ParseDuration(getEnv("TOKEN_TTL", "168h"))
	if err != nil {
		return nil, errors.New("config: TOKEN_TTL must be a valid duration")
	}

	cfg := &Config{
		Port:               getEnv("PORT", "5000"),
		Env:                getEnv("ENV", "development"),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		TokenSecret:        getEnv("TOKEN_SECRET", devTokenSecret),
		TokenTTL:           ttl,
		CORSAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	if cfg.Production() && cfg.TokenSecret == devTokenSecret {
		return nil, errors.New("config: TOKEN_SECRET is required in production")
	}

	return cfg, nil
}

func (c *Config) Production() bool {
	return c.Env == "production"
}

// UsingDevSecret reports whether the fallback token secret is in effect.
func (c *Config) UsingDevSecret() bool {
	return c.TokenSecret == devTokenSecret
}

func getEnv(key, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

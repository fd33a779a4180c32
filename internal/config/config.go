// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath     string `env:"APECK_DB_PATH" envDefault:"./data/apeck.db"`
	ServerHost string `env:"APECK_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"APECK_SERVER_PORT" envDefault:"8080"`
	Env        string `env:"APECK_ENV" envDefault:"development"`
	LogLevel   string `env:"APECK_LOG_LEVEL" envDefault:"info"`
	UploadsDir string `env:"APECK_UPLOADS_DIR" envDefault:"./uploads"`

	// PublicBaseURL is the externally visible origin of this API,
	// used when turning stored relative media paths into absolute URLs.
	PublicBaseURL string `env:"APECK_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// AllowedOrigins lists front-end origins permitted by CORS.
	AllowedOrigins []string `env:"APECK_ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:5173"`

	// Cache configuration
	RedisURL     string `env:"APECK_REDIS_URL"`                         // Optional Redis URL for distributed caching
	CachePrefix  string `env:"APECK_CACHE_PREFIX" envDefault:"apeck:"`  // Redis key prefix
	CacheTTL     int    `env:"APECK_CACHE_TTL" envDefault:"300"`        // Default cache TTL in seconds
	CacheMaxSize int    `env:"APECK_CACHE_MAX_SIZE" envDefault:"10000"` // Max memory cache entries

	// Auth configuration
	SessionTTLHours int `env:"APECK_SESSION_TTL_HOURS" envDefault:"168"` // Refresh-session lifetime
	ResetTTLMinutes int `env:"APECK_RESET_TTL_MINUTES" envDefault:"30"`  // Password-reset code lifetime

	// Rate limiting for public API endpoints
	RateLimitRPS   float64 `env:"APECK_RATE_LIMIT_RPS" envDefault:"20"`
	RateLimitBurst int     `env:"APECK_RATE_LIMIT_BURST" envDefault:"40"`

	// Seeding configuration
	DoSeed bool `env:"APECK_DO_SEED" envDefault:"false"` // Enable database seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	u, err := url.Parse(cfg.PublicBaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("APECK_PUBLIC_BASE_URL must be an absolute URL, got %q", cfg.PublicBaseURL)
	}
	cfg.PublicBaseURL = strings.TrimRight(cfg.PublicBaseURL, "/")

	if cfg.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("APECK_RATE_LIMIT_RPS must be positive, got %v", cfg.RateLimitRPS)
	}
	if cfg.RateLimitBurst < 1 {
		return nil, fmt.Errorf("APECK_RATE_LIMIT_BURST must be at least 1, got %d", cfg.RateLimitBurst)
	}
	if cfg.SessionTTLHours < 1 {
		return nil, fmt.Errorf("APECK_SESSION_TTL_HOURS must be at least 1, got %d", cfg.SessionTTLHours)
	}

	return cfg, nil
}

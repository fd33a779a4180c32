// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"log/slog"
	"time"
)

// Options selects and configures the cache backend.
type Options struct {
	// RedisURL, when set, selects the Redis backend.
	RedisURL string
	// Prefix is the Redis key prefix.
	Prefix string
	// TTL is the default entry lifetime.
	TTL time.Duration
	// MaxSize bounds the memory cache entry count.
	MaxSize int
}

// NewFromOptions returns a Redis cache when a URL is configured and
// Redis is reachable, falling back to the in-memory cache otherwise.
func NewFromOptions(opts Options, logger *slog.Logger) Cacher {
	if opts.RedisURL != "" {
		c, err := NewRedisCacheFromURL(opts.RedisURL, opts.Prefix, opts.TTL)
		if err == nil {
			logger.Info("using redis cache", "prefix", opts.Prefix)
			return c
		}
		logger.Warn("redis cache unavailable, falling back to memory", "error", err)
	}

	return NewMemoryCache(MemoryCacheOptions{
		DefaultTTL:      opts.TTL,
		MaxSize:         opts.MaxSize,
		CleanupInterval: time.Minute,
	})
}

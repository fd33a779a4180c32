// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestMemoryCacheSetGet(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, err := c.Get(ctx, "key")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if string(got) != "value" {
		t.Errorf("Get = %q, want %q", got, "value")
	}
}

func TestMemoryCacheMiss(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()

	_, err := c.Get(context.Background(), "missing")
	if !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss, got %v", err)
	}
}

func TestMemoryCacheExpiry(t *testing.T) {
	c := NewMemoryCache(MemoryCacheOptions{DefaultTTL: time.Minute})
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	if err := c.Set(ctx, "key", []byte("value"), time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := c.Get(ctx, "key"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected ErrCacheMiss after expiry, got %v", err)
	}
}

func TestMemoryCacheDelete(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("value"), 0)
	if err := c.Delete(ctx, "key"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if has, _ := c.Has(ctx, "key"); has {
		t.Error("key still present after Delete")
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "page:home", []byte("a"), 0)
	_ = c.Set(ctx, "page:about", []byte("b"), 0)
	_ = c.Set(ctx, "news:latest", []byte("c"), 0)

	if err := c.DeleteByPrefix(ctx, "page:"); err != nil {
		t.Fatalf("DeleteByPrefix: %v", err)
	}

	if has, _ := c.Has(ctx, "page:home"); has {
		t.Error("page:home survived prefix delete")
	}
	if has, _ := c.Has(ctx, "news:latest"); !has {
		t.Error("news:latest removed by unrelated prefix delete")
	}
}

func TestMemoryCacheClosed(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	_ = c.Close()

	if err := c.Set(context.Background(), "key", []byte("v"), 0); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	if _, err := c.Get(context.Background(), "key"); !errors.Is(err, ErrCacheClosed) {
		t.Errorf("expected ErrCacheClosed, got %v", err)
	}
	// Closing twice is safe
	if err := c.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMemoryCacheStats(t *testing.T) {
	c := NewSimpleMemoryCache(time.Minute)
	defer func() { _ = c.Close() }()
	ctx := context.Background()

	_ = c.Set(ctx, "key", []byte("value"), 0)
	_, _ = c.Get(ctx, "key")
	_, _ = c.Get(ctx, "missing")

	stats := c.Stats()
	if stats.Hits != 1 || stats.Misses != 1 || stats.Sets != 1 {
		t.Errorf("stats = %+v, want 1 hit, 1 miss, 1 set", stats)
	}
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/testutil"
)

func createNewsPost(t *testing.T, q *store.Queries, slug, status string, publishedAt sql.NullTime) store.NewsPost {
	t.Helper()
	now := time.Now()
	post, err := q.CreateNewsPost(context.Background(), store.CreateNewsPostParams{
		ID:          uuid.NewString(),
		Slug:        slug,
		Title:       slug,
		Status:      status,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("CreateNewsPost(%q): %v", slug, err)
	}
	return post
}

func TestNormalizeSlug(t *testing.T) {
	svc := NewNewsService(nil)

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain title", "Annual Clergy Convention 2026", "annual-clergy-convention-2026"},
		{"already a slug", "annual-convention", "annual-convention"},
		{"empty falls back", "", "news"},
		{"symbols only falls back", "!!!", "news"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := svc.NormalizeSlug(tt.input); got != tt.expected {
				t.Errorf("NormalizeSlug(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestEnsureUniqueSlug(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	svc := NewNewsService(q)

	createNewsPost(t, q, "convention", "published", sql.NullTime{})
	createNewsPost(t, q, "convention-2", "published", sql.NullTime{})
	existing := createNewsPost(t, q, "retreat", "draft", sql.NullTime{})

	got, err := svc.EnsureUniqueSlug(ctx, "convention", "")
	if err != nil {
		t.Fatalf("EnsureUniqueSlug: %v", err)
	}
	if got != "convention-3" {
		t.Errorf("got %q, want convention-3", got)
	}

	got, err = svc.EnsureUniqueSlug(ctx, "fresh", "")
	if err != nil {
		t.Fatalf("EnsureUniqueSlug: %v", err)
	}
	if got != "fresh" {
		t.Errorf("got %q, want fresh", got)
	}

	// Updating a post keeps its own slug
	got, err = svc.EnsureUniqueSlug(ctx, "retreat", existing.ID)
	if err != nil {
		t.Fatalf("EnsureUniqueSlug: %v", err)
	}
	if got != "retreat" {
		t.Errorf("got %q, want retreat", got)
	}
}

func TestDeterminePublishedAt(t *testing.T) {
	svc := NewNewsService(nil)
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	later := now.Add(48 * time.Hour)

	tests := []struct {
		name     string
		status   string
		provided *time.Time
		want     sql.NullTime
	}{
		{"published defaults to now", "published", nil, sql.NullTime{Time: now, Valid: true}},
		{"published keeps provided", "published", &later, sql.NullTime{Time: later, Valid: true}},
		{"scheduled keeps provided", "scheduled", &later, sql.NullTime{Time: later, Valid: true}},
		{"scheduled without time", "scheduled", nil, sql.NullTime{}},
		{"draft has none", "draft", &later, sql.NullTime{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := svc.DeterminePublishedAt(tt.status, tt.provided, now)
			if got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestRenderBody(t *testing.T) {
	svc := NewNewsService(nil)

	html, err := svc.RenderBody("# Heading\n\nA **bold** word and a <script>alert(1)</script> tag.")
	if err != nil {
		t.Fatalf("RenderBody: %v", err)
	}
	if !strings.Contains(html, "<strong>bold</strong>") {
		t.Errorf("markdown not rendered: %q", html)
	}
	if strings.Contains(html, "<script>") {
		t.Errorf("script tag survived sanitization: %q", html)
	}
}

func TestEstimateReadingTime(t *testing.T) {
	svc := NewNewsService(nil)

	tests := []struct {
		name     string
		words    int
		expected string
	}{
		{"empty body", 0, "1 min read"},
		{"short body", 50, "1 min read"},
		{"exactly one page", 200, "1 min read"},
		{"just over one page", 201, "2 min read"},
		{"long body", 1000, "5 min read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.TrimSpace(strings.Repeat("word ", tt.words))
			if got := svc.EstimateReadingTime(body); got != tt.expected {
				t.Errorf("EstimateReadingTime(%d words) = %q, want %q", tt.words, got, tt.expected)
			}
		})
	}
}

func TestPublishDue(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	svc := NewNewsService(q)
	now := time.Now()

	due := createNewsPost(t, q, "due", "scheduled", sql.NullTime{Time: now.Add(-time.Minute), Valid: true})
	notDue := createNewsPost(t, q, "not-due", "scheduled", sql.NullTime{Time: now.Add(time.Hour), Valid: true})

	published, err := svc.PublishDue(ctx, now)
	if err != nil {
		t.Fatalf("PublishDue: %v", err)
	}
	if published != 1 {
		t.Errorf("published = %d, want 1", published)
	}

	post, err := q.GetNewsPostByID(ctx, due.ID)
	if err != nil {
		t.Fatalf("GetNewsPostByID: %v", err)
	}
	if post.Status != "published" {
		t.Errorf("due post status = %q, want published", post.Status)
	}

	post, err = q.GetNewsPostByID(ctx, notDue.ID)
	if err != nil {
		t.Fatalf("GetNewsPostByID: %v", err)
	}
	if post.Status != "scheduled" {
		t.Errorf("future post status = %q, want scheduled", post.Status)
	}
}

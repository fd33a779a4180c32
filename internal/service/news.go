// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service holds the content business logic shared by handlers
// and the scheduler.
package service

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// wordsPerMinute is the reading speed used for reading-time estimates.
const wordsPerMinute = 200

// NewsService implements news post slug, scheduling and rendering rules.
type NewsService struct {
	queries   *store.Queries
	markdown  goldmark.Markdown
	sanitizer *bluemonday.Policy
}

// NewNewsService creates a news service over the given queries.
func NewNewsService(queries *store.Queries) *NewsService {
	return &NewsService{
		queries: queries,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		sanitizer: bluemonday.UGCPolicy(),
	}
}

// NormalizeSlug derives a slug from the given title or explicit slug.
// Falls back to "news" when nothing usable remains.
func (s *NewsService) NormalizeSlug(input string) string {
	slug := util.Slugify(input)
	if slug == "" {
		return "news"
	}
	return slug
}

// EnsureUniqueSlug appends a numeric suffix until the slug is free.
// When updating, excludeID skips the post being updated.
func (s *NewsService) EnsureUniqueSlug(ctx context.Context, base, excludeID string) (string, error) {
	candidate := base
	for counter := 2; ; counter++ {
		existing, err := s.queries.GetNewsPostBySlug(ctx, candidate)
		if err == sql.ErrNoRows {
			return candidate, nil
		}
		if err != nil {
			return "", fmt.Errorf("checking slug %q: %w", candidate, err)
		}
		if existing.ID == excludeID {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, counter)
	}
}

// DeterminePublishedAt resolves the publication time for a post:
// published posts default to now, scheduled posts keep the provided
// time, drafts have none.
func (s *NewsService) DeterminePublishedAt(status string, provided *time.Time, now time.Time) sql.NullTime {
	switch status {
	case model.StatusPublished:
		if provided != nil {
			return sql.NullTime{Time: *provided, Valid: true}
		}
		return sql.NullTime{Time: now, Valid: true}
	case model.StatusScheduled:
		if provided != nil {
			return sql.NullTime{Time: *provided, Valid: true}
		}
		return sql.NullTime{}
	default:
		return sql.NullTime{}
	}
}

// RenderBody converts a markdown body into sanitized HTML.
func (s *NewsService) RenderBody(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return string(s.sanitizer.SanitizeBytes(buf.Bytes())), nil
}

// EstimateReadingTime returns a human-readable reading time for a body.
func (s *NewsService) EstimateReadingTime(body string) string {
	words := len(strings.Fields(body))
	minutes := (words + wordsPerMinute - 1) / wordsPerMinute
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// PublishDue promotes scheduled posts whose publication time has
// arrived. Returns the number of posts published.
func (s *NewsService) PublishDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.queries.ListScheduledNewsPostsDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("listing due posts: %w", err)
	}

	published := 0
	for _, post := range due {
		if err := s.queries.PublishScheduledNewsPost(ctx, post.ID, now); err != nil {
			return published, fmt.Errorf("publishing post %q: %w", post.Slug, err)
		}
		published++
	}
	return published, nil
}

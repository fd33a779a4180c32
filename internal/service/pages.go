// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"fmt"
	"time"

	"github.com/apeck-ke/apeck-cms/internal/store"
)

// PagesService resolves published page content and manages the trash.
type PagesService struct {
	queries *store.Queries
}

// NewPagesService creates a pages service over the given queries.
func NewPagesService(queries *store.Queries) *PagesService {
	return &PagesService{queries: queries}
}

// ResolvedPage is a published page with its reader-visible sections in
// display order.
type ResolvedPage struct {
	Page     store.Page
	Sections []store.PageSection
}

// Resolve returns the published page for a slug with its published
// sections. A page without published sections resolves to an empty
// section list; an unknown, draft or trashed slug returns sql.ErrNoRows.
func (s *PagesService) Resolve(ctx context.Context, slug string) (ResolvedPage, error) {
	page, err := s.queries.GetPublishedPageBySlug(ctx, slug)
	if err != nil {
		return ResolvedPage{}, err
	}

	sections, err := s.queries.ListPublishedSectionsForPage(ctx, page.ID)
	if err != nil {
		return ResolvedPage{}, fmt.Errorf("loading sections for %q: %w", slug, err)
	}

	return ResolvedPage{Page: page, Sections: sections}, nil
}

// Trash soft-deletes a page together with its sections.
func (s *PagesService) Trash(ctx context.Context, pageID string, now time.Time) error {
	return s.queries.SoftDeletePage(ctx, pageID, now)
}

// Restore brings a trashed page back.
func (s *PagesService) Restore(ctx context.Context, pageID string, now time.Time) error {
	return s.queries.RestorePage(ctx, pageID, now)
}

// PurgeTrashedOlderThan permanently removes pages trashed more than the
// given number of days ago. Returns the number of pages purged.
func (s *PagesService) PurgeTrashedOlderThan(ctx context.Context, days int, now time.Time) (int64, error) {
	if days < 1 {
		days = 1
	}
	cutoff := now.AddDate(0, 0, -days)
	return s.queries.PurgeTrashedPagesBefore(ctx, cutoff)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/testutil"
)

func createPage(t *testing.T, q *store.Queries, slug, status string) store.Page {
	t.Helper()
	now := time.Now()
	page, err := q.CreatePage(context.Background(), store.CreatePageParams{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     "Test " + slug,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePage(%q): %v", slug, err)
	}
	return page
}

func createSection(t *testing.T, q *store.Queries, pageID, key string, order int64, status string) {
	t.Helper()
	now := time.Now()
	_, err := q.UpsertPageSection(context.Background(), store.UpsertPageSectionParams{
		ID:           uuid.NewString(),
		PageID:       pageID,
		Key:          key,
		DisplayOrder: order,
		Status:       status,
		Content:      "{}",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("UpsertPageSection(%q): %v", key, err)
	}
}

func TestResolve(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	svc := NewPagesService(q)

	page := createPage(t, q, "home", "published")
	createSection(t, q, page.ID, "cta", 1, "published")
	createSection(t, q, page.ID, "hero", 0, "published")
	createSection(t, q, page.ID, "hidden", 2, "draft")

	resolved, err := svc.Resolve(ctx, "home")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if resolved.Page.ID != page.ID {
		t.Errorf("resolved wrong page %q", resolved.Page.ID)
	}
	if len(resolved.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(resolved.Sections))
	}
	if resolved.Sections[0].Key != "hero" || resolved.Sections[1].Key != "cta" {
		t.Errorf("section order = %q, %q", resolved.Sections[0].Key, resolved.Sections[1].Key)
	}
}

func TestResolveEmptySections(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	svc := NewPagesService(q)
	createPage(t, q, "bare", "published")

	resolved, err := svc.Resolve(context.Background(), "bare")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(resolved.Sections) != 0 {
		t.Errorf("got %d sections, want 0", len(resolved.Sections))
	}
}

func TestResolveNotFound(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	q := store.New(db)
	svc := NewPagesService(q)
	createPage(t, q, "drafted", "draft")

	for _, slug := range []string{"drafted", "missing"} {
		if _, err := svc.Resolve(context.Background(), slug); !errors.Is(err, sql.ErrNoRows) {
			t.Errorf("Resolve(%q) err = %v, want ErrNoRows", slug, err)
		}
	}
}

func TestTrashAndRestore(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	svc := NewPagesService(q)
	page := createPage(t, q, "home", "published")
	createSection(t, q, page.ID, "hero", 0, "published")

	if err := svc.Trash(ctx, page.ID, time.Now()); err != nil {
		t.Fatalf("Trash: %v", err)
	}
	if _, err := svc.Resolve(ctx, "home"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("trashed page still resolves, err = %v", err)
	}

	if err := svc.Restore(ctx, page.ID, time.Now()); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	resolved, err := svc.Resolve(ctx, "home")
	if err != nil {
		t.Fatalf("Resolve after restore: %v", err)
	}
	if len(resolved.Sections) != 1 {
		t.Errorf("restored page has %d sections, want 1", len(resolved.Sections))
	}
}

func TestPurgeTrashedOlderThan(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	q := store.New(db)
	svc := NewPagesService(q)
	now := time.Now()

	old := createPage(t, q, "old", "published")
	recent := createPage(t, q, "recent", "published")
	if err := q.SoftDeletePage(ctx, old.ID, now.AddDate(0, 0, -45)); err != nil {
		t.Fatalf("SoftDeletePage(old): %v", err)
	}
	if err := q.SoftDeletePage(ctx, recent.ID, now.AddDate(0, 0, -5)); err != nil {
		t.Fatalf("SoftDeletePage(recent): %v", err)
	}

	purged, err := svc.PurgeTrashedOlderThan(ctx, 30, now)
	if err != nil {
		t.Fatalf("PurgeTrashedOlderThan: %v", err)
	}
	if purged != 1 {
		t.Errorf("purged = %d, want 1", purged)
	}

	trashed, err := q.ListTrashedPages(ctx)
	if err != nil {
		t.Fatalf("ListTrashedPages: %v", err)
	}
	if len(trashed) != 1 || trashed[0].ID != recent.ID {
		t.Errorf("trash after purge = %+v", trashed)
	}
}

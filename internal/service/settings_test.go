// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"testing"
	"time"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/testutil"
)

func TestTrashRetentionDaysDefault(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	svc := NewSettingsService(store.New(db))
	days, err := svc.TrashRetentionDays(context.Background())
	if err != nil {
		t.Fatalf("TrashRetentionDays: %v", err)
	}
	if days != model.DefaultTrashRetentionDays {
		t.Errorf("got %d, want default %d", days, model.DefaultTrashRetentionDays)
	}
}

func TestTrashRetentionDaysRoundTrip(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewSettingsService(store.New(db))

	if err := svc.SetTrashRetentionDays(ctx, 14, time.Now()); err != nil {
		t.Fatalf("SetTrashRetentionDays: %v", err)
	}
	days, err := svc.TrashRetentionDays(ctx)
	if err != nil {
		t.Fatalf("TrashRetentionDays: %v", err)
	}
	if days != 14 {
		t.Errorf("got %d, want 14", days)
	}

	// Updating overwrites rather than duplicating the setting
	if err := svc.SetTrashRetentionDays(ctx, 60, time.Now()); err != nil {
		t.Fatalf("SetTrashRetentionDays: %v", err)
	}
	days, err = svc.TrashRetentionDays(ctx)
	if err != nil {
		t.Fatalf("TrashRetentionDays: %v", err)
	}
	if days != 60 {
		t.Errorf("got %d, want 60", days)
	}
}

func TestSetTrashRetentionDaysClamps(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()

	ctx := context.Background()
	svc := NewSettingsService(store.New(db))

	if err := svc.SetTrashRetentionDays(ctx, 0, time.Now()); err != nil {
		t.Fatalf("SetTrashRetentionDays: %v", err)
	}
	days, err := svc.TrashRetentionDays(ctx)
	if err != nil {
		t.Fatalf("TrashRetentionDays: %v", err)
	}
	if days != 1 {
		t.Errorf("got %d, want clamp to 1", days)
	}
}

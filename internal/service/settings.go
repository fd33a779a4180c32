// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

// SettingsService reads and writes content settings.
type SettingsService struct {
	queries *store.Queries
}

// NewSettingsService creates a settings service over the given queries.
func NewSettingsService(queries *store.Queries) *SettingsService {
	return &SettingsService{queries: queries}
}

// TrashRetentionDays returns the configured retention period for
// trashed pages. Missing or unparsable values fall back to the default;
// values below one day are clamped to one.
func (s *SettingsService) TrashRetentionDays(ctx context.Context) (int, error) {
	setting, err := s.queries.GetContentSetting(ctx, model.SettingTrashRetentionDays)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultTrashRetentionDays, nil
	}
	if err != nil {
		return 0, fmt.Errorf("reading trash retention: %w", err)
	}

	if !setting.Value.Valid {
		return model.DefaultTrashRetentionDays, nil
	}
	days, err := strconv.Atoi(setting.Value.String)
	if err != nil {
		return model.DefaultTrashRetentionDays, nil
	}
	if days < 1 {
		days = 1
	}
	return days, nil
}

// SetTrashRetentionDays stores the retention period, clamped to at
// least one day.
func (s *SettingsService) SetTrashRetentionDays(ctx context.Context, days int, now time.Time) error {
	if days < 1 {
		days = 1
	}
	_, err := s.queries.UpsertContentSetting(ctx, store.UpsertContentSettingParams{
		ID:        uuid.NewString(),
		Key:       model.SettingTrashRetentionDays,
		Value:     sql.NullString{String: strconv.Itoa(days), Valid: true},
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return fmt.Errorf("storing trash retention: %w", err)
	}
	return nil
}

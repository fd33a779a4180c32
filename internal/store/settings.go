// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const settingColumns = `id, key, value, created_at, updated_at`

func scanSetting(row interface{ Scan(...interface{}) error }) (ContentSetting, error) {
	var s ContentSetting
	err := row.Scan(&s.ID, &s.Key, &s.Value, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

func (q *Queries) GetContentSetting(ctx context.Context, key string) (ContentSetting, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+settingColumns+` FROM content_settings WHERE key = ?`, key)
	return scanSetting(row)
}

type UpsertContentSettingParams struct {
	ID        string
	Key       string
	Value     sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) UpsertContentSetting(ctx context.Context, arg UpsertContentSettingParams) (ContentSetting, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO content_settings (id, key, value, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
		RETURNING `+settingColumns,
		arg.ID, arg.Key, arg.Value, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanSetting(row)
}

func (q *Queries) ListContentSettings(ctx context.Context) ([]ContentSetting, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+settingColumns+` FROM content_settings ORDER BY key ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []ContentSetting
	for rows.Next() {
		s, err := scanSetting(rows)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, rows.Err()
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const mediaColumns = `id, file_name, url, alt_text, mime_type, width, height,
	category, created_by, created_at, updated_at`

func scanMediaAsset(row interface{ Scan(...interface{}) error }) (MediaAsset, error) {
	var m MediaAsset
	err := row.Scan(
		&m.ID,
		&m.FileName,
		&m.URL,
		&m.AltText,
		&m.MimeType,
		&m.Width,
		&m.Height,
		&m.Category,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

type CreateMediaAssetParams struct {
	ID        string
	FileName  string
	URL       string
	AltText   sql.NullString
	MimeType  sql.NullString
	Width     sql.NullInt64
	Height    sql.NullInt64
	Category  sql.NullString
	CreatedBy sql.NullString
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateMediaAsset(ctx context.Context, arg CreateMediaAssetParams) (MediaAsset, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO media_assets (id, file_name, url, alt_text, mime_type, width, height, category, created_by, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+mediaColumns,
		arg.ID, arg.FileName, arg.URL, arg.AltText, arg.MimeType, arg.Width,
		arg.Height, arg.Category, arg.CreatedBy, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanMediaAsset(row)
}

func (q *Queries) GetMediaAssetByID(ctx context.Context, id string) (MediaAsset, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+mediaColumns+` FROM media_assets WHERE id = ?`, id)
	return scanMediaAsset(row)
}

// ListMediaAssets returns assets newest first, optionally filtered by category.
func (q *Queries) ListMediaAssets(ctx context.Context, category sql.NullString) ([]MediaAsset, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if category.Valid {
		rows, err = q.db.QueryContext(ctx,
			`SELECT `+mediaColumns+` FROM media_assets WHERE category = ? ORDER BY created_at DESC`,
			category.String)
	} else {
		rows, err = q.db.QueryContext(ctx,
			`SELECT `+mediaColumns+` FROM media_assets ORDER BY created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var assets []MediaAsset
	for rows.Next() {
		m, err := scanMediaAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, m)
	}
	return assets, rows.Err()
}

type UpdateMediaAssetParams struct {
	AltText   sql.NullString
	Category  sql.NullString
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateMediaAsset(ctx context.Context, arg UpdateMediaAssetParams) (MediaAsset, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE media_assets SET alt_text = ?, category = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+mediaColumns,
		arg.AltText, arg.Category, arg.UpdatedAt, arg.ID,
	)
	return scanMediaAsset(row)
}

func (q *Queries) DeleteMediaAsset(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM media_assets WHERE id = ?`, id)
	return err
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const sectionColumns = `id, page_id, key, display_order, status, content,
	deleted_at, created_at, updated_at`

func scanSection(row interface{ Scan(...interface{}) error }) (PageSection, error) {
	var s PageSection
	err := row.Scan(
		&s.ID,
		&s.PageID,
		&s.Key,
		&s.DisplayOrder,
		&s.Status,
		&s.Content,
		&s.DeletedAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

func (q *Queries) collectSections(rows *sql.Rows) ([]PageSection, error) {
	defer rows.Close()
	var sections []PageSection
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

type UpsertPageSectionParams struct {
	ID           string
	PageID       string
	Key          string
	DisplayOrder int64
	Status       string
	Content      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UpsertPageSection inserts a section or, when the (page_id, key) pair
// already exists, updates its content, order and status in place.
func (q *Queries) UpsertPageSection(ctx context.Context, arg UpsertPageSectionParams) (PageSection, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO page_sections (id, page_id, key, display_order, status, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (page_id, key) DO UPDATE SET
			display_order = excluded.display_order,
			status = excluded.status,
			content = excluded.content,
			deleted_at = NULL,
			updated_at = excluded.updated_at
		RETURNING `+sectionColumns,
		arg.ID, arg.PageID, arg.Key, arg.DisplayOrder, arg.Status, arg.Content,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanSection(row)
}

func (q *Queries) GetPageSection(ctx context.Context, pageID, key string) (PageSection, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+sectionColumns+` FROM page_sections WHERE page_id = ? AND key = ? AND deleted_at IS NULL`,
		pageID, key)
	return scanSection(row)
}

func (q *Queries) ListSectionsForPage(ctx context.Context, pageID string) ([]PageSection, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+sectionColumns+` FROM page_sections
		WHERE page_id = ? AND deleted_at IS NULL
		ORDER BY display_order ASC, rowid ASC`,
		pageID)
	if err != nil {
		return nil, err
	}
	return q.collectSections(rows)
}

// ListPublishedSectionsForPage returns the reader-visible sections of a
// page in display order. Equal display_order values keep insertion order.
func (q *Queries) ListPublishedSectionsForPage(ctx context.Context, pageID string) ([]PageSection, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+sectionColumns+` FROM page_sections
		WHERE page_id = ? AND status = 'published' AND deleted_at IS NULL
		ORDER BY display_order ASC, rowid ASC`,
		pageID)
	if err != nil {
		return nil, err
	}
	return q.collectSections(rows)
}

type UpdateSectionOrderParams struct {
	DisplayOrder int64
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateSectionOrder(ctx context.Context, arg UpdateSectionOrderParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE page_sections SET display_order = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		arg.DisplayOrder, arg.UpdatedAt, arg.ID,
	)
	return err
}

type UpdateSectionStatusParams struct {
	Status    string
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateSectionStatus(ctx context.Context, arg UpdateSectionStatusParams) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE page_sections SET status = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		arg.Status, arg.UpdatedAt, arg.ID,
	)
	return err
}

func (q *Queries) DeletePageSection(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM page_sections WHERE id = ?`, id)
	return err
}

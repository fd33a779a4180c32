// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const pageColumns = `id, slug, title, excerpt, status, seo_title, seo_description,
	seo_metadata, featured_media_id, deleted_at, created_at, updated_at`

func scanPage(row interface{ Scan(...interface{}) error }) (Page, error) {
	var p Page
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Title,
		&p.Excerpt,
		&p.Status,
		&p.SeoTitle,
		&p.SeoDescription,
		&p.SeoMetadata,
		&p.FeaturedMediaID,
		&p.DeletedAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) collectPages(rows *sql.Rows) ([]Page, error) {
	defer rows.Close()
	var pages []Page
	for rows.Next() {
		p, err := scanPage(rows)
		if err != nil {
			return nil, err
		}
		pages = append(pages, p)
	}
	return pages, rows.Err()
}

type CreatePageParams struct {
	ID              string
	Slug            string
	Title           string
	Excerpt         sql.NullString
	Status          string
	SeoTitle        sql.NullString
	SeoDescription  sql.NullString
	SeoMetadata     sql.NullString
	FeaturedMediaID sql.NullString
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (q *Queries) CreatePage(ctx context.Context, arg CreatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO pages (id, slug, title, excerpt, status, seo_title, seo_description, seo_metadata, featured_media_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+pageColumns,
		arg.ID, arg.Slug, arg.Title, arg.Excerpt, arg.Status, arg.SeoTitle,
		arg.SeoDescription, arg.SeoMetadata, arg.FeaturedMediaID, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanPage(row)
}

func (q *Queries) GetPageByID(ctx context.Context, id string) (Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE id = ? AND deleted_at IS NULL`, id)
	return scanPage(row)
}

func (q *Queries) GetPageBySlug(ctx context.Context, slug string) (Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND deleted_at IS NULL`, slug)
	return scanPage(row)
}

// GetPublishedPageBySlug returns a page only when it is published and
// not in the trash. Draft and trashed pages are invisible to readers.
func (q *Queries) GetPublishedPageBySlug(ctx context.Context, slug string) (Page, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE slug = ? AND status = 'published' AND deleted_at IS NULL`, slug)
	return scanPage(row)
}

func (q *Queries) ListPages(ctx context.Context) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE deleted_at IS NULL ORDER BY slug ASC`)
	if err != nil {
		return nil, err
	}
	return q.collectPages(rows)
}

func (q *Queries) ListTrashedPages(ctx context.Context) ([]Page, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+pageColumns+` FROM pages WHERE deleted_at IS NOT NULL ORDER BY deleted_at DESC`)
	if err != nil {
		return nil, err
	}
	return q.collectPages(rows)
}

type UpdatePageParams struct {
	Slug            string
	Title           string
	Excerpt         sql.NullString
	Status          string
	SeoTitle        sql.NullString
	SeoDescription  sql.NullString
	SeoMetadata     sql.NullString
	FeaturedMediaID sql.NullString
	UpdatedAt       time.Time
	ID              string
}

func (q *Queries) UpdatePage(ctx context.Context, arg UpdatePageParams) (Page, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE pages
		SET slug = ?, title = ?, excerpt = ?, status = ?, seo_title = ?,
			seo_description = ?, seo_metadata = ?, featured_media_id = ?, updated_at = ?
		WHERE id = ? AND deleted_at IS NULL
		RETURNING `+pageColumns,
		arg.Slug, arg.Title, arg.Excerpt, arg.Status, arg.SeoTitle,
		arg.SeoDescription, arg.SeoMetadata, arg.FeaturedMediaID, arg.UpdatedAt, arg.ID,
	)
	return scanPage(row)
}

// SoftDeletePage moves a page and its sections to the trash.
func (q *Queries) SoftDeletePage(ctx context.Context, id string, deletedAt time.Time) error {
	if _, err := q.db.ExecContext(ctx,
		`UPDATE pages SET deleted_at = ?, updated_at = ? WHERE id = ? AND deleted_at IS NULL`,
		deletedAt, deletedAt, id,
	); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx,
		`UPDATE page_sections SET deleted_at = ?, updated_at = ? WHERE page_id = ? AND deleted_at IS NULL`,
		deletedAt, deletedAt, id,
	)
	return err
}

// RestorePage brings a trashed page and its sections back.
func (q *Queries) RestorePage(ctx context.Context, id string, restoredAt time.Time) error {
	if _, err := q.db.ExecContext(ctx,
		`UPDATE pages SET deleted_at = NULL, updated_at = ? WHERE id = ? AND deleted_at IS NOT NULL`,
		restoredAt, id,
	); err != nil {
		return err
	}
	_, err := q.db.ExecContext(ctx,
		`UPDATE page_sections SET deleted_at = NULL, updated_at = ? WHERE page_id = ? AND deleted_at IS NOT NULL`,
		restoredAt, id,
	)
	return err
}

// PurgeTrashedPagesBefore permanently deletes pages trashed before the
// cutoff. Sections go with them via the page_id cascade.
func (q *Queries) PurgeTrashedPagesBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM pages WHERE deleted_at IS NOT NULL AND deleted_at < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (q *Queries) DeletePage(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM pages WHERE id = ?`, id)
	return err
}

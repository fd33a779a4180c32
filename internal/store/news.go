// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const newsColumns = `id, slug, title, excerpt, body, status, published_at,
	hero_media_id, author_id, hero_image_url, show_on_home, home_display_order,
	reading_time, created_at, updated_at`

func scanNewsPost(row interface{ Scan(...interface{}) error }) (NewsPost, error) {
	var n NewsPost
	err := row.Scan(
		&n.ID,
		&n.Slug,
		&n.Title,
		&n.Excerpt,
		&n.Body,
		&n.Status,
		&n.PublishedAt,
		&n.HeroMediaID,
		&n.AuthorID,
		&n.HeroImageURL,
		&n.ShowOnHome,
		&n.HomeDisplayOrder,
		&n.ReadingTime,
		&n.CreatedAt,
		&n.UpdatedAt,
	)
	return n, err
}

func (q *Queries) collectNewsPosts(rows *sql.Rows) ([]NewsPost, error) {
	defer rows.Close()
	var posts []NewsPost
	for rows.Next() {
		n, err := scanNewsPost(rows)
		if err != nil {
			return nil, err
		}
		posts = append(posts, n)
	}
	return posts, rows.Err()
}

type CreateNewsPostParams struct {
	ID               string
	Slug             string
	Title            string
	Excerpt          sql.NullString
	Body             sql.NullString
	Status           string
	PublishedAt      sql.NullTime
	HeroMediaID      sql.NullString
	AuthorID         sql.NullString
	HeroImageURL     sql.NullString
	ShowOnHome       bool
	HomeDisplayOrder int64
	ReadingTime      sql.NullString
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreateNewsPost(ctx context.Context, arg CreateNewsPostParams) (NewsPost, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO news_posts (id, slug, title, excerpt, body, status, published_at,
			hero_media_id, author_id, hero_image_url, show_on_home, home_display_order,
			reading_time, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+newsColumns,
		arg.ID, arg.Slug, arg.Title, arg.Excerpt, arg.Body, arg.Status, arg.PublishedAt,
		arg.HeroMediaID, arg.AuthorID, arg.HeroImageURL, arg.ShowOnHome, arg.HomeDisplayOrder,
		arg.ReadingTime, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanNewsPost(row)
}

func (q *Queries) GetNewsPostByID(ctx context.Context, id string) (NewsPost, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news_posts WHERE id = ?`, id)
	return scanNewsPost(row)
}

func (q *Queries) GetNewsPostBySlug(ctx context.Context, slug string) (NewsPost, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news_posts WHERE slug = ?`, slug)
	return scanNewsPost(row)
}

// GetPublishedNewsPostBySlug returns a post visible to readers: status
// published and publication time absent or already reached.
func (q *Queries) GetPublishedNewsPostBySlug(ctx context.Context, slug string, now time.Time) (NewsPost, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+newsColumns+` FROM news_posts
		WHERE slug = ? AND status = 'published' AND (published_at IS NULL OR published_at <= ?)`,
		slug, now)
	return scanNewsPost(row)
}

func (q *Queries) NewsSlugExists(ctx context.Context, slug string) (bool, error) {
	var n int64
	err := q.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM news_posts WHERE slug = ?`, slug).Scan(&n)
	return n > 0, err
}

type ListPublishedNewsPostsParams struct {
	Now   time.Time
	Limit int64
}

func (q *Queries) ListPublishedNewsPosts(ctx context.Context, arg ListPublishedNewsPostsParams) ([]NewsPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+newsColumns+` FROM news_posts
		WHERE status = 'published' AND (published_at IS NULL OR published_at <= ?)
		ORDER BY published_at DESC
		LIMIT ?`,
		arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return q.collectNewsPosts(rows)
}

// ListHomeNewsPosts returns the posts pinned to the home feed, ordered
// by their home position rather than publication time.
func (q *Queries) ListHomeNewsPosts(ctx context.Context, arg ListPublishedNewsPostsParams) ([]NewsPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+newsColumns+` FROM news_posts
		WHERE status = 'published' AND (published_at IS NULL OR published_at <= ?)
			AND show_on_home = 1
		ORDER BY home_display_order ASC, published_at DESC
		LIMIT ?`,
		arg.Now, arg.Limit)
	if err != nil {
		return nil, err
	}
	return q.collectNewsPosts(rows)
}

func (q *Queries) ListNewsPosts(ctx context.Context) ([]NewsPost, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+newsColumns+` FROM news_posts ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	return q.collectNewsPosts(rows)
}

type UpdateNewsPostParams struct {
	Slug             string
	Title            string
	Excerpt          sql.NullString
	Body             sql.NullString
	Status           string
	PublishedAt      sql.NullTime
	HeroMediaID      sql.NullString
	HeroImageURL     sql.NullString
	ShowOnHome       bool
	HomeDisplayOrder int64
	ReadingTime      sql.NullString
	UpdatedAt        time.Time
	ID               string
}

func (q *Queries) UpdateNewsPost(ctx context.Context, arg UpdateNewsPostParams) (NewsPost, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE news_posts
		SET slug = ?, title = ?, excerpt = ?, body = ?, status = ?, published_at = ?,
			hero_media_id = ?, hero_image_url = ?, show_on_home = ?, home_display_order = ?,
			reading_time = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+newsColumns,
		arg.Slug, arg.Title, arg.Excerpt, arg.Body, arg.Status, arg.PublishedAt,
		arg.HeroMediaID, arg.HeroImageURL, arg.ShowOnHome, arg.HomeDisplayOrder,
		arg.ReadingTime, arg.UpdatedAt, arg.ID,
	)
	return scanNewsPost(row)
}

// ListScheduledNewsPostsDue returns scheduled posts whose publication
// time has arrived.
func (q *Queries) ListScheduledNewsPostsDue(ctx context.Context, now time.Time) ([]NewsPost, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+newsColumns+` FROM news_posts
		WHERE status = 'scheduled' AND published_at IS NOT NULL AND published_at <= ?`,
		now)
	if err != nil {
		return nil, err
	}
	return q.collectNewsPosts(rows)
}

func (q *Queries) PublishScheduledNewsPost(ctx context.Context, id string, now time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE news_posts SET status = 'published', updated_at = ? WHERE id = ? AND status = 'scheduled'`,
		now, id,
	)
	return err
}

func (q *Queries) DeleteNewsPost(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM news_posts WHERE id = ?`, id)
	return err
}

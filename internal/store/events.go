// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const eventColumns = `id, title, slug, description, start_date, end_date, location,
	category, status, cover_media_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...interface{}) error }) (Event, error) {
	var e Event
	err := row.Scan(
		&e.ID,
		&e.Title,
		&e.Slug,
		&e.Description,
		&e.StartDate,
		&e.EndDate,
		&e.Location,
		&e.Category,
		&e.Status,
		&e.CoverMediaID,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

func (q *Queries) collectEvents(rows *sql.Rows) ([]Event, error) {
	defer rows.Close()
	var events []Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

type CreateEventParams struct {
	ID           string
	Title        string
	Slug         string
	Description  sql.NullString
	StartDate    time.Time
	EndDate      sql.NullTime
	Location     sql.NullString
	Category     sql.NullString
	Status       string
	CoverMediaID sql.NullString
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO events (id, title, slug, description, start_date, end_date, location,
			category, status, cover_media_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+eventColumns,
		arg.ID, arg.Title, arg.Slug, arg.Description, arg.StartDate, arg.EndDate,
		arg.Location, arg.Category, arg.Status, arg.CoverMediaID, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanEvent(row)
}

func (q *Queries) GetEventByID(ctx context.Context, id string) (Event, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	return scanEvent(row)
}

func (q *Queries) GetEventBySlug(ctx context.Context, slug string) (Event, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = ?`, slug)
	return scanEvent(row)
}

func (q *Queries) ListPublishedEvents(ctx context.Context) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+eventColumns+` FROM events
		WHERE status = 'published'
		ORDER BY start_date ASC`)
	if err != nil {
		return nil, err
	}
	return q.collectEvents(rows)
}

func (q *Queries) ListEvents(ctx context.Context) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+eventColumns+` FROM events ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	return q.collectEvents(rows)
}

type UpdateEventParams struct {
	Title        string
	Slug         string
	Description  sql.NullString
	StartDate    time.Time
	EndDate      sql.NullTime
	Location     sql.NullString
	Category     sql.NullString
	Status       string
	CoverMediaID sql.NullString
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateEvent(ctx context.Context, arg UpdateEventParams) (Event, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE events
		SET title = ?, slug = ?, description = ?, start_date = ?, end_date = ?,
			location = ?, category = ?, status = ?, cover_media_id = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+eventColumns,
		arg.Title, arg.Slug, arg.Description, arg.StartDate, arg.EndDate,
		arg.Location, arg.Category, arg.Status, arg.CoverMediaID, arg.UpdatedAt, arg.ID,
	)
	return scanEvent(row)
}

func (q *Queries) DeleteEvent(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	return err
}

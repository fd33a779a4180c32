// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const programColumns = `id, title, slug, summary, body, status, hero_media_id,
	metadata, created_at, updated_at`

func scanProgram(row interface{ Scan(...interface{}) error }) (Program, error) {
	var p Program
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Slug,
		&p.Summary,
		&p.Body,
		&p.Status,
		&p.HeroMediaID,
		&p.Metadata,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

func (q *Queries) collectPrograms(rows *sql.Rows) ([]Program, error) {
	defer rows.Close()
	var programs []Program
	for rows.Next() {
		p, err := scanProgram(rows)
		if err != nil {
			return nil, err
		}
		programs = append(programs, p)
	}
	return programs, rows.Err()
}

type CreateProgramParams struct {
	ID          string
	Title       string
	Slug        string
	Summary     sql.NullString
	Body        sql.NullString
	Status      string
	HeroMediaID sql.NullString
	Metadata    sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (q *Queries) CreateProgram(ctx context.Context, arg CreateProgramParams) (Program, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO programs (id, title, slug, summary, body, status, hero_media_id, metadata, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+programColumns,
		arg.ID, arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Status,
		arg.HeroMediaID, arg.Metadata, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanProgram(row)
}

func (q *Queries) GetProgramByID(ctx context.Context, id string) (Program, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+programColumns+` FROM programs WHERE id = ?`, id)
	return scanProgram(row)
}

func (q *Queries) GetPublishedProgramBySlug(ctx context.Context, slug string) (Program, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+programColumns+` FROM programs WHERE slug = ? AND status = 'published'`, slug)
	return scanProgram(row)
}

func (q *Queries) ListPublishedPrograms(ctx context.Context) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+programColumns+` FROM programs
		WHERE status = 'published'
		ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	return q.collectPrograms(rows)
}

func (q *Queries) ListPrograms(ctx context.Context) ([]Program, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+programColumns+` FROM programs ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	return q.collectPrograms(rows)
}

type UpdateProgramParams struct {
	Title       string
	Slug        string
	Summary     sql.NullString
	Body        sql.NullString
	Status      string
	HeroMediaID sql.NullString
	Metadata    sql.NullString
	UpdatedAt   time.Time
	ID          string
}

func (q *Queries) UpdateProgram(ctx context.Context, arg UpdateProgramParams) (Program, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE programs
		SET title = ?, slug = ?, summary = ?, body = ?, status = ?, hero_media_id = ?,
			metadata = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+programColumns,
		arg.Title, arg.Slug, arg.Summary, arg.Body, arg.Status, arg.HeroMediaID,
		arg.Metadata, arg.UpdatedAt, arg.ID,
	)
	return scanProgram(row)
}

func (q *Queries) DeleteProgram(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM programs WHERE id = ?`, id)
	return err
}

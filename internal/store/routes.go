// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const routeColumns = `id, slug, target, is_active, created_at, updated_at`

func scanRoute(row interface{ Scan(...interface{}) error }) (Route, error) {
	var r Route
	err := row.Scan(&r.ID, &r.Slug, &r.Target, &r.IsActive, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

type CreateRouteParams struct {
	ID        string
	Slug      string
	Target    string
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (q *Queries) CreateRoute(ctx context.Context, arg CreateRouteParams) (Route, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO routes (id, slug, target, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		RETURNING `+routeColumns,
		arg.ID, arg.Slug, arg.Target, arg.IsActive, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanRoute(row)
}

func (q *Queries) GetRouteBySlug(ctx context.Context, slug string) (Route, error) {
	row := q.db.QueryRowContext(ctx, `SELECT `+routeColumns+` FROM routes WHERE slug = ?`, slug)
	return scanRoute(row)
}

func (q *Queries) listRoutes(ctx context.Context, query string) ([]Route, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []Route
	for rows.Next() {
		r, err := scanRoute(rows)
		if err != nil {
			return nil, err
		}
		routes = append(routes, r)
	}
	return routes, rows.Err()
}

func (q *Queries) ListRoutes(ctx context.Context) ([]Route, error) {
	return q.listRoutes(ctx, `SELECT `+routeColumns+` FROM routes ORDER BY slug ASC`)
}

func (q *Queries) ListActiveRoutes(ctx context.Context) ([]Route, error) {
	return q.listRoutes(ctx, `SELECT `+routeColumns+` FROM routes WHERE is_active = 1 ORDER BY slug ASC`)
}

type UpdateRouteParams struct {
	Slug      string
	Target    string
	IsActive  bool
	UpdatedAt time.Time
	ID        string
}

func (q *Queries) UpdateRoute(ctx context.Context, arg UpdateRouteParams) (Route, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE routes SET slug = ?, target = ?, is_active = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+routeColumns,
		arg.Slug, arg.Target, arg.IsActive, arg.UpdatedAt, arg.ID,
	)
	return scanRoute(row)
}

func (q *Queries) DeleteRoute(ctx context.Context, id string) error {
	res, err := q.db.ExecContext(ctx, `DELETE FROM routes WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const planColumns = `id, name, slug, fee_amount, currency, description, benefits,
	requirements, status, created_at, updated_at`

func scanMembershipPlan(row interface{ Scan(...interface{}) error }) (MembershipPlan, error) {
	var p MembershipPlan
	err := row.Scan(
		&p.ID,
		&p.Name,
		&p.Slug,
		&p.FeeAmount,
		&p.Currency,
		&p.Description,
		&p.Benefits,
		&p.Requirements,
		&p.Status,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	return p, err
}

type CreateMembershipPlanParams struct {
	ID           string
	Name         string
	Slug         string
	FeeAmount    float64
	Currency     string
	Description  sql.NullString
	Benefits     sql.NullString
	Requirements sql.NullString
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateMembershipPlan(ctx context.Context, arg CreateMembershipPlanParams) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO membership_plans (id, name, slug, fee_amount, currency, description, benefits, requirements, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+planColumns,
		arg.ID, arg.Name, arg.Slug, arg.FeeAmount, arg.Currency, arg.Description,
		arg.Benefits, arg.Requirements, arg.Status, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanMembershipPlan(row)
}

func (q *Queries) GetMembershipPlanBySlug(ctx context.Context, slug string) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+planColumns+` FROM membership_plans WHERE slug = ?`, slug)
	return scanMembershipPlan(row)
}

func (q *Queries) listMembershipPlans(ctx context.Context, query string) ([]MembershipPlan, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []MembershipPlan
	for rows.Next() {
		p, err := scanMembershipPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, p)
	}
	return plans, rows.Err()
}

func (q *Queries) ListMembershipPlans(ctx context.Context) ([]MembershipPlan, error) {
	return q.listMembershipPlans(ctx,
		`SELECT `+planColumns+` FROM membership_plans ORDER BY fee_amount ASC`)
}

func (q *Queries) ListPublishedMembershipPlans(ctx context.Context) ([]MembershipPlan, error) {
	return q.listMembershipPlans(ctx,
		`SELECT `+planColumns+` FROM membership_plans WHERE status = 'published' ORDER BY fee_amount ASC`)
}

type UpdateMembershipPlanParams struct {
	Name         string
	Slug         string
	FeeAmount    float64
	Currency     string
	Description  sql.NullString
	Benefits     sql.NullString
	Requirements sql.NullString
	Status       string
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateMembershipPlan(ctx context.Context, arg UpdateMembershipPlanParams) (MembershipPlan, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE membership_plans
		SET name = ?, slug = ?, fee_amount = ?, currency = ?, description = ?,
			benefits = ?, requirements = ?, status = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+planColumns,
		arg.Name, arg.Slug, arg.FeeAmount, arg.Currency, arg.Description,
		arg.Benefits, arg.Requirements, arg.Status, arg.UpdatedAt, arg.ID,
	)
	return scanMembershipPlan(row)
}

func (q *Queries) DeleteMembershipPlan(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM membership_plans WHERE id = ?`, id)
	return err
}

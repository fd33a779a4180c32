// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const recipientColumns = `id, email, name, type, is_active, display_order, created_at, updated_at`

func scanRecipient(row interface{ Scan(...interface{}) error }) (EmailRecipient, error) {
	var r EmailRecipient
	err := row.Scan(&r.ID, &r.Email, &r.Name, &r.Type, &r.IsActive, &r.DisplayOrder,
		&r.CreatedAt, &r.UpdatedAt)
	return r, err
}

type CreateEmailRecipientParams struct {
	ID           string
	Email        string
	Name         sql.NullString
	Type         string
	IsActive     bool
	DisplayOrder int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (q *Queries) CreateEmailRecipient(ctx context.Context, arg CreateEmailRecipientParams) (EmailRecipient, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO email_recipients (id, email, name, type, is_active, display_order, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+recipientColumns,
		arg.ID, arg.Email, arg.Name, arg.Type, arg.IsActive, arg.DisplayOrder,
		arg.CreatedAt, arg.UpdatedAt,
	)
	return scanRecipient(row)
}

func (q *Queries) ListEmailRecipients(ctx context.Context) ([]EmailRecipient, error) {
	rows, err := q.db.QueryContext(ctx,
		`SELECT `+recipientColumns+` FROM email_recipients ORDER BY type ASC, display_order ASC`)
	if err != nil {
		return nil, err
	}
	return q.collectRecipients(rows)
}

// ListActiveEmailRecipients returns active recipients of the given type
// in display order.
func (q *Queries) ListActiveEmailRecipients(ctx context.Context, recipientType string) ([]EmailRecipient, error) {
	rows, err := q.db.QueryContext(ctx, `
		SELECT `+recipientColumns+` FROM email_recipients
		WHERE type = ? AND is_active = 1
		ORDER BY display_order ASC`,
		recipientType)
	if err != nil {
		return nil, err
	}
	return q.collectRecipients(rows)
}

func (q *Queries) collectRecipients(rows *sql.Rows) ([]EmailRecipient, error) {
	defer rows.Close()
	var recipients []EmailRecipient
	for rows.Next() {
		r, err := scanRecipient(rows)
		if err != nil {
			return nil, err
		}
		recipients = append(recipients, r)
	}
	return recipients, rows.Err()
}

type UpdateEmailRecipientParams struct {
	Email        string
	Name         sql.NullString
	Type         string
	IsActive     bool
	DisplayOrder int64
	UpdatedAt    time.Time
	ID           string
}

func (q *Queries) UpdateEmailRecipient(ctx context.Context, arg UpdateEmailRecipientParams) (EmailRecipient, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE email_recipients
		SET email = ?, name = ?, type = ?, is_active = ?, display_order = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+recipientColumns,
		arg.Email, arg.Name, arg.Type, arg.IsActive, arg.DisplayOrder, arg.UpdatedAt, arg.ID,
	)
	return scanRecipient(row)
}

func (q *Queries) DeleteEmailRecipient(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM email_recipients WHERE id = ?`, id)
	return err
}

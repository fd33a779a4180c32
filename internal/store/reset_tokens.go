// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const resetTokenColumns = `id, user_id, code_hash, plain_preview, expires_at, used_at,
	request_ip, user_agent, created_at`

func scanResetToken(row interface{ Scan(...interface{}) error }) (PasswordResetToken, error) {
	var t PasswordResetToken
	err := row.Scan(&t.ID, &t.UserID, &t.CodeHash, &t.PlainPreview, &t.ExpiresAt,
		&t.UsedAt, &t.RequestIP, &t.UserAgent, &t.CreatedAt)
	return t, err
}

type CreatePasswordResetTokenParams struct {
	ID           string
	UserID       string
	CodeHash     string
	PlainPreview sql.NullString
	ExpiresAt    time.Time
	RequestIP    sql.NullString
	UserAgent    sql.NullString
	CreatedAt    time.Time
}

func (q *Queries) CreatePasswordResetToken(ctx context.Context, arg CreatePasswordResetTokenParams) (PasswordResetToken, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO password_reset_tokens (id, user_id, code_hash, plain_preview, expires_at, request_ip, user_agent, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+resetTokenColumns,
		arg.ID, arg.UserID, arg.CodeHash, arg.PlainPreview, arg.ExpiresAt,
		arg.RequestIP, arg.UserAgent, arg.CreatedAt,
	)
	return scanResetToken(row)
}

// GetActivePasswordResetToken finds an unused, unexpired token by its
// code hash.
func (q *Queries) GetActivePasswordResetToken(ctx context.Context, codeHash string, now time.Time) (PasswordResetToken, error) {
	row := q.db.QueryRowContext(ctx, `
		SELECT `+resetTokenColumns+` FROM password_reset_tokens
		WHERE code_hash = ? AND used_at IS NULL AND expires_at > ?`,
		codeHash, now)
	return scanResetToken(row)
}

func (q *Queries) MarkPasswordResetTokenUsed(ctx context.Context, id string, usedAt time.Time) error {
	_, err := q.db.ExecContext(ctx,
		`UPDATE password_reset_tokens SET used_at = ? WHERE id = ?`, usedAt, id)
	return err
}

// DeleteExpiredPasswordResetTokens removes tokens past their expiry.
func (q *Queries) DeleteExpiredPasswordResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx,
		`DELETE FROM password_reset_tokens WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

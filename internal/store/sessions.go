// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const sessionColumns = `id, user_id, refresh_token_hash, user_agent, ip_address,
	expires_at, created_at, updated_at`

func scanSession(row interface{ Scan(...interface{}) error }) (UserSession, error) {
	var s UserSession
	err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.RefreshTokenHash,
		&s.UserAgent,
		&s.IPAddress,
		&s.ExpiresAt,
		&s.CreatedAt,
		&s.UpdatedAt,
	)
	return s, err
}

type CreateUserSessionParams struct {
	ID               string
	UserID           string
	RefreshTokenHash string
	UserAgent        sql.NullString
	IPAddress        sql.NullString
	ExpiresAt        time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (q *Queries) CreateUserSession(ctx context.Context, arg CreateUserSessionParams) (UserSession, error) {
	row := q.db.QueryRowContext(ctx, `
		INSERT INTO user_sessions (id, user_id, refresh_token_hash, user_agent, ip_address, expires_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING `+sessionColumns,
		arg.ID, arg.UserID, arg.RefreshTokenHash, arg.UserAgent, arg.IPAddress,
		arg.ExpiresAt, arg.CreatedAt, arg.UpdatedAt,
	)
	return scanSession(row)
}

func (q *Queries) GetUserSessionByTokenHash(ctx context.Context, tokenHash string) (UserSession, error) {
	row := q.db.QueryRowContext(ctx,
		`SELECT `+sessionColumns+` FROM user_sessions WHERE refresh_token_hash = ?`, tokenHash)
	return scanSession(row)
}

type RotateUserSessionParams struct {
	RefreshTokenHash string
	ExpiresAt        time.Time
	UpdatedAt        time.Time
	ID               string
}

// RotateUserSession replaces the token hash of an existing session,
// invalidating the previous token.
func (q *Queries) RotateUserSession(ctx context.Context, arg RotateUserSessionParams) (UserSession, error) {
	row := q.db.QueryRowContext(ctx, `
		UPDATE user_sessions
		SET refresh_token_hash = ?, expires_at = ?, updated_at = ?
		WHERE id = ?
		RETURNING `+sessionColumns,
		arg.RefreshTokenHash, arg.ExpiresAt, arg.UpdatedAt, arg.ID,
	)
	return scanSession(row)
}

func (q *Queries) DeleteUserSession(ctx context.Context, id string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE id = ?`, id)
	return err
}

func (q *Queries) DeleteUserSessionsForUser(ctx context.Context, userID string) error {
	_, err := q.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE user_id = ?`, userID)
	return err
}

// DeleteExpiredUserSessions removes sessions whose expiry is in the past.
// Returns the number of sessions removed.
func (q *Queries) DeleteExpiredUserSessions(ctx context.Context, now time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE expires_at < ?`, now)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

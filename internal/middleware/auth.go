// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware: bearer session auth,
// CORS for the headless front end and rate limiting.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

type contextKey string

const userContextKey contextKey = "user"

// UserFromContext returns the authenticated user, if any.
func UserFromContext(ctx context.Context) (store.User, bool) {
	u, ok := ctx.Value(userContextKey).(store.User)
	return u, ok
}

// SessionAuth validates bearer tokens against stored sessions.
type SessionAuth struct {
	queries *store.Queries
	logger  *slog.Logger
}

// NewSessionAuth creates session auth middleware over the given queries.
func NewSessionAuth(queries *store.Queries, logger *slog.Logger) *SessionAuth {
	return &SessionAuth{queries: queries, logger: logger}
}

// Require rejects requests without a valid, unexpired session token
// belonging to an active user. The user is placed in the request context.
func (a *SessionAuth) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		session, err := a.queries.GetUserSessionByTokenHash(r.Context(), auth.HashToken(token))
		if errors.Is(err, sql.ErrNoRows) {
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if err != nil {
			a.logger.Error("session lookup failed", "error", err)
			writeAuthError(w, http.StatusInternalServerError, "internal error")
			return
		}

		if time.Now().After(session.ExpiresAt) {
			writeAuthError(w, http.StatusUnauthorized, "token expired")
			return
		}

		user, err := a.queries.GetUserByID(r.Context(), session.UserID)
		if err != nil {
			writeAuthError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !user.IsActive {
			writeAuthError(w, http.StatusForbidden, "account disabled")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireRole allows only users holding one of the given roles. Must be
// mounted inside Require.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}
			for _, role := range roles {
				if user.Role == role {
					next.ServeHTTP(w, r)
					return
				}
			}
			writeAuthError(w, http.StatusForbidden, "insufficient role")
		})
	}
}

// RequireContentWriter allows only roles permitted to modify content.
// Must be mounted inside Require.
func RequireContentWriter(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := UserFromContext(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if !model.CanWriteContent(user.Role) {
			writeAuthError(w, http.StatusForbidden, "insufficient role")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from an Authorization header.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, status int, message string) {
	code := "internal_error"
	switch status {
	case http.StatusUnauthorized:
		code = "unauthorized"
	case http.StatusForbidden:
		code = "forbidden"
	case http.StatusTooManyRequests:
		code = "rate_limited"
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"error": map[string]string{"code": code, "message": message},
	})
}

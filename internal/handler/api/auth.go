// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mileusna/useragent"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/middleware"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// resetPreviewLen is how many characters of a reset code are kept in
// plain text for operator confirmation.
const resetPreviewLen = 4

// UserResponse is the JSON shape of a user account.
type UserResponse struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

func storeUserToResponse(u store.User) UserResponse {
	return UserResponse{
		ID:          u.ID,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: util.TimePtrFromNull(u.LastLoginAt),
	}
}

// LoginRequest is the login payload.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is returned on login and refresh.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

// clientUserAgent condenses the raw User-Agent header into a short
// browser/OS description for session records.
func clientUserAgent(r *http.Request) sql.NullString {
	raw := r.Header.Get("User-Agent")
	if raw == "" {
		return sql.NullString{}
	}
	ua := useragent.Parse(raw)
	desc := strings.TrimSpace(ua.Name + " " + ua.Version + " (" + ua.OS + ")")
	if desc == "()" || desc == "" {
		desc = raw
	}
	return sql.NullString{String: desc, Valid: true}
}

func clientIP(r *http.Request) sql.NullString {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	return util.NullStringFromValue(host)
}

// Login verifies credentials and opens a new bearer session.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, sql.ErrNoRows) {
		WriteUnauthorized(w, "Invalid credentials")
		return
	}
	if err != nil {
		WriteInternalError(w, "Login failed")
		return
	}

	valid, err := auth.CheckPassword(req.Password, user.PasswordHash)
	if err != nil || !valid {
		h.logger.Warn("failed login attempt", "email", req.Email)
		WriteUnauthorized(w, "Invalid credentials")
		return
	}
	if !user.IsActive {
		WriteForbidden(w, "Account disabled")
		return
	}

	// Transparently upgrade hashes created with older parameters
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(req.Password); err == nil {
			if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    h.timestamp(),
				ID:           user.ID,
			}); err != nil {
				h.logger.Warn("failed to upgrade password hash", "user", user.ID, "error", err)
			}
		}
	}

	token, err := auth.GenerateToken()
	if err != nil {
		WriteInternalError(w, "Login failed")
		return
	}

	ts := h.timestamp()
	expiresAt := ts.Add(time.Duration(h.cfg.SessionTTLHours) * time.Hour)
	if _, err := h.queries.CreateUserSession(r.Context(), store.CreateUserSessionParams{
		ID:               uuid.NewString(),
		UserID:           user.ID,
		RefreshTokenHash: auth.HashToken(token),
		UserAgent:        clientUserAgent(r),
		IPAddress:        clientIP(r),
		ExpiresAt:        expiresAt,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}); err != nil {
		h.logger.Error("failed to create session", "user", user.ID, "error", err)
		WriteInternalError(w, "Login failed")
		return
	}

	if err := h.queries.RecordUserLogin(r.Context(), user.ID, ts); err != nil {
		h.logger.Warn("failed to record login time", "user", user.ID, "error", err)
	}

	h.logger.Info("user logged in", "user", user.ID, "email", user.Email)
	WriteSuccess(w, SessionResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      storeUserToResponse(user),
	}, nil)
}

// Refresh rotates the current session token, invalidating the old one.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	token := bearerTokenFromRequest(r)
	if token == "" {
		WriteUnauthorized(w, "Missing bearer token")
		return
	}

	session, err := h.queries.GetUserSessionByTokenHash(r.Context(), auth.HashToken(token))
	if errors.Is(err, sql.ErrNoRows) {
		WriteUnauthorized(w, "Invalid token")
		return
	}
	if err != nil {
		WriteInternalError(w, "Refresh failed")
		return
	}
	if h.timestamp().After(session.ExpiresAt) {
		WriteUnauthorized(w, "Token expired")
		return
	}

	user, err := h.queries.GetUserByID(r.Context(), session.UserID)
	if err != nil || !user.IsActive {
		WriteUnauthorized(w, "Invalid token")
		return
	}

	newToken, err := auth.GenerateToken()
	if err != nil {
		WriteInternalError(w, "Refresh failed")
		return
	}

	ts := h.timestamp()
	expiresAt := ts.Add(time.Duration(h.cfg.SessionTTLHours) * time.Hour)
	if _, err := h.queries.RotateUserSession(r.Context(), store.RotateUserSessionParams{
		RefreshTokenHash: auth.HashToken(newToken),
		ExpiresAt:        expiresAt,
		UpdatedAt:        ts,
		ID:               session.ID,
	}); err != nil {
		WriteInternalError(w, "Refresh failed")
		return
	}

	WriteSuccess(w, SessionResponse{
		Token:     newToken,
		ExpiresAt: expiresAt,
		User:      storeUserToResponse(user),
	}, nil)
}

// Logout deletes the current session.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerTokenFromRequest(r)
	if token == "" {
		WriteUnauthorized(w, "Missing bearer token")
		return
	}

	session, err := h.queries.GetUserSessionByTokenHash(r.Context(), auth.HashToken(token))
	if errors.Is(err, sql.ErrNoRows) {
		WriteJSON(w, http.StatusNoContent, nil)
		return
	}
	if err != nil {
		WriteInternalError(w, "Logout failed")
		return
	}

	if err := h.queries.DeleteUserSession(r.Context(), session.ID); err != nil {
		WriteInternalError(w, "Logout failed")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// Me returns the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Missing bearer token")
		return
	}
	WriteSuccess(w, storeUserToResponse(user), nil)
}

// ChangePasswordRequest is the payload for changing one's own password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword updates the authenticated user's password and revokes
// all other sessions.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		WriteUnauthorized(w, "Missing bearer token")
		return
	}

	var req ChangePasswordRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 8 {
		WriteValidationError(w, map[string]string{"new_password": "Password must be at least 8 characters"})
		return
	}

	valid, err := auth.CheckPassword(req.CurrentPassword, user.PasswordHash)
	if err != nil || !valid {
		WriteUnauthorized(w, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    h.timestamp(),
		ID:           user.ID,
	}); err != nil {
		WriteInternalError(w, "Failed to update password")
		return
	}

	if err := h.queries.DeleteUserSessionsForUser(r.Context(), user.ID); err != nil {
		h.logger.Warn("failed to revoke sessions after password change", "user", user.ID, "error", err)
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// ResetRequest asks for a password reset code.
type ResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset issues a one-time reset code. The code is logged
// for the operator to relay; the response never reveals whether the
// email exists.
func (h *Handler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	user, err := h.queries.GetUserByEmail(r.Context(), strings.ToLower(strings.TrimSpace(req.Email)))
	if errors.Is(err, sql.ErrNoRows) {
		WriteSuccess(w, map[string]string{"status": "ok"}, nil)
		return
	}
	if err != nil {
		WriteInternalError(w, "Reset request failed")
		return
	}

	code, err := auth.GenerateToken()
	if err != nil {
		WriteInternalError(w, "Reset request failed")
		return
	}

	preview := code
	if len(preview) > resetPreviewLen {
		preview = preview[:resetPreviewLen]
	}

	ts := h.timestamp()
	if _, err := h.queries.CreatePasswordResetToken(r.Context(), store.CreatePasswordResetTokenParams{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		CodeHash:     auth.HashToken(code),
		PlainPreview: sql.NullString{String: preview, Valid: true},
		ExpiresAt:    ts.Add(time.Duration(h.cfg.ResetTTLMinutes) * time.Minute),
		RequestIP:    clientIP(r),
		UserAgent:    clientUserAgent(r),
		CreatedAt:    ts,
	}); err != nil {
		WriteInternalError(w, "Reset request failed")
		return
	}

	h.logger.Info("password reset requested",
		"user", user.ID, "email", user.Email, "code", code)
	WriteSuccess(w, map[string]string{"status": "ok"}, nil)
}

// ResetConfirmRequest redeems a reset code for a new password.
type ResetConfirmRequest struct {
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// ConfirmPasswordReset redeems a reset code, sets the new password and
// revokes the user's sessions.
func (h *Handler) ConfirmPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ResetConfirmRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if len(req.NewPassword) < 8 {
		WriteValidationError(w, map[string]string{"new_password": "Password must be at least 8 characters"})
		return
	}

	ts := h.timestamp()
	token, err := h.queries.GetActivePasswordResetToken(r.Context(), auth.HashToken(req.Code), ts)
	if errors.Is(err, sql.ErrNoRows) {
		WriteUnauthorized(w, "Invalid or expired reset code")
		return
	}
	if err != nil {
		WriteInternalError(w, "Reset failed")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		WriteInternalError(w, "Reset failed")
		return
	}

	if err := h.queries.UpdateUserPassword(r.Context(), store.UpdateUserPasswordParams{
		PasswordHash: hash,
		UpdatedAt:    ts,
		ID:           token.UserID,
	}); err != nil {
		WriteInternalError(w, "Reset failed")
		return
	}

	if err := h.queries.MarkPasswordResetTokenUsed(r.Context(), token.ID, ts); err != nil {
		h.logger.Warn("failed to mark reset token used", "token", token.ID, "error", err)
	}
	if err := h.queries.DeleteUserSessionsForUser(r.Context(), token.UserID); err != nil {
		h.logger.Warn("failed to revoke sessions after reset", "user", token.UserID, "error", err)
	}

	h.logger.Info("password reset completed", "user", token.UserID)
	WriteJSON(w, http.StatusNoContent, nil)
}

// bearerTokenFromRequest extracts a bearer token from the Authorization
// header.
func bearerTokenFromRequest(r *http.Request) string {
	header := r.Header.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

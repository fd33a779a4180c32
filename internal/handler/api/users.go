// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/middleware"
	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

// UserRequest is the admin payload for creating or updating a user.
type UserRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Role      string `json:"role"`
	IsActive  *bool  `json:"is_active"`
}

func (req *UserRequest) validate(requirePassword bool) map[string]string {
	fieldErrors := map[string]string{}
	if req.FirstName == "" {
		fieldErrors["first_name"] = "First name is required"
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if requirePassword && len(req.Password) < 8 {
		fieldErrors["password"] = "Password must be at least 8 characters"
	}
	if req.Role == "" {
		req.Role = model.RoleEditor
	} else if !model.ValidRole(req.Role) {
		fieldErrors["role"] = "Role must be admin, editor or viewer"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (req *UserRequest) active() bool {
	if req.IsActive == nil {
		return true
	}
	return *req.IsActive
}

// ListUsers returns all user accounts.
func (h *Handler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.queries.ListUsers(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list users")
		return
	}

	resp := make([]UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, storeUserToResponse(u))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateUser creates a user account.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	var req UserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(true); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.queries.GetUserByEmail(r.Context(), email); err == nil {
		WriteValidationError(w, map[string]string{"email": "Email already in use"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to check email")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		WriteInternalError(w, "Failed to create user")
		return
	}

	ts := h.timestamp()
	user, err := h.queries.CreateUser(r.Context(), store.CreateUserParams{
		ID:           uuid.NewString(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		IsActive:     req.active(),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if err != nil {
		h.logger.Error("failed to create user", "email", email, "error", err)
		WriteInternalError(w, "Failed to create user")
		return
	}

	WriteCreated(w, storeUserToResponse(user))
}

// GetUser returns one user account.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", func(id string) (store.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeUserToResponse(user), nil)
}

// UpdateUser updates a user account. Deactivating a user revokes their
// sessions.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", func(id string) (store.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UserRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(false); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	updated, err := h.queries.UpdateUser(r.Context(), store.UpdateUserParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     strings.ToLower(strings.TrimSpace(req.Email)),
		Role:      req.Role,
		IsActive:  req.active(),
		UpdatedAt: h.timestamp(),
		ID:        user.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update user")
		return
	}

	if user.IsActive && !updated.IsActive {
		if err := h.queries.DeleteUserSessionsForUser(r.Context(), user.ID); err != nil {
			h.logger.Warn("failed to revoke sessions of deactivated user", "user", user.ID, "error", err)
		}
	}
	WriteSuccess(w, storeUserToResponse(updated), nil)
}

// DeleteUser removes a user account. Users cannot delete themselves.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	user, ok := requireEntityByID(w, r, "user", func(id string) (store.User, error) {
		return h.queries.GetUserByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if actor, ok := middleware.UserFromContext(r.Context()); ok && actor.ID == user.ID {
		WriteBadRequest(w, "Cannot delete your own account", nil)
		return
	}

	if err := h.queries.DeleteUser(r.Context(), user.ID); err != nil {
		WriteInternalError(w, "Failed to delete user")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// EmailRecipientResponse is the JSON shape of a notification recipient.
type EmailRecipientResponse struct {
	ID           string  `json:"id"`
	Email        string  `json:"email"`
	Name         *string `json:"name,omitempty"`
	Type         string  `json:"type"`
	IsActive     bool    `json:"is_active"`
	DisplayOrder int64   `json:"display_order"`
}

func storeRecipientToResponse(rec store.EmailRecipient) EmailRecipientResponse {
	return EmailRecipientResponse{
		ID:           rec.ID,
		Email:        rec.Email,
		Name:         util.StringPtrFromNull(rec.Name),
		Type:         rec.Type,
		IsActive:     rec.IsActive,
		DisplayOrder: rec.DisplayOrder,
	}
}

// EmailRecipientRequest is the payload for creating or updating a
// recipient.
type EmailRecipientRequest struct {
	Email        string  `json:"email"`
	Name         *string `json:"name"`
	Type         string  `json:"type"`
	IsActive     *bool   `json:"is_active"`
	DisplayOrder int64   `json:"display_order"`
}

func (req *EmailRecipientRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		fieldErrors["email"] = "A valid email is required"
	}
	if req.Type == "" {
		req.Type = model.RecipientGeneral
	} else if !model.ValidRecipientType(req.Type) {
		fieldErrors["type"] = "Type must be membership or general"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (req *EmailRecipientRequest) active() bool {
	if req.IsActive == nil {
		return true
	}
	return *req.IsActive
}

// ListEmailRecipients returns all recipients grouped by type.
func (h *Handler) ListEmailRecipients(w http.ResponseWriter, r *http.Request) {
	recipients, err := h.queries.ListEmailRecipients(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list recipients")
		return
	}

	resp := make([]EmailRecipientResponse, 0, len(recipients))
	for _, rec := range recipients {
		resp = append(resp, storeRecipientToResponse(rec))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// CreateEmailRecipient adds a recipient.
func (h *Handler) CreateEmailRecipient(w http.ResponseWriter, r *http.Request) {
	var req EmailRecipientRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ts := h.timestamp()
	recipient, err := h.queries.CreateEmailRecipient(r.Context(), store.CreateEmailRecipientParams{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         util.NullStringFromPtr(req.Name),
		Type:         req.Type,
		IsActive:     req.active(),
		DisplayOrder: req.DisplayOrder,
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if err != nil {
		// UNIQUE(email, type) violation lands here
		WriteValidationError(w, map[string]string{"email": "Recipient already exists for this type"})
		return
	}
	WriteCreated(w, storeRecipientToResponse(recipient))
}

// UpdateEmailRecipient updates a recipient.
func (h *Handler) UpdateEmailRecipient(w http.ResponseWriter, r *http.Request) {
	var req EmailRecipientRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	recipient, err := h.queries.UpdateEmailRecipient(r.Context(), store.UpdateEmailRecipientParams{
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		Name:         util.NullStringFromPtr(req.Name),
		Type:         req.Type,
		IsActive:     req.active(),
		DisplayOrder: req.DisplayOrder,
		UpdatedAt:    h.timestamp(),
		ID:           chi.URLParam(r, "id"),
	})
	if err != nil {
		WriteInternalError(w, "Failed to update recipient")
		return
	}
	WriteSuccess(w, storeRecipientToResponse(recipient), nil)
}

// DeleteEmailRecipient removes a recipient.
func (h *Handler) DeleteEmailRecipient(w http.ResponseWriter, r *http.Request) {
	if err := h.queries.DeleteEmailRecipient(r.Context(), chi.URLParam(r, "id")); err != nil {
		WriteInternalError(w, "Failed to delete recipient")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

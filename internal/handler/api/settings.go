// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"

	"github.com/apeck-ke/apeck-cms/internal/util"
)

// SettingResponse is the JSON shape of a content setting.
type SettingResponse struct {
	Key   string  `json:"key"`
	Value *string `json:"value,omitempty"`
}

// ListSettings returns all content settings.
func (h *Handler) ListSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := h.queries.ListContentSettings(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list settings")
		return
	}

	resp := make([]SettingResponse, 0, len(settings))
	for _, s := range settings {
		resp = append(resp, SettingResponse{Key: s.Key, Value: util.StringPtrFromNull(s.Value)})
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// TrashRetentionResponse carries the trash retention period in days.
type TrashRetentionResponse struct {
	Days int `json:"days"`
}

// GetTrashRetention returns the configured trash retention period.
func (h *Handler) GetTrashRetention(w http.ResponseWriter, r *http.Request) {
	days, err := h.settings.TrashRetentionDays(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to read setting")
		return
	}
	WriteSuccess(w, TrashRetentionResponse{Days: days}, nil)
}

// SetTrashRetention stores the trash retention period.
func (h *Handler) SetTrashRetention(w http.ResponseWriter, r *http.Request) {
	var req TrashRetentionResponse
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if req.Days < 1 {
		WriteValidationError(w, map[string]string{"days": "Retention must be at least one day"})
		return
	}

	if err := h.settings.SetTrashRetentionDays(r.Context(), req.Days, h.timestamp()); err != nil {
		WriteInternalError(w, "Failed to store setting")
		return
	}
	WriteSuccess(w, TrashRetentionResponse{Days: req.Days}, nil)
}

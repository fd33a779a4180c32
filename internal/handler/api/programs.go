// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// ProgramResponse is the JSON shape of a program.
type ProgramResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Summary     *string `json:"summary,omitempty"`
	Body        *string `json:"body,omitempty"`
	Status      string  `json:"status"`
	HeroMediaID *string `json:"hero_media_id,omitempty"`
	Metadata    *string `json:"metadata,omitempty"`
}

func storeProgramToResponse(p store.Program) ProgramResponse {
	return ProgramResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Summary:     util.StringPtrFromNull(p.Summary),
		Body:        util.StringPtrFromNull(p.Body),
		Status:      p.Status,
		HeroMediaID: util.StringPtrFromNull(p.HeroMediaID),
		Metadata:    util.StringPtrFromNull(p.Metadata),
	}
}

// ListPublishedPrograms returns published programs, alphabetically.
func (h *Handler) ListPublishedPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.queries.ListPublishedPrograms(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list programs")
		return
	}

	resp := make([]ProgramResponse, 0, len(programs))
	for _, p := range programs {
		resp = append(resp, storeProgramToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetPublishedProgram returns one published program by slug.
func (h *Handler) GetPublishedProgram(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	program, err := h.queries.GetPublishedProgramBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Program not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve program")
		return
	}
	WriteSuccess(w, storeProgramToResponse(program), nil)
}

// ProgramRequest is the payload for creating or updating a program.
type ProgramRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug"`
	Summary     *string `json:"summary"`
	Body        *string `json:"body"`
	Status      string  `json:"status"`
	HeroMediaID *string `json:"hero_media_id"`
	Metadata    *string `json:"metadata"`
}

func (req *ProgramRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Status == "" {
		req.Status = model.StatusDraft
	} else if !model.ValidContentStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if req.Slug == "" {
		req.Slug = util.Slugify(req.Title)
	} else if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	}
	if req.Metadata != nil && *req.Metadata != "" && !json.Valid([]byte(*req.Metadata)) {
		fieldErrors["metadata"] = "Metadata must be valid JSON"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateProgram creates a new program.
func (h *Handler) CreateProgram(w http.ResponseWriter, r *http.Request) {
	var req ProgramRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ts := h.timestamp()
	program, err := h.queries.CreateProgram(r.Context(), store.CreateProgramParams{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     util.NullStringFromPtr(req.Summary),
		Body:        util.NullStringFromPtr(req.Body),
		Status:      req.Status,
		HeroMediaID: util.NullStringFromPtr(req.HeroMediaID),
		Metadata:    util.NullStringFromPtr(req.Metadata),
		CreatedAt:   ts,
		UpdatedAt:   ts,
	})
	if err != nil {
		h.logger.Error("failed to create program", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create program")
		return
	}
	WriteCreated(w, storeProgramToResponse(program))
}

// ListPrograms returns all programs for the admin UI.
func (h *Handler) ListPrograms(w http.ResponseWriter, r *http.Request) {
	programs, err := h.queries.ListPrograms(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list programs")
		return
	}

	resp := make([]ProgramResponse, 0, len(programs))
	for _, p := range programs {
		resp = append(resp, storeProgramToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// UpdateProgram updates an existing program.
func (h *Handler) UpdateProgram(w http.ResponseWriter, r *http.Request) {
	program, ok := requireEntityByID(w, r, "program", func(id string) (store.Program, error) {
		return h.queries.GetProgramByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ProgramRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	updated, err := h.queries.UpdateProgram(r.Context(), store.UpdateProgramParams{
		Title:       req.Title,
		Slug:        req.Slug,
		Summary:     util.NullStringFromPtr(req.Summary),
		Body:        util.NullStringFromPtr(req.Body),
		Status:      req.Status,
		HeroMediaID: util.NullStringFromPtr(req.HeroMediaID),
		Metadata:    util.NullStringFromPtr(req.Metadata),
		UpdatedAt:   h.timestamp(),
		ID:          program.ID,
	})
	if err != nil {
		h.logger.Error("failed to update program", "id", program.ID, "error", err)
		WriteInternalError(w, "Failed to update program")
		return
	}
	WriteSuccess(w, storeProgramToResponse(updated), nil)
}

// DeleteProgram permanently removes a program.
func (h *Handler) DeleteProgram(w http.ResponseWriter, r *http.Request) {
	program, ok := requireEntityByID(w, r, "program", func(id string) (store.Program, error) {
		return h.queries.GetProgramByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteProgram(r.Context(), program.ID); err != nil {
		WriteInternalError(w, "Failed to delete program")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

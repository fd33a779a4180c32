// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// EventResponse is the JSON shape of an event.
type EventResponse struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description,omitempty"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date,omitempty"`
	Location     *string    `json:"location,omitempty"`
	Category     *string    `json:"category,omitempty"`
	Status       string     `json:"status"`
	CoverMediaID *string    `json:"cover_media_id,omitempty"`
}

func storeEventToResponse(e store.Event) EventResponse {
	return EventResponse{
		ID:           e.ID,
		Title:        e.Title,
		Slug:         e.Slug,
		Description:  util.StringPtrFromNull(e.Description),
		StartDate:    e.StartDate,
		EndDate:      util.TimePtrFromNull(e.EndDate),
		Location:     util.StringPtrFromNull(e.Location),
		Category:     util.StringPtrFromNull(e.Category),
		Status:       e.Status,
		CoverMediaID: util.StringPtrFromNull(e.CoverMediaID),
	}
}

// ListPublishedEvents returns published events, soonest first.
func (h *Handler) ListPublishedEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListPublishedEvents(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, storeEventToResponse(e))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetPublishedEvent returns one published event by slug.
func (h *Handler) GetPublishedEvent(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	event, err := h.queries.GetEventBySlug(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && event.Status != model.StatusPublished) {
		WriteNotFound(w, "Event not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve event")
		return
	}
	WriteSuccess(w, storeEventToResponse(event), nil)
}

// EventRequest is the payload for creating or updating an event.
type EventRequest struct {
	Title        string     `json:"title"`
	Slug         string     `json:"slug"`
	Description  *string    `json:"description"`
	StartDate    time.Time  `json:"start_date"`
	EndDate      *time.Time `json:"end_date"`
	Location     *string    `json:"location"`
	Category     *string    `json:"category"`
	Status       string     `json:"status"`
	CoverMediaID *string    `json:"cover_media_id"`
}

func (req *EventRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.StartDate.IsZero() {
		fieldErrors["start_date"] = "Start date is required"
	}
	if req.EndDate != nil && req.EndDate.Before(req.StartDate) {
		fieldErrors["end_date"] = "End date must not precede the start date"
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
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateEvent creates a new event.
func (h *Handler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req EventRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ts := h.timestamp()
	event, err := h.queries.CreateEvent(r.Context(), store.CreateEventParams{
		ID:           uuid.NewString(),
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  util.NullStringFromPtr(req.Description),
		StartDate:    req.StartDate,
		EndDate:      util.NullTimeFromPtr(req.EndDate),
		Location:     util.NullStringFromPtr(req.Location),
		Category:     util.NullStringFromPtr(req.Category),
		Status:       req.Status,
		CoverMediaID: util.NullStringFromPtr(req.CoverMediaID),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if err != nil {
		h.logger.Error("failed to create event", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create event")
		return
	}
	WriteCreated(w, storeEventToResponse(event))
}

// ListEvents returns all events for the admin UI.
func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.queries.ListEvents(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list events")
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, e := range events {
		resp = append(resp, storeEventToResponse(e))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// UpdateEvent updates an existing event.
func (h *Handler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id string) (store.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req EventRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	updated, err := h.queries.UpdateEvent(r.Context(), store.UpdateEventParams{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  util.NullStringFromPtr(req.Description),
		StartDate:    req.StartDate,
		EndDate:      util.NullTimeFromPtr(req.EndDate),
		Location:     util.NullStringFromPtr(req.Location),
		Category:     util.NullStringFromPtr(req.Category),
		Status:       req.Status,
		CoverMediaID: util.NullStringFromPtr(req.CoverMediaID),
		UpdatedAt:    h.timestamp(),
		ID:           event.ID,
	})
	if err != nil {
		h.logger.Error("failed to update event", "id", event.ID, "error", err)
		WriteInternalError(w, "Failed to update event")
		return
	}
	WriteSuccess(w, storeEventToResponse(updated), nil)
}

// DeleteEvent permanently removes an event.
func (h *Handler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	event, ok := requireEntityByID(w, r, "event", func(id string) (store.Event, error) {
		return h.queries.GetEventByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteEvent(r.Context(), event.ID); err != nil {
		WriteInternalError(w, "Failed to delete event")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

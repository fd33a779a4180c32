// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// RouteResponse is the JSON shape of a navigation route.
type RouteResponse struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Target   string `json:"target"`
	IsActive bool   `json:"is_active"`
}

func storeRouteToResponse(r store.Route) RouteResponse {
	return RouteResponse{ID: r.ID, Slug: r.Slug, Target: r.Target, IsActive: r.IsActive}
}

// ListActiveRoutes returns the routes the front end should render.
func (h *Handler) ListActiveRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.queries.ListActiveRoutes(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list routes")
		return
	}

	resp := make([]RouteResponse, 0, len(routes))
	for _, rt := range routes {
		resp = append(resp, storeRouteToResponse(rt))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetActiveRoute looks up a single route by slug. Inactive routes are
// indistinguishable from missing ones.
func (h *Handler) GetActiveRoute(w http.ResponseWriter, r *http.Request) {
	route, err := h.queries.GetRouteBySlug(r.Context(), chi.URLParam(r, "slug"))
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Route not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to load route")
		return
	}
	if !route.IsActive {
		WriteNotFound(w, "Route not found")
		return
	}
	WriteSuccess(w, storeRouteToResponse(route), nil)
}

// RouteRequest is the payload for creating or updating a route.
type RouteRequest struct {
	Slug     string `json:"slug"`
	Target   string `json:"target"`
	IsActive *bool  `json:"is_active"`
}

func (req *RouteRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Slug == "" {
		fieldErrors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	}
	if req.Target == "" {
		fieldErrors["target"] = "Target is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (req *RouteRequest) active() bool {
	if req.IsActive == nil {
		return true
	}
	return *req.IsActive
}

// CreateRoute creates a new route.
func (h *Handler) CreateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetRouteBySlug(r.Context(), req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to check slug")
		return
	}

	ts := h.timestamp()
	route, err := h.queries.CreateRoute(r.Context(), store.CreateRouteParams{
		ID:        uuid.NewString(),
		Slug:      req.Slug,
		Target:    req.Target,
		IsActive:  req.active(),
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	if err != nil {
		h.logger.Error("failed to create route", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create route")
		return
	}
	WriteCreated(w, storeRouteToResponse(route))
}

// ListRoutes returns all routes for the admin UI.
func (h *Handler) ListRoutes(w http.ResponseWriter, r *http.Request) {
	routes, err := h.queries.ListRoutes(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list routes")
		return
	}

	resp := make([]RouteResponse, 0, len(routes))
	for _, rt := range routes {
		resp = append(resp, storeRouteToResponse(rt))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// UpdateRoute updates an existing route.
func (h *Handler) UpdateRoute(w http.ResponseWriter, r *http.Request) {
	var req RouteRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	route, err := h.queries.UpdateRoute(r.Context(), store.UpdateRouteParams{
		Slug:      req.Slug,
		Target:    req.Target,
		IsActive:  req.active(),
		UpdatedAt: h.timestamp(),
		ID:        chi.URLParam(r, "id"),
	})
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Route not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to update route")
		return
	}
	WriteSuccess(w, storeRouteToResponse(route), nil)
}

// DeleteRoute removes a route.
func (h *Handler) DeleteRoute(w http.ResponseWriter, r *http.Request) {
	err := h.queries.DeleteRoute(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Route not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to delete route")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

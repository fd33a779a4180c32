// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package api provides the REST API handlers for the CMS.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/apeck-ke/apeck-cms/internal/cache"
	"github.com/apeck-ke/apeck-cms/internal/config"
	"github.com/apeck-ke/apeck-cms/internal/imaging"
	"github.com/apeck-ke/apeck-cms/internal/service"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

// Handler holds shared dependencies for all API handlers.
type Handler struct {
	db        *sql.DB
	queries   *store.Queries
	cfg       *config.Config
	logger    *slog.Logger
	pages     *service.PagesService
	news      *service.NewsService
	settings  *service.SettingsService
	processor *imaging.Processor
	cache     cache.Cacher
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, cfg *config.Config, logger *slog.Logger, contentCache cache.Cacher) *Handler {
	queries := store.New(db)
	return &Handler{
		db:        db,
		queries:   queries,
		cfg:       cfg,
		logger:    logger,
		pages:     service.NewPagesService(queries),
		news:      service.NewNewsService(queries),
		settings:  service.NewSettingsService(queries),
		processor: imaging.NewProcessor(cfg.UploadsDir),
		cache:     contentCache,
	}
}

// timestamp returns the current UTC time for created_at/updated_at columns.
func (h *Handler) timestamp() time.Time {
	return time.Now().UTC()
}

// Response is the standard API response wrapper.
type Response struct {
	Data any   `json:"data,omitempty"`
	Meta *Meta `json:"meta,omitempty"`
}

// Meta contains pagination and other metadata.
type Meta struct {
	Total   int64 `json:"total,omitempty"`
	Page    int   `json:"page,omitempty"`
	PerPage int   `json:"per_page,omitempty"`
	Pages   int   `json:"pages,omitempty"`
}

// ErrorResponse is the standard API error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// WriteSuccess writes a successful JSON response.
func WriteSuccess(w http.ResponseWriter, data any, meta *Meta) {
	WriteJSON(w, http.StatusOK, Response{Data: data, Meta: meta})
}

// WriteCreated writes a 201 Created JSON response.
func WriteCreated(w http.ResponseWriter, data any) {
	WriteJSON(w, http.StatusCreated, Response{Data: data})
}

// WriteError writes an error JSON response.
func WriteError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	WriteJSON(w, statusCode, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// WriteBadRequest writes a 400 Bad Request response.
func WriteBadRequest(w http.ResponseWriter, message string, details map[string]string) {
	WriteError(w, http.StatusBadRequest, "bad_request", message, details)
}

// WriteNotFound writes a 404 Not Found response.
func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, "not_found", message, nil)
}

// WriteUnauthorized writes a 401 Unauthorized response.
func WriteUnauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, "unauthorized", message, nil)
}

// WriteForbidden writes a 403 Forbidden response.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, "forbidden", message, nil)
}

// WriteInternalError writes a 500 Internal Server Error response.
func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, "internal_error", message, nil)
}

// WriteValidationError writes a 422 Unprocessable Entity response with field errors.
func WriteValidationError(w http.ResponseWriter, fieldErrors map[string]string) {
	WriteError(w, http.StatusUnprocessableEntity, "validation_error", "Validation failed", fieldErrors)
}

// HealthResponse contains API health information.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// Health returns the API health status.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		WriteError(w, http.StatusServiceUnavailable, "unavailable", "Database unreachable", nil)
		return
	}
	WriteSuccess(w, HealthResponse{Status: "ok", Version: "v1"}, nil)
}

// EntityFetcher is a function that fetches an entity by ID.
type EntityFetcher[T any] func(id string) (T, error)

// requireEntityByID reads an ID from the URL and fetches the entity.
// Returns the entity and true if successful, or zero value and false if
// an error response was already written. The entityName is used for
// error messages (e.g., "page", "route", "media asset").
func requireEntityByID[T any](w http.ResponseWriter, r *http.Request, entityName string, fetch EntityFetcher[T]) (T, bool) {
	var zero T

	id := chi.URLParam(r, "id")
	if id == "" {
		WriteBadRequest(w, "Missing "+entityName+" ID", nil)
		return zero, false
	}

	entity, err := fetch(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, capitalizeFirst(entityName)+" not found")
		} else {
			WriteInternalError(w, "Failed to retrieve "+entityName)
		}
		return zero, false
	}

	return entity, true
}

// capitalizeFirst returns s with the first letter capitalized.
func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// decodeJSONBody decodes a request body into dst.
func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		WriteBadRequest(w, "Invalid JSON body", nil)
		return false
	}
	return true
}

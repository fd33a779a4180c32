// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/cache"
	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// pageCachePrefix namespaces resolved page content in the cache.
const pageCachePrefix = "page:"

// SectionResponse is one resolved content section.
type SectionResponse struct {
	ID      string          `json:"id"`
	Key     string          `json:"key"`
	Content json.RawMessage `json:"content"`
}

// PageViewResponse is the public shape of a resolved page.
type PageViewResponse struct {
	Slug     string            `json:"slug"`
	Title    string            `json:"title"`
	Excerpt  *string           `json:"excerpt,omitempty"`
	Sections []SectionResponse `json:"sections"`
}

// PageResponse is the admin shape of a page.
type PageResponse struct {
	ID              string  `json:"id"`
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Excerpt         *string `json:"excerpt,omitempty"`
	Status          string  `json:"status"`
	SeoTitle        *string `json:"seo_title,omitempty"`
	SeoDescription  *string `json:"seo_description,omitempty"`
	SeoMetadata     *string `json:"seo_metadata,omitempty"`
	FeaturedMediaID *string `json:"featured_media_id,omitempty"`
}

// AdminSectionResponse is the admin shape of a page section.
type AdminSectionResponse struct {
	ID           string          `json:"id"`
	Key          string          `json:"key"`
	DisplayOrder int64           `json:"display_order"`
	Status       string          `json:"status"`
	Content      json.RawMessage `json:"content"`
}

func storePageToView(page store.Page, sections []store.PageSection) PageViewResponse {
	view := PageViewResponse{
		Slug:     page.Slug,
		Title:    page.Title,
		Excerpt:  util.StringPtrFromNull(page.Excerpt),
		Sections: make([]SectionResponse, 0, len(sections)),
	}
	for _, s := range sections {
		view.Sections = append(view.Sections, SectionResponse{
			ID:      s.ID,
			Key:     s.Key,
			Content: json.RawMessage(s.Content),
		})
	}
	return view
}

func storePageToResponse(page store.Page) PageResponse {
	return PageResponse{
		ID:              page.ID,
		Slug:            page.Slug,
		Title:           page.Title,
		Excerpt:         util.StringPtrFromNull(page.Excerpt),
		Status:          page.Status,
		SeoTitle:        util.StringPtrFromNull(page.SeoTitle),
		SeoDescription:  util.StringPtrFromNull(page.SeoDescription),
		SeoMetadata:     util.StringPtrFromNull(page.SeoMetadata),
		FeaturedMediaID: util.StringPtrFromNull(page.FeaturedMediaID),
	}
}

func storeSectionToAdminResponse(s store.PageSection) AdminSectionResponse {
	return AdminSectionResponse{
		ID:           s.ID,
		Key:          s.Key,
		DisplayOrder: s.DisplayOrder,
		Status:       s.Status,
		Content:      json.RawMessage(s.Content),
	}
}

// GetPageBySlug resolves a published page with its published sections in
// display order. Unknown, draft and trashed slugs all return 404; a
// published page with no published sections returns an empty list.
func (h *Handler) GetPageBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	if cached, err := h.cache.Get(r.Context(), pageCachePrefix+slug); err == nil {
		WriteSuccess(w, json.RawMessage(cached), nil)
		return
	}

	resolved, err := h.pages.Resolve(r.Context(), slug)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Page not found")
		return
	}
	if err != nil {
		h.logger.Error("failed to resolve page", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to retrieve page")
		return
	}

	view := storePageToView(resolved.Page, resolved.Sections)
	if payload, err := json.Marshal(view); err == nil {
		if err := h.cache.Set(r.Context(), pageCachePrefix+slug, payload, 0); err != nil && !errors.Is(err, cache.ErrCacheClosed) {
			h.logger.Warn("failed to cache page", "slug", slug, "error", err)
		}
	}
	WriteSuccess(w, view, nil)
}

// invalidatePage drops cached content for a slug after a write.
func (h *Handler) invalidatePage(ctx context.Context, slug string) {
	if err := h.cache.Delete(ctx, pageCachePrefix+slug); err != nil && !errors.Is(err, cache.ErrCacheClosed) {
		h.logger.Warn("failed to invalidate page cache", "slug", slug, "error", err)
	}
}

// PageRequest is the payload for creating or updating a page.
type PageRequest struct {
	Slug            string  `json:"slug"`
	Title           string  `json:"title"`
	Excerpt         *string `json:"excerpt"`
	Status          string  `json:"status"`
	SeoTitle        *string `json:"seo_title"`
	SeoDescription  *string `json:"seo_description"`
	SeoMetadata     *string `json:"seo_metadata"`
	FeaturedMediaID *string `json:"featured_media_id"`
}

func (req *PageRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Slug == "" {
		fieldErrors["slug"] = "Slug is required"
	} else if !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may only contain lowercase letters, numbers and hyphens"
	}
	if req.Status == "" {
		req.Status = model.StatusDraft
	} else if !model.ValidContentStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if req.SeoMetadata != nil && *req.SeoMetadata != "" && !json.Valid([]byte(*req.SeoMetadata)) {
		fieldErrors["seo_metadata"] = "SEO metadata must be valid JSON"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreatePage creates a new page.
func (h *Handler) CreatePage(w http.ResponseWriter, r *http.Request) {
	var req PageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if _, err := h.queries.GetPageBySlug(r.Context(), req.Slug); err == nil {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		WriteInternalError(w, "Failed to check slug")
		return
	}

	ts := h.timestamp()
	page, err := h.queries.CreatePage(r.Context(), store.CreatePageParams{
		ID:              uuid.NewString(),
		Slug:            req.Slug,
		Title:           req.Title,
		Excerpt:         util.NullStringFromPtr(req.Excerpt),
		Status:          req.Status,
		SeoTitle:        util.NullStringFromPtr(req.SeoTitle),
		SeoDescription:  util.NullStringFromPtr(req.SeoDescription),
		SeoMetadata:     util.NullStringFromPtr(req.SeoMetadata),
		FeaturedMediaID: util.NullStringFromPtr(req.FeaturedMediaID),
		CreatedAt:       ts,
		UpdatedAt:       ts,
	})
	if err != nil {
		h.logger.Error("failed to create page", "slug", req.Slug, "error", err)
		WriteInternalError(w, "Failed to create page")
		return
	}

	WriteCreated(w, storePageToResponse(page))
}

// ListPages returns all live pages for the admin UI.
func (h *Handler) ListPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListPages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list pages")
		return
	}

	resp := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		resp = append(resp, storePageToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetPage returns one page with all its sections, drafts included.
func (h *Handler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	sections, err := h.queries.ListSectionsForPage(r.Context(), page.ID)
	if err != nil {
		WriteInternalError(w, "Failed to list sections")
		return
	}

	type pageWithSections struct {
		PageResponse
		Sections []AdminSectionResponse `json:"sections"`
	}
	resp := pageWithSections{
		PageResponse: storePageToResponse(page),
		Sections:     make([]AdminSectionResponse, 0, len(sections)),
	}
	for _, s := range sections {
		resp.Sections = append(resp.Sections, storeSectionToAdminResponse(s))
	}
	WriteSuccess(w, resp, nil)
}

// UpdatePage updates an existing page.
func (h *Handler) UpdatePage(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req PageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	if req.Slug != page.Slug {
		if _, err := h.queries.GetPageBySlug(r.Context(), req.Slug); err == nil {
			WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
			return
		} else if !errors.Is(err, sql.ErrNoRows) {
			WriteInternalError(w, "Failed to check slug")
			return
		}
	}

	updated, err := h.queries.UpdatePage(r.Context(), store.UpdatePageParams{
		Slug:            req.Slug,
		Title:           req.Title,
		Excerpt:         util.NullStringFromPtr(req.Excerpt),
		Status:          req.Status,
		SeoTitle:        util.NullStringFromPtr(req.SeoTitle),
		SeoDescription:  util.NullStringFromPtr(req.SeoDescription),
		SeoMetadata:     util.NullStringFromPtr(req.SeoMetadata),
		FeaturedMediaID: util.NullStringFromPtr(req.FeaturedMediaID),
		UpdatedAt:       h.timestamp(),
		ID:              page.ID,
	})
	if err != nil {
		h.logger.Error("failed to update page", "id", page.ID, "error", err)
		WriteInternalError(w, "Failed to update page")
		return
	}

	h.invalidatePage(r.Context(), page.Slug)
	if updated.Slug != page.Slug {
		h.invalidatePage(r.Context(), updated.Slug)
	}
	WriteSuccess(w, storePageToResponse(updated), nil)
}

// TrashPage soft-deletes a page; it stays recoverable until purged.
func (h *Handler) TrashPage(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.pages.Trash(r.Context(), page.ID, h.timestamp()); err != nil {
		WriteInternalError(w, "Failed to delete page")
		return
	}

	h.invalidatePage(r.Context(), page.Slug)
	WriteJSON(w, http.StatusNoContent, nil)
}

// ListTrashedPages returns pages currently in the trash.
func (h *Handler) ListTrashedPages(w http.ResponseWriter, r *http.Request) {
	pages, err := h.queries.ListTrashedPages(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list trashed pages")
		return
	}

	resp := make([]PageResponse, 0, len(pages))
	for _, p := range pages {
		resp = append(resp, storePageToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// RestorePage brings a trashed page back.
func (h *Handler) RestorePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.pages.Restore(r.Context(), id, h.timestamp()); err != nil {
		WriteInternalError(w, "Failed to restore page")
		return
	}

	page, err := h.queries.GetPageByID(r.Context(), id)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Page not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve page")
		return
	}

	h.invalidatePage(r.Context(), page.Slug)
	WriteSuccess(w, storePageToResponse(page), nil)
}

// SectionRequest is the payload for upserting a section by key.
type SectionRequest struct {
	DisplayOrder int64           `json:"display_order"`
	Status       string          `json:"status"`
	Content      json.RawMessage `json:"content"`
}

// UpsertSection creates or replaces a section of a page, keyed by the
// section key. Keys are unique per page.
func (h *Handler) UpsertSection(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}
	key := chi.URLParam(r, "key")

	var req SectionRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	fieldErrors := map[string]string{}
	if req.Status == "" {
		req.Status = model.StatusDraft
	} else if !model.ValidContentStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft or published"
	}
	if len(req.Content) == 0 || !json.Valid(req.Content) {
		fieldErrors["content"] = "Content must be valid JSON"
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ts := h.timestamp()
	section, err := h.queries.UpsertPageSection(r.Context(), store.UpsertPageSectionParams{
		ID:           uuid.NewString(),
		PageID:       page.ID,
		Key:          key,
		DisplayOrder: req.DisplayOrder,
		Status:       req.Status,
		Content:      string(req.Content),
		CreatedAt:    ts,
		UpdatedAt:    ts,
	})
	if err != nil {
		h.logger.Error("failed to upsert section", "page", page.Slug, "key", key, "error", err)
		WriteInternalError(w, "Failed to save section")
		return
	}

	h.invalidatePage(r.Context(), page.Slug)
	WriteSuccess(w, storeSectionToAdminResponse(section), nil)
}

// ReorderSectionsRequest assigns new display positions to sections.
type ReorderSectionsRequest struct {
	Order []struct {
		ID           string `json:"id"`
		DisplayOrder int64  `json:"display_order"`
	} `json:"order"`
}

// ReorderSections updates the display order of a page's sections.
func (h *Handler) ReorderSections(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ReorderSectionsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	ts := h.timestamp()
	for _, item := range req.Order {
		if err := h.queries.UpdateSectionOrder(r.Context(), store.UpdateSectionOrderParams{
			DisplayOrder: item.DisplayOrder,
			UpdatedAt:    ts,
			ID:           item.ID,
		}); err != nil {
			WriteInternalError(w, "Failed to reorder sections")
			return
		}
	}

	h.invalidatePage(r.Context(), page.Slug)

	sections, err := h.queries.ListSectionsForPage(r.Context(), page.ID)
	if err != nil {
		WriteInternalError(w, "Failed to list sections")
		return
	}
	resp := make([]AdminSectionResponse, 0, len(sections))
	for _, s := range sections {
		resp = append(resp, storeSectionToAdminResponse(s))
	}
	WriteSuccess(w, resp, nil)
}

// DeleteSection permanently removes one section from a page.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	page, ok := requireEntityByID(w, r, "page", func(id string) (store.Page, error) {
		return h.queries.GetPageByID(r.Context(), id)
	})
	if !ok {
		return
	}

	key := chi.URLParam(r, "key")
	section, err := h.queries.GetPageSection(r.Context(), page.ID, key)
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "Section not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve section")
		return
	}

	if err := h.queries.DeletePageSection(r.Context(), section.ID); err != nil {
		WriteInternalError(w, "Failed to delete section")
		return
	}

	h.invalidatePage(r.Context(), page.Slug)
	WriteJSON(w, http.StatusNoContent, nil)
}

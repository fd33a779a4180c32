// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/middleware"
	"github.com/apeck-ke/apeck-cms/internal/model"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

const defaultNewsLimit = 20

// NewsPostResponse is the public and admin shape of a news post.
type NewsPostResponse struct {
	ID               string     `json:"id"`
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Excerpt          *string    `json:"excerpt,omitempty"`
	Body             *string    `json:"body,omitempty"`
	BodyHTML         string     `json:"body_html,omitempty"`
	Status           string     `json:"status"`
	PublishedAt      *time.Time `json:"published_at,omitempty"`
	HeroMediaID      *string    `json:"hero_media_id,omitempty"`
	HeroImageURL     *string    `json:"hero_image_url,omitempty"`
	ShowOnHome       bool       `json:"show_on_home"`
	HomeDisplayOrder int64      `json:"home_display_order"`
	ReadingTime      *string    `json:"reading_time,omitempty"`
}

func storeNewsPostToResponse(post store.NewsPost) NewsPostResponse {
	return NewsPostResponse{
		ID:               post.ID,
		Slug:             post.Slug,
		Title:            post.Title,
		Excerpt:          util.StringPtrFromNull(post.Excerpt),
		Body:             util.StringPtrFromNull(post.Body),
		Status:           post.Status,
		PublishedAt:      util.TimePtrFromNull(post.PublishedAt),
		HeroMediaID:      util.StringPtrFromNull(post.HeroMediaID),
		HeroImageURL:     util.StringPtrFromNull(post.HeroImageURL),
		ShowOnHome:       post.ShowOnHome,
		HomeDisplayOrder: post.HomeDisplayOrder,
		ReadingTime:      util.StringPtrFromNull(post.ReadingTime),
	}
}

func queryLimit(r *http.Request, fallback int64) int64 {
	raw := r.URL.Query().Get("limit")
	if raw == "" {
		return fallback
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || n < 1 || n > 100 {
		return fallback
	}
	return n
}

// ListPublishedNews returns published posts, newest first.
func (h *Handler) ListPublishedNews(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListPublishedNewsPosts(r.Context(), store.ListPublishedNewsPostsParams{
		Now:   h.timestamp(),
		Limit: queryLimit(r, defaultNewsLimit),
	})
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	resp := make([]NewsPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, storeNewsPostToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// ListHomeNews returns the posts pinned to the home feed.
func (h *Handler) ListHomeNews(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListHomeNewsPosts(r.Context(), store.ListPublishedNewsPostsParams{
		Now:   h.timestamp(),
		Limit: queryLimit(r, 6),
	})
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	resp := make([]NewsPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, storeNewsPostToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetPublishedNewsPost returns one published post by slug, with its body
// rendered to sanitized HTML.
func (h *Handler) GetPublishedNewsPost(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	post, err := h.queries.GetPublishedNewsPostBySlug(r.Context(), slug, h.timestamp())
	if errors.Is(err, sql.ErrNoRows) {
		WriteNotFound(w, "News post not found")
		return
	}
	if err != nil {
		WriteInternalError(w, "Failed to retrieve news post")
		return
	}

	resp := storeNewsPostToResponse(post)
	if post.Body.Valid {
		html, err := h.news.RenderBody(post.Body.String)
		if err != nil {
			h.logger.Error("failed to render news body", "slug", slug, "error", err)
		} else {
			resp.BodyHTML = html
		}
	}
	resp.Body = nil
	WriteSuccess(w, resp, nil)
}

// NewsPostRequest is the payload for creating or updating a news post.
type NewsPostRequest struct {
	Slug             string     `json:"slug"`
	Title            string     `json:"title"`
	Excerpt          *string    `json:"excerpt"`
	Body             *string    `json:"body"`
	Status           string     `json:"status"`
	PublishedAt      *time.Time `json:"published_at"`
	HeroMediaID      *string    `json:"hero_media_id"`
	HeroImageURL     *string    `json:"hero_image_url"`
	ShowOnHome       bool       `json:"show_on_home"`
	HomeDisplayOrder int64      `json:"home_display_order"`
}

func (req *NewsPostRequest) validate() map[string]string {
	fieldErrors := map[string]string{}
	if req.Title == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Status == "" {
		req.Status = model.StatusDraft
	} else if !model.ValidNewsStatus(req.Status) {
		fieldErrors["status"] = "Status must be draft, scheduled or published"
	}
	if req.Status == model.StatusScheduled && req.PublishedAt == nil {
		fieldErrors["published_at"] = "Scheduled posts need a publication time"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (h *Handler) newsReadingTime(body *string) sql.NullString {
	if body == nil || *body == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: h.news.EstimateReadingTime(*body), Valid: true}
}

// CreateNewsPost creates a news post. The slug is derived from the title
// when omitted and suffixed until unique.
func (h *Handler) CreateNewsPost(w http.ResponseWriter, r *http.Request) {
	var req NewsPostRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	base := req.Slug
	if base == "" {
		base = req.Title
	}
	slug, err := h.news.EnsureUniqueSlug(r.Context(), h.news.NormalizeSlug(base), "")
	if err != nil {
		WriteInternalError(w, "Failed to allocate slug")
		return
	}

	var authorID sql.NullString
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		authorID = sql.NullString{String: user.ID, Valid: true}
	}

	ts := h.timestamp()
	post, err := h.queries.CreateNewsPost(r.Context(), store.CreateNewsPostParams{
		ID:               uuid.NewString(),
		Slug:             slug,
		Title:            req.Title,
		Excerpt:          util.NullStringFromPtr(req.Excerpt),
		Body:             util.NullStringFromPtr(req.Body),
		Status:           req.Status,
		PublishedAt:      h.news.DeterminePublishedAt(req.Status, req.PublishedAt, ts),
		HeroMediaID:      util.NullStringFromPtr(req.HeroMediaID),
		AuthorID:         authorID,
		HeroImageURL:     util.NullStringFromPtr(req.HeroImageURL),
		ShowOnHome:       req.ShowOnHome,
		HomeDisplayOrder: req.HomeDisplayOrder,
		ReadingTime:      h.newsReadingTime(req.Body),
		CreatedAt:        ts,
		UpdatedAt:        ts,
	})
	if err != nil {
		h.logger.Error("failed to create news post", "slug", slug, "error", err)
		WriteInternalError(w, "Failed to create news post")
		return
	}

	WriteCreated(w, storeNewsPostToResponse(post))
}

// ListNewsPosts returns all posts for the admin UI, drafts included.
func (h *Handler) ListNewsPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.queries.ListNewsPosts(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list news")
		return
	}

	resp := make([]NewsPostResponse, 0, len(posts))
	for _, p := range posts {
		resp = append(resp, storeNewsPostToResponse(p))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetNewsPost returns one post by ID for editing.
func (h *Handler) GetNewsPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "news post", func(id string) (store.NewsPost, error) {
		return h.queries.GetNewsPostByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeNewsPostToResponse(post), nil)
}

// UpdateNewsPost updates an existing post.
func (h *Handler) UpdateNewsPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "news post", func(id string) (store.NewsPost, error) {
		return h.queries.GetNewsPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req NewsPostRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	slug := post.Slug
	if req.Slug != "" && req.Slug != post.Slug {
		var err error
		slug, err = h.news.EnsureUniqueSlug(r.Context(), h.news.NormalizeSlug(req.Slug), post.ID)
		if err != nil {
			WriteInternalError(w, "Failed to allocate slug")
			return
		}
	}

	ts := h.timestamp()
	publishedAt := h.news.DeterminePublishedAt(req.Status, req.PublishedAt, ts)
	if req.Status == model.StatusPublished && req.PublishedAt == nil && post.PublishedAt.Valid {
		publishedAt = post.PublishedAt
	}

	updated, err := h.queries.UpdateNewsPost(r.Context(), store.UpdateNewsPostParams{
		Slug:             slug,
		Title:            req.Title,
		Excerpt:          util.NullStringFromPtr(req.Excerpt),
		Body:             util.NullStringFromPtr(req.Body),
		Status:           req.Status,
		PublishedAt:      publishedAt,
		HeroMediaID:      util.NullStringFromPtr(req.HeroMediaID),
		HeroImageURL:     util.NullStringFromPtr(req.HeroImageURL),
		ShowOnHome:       req.ShowOnHome,
		HomeDisplayOrder: req.HomeDisplayOrder,
		ReadingTime:      h.newsReadingTime(req.Body),
		UpdatedAt:        ts,
		ID:               post.ID,
	})
	if err != nil {
		h.logger.Error("failed to update news post", "id", post.ID, "error", err)
		WriteInternalError(w, "Failed to update news post")
		return
	}

	WriteSuccess(w, storeNewsPostToResponse(updated), nil)
}

// DeleteNewsPost permanently removes a post.
func (h *Handler) DeleteNewsPost(w http.ResponseWriter, r *http.Request) {
	post, ok := requireEntityByID(w, r, "news post", func(id string) (store.NewsPost, error) {
		return h.queries.GetNewsPostByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteNewsPost(r.Context(), post.ID); err != nil {
		WriteInternalError(w, "Failed to delete news post")
		return
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/middleware"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/util"
)

// maxUploadSize caps media uploads at 20 MB.
const maxUploadSize = 20 << 20

// MediaAssetResponse is the JSON shape of a media asset.
type MediaAssetResponse struct {
	ID        string    `json:"id"`
	FileName  string    `json:"file_name"`
	URL       string    `json:"url"`
	AltText   *string   `json:"alt_text,omitempty"`
	MimeType  *string   `json:"mime_type,omitempty"`
	Width     *int64    `json:"width,omitempty"`
	Height    *int64    `json:"height,omitempty"`
	Category  *string   `json:"category,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func storeMediaToResponse(m store.MediaAsset) MediaAssetResponse {
	resp := MediaAssetResponse{
		ID:        m.ID,
		FileName:  m.FileName,
		URL:       m.URL,
		AltText:   util.StringPtrFromNull(m.AltText),
		MimeType:  util.StringPtrFromNull(m.MimeType),
		Category:  util.StringPtrFromNull(m.Category),
		CreatedAt: m.CreatedAt,
	}
	if m.Width.Valid {
		resp.Width = &m.Width.Int64
	}
	if m.Height.Valid {
		resp.Height = &m.Height.Int64
	}
	return resp
}

// UploadMedia accepts a multipart image upload, normalizes it and
// records the asset. The stored URL is relative so the front end can
// resolve it against its configured origin.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		WriteBadRequest(w, "Invalid multipart form", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	id := uuid.NewString()
	result, err := h.processor.ProcessImage(file, id, header.Filename)
	if err != nil {
		h.logger.Warn("rejected media upload", "filename", header.Filename, "error", err)
		WriteBadRequest(w, "Unsupported or corrupt image", nil)
		return
	}

	var createdBy sql.NullString
	if user, ok := middleware.UserFromContext(r.Context()); ok {
		createdBy = sql.NullString{String: user.ID, Valid: true}
	}

	altText := r.FormValue("alt_text")
	category := r.FormValue("category")

	ts := h.timestamp()
	asset, err := h.queries.CreateMediaAsset(r.Context(), store.CreateMediaAssetParams{
		ID:        id,
		FileName:  header.Filename,
		URL:       "/uploads/media/" + id + "/" + header.Filename,
		AltText:   util.NullStringFromValue(altText),
		MimeType:  sql.NullString{String: result.MimeType, Valid: true},
		Width:     sql.NullInt64{Int64: int64(result.Width), Valid: true},
		Height:    sql.NullInt64{Int64: int64(result.Height), Valid: true},
		Category:  util.NullStringFromValue(category),
		CreatedBy: createdBy,
		CreatedAt: ts,
		UpdatedAt: ts,
	})
	if err != nil {
		_ = h.processor.DeleteMediaFiles(id)
		h.logger.Error("failed to record media asset", "id", id, "error", err)
		WriteInternalError(w, "Failed to save media asset")
		return
	}

	WriteCreated(w, storeMediaToResponse(asset))
}

// ListMedia returns assets, optionally filtered by ?category=.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	assets, err := h.queries.ListMediaAssets(r.Context(),
		util.NullStringFromValue(r.URL.Query().Get("category")))
	if err != nil {
		WriteInternalError(w, "Failed to list media")
		return
	}

	resp := make([]MediaAssetResponse, 0, len(assets))
	for _, m := range assets {
		resp = append(resp, storeMediaToResponse(m))
	}
	WriteSuccess(w, resp, &Meta{Total: int64(len(resp))})
}

// GetMedia returns one asset by ID.
func (h *Handler) GetMedia(w http.ResponseWriter, r *http.Request) {
	asset, ok := requireEntityByID(w, r, "media asset", func(id string) (store.MediaAsset, error) {
		return h.queries.GetMediaAssetByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, storeMediaToResponse(asset), nil)
}

// MediaUpdateRequest updates the editable asset metadata.
type MediaUpdateRequest struct {
	AltText  *string `json:"alt_text"`
	Category *string `json:"category"`
}

// UpdateMedia updates asset metadata.
func (h *Handler) UpdateMedia(w http.ResponseWriter, r *http.Request) {
	asset, ok := requireEntityByID(w, r, "media asset", func(id string) (store.MediaAsset, error) {
		return h.queries.GetMediaAssetByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req MediaUpdateRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated, err := h.queries.UpdateMediaAsset(r.Context(), store.UpdateMediaAssetParams{
		AltText:   util.NullStringFromPtr(req.AltText),
		Category:  util.NullStringFromPtr(req.Category),
		UpdatedAt: h.timestamp(),
		ID:        asset.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to update media asset")
		return
	}
	WriteSuccess(w, storeMediaToResponse(updated), nil)
}

// DeleteMedia removes an asset record and its stored files.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	asset, ok := requireEntityByID(w, r, "media asset", func(id string) (store.MediaAsset, error) {
		return h.queries.GetMediaAssetByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteMediaAsset(r.Context(), asset.ID); err != nil {
		WriteInternalError(w, "Failed to delete media asset")
		return
	}
	if err := h.processor.DeleteMediaFiles(asset.ID); err != nil {
		h.logger.Warn("failed to delete media files", "id", asset.ID, "error", err)
	}
	WriteJSON(w, http.StatusNoContent, nil)
}

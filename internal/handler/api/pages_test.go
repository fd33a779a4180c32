// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeck-ke/apeck-cms/internal/store"
)

func (e *testEnv) seedPage(t *testing.T, slug, status string) store.Page {
	t.Helper()
	now := time.Now().UTC()
	page, err := e.queries.CreatePage(context.Background(), store.CreatePageParams{
		ID:        uuid.NewString(),
		Slug:      slug,
		Title:     "Test " + slug,
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return page
}

func (e *testEnv) seedSection(t *testing.T, pageID, key string, order int64, status, content string) store.PageSection {
	t.Helper()
	now := time.Now().UTC()
	section, err := e.queries.UpsertPageSection(context.Background(), store.UpsertPageSectionParams{
		ID:           uuid.NewString(),
		PageID:       pageID,
		Key:          key,
		DisplayOrder: order,
		Status:       status,
		Content:      content,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return section
}

func decodePageView(t *testing.T, body []byte) PageViewResponse {
	t.Helper()
	var resp struct {
		Data PageViewResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &resp))
	return resp.Data
}

func TestGetPageBySlugOrdersSections(t *testing.T) {
	env := newTestEnv(t)

	page := env.seedPage(t, "home", "published")
	env.seedSection(t, page.ID, "cta", 2, "published", `{"title":"Join"}`)
	env.seedSection(t, page.ID, "hero", 0, "published", `{"title":"Welcome"}`)
	env.seedSection(t, page.ID, "who_we_are", 1, "published", `{"title":"About"}`)
	env.seedSection(t, page.ID, "hidden", 3, "draft", `{}`)

	rec := env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodePageView(t, rec.Body.Bytes())
	assert.Equal(t, "home", view.Slug)

	keys := make([]string, 0, len(view.Sections))
	for _, s := range view.Sections {
		keys = append(keys, s.Key)
	}
	assert.Equal(t, []string{"hero", "who_we_are", "cta"}, keys)
}

func TestGetPageBySlugNotFound(t *testing.T) {
	env := newTestEnv(t)

	env.seedPage(t, "drafted", "draft")
	trashed := env.seedPage(t, "trashed", "published")
	require.NoError(t, env.queries.SoftDeletePage(context.Background(), trashed.ID, time.Now()))

	for _, slug := range []string{"drafted", "trashed", "missing"} {
		rec := env.request(t, http.MethodGet, "/api/pages/"+slug, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, "slug %q", slug)
	}
}

func TestGetPageBySlugEmptySections(t *testing.T) {
	env := newTestEnv(t)
	env.seedPage(t, "bare", "published")

	rec := env.request(t, http.MethodGet, "/api/pages/bare", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodePageView(t, rec.Body.Bytes())
	assert.Empty(t, view.Sections)
}

func TestUpsertSectionInvalidatesCache(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")

	page := env.seedPage(t, "home", "published")
	env.seedSection(t, page.ID, "hero", 0, "published", `{"title":"Old"}`)

	// First read populates the cache
	rec := env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodPut, "/api/admin/pages/"+page.ID+"/sections/hero", token, map[string]any{
		"display_order": 0,
		"status":        "published",
		"content":       map[string]any{"title": "New"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	view := decodePageView(t, rec.Body.Bytes())
	require.Len(t, view.Sections, 1)

	var content map[string]any
	require.NoError(t, json.Unmarshal(view.Sections[0].Content, &content))
	assert.Equal(t, "New", content["title"], "stale cached content served after section write")
}

func TestTrashPageHidesPublicView(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")

	page := env.seedPage(t, "home", "published")
	env.seedSection(t, page.ID, "hero", 0, "published", `{}`)

	rec := env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodDelete, "/api/admin/pages/"+page.ID, token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// And back again via restore
	rec = env.request(t, http.MethodPost, "/api/admin/pages/"+page.ID+"/restore", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/pages/home", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestCreatePageValidation(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"missing title", map[string]any{"slug": "valid-slug"}},
		{"missing slug", map[string]any{"title": "Valid Title"}},
		{"bad slug", map[string]any{"title": "Valid Title", "slug": "Not A Slug"}},
		{"bad status", map[string]any{"title": "Valid Title", "slug": "valid-slug", "status": "archived"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/admin/pages", token, tt.body)
			assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
		})
	}
}

func TestCreatePageDuplicateSlug(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")
	env.seedPage(t, "home", "published")

	rec := env.request(t, http.MethodPost, "/api/admin/pages", token, map[string]any{
		"title": "Another Home",
		"slug":  "home",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestReorderSections(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")

	page := env.seedPage(t, "home", "published")
	first := env.seedSection(t, page.ID, "hero", 0, "published", `{}`)
	second := env.seedSection(t, page.ID, "cta", 1, "published", `{}`)

	rec := env.request(t, http.MethodPost, "/api/admin/pages/"+page.ID+"/sections/reorder", token, map[string]any{
		"order": []map[string]any{
			{"id": second.ID, "display_order": 0},
			{"id": first.ID, "display_order": 1},
		},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	view := decodePageView(t, env.request(t, http.MethodGet, "/api/pages/home", "", nil).Body.Bytes())
	require.Len(t, view.Sections, 2)
	assert.Equal(t, "cta", view.Sections[0].Key)
	assert.Equal(t, "hero", view.Sections[1].Key)
}

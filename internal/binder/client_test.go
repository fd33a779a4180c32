// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package binder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/apeck-ke/apeck-cms/internal/testutil"
)

func TestPageViewMergesFetchedContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/pages/home" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"slug": "home",
				"title": "Home",
				"sections": [
					{"key": "cta", "content": {"title": "Stand With Us"}},
					{"key": "announcement", "content": {"text": "AGM moved to Saturday"}}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testutil.TestLogger())
	view, err := client.PageView(context.Background(), "home")
	require.NoError(t, err)

	assert.Equal(t, "home", view.Slug)
	assert.Equal(t, "Home", view.Title)
	assert.False(t, view.Degraded)

	keys, _ := SectionKeys("home")
	require.GreaterOrEqual(t, len(view.Sections), len(keys))
	for i, key := range keys {
		assert.Equal(t, key, view.Sections[i].Key, "registered sections keep registry order")
	}

	byKey := map[string]map[string]any{}
	for _, s := range view.Sections {
		byKey[s.Key] = s.Content
	}
	assert.Equal(t, "Stand With Us", byKey["cta"]["title"], "fetched value wins")
	assert.NotEmpty(t, byKey["hero_slides"]["slides"], "unfetched section falls back to defaults")
	assert.Equal(t, "AGM moved to Saturday", byKey["announcement"]["text"], "extra sections pass through")
}

func TestPageViewDegradesOnServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testutil.TestLogger())
	view, err := client.PageView(context.Background(), "about")
	require.NoError(t, err)

	assert.True(t, view.Degraded)
	keys, _ := SectionKeys("about")
	require.Len(t, view.Sections, len(keys))
	for i, key := range keys {
		assert.Equal(t, key, view.Sections[i].Key)
		assert.NotEmpty(t, view.Sections[i].Content)
	}
}

func TestPageViewDegradesOnUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewClient(srv.URL, testutil.TestLogger())
	view, err := client.PageView(context.Background(), "gallery")
	require.NoError(t, err)
	assert.True(t, view.Degraded)
	assert.NotEmpty(t, view.Sections)
}

func TestPageViewMalformedSectionContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"data": {
				"slug": "home",
				"title": "Home",
				"sections": [
					{"key": "cta", "content": "not an object"},
					{"key": "who_we_are", "content": {"title": "Who We Are Today"}}
				]
			}
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, testutil.TestLogger())
	view, err := client.PageView(context.Background(), "home")
	require.NoError(t, err)

	assert.True(t, view.Degraded, "malformed section marks the view degraded")
	byKey := map[string]map[string]any{}
	for _, s := range view.Sections {
		byKey[s.Key] = s.Content
	}
	assert.NotEmpty(t, byKey["cta"], "malformed section still renders from defaults")
	assert.Equal(t, "Who We Are Today", byKey["who_we_are"]["title"], "healthy sections still bind")
}

func TestPageViewUnknownSlug(t *testing.T) {
	client := NewClient("http://localhost:0", testutil.TestLogger())
	_, err := client.PageView(context.Background(), "no-such-page")
	require.Error(t, err)
}

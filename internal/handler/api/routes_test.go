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

func createRoute(t *testing.T, env *testEnv, slug string, active bool) store.Route {
	t.Helper()
	now := time.Now().UTC()
	route, err := env.queries.CreateRoute(context.Background(), store.CreateRouteParams{
		ID:        uuid.NewString(),
		Slug:      slug,
		Target:    "https://example.org/" + slug,
		IsActive:  active,
		CreatedAt: now,
		UpdatedAt: now,
	})
	require.NoError(t, err)
	return route
}

func TestGetActiveRoute(t *testing.T) {
	env := newTestEnv(t)
	createRoute(t, env, "constitution", true)
	createRoute(t, env, "retired-form", false)

	rec := env.request(t, http.MethodGet, "/api/routes/constitution", "", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp struct {
		Data RouteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "constitution", resp.Data.Slug)
	assert.Equal(t, "https://example.org/constitution", resp.Data.Target)

	// Inactive and unknown slugs are both plain 404s
	for _, slug := range []string{"retired-form", "missing"} {
		rec := env.request(t, http.MethodGet, "/api/routes/"+slug, "", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code, slug)
	}
}

func TestListActiveRoutesSkipsInactive(t *testing.T) {
	env := newTestEnv(t)
	createRoute(t, env, "constitution", true)
	createRoute(t, env, "retired-form", false)

	rec := env.request(t, http.MethodGet, "/api/routes", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data []RouteResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "constitution", resp.Data[0].Slug)
}

// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/cache"
	"github.com/apeck-ke/apeck-cms/internal/config"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/testutil"
)

const testAdminPassword = "correct horse battery staple"

type testEnv struct {
	db      *sql.DB
	queries *store.Queries
	handler *Handler
	router  chi.Router
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	cfg := &config.Config{
		Env:             "test",
		UploadsDir:      t.TempDir(),
		PublicBaseURL:   "http://localhost:8080",
		AllowedOrigins:  []string{"http://localhost:5173"},
		SessionTTLHours: 168,
		ResetTTLMinutes: 30,
		RateLimitRPS:    1000,
		RateLimitBurst:  1000,
	}

	contentCache := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = contentCache.Close() })

	h := NewHandler(db, cfg, testutil.TestLogger(), contentCache)
	return &testEnv{
		db:      db,
		queries: store.New(db),
		handler: h,
		router:  h.Router(),
	}
}

// seedAdmin creates an active user and returns its store row.
func (e *testEnv) seedAdmin(t *testing.T, email, role string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(testAdminPassword)
	require.NoError(t, err)

	now := time.Now().UTC()
	user, err := e.queries.CreateUser(context.Background(), store.CreateUserParams{
		ID:           uuid.NewString(),
		FirstName:    "Grace",
		LastName:     "Wanjiru",
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)
	return user
}

// login authenticates through the API and returns the bearer token.
func (e *testEnv) login(t *testing.T, email string) string {
	t.Helper()

	rec := e.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    email,
		"password": testAdminPassword,
	})
	require.Equal(t, http.StatusOK, rec.Code, "login failed: %s", rec.Body.String())

	var resp struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

// request performs an API call through the full router.
func (e *testEnv) request(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Data HealthResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "ok", resp.Data.Status)
}

func TestAdminRequiresAuth(t *testing.T) {
	env := newTestEnv(t)

	rec := env.request(t, http.MethodGet, "/api/admin/pages", "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

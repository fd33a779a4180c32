// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/argon2"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

func TestLoginBadCredentials(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")

	tests := []struct {
		name string
		body map[string]any
	}{
		{"wrong password", map[string]any{"email": "editor@apeck.org", "password": "wrong"}},
		{"unknown email", map[string]any{"email": "nobody@apeck.org", "password": testAdminPassword}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := env.request(t, http.MethodPost, "/api/auth/login", "", tt.body)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestLoginNormalizesEmail(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")

	rec := env.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "  Editor@APECK.org ",
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestLoginUpgradesLegacyHash(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	// Hash created with older, heavier parameters
	salt := make([]byte, 16)
	_, err := rand.Read(salt)
	require.NoError(t, err)
	key := argon2.IDKey([]byte(testAdminPassword), salt, 1, 64*1024, 4, 32)
	legacy := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, 64*1024, 1, 4,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
	require.True(t, auth.NeedsRehash(legacy))

	now := time.Now().UTC()
	user, err := env.queries.CreateUser(ctx, store.CreateUserParams{
		ID:           uuid.NewString(),
		FirstName:    "Legacy",
		LastName:     "User",
		Email:        "legacy@apeck.org",
		PasswordHash: legacy,
		Role:         "editor",
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	require.NoError(t, err)

	env.login(t, "legacy@apeck.org")

	got, err := env.queries.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, legacy, got.PasswordHash)
	assert.False(t, auth.NeedsRehash(got.PasswordHash))

	// The upgraded hash still verifies, so the next login works too
	env.login(t, "legacy@apeck.org")
}

func TestSessionLifecycle(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")

	// Token grants access to the admin surface
	rec := env.request(t, http.MethodGet, "/api/admin/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var me struct {
		Data UserResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "editor@apeck.org", me.Data.Email)

	// Refresh rotates the token and kills the old one
	rec = env.request(t, http.MethodPost, "/api/auth/refresh", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var refreshed struct {
		Data SessionResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &refreshed))
	require.NotEmpty(t, refreshed.Data.Token)
	assert.NotEqual(t, token, refreshed.Data.Token)

	rec = env.request(t, http.MethodGet, "/api/admin/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code, "rotated-out token still accepted")

	token = refreshed.Data.Token
	rec = env.request(t, http.MethodGet, "/api/admin/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	// Logout ends the session
	rec = env.request(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestChangePasswordRevokesSessions(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	token := env.login(t, "editor@apeck.org")
	otherToken := env.login(t, "editor@apeck.org")

	rec := env.request(t, http.MethodPost, "/api/admin/me/password", token, map[string]any{
		"current_password": testAdminPassword,
		"new_password":     "a brand new passphrase",
	})
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	for _, tok := range []string{token, otherToken} {
		rec = env.request(t, http.MethodGet, "/api/admin/me", tok, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	}

	// Old password no longer works, new one does
	rec = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "editor@apeck.org",
		"password": testAdminPassword,
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.request(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "editor@apeck.org",
		"password": "a brand new passphrase",
	})
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUserRoutesAdminOnly(t *testing.T) {
	env := newTestEnv(t)
	env.seedAdmin(t, "editor@apeck.org", "editor")
	env.seedAdmin(t, "admin@apeck.org", "admin")

	editorToken := env.login(t, "editor@apeck.org")
	adminToken := env.login(t, "admin@apeck.org")

	rec := env.request(t, http.MethodGet, "/api/admin/users", editorToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = env.request(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

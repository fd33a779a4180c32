// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package model defines the closed value sets shared by the store,
// handlers and services. The database enforces the same sets with
// CHECK constraints.
package model

// User roles.
const (
	RoleAdmin  = "admin"
	RoleEditor = "editor"
	RoleViewer = "viewer"
)

// ValidRole reports whether s is a known role.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleEditor || s == RoleViewer
}

// CanWriteContent reports whether a role may create or modify content.
func CanWriteContent(role string) bool {
	return role == RoleAdmin || role == RoleEditor
}

// Content statuses for pages, sections, events, programs and plans.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
)

// StatusScheduled applies to news posts only: the post becomes visible
// once its publication time arrives.
const StatusScheduled = "scheduled"

// ValidContentStatus reports whether s is draft or published.
func ValidContentStatus(s string) bool {
	return s == StatusDraft || s == StatusPublished
}

// ValidNewsStatus reports whether s is a valid news post status.
func ValidNewsStatus(s string) bool {
	return s == StatusDraft || s == StatusScheduled || s == StatusPublished
}

// Membership application statuses.
const (
	ApplicationPending   = "pending"
	ApplicationApproved  = "approved"
	ApplicationRejected  = "rejected"
	ApplicationCompleted = "completed"
)

// ValidApplicationStatus reports whether s is a known application status.
func ValidApplicationStatus(s string) bool {
	switch s {
	case ApplicationPending, ApplicationApproved, ApplicationRejected, ApplicationCompleted:
		return true
	}
	return false
}

// Email recipient types.
const (
	RecipientMembership = "membership"
	RecipientGeneral    = "general"
)

// ValidRecipientType reports whether s is a known recipient type.
func ValidRecipientType(s string) bool {
	return s == RecipientMembership || s == RecipientGeneral
}

// Content setting keys.
const (
	SettingTrashRetentionDays = "trashRetentionDays"
)

// DefaultTrashRetentionDays is how long trashed pages are kept before
// the scheduler purges them, unless overridden in content_settings.
const DefaultTrashRetentionDays = 30

// Supported image MIME types for media uploads.
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
)

// IsSupportedMimeType reports whether a MIME type may be uploaded.
func IsSupportedMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	}
	return false
}

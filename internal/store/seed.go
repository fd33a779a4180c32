// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/apeck-ke/apeck-cms/internal/auth"
	"github.com/apeck-ke/apeck-cms/internal/model"
)

// Default admin credentials
const (
	DefaultAdminEmail     = "admin@apeck.org"
	DefaultAdminPassword  = "changeme"
	DefaultAdminFirstName = "Site"
	DefaultAdminLastName  = "Admin"
)

// seedPage describes a core page and the section keys it carries.
type seedPage struct {
	slug     string
	title    string
	sections []string
}

// Core pages created on first run. Section content starts as an empty
// object; the front end falls back to its defaults until editors fill
// the sections in.
var seedPages = []seedPage{
	{"home", "Home", []string{
		"hero_slides", "who_we_are", "impact_stats", "programs",
		"testimonials", "news_updates", "cta",
	}},
	{"about", "About Us", []string{
		"about_hero", "about_story", "about_mission_vision",
		"about_values", "about_leadership",
	}},
	{"programs", "Programs", []string{
		"programs_hero", "programs_intro", "programs_cbr",
		"programs_aftercare", "programs_initiatives",
		"programs_features", "programs_cta",
	}},
	{"gallery", "Gallery", []string{
		"gallery_hero", "gallery_items", "gallery_impact_stats",
	}},
}

// Seed creates initial data in the database: the default admin user,
// the core pages with published sections, and the membership plans.
func Seed(ctx context.Context, db *sql.DB) error {
	queries := New(db)
	now := time.Now()

	if err := seedAdmin(ctx, queries, now); err != nil {
		return err
	}
	if err := seedContent(ctx, queries, now); err != nil {
		return err
	}
	return seedPlans(ctx, queries, now)
}

func seedAdmin(ctx context.Context, queries *Queries, now time.Time) error {
	_, err := queries.GetUserByEmail(ctx, DefaultAdminEmail)
	if err == nil {
		slog.Info("admin user already exists, skipping seed")
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("checking for admin user: %w", err)
	}

	passwordHash, err := auth.HashPassword(DefaultAdminPassword)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}

	user, err := queries.CreateUser(ctx, CreateUserParams{
		ID:           uuid.NewString(),
		FirstName:    DefaultAdminFirstName,
		LastName:     DefaultAdminLastName,
		Email:        DefaultAdminEmail,
		PasswordHash: passwordHash,
		Role:         model.RoleAdmin,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return fmt.Errorf("creating admin user: %w", err)
	}

	slog.Info("created default admin user",
		"id", user.ID,
		"email", user.Email,
		"password", DefaultAdminPassword,
	)
	return nil
}

func seedContent(ctx context.Context, queries *Queries, now time.Time) error {
	for _, sp := range seedPages {
		page, err := queries.GetPageBySlug(ctx, sp.slug)
		if errors.Is(err, sql.ErrNoRows) {
			page, err = queries.CreatePage(ctx, CreatePageParams{
				ID:        uuid.NewString(),
				Slug:      sp.slug,
				Title:     sp.title,
				Status:    model.StatusPublished,
				CreatedAt: now,
				UpdatedAt: now,
			})
			if err != nil {
				return fmt.Errorf("creating page %q: %w", sp.slug, err)
			}
			slog.Info("created core page", "slug", page.Slug)
		} else if err != nil {
			return fmt.Errorf("checking page %q: %w", sp.slug, err)
		}

		for i, key := range sp.sections {
			if _, err := queries.GetPageSection(ctx, page.ID, key); err == nil {
				continue
			} else if !errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("checking section %q of %q: %w", key, sp.slug, err)
			}

			if _, err := queries.UpsertPageSection(ctx, UpsertPageSectionParams{
				ID:           uuid.NewString(),
				PageID:       page.ID,
				Key:          key,
				DisplayOrder: int64(i),
				Status:       model.StatusPublished,
				Content:      "{}",
				CreatedAt:    now,
				UpdatedAt:    now,
			}); err != nil {
				return fmt.Errorf("creating section %q of %q: %w", key, sp.slug, err)
			}
		}
	}
	return nil
}

func seedPlans(ctx context.Context, queries *Queries, now time.Time) error {
	plans := []CreateMembershipPlanParams{
		{
			Name:      "Individual Member",
			Slug:      "individual-member",
			FeeAmount: 1000,
			Currency:  "KES",
			Benefits:  sql.NullString{String: `["APECK membership certificate","Clergy network access","Annual convention invitation"]`, Valid: true},
			Status:    model.StatusPublished,
		},
		{
			Name:      "Corporate Member",
			Slug:      "corporate-member",
			FeeAmount: 5000,
			Currency:  "KES",
			Benefits:  sql.NullString{String: `["Organizational certificate","Delegate slots at conventions","Leadership training access"]`, Valid: true},
			Status:    model.StatusPublished,
		},
	}

	for _, plan := range plans {
		if _, err := queries.GetMembershipPlanBySlug(ctx, plan.Slug); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("checking plan %q: %w", plan.Slug, err)
		}

		plan.ID = uuid.NewString()
		plan.CreatedAt = now
		plan.UpdatedAt = now
		if _, err := queries.CreateMembershipPlan(ctx, plan); err != nil {
			return fmt.Errorf("creating plan %q: %w", plan.Slug, err)
		}
		slog.Info("created membership plan", "slug", plan.Slug)
	}
	return nil
}

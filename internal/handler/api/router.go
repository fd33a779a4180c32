// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/apeck-ke/apeck-cms/internal/middleware"
	"github.com/apeck-ke/apeck-cms/internal/model"
)

// Router builds the full route tree: public content endpoints rate
// limited and open, admin endpoints behind bearer session auth.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.CORS(h.cfg.AllowedOrigins))

	sessionAuth := middleware.NewSessionAuth(h.queries, h.logger)
	publicLimit := middleware.RateLimit(h.cfg.RateLimitRPS, h.cfg.RateLimitBurst)

	r.Get("/api/health", h.Health)

	// Public content surface
	r.Group(func(r chi.Router) {
		r.Use(publicLimit)

		r.Get("/api/pages/{slug}", h.GetPageBySlug)
		r.Get("/api/routes", h.ListActiveRoutes)
		r.Get("/api/routes/{slug}", h.GetActiveRoute)

		r.Get("/api/news", h.ListPublishedNews)
		r.Get("/api/news/home", h.ListHomeNews)
		r.Get("/api/news/{slug}", h.GetPublishedNewsPost)

		r.Get("/api/events", h.ListPublishedEvents)
		r.Get("/api/events/{slug}", h.GetPublishedEvent)

		r.Get("/api/programs", h.ListPublishedPrograms)
		r.Get("/api/programs/{slug}", h.GetPublishedProgram)

		r.Get("/api/membership/plans", h.ListPublishedMembershipPlans)
		r.Post("/api/membership/applications", h.SubmitMembershipApplication)

		r.Post("/api/auth/login", h.Login)
		r.Post("/api/auth/refresh", h.Refresh)
		r.Post("/api/auth/logout", h.Logout)
		r.Post("/api/auth/reset/request", h.RequestPasswordReset)
		r.Post("/api/auth/reset/confirm", h.ConfirmPasswordReset)
	})

	// Uploaded media files
	uploads := http.StripPrefix("/uploads/",
		http.FileServer(http.Dir(h.cfg.UploadsDir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	// Admin surface: authenticated, content writes need editor or admin
	r.Route("/api/admin", func(r chi.Router) {
		r.Use(sessionAuth.Require)

		r.Get("/me", h.Me)
		r.Post("/me/password", h.ChangePassword)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireContentWriter)

			r.Get("/pages", h.ListPages)
			r.Post("/pages", h.CreatePage)
			r.Get("/pages/trash", h.ListTrashedPages)
			r.Get("/pages/{id}", h.GetPage)
			r.Put("/pages/{id}", h.UpdatePage)
			r.Delete("/pages/{id}", h.TrashPage)
			r.Post("/pages/{id}/restore", h.RestorePage)
			r.Put("/pages/{id}/sections/{key}", h.UpsertSection)
			r.Delete("/pages/{id}/sections/{key}", h.DeleteSection)
			r.Post("/pages/{id}/sections/reorder", h.ReorderSections)

			r.Get("/news", h.ListNewsPosts)
			r.Post("/news", h.CreateNewsPost)
			r.Get("/news/{id}", h.GetNewsPost)
			r.Put("/news/{id}", h.UpdateNewsPost)
			r.Delete("/news/{id}", h.DeleteNewsPost)

			r.Get("/events", h.ListEvents)
			r.Post("/events", h.CreateEvent)
			r.Put("/events/{id}", h.UpdateEvent)
			r.Delete("/events/{id}", h.DeleteEvent)

			r.Get("/programs", h.ListPrograms)
			r.Post("/programs", h.CreateProgram)
			r.Put("/programs/{id}", h.UpdateProgram)
			r.Delete("/programs/{id}", h.DeleteProgram)

			r.Get("/media", h.ListMedia)
			r.Post("/media", h.UploadMedia)
			r.Get("/media/{id}", h.GetMedia)
			r.Put("/media/{id}", h.UpdateMedia)
			r.Delete("/media/{id}", h.DeleteMedia)

			r.Get("/routes", h.ListRoutes)
			r.Post("/routes", h.CreateRoute)
			r.Put("/routes/{id}", h.UpdateRoute)
			r.Delete("/routes/{id}", h.DeleteRoute)

			r.Get("/membership/plans", h.ListMembershipPlans)
			r.Post("/membership/plans", h.CreateMembershipPlan)
			r.Put("/membership/plans/{id}", h.UpdateMembershipPlan)
			r.Delete("/membership/plans/{id}", h.DeleteMembershipPlan)

			r.Get("/membership/applications", h.ListMembershipApplications)
			r.Get("/membership/applications/{id}", h.GetMembershipApplication)
			r.Put("/membership/applications/{id}/status", h.UpdateMembershipApplicationStatus)

			r.Get("/recipients", h.ListEmailRecipients)
			r.Post("/recipients", h.CreateEmailRecipient)
			r.Put("/recipients/{id}", h.UpdateEmailRecipient)
			r.Delete("/recipients/{id}", h.DeleteEmailRecipient)

			r.Get("/settings", h.ListSettings)
			r.Get("/settings/trash-retention", h.GetTrashRetention)
			r.Put("/settings/trash-retention", h.SetTrashRetention)
		})

		// User management is admin only
		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRole(model.RoleAdmin))

			r.Get("/users", h.ListUsers)
			r.Post("/users", h.CreateUser)
			r.Get("/users/{id}", h.GetUser)
			r.Put("/users/{id}", h.UpdateUser)
			r.Delete("/users/{id}", h.DeleteUser)
		})
	})

	return r
}

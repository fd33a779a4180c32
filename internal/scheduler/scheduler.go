// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background maintenance jobs: publishing
// scheduled news, purging trashed pages and expiring credentials.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/apeck-ke/apeck-cms/internal/service"
	"github.com/apeck-ke/apeck-cms/internal/store"
)

// jobTimeout bounds each scheduled run.
const jobTimeout = 2 * time.Minute

// Scheduler owns the cron instance and its jobs.
type Scheduler struct {
	cron     *cron.Cron
	queries  *store.Queries
	news     *service.NewsService
	pages    *service.PagesService
	settings *service.SettingsService
	logger   *slog.Logger
}

// New creates a scheduler over the given services.
func New(queries *store.Queries, news *service.NewsService, pages *service.PagesService, settings *service.SettingsService, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		queries:  queries,
		news:     news,
		pages:    pages,
		settings: settings,
		logger:   logger,
	}
}

// Start registers the jobs and starts the cron loop.
func (s *Scheduler) Start() {
	// Promote scheduled news every minute
	_, _ = s.cron.AddFunc("* * * * *", s.publishDueNews)

	// Purge trashed pages past retention, daily at 02:10
	_, _ = s.cron.AddFunc("10 2 * * *", s.purgeTrash)

	// Expire sessions and reset codes, hourly
	_, _ = s.cron.AddFunc("0 * * * *", s.expireCredentials)

	s.cron.Start()
	s.logger.Info("scheduler started")
}

// Stop stops the cron loop and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) publishDueNews() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	published, err := s.news.PublishDue(ctx, time.Now().UTC())
	if err != nil {
		s.logger.Error("scheduled news publishing failed", "error", err)
		return
	}
	if published > 0 {
		s.logger.Info("published scheduled news posts", "count", published)
	}
}

func (s *Scheduler) purgeTrash() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	days, err := s.settings.TrashRetentionDays(ctx)
	if err != nil {
		s.logger.Error("reading trash retention failed", "error", err)
		return
	}

	purged, err := s.pages.PurgeTrashedOlderThan(ctx, days, time.Now().UTC())
	if err != nil {
		s.logger.Error("trash purge failed", "error", err)
		return
	}
	if purged > 0 {
		s.logger.Info("purged trashed pages", "count", purged, "retention_days", days)
	}
}

func (s *Scheduler) expireCredentials() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	now := time.Now().UTC()
	sessions, err := s.queries.DeleteExpiredUserSessions(ctx, now)
	if err != nil {
		s.logger.Error("session cleanup failed", "error", err)
	} else if sessions > 0 {
		s.logger.Info("removed expired sessions", "count", sessions)
	}

	tokens, err := s.queries.DeleteExpiredPasswordResetTokens(ctx, now)
	if err != nil {
		s.logger.Error("reset token cleanup failed", "error", err)
	} else if tokens > 0 {
		s.logger.Info("removed expired reset tokens", "count", tokens)
	}
}

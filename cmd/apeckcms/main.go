// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/apeck-ke/apeck-cms/internal/cache"
	"github.com/apeck-ke/apeck-cms/internal/config"
	"github.com/apeck-ke/apeck-cms/internal/handler/api"
	"github.com/apeck-ke/apeck-cms/internal/scheduler"
	"github.com/apeck-ke/apeck-cms/internal/service"
	"github.com/apeck-ke/apeck-cms/internal/store"
	"github.com/apeck-ke/apeck-cms/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "APECK CMS - content API for the APECK website\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_DB_PATH            SQLite database path (default: ./data/apeck.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_SERVER_PORT        Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_ENV                Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_PUBLIC_BASE_URL    Externally visible origin of this API\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_ALLOWED_ORIGINS    Comma-separated CORS origins\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_REDIS_URL          Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  APECK_DO_SEED            Seed default content on startup (default: false)\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Printf("apeckcms %s (commit: %s, built: %s)\n", appVersion, appGitCommit, appBuildTime)
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := &version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	slog.Info("starting apeckcms", "version", versionInfo.Version, "commit", versionInfo.GitCommit)

	// Ensure data and uploads directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	ctx := context.Background()
	if cfg.DoSeed {
		if err := store.Seed(ctx, db); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
		slog.Info("seed data applied")
	}

	contentCache := cache.NewFromOptions(cache.Options{
		RedisURL: cfg.RedisURL,
		Prefix:   cfg.CachePrefix,
		TTL:      time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:  cfg.CacheMaxSize,
	}, logger)
	defer func() {
		if err := contentCache.Close(); err != nil {
			slog.Warn("error closing cache", "error", err)
		}
	}()

	queries := store.New(db)
	newsService := service.NewNewsService(queries)
	pagesService := service.NewPagesService(queries)
	settingsService := service.NewSettingsService(queries)

	sched := scheduler.New(queries, newsService, pagesService, settingsService, logger)
	sched.Start()
	defer sched.Stop()

	apiHandler := api.NewHandler(db, cfg, logger, contentCache)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           apiHandler.Router(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20, // 1MB max header size
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the threadbox storefront API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"threadbox/internal/cache"
	"threadbox/internal/config"
	"threadbox/internal/database"
	"threadbox/internal/handlers"
	"threadbox/internal/router"
	"threadbox/internal/session"
	"threadbox/internal/storage"
	"threadbox/internal/store"
	"threadbox/internal/token"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A .env file is a development convenience only; in production the
	// environment is the source of truth.
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
	)

	// Connect to PostgreSQL.
	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Run pending migrations.
	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed development data (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Connect to Redis (cart sessions + catalog cache). The storefront
	// stays up without it: catalog reads skip the cache and cart/wishlist
	// endpoints report the service as unavailable.
	var (
		shopping     *session.Store
		catalogCache *cache.CatalogCache
	)
	redisClient, err := cache.Connect(cfg.RedisHost, cfg.RedisPort, cfg.RedisPassword)
	if err != nil {
		slog.Warn("redis unavailable, running without cart sessions and catalog cache", "error", err)
	} else {
		defer redisClient.Close()
		shopping = session.NewStore(redisClient)
		catalogCache = cache.NewCatalogCache(redisClient, cache.DefaultCatalogTTL)
	}

	// Initialize data stores.
	productStore := store.NewProductStore(db)
	categoryStore := store.NewCategoryStore(db)
	reviewStore := store.NewReviewStore(db)
	orderStore := store.NewOrderStore(db)
	userStore := store.NewUserStore(db)
	homepageStore := store.NewHomepageStore(db)
	mediaStore := store.NewMediaStore(db)

	// Connect to S3-compatible object storage (optional; uploads are
	// disabled without it).
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3Bucket, cfg.S3PublicURL, cfg.S3Folder,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	if storageClient != nil {
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"bucket", cfg.S3Bucket,
		)
	} else {
		slog.Warn("s3 storage not configured, media uploads disabled")
	}

	tokens := token.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	apiCfg := handlers.Config{
		Products:   productStore,
		Categories: categoryStore,
		Reviews:    reviewStore,
		Orders:     orderStore,
		Users:      userStore,
		Homepage:   homepageStore,
		Media:      mediaStore,
		Tokens:     tokens,
		Shopping:   shopping,
		Catalog:    catalogCache,
	}
	// Leave Storage nil rather than wrapping a nil *storage.Client in the
	// interface; the handlers test for nil to detect missing storage.
	if storageClient != nil {
		apiCfg.Storage = storageClient
	}
	api := handlers.NewAPI(apiCfg)

	// Set up the Chi router with all middleware and routes.
	r := router.New(tokens, api)

	// Create the HTTP server with sensible timeouts. WriteTimeout must
	// accommodate image uploads proxied through to object storage.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	// Give active requests up to 30 seconds to complete.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

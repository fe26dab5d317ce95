// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers contains the HTTP handlers for the threadbox API.
// Handlers are grouped by concern (catalog, orders, auth, homepage,
// upload, shopping) and receive their dependencies through the API struct.
package handlers

import (
	"context"
	"io"

	"threadbox/internal/cache"
	"threadbox/internal/session"
	"threadbox/internal/store"
	"threadbox/internal/token"
)

// ObjectStorage is the slice of the media storage client the handlers
// use. storage.Client satisfies it; tests substitute their own.
type ObjectStorage interface {
	Key(filename string) string
	Upload(ctx context.Context, key, contentType string, body io.ReadSeeker, size int64) error
	Delete(ctx context.Context, key string) error
	FileURL(key string) string
	ExtractKey(rawURL string) (string, bool)
}

// API groups all HTTP handlers and their dependencies.
type API struct {
	products   *store.ProductStore
	categories *store.CategoryStore
	reviews    *store.ReviewStore
	orders     *store.OrderStore
	users      *store.UserStore
	homepage   *store.HomepageStore
	media      *store.MediaStore

	tokens   *token.Service
	shopping *session.Store      // nil when Redis is unavailable
	catalog  *cache.CatalogCache // nil when Redis is unavailable
	storage  ObjectStorage       // nil when object storage is unconfigured
}

// Config carries the dependencies for NewAPI.
type Config struct {
	Products   *store.ProductStore
	Categories *store.CategoryStore
	Reviews    *store.ReviewStore
	Orders     *store.OrderStore
	Users      *store.UserStore
	Homepage   *store.HomepageStore
	Media      *store.MediaStore

	Tokens   *token.Service
	Shopping *session.Store
	Catalog  *cache.CatalogCache
	Storage  ObjectStorage
}

// NewAPI creates the handler set. Shopping, Catalog and Storage may be
// nil; the affected endpoints then report service unavailability instead
// of failing at startup.
func NewAPI(cfg Config) *API {
	return &API{
		products:   cfg.Products,
		categories: cfg.Categories,
		reviews:    cfg.Reviews,
		orders:     cfg.Orders,
		users:      cfg.Users,
		homepage:   cfg.Homepage,
		media:      cfg.Media,
		tokens:     cfg.Tokens,
		shopping:   cfg.Shopping,
		catalog:    cfg.Catalog,
		storage:    cfg.Storage,
	}
}

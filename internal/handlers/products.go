// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"threadbox/internal/cache"
	"threadbox/internal/markdown"
	"threadbox/internal/models"
)

// ProductList returns the catalog, optionally filtered by category,
// featured flag, or a free-text search. Listings are served from the
// catalog cache when possible.
func (a *API) ProductList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := models.ProductFilter{
		Category: q.Get("category"),
		Featured: q.Get("featured") == "true",
		Query:    q.Get("q"),
	}

	key := cache.ListKey(filter.Category, filter.Featured, filter.Query)
	if a.catalog != nil {
		if body, ok := a.catalog.Get(r.Context(), key); ok {
			writeRaw(w, http.StatusOK, body)
			return
		}
	}

	products, err := a.products.List(filter)
	if err != nil {
		slog.Error("product list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}

	body, err := json.Marshal(envelope{Success: true, Data: products})
	if err != nil {
		slog.Error("product list encode failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	if a.catalog != nil {
		a.catalog.Set(r.Context(), key, body)
	}
	writeRaw(w, http.StatusOK, body)
}

// ProductGet returns one product. The path id may be a UUID or, for old
// clients, a SKU. The Markdown description is rendered to descriptionHtml
// on the way out.
func (a *API) ProductGet(w http.ResponseWriter, r *http.Request) {
	product, err := a.products.FindByRef(chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("product get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if product.Description != "" {
		html, err := markdown.ToHTML(product.Description)
		if err != nil {
			slog.Warn("description render failed", "error", err, "product", product.ID)
		} else {
			product.DescriptionHTML = html
		}
	}

	writeJSON(w, http.StatusOK, product)
}

// ProductCreate adds a catalog item. Admin only. Products default to in
// stock unless the request says otherwise.
func (a *API) ProductCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Product
	req.InStock = true
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateNewProduct(&req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	created, err := a.products.Create(&req)
	if err != nil {
		slog.Error("product create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create product")
		return
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusCreated, created)
}

// ProductUpdate applies a partial update. Admin only. Fields absent from
// the request body are left untouched.
func (a *API) ProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	var patch models.ProductPatch
	if msg := decodeJSON(w, r, &patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product update lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	patch.Apply(product)
	if msg := validateProduct(product.Name, product.Price); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.products.Update(product); err != nil {
		slog.Error("product update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update product")
		return
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusOK, product)
}

// ProductDelete removes a product. With deleteImages=true its stored
// images are removed too, best effort. Admin only.
func (a *API) ProductDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := a.products.FindByID(id)
	if err != nil {
		slog.Error("product delete lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	deleted, err := a.products.Delete(id)
	if err != nil || !deleted {
		slog.Error("product delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete product")
		return
	}

	// Image cleanup must not fail the delete; orphaned objects are
	// cheaper than a product that cannot be removed.
	if r.URL.Query().Get("deleteImages") == "true" {
		a.deleteImages(r, product.AllImages())
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}

// deleteImages removes stored objects referenced by the given URLs.
// URLs outside our storage (seeded demo data, hotlinks) are skipped.
func (a *API) deleteImages(r *http.Request, urls []string) {
	if a.storage == nil {
		return
	}
	for _, u := range urls {
		key, ok := a.storage.ExtractKey(u)
		if !ok {
			continue
		}
		if err := a.storage.Delete(r.Context(), key); err != nil {
			slog.Warn("image cleanup failed", "key", key, "error", err)
			continue
		}
		if _, err := a.media.DeleteByKey(key); err != nil {
			slog.Warn("media record cleanup failed", "key", key, "error", err)
		}
	}
}

// invalidateCatalog clears cached listings after any catalog write.
func (a *API) invalidateCatalog(r *http.Request) {
	if a.catalog != nil {
		a.catalog.InvalidateAll(r.Context())
	}
}

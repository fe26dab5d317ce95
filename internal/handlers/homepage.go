// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"threadbox/internal/models"
)

// homepageKind resolves the {kind} path segment, writing a 404 for
// unknown collections.
func homepageKind(w http.ResponseWriter, r *http.Request) (models.HomepageKind, bool) {
	kind, ok := models.HomepageKindFromPath(chi.URLParam(r, "kind"))
	if !ok {
		writeError(w, http.StatusNotFound, "Unknown homepage section")
		return "", false
	}
	return kind, true
}

// HomepageList returns every item in one homepage collection, ordered by
// position.
func (a *API) HomepageList(w http.ResponseWriter, r *http.Request) {
	kind, ok := homepageKind(w, r)
	if !ok {
		return
	}

	items, err := a.homepage.ListByKind(kind)
	if err != nil {
		slog.Error("homepage list failed", "error", err, "kind", kind)
		writeError(w, http.StatusInternalServerError, "Failed to load homepage content")
		return
	}
	writeJSON(w, http.StatusOK, items)
}

// HomepageCreate adds an item to a collection. Admin only. Creating a
// trending item also creates its backing catalog product in the same
// transaction, so the storefront can always resolve the product page.
func (a *API) HomepageCreate(w http.ResponseWriter, r *http.Request) {
	kind, ok := homepageKind(w, r)
	if !ok {
		return
	}

	var body map[string]any
	if msg := decodeJSON(w, r, &body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	position, isActive, productID, data := models.SplitHomepageFields(body)
	item := &models.HomepageItem{
		Kind:      kind,
		Position:  position,
		IsActive:  isActive,
		ProductID: productID,
		Data:      data,
	}

	if kind == models.KindTrending && productID == nil {
		// Old storefront clients send "name", newer ones "title".
		name := item.StringField("name")
		if name == "" {
			name = item.StringField("title")
		}
		if name == "" {
			writeError(w, http.StatusBadRequest, "Trending items need a name")
			return
		}
		category := item.StringField("category")
		if category == "" {
			category = "Trending"
		}
		created, _, err := a.homepage.CreateWithProduct(item, &models.Product{
			Name:        name,
			Description: item.StringField("description"),
			Price:       item.FloatField("price"),
			Category:    category,
			MainImage:   item.StringField("image"),
			InStock:     true,
			Featured:    true,
		})
		if err != nil {
			slog.Error("trending create failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to create homepage item")
			return
		}
		a.invalidateCatalog(r)
		writeJSON(w, http.StatusCreated, created)
		return
	}

	created, err := a.homepage.Create(item)
	if err != nil {
		slog.Error("homepage create failed", "error", err, "kind", kind)
		writeError(w, http.StatusInternalServerError, "Failed to create homepage item")
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// HomepageUpdate merges a partial update onto an item. Admin only.
// Submitted fields overwrite, everything else is kept, document style.
// Updating a trending item patches its backing product in the same
// transaction.
func (a *API) HomepageUpdate(w http.ResponseWriter, r *http.Request) {
	kind, ok := homepageKind(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, err := a.homepage.FindByID(kind, id)
	if err != nil {
		slog.Error("homepage lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update homepage item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Homepage item not found")
		return
	}

	var body map[string]any
	if msg := decodeJSON(w, r, &body); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	// Only fields present in the request change; absent common fields
	// keep their stored values.
	for k, v := range body {
		switch k {
		case "order":
			if f, ok := v.(float64); ok {
				item.Position = int(f)
			}
		case "isActive":
			if b, ok := v.(bool); ok {
				item.IsActive = b
			}
		case "id", "productId", "createdAt", "updatedAt":
			// Server-managed; ignore client-supplied values.
		default:
			item.Data[k] = v
		}
	}

	if kind == models.KindTrending {
		patch := trendingProductPatch(body)
		updated, err := a.homepage.UpdateWithProduct(item, patch)
		if err != nil {
			slog.Error("trending update failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to update homepage item")
			return
		}
		if updated == nil {
			writeError(w, http.StatusNotFound, "Homepage item not found")
			return
		}
		a.invalidateCatalog(r)
		writeJSON(w, http.StatusOK, updated)
		return
	}

	updated, err := a.homepage.Update(item)
	if err != nil {
		slog.Error("homepage update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update homepage item")
		return
	}
	if updated == nil {
		writeError(w, http.StatusNotFound, "Homepage item not found")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// HomepageDelete removes an item from a collection. Admin only. The
// backing product of a trending item stays in the catalog; it may be
// referenced by carts or orders.
func (a *API) HomepageDelete(w http.ResponseWriter, r *http.Request) {
	kind, ok := homepageKind(w, r)
	if !ok {
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid item id")
		return
	}

	item, err := a.homepage.FindByID(kind, id)
	if err != nil {
		slog.Error("homepage lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete homepage item")
		return
	}
	if item == nil {
		writeError(w, http.StatusNotFound, "Homepage item not found")
		return
	}

	deleted, err := a.homepage.Delete(kind, id)
	if err != nil || !deleted {
		slog.Error("homepage delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete homepage item")
		return
	}

	if img := item.StringField("image"); img != "" {
		a.deleteImages(r, []string{img})
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Homepage item deleted"})
}

// trendingProductPatch maps submitted trending fields onto a product
// patch so the backing product stays in sync with the homepage card.
func trendingProductPatch(body map[string]any) *models.ProductPatch {
	patch := &models.ProductPatch{}
	touched := false

	if s, ok := body["name"].(string); ok {
		patch.Name = &s
		touched = true
	} else if s, ok := body["title"].(string); ok {
		patch.Name = &s
		touched = true
	}
	if s, ok := body["description"].(string); ok {
		patch.Description = &s
		touched = true
	}
	if f, ok := body["price"].(float64); ok {
		patch.Price = &f
		touched = true
	}
	if s, ok := body["category"].(string); ok {
		patch.Category = &s
		touched = true
	}
	if s, ok := body["image"].(string); ok {
		patch.MainImage = &s
		touched = true
	}

	if !touched {
		return nil
	}
	return patch
}

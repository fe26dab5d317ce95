package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"threadbox/internal/models"
	"threadbox/internal/slug"
)

// CategoryList returns all categories.
func (a *API) CategoryList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.categories.List()
	if err != nil {
		slog.Error("category list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load categories")
		return
	}
	writeJSON(w, http.StatusOK, categories)
}

// CategoryGet returns one category by id.
func (a *API) CategoryGet(w http.ResponseWriter, r *http.Request) {
	category, ok := a.findCategory(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, category)
}

// CategoryProducts returns the products associated with a category.
// Products carry the category as a free-text label, so the match is loose
// against both the category name and slug.
func (a *API) CategoryProducts(w http.ResponseWriter, r *http.Request) {
	category, ok := a.findCategory(w, r)
	if !ok {
		return
	}

	products, err := a.products.ListByCategory(category)
	if err != nil {
		slog.Error("category products failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load products")
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// CategoryCreate adds a category. Admin only. The slug is generated from
// the name when the request does not supply one.
func (a *API) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	var req models.Category
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validateCategory(req.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Slug == "" {
		req.Slug = slug.Generate(req.Name)
	}

	existing, err := a.categories.FindBySlug(req.Slug)
	if err != nil {
		slog.Error("category slug check failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}
	if existing != nil {
		writeError(w, http.StatusConflict, "A category with this slug already exists")
		return
	}

	created, err := a.categories.Create(&req)
	if err != nil {
		slog.Error("category create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to create category")
		return
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusCreated, created)
}

// CategoryUpdate applies a partial update. Admin only.
func (a *API) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	category, ok := a.findCategory(w, r)
	if !ok {
		return
	}

	var patch models.CategoryPatch
	if msg := decodeJSON(w, r, &patch); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	patch.Apply(category)
	if msg := validateCategory(category.Name); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if err := a.categories.Update(category); err != nil {
		slog.Error("category update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update category")
		return
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusOK, category)
}

// CategoryDelete removes a category, and with deleteImage=true its image
// as well, best effort. Admin only. Products keep their label; they
// simply stop resolving to a category page.
func (a *API) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	category, ok := a.findCategory(w, r)
	if !ok {
		return
	}

	deleted, err := a.categories.Delete(category.ID)
	if err != nil || !deleted {
		slog.Error("category delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete category")
		return
	}

	if r.URL.Query().Get("deleteImage") == "true" && category.Image != "" {
		a.deleteImages(r, []string{category.Image})
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// findCategory resolves the {id} path param, writing the error response
// itself when the category cannot be served.
func (a *API) findCategory(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category id")
		return nil, false
	}

	category, err := a.categories.FindByID(id)
	if err != nil {
		slog.Error("category lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load category")
		return nil, false
	}
	if category == nil {
		writeError(w, http.StatusNotFound, "Category not found")
		return nil, false
	}
	return category, true
}

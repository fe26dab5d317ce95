package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"threadbox/internal/models"
)

// reviewRequest is the submission body for a new review. ProductID is
// only consulted on the flat /reviews route; the nested route carries
// the product in the path.
type reviewRequest struct {
	ProductID   string `json:"productId"`
	Rating      int    `json:"rating"`
	Comment     string `json:"comment"`
	UserName    string `json:"userName"`
	ReviewImage string `json:"reviewImage"`
}

// reviewProductID resolves the product a review request targets, from
// the {id} path param or the given fallback.
func reviewProductID(r *http.Request, fallback string) (uuid.UUID, bool) {
	ref := chi.URLParam(r, "id")
	if ref == "" {
		ref = fallback
	}
	id, err := uuid.Parse(ref)
	return id, err == nil
}

// ReviewList returns a product's reviews, newest first.
func (a *API) ReviewList(w http.ResponseWriter, r *http.Request) {
	productID, ok := reviewProductID(r, r.URL.Query().Get("productId"))
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	reviews, err := a.reviews.ListByProduct(productID)
	if err != nil {
		slog.Error("review list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load reviews")
		return
	}
	writeJSON(w, http.StatusOK, reviews)
}

// ReviewCreate stores a review and recomputes the product's rating
// aggregate. Reviews are immutable once accepted.
func (a *API) ReviewCreate(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	productID, ok := reviewProductID(r, req.ProductID)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid product id")
		return
	}
	if msg := validateReview(req.Rating, req.Comment, req.UserName); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	product, err := a.products.FindByID(productID)
	if err != nil {
		slog.Error("review product lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	created, err := a.reviews.Create(&models.Review{
		ProductID:   productID,
		Rating:      req.Rating,
		Comment:     req.Comment,
		UserName:    req.UserName,
		ReviewImage: req.ReviewImage,
	})
	if err != nil {
		slog.Error("review create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to save review")
		return
	}

	rating, count, err := a.reviews.RecomputeProductAggregate(productID)
	if err != nil {
		// The review is stored; the aggregate heals on the next write.
		slog.Error("rating recompute failed", "error", err, "product", productID)
	} else {
		slog.Info("rating updated", "product", productID, "rating", rating, "reviews", count)
	}

	a.invalidateCatalog(r)
	writeJSON(w, http.StatusCreated, created)
}

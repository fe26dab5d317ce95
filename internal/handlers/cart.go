package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"threadbox/internal/middleware"
	"threadbox/internal/models"
)

// cartView is the cart response payload, items plus the running total.
type cartView struct {
	Items []models.CartItem `json:"items"`
	Total float64           `json:"total"`
}

// shoppingUnavailable writes the degraded-mode response when Redis is
// down. Carts are convenience state; the rest of the API keeps working.
func (a *API) shoppingUnavailable(w http.ResponseWriter) bool {
	if a.shopping == nil {
		writeError(w, http.StatusServiceUnavailable, "Shopping features are temporarily unavailable")
		return true
	}
	return false
}

// CartGet returns the authenticated user's cart.
func (a *API) CartGet(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	cart, err := a.shopping.GetCart(r.Context(), claims.UserUUID())
	if err != nil {
		slog.Error("cart get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Items: cart.Items, Total: cart.Total()})
}

// CartAdd adds an item to the cart, merging with an existing line for the
// same product, size and color.
func (a *API) CartAdd(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	userID := claims.UserUUID()

	var item models.CartItem
	if msg := decodeJSON(w, r, &item); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if item.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}
	if item.Quantity <= 0 {
		item.Quantity = 1
	}

	// Fill name, price and image from the catalog so the cart snapshot
	// cannot be forged by the client.
	product, err := a.products.FindByRef(item.ProductID)
	if err != nil {
		slog.Error("cart product lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}
	item.ProductID = product.ID.String()
	item.Name = product.Name
	item.Price = product.Price
	item.Image = product.MainImage

	cart, err := a.shopping.GetCart(r.Context(), userID)
	if err != nil {
		slog.Error("cart get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	cart.Upsert(item)
	if err := a.shopping.SaveCart(r.Context(), userID, cart); err != nil {
		slog.Error("cart save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Items: cart.Items, Total: cart.Total()})
}

// CartUpdateItem sets the quantity of a cart line. Quantity zero removes
// the line.
func (a *API) CartUpdateItem(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	userID := claims.UserUUID()
	productID := chi.URLParam(r, "productId")

	var req struct {
		Quantity int `json:"quantity"`
	}
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "Quantity must not be negative")
		return
	}

	cart, err := a.shopping.GetCart(r.Context(), userID)
	if err != nil {
		slog.Error("cart get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if !cart.SetQuantity(productID, req.Quantity) {
		writeError(w, http.StatusNotFound, "Product not in cart")
		return
	}
	if err := a.shopping.SaveCart(r.Context(), userID, cart); err != nil {
		slog.Error("cart save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Items: cart.Items, Total: cart.Total()})
}

// CartRemoveItem deletes every cart line for a product.
func (a *API) CartRemoveItem(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())
	userID := claims.UserUUID()

	cart, err := a.shopping.GetCart(r.Context(), userID)
	if err != nil {
		slog.Error("cart get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	if !cart.Remove(chi.URLParam(r, "productId")) {
		writeError(w, http.StatusNotFound, "Product not in cart")
		return
	}
	if err := a.shopping.SaveCart(r.Context(), userID, cart); err != nil {
		slog.Error("cart save failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Items: cart.Items, Total: cart.Total()})
}

// CartClear empties the cart.
func (a *API) CartClear(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	if err := a.shopping.ClearCart(r.Context(), claims.UserUUID()); err != nil {
		slog.Error("cart clear failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to clear cart")
		return
	}
	writeJSON(w, http.StatusOK, cartView{Items: []models.CartItem{}, Total: 0})
}

// WishlistGet returns the product ids on the user's wishlist.
func (a *API) WishlistGet(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	ids, err := a.shopping.GetWishlist(r.Context(), claims.UserUUID())
	if err != nil {
		slog.Error("wishlist get failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"productIds": ids})
}

// WishlistAdd puts a product on the wishlist. Adding twice is a no-op.
func (a *API) WishlistAdd(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	var req struct {
		ProductID string `json:"productId"`
	}
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	if req.ProductID == "" {
		writeError(w, http.StatusBadRequest, "productId is required")
		return
	}

	product, err := a.products.FindByRef(req.ProductID)
	if err != nil {
		slog.Error("wishlist product lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if product == nil {
		writeError(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := a.shopping.AddToWishlist(r.Context(), claims.UserUUID(), product.ID.String()); err != nil {
		slog.Error("wishlist add failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Added to wishlist"})
}

// WishlistRemove takes a product off the wishlist.
func (a *API) WishlistRemove(w http.ResponseWriter, r *http.Request) {
	if a.shoppingUnavailable(w) {
		return
	}
	claims := middleware.ClaimsFromCtx(r.Context())

	removed, err := a.shopping.RemoveFromWishlist(r.Context(), claims.UserUUID(), chi.URLParam(r, "productId"))
	if err != nil {
		slog.Error("wishlist remove failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update wishlist")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "Product not on wishlist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Removed from wishlist"})
}

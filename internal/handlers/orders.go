// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"threadbox/internal/middleware"
	"threadbox/internal/models"
)

// orderRequest is the checkout body. Items may be omitted, in which case
// the server-side cart is snapshotted instead.
type orderRequest struct {
	Items           []models.OrderItem     `json:"items"`
	TotalAmount     float64                `json:"totalAmount"`
	ShippingAddress models.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"`
}

// statusRequest is the admin body for updating an order's status fields.
type statusRequest struct {
	OrderStatus   models.OrderStatus   `json:"orderStatus"`
	PaymentStatus models.PaymentStatus `json:"paymentStatus"`
}

// OrderCreate places an order for the authenticated user. Items and
// prices are snapshotted as submitted; later catalog edits cannot change
// an existing order.
func (a *API) OrderCreate(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())
	userID := claims.UserUUID()

	var req orderRequest
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	fromCart := false
	if len(req.Items) == 0 && a.shopping != nil {
		cart, err := a.shopping.GetCart(r.Context(), userID)
		if err != nil {
			slog.Error("checkout cart load failed", "error", err)
			writeError(w, http.StatusInternalServerError, "Failed to place order")
			return
		}
		for _, it := range cart.Items {
			req.Items = append(req.Items, models.OrderItem(it))
		}
		fromCart = true
	}
	if len(req.Items) == 0 {
		writeError(w, http.StatusBadRequest, "Order has no items")
		return
	}
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			writeError(w, http.StatusBadRequest, "Item quantities must be positive")
			return
		}
	}

	total := req.TotalAmount
	if total <= 0 {
		for _, it := range req.Items {
			total += it.Price * float64(it.Quantity)
		}
	}

	created, err := a.orders.Create(&models.Order{
		UserID:          userID,
		Items:           req.Items,
		TotalAmount:     total,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		PaymentStatus:   models.PaymentPending,
		OrderStatus:     models.OrderProcessing,
	})
	if err != nil {
		slog.Error("order create failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to place order")
		return
	}

	if fromCart {
		if err := a.shopping.ClearCart(r.Context(), userID); err != nil {
			slog.Warn("cart clear after checkout failed", "error", err, "user", userID)
		}
	}

	writeJSON(w, http.StatusCreated, created)
}

// OrderList returns the authenticated user's orders, newest first.
// Admins may pass ?all=true to see every order, or ?userId= to see one
// customer's orders.
func (a *API) OrderList(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	var scope *uuid.UUID
	switch {
	case claims.IsAdmin() && r.URL.Query().Get("userId") != "":
		id, err := uuid.Parse(r.URL.Query().Get("userId"))
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid userId filter")
			return
		}
		scope = &id
	case claims.IsAdmin() && r.URL.Query().Get("all") == "true":
		// Unscoped.
	default:
		id := claims.UserUUID()
		scope = &id
	}

	orders, err := a.orders.List(scope)
	if err != nil {
		slog.Error("order list failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load orders")
		return
	}
	writeJSON(w, http.StatusOK, orders)
}

// OrderGet returns one order. Users can only read their own; admins can
// read any.
func (a *API) OrderGet(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromCtx(r.Context())

	order, ok := a.findOrder(w, r)
	if !ok {
		return
	}
	if order.UserID != claims.UserUUID() && !claims.IsAdmin() {
		// Hide existence from other users.
		writeError(w, http.StatusNotFound, "Order not found")
		return
	}
	writeJSON(w, http.StatusOK, order)
}

// OrderUpdateStatus moves an order through the fulfilment state machine.
// Admin only. Processing orders may be shipped or cancelled; shipped
// orders may only be delivered; delivered and cancelled are terminal.
func (a *API) OrderUpdateStatus(w http.ResponseWriter, r *http.Request) {
	order, ok := a.findOrder(w, r)
	if !ok {
		return
	}

	req := statusRequest{
		OrderStatus:   order.OrderStatus,
		PaymentStatus: order.PaymentStatus,
	}
	if msg := decodeJSON(w, r, &req); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	if !req.OrderStatus.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown order status")
		return
	}
	if !req.PaymentStatus.Valid() {
		writeError(w, http.StatusBadRequest, "Unknown payment status")
		return
	}
	if !order.OrderStatus.CanTransitionTo(req.OrderStatus) {
		writeError(w, http.StatusConflict, "Order cannot move from "+string(order.OrderStatus)+" to "+string(req.OrderStatus))
		return
	}

	updated, err := a.orders.UpdateStatus(order.ID, req.OrderStatus, req.PaymentStatus)
	if err != nil || updated == nil {
		slog.Error("order status update failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to update order")
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// OrderDelete removes an order record. Admin only.
func (a *API) OrderDelete(w http.ResponseWriter, r *http.Request) {
	order, ok := a.findOrder(w, r)
	if !ok {
		return
	}

	deleted, err := a.orders.Delete(order.ID)
	if err != nil || !deleted {
		slog.Error("order delete failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to delete order")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Order deleted"})
}

// findOrder resolves the {id} path param, writing the error response
// itself when the order cannot be served.
func (a *API) findOrder(w http.ResponseWriter, r *http.Request) (*models.Order, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid order id")
		return nil, false
	}

	order, err := a.orders.FindByID(id)
	if err != nil {
		slog.Error("order lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to load order")
		return nil, false
	}
	if order == nil {
		writeError(w, http.StatusNotFound, "Order not found")
		return nil, false
	}
	return order, true
}

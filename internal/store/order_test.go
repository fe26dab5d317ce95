// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"testing"

	"github.com/google/uuid"

	"threadbox/internal/models"
)

func testOrder(userID uuid.UUID) *models.Order {
	return &models.Order{
		UserID: userID,
		Items: []models.OrderItem{
			{ProductID: uuid.NewString(), Name: "Premium Bridal Suit", Price: 499.99, Quantity: 1, Size: "M"},
			{ProductID: uuid.NewString(), Name: "Casual Dress", Price: 59.99, Quantity: 2, Color: "navy"},
		},
		TotalAmount: 619.97,
		ShippingAddress: models.ShippingAddress{
			Name: "Order Tester", Email: "orders@store-test.local",
			Address: "1 Test Lane", City: "Testville", Country: "RO",
		},
		PaymentMethod: "cod",
		PaymentStatus: models.PaymentPending,
		OrderStatus:   models.OrderProcessing,
	}
}

func TestOrderStoreCreateSnapshotsItems(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	userID := uuid.New()
	t.Cleanup(func() { cleanOrders(t, db, userID) })

	created, err := s.Create(testOrder(userID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == uuid.Nil {
		t.Error("expected non-nil UUID")
	}
	if created.OrderStatus != models.OrderProcessing || created.PaymentStatus != models.PaymentPending {
		t.Errorf("initial status: got %s/%s", created.OrderStatus, created.PaymentStatus)
	}

	found, err := s.FindByID(created.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if found == nil {
		t.Fatal("expected order, got nil")
	}
	if len(found.Items) != 2 {
		t.Fatalf("items: got %d, want 2", len(found.Items))
	}
	// The snapshot carries the name and price agreed at checkout.
	if found.Items[0].Name != "Premium Bridal Suit" || found.Items[0].Price != 499.99 {
		t.Errorf("item snapshot mismatch: %+v", found.Items[0])
	}
	if found.ShippingAddress.City != "Testville" {
		t.Errorf("shipping address: got %q", found.ShippingAddress.City)
	}
}

func TestOrderStoreListScopesToUser(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	userA := uuid.New()
	userB := uuid.New()
	t.Cleanup(func() { cleanOrders(t, db, userA); cleanOrders(t, db, userB) })

	if _, err := s.Create(testOrder(userA)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(testOrder(userA)); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := s.Create(testOrder(userB)); err != nil {
		t.Fatalf("Create: %v", err)
	}

	mine, err := s.List(&userA)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(mine) != 2 {
		t.Errorf("user scope: got %d orders, want 2", len(mine))
	}
	for _, o := range mine {
		if o.UserID != userA {
			t.Errorf("leaked order for user %s", o.UserID)
		}
	}
}

func TestOrderStoreUpdateStatus(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	userID := uuid.New()
	t.Cleanup(func() { cleanOrders(t, db, userID) })

	created, err := s.Create(testOrder(userID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	updated, err := s.UpdateStatus(created.ID, models.OrderShipped, models.PaymentPaid)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if updated.OrderStatus != models.OrderShipped || updated.PaymentStatus != models.PaymentPaid {
		t.Errorf("status: got %s/%s", updated.OrderStatus, updated.PaymentStatus)
	}

	missing, err := s.UpdateStatus(uuid.New(), models.OrderShipped, models.PaymentPaid)
	if err != nil {
		t.Fatalf("UpdateStatus (missing): %v", err)
	}
	if missing != nil {
		t.Error("expected nil for non-existent order")
	}
}

func TestOrderStoreDelete(t *testing.T) {
	db := testDB(t)
	s := NewOrderStore(db)

	userID := uuid.New()
	t.Cleanup(func() { cleanOrders(t, db, userID) })

	created, err := s.Create(testOrder(userID))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	deleted, err := s.Delete(created.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !deleted {
		t.Error("expected Delete to report a removed row")
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"threadbox/internal/models"
)

// OrderStore handles all order-related database operations. Line items and
// the shipping address are stored as jsonb snapshots.
type OrderStore struct {
	db *sql.DB
}

// NewOrderStore creates a new OrderStore with the given database connection.
func NewOrderStore(db *sql.DB) *OrderStore {
	return &OrderStore{db: db}
}

const orderColumns = `id, user_id, items, total_amount, shipping_address,
	payment_method, payment_status, order_status, created_at, updated_at`

func scanOrder(row interface{ Scan(...any) error }) (*models.Order, error) {
	o := &models.Order{}
	var items, address []byte

	err := row.Scan(
		&o.ID, &o.UserID, &items, &o.TotalAmount, &address,
		&o.PaymentMethod, &o.PaymentStatus, &o.OrderStatus,
		&o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	if err := json.Unmarshal(address, &o.ShippingAddress); err != nil {
		return nil, fmt.Errorf("decode shipping address: %w", err)
	}
	if o.Items == nil {
		o.Items = []models.OrderItem{}
	}
	return o, nil
}

// Create inserts a new order. Items and the shipping address are snapshots
// taken at checkout; they are never updated afterwards.
func (s *OrderStore) Create(o *models.Order) (*models.Order, error) {
	items, err := encodeJSON(o.Items)
	if err != nil {
		return nil, err
	}
	address, err := encodeJSON(o.ShippingAddress)
	if err != nil {
		return nil, err
	}

	row := s.db.QueryRow(`
		INSERT INTO orders (user_id, items, total_amount, shipping_address,
			payment_method, payment_status, order_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+orderColumns,
		o.UserID, items, o.TotalAmount, address,
		o.PaymentMethod, o.PaymentStatus, o.OrderStatus,
	)
	created, err := scanOrder(row)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

// FindByID retrieves an order by UUID. Returns nil if not found.
func (s *OrderStore) FindByID(id uuid.UUID) (*models.Order, error) {
	row := s.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find order by id: %w", err)
	}
	return o, nil
}

// List returns orders newest first. When userID is non-nil only that
// user's orders are returned.
func (s *OrderStore) List(userID *uuid.UUID) ([]models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders`
	var args []any
	if userID != nil {
		query += ` WHERE user_id = $1`
		args = append(args, *userID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

// UpdateStatus writes the order and payment status fields, the only
// mutable parts of an order.
func (s *OrderStore) UpdateStatus(id uuid.UUID, orderStatus models.OrderStatus, paymentStatus models.PaymentStatus) (*models.Order, error) {
	row := s.db.QueryRow(`
		UPDATE orders SET order_status = $1, payment_status = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING `+orderColumns,
		orderStatus, paymentStatus, id,
	)
	o, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update order status: %w", err)
	}
	return o, nil
}

// Delete removes an order. Returns true if a row was deleted.
func (s *OrderStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete order: %w", err)
	}
	return n > 0, nil
}

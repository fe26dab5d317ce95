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

// HomepageStore handles the six homepage content collections. All kinds
// share one table; kind-specific fields live in a jsonb document.
type HomepageStore struct {
	db *sql.DB
}

// NewHomepageStore creates a new HomepageStore with the given database connection.
func NewHomepageStore(db *sql.DB) *HomepageStore {
	return &HomepageStore{db: db}
}

const homepageColumns = `id, kind, position, is_active, product_id, data, created_at, updated_at`

func scanHomepageItem(row interface{ Scan(...any) error }) (*models.HomepageItem, error) {
	it := &models.HomepageItem{}
	var data []byte

	err := row.Scan(
		&it.ID, &it.Kind, &it.Position, &it.IsActive, &it.ProductID,
		&data, &it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &it.Data); err != nil {
		return nil, fmt.Errorf("decode homepage data: %w", err)
	}
	if it.Data == nil {
		it.Data = map[string]any{}
	}
	return it, nil
}

// ListByKind returns every item of one kind ordered by position.
func (s *HomepageStore) ListByKind(kind models.HomepageKind) ([]models.HomepageItem, error) {
	rows, err := s.db.Query(`
		SELECT `+homepageColumns+` FROM homepage_items
		WHERE kind = $1 ORDER BY position ASC, created_at ASC
	`, kind)
	if err != nil {
		return nil, fmt.Errorf("list homepage items: %w", err)
	}
	defer rows.Close()

	items := []models.HomepageItem{}
	for rows.Next() {
		it, err := scanHomepageItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan homepage item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}

// FindByID retrieves one item, scoped to its kind so ids from one
// collection cannot address another. Returns nil if not found.
func (s *HomepageStore) FindByID(kind models.HomepageKind, id uuid.UUID) (*models.HomepageItem, error) {
	row := s.db.QueryRow(`
		SELECT `+homepageColumns+` FROM homepage_items WHERE kind = $1 AND id = $2
	`, kind, id)
	it, err := scanHomepageItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find homepage item: %w", err)
	}
	return it, nil
}

func insertHomepageItem(q querier, it *models.HomepageItem) (*models.HomepageItem, error) {
	data, err := encodeJSON(it.Data)
	if err != nil {
		return nil, err
	}
	row := q.QueryRow(`
		INSERT INTO homepage_items (kind, position, is_active, product_id, data)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+homepageColumns,
		it.Kind, it.Position, it.IsActive, it.ProductID, data,
	)
	created, err := scanHomepageItem(row)
	if err != nil {
		return nil, fmt.Errorf("create homepage item: %w", err)
	}
	return created, nil
}

func updateHomepageItem(q querier, it *models.HomepageItem) (*models.HomepageItem, error) {
	data, err := encodeJSON(it.Data)
	if err != nil {
		return nil, err
	}
	row := q.QueryRow(`
		UPDATE homepage_items SET position = $1, is_active = $2,
			product_id = $3, data = $4, updated_at = NOW()
		WHERE kind = $5 AND id = $6
		RETURNING `+homepageColumns,
		it.Position, it.IsActive, it.ProductID, data, it.Kind, it.ID,
	)
	updated, err := scanHomepageItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("update homepage item: %w", err)
	}
	return updated, nil
}

// Create inserts a new homepage item.
func (s *HomepageStore) Create(it *models.HomepageItem) (*models.HomepageItem, error) {
	return insertHomepageItem(s.db, it)
}

// Update persists the item's mutable fields. Returns nil if not found.
func (s *HomepageStore) Update(it *models.HomepageItem) (*models.HomepageItem, error) {
	return updateHomepageItem(s.db, it)
}

// Delete removes an item from a collection. Returns true if a row was deleted.
func (s *HomepageStore) Delete(kind models.HomepageKind, id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM homepage_items WHERE kind = $1 AND id = $2`, kind, id)
	if err != nil {
		return false, fmt.Errorf("delete homepage item: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete homepage item: %w", err)
	}
	return n > 0, nil
}

// CreateWithProduct inserts a trending item and its synthesized backing
// product in one transaction, so a trending entry never references a
// product that failed to persist.
func (s *HomepageStore) CreateWithProduct(it *models.HomepageItem, product *models.Product) (*models.HomepageItem, *models.Product, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, nil, fmt.Errorf("begin trending tx: %w", err)
	}
	defer tx.Rollback()

	createdProduct, err := insertProduct(tx, product)
	if err != nil {
		return nil, nil, err
	}
	it.ProductID = &createdProduct.ID

	createdItem, err := insertHomepageItem(tx, it)
	if err != nil {
		return nil, nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("commit trending tx: %w", err)
	}
	return createdItem, createdProduct, nil
}

// UpdateWithProduct updates a trending item and patches its backing
// product in one transaction. patch may be nil when no product field
// changed. Returns a nil item if the trending entry no longer exists.
func (s *HomepageStore) UpdateWithProduct(it *models.HomepageItem, patch *models.ProductPatch) (*models.HomepageItem, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin trending tx: %w", err)
	}
	defer tx.Rollback()

	updated, err := updateHomepageItem(tx, it)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, nil
	}

	if patch != nil && updated.ProductID != nil {
		product, err := findProductByID(tx, *updated.ProductID)
		if err != nil {
			return nil, err
		}
		// The backing product may have been deleted out of band; the
		// trending item still updates.
		if product != nil {
			patch.Apply(product)
			if err := updateProduct(tx, product); err != nil {
				return nil, err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit trending tx: %w", err)
	}
	return updated, nil
}

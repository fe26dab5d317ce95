// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"threadbox/internal/models"
	"threadbox/internal/slug"
)

// productColumns is the canonical column list shared by every product
// query so scans stay in sync with the schema.
const productColumns = `id, name, description, price, category, main_image,
	additional_images, legacy_images, sizes, colors, in_stock, featured,
	sku, material_composition, care_instructions, weight, dimensions,
	imported, rating, reviews_count, created_at, updated_at`

// ProductStore handles all product-related database operations.
type ProductStore struct {
	db *sql.DB
}

// NewProductStore creates a new ProductStore with the given database connection.
func NewProductStore(db *sql.DB) *ProductStore {
	return &ProductStore{db: db}
}

func scanProduct(row interface{ Scan(...any) error }) (*models.Product, error) {
	p := &models.Product{}
	var mainImage sql.NullString
	var additional, legacy, sizes, colors []byte

	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Category, &mainImage,
		&additional, &legacy, &sizes, &colors, &p.InStock, &p.Featured,
		&p.SKU, &p.MaterialComposition, &p.CareInstructions, &p.Weight,
		&p.Dimensions, &p.Imported, &p.Rating, &p.ReviewsCount,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.MainImage = mainImage.String
	if p.AdditionalImages, err = decodeStrings(additional); err != nil {
		return nil, err
	}
	if p.LegacyImages, err = decodeStrings(legacy); err != nil {
		return nil, err
	}
	if p.Sizes, err = decodeStrings(sizes); err != nil {
		return nil, err
	}
	if p.Colors, err = decodeStrings(colors); err != nil {
		return nil, err
	}

	// Imported documents may carry the deprecated flat image list instead
	// of main_image. Fold it into the current shape before anything else
	// sees the product.
	p.Normalize()
	return p, nil
}

func insertProduct(q querier, p *models.Product) (*models.Product, error) {
	additional, err := encodeJSON(p.AdditionalImages)
	if err != nil {
		return nil, err
	}
	sizes, err := encodeJSON(p.Sizes)
	if err != nil {
		return nil, err
	}
	colors, err := encodeJSON(p.Colors)
	if err != nil {
		return nil, err
	}

	var mainImage *string
	if p.MainImage != "" {
		mainImage = &p.MainImage
	}

	row := q.QueryRow(`
		INSERT INTO products (name, description, price, category, main_image,
			additional_images, sizes, colors, in_stock, featured, sku,
			material_composition, care_instructions, weight, dimensions, imported)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING `+productColumns,
		p.Name, p.Description, p.Price, p.Category, mainImage,
		additional, sizes, colors, p.InStock, p.Featured, p.SKU,
		p.MaterialComposition, p.CareInstructions, p.Weight, p.Dimensions, p.Imported,
	)
	created, err := scanProduct(row)
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}
	return created, nil
}

func findProductByID(q querier, id uuid.UUID) (*models.Product, error) {
	row := q.QueryRow(`SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by id: %w", err)
	}
	return p, nil
}

func updateProduct(q querier, p *models.Product) error {
	additional, err := encodeJSON(p.AdditionalImages)
	if err != nil {
		return err
	}
	sizes, err := encodeJSON(p.Sizes)
	if err != nil {
		return err
	}
	colors, err := encodeJSON(p.Colors)
	if err != nil {
		return err
	}

	var mainImage *string
	if p.MainImage != "" {
		mainImage = &p.MainImage
	}

	// Writes always clear legacy_images: once a product passes through an
	// update its images live in the current columns only.
	_, err = q.Exec(`
		UPDATE products SET name = $1, description = $2, price = $3,
			category = $4, main_image = $5, additional_images = $6,
			legacy_images = NULL, sizes = $7, colors = $8, in_stock = $9,
			featured = $10, sku = $11, material_composition = $12,
			care_instructions = $13, weight = $14, dimensions = $15,
			imported = $16, updated_at = NOW()
		WHERE id = $17
	`, p.Name, p.Description, p.Price, p.Category, mainImage, additional,
		sizes, colors, p.InStock, p.Featured, p.SKU, p.MaterialComposition,
		p.CareInstructions, p.Weight, p.Dimensions, p.Imported, p.ID)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Create inserts a new product and returns it with generated fields.
func (s *ProductStore) Create(p *models.Product) (*models.Product, error) {
	return insertProduct(s.db, p)
}

// FindByID retrieves a product by UUID. Returns nil if not found.
func (s *ProductStore) FindByID(id uuid.UUID) (*models.Product, error) {
	return findProductByID(s.db, id)
}

// FindBySKU retrieves a product by its SKU. Returns nil if not found.
func (s *ProductStore) FindBySKU(sku string) (*models.Product, error) {
	row := s.db.QueryRow(`SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
	p, err := scanProduct(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find product by sku: %w", err)
	}
	return p, nil
}

// FindByRef resolves a product by UUID or, when ref is not a UUID, by SKU.
// Old clients still link products by SKU in a few places.
func (s *ProductStore) FindByRef(ref string) (*models.Product, error) {
	if id, err := uuid.Parse(ref); err == nil {
		return s.FindByID(id)
	}
	return s.FindBySKU(ref)
}

// escapeLike escapes LIKE metacharacters so user search input matches
// literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// List returns products matching the filter, newest first.
func (s *ProductStore) List(filter models.ProductFilter) ([]models.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products`
	var conds []string
	var args []any

	if filter.Category != "" {
		args = append(args, filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	if filter.Featured {
		conds = append(conds, "featured = TRUE")
	}
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(name ILIKE $%d ESCAPE '\' OR description ILIKE $%d ESCAPE '\' OR sku ILIKE $%d ESCAPE '\')`,
			n, n, n))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	products := []models.Product{}
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

// ListByCategory returns products whose free-text category label loosely
// matches the given category. Products carry no foreign key, so the match
// is done in memory against the normalized name and slug.
func (s *ProductStore) ListByCategory(c *models.Category) ([]models.Product, error) {
	all, err := s.List(models.ProductFilter{})
	if err != nil {
		return nil, err
	}

	matched := []models.Product{}
	for _, p := range all {
		if slug.Matches(p.Category, c.Name, c.Slug) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// Update persists every mutable product field.
func (s *ProductStore) Update(p *models.Product) error {
	return updateProduct(s.db, p)
}

// SetRating writes the review aggregate onto the product row.
func (s *ProductStore) SetRating(id uuid.UUID, rating float64, count int) error {
	_, err := s.db.Exec(`
		UPDATE products SET rating = $1, reviews_count = $2, updated_at = NOW()
		WHERE id = $3
	`, rating, count, id)
	if err != nil {
		return fmt.Errorf("set product rating: %w", err)
	}
	return nil
}

// Delete removes a product. Returns true if a row was deleted.
func (s *ProductStore) Delete(id uuid.UUID) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return n > 0, nil
}

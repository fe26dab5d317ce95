package store

import (
	"database/sql"
	"fmt"
	"math"

	"github.com/google/uuid"

	"threadbox/internal/models"
)

// ReviewStore handles review persistence and the product rating aggregate.
type ReviewStore struct {
	db *sql.DB
}

// NewReviewStore creates a new ReviewStore with the given database connection.
func NewReviewStore(db *sql.DB) *ReviewStore {
	return &ReviewStore{db: db}
}

// Create inserts a new review and returns it with generated fields.
func (s *ReviewStore) Create(r *models.Review) (*models.Review, error) {
	created := &models.Review{}
	err := s.db.QueryRow(`
		INSERT INTO reviews (product_id, rating, comment, user_name, review_image)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, product_id, rating, comment, user_name, review_image, created_at
	`, r.ProductID, r.Rating, r.Comment, r.UserName, r.ReviewImage).Scan(
		&created.ID, &created.ProductID, &created.Rating, &created.Comment,
		&created.UserName, &created.ReviewImage, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create review: %w", err)
	}
	return created, nil
}

// ListByProduct returns all reviews for a product, newest first.
func (s *ReviewStore) ListByProduct(productID uuid.UUID) ([]models.Review, error) {
	rows, err := s.db.Query(`
		SELECT id, product_id, rating, comment, user_name, review_image, created_at
		FROM reviews WHERE product_id = $1 ORDER BY created_at DESC
	`, productID)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	reviews := []models.Review{}
	for rows.Next() {
		var r models.Review
		if err := rows.Scan(
			&r.ID, &r.ProductID, &r.Rating, &r.Comment,
			&r.UserName, &r.ReviewImage, &r.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

// RecomputeProductAggregate recalculates the product's rating from every
// stored review and writes it back. The average is recomputed from scratch
// rather than adjusted incrementally, so the aggregate self-heals after
// any drift. Rating is rounded to one decimal place.
func (s *ReviewStore) RecomputeProductAggregate(productID uuid.UUID) (float64, int, error) {
	var avg float64
	var count int
	err := s.db.QueryRow(`
		SELECT COALESCE(AVG(rating), 0), COUNT(*)
		FROM reviews WHERE product_id = $1
	`, productID).Scan(&avg, &count)
	if err != nil {
		return 0, 0, fmt.Errorf("aggregate reviews: %w", err)
	}

	rating := math.Round(avg*10) / 10
	_, err = s.db.Exec(`
		UPDATE products SET rating = $1, reviews_count = $2, updated_at = NOW()
		WHERE id = $3
	`, rating, count, productID)
	if err != nil {
		return 0, 0, fmt.Errorf("write rating aggregate: %w", err)
	}
	return rating, count, nil
}

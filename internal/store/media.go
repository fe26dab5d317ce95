package store

import (
	"database/sql"
	"fmt"

	"threadbox/internal/models"
)

// MediaStore tracks files uploaded through the upload proxy.
type MediaStore struct {
	db *sql.DB
}

// NewMediaStore creates a new MediaStore with the given database connection.
func NewMediaStore(db *sql.DB) *MediaStore {
	return &MediaStore{db: db}
}

// Create records an uploaded file's metadata.
func (s *MediaStore) Create(m *models.Media) (*models.Media, error) {
	created := &models.Media{}
	err := s.db.QueryRow(`
		INSERT INTO media (filename, original_name, content_type, size_bytes, s3_key, thumb_s3_key)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, filename, original_name, content_type, size_bytes, s3_key, thumb_s3_key, created_at
	`, m.Filename, m.OriginalName, m.ContentType, m.SizeBytes, m.S3Key, m.ThumbS3Key).Scan(
		&created.ID, &created.Filename, &created.OriginalName, &created.ContentType,
		&created.SizeBytes, &created.S3Key, &created.ThumbS3Key, &created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	return created, nil
}

// FindByKey retrieves a media record by its object key. Returns nil if not found.
func (s *MediaStore) FindByKey(key string) (*models.Media, error) {
	m := &models.Media{}
	err := s.db.QueryRow(`
		SELECT id, filename, original_name, content_type, size_bytes, s3_key, thumb_s3_key, created_at
		FROM media WHERE s3_key = $1
	`, key).Scan(
		&m.ID, &m.Filename, &m.OriginalName, &m.ContentType,
		&m.SizeBytes, &m.S3Key, &m.ThumbS3Key, &m.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find media by key: %w", err)
	}
	return m, nil
}

// DeleteByKey removes a media record. Returns true if a row was deleted.
func (s *MediaStore) DeleteByKey(key string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM media WHERE s3_key = $1`, key)
	if err != nil {
		return false, fmt.Errorf("delete media: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete media: %w", err)
	}
	return n > 0, nil
}

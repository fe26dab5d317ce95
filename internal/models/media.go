// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Media records a file uploaded through the upload proxy. Metadata lives
// in PostgreSQL; the file itself lives in the S3 bucket under S3Key, which
// is also the public id handed back to clients.
type Media struct {
	ID           uuid.UUID `json:"id"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"originalName"`
	ContentType  string    `json:"contentType"`
	SizeBytes    int64     `json:"sizeBytes"`
	S3Key        string    `json:"publicId"`
	ThumbS3Key   *string   `json:"thumbPublicId,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IsImage returns true if the media item is an image type.
func (m *Media) IsImage() bool {
	return strings.HasPrefix(m.ContentType, "image/")
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a customer review for a product. Reviews are immutable once
// created; there is no update or delete path. Creating one triggers a
// full recompute of the owning product's rating aggregate.
type Review struct {
	ID          uuid.UUID `json:"id"`
	ProductID   uuid.UUID `json:"productId"`
	Rating      int       `json:"rating"`
	Comment     string    `json:"comment"`
	UserName    string    `json:"userName"`
	ReviewImage string    `json:"reviewImage,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"time"

	"github.com/google/uuid"
)

// Category groups products for navigation. Products reference categories
// by free-text label, matched loosely against Name or Slug. There is no
// foreign key, and the association is advisory only.
type Category struct {
	ID             uuid.UUID `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description,omitempty"`
	Image          string    `json:"image,omitempty"`
	ParentCategory *string   `json:"parentCategory,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// CategoryPatch carries a partial category update.
type CategoryPatch struct {
	Name           *string `json:"name"`
	Slug           *string `json:"slug"`
	Description    *string `json:"description"`
	Image          *string `json:"image"`
	ParentCategory *string `json:"parentCategory"`
}

// Apply merges the non-nil patch fields onto the category.
func (cp *CategoryPatch) Apply(c *Category) {
	if cp.Name != nil {
		c.Name = *cp.Name
	}
	if cp.Slug != nil {
		c.Slug = *cp.Slug
	}
	if cp.Description != nil {
		c.Description = *cp.Description
	}
	if cp.Image != nil {
		c.Image = *cp.Image
	}
	if cp.ParentCategory != nil {
		c.ParentCategory = cp.ParentCategory
	}
}

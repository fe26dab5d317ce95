// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the data structures that map to database tables
// and provides the core types used throughout the application.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a catalog item. Rating and ReviewsCount are derived
// aggregates recomputed on every review write; the reviews table is the
// source of truth.
type Product struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	DescriptionHTML  string    `json:"descriptionHtml,omitempty"` // rendered from Description, never stored
	Price            float64   `json:"price"`
	Category         string    `json:"category"`
	MainImage        string    `json:"mainImage"`
	AdditionalImages []string  `json:"additionalImages"`
	Sizes            []string  `json:"sizes"`
	Colors           []string  `json:"colors"`
	InStock          bool      `json:"inStock"`
	Featured         bool      `json:"featured"`
	SKU              *string   `json:"sku,omitempty"`
	MaterialComposition *string `json:"materialComposition,omitempty"`
	CareInstructions    *string `json:"careInstructions,omitempty"`
	Weight              *string `json:"weight,omitempty"`
	Dimensions          *string `json:"dimensions,omitempty"`
	Imported            *string `json:"imported,omitempty"`
	Rating       float64   `json:"rating"`
	ReviewsCount int       `json:"reviewsCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// LegacyImages holds the deprecated flat image list found on documents
	// imported from the old catalog. Readers must call Normalize so clients
	// only ever see MainImage/AdditionalImages.
	LegacyImages []string `json:"images,omitempty"`
}

// Normalize converts legacy image data into the current shape: when
// MainImage is empty and the deprecated images list is present, the first
// entry becomes MainImage and the rest become AdditionalImages. It also
// guarantees non-nil slices so JSON clients get [] instead of null.
func (p *Product) Normalize() {
	if p.MainImage == "" && len(p.LegacyImages) > 0 {
		p.MainImage = p.LegacyImages[0]
		p.AdditionalImages = append([]string{}, p.LegacyImages[1:]...)
	}
	p.LegacyImages = nil

	if p.AdditionalImages == nil {
		p.AdditionalImages = []string{}
	}
	if p.Sizes == nil {
		p.Sizes = []string{}
	}
	if p.Colors == nil {
		p.Colors = []string{}
	}
}

// AllImages returns every image URL associated with the product, main image
// first. Used for cascading image deletion.
func (p *Product) AllImages() []string {
	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u != "" && !seen[u] {
			seen[u] = true
			urls = append(urls, u)
		}
	}
	add(p.MainImage)
	for _, u := range p.AdditionalImages {
		add(u)
	}
	for _, u := range p.LegacyImages {
		add(u)
	}
	return urls
}

// ProductFilter narrows a catalog listing. Category is an exact match;
// Query is a case-insensitive substring search over name, description
// and SKU.
type ProductFilter struct {
	Category string
	Featured bool
	Query    string
}

// ProductPatch carries a partial product update. Nil fields are left
// untouched; the merge semantics mirror a document-store $set.
type ProductPatch struct {
	Name                *string   `json:"name"`
	Description         *string   `json:"description"`
	Price               *float64  `json:"price"`
	Category            *string   `json:"category"`
	MainImage           *string   `json:"mainImage"`
	AdditionalImages    *[]string `json:"additionalImages"`
	Sizes               *[]string `json:"sizes"`
	Colors              *[]string `json:"colors"`
	InStock             *bool     `json:"inStock"`
	Featured            *bool     `json:"featured"`
	SKU                 *string   `json:"sku"`
	MaterialComposition *string   `json:"materialComposition"`
	CareInstructions    *string   `json:"careInstructions"`
	Weight              *string   `json:"weight"`
	Dimensions          *string   `json:"dimensions"`
	Imported            *string   `json:"imported"`
}

// Apply merges the non-nil patch fields onto the product.
func (pp *ProductPatch) Apply(p *Product) {
	if pp.Name != nil {
		p.Name = *pp.Name
	}
	if pp.Description != nil {
		p.Description = *pp.Description
	}
	if pp.Price != nil {
		p.Price = *pp.Price
	}
	if pp.Category != nil {
		p.Category = *pp.Category
	}
	if pp.MainImage != nil {
		p.MainImage = *pp.MainImage
	}
	if pp.AdditionalImages != nil {
		p.AdditionalImages = *pp.AdditionalImages
	}
	if pp.Sizes != nil {
		p.Sizes = *pp.Sizes
	}
	if pp.Colors != nil {
		p.Colors = *pp.Colors
	}
	if pp.InStock != nil {
		p.InStock = *pp.InStock
	}
	if pp.Featured != nil {
		p.Featured = *pp.Featured
	}
	if pp.SKU != nil {
		p.SKU = pp.SKU
	}
	if pp.MaterialComposition != nil {
		p.MaterialComposition = pp.MaterialComposition
	}
	if pp.CareInstructions != nil {
		p.CareInstructions = pp.CareInstructions
	}
	if pp.Weight != nil {
		p.Weight = pp.Weight
	}
	if pp.Dimensions != nil {
		p.Dimensions = pp.Dimensions
	}
	if pp.Imported != nil {
		p.Imported = pp.Imported
	}
}

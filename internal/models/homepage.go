// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// HomepageKind identifies one of the six homepage content collections.
// The value doubles as the URL path segment under /homepage.
type HomepageKind string

const (
	KindHeroSlides     HomepageKind = "hero-slides"
	KindBrands         HomepageKind = "brands"
	KindShopCategories HomepageKind = "shop-categories"
	KindSecondHero     HomepageKind = "second-hero"
	KindTrending       HomepageKind = "trending"
	KindInstagram      HomepageKind = "instagram"
)

// HomepageKinds lists every valid kind, in display order on the homepage.
var HomepageKinds = []HomepageKind{
	KindHeroSlides, KindBrands, KindShopCategories,
	KindSecondHero, KindTrending, KindInstagram,
}

// HomepageKindFromPath validates a /homepage/{kind} path segment.
func HomepageKindFromPath(segment string) (HomepageKind, bool) {
	for _, k := range HomepageKinds {
		if string(k) == segment {
			return k, true
		}
	}
	return "", false
}

// HomepageItem is one entry in a homepage collection. All six kinds share
// position and active flags; kind-specific fields (titles, images, links,
// prices) live in Data and round-trip untouched, so partial updates merge
// document-style. Trending items additionally link a backing Product.
type HomepageItem struct {
	ID        uuid.UUID
	Kind      HomepageKind
	Position  int
	IsActive  bool
	ProductID *uuid.UUID // trending only
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// MarshalJSON flattens Data alongside the common fields so clients see the
// same flat document shape they submitted.
func (it HomepageItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(it.Data)+6)
	for k, v := range it.Data {
		out[k] = v
	}
	out["id"] = it.ID
	out["order"] = it.Position
	out["isActive"] = it.IsActive
	if it.ProductID != nil {
		out["productId"] = it.ProductID.String()
	}
	out["createdAt"] = it.CreatedAt
	out["updatedAt"] = it.UpdatedAt
	return json.Marshal(out)
}

// SplitHomepageFields separates the common homepage fields from a raw
// request document. The remainder is the kind-specific Data payload.
// Defaults follow the admin surface: order 0, active true.
func SplitHomepageFields(body map[string]any) (position int, isActive bool, productID *uuid.UUID, data map[string]any) {
	isActive = true
	data = make(map[string]any, len(body))

	for k, v := range body {
		switch k {
		case "order":
			if f, ok := v.(float64); ok {
				position = int(f)
			}
		case "isActive":
			if b, ok := v.(bool); ok {
				isActive = b
			}
		case "productId":
			if s, ok := v.(string); ok {
				if id, err := uuid.Parse(s); err == nil {
					productID = &id
				}
			}
		case "id", "createdAt", "updatedAt":
			// Server-managed; ignore client-supplied values.
		default:
			data[k] = v
		}
	}
	return position, isActive, productID, data
}

// StringField reads a string value from the item's Data payload.
func (it *HomepageItem) StringField(key string) string {
	s, _ := it.Data[key].(string)
	return s
}

// FloatField reads a numeric value from the item's Data payload.
func (it *HomepageItem) FloatField(key string) float64 {
	f, _ := it.Data[key].(float64)
	return f
}

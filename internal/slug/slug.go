// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug provides URL-friendly slug generation and the normalized
// string comparison used for loose category matching.
package slug

import (
	"regexp"
	"strings"
)

var (
	// nonAlphanumeric matches anything that isn't a letter, digit, or space.
	nonAlphanumeric = regexp.MustCompile(`[^a-z0-9\s-]`)
	// multipleHyphens collapses consecutive hyphens into one.
	multipleHyphens = regexp.MustCompile(`-{2,}`)
	// whitespace matches any run of whitespace characters.
	whitespace = regexp.MustCompile(`\s+`)
)

// Generate creates a URL-friendly slug from the given string.
// Example: "Occasion Wear 2026" → "occasion-wear-2026"
func Generate(s string) string {
	result := strings.ToLower(strings.TrimSpace(s))
	result = nonAlphanumeric.ReplaceAllString(result, "")
	result = strings.ReplaceAll(result, " ", "-")
	result = multipleHyphens.ReplaceAllString(result, "-")
	result = strings.Trim(result, "-")
	return result
}

// Normalize lowercases a label and strips all whitespace. Products carry
// their category as a free-text label with no foreign key; two labels are
// considered the same category when their normalized forms match.
func Normalize(s string) string {
	return whitespace.ReplaceAllString(strings.ToLower(s), "")
}

// Matches reports whether a product's category label refers to the given
// category name or slug. The comparison is case- and whitespace-insensitive
// and purely advisory; nothing enforces the association.
func Matches(label, name, categorySlug string) bool {
	n := Normalize(label)
	if n == "" {
		return false
	}
	return n == Normalize(name) || n == Normalize(categorySlug)
}

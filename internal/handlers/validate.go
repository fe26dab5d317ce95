package handlers

import (
	"net/mail"
	"strings"
	"unicode/utf8"

	"threadbox/internal/models"
)

// Validation limits for request fields.
const (
	maxNameLen     = 300
	maxDescLen     = 100_000
	maxCommentLen  = 5_000
	maxUserNameLen = 200
	maxEmailLen    = 320
	minPasswordLen = 8
	maxPasswordLen = 200
)

// validateProduct checks product inputs and returns the first error found.
func validateProduct(name string, price float64) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Product name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Product name is too long (max 300 characters)."
	}
	if price < 0 {
		return "Price must not be negative."
	}
	return ""
}

// validateNewProduct checks the fields a product must carry when it
// first enters the catalog. Updates run the lighter validateProduct so
// legacy rows with sparse fields stay editable.
func validateNewProduct(p *models.Product) string {
	if msg := validateProduct(p.Name, p.Price); msg != "" {
		return msg
	}
	if strings.TrimSpace(p.Description) == "" {
		return "Product description is required."
	}
	if utf8.RuneCountInString(p.Description) > maxDescLen {
		return "Product description is too long."
	}
	if strings.TrimSpace(p.Category) == "" {
		return "Product category is required."
	}
	if strings.TrimSpace(p.MainImage) == "" {
		return "Product main image is required."
	}
	return ""
}

// validateCategory checks category inputs and returns the first error found.
func validateCategory(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Category name is required."
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return "Category name is too long (max 300 characters)."
	}
	return ""
}

// validateReview checks review inputs and returns the first error found.
func validateReview(rating int, comment, userName string) string {
	if rating < 1 || rating > 5 {
		return "Rating must be between 1 and 5."
	}
	if strings.TrimSpace(userName) == "" {
		return "Reviewer name is required."
	}
	if utf8.RuneCountInString(userName) > maxUserNameLen {
		return "Reviewer name is too long (max 200 characters)."
	}
	if utf8.RuneCountInString(comment) > maxCommentLen {
		return "Comment is too long (max 5,000 characters)."
	}
	return ""
}

// validateCredentials checks registration inputs and returns the first
// error found.
func validateCredentials(name, email, password string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required."
	}
	if utf8.RuneCountInString(name) > maxUserNameLen {
		return "Name is too long (max 200 characters)."
	}
	if len(email) > maxEmailLen {
		return "Email is too long."
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return "A valid email address is required."
	}
	if len(password) < minPasswordLen {
		return "Password must be at least 8 characters."
	}
	if len(password) > maxPasswordLen {
		return "Password is too long (max 200 characters)."
	}
	return ""
}

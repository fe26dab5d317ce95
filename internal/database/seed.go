package database

import (
	"database/sql"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"
)

// Seed populates the database with initial development data: a default
// admin, a demo customer, and a small catalog. It is a no-op when users
// already exist.
func Seed(db *sql.DB) error {
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count); err != nil {
		return fmt.Errorf("seed check users: %w", err)
	}

	if count > 0 {
		slog.Info("database already seeded, skipping")
		return nil
	}

	adminHash, err := bcrypt.GenerateFromPassword([]byte("admin"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}
	customerHash, err := bcrypt.GenerateFromPassword([]byte("customer"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("seed bcrypt: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, 'admin'), ($4, $5, $6, 'user')
	`, "Admin", "admin@threadbox.local", string(adminHash),
		"Demo Customer", "customer@threadbox.local", string(customerHash))
	if err != nil {
		return fmt.Errorf("seed insert users: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO categories (name, slug, description) VALUES
		('Bridal', 'bridal', 'Wedding and occasion wear'),
		('Casual', 'casual', 'Everyday essentials'),
		('Trending', 'trending', 'Curated picks from the homepage')
	`)
	if err != nil {
		return fmt.Errorf("seed insert categories: %w", err)
	}

	// One product keeps the deprecated legacy_images shape so the
	// backward-compat read path stays exercised in development.
	_, err = db.Exec(`
		INSERT INTO products (name, description, price, category, main_image, additional_images, sku, featured) VALUES
		('Premium Bridal Suit', 'Hand-finished three-piece suit in ivory.', 289.00, 'Bridal', 'https://img.threadbox.local/bridal-suit.jpg', '["https://img.threadbox.local/bridal-suit-back.jpg"]', 'TB-BRD-001', TRUE),
		('Casual Dress', 'Relaxed cotton day dress.', 49.90, 'Casual', 'https://img.threadbox.local/casual-dress.jpg', '[]', 'TB-CAS-014', FALSE)
	`)
	if err != nil {
		return fmt.Errorf("seed insert products: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO products (name, description, price, category, legacy_images, sku)
		VALUES ('Linen Shirt (archive import)', 'Imported from the old catalog.', 35.00, 'Casual',
		        '["https://img.threadbox.local/linen-1.jpg","https://img.threadbox.local/linen-2.jpg"]', 'TB-CAS-002')
	`)
	if err != nil {
		return fmt.Errorf("seed insert legacy product: %w", err)
	}

	_, err = db.Exec(`
		INSERT INTO homepage_items (kind, position, data) VALUES
		('hero-slides', 0, '{"title": "The Bridal Edit", "subtitle": "New season, new silhouettes", "image": "https://img.threadbox.local/hero-bridal.jpg", "link": "/category/bridal"}'),
		('brands', 0, '{"name": "Maison Fil", "logo": "https://img.threadbox.local/brand-maisonfil.png"}'),
		('shop-categories', 0, '{"name": "Bridal", "image": "https://img.threadbox.local/cat-bridal.jpg", "link": "/category/bridal"}'),
		('second-hero', 0, '{"title": "Made to last", "image": "https://img.threadbox.local/second-hero.jpg"}'),
		('instagram', 0, '{"image": "https://img.threadbox.local/ig-1.jpg", "link": "https://instagram.com/threadbox"}')
	`)
	if err != nil {
		return fmt.Errorf("seed insert homepage items: %w", err)
	}

	slog.Info("database seeded with default users and demo catalog",
		"admin", "admin@threadbox.local",
		"password", "admin",
	)

	return nil
}

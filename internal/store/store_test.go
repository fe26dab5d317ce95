// store_test.go provides a shared test database helper for all store
// integration tests. Tests are skipped if PostgreSQL is not available.
package store

import (
	"database/sql"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"threadbox/internal/database"
	"threadbox/internal/models"
)

// testDSN returns the PostgreSQL connection string for testing.
// Uses environment variables with defaults matching docker-compose.yml.
func testDSN() string {
	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "threadbox")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "threadbox")
	return "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test database and runs migrations.
// If the database is unavailable, the test is skipped. A cleanup
// function is registered to close the connection when the test finishes.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("pgx", testDSN())
	if err != nil {
		t.Skipf("skipping integration test: cannot open DB: %v", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping integration test: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	// Downgrade goose global state.
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// cleanUsers removes test users by email. Call in t.Cleanup().
func cleanUsers(t *testing.T, db *sql.DB, emails ...string) {
	t.Helper()
	for _, email := range emails {
		db.Exec("DELETE FROM users WHERE email = $1", email)
	}
}

// cleanProducts removes test products by name. Call in t.Cleanup().
func cleanProducts(t *testing.T, db *sql.DB, names ...string) {
	t.Helper()
	for _, name := range names {
		db.Exec("DELETE FROM products WHERE name = $1", name)
	}
}

// cleanReviews removes reviews for a product. Call in t.Cleanup().
func cleanReviews(t *testing.T, db *sql.DB, productID uuid.UUID) {
	t.Helper()
	db.Exec("DELETE FROM reviews WHERE product_id = $1", productID)
}

// cleanCategories removes test categories by slug. Call in t.Cleanup().
func cleanCategories(t *testing.T, db *sql.DB, slugs ...string) {
	t.Helper()
	for _, slug := range slugs {
		db.Exec("DELETE FROM categories WHERE slug = $1", slug)
	}
}

// cleanOrders removes a user's orders. Call in t.Cleanup().
func cleanOrders(t *testing.T, db *sql.DB, userID uuid.UUID) {
	t.Helper()
	db.Exec("DELETE FROM orders WHERE user_id = $1", userID)
}

// cleanHomepage removes homepage items by id. Call in t.Cleanup().
func cleanHomepage(t *testing.T, db *sql.DB, ids ...uuid.UUID) {
	t.Helper()
	for _, id := range ids {
		db.Exec("DELETE FROM homepage_items WHERE id = $1", id)
	}
}

// mustCreateProduct inserts a minimal product for tests that need one.
func mustCreateProduct(t *testing.T, db *sql.DB, name string, price float64) *models.Product {
	t.Helper()
	p, err := NewProductStore(db).Create(&models.Product{
		Name:      name,
		Price:     price,
		Category:  "Test Wear",
		MainImage: "https://cdn.test.local/" + name + ".jpg",
		InStock:   true,
	})
	if err != nil {
		t.Fatalf("create test product: %v", err)
	}
	return p
}

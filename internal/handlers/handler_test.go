// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// Redis-backed features run when Redis is reachable too.
package handlers

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"threadbox/internal/database"
	"threadbox/internal/middleware"
	"threadbox/internal/models"
	"threadbox/internal/session"
	"threadbox/internal/store"
	"threadbox/internal/token"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "threadbox")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "threadbox")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRedis returns a shopping store on Redis DB 15, or nil if Redis is
// unreachable. Handlers degrade gracefully with a nil store.
func testRedis(t *testing.T) *session.Store {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_HOST", "localhost") + ":" + envOr("REDIS_PORT", "6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       15,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		client.Close()
		return nil
	}
	t.Cleanup(func() { client.Close() })
	return session.NewStore(client)
}

// testEnv wires a full API with a chi router matching production routes.
type testEnv struct {
	db     *sql.DB
	api    *API
	router chi.Router
	tokens *token.Service
	users  *store.UserStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db := testDB(t)
	tokens := token.NewService("handler-test-secret", time.Hour)

	api := NewAPI(Config{
		Products:   store.NewProductStore(db),
		Categories: store.NewCategoryStore(db),
		Reviews:    store.NewReviewStore(db),
		Orders:     store.NewOrderStore(db),
		Users:      store.NewUserStore(db),
		Homepage:   store.NewHomepageStore(db),
		Media:      store.NewMediaStore(db),
		Tokens:     tokens,
		Shopping:   testRedis(t),
	})

	r := chi.NewRouter()
	r.Use(middleware.Authenticate(tokens))

	r.Get("/products", api.ProductList)
	r.Get("/products/{id}", api.ProductGet)
	r.Get("/products/{id}/reviews", api.ReviewList)
	r.Post("/products/{id}/reviews", api.ReviewCreate)
	r.Get("/reviews", api.ReviewList)
	r.Post("/reviews", api.ReviewCreate)
	r.Get("/categories", api.CategoryList)
	r.Get("/categories/{id}", api.CategoryGet)
	r.Get("/categories/{id}/products", api.CategoryProducts)
	r.Get("/homepage/{kind}", api.HomepageList)
	r.Post("/auth/register", api.Register)
	r.Post("/auth/login", api.Login)

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/auth/me", api.Me)
		r.Post("/auth/2fa/verify", api.TwoFAVerify)
		r.Post("/orders", api.OrderCreate)
		r.Get("/orders", api.OrderList)
		r.Get("/orders/{id}", api.OrderGet)
		r.Get("/cart", api.CartGet)
		r.Post("/cart", api.CartAdd)
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Post("/products", api.ProductCreate)
		r.Put("/products/{id}", api.ProductUpdate)
		r.Delete("/products/{id}", api.ProductDelete)
		r.Post("/categories", api.CategoryCreate)
		r.Put("/orders/{id}", api.OrderUpdateStatus)
		r.Post("/homepage/{kind}", api.HomepageCreate)
		r.Put("/homepage/{kind}/{id}", api.HomepageUpdate)
		r.Delete("/homepage/{kind}/{id}", api.HomepageDelete)
		r.Get("/users", api.UserList)
	})

	return &testEnv{db: db, api: api, router: r, tokens: tokens, users: store.NewUserStore(db)}
}

// do runs a request through the router and decodes the envelope.
func (e *testEnv) do(t *testing.T, method, path, bearer string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	var env envelope
	if rec.Body.Len() > 0 {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope (%s %s, status %d): %v", method, path, rec.Code, err)
		}
	}
	return rec, env
}

// adminToken creates an admin account (no TOTP) and returns a bearer token.
func (e *testEnv) adminToken(t *testing.T) string {
	t.Helper()

	email := "admin-" + uuid.NewString()[:8] + "@handler-test.local"
	admin, err := e.users.Create("Handler Admin", email, "adminpass123", models.RoleAdmin)
	if err != nil {
		t.Fatalf("create admin: %v", err)
	}
	t.Cleanup(func() { e.db.Exec("DELETE FROM users WHERE id = $1", admin.ID) })

	signed, err := e.tokens.Issue(admin, true)
	if err != nil {
		t.Fatalf("issue admin token: %v", err)
	}
	return signed
}

// userToken creates a regular account and returns its token and id.
func (e *testEnv) userToken(t *testing.T) (string, uuid.UUID) {
	t.Helper()

	email := "user-" + uuid.NewString()[:8] + "@handler-test.local"
	user, err := e.users.Create("Handler User", email, "userpass123", models.RoleUser)
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	t.Cleanup(func() { e.db.Exec("DELETE FROM users WHERE id = $1", user.ID) })

	signed, err := e.tokens.Issue(user, true)
	if err != nil {
		t.Fatalf("issue user token: %v", err)
	}
	return signed, user.ID
}

// dataMap re-decodes envelope data as an object.
func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()
	m, ok := env.Data.(map[string]any)
	if !ok {
		t.Fatalf("envelope data is %T, want object", env.Data)
	}
	return m
}

// dataList re-decodes envelope data as an array.
func dataList(t *testing.T, env envelope) []any {
	t.Helper()
	l, ok := env.Data.([]any)
	if !ok {
		t.Fatalf("envelope data is %T, want array", env.Data)
	}
	return l
}

func cleanupProduct(e *testEnv, name string) {
	e.db.Exec("DELETE FROM products WHERE name = $1", name)
}

// productBody returns the smallest payload that passes product creation
// validation. Callers override fields as needed.
func productBody(name string, price float64) map[string]any {
	return map[string]any{
		"name":        name,
		"price":       price,
		"description": "A well made piece for everyday wear.",
		"category":    "Casual Wear",
		"mainImage":   "https://img.threadbox.local/products/placeholder.jpg",
	}
}

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"threadbox/internal/handlers"
	"threadbox/internal/token"
)

func TestHealthEndpoint(t *testing.T) {
	tokens := token.NewService("router-test-secret", time.Hour)
	r := New(tokens, handlers.NewAPI(handlers.Config{Tokens: tokens}))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest("GET", "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("health: got %d, want 200", rec.Code)
	}
	if rec.Body.String() != `{"status":"ok"}` {
		t.Errorf("health body: %s", rec.Body.String())
	}
}

func TestProtectedRoutesRejectAnonymous(t *testing.T) {
	tokens := token.NewService("router-test-secret", time.Hour)
	r := New(tokens, handlers.NewAPI(handlers.Config{Tokens: tokens}))

	cases := []struct {
		method, path string
		want         int
	}{
		{"GET", "/orders", http.StatusUnauthorized},
		{"GET", "/cart", http.StatusUnauthorized},
		{"POST", "/products", http.StatusUnauthorized},
		{"GET", "/users", http.StatusUnauthorized},
		{"POST", "/upload", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.want {
			t.Errorf("%s %s: got %d, want %d", tc.method, tc.path, rec.Code, tc.want)
		}
	}
}

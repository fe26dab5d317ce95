// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"threadbox/internal/models"
	"threadbox/internal/token"
)

func testTokens() *token.Service {
	return token.NewService("middleware-test-secret", time.Hour)
}

func signedToken(t *testing.T, tokens *token.Service, role models.Role, twoFADone bool) string {
	t.Helper()
	signed, err := tokens.Issue(&models.User{ID: uuid.New(), Role: role}, twoFADone)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return signed
}

// okHandler records whether it ran and what claims it saw.
func okHandler(ran *bool, claims **token.Claims) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*ran = true
		if claims != nil {
			*claims = ClaimsFromCtx(r.Context())
		}
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticatePassesThroughWithoutHeader(t *testing.T) {
	var ran bool
	var claims *token.Claims
	h := Authenticate(testTokens())(okHandler(&ran, &claims))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/products", nil))

	if !ran {
		t.Fatal("handler should run for anonymous requests")
	}
	if claims != nil {
		t.Error("expected no claims without a token")
	}
}

func TestAuthenticateLoadsClaims(t *testing.T) {
	tokens := testTokens()
	var ran bool
	var claims *token.Claims
	h := Authenticate(tokens)(okHandler(&ran, &claims))

	req := httptest.NewRequest("GET", "/orders", nil)
	req.Header.Set("Authorization", "Bearer "+signedToken(t, tokens, models.RoleUser, true))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if !ran || claims == nil {
		t.Fatal("expected handler to run with loaded claims")
	}
	if claims.Role != "user" {
		t.Errorf("role: got %q", claims.Role)
	}
}

func TestAuthenticateRejectsBadToken(t *testing.T) {
	var ran bool
	h := Authenticate(testTokens())(okHandler(&ran, nil))

	for _, header := range []string{"Bearer garbage", "Basic abc123"} {
		req := httptest.NewRequest("GET", "/orders", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%q: got %d, want 401", header, rec.Code)
		}
	}
	if ran {
		t.Error("handler must not run with a rejected token")
	}
}

func TestRequireAuth(t *testing.T) {
	var ran bool
	h := RequireAuth(okHandler(&ran, nil))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/orders", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("got %d, want 401", rec.Code)
	}
	if ran {
		t.Error("handler must not run unauthenticated")
	}
}

func TestRequireAdmin(t *testing.T) {
	tokens := testTokens()

	cases := []struct {
		name      string
		role      models.Role
		twoFADone bool
		want      int
	}{
		{"admin with 2fa", models.RoleAdmin, true, http.StatusOK},
		{"admin pending 2fa", models.RoleAdmin, false, http.StatusForbidden},
		{"regular user", models.RoleUser, true, http.StatusForbidden},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var ran bool
			h := Authenticate(tokens)(RequireAdmin(okHandler(&ran, nil)))

			req := httptest.NewRequest("DELETE", "/products/abc", nil)
			req.Header.Set("Authorization", "Bearer "+signedToken(t, tokens, tc.role, tc.twoFADone))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tc.want {
				t.Errorf("got %d, want %d", rec.Code, tc.want)
			}
			if ran != (tc.want == http.StatusOK) {
				t.Errorf("handler ran=%v", ran)
			}
		})
	}
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"threadbox/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// ClaimsKey is the context key for the verified token claims.
	ClaimsKey contextKey = "claims"
)

// writeError sends the standard JSON error envelope. Middleware cannot
// import the handlers package, so the shape is duplicated here.
func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"success": false,
		"error":   message,
	})
}

// Authenticate verifies a Bearer token if one is present and stores its
// claims in the request context. Downstream handlers can access them via
// ClaimsFromCtx(). This middleware does NOT enforce authentication, it
// just loads the claims when a valid token exists.
func Authenticate(tokens *token.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				writeError(w, http.StatusUnauthorized, "Invalid authorization header")
				return
			}

			claims, err := tokens.Verify(strings.TrimSpace(raw))
			if err != nil {
				writeError(w, http.StatusUnauthorized, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth returns 401 for requests without verified claims.
// Must be applied after Authenticate in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ClaimsFromCtx(r.Context()) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireAdmin returns 403 unless the authenticated user is an admin who
// has completed two-factor verification for this token. Admins without
// TOTP enrolled carry TwoFADone=true from login and pass through.
// Must be applied after Authenticate.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromCtx(r.Context())
		if claims == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		if !claims.IsAdmin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		if !claims.TwoFADone {
			writeError(w, http.StatusForbidden, "Two-factor verification required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClaimsFromCtx extracts the verified token claims from the request
// context. Returns nil if the request is not authenticated.
func ClaimsFromCtx(ctx context.Context) *token.Claims {
	claims, _ := ctx.Value(ClaimsKey).(*token.Claims)
	return claims
}

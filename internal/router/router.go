// Package router sets up all HTTP routes and middleware chains for the
// threadbox API. It organizes routes into public, authenticated, and
// admin groups with appropriate middleware stacks.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"threadbox/internal/handlers"
	"threadbox/internal/middleware"
	"threadbox/internal/token"
)

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(tokens *token.Service, api *handlers.API) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Authenticate(tokens))

	// Health check, no auth.
	r.Get("/health", healthHandler)

	// Login and register get a tighter rate limit than the rest of the
	// API to slow credential stuffing.
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", api.Register)
			r.Post("/login", api.Login)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth)
			r.Get("/me", api.Me)
			r.Post("/2fa/setup", api.TwoFASetup)
			r.Post("/2fa/verify", api.TwoFAVerify)
		})
	})

	// Flat review routes kept for old clients; the nested product routes
	// below are the primary surface.
	r.Get("/reviews", api.ReviewList)
	r.Post("/reviews", api.ReviewCreate)

	// Catalog reads are public.
	r.Route("/products", func(r chi.Router) {
		r.Get("/", api.ProductList)
		r.Get("/{id}", api.ProductGet)
		r.Get("/{id}/reviews", api.ReviewList)
		r.Post("/{id}/reviews", api.ReviewCreate)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", api.ProductCreate)
			r.Put("/{id}", api.ProductUpdate)
			r.Delete("/{id}", api.ProductDelete)
		})
	})

	r.Route("/categories", func(r chi.Router) {
		r.Get("/", api.CategoryList)
		r.Get("/{id}", api.CategoryGet)
		r.Get("/{id}/products", api.CategoryProducts)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/", api.CategoryCreate)
			r.Put("/{id}", api.CategoryUpdate)
			r.Delete("/{id}", api.CategoryDelete)
		})
	})

	// Homepage collections: public reads, admin writes.
	r.Route("/homepage", func(r chi.Router) {
		r.Get("/{kind}", api.HomepageList)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Post("/{kind}", api.HomepageCreate)
			r.Put("/{kind}/{id}", api.HomepageUpdate)
			r.Delete("/{kind}/{id}", api.HomepageDelete)
		})
	})

	// Orders need a signed-in customer; status changes need an admin.
	r.Route("/orders", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/", api.OrderCreate)
		r.Get("/", api.OrderList)
		r.Get("/{id}", api.OrderGet)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAdmin)
			r.Put("/{id}", api.OrderUpdateStatus)
			r.Delete("/{id}", api.OrderDelete)
		})
	})

	// Server-side cart and wishlist.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", api.CartGet)
			r.Post("/", api.CartAdd)
			r.Delete("/", api.CartClear)
			r.Put("/{productId}", api.CartUpdateItem)
			r.Delete("/{productId}", api.CartRemoveItem)
		})

		r.Route("/wishlist", func(r chi.Router) {
			r.Get("/", api.WishlistGet)
			r.Post("/", api.WishlistAdd)
			r.Delete("/{productId}", api.WishlistRemove)
		})
	})

	// Admin-only surfaces.
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAdmin)
		r.Get("/users", api.UserList)
		r.Post("/upload", api.Upload)
		r.Delete("/upload", api.UploadDelete)
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

// session tests require a running Redis instance and are skipped when one
// is not reachable.
package session

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"

	"threadbox/internal/cache"
	"threadbox/internal/models"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func testStore(t *testing.T) *Store {
	t.Helper()

	client, err := cache.Connect(envOr("REDIS_HOST", "localhost"), envOr("REDIS_PORT", "6379"), os.Getenv("REDIS_PASSWORD"))
	if err != nil {
		t.Skipf("skipping integration test: redis not reachable: %v", err)
	}
	t.Cleanup(func() { client.Close() })
	return NewStore(client)
}

func TestCartLifecycle(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	userID := uuid.New()
	t.Cleanup(func() { s.ClearCart(ctx, userID) })

	// A user with no cart gets an empty one.
	cart, err := s.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart: %v", err)
	}
	if len(cart.Items) != 0 {
		t.Fatalf("fresh cart: got %d items", len(cart.Items))
	}

	cart.Upsert(models.CartItem{ProductID: "p1", Name: "Casual Dress", Price: 59.99, Quantity: 2})
	if err := s.SaveCart(ctx, userID, cart); err != nil {
		t.Fatalf("SaveCart: %v", err)
	}

	loaded, err := s.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart (after save): %v", err)
	}
	if len(loaded.Items) != 1 || loaded.Items[0].Quantity != 2 {
		t.Errorf("loaded cart: %+v", loaded.Items)
	}
	if loaded.Total() != 119.98 {
		t.Errorf("total: got %.2f", loaded.Total())
	}

	if err := s.ClearCart(ctx, userID); err != nil {
		t.Fatalf("ClearCart: %v", err)
	}
	cleared, err := s.GetCart(ctx, userID)
	if err != nil {
		t.Fatalf("GetCart (after clear): %v", err)
	}
	if len(cleared.Items) != 0 {
		t.Error("cart should be empty after clear")
	}
}

func TestWishlist(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()
	userID := uuid.New()
	t.Cleanup(func() {
		s.RemoveFromWishlist(ctx, userID, "p1")
		s.RemoveFromWishlist(ctx, userID, "p2")
	})

	if err := s.AddToWishlist(ctx, userID, "p1"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	if err := s.AddToWishlist(ctx, userID, "p2"); err != nil {
		t.Fatalf("AddToWishlist: %v", err)
	}
	// Adding twice is a no-op, not a duplicate.
	if err := s.AddToWishlist(ctx, userID, "p1"); err != nil {
		t.Fatalf("AddToWishlist (dup): %v", err)
	}

	ids, err := s.GetWishlist(ctx, userID)
	if err != nil {
		t.Fatalf("GetWishlist: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("wishlist: got %d ids, want 2", len(ids))
	}

	removed, err := s.RemoveFromWishlist(ctx, userID, "p1")
	if err != nil {
		t.Fatalf("RemoveFromWishlist: %v", err)
	}
	if !removed {
		t.Error("expected p1 to be removed")
	}
	removed, err = s.RemoveFromWishlist(ctx, userID, "missing")
	if err != nil {
		t.Fatalf("RemoveFromWishlist (missing): %v", err)
	}
	if removed {
		t.Error("removing an absent id must report false")
	}
}

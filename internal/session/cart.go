// Package session provides Redis-backed per-user shopping state. Carts
// and wishlists are stored as JSON keyed by user id with automatic TTL
// expiry, so the same cart follows the user across devices.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"threadbox/internal/models"
)

const (
	// DefaultTTL is how long an untouched cart or wishlist lives in Redis.
	DefaultTTL = 30 * 24 * time.Hour

	// cartPrefix and wishlistPrefix namespace the keys in Redis.
	cartPrefix     = "cart:"
	wishlistPrefix = "wishlist:"
)

// Store manages cart and wishlist lifecycle in Redis.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore creates a shopping state store backed by the given Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client, ttl: DefaultTTL}
}

// GetCart retrieves a user's cart. A missing key is an empty cart, never
// an error.
func (s *Store) GetCart(ctx context.Context, userID uuid.UUID) (*models.Cart, error) {
	payload, err := s.client.Get(ctx, cartPrefix+userID.String()).Bytes()
	if err == redis.Nil {
		return &models.Cart{Items: []models.CartItem{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cart get: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return nil, fmt.Errorf("cart unmarshal: %w", err)
	}
	if cart.Items == nil {
		cart.Items = []models.CartItem{}
	}
	return &cart, nil
}

// SaveCart replaces a user's cart and resets its TTL. An empty cart
// deletes the key instead of storing an empty document.
func (s *Store) SaveCart(ctx context.Context, userID uuid.UUID, cart *models.Cart) error {
	key := cartPrefix + userID.String()

	if len(cart.Items) == 0 {
		if err := s.client.Del(ctx, key).Err(); err != nil {
			return fmt.Errorf("cart clear: %w", err)
		}
		return nil
	}

	payload, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("cart marshal: %w", err)
	}
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("cart store: %w", err)
	}
	return nil
}

// ClearCart removes a user's cart, typically after checkout.
func (s *Store) ClearCart(ctx context.Context, userID uuid.UUID) error {
	if err := s.client.Del(ctx, cartPrefix+userID.String()).Err(); err != nil {
		return fmt.Errorf("cart clear: %w", err)
	}
	return nil
}

// GetWishlist returns the product ids on a user's wishlist.
func (s *Store) GetWishlist(ctx context.Context, userID uuid.UUID) ([]string, error) {
	ids, err := s.client.SMembers(ctx, wishlistPrefix+userID.String()).Result()
	if err != nil {
		return nil, fmt.Errorf("wishlist get: %w", err)
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}

// AddToWishlist adds a product id to the user's wishlist set.
func (s *Store) AddToWishlist(ctx context.Context, userID uuid.UUID, productID string) error {
	key := wishlistPrefix + userID.String()
	if err := s.client.SAdd(ctx, key, productID).Err(); err != nil {
		return fmt.Errorf("wishlist add: %w", err)
	}
	if err := s.client.Expire(ctx, key, s.ttl).Err(); err != nil {
		return fmt.Errorf("wishlist expire: %w", err)
	}
	return nil
}

// RemoveFromWishlist removes a product id from the user's wishlist.
// Returns true if the id was present.
func (s *Store) RemoveFromWishlist(ctx context.Context, userID uuid.UUID, productID string) (bool, error) {
	removed, err := s.client.SRem(ctx, wishlistPrefix+userID.String(), productID).Result()
	if err != nil {
		return false, fmt.Errorf("wishlist remove: %w", err)
	}
	return removed > 0, nil
}

// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// catalog.go provides a Redis-backed cache for serialized catalog
// responses. Product listings are read far more often than they change,
// so the encoded JSON for a listing is stored keyed by its query shape
// and any catalog write clears the whole keyspace.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// catalogKeyPrefix is the Redis key prefix for cached responses.
	catalogKeyPrefix = "catalog:"

	// DefaultCatalogTTL is how long a cached listing stays fresh without
	// an explicit invalidation.
	DefaultCatalogTTL = 5 * time.Minute
)

// CatalogCache manages serialized catalog response caching in Redis.
type CatalogCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewCatalogCache creates a catalog cache backed by the given Redis client.
func NewCatalogCache(client *redis.Client, ttl time.Duration) *CatalogCache {
	if ttl == 0 {
		ttl = DefaultCatalogTTL
	}
	return &CatalogCache{client: client, ttl: ttl}
}

// Get retrieves a cached response body. Returns false on miss. Cache
// errors degrade to a miss so Redis outages never break reads.
func (cc *CatalogCache) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := cc.client.Get(ctx, catalogKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("catalog cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("catalog cache hit", "key", key)
	return val, true
}

// Set stores an encoded response body with the configured TTL.
func (cc *CatalogCache) Set(ctx context.Context, key string, body []byte) {
	if err := cc.client.Set(ctx, catalogKeyPrefix+key, body, cc.ttl).Err(); err != nil {
		slog.Warn("catalog cache set error", "key", key, "error", err)
	}
}

// InvalidateAll removes every cached listing by scanning for the prefix.
// Called on any product, category or review write; listings are cheap to
// rebuild and fine-grained invalidation is not worth tracking which
// queries a write affects.
func (cc *CatalogCache) InvalidateAll(ctx context.Context) {
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := cc.client.Scan(ctx, cursor, catalogKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("catalog cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := cc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("catalog cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("catalog cache cleared", "deleted", deleted)
	}
}

// ListKey builds the cache key for a product listing query.
func ListKey(category string, featured bool, query string) string {
	key := "products:c=" + category + ":q=" + query
	if featured {
		key += ":featured"
	}
	return key
}

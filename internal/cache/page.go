// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache of rendered page HTML. Full
// documents and HTMX partials are cached under separate keys. A nil
// *PageCache is valid and caches nothing.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 5 * time.Minute
)

// PageCache manages rendered-page caching in Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
// A nil client yields a nil cache.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// Enabled reports whether pages are actually cached.
func (pc *PageCache) Enabled() bool {
	return pc != nil && pc.client != nil
}

// Get retrieves cached HTML for a page key.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if !pc.Enabled() {
		return nil, false
	}
	val, err := pc.client.Get(ctx, pageKeyPrefix+key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML for a page key with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if !pc.Enabled() {
		return
	}
	if err := pc.client.Set(ctx, pageKeyPrefix+key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidatePath removes both variants of a path from the cache.
func (pc *PageCache) InvalidatePath(ctx context.Context, path string) {
	if !pc.Enabled() {
		return
	}
	keys := []string{pageKeyPrefix + PathKey(path, false), pageKeyPrefix + PathKey(path, true)}
	if err := pc.client.Del(ctx, keys...).Err(); err != nil {
		slog.Warn("page cache invalidate error", "path", path, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "path", path)
}

// InvalidateAll removes all cached pages by scanning for the prefix.
// Used when the site content is reloaded, since any page could be affected.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if !pc.Enabled() {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}

// PathKey returns the cache key for a request path. Unmatched paths all
// render the same page, so callers should pass the route path, not the
// raw request path, to keep the key space bounded.
func PathKey(path string, partial bool) string {
	if partial {
		return "partial:" + path
	}
	return "full:" + path
}

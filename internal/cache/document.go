// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// document.go caches parsed documents in Valkey. A document is parsed once
// into its event stream, serialized as JSON, and on later requests the
// stream is deserialized and composed directly — the Markdown source is
// never re-parsed while the entry is warm.
package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"mdpress/internal/models"
	"mdpress/internal/parser"
)

const (
	// docKeyPrefix is the Valkey key prefix for parsed documents.
	docKeyPrefix = "doc:"

	// DefaultDocTTL is how long a parsed document stays cached.
	DefaultDocTTL = 5 * time.Minute
)

// DocCache manages parsed-document caching in Valkey.
type DocCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDocCache creates a new document cache backed by the given Valkey client.
func NewDocCache(client *redis.Client, ttl time.Duration) *DocCache {
	if ttl == 0 {
		ttl = DefaultDocTTL
	}
	return &DocCache{client: client, ttl: ttl}
}

// Get retrieves a cached parsed document by slug. Returns nil on miss or
// when the cached payload no longer deserializes.
func (dc *DocCache) Get(ctx context.Context, slug string) *parser.Document[models.DocMeta] {
	val, err := dc.client.Get(ctx, docKeyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil
	}
	if err != nil {
		slog.Warn("doc cache get error", "slug", slug, "error", err)
		return nil
	}

	var doc parser.Document[models.DocMeta]
	if err := json.Unmarshal(val, &doc); err != nil {
		slog.Warn("doc cache decode error", "slug", slug, "error", err)
		return nil
	}
	slog.Debug("doc cache hit", "slug", slug)
	return &doc
}

// Set stores a parsed document with the configured TTL.
func (dc *DocCache) Set(ctx context.Context, slug string, doc *parser.Document[models.DocMeta]) {
	payload, err := json.Marshal(doc)
	if err != nil {
		slog.Warn("doc cache encode error", "slug", slug, "error", err)
		return
	}
	if err := dc.client.Set(ctx, docKeyPrefix+slug, payload, dc.ttl).Err(); err != nil {
		slog.Warn("doc cache set error", "slug", slug, "error", err)
	}
}

// Invalidate removes a single parsed document from the cache by its slug.
func (dc *DocCache) Invalidate(ctx context.Context, slug string) {
	if err := dc.client.Del(ctx, docKeyPrefix+slug).Err(); err != nil {
		slog.Warn("doc cache invalidate error", "slug", slug, "error", err)
	}
	slog.Debug("doc cache invalidated", "slug", slug)
}

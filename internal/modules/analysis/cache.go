package analysis

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

const (
	cacheKeyPrefix = "qm:analysis:"
	cacheTTL       = 24 * time.Hour
)

// CacheStore is the key-value backing for analysis cache entries. Implemented
// by internal/pkg/redis.Client; tests use an in-memory fake.
type CacheStore interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Cache maps content fingerprints to previously computed suggestion sets.
type Cache struct {
	store CacheStore
	log   *zap.Logger
	now   func() time.Time
}

// NewCache creates an analysis cache on the given store.
func NewCache(store CacheStore, log *zap.Logger) *Cache {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cache{store: store, log: log, now: time.Now}
}

func cacheKey(hash, userID string) string {
	return cacheKeyPrefix + userID + "_" + hash
}

// Get looks up a cached analysis. Expired entries are deleted on the way out
// (lazy expiry); live hits bump the access counter and last-access time.
func (c *Cache) Get(ctx context.Context, hash, userID string) (*CacheHit, error) {
	key := cacheKey(hash, userID)
	raw, err := c.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}

	var entry CacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// Unreadable entry counts as a miss; drop it.
		_ = c.store.Del(ctx, key)
		return nil, nil
	}

	now := c.now()
	if entry.ExpiresAt.Before(now) {
		_ = c.store.Del(ctx, key)
		return nil, nil
	}

	entry.AccessCount++
	entry.LastAccessedAt = now
	if data, err := json.Marshal(entry); err == nil {
		ttl := time.Until(entry.ExpiresAt)
		if err := c.store.Set(ctx, key, string(data), ttl); err != nil {
			c.log.Warn("cache bookkeeping write failed", zap.String("key", key), zap.Error(err))
		}
	}

	return &CacheHit{
		Analysis: entry.Analysis,
		Metadata: entry.Metadata,
		CacheHit: true,
		CacheAge: now.Sub(entry.CreatedAt),
	}, nil
}

// CacheStats is a per-user summary of live cache entries.
type CacheStats struct {
	Entries          int   `json:"entries"`
	TotalAccessCount int   `json:"totalAccessCount"`
	OldestAgeSeconds int64 `json:"oldestAgeSeconds"`
}

// cacheScanner is the optional key-iteration capability of a CacheStore.
// The redis client supports it; in-memory test fakes usually do not.
type cacheScanner interface {
	Scan(ctx context.Context, pattern string, fn func(keys []string) error) error
}

// Stats aggregates the user's live entries. Stores without scan support
// report empty stats rather than an error.
func (c *Cache) Stats(ctx context.Context, userID string) (*CacheStats, error) {
	stats := &CacheStats{}
	scanner, ok := c.store.(cacheScanner)
	if !ok {
		return stats, nil
	}

	now := c.now()
	err := scanner.Scan(ctx, cacheKeyPrefix+userID+"_*", func(keys []string) error {
		for _, key := range keys {
			raw, err := c.store.Get(ctx, key)
			if err != nil || raw == "" {
				continue
			}
			var entry CacheEntry
			if err := json.Unmarshal([]byte(raw), &entry); err != nil {
				continue
			}
			stats.Entries++
			stats.TotalAccessCount += entry.AccessCount
			if age := int64(now.Sub(entry.CreatedAt).Seconds()); age > stats.OldestAgeSeconds {
				stats.OldestAgeSeconds = age
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// Set stores an analysis under the user's content fingerprint with a 24h TTL.
// Write failures are logged and swallowed: the suggestions already exist, and
// losing the entry only costs a future cache miss.
func (c *Cache) Set(ctx context.Context, hash, userID string, analysis json.RawMessage, meta CacheMetadata) {
	now := c.now()
	entry := CacheEntry{
		ID:             userID + "_" + hash,
		ContentHash:    hash,
		Analysis:       analysis,
		Metadata:       meta,
		CreatedAt:      now,
		LastAccessedAt: now,
		AccessCount:    0,
		ExpiresAt:      now.Add(cacheTTL),
	}
	data, err := json.Marshal(entry)
	if err != nil {
		c.log.Warn("cache entry marshal failed", zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, cacheKey(hash, userID), string(data), cacheTTL); err != nil {
		c.log.Warn("cache write failed", zap.String("hash", hash), zap.Error(err))
	}
}

package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memCacheStore is an in-memory CacheStore that ignores TTLs; expiry is
// exercised through the entry's own ExpiresAt and a fake clock.
type memCacheStore struct {
	data map[string]string
}

func newMemCacheStore() *memCacheStore {
	return &memCacheStore{data: map[string]string{}}
}

func (m *memCacheStore) Get(ctx context.Context, key string) (string, error) {
	return m.data[key], nil
}

func (m *memCacheStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	m.data[key] = fmt.Sprint(value)
	return nil
}

func (m *memCacheStore) Del(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func TestCacheMiss(t *testing.T) {
	c := NewCache(newMemCacheStore(), nil)

	hit, err := c.Get(context.Background(), "deadbeef", "user-1")
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestCacheRoundTrip(t *testing.T) {
	store := newMemCacheStore()
	c := NewCache(store, nil)
	ctx := context.Background()

	payload := json.RawMessage(`[{"type":"spelling"}]`)
	c.Set(ctx, "deadbeef", "user-1", payload, CacheMetadata{TokenCount: 42, ContextType: "full"})

	hit, err := c.Get(ctx, "deadbeef", "user-1")
	require.NoError(t, err)
	require.NotNil(t, hit)
	assert.True(t, hit.CacheHit)
	assert.JSONEq(t, string(payload), string(hit.Analysis))
	assert.Equal(t, 42, hit.Metadata.TokenCount)

	// Access bookkeeping is written back.
	var entry CacheEntry
	require.NoError(t, json.Unmarshal([]byte(store.data[cacheKey("deadbeef", "user-1")]), &entry))
	assert.Equal(t, 1, entry.AccessCount)
}

func TestCacheIsPerUser(t *testing.T) {
	c := NewCache(newMemCacheStore(), nil)
	ctx := context.Background()

	c.Set(ctx, "deadbeef", "user-1", json.RawMessage(`[]`), CacheMetadata{})

	hit, err := c.Get(ctx, "deadbeef", "user-2")
	require.NoError(t, err)
	assert.Nil(t, hit)
}

func TestCacheExpiredEntryDeleted(t *testing.T) {
	store := newMemCacheStore()
	c := NewCache(store, nil)
	ctx := context.Background()

	c.Set(ctx, "deadbeef", "user-1", json.RawMessage(`[]`), CacheMetadata{})

	// Move the clock past the TTL.
	c.now = func() time.Time { return time.Now().Add(25 * time.Hour) }

	hit, err := c.Get(ctx, "deadbeef", "user-1")
	require.NoError(t, err)
	assert.Nil(t, hit)
	assert.Empty(t, store.data, "expired entry should be deleted on read")
}

func TestCacheUnreadableEntryDropped(t *testing.T) {
	store := newMemCacheStore()
	store.data[cacheKey("deadbeef", "user-1")] = "{not json"
	c := NewCache(store, nil)

	hit, err := c.Get(context.Background(), "deadbeef", "user-1")
	require.NoError(t, err)
	assert.Nil(t, hit)
	assert.Empty(t, store.data)
}

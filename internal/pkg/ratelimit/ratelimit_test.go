package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type memStore struct {
	mu   sync.Mutex
	data map[string]string
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string]string)}
}

func (s *memStore) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value.(string)
	return nil
}

func TestAllowWithinLimit(t *testing.T) {
	l := New(newMemStore(), 3, time.Hour)

	for i := 0; i < 3; i++ {
		ok, _, err := l.Allow(context.Background(), "u1")
		require.NoError(t, err)
		require.True(t, ok)
	}

	ok, remaining, err := l.Allow(context.Background(), "u1")
	require.NoError(t, err)
	require.False(t, ok)
	require.Equal(t, 0, remaining)
}

func TestAllowIsPerUser(t *testing.T) {
	l := New(newMemStore(), 1, time.Hour)

	ok, _, _ := l.Allow(context.Background(), "u1")
	require.True(t, ok)
	ok, _, _ = l.Allow(context.Background(), "u1")
	require.False(t, ok)

	ok, _, _ = l.Allow(context.Background(), "u2")
	require.True(t, ok)
}

func TestWindowSlides(t *testing.T) {
	l := New(newMemStore(), 2, time.Hour)
	base := time.Now()
	l.now = func() time.Time { return base }

	for i := 0; i < 2; i++ {
		ok, _, _ := l.Allow(context.Background(), "u1")
		require.True(t, ok)
	}
	ok, _, _ := l.Allow(context.Background(), "u1")
	require.False(t, ok)

	// After the window passes, old timestamps are pruned.
	l.now = func() time.Time { return base.Add(61 * time.Minute) }
	ok, _, _ = l.Allow(context.Background(), "u1")
	require.True(t, ok)
}

func TestRemainingDoesNotConsume(t *testing.T) {
	l := New(newMemStore(), 5, time.Hour)

	remaining, err := l.Remaining(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 5, remaining)

	_, _, _ = l.Allow(context.Background(), "u1")
	remaining, err = l.Remaining(context.Background(), "u1")
	require.NoError(t, err)
	require.Equal(t, 4, remaining)
}

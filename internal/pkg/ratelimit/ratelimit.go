package ratelimit

import (
	"context"
	"encoding/json"
	"time"
)

const (
	keyPrefix     = "qm:rate_limit:"
	DefaultLimit  = 1000
	DefaultWindow = time.Hour
)

// Store is the key-value backing for rate-limit records. Implemented by
// internal/pkg/redis.Client; tests use an in-memory fake.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// record is the sliding window of request timestamps for one user,
// pruned to the trailing window on each check.
type record struct {
	UserID   string  `json:"user_id"`
	Requests []int64 `json:"requests"` // unix milliseconds
}

// Limiter enforces a per-user sliding-window request quota.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	now    func() time.Time
}

// New creates a Limiter. Non-positive limit/window fall back to defaults.
func New(store Store, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{store: store, limit: limit, window: window, now: time.Now}
}

// Allow records a request for userID and reports whether it is within quota.
// Requests beyond the limit are rejected, never queued. Store errors fail
// open: a broken backend must not take the analysis pipeline down with it.
func (l *Limiter) Allow(ctx context.Context, userID string) (bool, int, error) {
	now := l.now()
	cutoff := now.Add(-l.window).UnixMilli()

	rec := record{UserID: userID}
	raw, err := l.store.Get(ctx, keyPrefix+userID)
	if err != nil {
		return true, l.limit, err
	}
	if raw != "" {
		if err := json.Unmarshal([]byte(raw), &rec); err != nil {
			rec = record{UserID: userID}
		}
	}

	kept := rec.Requests[:0]
	for _, ts := range rec.Requests {
		if ts > cutoff {
			kept = append(kept, ts)
		}
	}
	rec.Requests = kept

	if len(rec.Requests) >= l.limit {
		return false, 0, nil
	}

	rec.Requests = append(rec.Requests, now.UnixMilli())
	data, _ := json.Marshal(rec)
	if err := l.store.Set(ctx, keyPrefix+userID, string(data), l.window); err != nil {
		return true, l.limit - len(rec.Requests), err
	}
	return true, l.limit - len(rec.Requests), nil
}

// Remaining reports how many requests the user has left without consuming one.
func (l *Limiter) Remaining(ctx context.Context, userID string) (int, error) {
	cutoff := l.now().Add(-l.window).UnixMilli()

	raw, err := l.store.Get(ctx, keyPrefix+userID)
	if err != nil || raw == "" {
		return l.limit, err
	}
	var rec record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return l.limit, nil
	}
	count := 0
	for _, ts := range rec.Requests {
		if ts > cutoff {
			count++
		}
	}
	remaining := l.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

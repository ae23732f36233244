package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// ErrMiss is returned by Cache.Get when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

// Cache stores opaque values by key.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// ReadThrough serves T values from a Cache, filling misses from a loader.
// Backend failures are logged and fall through to the loader.
type ReadThrough[T any] struct {
	cache  Cache
	prefix string
	ttl    time.Duration
}

func NewReadThrough[T any](c Cache, prefix string, ttl time.Duration) *ReadThrough[T] {
	return &ReadThrough[T]{cache: c, prefix: prefix, ttl: ttl}
}

func (r *ReadThrough[T]) key(id string) string {
	return r.prefix + ":" + id
}

func (r *ReadThrough[T]) Get(ctx context.Context, id string, load func(ctx context.Context) (T, error)) (T, error) {
	raw, err := r.cache.Get(ctx, r.key(id))
	if err == nil {
		var v T
		if err := json.Unmarshal(raw, &v); err == nil {
			return v, nil
		}
		slog.Warn("cache entry undecodable", "key", r.key(id))
	} else if !errors.Is(err, ErrMiss) {
		slog.Warn("cache read failed", "key", r.key(id), "error", err)
	}

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if raw, err := json.Marshal(v); err != nil {
		slog.Warn("cache encode failed", "key", r.key(id), "error", err)
	} else if err := r.cache.Set(ctx, r.key(id), raw, r.ttl); err != nil {
		slog.Warn("cache write failed", "key", r.key(id), "error", err)
	}
	return v, nil
}

// Invalidate drops cached entries for ids.
func (r *ReadThrough[T]) Invalidate(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = r.key(id)
	}
	if err := r.cache.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("invalidate %s: %w", r.prefix, err)
	}
	return nil
}

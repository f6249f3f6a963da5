// Package cache stores registry responses between runs.
//
// Three backends implement [Cache]:
//   - [FileCache]: one JSON file per key under ~/.cache/depgraph (CLI default)
//   - [RedisCache]: a shared Redis instance (HTTP API deployments)
//   - [NullCache]: stores nothing (--no-cache, tests)
//
// Keys are opaque strings. Use [Scoped] to give each registry its own key
// space so "serde" from crates.io cannot collide with another source.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key-value store with per-entry expiry.
type Cache interface {
	// Get returns the value stored under key. A miss or an expired entry
	// reports false with a nil error.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases the backend's resources.
	Close() error
}

// Scoped returns a view of c that prefixes every key with prefix.
func Scoped(c Cache, prefix string) Cache {
	if prefix == "" {
		return c
	}
	if s, ok := c.(*scoped); ok {
		return &scoped{inner: s.inner, prefix: s.prefix + prefix}
	}
	return &scoped{inner: c, prefix: prefix}
}

type scoped struct {
	inner  Cache
	prefix string
}

func (s *scoped) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return s.inner.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return s.inner.Set(ctx, s.prefix+key, data, ttl)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.inner.Delete(ctx, s.prefix+key)
}

func (s *scoped) Close() error { return s.inner.Close() }

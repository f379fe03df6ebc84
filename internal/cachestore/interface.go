// Package cachestore holds the cached backend responses behind a common
// driver interface. The memory driver is the default; the Valkey and
// Memcached drivers let several replicas share one cache.
package cachestore

import (
	"context"
	"errors"
	"time"
)

// ErrMiss is returned by Get when a key is absent or its entry has expired.
var ErrMiss = errors.New("cache miss")

// Store is the key-value contract the fetch layer builds on. Values are raw
// JSON bytes; each entry carries its own TTL.
type Store interface {
	// Get retrieves a fresh entry, or ErrMiss
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores an entry with a TTL
	Set(ctx context.Context, key string, val []byte, ttl time.Duration) error

	// Delete removes a single entry
	Delete(ctx context.Context, key string) error

	// Flush removes every entry
	Flush(ctx context.Context) error

	// Ping checks cache connection
	Ping(ctx context.Context) error

	// Close gracefully closes any connections
	Close()
}

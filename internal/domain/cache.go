package domain

import (
	"context"
	"time"
)

// CacheError represents an error originating from the cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss is returned when a key is not found in the cache.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is the key/value port backed by Redis. String keys hold the filter choices;
// hashes hold the append-only guest answer logs.
type Cache interface {
	// Get returns ErrCacheMiss if the key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. An expiration of 0 keeps it indefinitely.
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	// Delete does not fail when the key is absent.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error

	// HAppend writes field into the hash at key and, when ttl > 0, refreshes the
	// key's expiry in the same transaction.
	HAppend(ctx context.Context, key, field, value string, ttl time.Duration) error
	// HGetAll returns an empty map for a missing key.
	HGetAll(ctx context.Context, key string) (map[string]string, error)
}

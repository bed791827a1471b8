package cache

import (
	"context"
	"time"
)

// Cache is the contract for the cache layer.
// Implementations can be swapped (Redis, in-memory) without touching repositories.
type Cache interface {
	// Get reads key and unmarshals it into dest.
	// found = false on a miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key with a TTL.
	// Strings and []byte are stored as-is, anything else is JSON encoded.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys
	Delete(ctx context.Context, keys ...string) error

	// DeletePattern removes every key matching a glob pattern
	DeletePattern(ctx context.Context, pattern string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}

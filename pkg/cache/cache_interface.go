package cache

import (
	"context"
	"time"
)

// Cache is the key/value store contract shared by every repository.
// Implementations: Redis (production), in-memory (tests, single-binary dev).
type Cache interface {
	// Get loads the value at key and unmarshals it into dest.
	// Returns found=false on a miss, leaving dest untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set stores value under key. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes the given keys.
	Delete(ctx context.Context, keys ...string) error

	// Ping verifies the connection.
	Ping(ctx context.Context) error

	Exists(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

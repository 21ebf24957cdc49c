package cache

import (
	"time"
)

// CacheService represents a generic cache service. The pipeline uses it as a
// per-host request guard on the plain-HTTP acquisition path: a present key
// means the host asked us to back off and the source is skipped this run.
type CacheService interface {
	// Get retrieves a value from the cache
	Get(key string) ([]byte, error)

	// Set stores a value in the cache with an expiration time
	Set(key string, value []byte, expiration time.Duration) error

	// Delete removes a value from the cache
	Delete(key string) error
}

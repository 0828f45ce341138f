// Package rendercache caches render_dsl output keyed by source text and
// render configuration, so the serve command can skip re-running the
// parse/layout/route/render pipeline for a repeated request.
package rendercache

import (
	"context"
	"time"
)

// Cache is a backend for storing rendered diagram output.
type Cache interface {
	// Get retrieves a value by key. A miss returns (nil, false, nil).
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value under key with the given time-to-live. A ttl of
	// zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources (file handles, connections) held by
	// the backend.
	Close() error
}

// Package store provides the response cache the HTTP layer uses for
// scenario comparisons and benchmark reports. Both are pure functions of
// their request payloads, so caching by request digest is safe.
package store

import "context"

// Cache is the minimal key/value surface the server needs. Implementations
// must be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string) error
}

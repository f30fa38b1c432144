package ports

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrCacheMiss is returned by ViewCache.Get when the key is absent or
// expired. Callers fall through to the database on a miss.
var ErrCacheMiss = errors.New("view cache miss")

// TrackingViewKey builds the cache key for the public tracking view of one
// consignment.
func TrackingViewKey(trackingRef string) string {
	return fmt.Sprintf("views:tracking:%s", trackingRef)
}

// RecentConsignmentsKey is the cache key for the admin recent-bookings view.
const RecentConsignmentsKey = "views:consignments:recent"

// ViewCache caches serialized read models for the query side. Values are
// opaque bytes; the query handlers own the encoding. Writes on the command
// side only ever invalidate, never populate.
type ViewCache interface {
	// Get returns the cached value or ErrCacheMiss.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key with the given time-to-live.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Invalidate removes the keys. Missing keys are not an error.
	Invalidate(ctx context.Context, keys ...string) error
}

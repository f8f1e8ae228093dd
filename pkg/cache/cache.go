// Package cache stores solved plans and rendered artifacts.
//
// # Overview
//
// Solving a large grid can take seconds to minutes, while the answer for a
// given puzzle and solver configuration never changes. The cache keeps those
// answers keyed by a content hash:
//
//   - [NullCache]: caching disabled
//   - [FileCache]: one file per entry under a directory, for the CLI
//   - [RedisCache]: a shared Redis instance, for the HTTP server
//
// # Keys
//
// Keys are produced by a [Keyer] so that every caller derives identical keys
// from the same inputs:
//
//	k := cache.NewDefaultKeyer()
//	key := k.PlanKey(cache.Hash(canonicalPuzzle), cache.PlanKeyOpts{
//	    Heuristic: "move-cost",
//	})
//
// [ScopedKeyer] adds a namespace prefix to every key.
package cache

import (
	"context"
	"time"
)

// Default entry lifetimes.
const (
	TTLPlan     = 30 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with per-entry expiry.
//
// Get reports a miss as (nil, false, nil). Errors are reserved for backend
// failures. A ttl of zero stores the entry without expiry.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// Clearer is implemented by caches that can drop every entry they own.
type Clearer interface {
	Clear(ctx context.Context) (int, error)
}

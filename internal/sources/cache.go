package sources

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/aviaryworks/fieldguide/pkg/constants"
	"github.com/aviaryworks/fieldguide/pkg/logging"
	"github.com/aviaryworks/fieldguide/pkg/record"
)

// NewStore creates the shared in-memory TTL store. It is process-local and
// transient; pass the handle to WithCache rather than referencing a hidden
// singleton.
func NewStore() *gocache.Cache {
	return gocache.New(constants.DefaultCacheTTL, constants.CacheCleanupInterval)
}

// cacheEntry wraps a fetch result so that an explicit empty answer is
// memoized too. Errors are never cached.
type cacheEntry struct {
	partial *record.Partial
}

// cached decorates a Source with TTL memoization keyed by the normalized
// query and region. Concurrent distinct queries never collide on a key;
// concurrent identical queries may both miss and both fetch, which costs a
// duplicate call but nothing else.
type cached struct {
	src   Source
	store *gocache.Cache
	ttl   time.Duration
}

// WithCache wraps src so that an identical normalized (query, region) within
// ttl returns the previously fetched partial without a network call.
func WithCache(src Source, store *gocache.Cache, ttl time.Duration) Source {
	return &cached{src: src, store: store, ttl: ttl}
}

// ID returns the wrapped source's identifier.
func (c *cached) ID() string {
	return c.src.ID()
}

// Fetch consults the store before delegating to the wrapped source.
func (c *cached) Fetch(ctx context.Context, q record.Query) (*record.Partial, error) {
	key := q.CacheKey(c.src.ID())

	if hit, ok := c.store.Get(key); ok {
		if entry, ok := hit.(cacheEntry); ok {
			logging.FromContext(ctx).Debug().
				Str("source", c.src.ID()).
				Str("key", key).
				Msg("cache hit")
			return entry.partial, nil
		}
	}

	partial, err := c.src.Fetch(ctx, q)
	if err != nil {
		return nil, err
	}

	c.store.Set(key, cacheEntry{partial: partial}, c.ttl)
	return partial, nil
}

package pathindex

import (
	"time"

	gocache "github.com/patrickmn/go-cache"
)

// CachedResolver memoizes Resolve results for hot raw paths.
// The underlying index is immutable, so cached entries only ever expire,
// they never go stale against the registry.
type CachedResolver struct {
	inner *Resolver
	cache *gocache.Cache
}

// negativeEntry marks a cached "no match" so misses are cached too.
type negativeEntry struct{}

// NewCached wraps a resolver with a TTL cache keyed by the raw path.
func NewCached(inner *Resolver, ttl time.Duration) *CachedResolver {
	return &CachedResolver{
		inner: inner,
		cache: gocache.New(ttl, 2*ttl),
	}
}

// Resolve returns the same result as the wrapped resolver.
func (c *CachedResolver) Resolve(rawPath string) *Entry {
	if v, ok := c.cache.Get(rawPath); ok {
		if _, miss := v.(negativeEntry); miss {
			return nil
		}
		match := v.(Entry)
		return &match
	}

	match := c.inner.Resolve(rawPath)
	if match == nil {
		c.cache.SetDefault(rawPath, negativeEntry{})
		return nil
	}
	c.cache.SetDefault(rawPath, *match)
	return match
}

// Entries exposes the wrapped resolver's entries in matching order.
func (c *CachedResolver) Entries() []Entry {
	return c.inner.Entries()
}

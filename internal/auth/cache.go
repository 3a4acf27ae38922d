package auth

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/tubehub/tubehub-api/internal/domain"
)

// CacheSchemaVersion is the current version of the cache schema
// Increment this when the cached data structure changes to auto-invalidate old entries
const CacheSchemaVersion = "1.0"

type cachedIdentityEntry struct {
	Version  string
	Identity *domain.Identity
	CachedAt time.Time
}

// identityCache keeps recently authenticated identities keyed by user id.
// A zero size disables caching.
type identityCache struct {
	lru *expirable.LRU[string, *cachedIdentityEntry]
}

func newIdentityCache(size int, ttl time.Duration) *identityCache {
	if size <= 0 {
		return &identityCache{}
	}
	return &identityCache{
		lru: expirable.NewLRU[string, *cachedIdentityEntry](size, nil, ttl),
	}
}

// Get and Set copy, so callers never share the cached identity.
func (c *identityCache) Get(userID string) (*domain.Identity, bool) {
	if c.lru == nil {
		return nil, false
	}
	entry, found := c.lru.Get(userID)
	if !found {
		return nil, false
	}
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(userID)
		return nil, false
	}
	return entry.Identity.Clone(), true
}

func (c *identityCache) Set(identity *domain.Identity) {
	if c.lru == nil {
		return
	}
	c.lru.Add(identity.ID, &cachedIdentityEntry{
		Version:  CacheSchemaVersion,
		Identity: identity.Clone(),
		CachedAt: time.Now(),
	})
}

func (c *identityCache) Invalidate(userID string) {
	if c.lru == nil {
		return
	}
	c.lru.Remove(userID)
}

func (c *identityCache) Len() int {
	if c.lru == nil {
		return 0
	}
	return c.lru.Len()
}

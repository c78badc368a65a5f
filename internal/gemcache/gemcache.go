// Package gemcache is the short-TTL store that prevents repeated
// multi-strategy fan-out on every page view.
package gemcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/iconick/hiddengems/internal/core"
)

// BulkPoolKey is the fixed key under which the bulk-mode pool is cached.
// At most one live pool exists per key at a time.
const BulkPoolKey = "bulk_pool"

// DefaultTTL matches the 30-minute transient window of the admin surface.
const DefaultTTL = 30 * time.Minute

const defaultSize = 8

// Cache stores keyed record pools with a single fixed TTL.
type Cache struct {
	lru *expirable.LRU[string, []core.Record]
	ttl time.Duration
}

// New creates a cache holding at most size keyed pools, each expiring ttl
// after it was stored.
func New(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = defaultSize
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Cache{
		lru: expirable.NewLRU[string, []core.Record](size, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the live pool stored under key, if any.
func (c *Cache) Get(key string) ([]core.Record, bool) {
	return c.lru.Get(key)
}

// Put stores records under key for the cache TTL. Concurrent writers for
// the same key are tolerated: the last write wins, and a rare duplicate
// recompute is cheaper than a lock held across the whole aggregation.
func (c *Cache) Put(key string, records []core.Record) {
	c.lru.Add(key, records)
}

// Remove drops the entry stored under key.
func (c *Cache) Remove(key string) {
	c.lru.Remove(key)
}

// Len returns the number of live entries.
func (c *Cache) Len() int {
	return c.lru.Len()
}

// TTL reports the fixed expiry window applied to every entry.
func (c *Cache) TTL() time.Duration {
	return c.ttl
}

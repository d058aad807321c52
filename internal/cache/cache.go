// Package cache implements a generic in-process key/value cache with
// per-entry expiry. It has no knowledge of what it stores; callers build
// collision-free composite keys via Key.
package cache

import (
	"strings"
	"sync"
	"time"
)

type entry[V any] struct {
	value     V
	expiresAt time.Time
}

// Cache is a TTL-bounded map of string keys to values of type V.
// Expired entries are evicted lazily on Get and proactively by Cleanup.
// There is no capacity-based eviction; Cleanup is expected to be invoked
// periodically by an external scheduler to bound memory.
type Cache[V any] struct {
	mu         sync.Mutex
	entries    map[string]entry[V]
	defaultTTL time.Duration
	nowFunc    func() time.Time
}

// Option configures a Cache.
type Option[V any] func(*Cache[V])

// WithNowFunc overrides the time function for testing.
func WithNowFunc[V any](f func() time.Time) Option[V] {
	return func(c *Cache[V]) {
		c.nowFunc = f
	}
}

// New creates a Cache whose Set uses defaultTTL.
func New[V any](defaultTTL time.Duration, opts ...Option[V]) *Cache[V] {
	c := &Cache[V]{
		entries:    make(map[string]entry[V]),
		defaultTTL: defaultTTL,
		nowFunc:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get returns the value stored under key and whether it was present.
// An entry whose expiry has passed is removed and reported absent; a stale
// value is never returned.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}

	if !c.nowFunc().Before(e.expiresAt) {
		delete(c.entries, key)
		var zero V
		return zero, false
	}

	return e.value, true
}

// Set stores value under key with the cache's default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.defaultTTL)
}

// SetTTL stores value under key, expiring after ttl.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry[V]{
		value:     value,
		expiresAt: c.nowFunc().Add(ttl),
	}
}

// Delete removes key and reports whether it was present.
func (c *Cache[V]) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.entries[key]
	delete(c.entries, key)
	return ok
}

// Clear removes all entries.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]entry[V])
}

// Len returns the number of stored entries, including any that have
// expired but not yet been evicted.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

// Cleanup evicts every expired entry and returns how many were removed.
func (c *Cache[V]) Cleanup() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	removed := 0
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Key builds a composite cache key from a prefix and parts, e.g.
// Key("search", "witcher3", "20") -> "search:witcher3:20".
func Key(prefix string, parts ...string) string {
	if len(parts) == 0 {
		return prefix
	}
	return prefix + ":" + strings.Join(parts, ":")
}

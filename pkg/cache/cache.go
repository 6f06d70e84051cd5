// Package cache provides the in-memory TTL cache used for expensive
// dashboard queries. Entries expire by time only; there is no size limit
// or LRU eviction.
package cache

import (
	"sync"
	"time"
)

type entry struct {
	value     any
	expiresAt time.Time
}

// Cache is a string-keyed TTL cache. A background janitor removes
// expired entries periodically; Get never returns an expired entry
// even before the janitor has swept it.
type Cache struct {
	mu         sync.RWMutex
	entries    map[string]entry
	defaultTTL time.Duration
	stop       chan struct{}
	stopOnce   sync.Once
}

// New creates a cache and starts the janitor. cleanupInterval <= 0
// disables the background sweep.
func New(defaultTTL, cleanupInterval time.Duration) *Cache {
	c := &Cache{
		entries:    make(map[string]entry),
		defaultTTL: defaultTTL,
		stop:       make(chan struct{}),
	}

	if cleanupInterval > 0 {
		go c.janitor(cleanupInterval)
	}

	return c
}

// Set stores value under key with the default TTL.
func (c *Cache) Set(key string, value any) {
	c.SetWithTTL(key, value, c.defaultTTL)
}

// SetWithTTL stores value under key with an explicit TTL.
func (c *Cache) SetWithTTL(key string, value any, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = entry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
}

// Get returns the stored value, or false if missing or expired.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(e.expiresAt) {
		// Expired but not yet swept
		c.Delete(key)
		return nil, false
	}

	return e.value, true
}

// Delete removes a single key.
func (c *Cache) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// Flush removes all entries.
func (c *Cache) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]entry)
}

// Len returns the number of stored entries, expired ones included.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Stop terminates the janitor goroutine.
func (c *Cache) Stop() {
	c.stopOnce.Do(func() {
		close(c.stop)
	})
}

func (c *Cache) janitor(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.deleteExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *Cache) deleteExpired() {
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

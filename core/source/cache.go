package source

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// cacheEntry holds a fetched value and when it was fetched.
type cacheEntry struct {
	value string
	built time.Time
}

// CachedSource wraps a Source with a TTL cache. Concurrent misses for the
// same key share a single fetch.
type CachedSource struct {
	inner Source
	ttl   time.Duration
	now   func() time.Time

	mu      sync.RWMutex
	entries map[string]cacheEntry
	sf      singleflight.Group
}

// NewCachedSource creates a cache in front of inner.
func NewCachedSource(inner Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		inner:   inner,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

func (c *CachedSource) lookup(key string) (string, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || c.now().Sub(entry.built) > c.ttl {
		return "", false
	}
	return entry.value, true
}

// Get returns the cached value for key, fetching it when absent or expired.
// Errors are not cached.
func (c *CachedSource) Get(ctx context.Context, key string) (string, error) {
	if value, ok := c.lookup(key); ok {
		return value, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after winning the flight
		if value, ok := c.lookup(key); ok {
			return value, nil
		}

		value, err := c.inner.Get(ctx, key)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[key] = cacheEntry{value: value, built: c.now()}
		c.mu.Unlock()

		return value, nil
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Invalidate drops the cached value for key.
func (c *CachedSource) Invalidate(key string) {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
}

// Put stores value through the wrapped source and drops the cached entry.
func (c *CachedSource) Put(ctx context.Context, key, value string) error {
	w, ok := c.inner.(Writer)
	if !ok {
		return errors.New("wrapped source is read-only")
	}
	defer c.Invalidate(key)
	return w.Put(ctx, key, value)
}

// Unwrap returns the wrapped source.
func (c *CachedSource) Unwrap() Source {
	return c.inner
}

func secondsToDuration(s int) time.Duration {
	return time.Duration(s) * time.Second
}

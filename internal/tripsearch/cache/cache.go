package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	value  T
	expiry time.Time
}

// Cache is a TTL map that stores and hands out clones, so callers can
// never mutate what is cached.
type Cache[T any] struct {
	mu      sync.RWMutex
	entries map[string]entry[T]
	clone   func(T) T
	now     func() time.Time
	sets    int
}

// purgeEvery is how many Set calls pass between sweeps of expired entries.
const purgeEvery = 128

func New[T any](clone func(T) T) *Cache[T] {
	return NewWithClock(clone, time.Now)
}

func NewWithClock[T any](clone func(T) T, now func() time.Time) *Cache[T] {
	return &Cache[T]{
		entries: make(map[string]entry[T]),
		clone:   clone,
		now:     now,
	}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return zero, false
	}
	if !c.now().Before(e.expiry) {
		c.mu.Lock()
		if current, still := c.entries[key]; still && current.expiry.Equal(e.expiry) {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return zero, false
	}
	return c.cloneValue(e.value), true
}

func (c *Cache[T]) Set(key string, value T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	now := c.now()
	c.mu.Lock()
	c.entries[key] = entry[T]{value: c.cloneValue(value), expiry: now.Add(ttl)}
	c.sets++
	if c.sets%purgeEvery == 0 {
		for k, e := range c.entries {
			if !now.Before(e.expiry) {
				delete(c.entries, k)
			}
		}
	}
	c.mu.Unlock()
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[T]) cloneValue(value T) T {
	if c.clone == nil {
		return value
	}
	return c.clone(value)
}

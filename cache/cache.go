// Package cache is a small TTL cache guarding the data source. Each query
// type gets its own cache with its own TTL, replacing the ambient request
// deduplication the dashboard used to rely on.
package cache

import (
	"sync"
	"time"
)

type entry[T any] struct {
	val T
	exp time.Time
}

type Cache[T any] struct {
	mu  sync.RWMutex
	m   map[string]entry[T]
	ttl time.Duration
}

func New[T any](ttl time.Duration) *Cache[T] {
	return &Cache[T]{m: make(map[string]entry[T]), ttl: ttl}
}

func (c *Cache[T]) Get(key string) (T, bool) {
	var zero T
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(e.exp) {
		return zero, false
	}
	return e.val, true
}

func (c *Cache[T]) Set(key string, v T) {
	c.mu.Lock()
	c.m[key] = entry[T]{val: v, exp: time.Now().Add(c.ttl)}
	c.mu.Unlock()
}

// Flush drops every entry, forcing the next reads through to the source.
func (c *Cache[T]) Flush() {
	c.mu.Lock()
	c.m = make(map[string]entry[T])
	c.mu.Unlock()
}

func (c *Cache[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

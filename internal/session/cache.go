// ABOUTME: Thread-safe TTL cache with size-bounded, oldest-first eviction.
// ABOUTME: Holds console workspaces per session and marks spent form nonces.

package session

import (
	"container/list"
	"sync"
	"time"
)

// cacheEntry stores a value with its last-touched time and list element.
type cacheEntry[V any] struct {
	value     V
	timestamp time.Time
	element   *list.Element
}

// Cache is a thread-safe, TTL-based, size-limited map. Reading or writing a
// key refreshes it; the least recently touched key is evicted first.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry[V]
	order   *list.List // keys, least recently touched at front
	ttl     time.Duration
	maxSize int
	done    chan struct{}
	closed  bool
}

// New creates a cache with the given TTL and maximum size.
// A background goroutine periodically drops expired entries.
func New[V any](ttl time.Duration, maxSize int) *Cache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	c := &Cache[V]{
		entries: make(map[string]*cacheEntry[V]),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		done:    make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// Get returns the live value for key and refreshes its expiry.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok || c.expired(entry, time.Now()) {
		var zero V
		return zero, false
	}
	c.touchLocked(entry)
	return entry.value, true
}

// Put stores value under key, evicting the oldest entry when full.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.putLocked(key, value)
}

// GetOrCreate returns the live value for key, or stores and returns the
// result of create. The bool reports whether create was called.
func (c *Cache[V]) GetOrCreate(key string, create func() V) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok && !c.expired(entry, time.Now()) {
		c.touchLocked(entry)
		return entry.value, false
	}
	value := create()
	c.putLocked(key, value)
	return value, true
}

// Contains reports whether key is present and not expired, without
// refreshing it.
func (c *Cache[V]) Contains(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[key]
	if !ok {
		return false
	}
	return !c.expired(entry, time.Now())
}

// CheckAndMark atomically checks whether key is live and marks it with the
// zero value if not. Returns true if the key was already present.
func (c *Cache[V]) CheckAndMark(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if ok && !c.expired(entry, time.Now()) {
		return true
	}

	var zero V
	c.putLocked(key, zero)
	return false
}

// Delete removes key.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.order.Remove(entry.element)
		delete(c.entries, key)
	}
}

// Len returns the number of stored entries, expired ones included until the
// next sweep.
func (c *Cache[V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *Cache[V]) expired(entry *cacheEntry[V], now time.Time) bool {
	return now.Sub(entry.timestamp) >= c.ttl
}

// touchLocked refreshes entry. Must be called with mu held.
func (c *Cache[V]) touchLocked(entry *cacheEntry[V]) {
	entry.timestamp = time.Now()
	c.order.MoveToBack(entry.element)
}

// putLocked inserts or replaces key. Must be called with mu held.
func (c *Cache[V]) putLocked(key string, value V) {
	if entry, exists := c.entries[key]; exists {
		entry.value = value
		c.touchLocked(entry)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	elem := c.order.PushBack(key)
	c.entries[key] = &cacheEntry[V]{
		value:     value,
		timestamp: time.Now(),
		element:   elem,
	}
}

// evictOldest removes the least recently touched entry. Must be called with
// mu held.
func (c *Cache[V]) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}

	key, _ := front.Value.(string)
	c.order.Remove(front)
	delete(c.entries, key)
}

// cleanup runs in a background goroutine, periodically removing expired entries.
func (c *Cache[V]) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.runCleanup()
		case <-c.done:
			return
		}
	}
}

// runCleanup removes all expired entries.
func (c *Cache[V]) runCleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, entry := range c.entries {
		if c.expired(entry, now) {
			c.order.Remove(entry.element)
			delete(c.entries, key)
		}
	}
}

// Close stops the background sweeper. It is safe to call multiple times.
func (c *Cache[V]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.closed {
		close(c.done)
		c.closed = true
	}
}

// ReelRank - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"context"
	"sync"
	"time"
)

// LRUEntry represents an entry in the LRU cache with TTL support.
type LRUEntry struct {
	key       string
	value     string
	prev      *LRUEntry
	next      *LRUEntry
	expiresAt time.Time
}

// LRUCache implements a thread-safe Least Recently Used cache with TTL support.
//
// Key features:
//   - O(1) Get and Add
//   - O(1) LRU eviction when capacity is reached
//   - TTL support with lazy expiration
//
// A doubly-linked list keeps recency order and a map gives O(1) lookup.
type LRUCache struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration

	// items maps keys to linked list nodes for O(1) lookup
	items map[string]*LRUEntry

	// head.next is the most recently used, tail.prev is the least recently used
	head *LRUEntry
	tail *LRUEntry

	// now is replaceable in tests
	now func() time.Time
}

// NewLRUCache creates a new LRU cache with the specified capacity and TTL.
func NewLRUCache(capacity int, ttl time.Duration) *LRUCache {
	if capacity <= 0 {
		capacity = 10000
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}

	c := &LRUCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*LRUEntry, capacity),
		head:     &LRUEntry{},
		tail:     &LRUEntry{},
		now:      time.Now,
	}

	c.head.next = c.tail
	c.tail.prev = c.head

	return c
}

// Get retrieves an entry from the cache.
// Found entries are moved to the front (most recently used).
func (c *LRUCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.items[key]; exists {
		if c.now().After(entry.expiresAt) {
			c.removeEntry(entry)
			return "", false
		}

		c.moveToFront(entry)
		return entry.value, true
	}

	return "", false
}

// Add adds or updates an entry in the cache.
// If the cache is at capacity, the least recently used entry is evicted.
func (c *LRUCache) Add(key, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if entry, exists := c.items[key]; exists {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &LRUEntry{
		key:       key,
		value:     value,
		expiresAt: expiresAt,
	}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Len returns the current number of entries in the cache.
func (c *LRUCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes all expired entries from the cache.
// Returns the number of entries removed.
func (c *LRUCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0

	// Walk from tail (oldest) to head (newest)
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}

	return removed
}

// Internal methods (must be called with lock held)

func (c *LRUCache) addToFront(entry *LRUEntry) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRUCache) moveToFront(entry *LRUEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRUCache) removeEntry(entry *LRUEntry) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRUCache) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}

// MemoryStore adapts LRUCache to the Store interface.
type MemoryStore struct {
	*LRUCache
}

// NewMemoryStore creates an in-process Store.
func NewMemoryStore(capacity int, ttl time.Duration) *MemoryStore {
	return &MemoryStore{LRUCache: NewLRUCache(capacity, ttl)}
}

// Get implements Store.
func (m *MemoryStore) Get(_ context.Context, key string) (string, bool) {
	return m.LRUCache.Get(key)
}

// Set implements Store.
func (m *MemoryStore) Set(_ context.Context, key, value string) {
	m.LRUCache.Add(key, value)
}

// Backend implements Store.
func (m *MemoryStore) Backend() string { return "memory" }

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }

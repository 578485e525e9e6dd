package cache

import (
	"container/list"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Entry holds one cached oracle response with its expiration.
type Entry struct {
	Response  string    `json:"response"`
	ExpiresAt time.Time `json:"expires_at"`
}

// ResponseCache is a thread-safe LRU cache for oracle responses keyed by
// prompt hash, with TTL support.
type ResponseCache struct {
	mu       sync.RWMutex
	capacity int
	ttl      time.Duration
	items    map[string]*list.Element
	order    *list.List
}

type node struct {
	key   string
	entry Entry
}

// NewResponseCache creates a cache holding up to capacity responses, each
// valid for ttl after insertion.
func NewResponseCache(capacity int, ttl time.Duration) *ResponseCache {
	return &ResponseCache{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*list.Element, capacity),
		order:    list.New(),
	}
}

// Get returns the cached response for key. Expired entries are dropped and
// reported as misses.
func (c *ResponseCache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		return "", false
	}

	n := elem.Value.(*node)
	if time.Now().After(n.entry.ExpiresAt) {
		c.order.Remove(elem)
		delete(c.items, key)
		return "", false
	}

	c.order.MoveToFront(elem)
	return n.entry.Response, true
}

// Put stores a response under key, evicting the least recently used entry
// when the cache is full.
func (c *ResponseCache) Put(key, response string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := time.Now().Add(c.ttl)

	if elem, ok := c.items[key]; ok {
		c.order.MoveToFront(elem)
		elem.Value.(*node).entry = Entry{Response: response, ExpiresAt: expiresAt}
		return
	}

	elem := c.order.PushFront(&node{
		key:   key,
		entry: Entry{Response: response, ExpiresAt: expiresAt},
	})
	c.items[key] = elem

	if c.order.Len() > c.capacity {
		c.evictOldest()
	}
}

func (c *ResponseCache) evictOldest() {
	oldest := c.order.Back()
	if oldest == nil {
		return
	}
	c.order.Remove(oldest)
	delete(c.items, oldest.Value.(*node).key)
}

// Len returns the number of live entries.
func (c *ResponseCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.order.Len()
}

// HashKey derives the cache key for a prompt.
func HashKey(prompt string) string {
	h := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(h[:])
}

// Dump snapshots the cache contents for persistence.
func (c *ResponseCache) Dump() map[string]Entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	dump := make(map[string]Entry, len(c.items))
	for k, elem := range c.items {
		dump[k] = elem.Value.(*node).entry
	}
	return dump
}

// Restore replaces the cache contents from a persisted snapshot. Entries
// already expired are skipped; capacity is enforced afterwards.
func (c *ResponseCache) Restore(dump map[string]Entry) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)

	now := time.Now()
	for k, e := range dump {
		if now.After(e.ExpiresAt) {
			continue
		}
		elem := c.order.PushFront(&node{key: k, entry: e})
		c.items[k] = elem
	}

	for c.order.Len() > c.capacity {
		c.evictOldest()
	}
}

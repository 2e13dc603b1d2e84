// Package cache memoizes extraction results keyed by source content, so
// re-indexing runs skip files whose bytes have not changed.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"declex/internal/domain"
)

type ParseCache struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry
	order   []string
	maxSize int
	ttl     time.Duration
	gen     uint64
}

type cacheEntry struct {
	tree      *domain.SymbolTree
	diags     []domain.Diagnostic
	timestamp time.Time
	gen       uint64
}

func NewParseCache(maxSize int, ttl time.Duration) *ParseCache {
	if maxSize <= 0 {
		maxSize = 100
	}
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &ParseCache{
		entries: make(map[string]*cacheEntry),
		order:   make([]string, 0, maxSize),
		maxSize: maxSize,
		ttl:     ttl,
	}
}

// Key derives the cache key from source content.
func Key(source string) string {
	hash := sha256.Sum256([]byte(source))
	return hex.EncodeToString(hash[:16])
}

func (c *ParseCache) Get(key string) (*domain.SymbolTree, []domain.Diagnostic, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, exists := c.entries[key]
	if !exists {
		return nil, nil, false
	}

	// Validated under the same lock that Invalidate takes, so a stale
	// generation can never be served.
	if time.Since(entry.timestamp) > c.ttl || entry.gen != c.gen {
		delete(c.entries, key)
		c.removeFromOrder(key)
		return nil, nil, false
	}

	c.moveToEnd(key)
	return entry.tree, entry.diags, true
}

func (c *ParseCache) Put(key string, tree *domain.SymbolTree, diags []domain.Diagnostic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.entries[key]; exists {
		c.entries[key] = &cacheEntry{
			tree:      tree,
			diags:     diags,
			timestamp: time.Now(),
			gen:       c.gen,
		}
		c.moveToEnd(key)
		return
	}

	if len(c.entries) >= c.maxSize {
		c.evictOldest()
	}

	c.entries[key] = &cacheEntry{
		tree:      tree,
		diags:     diags,
		timestamp: time.Now(),
		gen:       c.gen,
	}
	c.order = append(c.order, key)
}

// Invalidate drops everything, e.g. after the macro table changes.
func (c *ParseCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*cacheEntry)
	c.order = c.order[:0]
	c.gen++
}

func (c *ParseCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *ParseCache) evictOldest() {
	if len(c.order) == 0 {
		return
	}
	oldest := c.order[0]
	c.order = c.order[1:]
	delete(c.entries, oldest)
}

func (c *ParseCache) moveToEnd(key string) {
	c.removeFromOrder(key)
	c.order = append(c.order, key)
}

func (c *ParseCache) removeFromOrder(key string) {
	for i, k := range c.order {
		if k == key {
			c.order = append(c.order[:i], c.order[i+1:]...)
			return
		}
	}
}

package chain

import (
	"sync"
	"time"

	"github.com/influscan/influscan/internal/models"
)

// DefaultCacheTTL is how long a fetched activity entry stays valid.
const DefaultCacheTTL = 10 * time.Second

// ActivityCache caches fetched activity per wallet address.
type ActivityCache interface {
	Get(address string) (*models.BlockchainActivity, bool)
	Put(address string, activity *models.BlockchainActivity)
}

type cacheEntry struct {
	activity models.BlockchainActivity
	storedAt time.Time
}

// MemoryCache is a thread-safe in-memory ActivityCache with a fixed TTL.
// Entries are pure value lookups, so concurrent writers for the same
// address resolve last-write-wins.
type MemoryCache struct {
	ttl     time.Duration
	mu      sync.RWMutex
	entries map[string]cacheEntry
}

// NewMemoryCache creates a MemoryCache. A non-positive ttl falls back to
// DefaultCacheTTL.
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &MemoryCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

// Get returns the cached activity for address if present and not expired.
func (c *MemoryCache) Get(address string) (*models.BlockchainActivity, bool) {
	c.mu.RLock()
	entry, exists := c.entries[address]
	c.mu.RUnlock()

	if !exists || time.Since(entry.storedAt) > c.ttl {
		return nil, false
	}

	activity := entry.activity
	return &activity, true
}

// Put stores activity for address, replacing any previous entry.
func (c *MemoryCache) Put(address string, activity *models.BlockchainActivity) {
	if activity == nil {
		return
	}

	c.mu.Lock()
	c.entries[address] = cacheEntry{
		activity: *activity,
		storedAt: time.Now(),
	}
	c.mu.Unlock()
}

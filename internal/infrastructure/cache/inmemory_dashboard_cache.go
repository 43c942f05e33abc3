package cache

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// InMemoryDashboardCache implements DashboardCache in process memory.
// Suitable for tests and single-instance deployments without Redis.
type InMemoryDashboardCache struct {
	mu      sync.RWMutex
	entries map[string]inMemoryEntry
	ttl     time.Duration
}

type inMemoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// NewInMemoryDashboardCache creates an in-memory dashboard cache
func NewInMemoryDashboardCache(ttl time.Duration) *InMemoryDashboardCache {
	return &InMemoryDashboardCache{
		entries: make(map[string]inMemoryEntry),
		ttl:     ttl,
	}
}

func (c *InMemoryDashboardCache) key(sellerID uuid.UUID, key string) string {
	return sellerID.String() + ":" + key
}

// Get unmarshals the cached value for the key into dest
func (c *InMemoryDashboardCache) Get(ctx context.Context, sellerID uuid.UUID, key string, dest interface{}) error {
	c.mu.RLock()
	entry, ok := c.entries[c.key(sellerID, key)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return ErrCacheMiss
	}
	return json.Unmarshal(entry.payload, dest)
}

// Set stores the value under the key with the configured TTL
func (c *InMemoryDashboardCache) Set(ctx context.Context, sellerID uuid.UUID, key string, value interface{}) error {
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[c.key(sellerID, key)] = inMemoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// InvalidateSeller drops every cached entry belonging to the seller
func (c *InMemoryDashboardCache) InvalidateSeller(ctx context.Context, sellerID uuid.UUID) error {
	prefix := sellerID.String() + ":"

	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	return nil
}

// Ensure InMemoryDashboardCache implements DashboardCache
var _ DashboardCache = (*InMemoryDashboardCache)(nil)

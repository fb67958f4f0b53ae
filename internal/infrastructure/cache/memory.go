package cache

import (
	"context"
	"sync"
)

// MemoryStore is a thread-safe in-process cache implementing domain.FoodCache.
// Entries live until the process exits; there is no eviction.
type MemoryStore struct {
	data  map[string]string
	mutex sync.RWMutex
}

// NewMemoryStore creates a new in-memory cache
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data: make(map[string]string),
	}
}

// Load returns a snapshot of all entries
func (c *MemoryStore) Load(ctx context.Context) map[string]string {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	snapshot := make(map[string]string, len(c.data))
	for k, v := range c.data {
		snapshot[k] = v
	}
	return snapshot
}

// Save stores a value under key, overwriting any previous value
func (c *MemoryStore) Save(ctx context.Context, key, value string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = value
	return nil
}

// Size returns the current number of items in the cache
func (c *MemoryStore) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all items from the cache
func (c *MemoryStore) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]string)
}

package controller

import (
	"sync"
)

// Cache manages cached data with thread-safe access.
//
// The controller node status is cached after the first successful call: the
// node address never changes while the service runs. All methods are safe
// for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	status *NodeStatus
}

// NewCache creates a new empty cache.
func NewCache() *Cache {
	return &Cache{}
}

// GetStatus retrieves the cached node status.
//
// Returns the cached status and true if found, nil and false otherwise.
func (c *Cache) GetStatus() (*NodeStatus, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.status != nil {
		return c.status, true
	}
	return nil, false
}

// SetStatus stores the node status in the cache.
func (c *Cache) SetStatus(s *NodeStatus) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = s
}

// Clear removes all cached data.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.status = nil
}

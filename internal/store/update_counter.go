package store

import "sync"

// InvalidUpdateCount never matches a real count and always passes
// CheckUpdateCount. Sessions start with it.
const InvalidUpdateCount int64 = -1

// UpdateCounter keeps one monotonic counter per provider, bumped by every
// mutation of that provider's row or of its files. A session remembers the
// value seen after each of its transactions and aborts when someone else
// wrote to the same provider in between. Writes to other providers do not
// disturb it.
type UpdateCounter struct {
	mu     sync.Mutex
	counts map[int64]int64
}

// Incr bumps the provider's counter and returns the new value.
func (c *UpdateCounter) Incr(providerID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.counts == nil {
		c.counts = make(map[int64]int64)
	}
	c.counts[providerID]++
	return c.counts[providerID]
}

// Get returns the provider's current value.
func (c *UpdateCounter) Get(providerID int64) int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[providerID]
}

// Check reports whether count is InvalidUpdateCount or equals the
// provider's current value.
func (c *UpdateCounter) Check(providerID, count int64) bool {
	if count == InvalidUpdateCount {
		return true
	}
	return count == c.Get(providerID)
}

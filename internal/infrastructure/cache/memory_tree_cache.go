package cache

import (
	"context"
	"sync"
	"time"

	ledgerapp "github.com/erp/ledger/internal/application/ledger"
)

// InMemoryTreeCache keeps the chart of accounts in process memory.
// Suitable for single-instance deployments and tests.
type InMemoryTreeCache struct {
	mu         sync.RWMutex
	snapshot   *ledgerapp.AccountSnapshot
	generation int64
	expiresAt  time.Time
	now        func() time.Time
}

// NewInMemoryTreeCache creates an empty in-memory tree cache
func NewInMemoryTreeCache() *InMemoryTreeCache {
	return &InMemoryTreeCache{now: time.Now}
}

// Generation returns the number of invalidations so far
func (c *InMemoryTreeCache) Generation(ctx context.Context) (int64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

// Get returns the cached accounts if present and not expired
func (c *InMemoryTreeCache) Get(ctx context.Context) (*ledgerapp.AccountSnapshot, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.snapshot == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	return c.snapshot, true, nil
}

// Set stores the snapshot for ttl unless the cache was invalidated after the
// snapshot's generation was read. A non-positive ttl clears the cache.
func (c *InMemoryTreeCache) Set(ctx context.Context, snapshot *ledgerapp.AccountSnapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if snapshot == nil || ttl <= 0 {
		c.snapshot = nil
		return nil
	}
	if snapshot.Generation != c.generation {
		return nil
	}
	c.snapshot = snapshot
	c.expiresAt = c.now().Add(ttl)
	return nil
}

// Invalidate drops the cached accounts and advances the generation
func (c *InMemoryTreeCache) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	c.snapshot = nil
	c.generation++
	c.mu.Unlock()
	return nil
}

var _ ledgerapp.TreeCache = (*InMemoryTreeCache)(nil)

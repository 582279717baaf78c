package cache

import (
	"context"
	"sync"
	"time"

	"github.com/GaudenzB/blueearth-contracts/internal/domain/analysis"
	"github.com/google/uuid"
)

// StatusCache shields the database from tight analysis polling loops.
// Implementations return (nil, nil) on a miss.
type StatusCache interface {
	Get(ctx context.Context, tenantID, analysisID uuid.UUID) (*analysis.Result, error)
	Set(ctx context.Context, result *analysis.Result) error
	Invalidate(ctx context.Context, tenantID, analysisID uuid.UUID) error
}

type memoryEntry struct {
	result    *analysis.Result
	expiresAt time.Time
}

// InMemoryStatusCache is a process-local StatusCache for single-instance
// deployments and tests
type InMemoryStatusCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

// NewInMemoryStatusCache creates an in-memory status cache with the given TTL
func NewInMemoryStatusCache(ttl time.Duration) *InMemoryStatusCache {
	return &InMemoryStatusCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func cacheKey(tenantID, analysisID uuid.UUID) string {
	return tenantID.String() + ":" + analysisID.String()
}

// Get returns the cached result, or nil when absent or expired
func (c *InMemoryStatusCache) Get(_ context.Context, tenantID, analysisID uuid.UUID) (*analysis.Result, error) {
	c.mu.RLock()
	entry, ok := c.entries[cacheKey(tenantID, analysisID)]
	c.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, nil
	}
	return entry.result, nil
}

// Set stores the result under its tenant and analysis ID
func (c *InMemoryStatusCache) Set(_ context.Context, result *analysis.Result) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[cacheKey(result.TenantID, result.ID)] = memoryEntry{
		result:    result,
		expiresAt: time.Now().Add(c.ttl),
	}
	return nil
}

// Invalidate removes a cached result
func (c *InMemoryStatusCache) Invalidate(_ context.Context, tenantID, analysisID uuid.UUID) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, cacheKey(tenantID, analysisID))
	return nil
}

var _ StatusCache = (*InMemoryStatusCache)(nil)

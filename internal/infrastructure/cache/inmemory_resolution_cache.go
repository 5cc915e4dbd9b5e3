package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	channelapp "github.com/DesarrolladorTAE/Clic-Menu-sub000/internal/application/channel"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

// InMemoryResolutionCache caches resolved channel prices in process memory.
// Suitable for tests and single-instance deployments; entries are not shared
// across console instances.
type InMemoryResolutionCache struct {
	entries sync.Map // map[string]*resolutionEntry
	ttl     time.Duration
	logger  *zap.Logger
	stopCh  chan struct{}
	stopped int32

	hits   int64
	misses int64
}

type resolutionEntry struct {
	value     *channelapp.ResolvedPricesResponse
	expiresAt time.Time
}

func (e *resolutionEntry) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryResolutionCacheOption is a functional option for configuring the cache
type InMemoryResolutionCacheOption func(*InMemoryResolutionCache)

// WithInMemoryResolutionTTL sets the entry TTL
func WithInMemoryResolutionTTL(ttl time.Duration) InMemoryResolutionCacheOption {
	return func(c *InMemoryResolutionCache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithInMemoryResolutionLogger sets the logger for the cache
func WithInMemoryResolutionLogger(logger *zap.Logger) InMemoryResolutionCacheOption {
	return func(c *InMemoryResolutionCache) {
		c.logger = logger
	}
}

// NewInMemoryResolutionCache creates a new in-memory resolution cache and
// starts its expiry sweep
func NewInMemoryResolutionCache(opts ...InMemoryResolutionCacheOption) *InMemoryResolutionCache {
	cache := &InMemoryResolutionCache{
		ttl:    defaultResolutionTTL,
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(cache)
	}

	go cache.cleanupExpired()

	return cache
}

// Get returns a cached resolution, or nil on miss
func (c *InMemoryResolutionCache) Get(_ context.Context, productID uuid.UUID, variantID *uuid.UUID, branchID uuid.UUID) (*channelapp.ResolvedPricesResponse, error) {
	key := resolutionKey(productID, variantID, branchID)

	if value, ok := c.entries.Load(key); ok {
		entry := value.(*resolutionEntry)
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			return entry.value, nil
		}
		c.entries.Delete(key)
	}

	atomic.AddInt64(&c.misses, 1)
	return nil, nil
}

// Set stores a resolution under its product/variant/branch key
func (c *InMemoryResolutionCache) Set(_ context.Context, resolution *channelapp.ResolvedPricesResponse) error {
	if resolution == nil {
		return nil
	}
	key := resolutionKey(resolution.ProductID, resolution.VariantID, resolution.BranchID)
	c.entries.Store(key, &resolutionEntry{
		value:     resolution,
		expiresAt: time.Now().Add(c.ttl),
	})
	return nil
}

// InvalidateProduct drops every cached resolution of the product, variants included
func (c *InMemoryResolutionCache) InvalidateProduct(_ context.Context, productID uuid.UUID) error {
	prefix := resolutionKeyPrefix + productID.String() + ":"
	c.deleteMatching(func(key string) bool {
		return strings.HasPrefix(key, prefix)
	})
	return nil
}

// InvalidateBranch drops every cached resolution scoped to the branch
func (c *InMemoryResolutionCache) InvalidateBranch(_ context.Context, branchID uuid.UUID) error {
	suffix := ":" + branchID.String()
	c.deleteMatching(func(key string) bool {
		return strings.HasSuffix(key, suffix)
	})
	return nil
}

func (c *InMemoryResolutionCache) deleteMatching(match func(key string) bool) {
	c.entries.Range(func(key, _ any) bool {
		if match(key.(string)) {
			c.entries.Delete(key)
		}
		return true
	})
}

// cleanupExpired periodically removes expired entries so abandoned keys do
// not accumulate
func (c *InMemoryResolutionCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.entries.Range(func(key, value any) bool {
				if value.(*resolutionEntry).isExpired() {
					c.entries.Delete(key)
				}
				return true
			})
		case <-c.stopCh:
			return
		}
	}
}

// Stats returns cumulative hit and miss counts
func (c *InMemoryResolutionCache) Stats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// Stop terminates the expiry sweep. Safe to call more than once.
func (c *InMemoryResolutionCache) Stop() {
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
}

var _ channelapp.ResolutionCache = (*InMemoryResolutionCache)(nil)

// internal/service/cache.go
package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

type cachedDashboard struct {
	dashboard *Dashboard
	expires   time.Time
}

// DashboardCache keeps built dashboards per user until they expire or a
// write invalidates them. A background loop drops expired entries.
type DashboardCache struct {
	mu    sync.RWMutex
	items map[string]cachedDashboard
	gen   uint64 // bumped by InvalidateAll
	now   func() time.Time

	hits          atomic.Int64
	misses        atomic.Int64
	invalidations atomic.Int64

	stop chan struct{}
	once sync.Once
}

// CacheStats is the state of the dashboard cache.
type CacheStats struct {
	Entries       int   `json:"entries"`
	Expired       int   `json:"expired"`
	Hits          int64 `json:"hits"`
	Misses        int64 `json:"misses"`
	Invalidations int64 `json:"invalidations"`
}

// NewDashboardCache starts the cache and its cleanup loop.
func NewDashboardCache(cleanupInterval time.Duration, now func() time.Time) *DashboardCache {
	if now == nil {
		now = time.Now
	}
	c := &DashboardCache{
		items: make(map[string]cachedDashboard),
		now:   now,
		stop:  make(chan struct{}),
	}

	go c.cleanupLoop(cleanupInterval)

	return c
}

func dashboardKey(userID string) string {
	return dashboardKeyPrefix + userID
}

// get returns a live entry and the current generation.
func (c *DashboardCache) get(key string) (*Dashboard, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, found := c.items[key]
	if !found || !c.now().Before(item.expires) {
		return nil, c.gen, false
	}
	return item.dashboard, c.gen, true
}

// set stores d unless an invalidation happened after gen was read.
func (c *DashboardCache) set(key string, d *Dashboard, ttl time.Duration, gen uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return false
	}
	c.items[key] = cachedDashboard{dashboard: d, expires: c.now().Add(ttl)}
	return true
}

// GetOrBuild returns the cached dashboard of userID or builds and stores
// a new one. Build errors are not cached, and neither is a build that
// raced with a write.
func (c *DashboardCache) GetOrBuild(ctx context.Context, userID string, ttl time.Duration, build func(context.Context) (*Dashboard, error)) (*Dashboard, error) {
	key := dashboardKey(userID)
	d, gen, found := c.get(key)
	if found {
		c.hits.Add(1)
		return d, nil
	}
	c.misses.Add(1)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := build(ctx)
	if err != nil {
		return nil, err
	}

	c.set(key, d, ttl, gen)
	return d, nil
}

// InvalidateAll drops every dashboard. Called after each write.
func (c *DashboardCache) InvalidateAll() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.gen++
	n := 0
	for k := range c.items {
		if strings.HasPrefix(k, dashboardKeyPrefix) {
			delete(c.items, k)
			n++
		}
	}
	c.invalidations.Add(1)
	return n
}

// Len returns the number of stored entries, expired ones included.
func (c *DashboardCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func (c *DashboardCache) cleanupLoop(interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.removeExpired()
		case <-c.stop:
			return
		}
	}
}

func (c *DashboardCache) removeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, item := range c.items {
		if !now.Before(item.expires) {
			delete(c.items, key)
			n++
		}
	}
	return n
}

// Close stops the cleanup goroutine. Safe to call twice.
func (c *DashboardCache) Close() {
	c.once.Do(func() { close(c.stop) })
}

// Stats reports entry counts and hit ratio inputs.
func (c *DashboardCache) Stats() CacheStats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := c.now()
	expired := 0
	for _, item := range c.items {
		if !now.Before(item.expires) {
			expired++
		}
	}

	return CacheStats{
		Entries:       len(c.items),
		Expired:       expired,
		Hits:          c.hits.Load(),
		Misses:        c.misses.Load(),
		Invalidations: c.invalidations.Load(),
	}
}

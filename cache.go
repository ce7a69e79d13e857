package pagebuilder

import (
	"sync"
	"time"
)

// SiteCache holds the most recent Site load for the dev server. With a zero TTL
// every Get reloads from disk, so edits to config or templates show up on the
// next request.
type SiteCache struct {
	mu      sync.RWMutex
	site    *Site
	fetched time.Time
	ttl     time.Duration
	load    func() (*Site, error)
}

// NewSiteCache creates a SiteCache that loads the files named by opts.
func NewSiteCache(opts Options) *SiteCache {
	return &SiteCache{
		ttl:  opts.CacheTTL,
		load: func() (*Site, error) { return LoadSite(opts) },
	}
}

func (c *SiteCache) valid() bool {
	return c.site != nil && c.ttl > 0 && time.Since(c.fetched) < c.ttl
}

// Invalidate clears the cache so the next Get triggers a fresh load.
func (c *SiteCache) Invalidate() {
	c.mu.Lock()
	c.site = nil
	c.mu.Unlock()
}

// Get returns the cached Site, reloading it when stale.
// It tries a read lock first; only takes a write lock if a reload is needed.
func (c *SiteCache) Get() (*Site, error) {
	c.mu.RLock()
	if c.valid() {
		site := c.site
		c.mu.RUnlock()
		return site, nil
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid() {
		return c.site, nil
	}
	site, err := c.load()
	if err != nil {
		return nil, err
	}
	c.site = site
	c.fetched = time.Now()
	return site, nil
}

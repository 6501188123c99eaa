package services

import (
	"context"
	"sync"
	"time"

	"storefront-service/internal/domain"
	"storefront-service/internal/repository"

	"golang.org/x/sync/singleflight"
)

// SiteConfigCache keeps the single config row in memory so checkout does not
// pay a database round trip per request. Admin config writes call Invalidate
// explicitly; otherwise entries age out on the TTL. Concurrent refreshes are
// collapsed into one database read.
type SiteConfigCache struct {
	repo repository.ConfigRepository
	ttl  time.Duration

	mu        sync.RWMutex
	cached    *domain.SiteConfig
	fetchedAt time.Time

	group singleflight.Group
}

func NewSiteConfigCache(repo repository.ConfigRepository, ttl time.Duration) *SiteConfigCache {
	return &SiteConfigCache{repo: repo, ttl: ttl}
}

func (c *SiteConfigCache) Get(ctx context.Context) (*domain.SiteConfig, error) {
	c.mu.RLock()
	if c.cached != nil && time.Since(c.fetchedAt) < c.ttl {
		cfg := c.cached
		c.mu.RUnlock()
		return cfg, nil
	}
	c.mu.RUnlock()

	v, err, _ := c.group.Do("site-config", func() (any, error) {
		cfg, err := c.repo.Get(ctx)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.cached = cfg
		c.fetchedAt = time.Now()
		c.mu.Unlock()
		return cfg, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*domain.SiteConfig), nil
}

func (c *SiteConfigCache) Invalidate() {
	c.mu.Lock()
	c.cached = nil
	c.mu.Unlock()
}

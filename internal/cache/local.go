package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"match-highlights/internal/models"
)

// LocalCache is an in-process HighlightCache for single-instance
// deployments that do not run Redis. Same TTL-only expiry semantics.
type LocalCache struct {
	store *gocache.Cache
}

func NewLocalCache(ttl time.Duration) *LocalCache {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &LocalCache{
		store: gocache.New(ttl, 2*ttl),
	}
}

func (c *LocalCache) Get(_ context.Context, id string) (*models.HighlightDTO, bool) {
	value, found := c.store.Get(Key(id))
	if !found {
		return nil, false
	}

	dto, ok := value.(*models.HighlightDTO)
	if !ok {
		return nil, false
	}

	copied := *dto
	return &copied, true
}

func (c *LocalCache) Set(_ context.Context, dto *models.HighlightDTO) {
	copied := *dto
	c.store.SetDefault(Key(dto.ID), &copied)
}

func (c *LocalCache) Delete(_ context.Context, id string) {
	c.store.Delete(Key(id))
}

func (c *LocalCache) Health() error { return nil }
func (c *LocalCache) Close() error  { return nil }

package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yungbote/assetvault-backend/internal/platform/logger"
)

const facetCacheTTL = 2 * time.Minute

// FacetCache caches derived facet lists. It is an optimization layer only:
// every method degrades to a no-op when redis is unreachable, and callers
// fall through to the sampled derivation.
type FacetCache interface {
	Get(ctx context.Context, key string) (*FacetLists, bool)
	Set(ctx context.Context, key string, lists FacetLists)
	Invalidate(ctx context.Context)
}

type redisFacetCache struct {
	log    *logger.Logger
	client *redis.Client
}

func NewRedisFacetCache(baseLog *logger.Logger, client *redis.Client) FacetCache {
	return &redisFacetCache{
		log:    baseLog.With("service", "FacetCache"),
		client: client,
	}
}

// Invalidation bumps a version counter instead of scanning for keys; stale
// entries age out via TTL.
func (c *redisFacetCache) versionedKey(ctx context.Context, key string) string {
	ver, err := c.client.Get(ctx, "facets:ver").Result()
	if err != nil {
		ver = "0"
	}
	return fmt.Sprintf("facets:v%s:%s", ver, key)
}

func (c *redisFacetCache) Get(ctx context.Context, key string) (*FacetLists, bool) {
	raw, err := c.client.Get(ctx, c.versionedKey(ctx, key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Debug("Facet cache read failed, falling through", "error", err)
		}
		return nil, false
	}
	var lists FacetLists
	if err := json.Unmarshal(raw, &lists); err != nil {
		return nil, false
	}
	return &lists, true
}

func (c *redisFacetCache) Set(ctx context.Context, key string, lists FacetLists) {
	raw, err := json.Marshal(lists)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, c.versionedKey(ctx, key), raw, facetCacheTTL).Err(); err != nil {
		c.log.Debug("Facet cache write failed", "error", err)
	}
}

func (c *redisFacetCache) Invalidate(ctx context.Context) {
	if err := c.client.Incr(ctx, "facets:ver").Err(); err != nil {
		c.log.Debug("Facet cache invalidation failed", "error", err)
	}
}

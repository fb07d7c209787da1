// Package cache is a redis-backed read-through cache with grouped
// invalidation. Groups play the role of cache tags: every mutation of an
// entity kind flushes the whole group, so stale reads are bounded by TTL,
// never by per-key dependency tracking.
package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	ListingTTL = 10 * time.Minute
	NearbyTTL  = 30 * time.Minute
	RankingTTL = time.Hour

	groupKeyPrefix = "cachegroup:"
)

// Cache groups. One per entity kind, plus a dedicated group for the
// per-user recommendation keys.
const (
	GroupDestinations    = "destinations"
	GroupEvents          = "events"
	GroupCommunities     = "communities"
	GroupRoutes          = "routes"
	GroupCategories      = "categories"
	GroupUsers           = "users"
	GroupTours           = "tours"
	GroupRecommendations = "recommendations"
)

type Cache struct {
	client *redis.Client
}

// New wraps a redis client. A nil client is valid and makes every
// Remember call compute directly.
func New(client *redis.Client) *Cache {
	return &Cache{client: client}
}

// Remember returns the cached value under key, or computes, stores and
// returns it. The key is registered in every given group so that
// InvalidateGroup can drop it eagerly. Any redis failure falls back to
// direct computation: the cache is an optimization, not a dependency.
func Remember[T any](ctx context.Context, c *Cache, key string, ttl time.Duration, groups []string, compute func(context.Context) (T, error)) (T, error) {
	if c == nil || c.client == nil {
		return compute(ctx)
	}

	cached, err := c.client.Get(ctx, key).Bytes()
	if err == nil {
		var value T
		if unmarshalErr := json.Unmarshal(cached, &value); unmarshalErr == nil {
			return value, nil
		}
	}

	value, err := compute(ctx)
	if err != nil {
		return value, err
	}

	payload, err := json.Marshal(value)
	if err != nil {
		return value, nil
	}

	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, payload, ttl)
	for _, group := range groups {
		pipe.SAdd(ctx, groupKeyPrefix+group, key)
	}
	_, _ = pipe.Exec(ctx)

	return value, nil
}

// InvalidateGroup drops every key registered under the group along with
// the group set itself.
func (c *Cache) InvalidateGroup(ctx context.Context, group string) {
	if c == nil || c.client == nil {
		return
	}
	setKey := groupKeyPrefix + group
	keys, err := c.client.SMembers(ctx, setKey).Result()
	if err != nil {
		return
	}
	_ = c.client.Del(ctx, append(keys, setKey)...).Err()
}

// InvalidateGroups is a convenience for mutations touching several kinds.
func (c *Cache) InvalidateGroups(ctx context.Context, groups ...string) {
	for _, group := range groups {
		c.InvalidateGroup(ctx, group)
	}
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// PostCache is a redis-backed read-through cache for rendered post payloads.
// It is strictly best-effort: a miss or a redis error always falls back to
// the repository, never to a failed request.
type PostCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewPostCache builds the cache. A nil client disables it.
func NewPostCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *PostCache {
	return &PostCache{client: client, ttl: ttl, logger: logger}
}

func postKey(id string) string {
	return "post:" + id
}

// Get returns the cached payload for a post id, or ok=false on miss.
func (c *PostCache) Get(ctx context.Context, id string) ([]byte, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	payload, err := c.client.Get(ctx, postKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("post cache read failed", zap.String("post_id", id), zap.Error(err))
		}
		return nil, false
	}
	return payload, true
}

// Set stores the payload for a post id with the configured TTL.
func (c *PostCache) Set(ctx context.Context, id string, payload []byte) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Set(ctx, postKey(id), payload, c.ttl).Err(); err != nil {
		c.logger.Warn("post cache write failed", zap.String("post_id", id), zap.Error(err))
	}
}

// Invalidate drops the cached payload after a post or its comments change.
func (c *PostCache) Invalidate(ctx context.Context, id string) {
	if c == nil || c.client == nil {
		return
	}
	if err := c.client.Del(ctx, postKey(id)).Err(); err != nil {
		c.logger.Warn("post cache invalidation failed", zap.String("post_id", id), zap.Error(err))
	}
}

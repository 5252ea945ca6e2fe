package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	platformredis "appguard/internal/platform/redis"
)

const statsCacheKey = "appguard:stats"

// RedisStatsCache caches the stats snapshot in Redis for a short TTL.
// Every failure path degrades to a cache miss: stats must keep working when
// Redis is down.
type RedisStatsCache struct {
	client *platformredis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStatsCache(client *platformredis.Client, ttl time.Duration, logger *slog.Logger) *RedisStatsCache {
	return &RedisStatsCache{client: client, ttl: ttl, logger: logger}
}

func (c *RedisStatsCache) Get(ctx context.Context) (*Stats, bool) {
	raw, err := c.client.Get(ctx, statsCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var stats Stats
	if err := json.Unmarshal(raw, &stats); err != nil {
		c.logger.WarnContext(ctx, "corrupt stats cache entry dropped", "error", err)
		c.Invalidate(ctx)
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatsCache) Set(ctx context.Context, stats *Stats) {
	raw, err := json.Marshal(stats)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, statsCacheKey, raw, c.ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to cache stats snapshot", "error", err)
	}
}

func (c *RedisStatsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, statsCacheKey).Err(); err != nil {
		c.logger.WarnContext(ctx, "failed to invalidate stats cache", "error", err)
	}
}

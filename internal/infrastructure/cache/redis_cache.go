package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/portfolio-api/pkg/helpers"
)

// RedisCache stores JSON values in Redis under a key prefix.
type RedisCache struct {
	RDB    redis.Cmdable
	Prefix string
}

func NewRedisCache(rdb redis.Cmdable, prefix string) *RedisCache {
	return &RedisCache{RDB: rdb, Prefix: prefix}
}

func (c *RedisCache) GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	return helpers.RedisGetJSON(ctx, c.RDB, c.Prefix+key, dest)
}

func (c *RedisCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	return helpers.RedisSetJSON(ctx, c.RDB, c.Prefix+key, value, ttl)
}

func (c *RedisCache) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = c.Prefix + k
	}
	return helpers.RedisDel(ctx, c.RDB, full...)
}

package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/catalog-console/internal/redissvc"
)

// DefaultRedisKey is the hash holding every cached response.
const DefaultRedisKey = "catalog:cache"

// Redis keeps all entries as fields of a single hash so one DEL
// invalidates everything. The hash expires ttl after the last Set.
type Redis struct {
	rdb *redis.Client
	key string
	ttl time.Duration
}

func NewRedis(rs *redissvc.RedisService, ttl time.Duration) *Redis {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{rdb: rs.Rdb(), key: DefaultRedisKey, ttl: ttl}
}

func (c *Redis) Get(ctx context.Context, field string) ([]byte, bool, error) {
	v, err := c.rdb.HGet(ctx, c.key, field).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (c *Redis) Set(ctx context.Context, field string, value []byte) error {
	pipe := c.rdb.TxPipeline()
	pipe.HSet(ctx, c.key, field, value)
	pipe.Expire(ctx, c.key, c.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (c *Redis) Invalidate(ctx context.Context) error {
	return c.rdb.Del(ctx, c.key).Err()
}

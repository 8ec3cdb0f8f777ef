package redissvc

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const connectAttempts = 5

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

// Connect dials addr and pings it, retrying with exponential backoff until
// the server answers or ctx is done.
func Connect(ctx context.Context, addr string, logger *zap.Logger) (*RedisService, error) {
	rdb := redis.NewClient(&redis.Options{Addr: addr})

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Warn("redis not ready", zap.String("addr", addr), zap.Error(err))
			return struct{}{}, err
		}
		return struct{}{}, nil
	}, backoff.WithBackOff(backoff.NewExponentialBackOff()), backoff.WithMaxTries(connectAttempts))
	if err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("could not connect to redis at %s: %w", addr, err)
	}
	return NewRedisService(rdb, ctx), nil
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

func (a *RedisService) Close() error {
	return a.rdb.Close()
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Redis counts attempts with INCR + EXPIRE, correct across instances.
type Redis struct {
	client *redis.Client
	max    int64
	window time.Duration
	log    *zap.Logger
}

func NewRedis(addr, password string, db, max int, window time.Duration, log *zap.Logger) (*Redis, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	log.Info("redis rate limiter connected", zap.String("addr", addr))

	return &Redis{client: rdb, max: int64(max), window: window, log: log}, nil
}

func (r *Redis) Allow(ctx context.Context, key string) (bool, error) {
	k := "ratelimit:" + key

	n, err := r.client.Incr(ctx, k).Result()
	if err != nil {
		return false, err
	}
	if n == 1 {
		if err := r.client.Expire(ctx, k, r.window).Err(); err != nil {
			return false, err
		}
	}
	return n <= r.max, nil
}

func (r *Redis) Reset(ctx context.Context, key string) error {
	return r.client.Del(ctx, "ratelimit:"+key).Err()
}

func (r *Redis) Close() error {
	return r.client.Close()
}

package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"accident-map/logger"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "accidentmap:"

// Redis is a Cache backed by a Redis server.
type Redis struct {
	client *redis.Client
	log    *logger.Logger
}

// NewRedis connects to the server at redisURL (redis:// or rediss://).
func NewRedis(ctx context.Context, redisURL string, log *logger.Logger) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &Redis{client: client, log: log}, nil
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool) {
	val, err := r.client.Get(ctx, keyPrefix+key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.log.Warn("cache get failed", "key", key, "error", err)
		}
		return nil, false
	}
	return val, true
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) {
	if err := r.client.Set(ctx, keyPrefix+key, value, ttl).Err(); err != nil {
		r.log.Warn("cache set failed", "key", key, "error", err)
	}
}

func (r *Redis) Close() error {
	return r.client.Close()
}

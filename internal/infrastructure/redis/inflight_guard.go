package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "feedback:delete-inflight:"

// Client is the subset of *redis.Client the guard needs.
type Client interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// InflightGuard shares delete markers across API replicas. The TTL bounds how long a
// marker survives a crashed holder.
type InflightGuard struct {
	rdb Client
	ttl time.Duration
}

func NewInflightGuard(rdb Client, ttl time.Duration) *InflightGuard {
	return &InflightGuard{rdb: rdb, ttl: ttl}
}

func (g *InflightGuard) Acquire(ctx context.Context, id string) (bool, error) {
	ok, err := g.rdb.SetNX(ctx, keyPrefix+id, time.Now().UTC().Format(time.RFC3339Nano), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis setnx: %w", err)
	}
	return ok, nil
}

func (g *InflightGuard) Release(ctx context.Context, id string) error {
	if err := g.rdb.Del(ctx, keyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}

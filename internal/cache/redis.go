package cache

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is a Store backed by Redis, for deployments running more than
// one instance behind a load balancer. Expiry uses Redis' native TTL instead
// of the lazy delete the in-memory store does.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisStore{
		client: client,
		ttl:    ttl,
		logger: slog.Default().With("component", "redis_cache"),
	}
}

func (r *RedisStore) Get(ctx context.Context, ns Namespace, key string) ([]byte, bool) {
	payload, err := r.client.Get(ctx, r.key(ns, key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			r.logger.Warn("cache read failed", "namespace", ns, "error", err)
		}
		return nil, false
	}
	return payload, true
}

func (r *RedisStore) Set(ctx context.Context, ns Namespace, key string, payload []byte) error {
	return r.client.Set(ctx, r.key(ns, key), payload, r.ttl).Err()
}

func (r *RedisStore) key(ns Namespace, key string) string {
	return "prodyscan:" + string(ns) + ":" + key
}

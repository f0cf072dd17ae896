package store

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists keys in Redis so the session and draft survive across
// client processes, the way browser localStorage survives page loads.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedis connects to addr and verifies the connection with a short ping.
func NewRedis(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisStore{client: client, prefix: DefaultPrefix}, nil
}

// NewRedisWithClient wraps an existing client; tests hand in a miniredis one.
func NewRedisWithClient(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: DefaultPrefix}
}

func (r *RedisStore) key(k string) string {
	return r.prefix + ":" + k
}

func (r *RedisStore) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := r.client.Get(ctx, r.key(key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (r *RedisStore) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, r.key(key), value, 0).Err()
}

func (r *RedisStore) Delete(ctx context.Context, keys ...string) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = r.key(k)
	}
	return r.client.Del(ctx, full...).Err()
}

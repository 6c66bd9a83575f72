package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores keys as plain Redis strings under a prefix.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

// DialRedis connects to addr and verifies the connection.
func DialRedis(ctx context.Context, addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("storage/redis: ping: %w", err)
	}
	return client, nil
}

// NewRedisBackend wraps an existing client. Keys are stored as prefix+key.
func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, bool, error) {
	payload, err := r.client.Get(ctx, r.prefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return payload, true, nil
}

func (r *RedisBackend) Set(ctx context.Context, key string, payload []byte) error {
	return r.client.Set(ctx, r.prefix+key, payload, 0).Err()
}

func (r *RedisBackend) SetMany(ctx context.Context, entries map[string][]byte) error {
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, payload := range entries {
			pipe.Set(ctx, r.prefix+key, payload, 0)
		}
		return nil
	})
	return err
}

func (r *RedisBackend) Close() error { return r.client.Close() }

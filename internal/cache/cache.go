// Package cache stores serialized simulation results.
//
// Simulations are deterministic, so a result stored for a key never
// becomes outdated. The TTL only limits the size of the cache.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type Cache interface {
	// Get returns the value for the key. The boolean is false if the key
	// does not exist.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Key returns the cache key for a value. Values that serialize to the same
// JSON have the same key.
func Key(prefix string, v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("could not serialize cache key: %w", err)
	}

	sum := sha256.Sum256(b)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:])), nil
}

// Redis is a Cache backed by a redis server.
type Redis struct {
	client *redis.Client
}

func NewRedis(addr string) *Redis {
	return &Redis{
		client: redis.NewClient(&redis.Options{
			Addr:         addr,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		}),
	}
}

// Ping tests the connection to the server.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) Close() error {
	return r.client.Close()
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}

	if err != nil {
		return nil, false, err
	}

	return val, true, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return r.client.Set(ctx, key, value, ttl).Err()
}

// Nop does not store anything. It is used when no cache is configured.
type Nop struct{}

func (Nop) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (Nop) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}

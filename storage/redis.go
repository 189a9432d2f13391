package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker/v2"
)

// RedisDocuments stores documents as plain Redis strings without expiry.
// Calls go through a circuit breaker so a dead Redis fails fast.
type RedisDocuments struct {
	client  *redis.Client
	prefix  string
	breaker *gobreaker.CircuitBreaker[[]byte]
}

func NewRedisDocuments(client *redis.Client, prefix string) *RedisDocuments {
	return &RedisDocuments{
		client: client,
		prefix: prefix,
		breaker: gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
			Name:    "redis-documents",
			Timeout: 10 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 5
			},
			// Missing keys and full memory are answers, not outages.
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrNotFound) || errors.Is(err, ErrQuotaExceeded)
			},
		}),
	}
}

func (r *RedisDocuments) Get(ctx context.Context, key string) ([]byte, error) {
	return r.breaker.Execute(func() ([]byte, error) {
		data, err := r.client.Get(ctx, r.key(key)).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}
		return data, nil
	})
}

func (r *RedisDocuments) Put(ctx context.Context, key string, body []byte) error {
	_, err := r.breaker.Execute(func() ([]byte, error) {
		if err := r.client.Set(ctx, r.key(key), body, 0).Err(); err != nil {
			if isOutOfMemory(err) {
				return nil, ErrQuotaExceeded
			}
			return nil, fmt.Errorf("redis set failed: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *RedisDocuments) Delete(ctx context.Context, key string) error {
	_, err := r.breaker.Execute(func() ([]byte, error) {
		if err := r.client.Del(ctx, r.key(key)).Err(); err != nil {
			return nil, fmt.Errorf("redis delete failed: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *RedisDocuments) key(key string) string {
	if r.prefix == "" {
		return key
	}
	return r.prefix + ":" + key
}

func isOutOfMemory(err error) bool {
	return strings.HasPrefix(err.Error(), "OOM")
}

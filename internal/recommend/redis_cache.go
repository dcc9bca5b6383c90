// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

const scanBatch = 100

// RedisConfig configures a RedisCacheStore.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisCacheStore keeps recommendation results in Redis with per-key expiry.
type RedisCacheStore struct {
	client *redis.Client
}

// NewRedisCacheStore connects to Redis and verifies the connection.
func NewRedisCacheStore(ctx context.Context, cfg RedisConfig) (*RedisCacheStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return &RedisCacheStore{client: client}, nil
}

// NewRedisCacheStoreWithClient wraps an existing client.
func NewRedisCacheStoreWithClient(client *redis.Client) *RedisCacheStore {
	return &RedisCacheStore{client: client}
}

// Get implements CacheStore.
func (s *RedisCacheStore) Get(ctx context.Context, key string) (*Result, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	var result Result
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("decode cached result: %w", err)
	}
	return &result, nil
}

// Set implements CacheStore.
func (s *RedisCacheStore) Set(ctx context.Context, key string, result *Result, ttl time.Duration) error {
	data, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if err := s.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// InvalidateUser implements CacheStore by scanning the user's key prefix.
func (s *RedisCacheStore) InvalidateUser(ctx context.Context, userID string) error {
	pattern := userKeyPrefix(userID) + "*"

	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, pattern, scanBatch).Result()
		if err != nil {
			return fmt.Errorf("redis scan: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

// Ping reports whether Redis is reachable. Used as a readiness check.
func (s *RedisCacheStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the underlying client.
func (s *RedisCacheStore) Close() error {
	return s.client.Close()
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

//go:build integration

package testinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// DefaultRedisImage is the Redis image used for cache tests.
	DefaultRedisImage = "redis:7-alpine"

	// DefaultRedisPort is the port Redis listens on inside the container.
	DefaultRedisPort = "6379"
)

// RedisContainer is a running Redis server for testing.
type RedisContainer struct {
	testcontainers.Container
	// Addr is host:port, ready for a go-redis client.
	Addr string
}

// RedisOption configures the Redis container.
type RedisOption func(*redisConfig)

type redisConfig struct {
	image        string
	password     string
	startTimeout time.Duration
}

// WithRedisImage sets a custom Redis image.
func WithRedisImage(image string) RedisOption {
	return func(c *redisConfig) {
		c.image = image
	}
}

// WithRedisPassword starts Redis with requirepass set.
func WithRedisPassword(password string) RedisOption {
	return func(c *redisConfig) {
		c.password = password
	}
}

// WithRedisStartTimeout sets how long to wait for Redis to accept connections.
func WithRedisStartTimeout(timeout time.Duration) RedisOption {
	return func(c *redisConfig) {
		c.startTimeout = timeout
	}
}

// NewRedisContainer creates and starts a Redis container.
//
// Example:
//
//	redis, err := NewRedisContainer(ctx)
//	if err != nil {
//	    t.Fatal(err)
//	}
//	defer CleanupContainer(t, ctx, redis.Container)
//	client := goredis.NewClient(&goredis.Options{Addr: redis.Addr})
func NewRedisContainer(ctx context.Context, opts ...RedisOption) (*RedisContainer, error) {
	cfg := &redisConfig{
		image:        DefaultRedisImage,
		startTimeout: 30 * time.Second,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cmd := []string{"redis-server", "--save", "", "--appendonly", "no"}
	if cfg.password != "" {
		cmd = append(cmd, "--requirepass", cfg.password)
	}

	req := testcontainers.ContainerRequest{
		Image:        cfg.image,
		ExposedPorts: []string{DefaultRedisPort + "/tcp"},
		Cmd:          cmd,
		WaitingFor: wait.ForAll(
			wait.ForListeningPort(DefaultRedisPort+"/tcp"),
			wait.ForLog("Ready to accept connections"),
		).WithStartupTimeout(cfg.startTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("create redis container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, DefaultRedisPort)
	if err != nil {
		container.Terminate(ctx) //nolint:errcheck
		return nil, fmt.Errorf("get mapped port: %w", err)
	}

	return &RedisContainer{
		Container: container,
		Addr:      fmt.Sprintf("%s:%s", host, port.Port()),
	}, nil
}

// FlushAll clears every key so tests sharing a container start clean.
func (r *RedisContainer) FlushAll(ctx context.Context) error {
	code, _, err := r.Exec(ctx, []string{"redis-cli", "FLUSHALL"})
	if err != nil {
		return fmt.Errorf("exec redis-cli: %w", err)
	}
	if code != 0 {
		return fmt.Errorf("redis-cli FLUSHALL exited with code %d", code)
	}
	return nil
}

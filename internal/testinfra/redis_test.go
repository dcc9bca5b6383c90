// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

//go:build integration

package testinfra

import (
	"context"
	"net"
	"strings"
	"testing"
	"time"
)

func TestRedisContainer_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	redis, err := NewRedisContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to create Redis container: %v", err)
	}
	defer CleanupContainer(t, ctx, redis.Container)

	if !strings.Contains(redis.Addr, ":") {
		t.Fatalf("Addr = %q, want host:port", redis.Addr)
	}

	err = WaitForReady(ctx, func() bool {
		conn, err := net.DialTimeout("tcp", redis.Addr, time.Second)
		if err != nil {
			return false
		}
		conn.Close()
		return true
	}, 10*time.Second)
	if err != nil {
		t.Fatalf("Redis never accepted connections: %v", err)
	}

	if err := redis.FlushAll(ctx); err != nil {
		t.Errorf("FlushAll() error = %v", err)
	}

	info, err := GetContainerInfo(ctx, redis.Container)
	if err != nil {
		t.Fatalf("GetContainerInfo() error = %v", err)
	}
	if info.State != "running" {
		t.Errorf("State = %q, want running", info.State)
	}
	t.Logf("redis container %s on %s", info.ID, redis.Addr)
}

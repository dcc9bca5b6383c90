// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

//go:build integration

package events

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/testinfra"
)

// recordingInvalidator collects invalidated user ids.
type recordingInvalidator struct {
	mu    sync.Mutex
	users []string
	done  chan struct{}
}

func (r *recordingInvalidator) InvalidateUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, userID)
	if len(r.users) == 1 {
		close(r.done)
	}
	return nil
}

func TestNATSBus_CacheInvalidation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	testinfra.SkipIfNoDocker(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	nats, err := testinfra.NewNATSContainer(ctx)
	if err != nil {
		t.Fatalf("Failed to create NATS container: %v", err)
	}
	defer testinfra.CleanupContainer(t, ctx, nats.Container)

	bus, err := NewNATSBus(DefaultNATSConfig(nats.URL), nil)
	if err != nil {
		t.Fatalf("NewNATSBus() error = %v", err)
	}
	defer bus.Close()

	router, err := NewRouter(DefaultRouterConfig(), nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}
	cache := &recordingInvalidator{done: make(chan struct{})}
	NewCacheInvalidator(cache, zerolog.Nop()).Register(router, bus.Subscriber())

	routerCtx, stopRouter := context.WithCancel(ctx)
	defer stopRouter()
	go func() { _ = router.Run(routerCtx) }()

	select {
	case <-router.Running():
	case <-ctx.Done():
		t.Fatal("router never started")
	}

	// Core NATS has no replay, so publish until the consumer reacts.
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()
	for {
		if err := bus.Publish(ctx, TopicInteractionTracked, InteractionTracked{
			UserID:          "nats-shopper",
			InteractionType: "save",
			VehicleIDs:      []string{"veh-rav4-2022"},
		}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		select {
		case <-cache.done:
			cache.mu.Lock()
			defer cache.mu.Unlock()
			if cache.users[0] != "nats-shopper" {
				t.Errorf("invalidated %q, want nats-shopper", cache.users[0])
			}
			return
		case <-ticker.C:
		case <-ctx.Done():
			t.Fatal("timed out waiting for invalidation")
		}
	}
}

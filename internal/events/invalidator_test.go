// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

type recordingInvalidator struct {
	mu    sync.Mutex
	users []string
	err   error
	done  chan string
}

func (r *recordingInvalidator) InvalidateUser(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.users = append(r.users, userID)
	if r.done != nil {
		r.done <- userID
	}
	return nil
}

func (r *recordingInvalidator) calls() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.users...)
}

func newMessage(t *testing.T, payload any) *message.Message {
	t.Helper()
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatal(err)
	}
	return message.NewMessage(watermill.NewUUID(), data)
}

func TestCacheInvalidator_HandleInteraction(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name            string
		interactionType string
		wantInvalidated bool
	}{
		{"save invalidates", "save", true},
		{"unsave invalidates", "unsave", true},
		{"compare invalidates", "compare", true},
		{"view ignored", "view", false},
		{"search ignored", "search", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			inv := &recordingInvalidator{}
			c := NewCacheInvalidator(inv, zerolog.Nop())

			msg := newMessage(t, InteractionTracked{UserID: "user-1", InteractionType: tt.interactionType})
			if err := c.HandleInteraction(msg); err != nil {
				t.Fatalf("HandleInteraction() error = %v", err)
			}

			got := len(inv.calls()) == 1
			if got != tt.wantInvalidated {
				t.Errorf("invalidated = %v, want %v", got, tt.wantInvalidated)
			}
		})
	}
}

func TestCacheInvalidator_MalformedDropped(t *testing.T) {
	t.Parallel()

	inv := &recordingInvalidator{}
	c := NewCacheInvalidator(inv, zerolog.Nop())

	msg := message.NewMessage(watermill.NewUUID(), []byte("garbage"))
	if err := c.HandleInteraction(msg); err != nil {
		t.Errorf("HandleInteraction() error = %v, want nil", err)
	}
	if err := c.HandleFeedback(msg); err != nil {
		t.Errorf("HandleFeedback() error = %v, want nil", err)
	}
	if len(inv.calls()) != 0 {
		t.Errorf("expected no invalidations, got %v", inv.calls())
	}
}

func TestCacheInvalidator_ErrorIsReturnedForRetry(t *testing.T) {
	t.Parallel()

	inv := &recordingInvalidator{err: errors.New("redis down")}
	c := NewCacheInvalidator(inv, zerolog.Nop())

	msg := newMessage(t, FeedbackReceived{UserID: "user-1", FeedbackType: "like"})
	if err := c.HandleFeedback(msg); err == nil {
		t.Error("expected error so the router retries")
	}
}

func TestCacheInvalidator_ThroughRouter(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	defer bus.Close()

	router, err := NewRouter(DefaultRouterConfig(), nil)
	if err != nil {
		t.Fatalf("NewRouter() error = %v", err)
	}

	inv := &recordingInvalidator{done: make(chan string, 4)}
	NewCacheInvalidator(inv, zerolog.Nop()).Register(router, bus.Subscriber())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() { _ = router.Run(ctx) }()
	defer router.Close()

	select {
	case <-router.Running():
	case <-time.After(2 * time.Second):
		t.Fatal("router did not start")
	}

	if err := bus.Publish(ctx, TopicFeedbackReceived, FeedbackReceived{UserID: "user-7", FeedbackType: "like"}); err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	select {
	case userID := <-inv.done:
		if userID != "user-7" {
			t.Errorf("invalidated %q, want user-7", userID)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for invalidation")
	}
}

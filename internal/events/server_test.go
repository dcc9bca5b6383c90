// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"context"
	"testing"
	"time"
)

func TestEmbeddedServer_NATSBusRoundTrip(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping embedded NATS server in short mode")
	}

	srv, err := NewEmbeddedServer(ServerConfig{Host: "127.0.0.1", Port: -1})
	if err != nil {
		t.Fatalf("NewEmbeddedServer() error = %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}()

	if !srv.IsRunning() {
		t.Fatal("expected server to be running")
	}

	bus, err := NewNATSBus(DefaultNATSConfig(srv.ClientURL()), nil)
	if err != nil {
		t.Fatalf("NewNATSBus() error = %v", err)
	}
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscriber().Subscribe(ctx, TopicFeedbackReceived)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	// Core NATS has no replay, so keep publishing until the subscription is live.
	deadline := time.After(5 * time.Second)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		if err := bus.Publish(ctx, TopicFeedbackReceived, FeedbackReceived{UserID: "nats-user"}); err != nil {
			t.Fatalf("Publish() error = %v", err)
		}
		select {
		case msg := <-ch:
			msg.Ack()
			var ev FeedbackReceived
			if err := Decode(msg.Payload, &ev); err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if ev.UserID != "nats-user" {
				t.Errorf("UserID = %q, want nats-user", ev.UserID)
			}
			return
		case <-ticker.C:
		case <-deadline:
			t.Fatal("timed out waiting for NATS message")
		}
	}
}

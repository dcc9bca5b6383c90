// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
)

func receive(t *testing.T, ch <-chan *message.Message) *message.Message {
	t.Helper()
	select {
	case msg := <-ch:
		msg.Ack()
		return msg
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for message")
		return nil
	}
}

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	defer bus.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := bus.Subscriber().Subscribe(ctx, TopicInteractionTracked)
	if err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}

	ts := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	err = bus.Publish(ctx, TopicInteractionTracked, InteractionTracked{
		UserID:          "user-1",
		SessionID:       "session_user-1_1",
		InteractionType: "save",
		VehicleIDs:      []string{"camry-2022"},
		Timestamp:       ts,
	})
	if err != nil {
		t.Fatalf("Publish() error = %v", err)
	}

	msg := receive(t, ch)
	if got := msg.Metadata.Get("user_id"); got != "user-1" {
		t.Errorf("user_id metadata = %q, want user-1", got)
	}

	var ev InteractionTracked
	if err := Decode(msg.Payload, &ev); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if ev.InteractionType != "save" || len(ev.VehicleIDs) != 1 || !ev.Timestamp.Equal(ts) {
		t.Errorf("decoded event = %+v", ev)
	}
}

func TestMemoryBus_PublishAfterClose(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	if err := bus.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := bus.Close(); err != nil {
		t.Errorf("second Close() error = %v", err)
	}

	err := bus.Publish(context.Background(), TopicFeedbackReceived, FeedbackReceived{UserID: "u"})
	if !errors.Is(err, ErrBusClosed) {
		t.Errorf("Publish() error = %v, want ErrBusClosed", err)
	}
}

func TestMemoryBus_Transport(t *testing.T) {
	t.Parallel()

	bus := NewMemoryBus(nil)
	defer bus.Close()

	if bus.Transport() != TransportMemory {
		t.Errorf("Transport() = %q, want %q", bus.Transport(), TransportMemory)
	}
}

func TestNewNATSBus_RequiresURL(t *testing.T) {
	t.Parallel()

	if _, err := NewNATSBus(NATSConfig{}, nil); err == nil {
		t.Error("expected error for empty url")
	}
}

func TestDecode_Invalid(t *testing.T) {
	t.Parallel()

	var ev FeedbackReceived
	if err := Decode([]byte("{not json"), &ev); err == nil {
		t.Error("expected decode error")
	}
}

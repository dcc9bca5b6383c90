// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	wmNats "github.com/ThreeDotsLabs/watermill-nats/v2/pkg/nats"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/goccy/go-json"
	natsgo "github.com/nats-io/nats.go"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/resilience"
)

// Transport names accepted by the configuration.
const (
	TransportMemory = "memory"
	TransportNATS   = "nats"
)

// ErrBusClosed is returned when publishing on a closed bus.
var ErrBusClosed = errors.New("event bus is closed")

// NATSConfig configures the NATS transport.
type NATSConfig struct {
	URL           string
	QueueGroup    string
	MaxReconnects int
	ReconnectWait time.Duration
	CloseTimeout  time.Duration
}

// DefaultNATSConfig returns production defaults for url.
func DefaultNATSConfig(url string) NATSConfig {
	return NATSConfig{
		URL:           url,
		QueueGroup:    "otto",
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
		CloseTimeout:  30 * time.Second,
	}
}

// Bus publishes JSON payloads and hands out a subscriber for consumers.
type Bus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	transport  string
	breaker    *resilience.Breaker[struct{}]
	logger     watermill.LoggerAdapter

	mu     sync.RWMutex
	closed bool
}

// NewLogger returns the watermill logger backed by the global zerolog logger.
func NewLogger() watermill.LoggerAdapter {
	return watermill.NewSlogLogger(logging.NewSlogLogger())
}

// NewMemoryBus creates a bus on watermill's in-process gochannel Pub/Sub.
func NewMemoryBus(logger watermill.LoggerAdapter) *Bus {
	if logger == nil {
		logger = watermill.NopLogger{}
	}
	ps := gochannel.NewGoChannel(gochannel.Config{
		OutputChannelBuffer: 256,
	}, logger)

	return newBus(ps, ps, TransportMemory, logger)
}

// NewNATSBus creates a bus on core NATS.
func NewNATSBus(cfg NATSConfig, logger watermill.LoggerAdapter) (*Bus, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("nats url is required")
	}
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	natsOpts := []natsgo.Option{
		natsgo.RetryOnFailedConnect(true),
		natsgo.MaxReconnects(cfg.MaxReconnects),
		natsgo.ReconnectWait(cfg.ReconnectWait),
		natsgo.DisconnectErrHandler(func(_ *natsgo.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", err, nil)
			}
		}),
		natsgo.ReconnectHandler(func(nc *natsgo.Conn) {
			logger.Info("NATS reconnected", watermill.LogFields{
				"url": nc.ConnectedUrl(),
			})
		}),
	}

	pub, err := wmNats.NewPublisher(wmNats.PublisherConfig{
		URL:         cfg.URL,
		NatsOptions: natsOpts,
		Marshaler:   &wmNats.NATSMarshaler{},
		JetStream:   wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create watermill publisher: %w", err)
	}

	sub, err := wmNats.NewSubscriber(wmNats.SubscriberConfig{
		URL:              cfg.URL,
		QueueGroupPrefix: cfg.QueueGroup,
		SubscribersCount: 1,
		AckWaitTimeout:   30 * time.Second,
		CloseTimeout:     cfg.CloseTimeout,
		NatsOptions:      natsOpts,
		Unmarshaler:      &wmNats.NATSMarshaler{},
		JetStream:        wmNats.JetStreamConfig{Disabled: true},
	}, logger)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("create watermill subscriber: %w", err)
	}

	return newBus(pub, sub, TransportNATS, logger), nil
}

func newBus(pub message.Publisher, sub message.Subscriber, transport string, logger watermill.LoggerAdapter) *Bus {
	return &Bus{
		publisher:  pub,
		subscriber: sub,
		transport:  transport,
		breaker:    resilience.New[struct{}](resilience.DefaultSettings("events-" + transport)),
		logger:     logger,
	}
}

// Publish encodes payload as JSON and publishes it on topic.
func (b *Bus) Publish(ctx context.Context, topic string, payload any) error {
	b.mu.RLock()
	closed := b.closed
	b.mu.RUnlock()
	if closed {
		return ErrBusClosed
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode %s payload: %w", topic, err)
	}

	msg := message.NewMessage(watermill.NewUUID(), data)
	msg.SetContext(ctx)
	if userID := userIDOf(payload); userID != "" {
		msg.Metadata.Set("user_id", userID)
	}
	if id := logging.CorrelationIDFromContext(ctx); id != "" {
		msg.Metadata.Set("correlation_id", id)
	}

	_, err = b.breaker.Execute(func() (struct{}, error) {
		return struct{}{}, b.publisher.Publish(topic, msg)
	})
	metrics.RecordEventPublished(topic, err)
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// Subscriber returns the subscriber consumers attach to.
func (b *Bus) Subscriber() message.Subscriber {
	return b.subscriber
}

// Transport returns the transport name.
func (b *Bus) Transport() string {
	return b.transport
}

// Close shuts down the publisher and subscriber.
func (b *Bus) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	var errs []error
	if err := b.publisher.Close(); err != nil {
		errs = append(errs, err)
	}
	// gochannel uses one value for both sides.
	if closer, ok := b.subscriber.(message.Publisher); !ok || closer != b.publisher {
		if err := b.subscriber.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"

	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/events"
	"github.com/tomtom215/otto/internal/logging"
)

// eventComponents holds the bus and, for single-node NATS, the embedded server.
type eventComponents struct {
	Bus      *events.Bus
	Embedded *events.EmbeddedServer

	// Ready is a readiness check for the broker; nil for the memory bus.
	Ready func(ctx context.Context) error

	logger watermill.LoggerAdapter
}

func initEvents(cfg *config.Config) (*eventComponents, error) {
	logger := events.NewLogger()
	c := &eventComponents{logger: logger}

	if cfg.Events.Transport != events.TransportNATS {
		c.Bus = events.NewMemoryBus(logger)
		logging.Info().Str("transport", events.TransportMemory).Msg("Event bus initialized")
		return c, nil
	}

	url := cfg.Events.NATSURL
	if cfg.Events.EmbeddedNATS {
		srv, err := events.NewEmbeddedServer(events.ServerConfig{Host: "127.0.0.1", Port: cfg.Events.NATSPort})
		if err != nil {
			return nil, fmt.Errorf("start embedded nats: %w", err)
		}
		c.Embedded = srv
		url = srv.ClientURL()
		c.Ready = func(context.Context) error {
			if !srv.IsRunning() {
				return errors.New("embedded nats server is not running")
			}
			return nil
		}
		logging.Info().Str("url", url).Msg("Embedded NATS server started")
	}

	bus, err := events.NewNATSBus(events.DefaultNATSConfig(url), logger)
	if err != nil {
		c.shutdownEmbedded()
		return nil, err
	}
	c.Bus = bus
	logging.Info().Str("transport", events.TransportNATS).Str("url", url).Msg("Event bus initialized")
	return c, nil
}

// Consumers builds the event router with the cache invalidation handlers.
// The router runs under the supervisor's messaging layer.
func (c *eventComponents) Consumers(cache events.Invalidator) (*events.Router, error) {
	router, err := events.NewRouter(events.DefaultRouterConfig(), c.logger)
	if err != nil {
		return nil, err
	}
	events.NewCacheInvalidator(cache, logging.WithComponent("events")).Register(router, c.Bus.Subscriber())
	return router, nil
}

// Close closes the bus, then the embedded server it was connected to.
func (c *eventComponents) Close() {
	if c.Bus != nil {
		if err := c.Bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing event bus")
		}
	}
	c.shutdownEmbedded()
}

func (c *eventComponents) shutdownEmbedded() {
	if c.Embedded == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Embedded.Shutdown(ctx); err != nil {
		logging.Error().Err(err).Msg("Error stopping embedded NATS server")
	}
	c.Embedded = nil
}

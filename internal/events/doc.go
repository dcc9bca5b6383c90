// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package events carries domain events between otto components over Watermill.

Two transports are supported:

  - memory: watermill's gochannel Pub/Sub, for single-process deployments
    and tests
  - nats: watermill-nats over core NATS, optionally against an embedded
    nats-server started in-process

# Topics

	interaction.tracked   InteractionTracked, published by the tracker
	feedback.received     FeedbackReceived, published by the recommender

Payloads are JSON encoded with goccy/go-json. Every message carries a
UUID and a "user_id" metadata entry.

# Consumers

Consumers run on a Router configured with panic recovery and exponential
retry. CacheInvalidator is the built-in consumer: it drops a user's cached
recommendations when they save, unsave or compare vehicles, or leave
feedback.
*/
package events

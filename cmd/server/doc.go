// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package main is the otto server: vehicle comparison, shopper interaction
tracking and personalized recommendations over a JSON HTTP API.

# Process Layout

	otto
	├── storage-layer
	│   ├── session-cleanup   expired sessions folded into profiles
	│   └── badger-gc         TRACKING_STORE=badger only
	├── messaging-layer
	│   └── event-router      recommendation cache invalidation
	└── api-layer
	    └── http-server       /api/v1, /metrics

Initialization order:

 1. Configuration (koanf: defaults, optional YAML, environment)
 2. Logging (zerolog)
 3. Event bus (watermill gochannel, or NATS with an optional embedded server)
 4. Tracking stores (memory or badger) and the tracker
 5. Embeddings and explanations (OpenAI when OPENAI_API_KEY is set, hashing
    embeddings and template explanations otherwise)
 6. Comparison and recommendation engines
 7. HTTP router and the supervisor tree

# Configuration

Common environment variables:

	HTTP_HOST, HTTP_PORT            listen address (0.0.0.0:8080)
	LOG_LEVEL, LOG_FORMAT           info, json
	TRACKING_STORE                  memory | badger
	TRACKING_BADGER_PATH            /data/tracking
	RECOMMEND_CACHE_STORE           memory | redis
	REDIS_ADDR                      localhost:6379
	EVENTS_TRANSPORT                memory | nats
	NATS_URL, NATS_EMBEDDED         nats://host:4222, false
	OPENAI_API_KEY                  enables LLM explanations and embeddings
	COMPARISON_RULES_PATH           YAML overlay for the comparison heuristics

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for up to
10 seconds, the event router stops consuming, and stores are closed last.
*/
package main

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package config loads and validates the otto service configuration.

Configuration is layered with Koanf v2. Later layers win:

 1. Defaults built into defaultConfig()
 2. An optional YAML file (CONFIG_PATH, or the first of DefaultConfigPaths)
 3. Environment variables, through an explicit mapping table

Unknown environment variables are ignored, so the process environment
cannot leak into the configuration by accident.

# Environment Variables

Server:
  - HTTP_HOST, HTTP_PORT (default 0.0.0.0:8080)
  - HTTP_TIMEOUT (30s), HTTP_REQUEST_TIMEOUT (10s)

Logging:
  - LOG_LEVEL (info), LOG_FORMAT (json), LOG_CALLER (false)

Comparison:
  - COMPARISON_RULES_PATH: optional YAML overlay for the heuristic rules
  - EMBEDDING_TIMEOUT (5s)

Tracking:
  - TRACKING_STORE: memory or badger (default memory)
  - TRACKING_BADGER_PATH (/data/tracking)
  - SESSION_TIMEOUT (30m), PROFILE_UPDATE_INTERVAL (5m)
  - SESSION_CLEANUP_INTERVAL (5m), SESSION_RETENTION (24h)

Recommendations:
  - RECOMMEND_CACHE_STORE: memory or redis (default memory)
  - RECOMMEND_CACHE_TTL (15m)
  - RECOMMEND_ALGORITHM_TIMEOUT (5s), RECOMMEND_EXPLANATION_TIMEOUT (8s)
  - REDIS_ADDR, REDIS_PASSWORD, REDIS_DB

OpenAI:
  - OPENAI_API_KEY: enables LLM explanations and embeddings when set
  - OPENAI_BASE_URL, OPENAI_CHAT_MODEL, OPENAI_EMBEDDING_MODEL
  - OPENAI_RPS (5), OPENAI_TIMEOUT (20s)

Events:
  - EVENTS_TRANSPORT: memory or nats (default memory)
  - NATS_URL, NATS_EMBEDDED, NATS_PORT

Security:
  - CORS_ORIGINS: comma-separated list (default *)
  - RATE_LIMIT_REQUESTS (100), RATE_LIMIT_WINDOW (1m)

# Usage

	cfg, err := config.Load()
	if err != nil {
	    log.Fatalf("load config: %v", err)
	}
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
*/
package config

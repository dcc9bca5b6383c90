// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package config

import (
	"strings"
	"testing"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "HTTP_PORT"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "HTTP_PORT"},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, "HTTP_REQUEST_TIMEOUT"},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, "LOG_LEVEL"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "LOG_FORMAT"},
		{"comparison bounds", func(c *Config) { c.Comparison.MaxVehicles = 6 }, "fixed at 2..4"},
		{"unknown tracking store", func(c *Config) { c.Tracking.Store = "postgres" }, "TRACKING_STORE"},
		{"badger without path", func(c *Config) {
			c.Tracking.Store = StoreBadger
			c.Tracking.BadgerPath = ""
		}, "TRACKING_BADGER_PATH"},
		{"zero session timeout", func(c *Config) { c.Tracking.SessionTimeout = 0 }, "SESSION_TIMEOUT"},
		{"retention shorter than timeout", func(c *Config) { c.Tracking.SessionRetention = c.Tracking.SessionTimeout / 2 }, "SESSION_RETENTION"},
		{"unknown cache store", func(c *Config) { c.Recommend.CacheStore = "memcached" }, "RECOMMEND_CACHE_STORE"},
		{"redis without addr", func(c *Config) {
			c.Recommend.CacheStore = StoreRedis
			c.Redis.Addr = ""
		}, "REDIS_ADDR"},
		{"evict above max", func(c *Config) { c.Recommend.CacheEvictCount = 5000 }, "cache bounds"},
		{"max limit below default", func(c *Config) { c.Recommend.MaxLimit = 5 }, "limits"},
		{"threshold above one", func(c *Config) { c.Recommend.MinSimilarityThreshold = 2 }, "min_similarity_threshold"},
		{"openai bad url", func(c *Config) {
			c.OpenAI.APIKey = "sk-test"
			c.OpenAI.BaseURL = "ftp://api.example"
		}, "OPENAI_BASE_URL"},
		{"unknown transport", func(c *Config) { c.Events.Transport = "kafka" }, "EVENTS_TRANSPORT"},
		{"nats without url", func(c *Config) { c.Events.Transport = TransportNATS }, "NATS_URL"},
		{"nats bad scheme", func(c *Config) {
			c.Events.Transport = TransportNATS
			c.Events.NATSURL = "http://nats:4222"
		}, "NATS_URL"},
		{"zero rate limit", func(c *Config) { c.Security.RateLimitRequests = 0 }, "RATE_LIMIT_REQUESTS"},
		{"no cors origins", func(c *Config) { c.Security.CORSOrigins = nil }, "CORS_ORIGINS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to mention %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestValidate_Accepts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"embedded nats needs no url", func(c *Config) {
			c.Events.Transport = TransportNATS
			c.Events.EmbeddedNATS = true
		}},
		{"external nats", func(c *Config) {
			c.Events.Transport = TransportNATS
			c.Events.NATSURL = "nats://broker:4222"
		}},
		{"openai with versioned base url", func(c *Config) {
			c.OpenAI.APIKey = "sk-test"
			c.OpenAI.BaseURL = "https://gateway.example/openai/v1"
		}},
		{"badger tracking", func(c *Config) { c.Tracking.Store = StoreBadger }},
		{"console logs", func(c *Config) { c.Logging.Format = "console" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := defaultConfig()
			tt.modify(cfg)
			if err := cfg.Validate(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package config

import (
	"fmt"
	"time"
)

var (
	validLogLevels  = map[string]bool{"trace": true, "debug": true, "info": true, "warn": true, "error": true}
	validLogFormats = map[string]bool{"json": true, "console": true}
)

// Validate checks that the configuration is complete and consistent.
func (c *Config) Validate() error {
	if err := c.validateServer(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	if err := c.validateComparison(); err != nil {
		return err
	}
	if err := c.validateTracking(); err != nil {
		return err
	}
	if err := c.validateRecommend(); err != nil {
		return err
	}
	if err := c.validateOpenAI(); err != nil {
		return err
	}
	if err := c.validateEvents(); err != nil {
		return err
	}
	return c.validateSecurity()
}

func (c *Config) validateServer() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("HTTP_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}
	if err := positiveDuration("HTTP_TIMEOUT", c.Server.Timeout); err != nil {
		return err
	}
	return positiveDuration("HTTP_REQUEST_TIMEOUT", c.Server.RequestTimeout)
}

func (c *Config) validateLogging() error {
	if !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: trace, debug, info, warn, error")
	}
	if c.Logging.Format != "" && !validLogFormats[c.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console")
	}
	return nil
}

func (c *Config) validateComparison() error {
	if c.Comparison.MinVehicles != 2 || c.Comparison.MaxVehicles != 4 {
		return fmt.Errorf("comparison vehicle bounds are fixed at 2..4, got %d..%d",
			c.Comparison.MinVehicles, c.Comparison.MaxVehicles)
	}
	if c.Comparison.CurrentYear < 0 {
		return fmt.Errorf("comparison.current_year must not be negative")
	}
	return positiveDuration("EMBEDDING_TIMEOUT", c.Comparison.EmbeddingTimeout)
}

func (c *Config) validateTracking() error {
	switch c.Tracking.Store {
	case StoreMemory:
	case StoreBadger:
		if c.Tracking.BadgerPath == "" {
			return fmt.Errorf("TRACKING_BADGER_PATH is required when TRACKING_STORE=badger")
		}
	default:
		return fmt.Errorf("TRACKING_STORE must be one of: memory, badger, got %q", c.Tracking.Store)
	}

	checks := []struct {
		name string
		d    time.Duration
	}{
		{"SESSION_TIMEOUT", c.Tracking.SessionTimeout},
		{"PROFILE_UPDATE_INTERVAL", c.Tracking.ProfileUpdateInterval},
		{"SESSION_CLEANUP_INTERVAL", c.Tracking.CleanupInterval},
		{"SESSION_RETENTION", c.Tracking.SessionRetention},
	}
	for _, check := range checks {
		if err := positiveDuration(check.name, check.d); err != nil {
			return err
		}
	}
	if c.Tracking.SessionRetention < c.Tracking.SessionTimeout {
		return fmt.Errorf("SESSION_RETENTION (%v) must be at least SESSION_TIMEOUT (%v)",
			c.Tracking.SessionRetention, c.Tracking.SessionTimeout)
	}
	return nil
}

func (c *Config) validateRecommend() error {
	r := c.Recommend
	switch r.CacheStore {
	case StoreMemory:
	case StoreRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required when RECOMMEND_CACHE_STORE=redis")
		}
	default:
		return fmt.Errorf("RECOMMEND_CACHE_STORE must be one of: memory, redis, got %q", r.CacheStore)
	}

	if err := positiveDuration("RECOMMEND_CACHE_TTL", r.CacheTTL); err != nil {
		return err
	}
	if err := positiveDuration("RECOMMEND_ALGORITHM_TIMEOUT", r.AlgorithmTimeout); err != nil {
		return err
	}
	if err := positiveDuration("RECOMMEND_EXPLANATION_TIMEOUT", r.ExplanationTimeout); err != nil {
		return err
	}
	if r.CacheMaxEntries <= 0 || r.CacheEvictCount <= 0 || r.CacheEvictCount > r.CacheMaxEntries {
		return fmt.Errorf("recommend cache bounds invalid: max_entries=%d evict_count=%d",
			r.CacheMaxEntries, r.CacheEvictCount)
	}
	if r.DefaultLimit <= 0 || r.MaxLimit < r.DefaultLimit {
		return fmt.Errorf("recommend limits invalid: default=%d max=%d", r.DefaultLimit, r.MaxLimit)
	}
	if r.MinSimilarityThreshold < 0 || r.MinSimilarityThreshold > 1 {
		return fmt.Errorf("recommend.min_similarity_threshold must be within [0,1]")
	}
	if r.SimilarityWeight < 0 || r.SimilarityWeight > 1 {
		return fmt.Errorf("recommend.similarity_weight must be within [0,1]")
	}
	return nil
}

func (c *Config) validateOpenAI() error {
	if !c.OpenAI.Enabled() {
		return nil
	}
	if err := validateHTTPURL(c.OpenAI.BaseURL, "OPENAI_BASE_URL"); err != nil {
		return err
	}
	if c.OpenAI.RequestsPerSecond <= 0 {
		return fmt.Errorf("OPENAI_RPS must be positive")
	}
	return positiveDuration("OPENAI_TIMEOUT", c.OpenAI.Timeout)
}

func (c *Config) validateEvents() error {
	switch c.Events.Transport {
	case TransportMemory:
		return nil
	case TransportNATS:
	default:
		return fmt.Errorf("EVENTS_TRANSPORT must be one of: memory, nats, got %q", c.Events.Transport)
	}

	if c.Events.EmbeddedNATS {
		if c.Events.NATSPort < 1 || c.Events.NATSPort > 65535 {
			return fmt.Errorf("NATS_PORT must be between 1 and 65535, got %d", c.Events.NATSPort)
		}
		return nil
	}
	if c.Events.NATSURL == "" {
		return fmt.Errorf("NATS_URL is required when EVENTS_TRANSPORT=nats and NATS_EMBEDDED=false")
	}
	if err := validateNATSURL(c.Events.NATSURL); err != nil {
		return fmt.Errorf("NATS_URL is invalid: %w", err)
	}
	return nil
}

func (c *Config) validateSecurity() error {
	if c.Security.RateLimitRequests <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive")
	}
	if err := positiveDuration("RATE_LIMIT_WINDOW", c.Security.RateLimitWindow); err != nil {
		return err
	}
	if len(c.Security.CORSOrigins) == 0 {
		return fmt.Errorf("CORS_ORIGINS must list at least one origin")
	}
	return nil
}

func positiveDuration(name string, d time.Duration) error {
	if d <= 0 {
		return fmt.Errorf("%s must be positive, got %v", name, d)
	}
	return nil
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/recommend"
	"github.com/tomtom215/otto/internal/vehicle"
)

// recommendComponents holds the engine and its cache store.
type recommendComponents struct {
	Engine *recommend.Engine

	// Ping is the cache readiness check; nil for the memory cache.
	Ping func(ctx context.Context) error

	redis *recommend.RedisCacheStore
}

func initRecommend(
	ctx context.Context,
	cfg *config.Config,
	catalog vehicle.DataProvider,
	trk *trackingComponents,
	ai aiComponents,
	publisher recommend.Publisher,
) (*recommendComponents, error) {
	engineCfg := buildEngineConfig(cfg)
	c := &recommendComponents{}

	var cache recommend.CacheStore
	if cfg.Recommend.CacheStore == "redis" {
		connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()

		store, err := recommend.NewRedisCacheStore(connectCtx, recommend.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connect recommendation cache: %w", err)
		}
		cache = store
		c.redis = store
		c.Ping = store.Ping
	}

	engine, err := recommend.NewEngine(recommend.Options{
		Config:    engineCfg,
		Vehicles:  catalog,
		Profiles:  trk.Tracker,
		Peers:     trk.Peers,
		Embedder:  ai.Embedder,
		Trending:  trk.Signals,
		Urgency:   trk.Signals,
		Explainer: ai.Explainer,
		Cache:     cache,
		Publisher: publisher,
		Logger:    logging.Logger(),
	})
	if err != nil {
		c.Close()
		return nil, err
	}
	c.Engine = engine

	logging.Info().
		Str("cache_store", cfg.Recommend.CacheStore).
		Dur("cache_ttl", engineCfg.Cache.TTL).
		Int("ab_groups", len(engineCfg.Groups)).
		Msg("Recommendation engine initialized")
	return c, nil
}

// buildEngineConfig maps the service configuration onto the engine's.
func buildEngineConfig(cfg *config.Config) *recommend.Config {
	ec := recommend.DefaultConfig()
	ec.Limits.DefaultLimit = cfg.Recommend.DefaultLimit
	ec.Limits.MaxLimit = cfg.Recommend.MaxLimit
	ec.Limits.AlgorithmTimeout = cfg.Recommend.AlgorithmTimeout
	ec.Limits.ExplanationTimeout = cfg.Recommend.ExplanationTimeout
	ec.Scoring.MinSimilarityThreshold = cfg.Recommend.MinSimilarityThreshold
	ec.Scoring.SimilarityWeight = cfg.Recommend.SimilarityWeight
	ec.Cache.TTL = cfg.Recommend.CacheTTL
	ec.Cache.MaxEntries = cfg.Recommend.CacheMaxEntries
	ec.Cache.EvictCount = cfg.Recommend.CacheEvictCount
	return ec
}

// Close closes the redis client, if any.
func (c *recommendComponents) Close() {
	if c.redis == nil {
		return
	}
	if err := c.redis.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing recommendation cache")
	}
}

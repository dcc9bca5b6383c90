// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"fmt"
	"time"
)

// AlgorithmVersion is reported with every result.
const AlgorithmVersion = "hybrid-v2.1"

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Limits contains request size limits.
	Limits LimitsConfig `json:"limits"`

	// Scoring contains thresholds and blend weights.
	Scoring ScoringConfig `json:"scoring"`

	// Candidates bounds each candidate source.
	Candidates CandidateConfig `json:"candidates"`

	// Cache contains caching parameters.
	Cache CacheConfig `json:"cache"`

	// Groups are the A/B test groups. Users are bucketed by hash modulo len(Groups).
	Groups []GroupWeights `json:"groups"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// DefaultLimit is used when a request does not set one.
	DefaultLimit int `json:"default_limit"`

	// MaxLimit caps the requested limit.
	MaxLimit int `json:"max_limit"`

	// AlgorithmTimeout bounds each algorithm and collaborator call.
	AlgorithmTimeout time.Duration `json:"algorithm_timeout"`

	// ExplanationTimeout bounds explanation generation for a whole result.
	ExplanationTimeout time.Duration `json:"explanation_timeout"`
}

// ScoringConfig contains scoring parameters.
type ScoringConfig struct {
	// MinSimilarityThreshold drops content and similarity scores below it.
	MinSimilarityThreshold float64 `json:"min_similarity_threshold"`

	// SimilarityWeight is the fixed hybrid weight of the similarity score.
	SimilarityWeight float64 `json:"similarity_weight"`

	// FactorThreshold is the sub-score above which a personalization factor is reported.
	FactorThreshold float64 `json:"factor_threshold"`
}

// CandidateConfig bounds the candidate sources.
type CandidateConfig struct {
	SimilarPerContext int `json:"similar_per_context"`
	Preference        int `json:"preference"`
	Trending          int `json:"trending"`
	PeerUsers         int `json:"peer_users"`
}

// CacheConfig contains caching parameters.
type CacheConfig struct {
	Enabled    bool          `json:"enabled"`
	TTL        time.Duration `json:"ttl"`
	MaxEntries int           `json:"max_entries"`
	EvictCount int           `json:"evict_count"`
}

// GroupWeights is one A/B test group's blend weights.
type GroupWeights struct {
	Name                string  `json:"name"`
	CollaborativeWeight float64 `json:"collaborative_weight"`
	ContentWeight       float64 `json:"content_weight"`
}

// DefaultConfig returns the production configuration.
func DefaultConfig() *Config {
	return &Config{
		Limits: LimitsConfig{
			DefaultLimit:       10,
			MaxLimit:           50,
			AlgorithmTimeout:   5 * time.Second,
			ExplanationTimeout: 8 * time.Second,
		},
		Scoring: ScoringConfig{
			MinSimilarityThreshold: 0.3,
			SimilarityWeight:       0.2,
			FactorThreshold:        0.5,
		},
		Candidates: CandidateConfig{
			SimilarPerContext: 10,
			Preference:        20,
			Trending:          10,
			PeerUsers:         20,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        15 * time.Minute,
			MaxEntries: 1000,
			EvictCount: 200,
		},
		Groups: DefaultGroups(),
	}
}

// DefaultGroups returns control, variant_a and variant_b.
func DefaultGroups() []GroupWeights {
	return []GroupWeights{
		{Name: "control", CollaborativeWeight: 0.4, ContentWeight: 0.4},
		{Name: "variant_a", CollaborativeWeight: 0.6, ContentWeight: 0.2},
		{Name: "variant_b", CollaborativeWeight: 0.2, ContentWeight: 0.6},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Limits.DefaultLimit <= 0 {
		return fmt.Errorf("limits.default_limit must be positive, got %d", c.Limits.DefaultLimit)
	}
	if c.Limits.MaxLimit < c.Limits.DefaultLimit {
		return fmt.Errorf("limits.max_limit (%d) must be >= default_limit (%d)", c.Limits.MaxLimit, c.Limits.DefaultLimit)
	}
	if c.Limits.AlgorithmTimeout <= 0 {
		return fmt.Errorf("limits.algorithm_timeout must be positive")
	}
	if c.Limits.ExplanationTimeout <= 0 {
		return fmt.Errorf("limits.explanation_timeout must be positive")
	}

	if err := validateUnit("scoring.min_similarity_threshold", c.Scoring.MinSimilarityThreshold); err != nil {
		return err
	}
	if err := validateUnit("scoring.similarity_weight", c.Scoring.SimilarityWeight); err != nil {
		return err
	}
	if err := validateUnit("scoring.factor_threshold", c.Scoring.FactorThreshold); err != nil {
		return err
	}

	if c.Candidates.SimilarPerContext < 0 || c.Candidates.Preference < 0 || c.Candidates.Trending < 0 || c.Candidates.PeerUsers < 0 {
		return fmt.Errorf("candidate limits must be non-negative")
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive when cache is enabled")
		}
		if c.Cache.MaxEntries <= 0 {
			return fmt.Errorf("cache.max_entries must be positive when cache is enabled")
		}
		if c.Cache.EvictCount <= 0 || c.Cache.EvictCount > c.Cache.MaxEntries {
			return fmt.Errorf("cache.evict_count must be in (0, max_entries], got %d", c.Cache.EvictCount)
		}
	}

	if len(c.Groups) == 0 {
		return fmt.Errorf("at least one A/B group is required")
	}
	seen := make(map[string]struct{}, len(c.Groups))
	for _, g := range c.Groups {
		if g.Name == "" {
			return fmt.Errorf("A/B group name must not be empty")
		}
		if _, dup := seen[g.Name]; dup {
			return fmt.Errorf("duplicate A/B group %q", g.Name)
		}
		seen[g.Name] = struct{}{}
		if g.CollaborativeWeight < 0 || g.ContentWeight < 0 {
			return fmt.Errorf("A/B group %q has negative weights", g.Name)
		}
	}

	return nil
}

func validateUnit(name string, v float64) error {
	if v < 0 || v > 1 {
		return fmt.Errorf("%s must be in [0,1], got %f", name, v)
	}
	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	clone := *c
	clone.Groups = append([]GroupWeights(nil), c.Groups...)
	return &clone
}

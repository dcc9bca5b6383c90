// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package config

import "time"

// Store and transport names accepted by the configuration.
const (
	StoreMemory = "memory"
	StoreBadger = "badger"
	StoreRedis  = "redis"

	TransportMemory = "memory"
	TransportNATS   = "nats"
)

// Config holds all application configuration.
//
// Loading order (Koanf v2): defaults, then the optional YAML file, then
// environment variables. See the package documentation for the variable names.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Logging    LoggingConfig    `koanf:"logging"`
	Comparison ComparisonConfig `koanf:"comparison"`
	Tracking   TrackingConfig   `koanf:"tracking"`
	Recommend  RecommendConfig  `koanf:"recommend"`
	Redis      RedisConfig      `koanf:"redis"`
	OpenAI     OpenAIConfig     `koanf:"openai"`
	Events     EventsConfig     `koanf:"events"`
	Security   SecurityConfig   `koanf:"security"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`

	// RequestTimeout bounds a single API request, including every
	// collaborator call made on its behalf.
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: trace, debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is json or console.
	Format string `koanf:"format"`

	// Caller includes caller file and line number in logs.
	Caller bool `koanf:"caller"`
}

// ComparisonConfig holds comparison engine settings.
type ComparisonConfig struct {
	// MinVehicles and MaxVehicles bound a comparison request. They are not
	// tunable beyond 2..4.
	MinVehicles int `koanf:"min_vehicles"`
	MaxVehicles int `koanf:"max_vehicles"`

	// RulesPath optionally points at a YAML overlay for the heuristic tables.
	RulesPath string `koanf:"rules_path"`

	EmbeddingTimeout time.Duration `koanf:"embedding_timeout"`

	// CurrentYear pins the model-year reference; 0 derives it from the clock.
	CurrentYear int `koanf:"current_year"`
}

// TrackingConfig holds interaction tracker settings.
type TrackingConfig struct {
	Store                 string        `koanf:"store"`
	BadgerPath            string        `koanf:"badger_path"`
	SessionTimeout        time.Duration `koanf:"session_timeout"`
	ProfileUpdateInterval time.Duration `koanf:"profile_update_interval"`
	CleanupInterval       time.Duration `koanf:"cleanup_interval"`

	// SessionRetention is the TTL badger applies to session records, a safety
	// net for sessions the cleanup loop never reaches.
	SessionRetention time.Duration `koanf:"session_retention"`
}

// RecommendConfig holds recommendation engine settings.
type RecommendConfig struct {
	CacheStore             string        `koanf:"cache_store"`
	CacheTTL               time.Duration `koanf:"cache_ttl"`
	CacheMaxEntries        int           `koanf:"cache_max_entries"`
	CacheEvictCount        int           `koanf:"cache_evict_count"`
	DefaultLimit           int           `koanf:"default_limit"`
	MaxLimit               int           `koanf:"max_limit"`
	MinSimilarityThreshold float64       `koanf:"min_similarity_threshold"`
	SimilarityWeight       float64       `koanf:"similarity_weight"`
	AlgorithmTimeout       time.Duration `koanf:"algorithm_timeout"`
	ExplanationTimeout     time.Duration `koanf:"explanation_timeout"`
}

// RedisConfig holds the Redis connection used by the redis cache store.
type RedisConfig struct {
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

// OpenAIConfig holds OpenAI client settings. An empty APIKey disables the
// client and the service falls back to template explanations and hashing
// embeddings.
type OpenAIConfig struct {
	APIKey            string        `koanf:"api_key"`
	BaseURL           string        `koanf:"base_url"`
	ChatModel         string        `koanf:"chat_model"`
	EmbeddingModel    string        `koanf:"embedding_model"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Timeout           time.Duration `koanf:"timeout"`
}

// Enabled reports whether an API key is configured.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

// EventsConfig holds event bus settings.
type EventsConfig struct {
	Transport    string `koanf:"transport"`
	NATSURL      string `koanf:"nats_url"`
	EmbeddedNATS bool   `koanf:"embedded_nats"`
	NATSPort     int    `koanf:"nats_port"`
}

// SecurityConfig holds CORS and rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitRequests int           `koanf:"rate_limit_requests"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config/config.yaml",
	"/etc/otto/config.yaml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:           "0.0.0.0",
			Port:           8080,
			Timeout:        30 * time.Second,
			RequestTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
		Comparison: ComparisonConfig{
			MinVehicles:      2,
			MaxVehicles:      4,
			EmbeddingTimeout: 5 * time.Second,
		},
		Tracking: TrackingConfig{
			Store:                 StoreMemory,
			BadgerPath:            "/data/tracking",
			SessionTimeout:        30 * time.Minute,
			ProfileUpdateInterval: 5 * time.Minute,
			CleanupInterval:       5 * time.Minute,
			SessionRetention:      24 * time.Hour,
		},
		Recommend: RecommendConfig{
			CacheStore:             StoreMemory,
			CacheTTL:               15 * time.Minute,
			CacheMaxEntries:        1000,
			CacheEvictCount:        200,
			DefaultLimit:           10,
			MaxLimit:               50,
			MinSimilarityThreshold: 0.3,
			SimilarityWeight:       0.2,
			AlgorithmTimeout:       5 * time.Second,
			ExplanationTimeout:     8 * time.Second,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		OpenAI: OpenAIConfig{
			BaseURL:           "https://api.openai.com/v1",
			ChatModel:         "gpt-4o-mini",
			EmbeddingModel:    "text-embedding-3-small",
			RequestsPerSecond: 5,
			Timeout:           20 * time.Second,
		},
		Events: EventsConfig{
			Transport: TransportMemory,
			NATSPort:  4222,
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitRequests: 100,
			RateLimitWindow:   time.Minute,
		},
	}
}

// Load loads configuration with layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
//
// The result is validated before it is returned.
func Load() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: environment variables
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first config file found, or "" when there is none.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths defines which config paths should be parsed as comma-separated slices
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices for known slice fields.
// Env vars arrive as strings while the YAML file may already hold a list.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

// envMappings maps lowercased environment variable names to koanf paths.
var envMappings = map[string]string{
	// Server
	"http_host":            "server.host",
	"http_port":            "server.port",
	"http_timeout":         "server.timeout",
	"http_request_timeout": "server.request_timeout",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",

	// Comparison
	"comparison_rules_path": "comparison.rules_path",
	"embedding_timeout":     "comparison.embedding_timeout",

	// Tracking
	"tracking_store":           "tracking.store",
	"tracking_badger_path":     "tracking.badger_path",
	"session_timeout":          "tracking.session_timeout",
	"profile_update_interval":  "tracking.profile_update_interval",
	"session_cleanup_interval": "tracking.cleanup_interval",
	"session_retention":        "tracking.session_retention",

	// Recommendations
	"recommend_cache_store":         "recommend.cache_store",
	"recommend_cache_ttl":           "recommend.cache_ttl",
	"recommend_algorithm_timeout":   "recommend.algorithm_timeout",
	"recommend_explanation_timeout": "recommend.explanation_timeout",

	// Redis
	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	// OpenAI
	"openai_api_key":         "openai.api_key",
	"openai_base_url":        "openai.base_url",
	"openai_chat_model":      "openai.chat_model",
	"openai_embedding_model": "openai.embedding_model",
	"openai_rps":             "openai.requests_per_second",
	"openai_timeout":         "openai.timeout",

	// Events
	"events_transport": "events.transport",
	"nats_url":         "events.nats_url",
	"nats_embedded":    "events.embedded_nats",
	"nats_port":        "events.nats_port",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_requests",
	"rate_limit_window":   "security.rate_limit_window",
}

// envTransformFunc transforms environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped.
//
// Examples:
//   - HTTP_PORT -> server.port
//   - REDIS_ADDR -> redis.addr
//   - NATS_EMBEDDED -> events.embedded_nats
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Comparison Metrics
	ComparisonsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_comparisons_total",
			Help: "Total number of vehicle comparisons by outcome",
		},
		[]string{"outcome"}, // success, invalid, not_found, error
	)

	ComparisonDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otto_comparison_duration_seconds",
			Help:    "Duration of vehicle comparisons in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	ComparisonVehicles = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otto_comparison_vehicles",
			Help:    "Number of vehicles per comparison request",
			Buckets: []float64{1, 2, 3, 4, 5},
		},
	)

	// DependencyDegradations counts collaborator failures that were absorbed
	// into a degraded result instead of failing the request.
	DependencyDegradations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_dependency_degradations_total",
			Help: "Total number of dependency failures converted to degraded results",
		},
		[]string{"dependency"}, // embeddings, market_data, peer_lookup, explanations
	)

	// Interaction Tracking Metrics
	InteractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_interactions_total",
			Help: "Total number of interactions received",
		},
		[]string{"type", "result"}, // result: accepted, rejected
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "otto_active_sessions",
			Help: "Current number of active browsing sessions",
		},
	)

	SessionsExpired = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "otto_sessions_expired_total",
			Help: "Total number of sessions folded into user profiles after expiry",
		},
	)

	ProfileBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otto_profile_build_duration_seconds",
			Help:    "Time to rebuild a user preference profile",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // success, cached, invalid, error
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otto_recommendation_duration_seconds",
			Help:    "Duration of recommendation generation in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
	)

	RecommendationItems = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "otto_recommendation_items",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 5, 10, 20, 50},
		},
	)

	AlgorithmPredictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_algorithm_predictions_total",
			Help: "Total number of algorithm runs by outcome",
		},
		[]string{"algorithm", "outcome"}, // outcome: success, error, timeout, empty
	)

	AlgorithmDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "otto_algorithm_duration_seconds",
			Help:    "Duration of individual recommendation algorithms",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"algorithm"},
	)

	ABTestAssignments = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_ab_test_assignments_total",
			Help: "Total number of recommendation requests per A/B group",
		},
		[]string{"group"},
	)

	ExplanationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_explanations_total",
			Help: "Total number of recommendation explanations by source",
		},
		[]string{"source"}, // llm, template
	)

	FeedbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_feedback_total",
			Help: "Total number of recommendation feedback submissions",
		},
		[]string{"type", "result"},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CacheEvictions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_cache_evictions_total",
			Help: "Total number of cache entries evicted or invalidated",
		},
		[]string{"cache"},
	)

	// Event Bus Metrics
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_events_published_total",
			Help: "Total number of domain events published",
		},
		[]string{"topic", "result"},
	)

	EventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otto_events_consumed_total",
			Help: "Total number of domain events consumed",
		},
		[]string{"topic", "result"}, // result: ack, nack, skipped
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Application Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "otto_app_info",
			Help: "Application build information",
		},
		[]string{"version", "go_version"},
	)

	AppUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "otto_app_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)
)

// RecordComparison records the outcome of one comparison request.
func RecordComparison(outcome string, vehicles int, duration time.Duration) {
	ComparisonsTotal.WithLabelValues(outcome).Inc()
	ComparisonVehicles.Observe(float64(vehicles))
	if outcome == "success" {
		ComparisonDuration.Observe(duration.Seconds())
	}
}

// RecordDependencyDegraded records a collaborator failure that was absorbed.
func RecordDependencyDegraded(dependency string) {
	DependencyDegradations.WithLabelValues(dependency).Inc()
}

// RecordInteraction records an interaction as accepted or rejected.
func RecordInteraction(interactionType string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	if interactionType == "" {
		interactionType = "unknown"
	}
	InteractionsTotal.WithLabelValues(interactionType, result).Inc()
}

// SetActiveSessions sets the active session gauge.
func SetActiveSessions(count int) {
	ActiveSessions.Set(float64(count))
}

// RecordSessionsExpired adds n expired sessions.
func RecordSessionsExpired(n int) {
	if n > 0 {
		SessionsExpired.Add(float64(n))
	}
}

// RecordProfileBuild records the time spent rebuilding a profile.
func RecordProfileBuild(duration time.Duration) {
	ProfileBuildDuration.Observe(duration.Seconds())
}

// RecordRecommendation records a recommendation request.
func RecordRecommendation(outcome string, items int, duration time.Duration) {
	RecommendationsTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" || outcome == "cached" {
		RecommendationItems.Observe(float64(items))
		RecommendationDuration.Observe(duration.Seconds())
	}
}

// RecordAlgorithm records one algorithm run.
func RecordAlgorithm(algorithm, outcome string, duration time.Duration) {
	AlgorithmPredictions.WithLabelValues(algorithm, outcome).Inc()
	AlgorithmDuration.WithLabelValues(algorithm).Observe(duration.Seconds())
}

// RecordABAssignment records the A/B group used for a request.
func RecordABAssignment(group string) {
	ABTestAssignments.WithLabelValues(group).Inc()
}

// RecordExplanation records where an explanation came from.
func RecordExplanation(source string) {
	ExplanationsTotal.WithLabelValues(source).Inc()
}

// RecordFeedback records a feedback submission.
func RecordFeedback(feedbackType string, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	FeedbackTotal.WithLabelValues(feedbackType, result).Inc()
}

// RecordCacheHit records a cache hit.
func RecordCacheHit(cache string) {
	CacheHits.WithLabelValues(cache).Inc()
}

// RecordCacheMiss records a cache miss.
func RecordCacheMiss(cache string) {
	CacheMisses.WithLabelValues(cache).Inc()
}

// RecordCacheEviction records n evicted entries.
func RecordCacheEviction(cache string, n int) {
	if n > 0 {
		CacheEvictions.WithLabelValues(cache).Add(float64(n))
	}
}

// RecordEventPublished records a publish attempt.
func RecordEventPublished(topic string, err error) {
	EventsPublished.WithLabelValues(topic, resultLabel(err)).Inc()
}

// RecordEventConsumed records how a consumed event was handled.
func RecordEventConsumed(topic, result string) {
	EventsConsumed.WithLabelValues(topic, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// SetAppInfo publishes build information.
func SetAppInfo(version, goVersion string) {
	AppInfo.WithLabelValues(version, goVersion).Set(1)
}

// UpdateUptime sets the uptime gauge from the process start time.
func UpdateUptime(started time.Time) {
	AppUptime.Set(time.Since(started).Seconds())
}

// StatusLabel formats an HTTP status code as a label value.
func StatusLabel(code int) string {
	return strconv.Itoa(code)
}

func resultLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package metrics provides Prometheus collectors for the comparison, tracking
and recommendation services.

All collectors are registered with the default registry through promauto and
exposed at /metrics by the API router:

	curl http://localhost:8080/metrics

# Available Metrics

Comparison:
  - otto_comparisons_total{outcome}: success, invalid, not_found, error
  - otto_comparison_duration_seconds: successful comparison latency
  - otto_dependency_degradations_total{dependency}: absorbed collaborator failures

Tracking:
  - otto_interactions_total{type,result}: accepted or rejected interactions
  - otto_active_sessions: sessions currently open
  - otto_sessions_expired_total: sessions folded into profiles

Recommendations:
  - otto_recommendations_total{outcome}: success, cached, invalid, error
  - otto_algorithm_predictions_total{algorithm,outcome}
  - otto_ab_test_assignments_total{group}
  - otto_explanations_total{source}: llm or template
  - otto_feedback_total{type,result}

Infrastructure:
  - otto_cache_hits_total / otto_cache_misses_total{cache}
  - otto_events_published_total / otto_events_consumed_total{topic,result}
  - api_requests_total{method,endpoint,status_code}
  - circuit_breaker_state{name}: 0=closed, 1=half-open, 2=open

# Usage

Record helpers keep label handling in one place:

	start := time.Now()
	result, err := engine.Compare(ctx, req)
	metrics.RecordComparison("success", len(req.VehicleIDs), time.Since(start))
*/
package metrics

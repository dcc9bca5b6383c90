// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"strings"
	"time"

	"github.com/tomtom215/otto/internal/vehicle"
)

// Type selects the scoring algorithm.
type Type string

const (
	TypeHybrid        Type = "hybrid"
	TypeCollaborative Type = "collaborative"
	TypeContentBased  Type = "content_based"
	TypeSimilarity    Type = "similarity"
)

// ParseType returns the type for s. An empty string is hybrid.
func ParseType(s string) (Type, bool) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case "":
		return TypeHybrid, true
	case TypeHybrid, TypeCollaborative, TypeContentBased, TypeSimilarity:
		return t, true
	default:
		return t, false
	}
}

// String implements fmt.Stringer.
func (t Type) String() string {
	return string(t)
}

// Request is a recommendation request.
type Request struct {
	UserID              string   `json:"user_id"`
	ContextVehicleIDs   []string `json:"context_vehicle_ids,omitempty"`
	SearchQuery         string   `json:"search_query,omitempty"`
	Type                Type     `json:"recommendation_type,omitempty"`
	Limit               int      `json:"limit,omitempty"`
	IncludeExplanations bool     `json:"include_explanations"`
	SessionID           string   `json:"session_id,omitempty"`
}

// Recommendation is one recommended vehicle.
type Recommendation struct {
	VehicleID              string             `json:"vehicle_id"`
	VehicleData            vehicle.Record     `json:"vehicle_data"`
	RecommendationScore    float64            `json:"recommendation_score"`
	MatchPercentage        float64            `json:"match_percentage"`
	Explanation            string             `json:"explanation"`
	PersonalizationFactors []string           `json:"personalization_factors"`
	AlgorithmScores        map[string]float64 `json:"algorithm_scores,omitempty"`
	TrendingScore          *float64           `json:"trending_score,omitempty"`
	UrgencyIndicators      []string           `json:"urgency_indicators"`
}

// Result is the response to a recommendation request.
type Result struct {
	UserID             string           `json:"user_id"`
	Recommendations    []Recommendation `json:"recommendations"`
	RecommendationType Type             `json:"recommendation_type"`
	AlgorithmVersion   string           `json:"algorithm_version"`
	ABTestGroup        string           `json:"a_b_test_group"`
	Cached             bool             `json:"cached"`
	TotalCandidates    int              `json:"total_candidates"`
	ProcessingTime     float64          `json:"processing_time"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// Clone returns a deep copy so cached results are never shared with callers.
func (r *Result) Clone() *Result {
	c := *r
	c.Recommendations = make([]Recommendation, len(r.Recommendations))
	for i := range r.Recommendations {
		rec := r.Recommendations[i]
		rec.VehicleData = rec.VehicleData.Clone()
		rec.PersonalizationFactors = append([]string{}, rec.PersonalizationFactors...)
		rec.UrgencyIndicators = append([]string{}, rec.UrgencyIndicators...)
		if rec.AlgorithmScores != nil {
			scores := make(map[string]float64, len(rec.AlgorithmScores))
			for k, v := range rec.AlgorithmScores {
				scores[k] = v
			}
			rec.AlgorithmScores = scores
		}
		if rec.TrendingScore != nil {
			ts := *rec.TrendingScore
			rec.TrendingScore = &ts
		}
		c.Recommendations[i] = rec
	}
	return &c
}

// FeedbackType classifies shopper feedback on a recommendation.
type FeedbackType string

const (
	FeedbackLike          FeedbackType = "like"
	FeedbackDislike       FeedbackType = "dislike"
	FeedbackNotInterested FeedbackType = "not_interested"
	FeedbackPurchased     FeedbackType = "purchased"
	FeedbackSaved         FeedbackType = "saved"
)

var validFeedback = map[FeedbackType]bool{
	FeedbackLike:          true,
	FeedbackDislike:       true,
	FeedbackNotInterested: true,
	FeedbackPurchased:     true,
	FeedbackSaved:         true,
}

// Feedback is shopper feedback on a recommended vehicle. Rating is optional (0 = unset).
type Feedback struct {
	UserID       string `json:"user_id"`
	VehicleID    string `json:"vehicle_id"`
	FeedbackType string `json:"feedback_type"`
	Rating       int    `json:"rating,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

// Stats reports engine counters.
type Stats struct {
	Requests          int64            `json:"requests"`
	CacheHits         int64            `json:"cache_hits"`
	CacheMisses       int64            `json:"cache_misses"`
	HitRate           float64          `json:"hit_rate"`
	Errors            int64            `json:"errors"`
	FeedbackAccepted  int64            `json:"feedback_accepted"`
	FeedbackRejected  int64            `json:"feedback_rejected"`
	AlgorithmFailures map[string]int64 `json:"algorithm_failures"`
	GroupAssignments  map[string]int64 `json:"group_assignments"`
}

// candidate is a vehicle being scored.
type candidate struct {
	record vehicle.Record
	// similarity is the provider similarity to a context vehicle, if it came from one.
	similarity float64
}

// scoredCandidate carries per-algorithm scores for one vehicle.
type scoredCandidate struct {
	record  vehicle.Record
	score   float64
	scores  map[string]float64
	factors []string
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"time"

	"github.com/tomtom215/otto/internal/vehicle"
)

// PricePosition places a listing price relative to the market average.
type PricePosition string

const (
	BelowMarket PricePosition = "below_market"
	AtMarket    PricePosition = "at_market"
	AboveMarket PricePosition = "above_market"
)

// DifferenceType classifies a difference from the first vehicle's point of view.
type DifferenceType string

const (
	Advantage    DifferenceType = "advantage"
	Disadvantage DifferenceType = "disadvantage"
	Neutral      DifferenceType = "neutral"
)

// FeatureType says whether a difference came from specifications or the feature list.
type FeatureType string

const (
	FeatureTypeSpecification FeatureType = "specification"
	FeatureTypeFeature       FeatureType = "feature"
)

// VehicleSpecification is one extracted specification value.
type VehicleSpecification struct {
	Category        string  `json:"category"`
	Name            string  `json:"name"`
	Value           any     `json:"value"`
	ImportanceScore float64 `json:"importance_score"`
}

// VehicleFeatures is a bucket of free-text features.
type VehicleFeatures struct {
	Category   string   `json:"category"`
	Features   []string `json:"features"`
	Included   bool     `json:"included"`
	ValueScore float64  `json:"value_score"`
}

// PriceAnalysis positions a vehicle's price within its market.
type PriceAnalysis struct {
	CurrentPrice      float64              `json:"current_price"`
	MarketAverage     float64              `json:"market_average"`
	MarketRange       [2]float64           `json:"market_range"`
	PricePosition     PricePosition        `json:"price_position"`
	PriceTrend        vehicle.PriceTrend   `json:"price_trend"`
	MarketDemand      vehicle.MarketDemand `json:"market_demand"`
	SavingsAmount     *float64             `json:"savings_amount,omitempty"`
	SavingsPercentage *float64             `json:"savings_percentage,omitempty"`
}

// FeatureDifference is one distinguishing attribute between two vehicles.
type FeatureDifference struct {
	VehicleAID       string         `json:"vehicle_a_id"`
	VehicleBID       string         `json:"vehicle_b_id"`
	FeatureName      string         `json:"feature_name"`
	FeatureType      FeatureType    `json:"feature_type"`
	VehicleAValue    any            `json:"vehicle_a_value"`
	VehicleBValue    any            `json:"vehicle_b_value"`
	DifferenceType   DifferenceType `json:"difference_type"`
	ImportanceWeight float64        `json:"importance_weight"`
	Description      string         `json:"description"`
}

// Favors returns the id of the vehicle the difference works in favour of,
// or "" for neutral differences.
func (d *FeatureDifference) Favors() string {
	switch d.DifferenceType {
	case Advantage:
		return d.VehicleAID
	case Disadvantage:
		return d.VehicleBID
	default:
		return ""
	}
}

// SemanticSimilarity describes how alike two vehicles are.
type SemanticSimilarity struct {
	SimilarityScore float64  `json:"similarity_score"`
	SharedFeatures  []string `json:"shared_features"`
	UniqueFeaturesA []string `json:"unique_features_a"`
	UniqueFeaturesB []string `json:"unique_features_b"`
	Explanation     string   `json:"explanation"`
}

// VehicleComparisonResult is the per-vehicle analysis.
type VehicleComparisonResult struct {
	VehicleID      string                 `json:"vehicle_id"`
	VehicleData    vehicle.Record         `json:"vehicle_data"`
	Specifications []VehicleSpecification `json:"specifications"`
	Features       []VehicleFeatures      `json:"features"`
	PriceAnalysis  *PriceAnalysis         `json:"price_analysis,omitempty"`
	OverallScore   float64                `json:"overall_score"`
}

// ItemFailure records a vehicle whose analysis failed inside a batch.
type ItemFailure struct {
	VehicleID string `json:"vehicle_id"`
	Error     string `json:"error"`
}

// Request is a comparison request.
type Request struct {
	VehicleIDs                []string
	Criteria                  []string
	IncludeSemanticSimilarity bool
	IncludePriceAnalysis      bool
	UserID                    string
}

// Result is the aggregate comparison response.
// SemanticSimilarity is nil when not requested and empty when the embedding service failed.
type Result struct {
	ComparisonID          string                        `json:"comparison_id"`
	ComparisonResults     []VehicleComparisonResult     `json:"comparison_results"`
	FeatureDifferences    []FeatureDifference           `json:"feature_differences"`
	SemanticSimilarity    map[string]SemanticSimilarity `json:"semantic_similarity"`
	RecommendationSummary string                        `json:"recommendation_summary"`
	Failures              []ItemFailure                 `json:"failures,omitempty"`
	ProcessingTime        float64                       `json:"processing_time"`
	GeneratedAt           time.Time                     `json:"generated_at"`
}

// PairKey returns the key used in Result.SemanticSimilarity.
func PairKey(idA, idB string) string {
	return idA + "_vs_" + idB
}

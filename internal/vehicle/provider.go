// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"context"
)

// DataProvider is the external vehicle database.
type DataProvider interface {
	// GetVehiclesByIDs returns the records it could resolve, in input order.
	// Missing ids are omitted rather than reported as an error.
	GetVehiclesByIDs(ctx context.Context, ids []string) ([]Record, error)

	// GetSimilarVehicles returns up to limit vehicles similar to id, most similar first.
	GetSimilarVehicles(ctx context.Context, id string, limit int) ([]ScoredRecord, error)

	// SearchVehicles returns up to limit vehicles matching filters.
	SearchVehicles(ctx context.Context, filters SearchFilters, limit int) ([]Record, error)

	// GetTrendingVehicles returns up to limit currently trending vehicles.
	GetTrendingVehicles(ctx context.Context, limit int) ([]Record, error)
}

// ScoredRecord pairs a record with a similarity score in [0,1].
type ScoredRecord struct {
	Record     Record  `json:"vehicle"`
	Similarity float64 `json:"similarity"`
}

// SearchFilters narrows SearchVehicles. Zero values mean "no constraint".
type SearchFilters struct {
	Makes      []string `json:"makes,omitempty"`
	BodyStyles []string `json:"body_styles,omitempty"`
	MinPrice   float64  `json:"min_price,omitempty"`
	MaxPrice   float64  `json:"max_price,omitempty"`
	MinYear    int      `json:"min_year,omitempty"`
	MaxYear    int      `json:"max_year,omitempty"`
	Query      string   `json:"query,omitempty"`
}

// IsEmpty reports whether no filter is set.
func (f *SearchFilters) IsEmpty() bool {
	return len(f.Makes) == 0 && len(f.BodyStyles) == 0 &&
		f.MinPrice == 0 && f.MaxPrice == 0 &&
		f.MinYear == 0 && f.MaxYear == 0 && f.Query == ""
}

// EmbeddingProvider turns text into vectors. Implementations may fail at any time.
type EmbeddingProvider interface {
	GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error)
}

// PriceTrend is the direction of market prices for a vehicle.
type PriceTrend string

const (
	TrendIncreasing PriceTrend = "increasing"
	TrendStable     PriceTrend = "stable"
	TrendDecreasing PriceTrend = "decreasing"
)

// MarketDemand is the relative demand for a vehicle.
type MarketDemand string

const (
	DemandLow    MarketDemand = "low"
	DemandMedium MarketDemand = "medium"
	DemandHigh   MarketDemand = "high"
)

// MarketData describes the market a vehicle is priced against.
type MarketData struct {
	Average float64
	Min     float64
	Max     float64
	Trend   PriceTrend
	Demand  MarketDemand
}

// MarketDataProvider supplies market pricing for a vehicle.
type MarketDataProvider interface {
	MarketData(ctx context.Context, rec Record, peers []Record) (MarketData, error)
}

// TrendingScoreProvider scores how much attention a vehicle is getting, in [0,1].
type TrendingScoreProvider interface {
	TrendingScore(ctx context.Context, vehicleID string) (float64, error)
}

// UrgencySignalProvider returns short urgency indicators for a vehicle.
type UrgencySignalProvider interface {
	UrgencySignals(ctx context.Context, rec Record) ([]string, error)
}

// PeerUser is a user whose taste overlaps with the requesting user.
type PeerUser struct {
	UserID     string
	Similarity float64
	// Liked maps vehicle id to preference weight.
	Liked map[string]float64
}

// PeerSimilarityProvider finds users with similar taste.
type PeerSimilarityProvider interface {
	SimilarUsers(ctx context.Context, userID string, limit int) ([]PeerUser, error)
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/vehicle"
)

// failingProvider fails every lookup.
type failingProvider struct {
	vehicle.DataProvider
}

func (failingProvider) GetVehiclesByIDs(context.Context, []string) ([]vehicle.Record, error) {
	return nil, errors.New("connection refused")
}

// panickingMarket panics for one vehicle and delegates the rest.
type panickingMarket struct {
	vehicle.MarketDataProvider
	id string
}

func (m panickingMarket) MarketData(ctx context.Context, rec vehicle.Record, peers []vehicle.Record) (vehicle.MarketData, error) {
	if rec.ID == m.id {
		panic("market index corrupted")
	}
	return m.MarketDataProvider.MarketData(ctx, rec, peers)
}

func newTestEngine(embedder vehicle.EmbeddingProvider, market vehicle.MarketDataProvider) *Engine {
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return NewEngine(vehicle.NewCatalog(vehicle.SampleVehicles()...), Options{
		Market:   market,
		Embedder: embedder,
		Logger:   zerolog.Nop(),
		Now:      func() time.Time { return fixed },
	})
}

func TestEngine_Compare_Validation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(nil, nil)

	tests := []struct {
		name    string
		ids     []string
		message string
		check   func(error) bool
	}{
		{"one vehicle", []string{"veh-camry-2023"}, "at least 2 vehicles required", vehicle.IsInvalidArgument},
		{"no vehicles", nil, "at least 2 vehicles required", vehicle.IsInvalidArgument},
		{
			"five vehicles",
			[]string{"veh-camry-2023", "veh-accord-2023", "veh-rav4-2022", "veh-crv-2022", "veh-civic-2024"},
			"maximum 4 vehicles allowed", vehicle.IsInvalidArgument,
		},
		{"duplicates", []string{"veh-camry-2023", "veh-camry-2023"}, "vehicle IDs must be unique", vehicle.IsInvalidArgument},
		{"unknown id", []string{"veh-camry-2023", "missing-1", "missing-2"}, "vehicles not found: missing-1, missing-2", vehicle.IsNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result, err := e.Compare(context.Background(), Request{VehicleIDs: tt.ids})
			if err == nil {
				t.Fatal("expected error")
			}
			if result != nil {
				t.Error("expected nil result on error")
			}
			if err.Error() != tt.message {
				t.Errorf("error = %q, want %q", err.Error(), tt.message)
			}
			if !tt.check(err) {
				t.Errorf("unexpected error kind %v", vehicle.KindOf(err))
			}
		})
	}
}

func TestEngine_Compare_ProviderFailure(t *testing.T) {
	t.Parallel()

	e := NewEngine(failingProvider{}, Options{Logger: zerolog.Nop()})
	_, err := e.Compare(context.Background(), Request{VehicleIDs: []string{"a", "b"}})
	if !vehicle.IsDependencyFailure(err) {
		t.Fatalf("expected dependency failure, got %v", err)
	}
}

func TestEngine_Compare_EndToEnd(t *testing.T) {
	t.Parallel()

	market := vehicle.NewHeuristicMarketData(nil)
	market.Now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	e := newTestEngine(&letterEmbedder{}, market)

	ids := []string{"veh-rav4-2022", "veh-camry-2023", "veh-accord-2023"}
	result, err := e.Compare(context.Background(), Request{
		VehicleIDs:                ids,
		IncludeSemanticSimilarity: true,
		IncludePriceAnalysis:      true,
		UserID:                    "user-1",
	})
	if err != nil {
		t.Fatalf("Compare() error = %v", err)
	}

	if len(result.ComparisonResults) != 3 {
		t.Fatalf("expected 3 results, got %d", len(result.ComparisonResults))
	}
	for i, r := range result.ComparisonResults {
		if r.VehicleID != ids[i] {
			t.Errorf("result %d = %s, want %s", i, r.VehicleID, ids[i])
		}
		if r.OverallScore < 0 || r.OverallScore > 1 {
			t.Errorf("%s score %v out of range", r.VehicleID, r.OverallScore)
		}
		if r.PriceAnalysis == nil {
			t.Errorf("%s missing price analysis", r.VehicleID)
		}
		if len(r.Specifications) == 0 {
			t.Errorf("%s has no specifications", r.VehicleID)
		}
	}

	if len(result.FeatureDifferences) == 0 {
		t.Error("expected feature differences")
	}
	if len(result.SemanticSimilarity) != 3 {
		t.Errorf("expected 3 similarity pairs, got %d", len(result.SemanticSimilarity))
	}
	if _, ok := result.SemanticSimilarity["veh-rav4-2022_vs_veh-camry-2023"]; !ok {
		t.Error("similarity keys should follow input order")
	}
	if !strings.Contains(result.RecommendationSummary, "ranks highest") {
		t.Errorf("summary = %q", result.RecommendationSummary)
	}
	if len(result.Failures) != 0 {
		t.Errorf("unexpected failures %v", result.Failures)
	}
	if result.ComparisonID == "" {
		t.Error("expected comparison id")
	}
}

func TestEngine_Compare_PartialFailure(t *testing.T) {
	t.Parallel()

	market := panickingMarket{MarketDataProvider: vehicle.NewHeuristicMarketData(nil), id: "veh-camry-2023"}
	e := newTestEngine(&letterEmbedder{}, market)

	result, err := e.Compare(context.Background(), Request{
		VehicleIDs:                []string{"veh-rav4-2022", "veh-camry-2023", "veh-accord-2023"},
		IncludeSemanticSimilarity: true,
		IncludePriceAnalysis:      true,
	})
	if err != nil {
		t.Fatalf("one failing vehicle must not fail the comparison: %v", err)
	}

	if len(result.ComparisonResults) != 2 {
		t.Fatalf("expected 2 results, got %d", len(result.ComparisonResults))
	}
	if result.ComparisonResults[0].VehicleID != "veh-rav4-2022" || result.ComparisonResults[1].VehicleID != "veh-accord-2023" {
		t.Errorf("surviving results out of order: %s, %s",
			result.ComparisonResults[0].VehicleID, result.ComparisonResults[1].VehicleID)
	}

	if len(result.Failures) != 1 {
		t.Fatalf("expected 1 failure, got %v", result.Failures)
	}
	if f := result.Failures[0]; f.VehicleID != "veh-camry-2023" || !strings.Contains(f.Error, "market index corrupted") {
		t.Errorf("failure = %+v", f)
	}

	if len(result.SemanticSimilarity) != 1 {
		t.Errorf("expected 1 similarity pair for the surviving vehicles, got %d", len(result.SemanticSimilarity))
	}
	if !strings.Contains(result.RecommendationSummary, "ranks highest") {
		t.Errorf("summary = %q", result.RecommendationSummary)
	}
}

func TestEngine_Compare_Degradation(t *testing.T) {
	t.Parallel()

	e := newTestEngine(&letterEmbedder{err: errors.New("timeout")}, nil)

	result, err := e.Compare(context.Background(), Request{
		VehicleIDs:                []string{"veh-camry-2023", "veh-civic-2024"},
		IncludeSemanticSimilarity: true,
		IncludePriceAnalysis:      true,
	})
	if err != nil {
		t.Fatalf("dependency failures must not fail the comparison: %v", err)
	}
	if result.SemanticSimilarity == nil || len(result.SemanticSimilarity) != 0 {
		t.Errorf("expected empty similarity map, got %v", result.SemanticSimilarity)
	}
	for _, r := range result.ComparisonResults {
		if r.PriceAnalysis != nil {
			t.Errorf("%s should have no price analysis without market data", r.VehicleID)
		}
	}
}

func TestEngine_Compare_OptionalSectionsOmitted(t *testing.T) {
	t.Parallel()

	embedder := &letterEmbedder{}
	e := newTestEngine(embedder, vehicle.NewHeuristicMarketData(nil))

	result, err := e.Compare(context.Background(), Request{
		VehicleIDs: []string{"veh-camry-2023", "veh-civic-2024"},
		Criteria:   []string{"engine"},
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.SemanticSimilarity != nil {
		t.Error("similarity should be nil when not requested")
	}
	if embedder.calls != 0 {
		t.Error("embedder should not be called")
	}
	for _, r := range result.ComparisonResults {
		if r.PriceAnalysis != nil {
			t.Error("price analysis should be omitted when not requested")
		}
		for _, s := range r.Specifications {
			if s.Category != "engine" {
				t.Errorf("criteria not applied: got category %s", s.Category)
			}
		}
	}
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"testing"

	"github.com/tomtom215/otto/internal/vehicle"
)

func TestExtractSpecifications(t *testing.T) {
	t.Parallel()

	x := NewFeatureExtractor(nil)
	rec := vehicle.Record{
		ID: "v1",
		Specs: map[string]any{
			"horsepower":    203,
			"drivetrain":    "AWD",
			"safety_rating": 5,
			"torque":        nil,
			"paint_code":    "1G3",
		},
	}

	specs := x.ExtractSpecifications(&rec, nil)
	if len(specs) != 3 {
		t.Fatalf("got %d specs, want 3: %+v", len(specs), specs)
	}

	want := []struct {
		category string
		name     string
		weight   float64
	}{
		{"engine", "horsepower", 0.20},
		{"transmission", "drivetrain", 0.10},
		{"safety", "safety_rating", 0.18},
	}
	for i, w := range want {
		if specs[i].Category != w.category || specs[i].Name != w.name || specs[i].ImportanceScore != w.weight {
			t.Errorf("spec[%d] = %+v, want %+v", i, specs[i], w)
		}
	}
}

func TestExtractSpecifications_Criteria(t *testing.T) {
	t.Parallel()

	x := NewFeatureExtractor(nil)
	rec := vehicle.Record{Specs: map[string]any{"horsepower": 203, "safety_rating": 5}}

	specs := x.ExtractSpecifications(&rec, []string{"Safety"})
	if len(specs) != 1 || specs[0].Name != "safety_rating" {
		t.Errorf("criteria filter not applied: %+v", specs)
	}
}

func TestExtractSpecifications_DefaultWeight(t *testing.T) {
	t.Parallel()

	rules := DefaultRules()
	rules.SpecCategories = append(rules.SpecCategories, SpecCategory{Name: "efficiency", Fields: []string{"range_miles"}})
	x := NewFeatureExtractor(rules)

	specs := x.ExtractSpecifications(&vehicle.Record{Specs: map[string]any{"range_miles": 330}}, nil)
	if len(specs) != 1 || specs[0].ImportanceScore != 0.1 {
		t.Errorf("expected default weight 0.1, got %+v", specs)
	}
}

func TestExtractFeatures(t *testing.T) {
	t.Parallel()

	x := NewFeatureExtractor(nil)
	rec := vehicle.Record{Features: []string{
		"Blind Spot Monitoring System",
		"Lane Departure Alert",
		"Bluetooth Connectivity",
		"Heated Front Seats",
		"All-Wheel Drive",
		"Power Moonroof",
		"Floor Mats",
		"  ",
	}}

	got := x.ExtractFeatures(&rec)
	byCategory := make(map[string]VehicleFeatures, len(got))
	for _, f := range got {
		byCategory[f.Category] = f
	}

	tests := []struct {
		category string
		count    int
	}{
		{"safety", 2},
		{"technology", 1},
		{"comfort", 1},
		{"performance", 1},
		{"exterior", 1},
		{"other", 1},
	}
	for _, tt := range tests {
		f, ok := byCategory[tt.category]
		if !ok {
			t.Errorf("missing bucket %q", tt.category)
			continue
		}
		if len(f.Features) != tt.count {
			t.Errorf("bucket %q has %d features, want %d", tt.category, len(f.Features), tt.count)
		}
		if !f.Included {
			t.Errorf("bucket %q should be included", tt.category)
		}
		wantScore := float64(tt.count) * 0.1
		if diff := f.ValueScore - wantScore; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("bucket %q value score = %v, want %v", tt.category, f.ValueScore, wantScore)
		}
	}

	if got[len(got)-1].Category != "other" {
		t.Error("other bucket should be last")
	}
}

func TestExtractFeatures_ValueScoreCapped(t *testing.T) {
	t.Parallel()

	features := make([]string, 15)
	for i := range features {
		features[i] = "Floor Mats"
	}

	got := NewFeatureExtractor(nil).ExtractFeatures(&vehicle.Record{Features: features})
	if len(got) != 1 || got[0].ValueScore != 1.0 {
		t.Errorf("value score should cap at 1.0, got %+v", got)
	}
}

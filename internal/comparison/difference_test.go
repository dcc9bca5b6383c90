// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"testing"

	"github.com/tomtom215/otto/internal/vehicle"
)

func TestEvaluateSpecDifference(t *testing.T) {
	t.Parallel()

	d := NewDifferenceAnalyzer(nil)

	tests := []struct {
		name   string
		field  string
		a, b   any
		want   DifferenceType
		weight float64
	}{
		{"more horsepower", "horsepower", 250, 200, Advantage, 0.7},
		{"less horsepower", "horsepower", 200, 250, Disadvantage, 0.7},
		{"cheaper", "price", 25000, 30000, Advantage, 0.7},
		{"pricier", "price", 30000, 25000, Disadvantage, 0.7},
		{"lower mileage", "mileage", 12000, 24000, Advantage, 0.7},
		{"under threshold", "horsepower", 203, 192, Neutral, 0.5},
		{"unlisted field", "length", 192.1, 160.0, Neutral, 0.5},
		{"non numeric", "horsepower", "lots", 200, Neutral, 0.5},
		{"faster sprint", "acceleration_0_60", 4.2, 7.6, Advantage, 0.7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, weight := d.EvaluateSpecDifference(tt.field, tt.a, tt.b)
			if got != tt.want {
				t.Errorf("type = %v, want %v", got, tt.want)
			}
			if weight != tt.weight {
				t.Errorf("weight = %v, want %v", weight, tt.weight)
			}
		})
	}
}

func TestFeatureImportanceTiers(t *testing.T) {
	t.Parallel()

	d := NewDifferenceAnalyzer(nil)

	tests := []struct {
		feature string
		min     float64
		max     float64
	}{
		{"Blind Spot Monitoring System", 0.7, 1.0},
		{"Bluetooth Connectivity", 0.4, 0.8},
		{"Floor Mats", 0.2, 0.5},
	}

	for _, tt := range tests {
		got := d.FeatureImportance(tt.feature)
		if got < tt.min || got >= tt.max && tt.max < 1.0 || got > tt.max {
			t.Errorf("FeatureImportance(%q) = %v, want within [%v, %v)", tt.feature, got, tt.min, tt.max)
		}
	}
}

func TestDifferenceAnalyzer_Compare(t *testing.T) {
	t.Parallel()

	d := NewDifferenceAnalyzer(nil)
	x := NewFeatureExtractor(nil)

	a := vehicle.Record{
		ID: "a", Make: "Tesla", Model: "Model 3", Price: 38900, Mileage: 15000,
		Features: []string{"Autopilot", "Heated Front Seats"},
		Specs:    map[string]any{"horsepower": 425, "seating_capacity": 5},
	}
	b := vehicle.Record{
		ID: "b", Make: "Honda", Model: "Civic", Price: 25400, Mileage: 3000,
		Features: []string{"heated front seats", "Floor Mats"},
		Specs:    map[string]any{"horsepower": 158, "seating_capacity": 5},
	}

	ra := &VehicleComparisonResult{VehicleID: a.ID, VehicleData: a, Specifications: x.ExtractSpecifications(&a, nil)}
	rb := &VehicleComparisonResult{VehicleID: b.ID, VehicleData: b, Specifications: x.ExtractSpecifications(&b, nil)}

	diffs := d.Compare(ra, rb)

	byName := make(map[string]FeatureDifference, len(diffs))
	for _, diff := range diffs {
		byName[diff.FeatureName] = diff
		if diff.VehicleAID != "a" || diff.VehicleBID != "b" {
			t.Errorf("difference %q has wrong pair ids", diff.FeatureName)
		}
	}

	if _, ok := byName["seating_capacity"]; ok {
		t.Error("equal values must not produce a difference")
	}
	if _, ok := byName["Heated Front Seats"]; ok {
		t.Error("features should be compared case-insensitively")
	}

	checks := []struct {
		name        string
		kind        DifferenceType
		featureType FeatureType
		favors      string
	}{
		{"horsepower", Advantage, FeatureTypeSpecification, "a"},
		{"price", Disadvantage, FeatureTypeSpecification, "b"},
		{"mileage", Disadvantage, FeatureTypeSpecification, "b"},
		{"Autopilot", Advantage, FeatureTypeFeature, "a"},
		{"Floor Mats", Disadvantage, FeatureTypeFeature, "b"},
	}
	for _, c := range checks {
		diff, ok := byName[c.name]
		if !ok {
			t.Errorf("missing difference %q", c.name)
			continue
		}
		if diff.DifferenceType != c.kind || diff.FeatureType != c.featureType {
			t.Errorf("%q = %v/%v, want %v/%v", c.name, diff.DifferenceType, diff.FeatureType, c.kind, c.featureType)
		}
		if diff.Favors() != c.favors {
			t.Errorf("%q favors %q, want %q", c.name, diff.Favors(), c.favors)
		}
		if diff.Description == "" {
			t.Errorf("%q has no description", c.name)
		}
	}
}

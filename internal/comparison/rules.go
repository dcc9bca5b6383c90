// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/tomtom215/otto/internal/vehicle"
)

// SpecCategory groups specification fields.
type SpecCategory struct {
	Name   string   `yaml:"name"`
	Fields []string `yaml:"fields"`
}

// FeatureBucket groups free-text features by keyword containment.
type FeatureBucket struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// ImportanceTier assigns a weight to features containing any of its keywords.
type ImportanceTier struct {
	Weight   float64  `yaml:"weight"`
	Keywords []string `yaml:"keywords"`
}

// Range is an inclusive numeric normalization range.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Rules holds the hand-curated heuristics used by the comparison components.
// Every table can be replaced from YAML with LoadRules.
type Rules struct {
	SpecCategories        []SpecCategory     `yaml:"spec_categories"`
	CategoryWeights       map[string]float64 `yaml:"category_weights"`
	DefaultCategoryWeight float64            `yaml:"default_category_weight"`

	FeatureBuckets      []FeatureBucket `yaml:"feature_buckets"`
	OtherBucket         string          `yaml:"other_bucket"`
	FeatureValuePerItem float64         `yaml:"feature_value_per_item"`

	HigherIsBetter        []string         `yaml:"higher_is_better"`
	LowerIsBetter         []string         `yaml:"lower_is_better"`
	SignificantDifference float64          `yaml:"significant_difference"`
	BaseImportance        float64          `yaml:"base_importance"`
	AdvantageBoost        float64          `yaml:"advantage_boost"`
	ImportanceTiers       []ImportanceTier `yaml:"importance_tiers"`
	DefaultImportance     float64          `yaml:"default_importance"`

	NormalizationRanges  map[string]Range `yaml:"normalization_ranges"`
	PositiveKeywords     []string         `yaml:"positive_keywords"`
	PositiveKeywordScore float64          `yaml:"positive_keyword_score"`

	ConditionScores       map[string]float64 `yaml:"condition_scores"`
	DefaultConditionScore float64            `yaml:"default_condition_score"`

	MakeMultipliers map[string]float64 `yaml:"make_multipliers"`
}

// DefaultRules returns the built-in heuristic tables.
func DefaultRules() *Rules {
	return &Rules{
		SpecCategories: []SpecCategory{
			{Name: "engine", Fields: []string{"engine_type", "horsepower", "torque", "displacement", "cylinders"}},
			{Name: "transmission", Fields: []string{"transmission", "drivetrain", "gears"}},
			{Name: "performance", Fields: []string{"acceleration", "acceleration_0_60", "top_speed", "fuel_economy_city", "fuel_economy_highway", "fuel_economy_combined"}},
			{Name: "dimensions", Fields: []string{"length", "width", "height", "wheelbase", "cargo_volume", "seating_capacity", "towing_capacity"}},
			{Name: "safety", Fields: []string{"safety_rating", "airbags", "crash_test_rating"}},
			{Name: "technology", Fields: []string{"infotainment_screen", "audio_system", "connectivity"}},
			{Name: "comfort", Fields: []string{"seat_material", "climate_control", "heated_seats"}},
			{Name: "exterior", Fields: []string{"wheel_size", "exterior_color", "paint"}},
			{Name: "interior", Fields: []string{"interior_color", "cabin_volume", "interior_material"}},
		},
		CategoryWeights: map[string]float64{
			"engine":       0.20,
			"performance":  0.18,
			"safety":       0.18,
			"transmission": 0.10,
			"technology":   0.10,
			"comfort":      0.08,
			"dimensions":   0.06,
			"exterior":     0.05,
			"interior":     0.05,
		},
		DefaultCategoryWeight: 0.1,

		FeatureBuckets: []FeatureBucket{
			{Name: "safety", Keywords: []string{"safety", "airbag", "brak", "blind spot", "lane", "collision", "camera", "sensor", "assist", "stability", "cruise", "autopilot"}},
			{Name: "technology", Keywords: []string{"bluetooth", "navigation", "touchscreen", "carplay", "android auto", "wireless", "usb", "wifi", "display", "audio", "charging"}},
			{Name: "comfort", Keywords: []string{"heated", "ventilated", "leather", "climate", "seat", "keyless", "remote start", "lumbar"}},
			{Name: "performance", Keywords: []string{"turbo", "sport", "awd", "all-wheel", "4wd", "v6", "v8", "hybrid", "performance", "paddle"}},
			{Name: "exterior", Keywords: []string{"sunroof", "moonroof", "roof", "alloy", "wheel", "led", "fog", "liftgate", "tow", "bed liner", "headlight"}},
		},
		OtherBucket:         "other",
		FeatureValuePerItem: 0.1,

		HigherIsBetter: []string{
			"horsepower", "torque", "fuel_economy_city", "fuel_economy_highway", "fuel_economy_combined",
			"acceleration", "top_speed", "safety_rating", "crash_test_rating", "airbags",
			"cargo_volume", "towing_capacity",
		},
		LowerIsBetter:         []string{"price", "mileage", "acceleration_0_60"},
		SignificantDifference: 0.10,
		BaseImportance:        0.5,
		AdvantageBoost:        0.2,
		ImportanceTiers: []ImportanceTier{
			{Weight: 0.8, Keywords: []string{"blind spot", "collision", "lane", "brak", "airbag", "adaptive cruise", "all-wheel", "awd", "4wd", "stability", "autopilot"}},
			{Weight: 0.5, Keywords: []string{"bluetooth", "carplay", "android auto", "navigation", "heated", "leather", "sunroof", "moonroof", "camera", "remote start", "keyless", "premium audio", "liftgate", "tow"}},
		},
		DefaultImportance: 0.3,

		NormalizationRanges: map[string]Range{
			"horsepower":            {Min: 50, Max: 500},
			"torque":                {Min: 50, Max: 600},
			"fuel_economy_combined": {Min: 5, Max: 30},
			"fuel_economy_city":     {Min: 5, Max: 30},
			"fuel_economy_highway":  {Min: 5, Max: 40},
			"length":                {Min: 150, Max: 250},
			"acceleration_0_60":     {Min: 3, Max: 12},
			"safety_rating":         {Min: 0, Max: 5},
			"airbags":               {Min: 0, Max: 12},
			"cargo_volume":          {Min: 0, Max: 80},
			"seating_capacity":      {Min: 2, Max: 8},
			"towing_capacity":       {Min: 0, Max: 12000},
		},
		PositiveKeywords:     []string{"turbo", "hybrid", "electric", "awd", "all-wheel", "4wd", "automatic", "leather", "premium", "sport", "led", "touchscreen"},
		PositiveKeywordScore: 0.3,

		ConditionScores: map[string]float64{
			"excellent": 1.0,
			"very good": 0.9,
			"good":      0.8,
			"fair":      0.6,
			"poor":      0.4,
		},
		DefaultConditionScore: 0.7,

		MakeMultipliers: vehicle.DefaultMakeMultipliers(),
	}
}

// LoadRules overlays a YAML rules file on top of DefaultRules.
// Maps are merged key by key; lists in the file replace the defaults.
func LoadRules(path string) (*Rules, error) {
	rules := DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path) //nolint:gosec // path comes from operator configuration
	if err != nil {
		return nil, fmt.Errorf("read rules file: %w", err)
	}

	if err := yaml.Unmarshal(data, rules); err != nil {
		return nil, fmt.Errorf("parse rules file: %w", err)
	}

	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid rules file: %w", err)
	}

	return rules, nil
}

// Validate checks weights and ranges.
func (r *Rules) Validate() error {
	if len(r.SpecCategories) == 0 {
		return fmt.Errorf("spec_categories must not be empty")
	}
	if r.DefaultCategoryWeight < 0 || r.DefaultCategoryWeight > 1 {
		return fmt.Errorf("default_category_weight must be within [0,1], got %v", r.DefaultCategoryWeight)
	}
	for name, w := range r.CategoryWeights {
		if w < 0 || w > 1 {
			return fmt.Errorf("category weight %q must be within [0,1], got %v", name, w)
		}
	}
	for _, tier := range r.ImportanceTiers {
		if tier.Weight < 0 || tier.Weight > 1 {
			return fmt.Errorf("importance tier weight must be within [0,1], got %v", tier.Weight)
		}
	}
	for name, rng := range r.NormalizationRanges {
		if rng.Max <= rng.Min {
			return fmt.Errorf("normalization range %q: max must exceed min", name)
		}
	}
	for name, s := range r.ConditionScores {
		if s < 0 || s > 1 {
			return fmt.Errorf("condition score %q must be within [0,1], got %v", name, s)
		}
	}
	if r.SignificantDifference <= 0 {
		return fmt.Errorf("significant_difference must be positive, got %v", r.SignificantDifference)
	}
	return nil
}

// categoryWeight returns the importance for a spec category.
func (r *Rules) categoryWeight(category string) float64 {
	if w, ok := r.CategoryWeights[category]; ok {
		return w
	}
	return r.DefaultCategoryWeight
}

func (r *Rules) isHigherBetter(field string) bool {
	return containsString(r.HigherIsBetter, field)
}

func (r *Rules) isLowerBetter(field string) bool {
	return containsString(r.LowerIsBetter, field)
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func containsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if kw != "" && strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

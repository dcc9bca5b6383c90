// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"math"
	"strings"

	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	scoreBase            = 0.5
	specComponentWeight  = 0.4
	featureComponentWt   = 0.3
	priceComponentWeight = 0.2
	conditionComponentWt = 0.1
	neutralScore         = 0.5
)

// ScoreCalculator combines specifications, features, price and condition
// into a single overall score in [0,1].
type ScoreCalculator struct {
	rules *Rules
}

// NewScoreCalculator creates a calculator. Nil rules use DefaultRules.
func NewScoreCalculator(rules *Rules) *ScoreCalculator {
	if rules == nil {
		rules = DefaultRules()
	}
	return &ScoreCalculator{rules: rules}
}

// Calculate returns
//
//	0.5 + 0.4*spec + 0.3*features + 0.2*price + 0.1*condition
//
// clamped to [0,1].
func (s *ScoreCalculator) Calculate(rec *vehicle.Record, peers []vehicle.Record, specs []VehicleSpecification, features []VehicleFeatures) float64 {
	total := scoreBase +
		s.specScore(specs)*specComponentWeight +
		averageValueScore(features)*featureComponentWt +
		priceCompetitiveness(rec, peers)*priceComponentWeight +
		s.conditionScore(rec.Condition)*conditionComponentWt

	return round(clamp01(total), 3)
}

// specScore is the importance-weighted mean of normalized spec values.
func (s *ScoreCalculator) specScore(specs []VehicleSpecification) float64 {
	var weighted, totalWeight float64
	for _, spec := range specs {
		weighted += spec.ImportanceScore * s.NormalizeSpec(spec.Name, spec.Value)
		totalWeight += spec.ImportanceScore
	}
	if totalWeight == 0 {
		return 0
	}
	return weighted / totalWeight
}

// NormalizeSpec maps a spec value onto [0,1]. Numbers use the field's range,
// inverted for lower-is-better fields; numbers without a range are neutral.
// Strings score by positive keyword presence.
func (s *ScoreCalculator) NormalizeSpec(name string, value any) float64 {
	if b, ok := value.(bool); ok {
		if b {
			return 1
		}
		return 0
	}

	if str, ok := value.(string); ok {
		if _, numeric := vehicle.Number(str); !numeric {
			return s.keywordScore(str)
		}
	}

	n, ok := vehicle.Number(value)
	if !ok {
		return neutralScore
	}

	rng, ok := s.rules.NormalizationRanges[name]
	if !ok {
		return neutralScore
	}

	norm := clamp01((n - rng.Min) / (rng.Max - rng.Min))
	if s.rules.isLowerBetter(name) {
		norm = 1 - norm
	}
	return norm
}

func (s *ScoreCalculator) keywordScore(text string) float64 {
	lower := strings.ToLower(text)
	var score float64
	for _, kw := range s.rules.PositiveKeywords {
		if strings.Contains(lower, kw) {
			score += s.rules.PositiveKeywordScore
		}
	}
	return math.Min(score, 1.0)
}

func (s *ScoreCalculator) conditionScore(condition string) float64 {
	key := strings.ToLower(strings.TrimSpace(condition))
	if v, ok := s.rules.ConditionScores[key]; ok {
		return v
	}
	return s.rules.DefaultConditionScore
}

func averageValueScore(features []VehicleFeatures) float64 {
	if len(features) == 0 {
		return 0
	}
	var sum float64
	for _, f := range features {
		sum += f.ValueScore
	}
	return sum / float64(len(features))
}

// priceCompetitiveness is cheapest peer price / own price; the cheapest vehicle scores 1.
func priceCompetitiveness(rec *vehicle.Record, peers []vehicle.Record) float64 {
	if rec.Price <= 0 {
		return neutralScore
	}
	cheapest := rec.Price
	for i := range peers {
		if p := peers[i].Price; p > 0 && p < cheapest {
			cheapest = p
		}
	}
	return clamp01(cheapest / rec.Price)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

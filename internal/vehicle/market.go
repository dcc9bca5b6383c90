// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"context"
	"math"
	"strings"
	"time"
)

const (
	defaultBasePrice   = 35000.0
	yearlyDepreciation = 0.08
	minimumValueFactor = 0.35
	marketRangeSpread  = 0.15
)

// DefaultMakeMultipliers returns the brand price multipliers used by HeuristicMarketData.
// Keys are lowercase make names.
func DefaultMakeMultipliers() map[string]float64 {
	return map[string]float64{
		"toyota":        1.00,
		"honda":         0.98,
		"ford":          0.95,
		"chevrolet":     0.94,
		"nissan":        0.90,
		"hyundai":       0.85,
		"kia":           0.84,
		"subaru":        0.96,
		"mazda":         0.95,
		"volkswagen":    1.02,
		"tesla":         1.45,
		"lexus":         1.40,
		"bmw":           1.55,
		"audi":          1.50,
		"mercedes-benz": 1.65,
	}
}

var highDemandMakes = map[string]bool{
	"toyota": true,
	"honda":  true,
	"tesla":  true,
	"subaru": true,
	"lexus":  true,
}

// HeuristicMarketData estimates market pricing from make and model year.
// average = base * make multiplier * max(0.35, 1 - 0.08*age), range = average ± 15%.
type HeuristicMarketData struct {
	BasePrice       float64
	MakeMultipliers map[string]float64
	Now             func() time.Time
}

// NewHeuristicMarketData creates the heuristic provider. Nil multipliers use the defaults.
func NewHeuristicMarketData(multipliers map[string]float64) *HeuristicMarketData {
	if multipliers == nil {
		multipliers = DefaultMakeMultipliers()
	}
	return &HeuristicMarketData{
		BasePrice:       defaultBasePrice,
		MakeMultipliers: multipliers,
		Now:             time.Now,
	}
}

// MarketData implements MarketDataProvider.
func (h *HeuristicMarketData) MarketData(_ context.Context, rec Record, _ []Record) (MarketData, error) {
	brand := strings.ToLower(strings.TrimSpace(rec.Make))
	multiplier, ok := h.MakeMultipliers[brand]
	if !ok {
		multiplier = 1.0
	}

	age := h.age(rec.Year)
	factor := math.Max(minimumValueFactor, 1-yearlyDepreciation*float64(age))
	avg := math.Round(h.BasePrice * multiplier * factor)

	demand := DemandMedium
	switch {
	case age > 10:
		demand = DemandLow
	case highDemandMakes[brand]:
		demand = DemandHigh
	}

	trend := TrendStable
	switch {
	case age >= 8:
		trend = TrendDecreasing
	case demand == DemandHigh && age <= 3:
		trend = TrendIncreasing
	}

	return MarketData{
		Average: avg,
		Min:     math.Round(avg * (1 - marketRangeSpread)),
		Max:     math.Round(avg * (1 + marketRangeSpread)),
		Trend:   trend,
		Demand:  demand,
	}, nil
}

func (h *HeuristicMarketData) age(year int) int {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	if year <= 0 {
		return 0
	}
	age := now().Year() - year
	if age < 0 {
		return 0
	}
	return age
}

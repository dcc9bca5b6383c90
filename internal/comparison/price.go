// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"context"
	"math"

	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	belowMarketRatio = 0.95
	aboveMarketRatio = 1.05
)

// PriceAnalyzer positions a listing against market data.
type PriceAnalyzer struct {
	market vehicle.MarketDataProvider
}

// NewPriceAnalyzer creates an analyzer backed by market.
func NewPriceAnalyzer(market vehicle.MarketDataProvider) *PriceAnalyzer {
	return &PriceAnalyzer{market: market}
}

// Analyze returns the price analysis for rec. Market lookup failures are
// returned as DependencyFailure so the caller can degrade.
func (p *PriceAnalyzer) Analyze(ctx context.Context, rec *vehicle.Record, peers []vehicle.Record) (*PriceAnalysis, error) {
	if p.market == nil {
		return nil, vehicle.DependencyFailure("price.analyze", errNoMarketData)
	}

	md, err := p.market.MarketData(ctx, *rec, peers)
	if err != nil {
		return nil, vehicle.DependencyFailure("price.analyze", err)
	}

	analysis := &PriceAnalysis{
		CurrentPrice:  rec.Price,
		MarketAverage: md.Average,
		MarketRange:   [2]float64{md.Min, md.Max},
		PricePosition: PositionFor(rec.Price, md.Average),
		PriceTrend:    md.Trend,
		MarketDemand:  md.Demand,
	}

	if analysis.PricePosition == BelowMarket && md.Average > 0 {
		amount := round(md.Average-rec.Price, 2)
		pct := round((md.Average-rec.Price)/md.Average*100, 1)
		analysis.SavingsAmount = &amount
		analysis.SavingsPercentage = &pct
	}

	return analysis, nil
}

// PositionFor applies the ±5% market thresholds.
func PositionFor(price, average float64) PricePosition {
	switch {
	case price < average*belowMarketRatio:
		return BelowMarket
	case price > average*aboveMarketRatio:
		return AboveMarket
	default:
		return AtMarket
	}
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

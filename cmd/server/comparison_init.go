// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"time"

	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/vehicle"
)

// loadRules returns the built-in heuristic tables, overlaid with the
// configured rules file when one is set.
func loadRules(cfg *config.Config) (*comparison.Rules, error) {
	if cfg.Comparison.RulesPath == "" {
		return comparison.DefaultRules(), nil
	}
	rules, err := comparison.LoadRules(cfg.Comparison.RulesPath)
	if err != nil {
		return nil, err
	}
	logging.Info().Str("path", cfg.Comparison.RulesPath).Msg("Comparison rules loaded")
	return rules, nil
}

// initMarket builds the heuristic market provider from the rules' make
// multipliers. A configured current year pins the model-year reference used
// for depreciation.
func initMarket(cfg *config.Config, rules *comparison.Rules) *vehicle.HeuristicMarketData {
	market := vehicle.NewHeuristicMarketData(rules.MakeMultipliers)
	market.Now = clockFor(cfg.Comparison.CurrentYear)
	return market
}

// clockFor pins the year of time.Now to year when it is set.
func clockFor(year int) func() time.Time {
	if year <= 0 {
		return time.Now
	}
	return func() time.Time {
		now := time.Now()
		return now.AddDate(year-now.Year(), 0, 0)
	}
}

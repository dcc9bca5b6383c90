// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"strings"

	"github.com/tomtom215/otto/internal/embedding"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

// Content rubric weights.
const (
	weightBrand         = 0.30
	weightPriceInRange  = 0.25
	weightPriceCheaper  = 0.15
	weightBodyStyle     = 0.20
	weightMustHave      = 0.15
	weightQuery         = 0.10
	avoidPenaltyPerItem = 0.05

	// priceBand widens the observed price range on both sides.
	priceBand = 0.10

	maxMustHave    = 10
	maxPrefBrands  = 3
	maxPrefTypes   = 2
	maxAvoidedKeep = 50
)

// preferences is the user preference vector used by content scoring.
type preferences struct {
	brands     map[string]struct{}
	bodyStyles map[string]struct{}
	priceMin   float64
	priceMax   float64
	mustHave   []string
	avoid      map[string]struct{}
	queryTerms []string

	// topBrands and topTypes feed the preference candidate search.
	topBrands []string
	topTypes  []string
}

// buildPreferences derives preferences from a profile, feedback and the
// search query. profile may be nil for users without history.
func buildPreferences(profile *tracking.UserBehaviorProfile, avoid []string, query string) *preferences {
	p := &preferences{
		brands:     make(map[string]struct{}),
		bodyStyles: make(map[string]struct{}),
		avoid:      make(map[string]struct{}, len(avoid)),
		queryTerms: embedding.Tokenize(query),
	}
	for _, f := range avoid {
		p.avoid[strings.ToLower(f)] = struct{}{}
	}

	if profile == nil {
		return p
	}

	for brand, w := range profile.PreferredBrands {
		if w > 0 {
			p.brands[brand] = struct{}{}
		}
	}
	for style, w := range profile.PreferredVehicleTypes {
		if w > 0 {
			p.bodyStyles[style] = struct{}{}
		}
	}
	p.topBrands = profile.TopBrands(maxPrefBrands)
	p.topTypes = profile.TopVehicleTypes(maxPrefTypes)

	for _, f := range profile.TopFeatures(maxMustHave) {
		if _, avoided := p.avoid[f]; !avoided {
			p.mustHave = append(p.mustHave, f)
		}
	}

	if pr := profile.PriceRangePreference; pr != nil && pr.Samples > 0 {
		p.priceMin = pr.Min * (1 - priceBand)
		p.priceMax = pr.Max * (1 + priceBand)
	}
	return p
}

// hasPriceRange reports whether a price preference is known.
func (p *preferences) hasPriceRange() bool {
	return p.priceMax > 0
}

// filters returns the SearchVehicles filters matching the stored preferences.
func (p *preferences) filters() vehicle.SearchFilters {
	f := vehicle.SearchFilters{
		Makes:      append([]string(nil), p.topBrands...),
		BodyStyles: append([]string(nil), p.topTypes...),
	}
	if p.hasPriceRange() {
		f.MinPrice = p.priceMin
		f.MaxPrice = p.priceMax
	}
	return f
}

// contentScore applies the weighted rubric to rec. The returned flags
// report which personal signals matched.
func (p *preferences) contentScore(rec *vehicle.Record) (score float64, brandMatch, queryMatch bool) {
	if _, ok := p.brands[strings.ToLower(rec.Make)]; ok && rec.Make != "" {
		score += weightBrand
		brandMatch = true
	}

	if p.hasPriceRange() && rec.Price > 0 {
		switch {
		case rec.Price >= p.priceMin && rec.Price <= p.priceMax:
			score += weightPriceInRange
		case rec.Price < p.priceMin:
			score += weightPriceCheaper
		}
	}

	if _, ok := p.bodyStyles[strings.ToLower(rec.BodyStyle)]; ok && rec.BodyStyle != "" {
		score += weightBodyStyle
	}

	score += p.featureScore(rec)

	if len(p.queryTerms) > 0 {
		relevance := queryRelevance(rec, p.queryTerms)
		score += weightQuery * relevance
		queryMatch = relevance > 0
	}

	return clamp01(score), brandMatch, queryMatch
}

// featureScore is the must-have overlap minus the avoided feature penalty.
func (p *preferences) featureScore(rec *vehicle.Record) float64 {
	if len(p.mustHave) == 0 && len(p.avoid) == 0 {
		return 0
	}

	have := make(map[string]struct{}, len(rec.Features))
	for _, f := range rec.Features {
		have[strings.ToLower(f)] = struct{}{}
	}

	var score float64
	if len(p.mustHave) > 0 {
		matched := 0
		for _, f := range p.mustHave {
			if _, ok := have[f]; ok {
				matched++
			}
		}
		score = weightMustHave * float64(matched) / float64(len(p.mustHave))
	}

	penalty := 0.0
	for f := range p.avoid {
		if _, ok := have[f]; ok {
			penalty += avoidPenaltyPerItem
		}
	}
	if penalty > weightMustHave {
		penalty = weightMustHave
	}
	return score - penalty
}

// queryRelevance is the fraction of query terms found in the listing text.
func queryRelevance(rec *vehicle.Record, terms []string) float64 {
	text := vehicle.SearchText(rec)
	matched := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			matched++
		}
	}
	return float64(matched) / float64(len(terms))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"strings"

	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	maxProfileVehicles = 200
	maxRecentSearches  = 10

	viewWeight = 1.0
	saveWeight = 2.0
)

// foldSession adds one session's activity to p. records resolves vehicle
// ids to listings; ids it cannot resolve still count toward totals but
// contribute no brand, type, price or feature preference.
func foldSession(p *UserBehaviorProfile, s *Session, records map[string]vehicle.Record) {
	p.TotalSessions++
	p.TotalSessionSeconds += s.Duration().Seconds()
	p.TotalComparisons += len(s.Comparisons)
	p.TotalSearches += len(s.SearchQueries)

	for i := range s.Interactions {
		in := &s.Interactions[i]
		p.InteractionPatterns[string(in.Type)]++

		switch in.Type {
		case InteractionView:
			p.TotalViews += len(in.VehicleIDs)
			for _, id := range in.VehicleIDs {
				p.ViewedVehicles = addUnique(p.ViewedVehicles, id)
				if rec, ok := records[id]; ok {
					addPreference(p, &rec, viewWeight)
				}
			}
		case InteractionSave:
			p.TotalSaves += len(in.VehicleIDs)
			for _, id := range in.VehicleIDs {
				p.SavedVehicles = addUnique(p.SavedVehicles, id)
				if rec, ok := records[id]; ok {
					addPreference(p, &rec, saveWeight)
				}
			}
		case InteractionUnsave:
			for _, id := range in.VehicleIDs {
				p.SavedVehicles = remove(p.SavedVehicles, id)
			}
		case InteractionSearch:
			if in.SearchQuery != "" {
				p.RecentSearches = append(p.RecentSearches, in.SearchQuery)
			}
		}
	}

	p.ViewedVehicles = keepLast(p.ViewedVehicles, maxProfileVehicles)
	p.SavedVehicles = keepLast(p.SavedVehicles, maxProfileVehicles)
	p.RecentSearches = keepLast(p.RecentSearches, maxRecentSearches)

	if p.TotalSessions > 0 {
		p.AvgSessionDuration = p.TotalSessionSeconds / float64(p.TotalSessions)
	}
	if s.LastActivity.After(p.LastUpdated) {
		p.LastUpdated = s.LastActivity
	}
}

func addPreference(p *UserBehaviorProfile, rec *vehicle.Record, weight float64) {
	if brand := strings.ToLower(strings.TrimSpace(rec.Make)); brand != "" {
		p.PreferredBrands[brand] += weight
	}
	if style := strings.ToLower(strings.TrimSpace(rec.BodyStyle)); style != "" {
		p.PreferredVehicleTypes[style] += weight
	}
	for _, f := range rec.Features {
		if key := strings.ToLower(strings.TrimSpace(f)); key != "" {
			p.FeaturePreferences[key] += weight
		}
	}
	if rec.Price > 0 {
		if p.PriceRangePreference == nil {
			p.PriceRangePreference = &PriceRange{}
		}
		p.PriceRangePreference.add(rec.Price)
	}
}

// engagedVehicles returns the distinct vehicle ids viewed or saved across sessions.
func engagedVehicles(sessions ...*Session) []string {
	var ids []string
	seen := make(map[string]bool)
	for _, s := range sessions {
		for i := range s.Interactions {
			in := &s.Interactions[i]
			if in.Type != InteractionView && in.Type != InteractionSave {
				continue
			}
			for _, id := range in.VehicleIDs {
				if id != "" && !seen[id] {
					seen[id] = true
					ids = append(ids, id)
				}
			}
		}
	}
	return ids
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"time"
)

// InteractionType is the kind of shopper action being tracked.
type InteractionType string

const (
	InteractionView    InteractionType = "view"
	InteractionSave    InteractionType = "save"
	InteractionUnsave  InteractionType = "unsave"
	InteractionSearch  InteractionType = "search"
	InteractionCompare InteractionType = "compare"
	InteractionShare   InteractionType = "share"
	InteractionInquiry InteractionType = "inquiry"
)

var validTypes = map[InteractionType]bool{
	InteractionView:    true,
	InteractionSave:    true,
	InteractionUnsave:  true,
	InteractionSearch:  true,
	InteractionCompare: true,
	InteractionShare:   true,
	InteractionInquiry: true,
}

// ParseInteractionType returns the type for s and whether it is known.
func ParseInteractionType(s string) (InteractionType, bool) {
	t := InteractionType(s)
	return t, validTypes[t]
}

// InteractionEvent is an untrusted tracking payload. Timestamp is RFC 3339;
// empty means now.
type InteractionEvent struct {
	UserID      string         `json:"user_id"`
	SessionID   string         `json:"session_id,omitempty"`
	Type        string         `json:"interaction_type"`
	VehicleIDs  []string       `json:"vehicle_ids,omitempty"`
	SearchQuery string         `json:"search_query,omitempty"`
	Timestamp   string         `json:"timestamp,omitempty"`
	Metadata    map[string]any `json:"metadata,omitempty"`
}

// Interaction is a validated event stored in a session.
type Interaction struct {
	Type        InteractionType `json:"type"`
	VehicleIDs  []string        `json:"vehicle_ids,omitempty"`
	SearchQuery string          `json:"search_query,omitempty"`
	Timestamp   time.Time       `json:"timestamp"`
	Metadata    map[string]any  `json:"metadata,omitempty"`
}

// Session is a bounded window of one user's interactions.
type Session struct {
	UserID         string        `json:"user_id"`
	SessionID      string        `json:"session_id"`
	StartTime      time.Time     `json:"start_time"`
	LastActivity   time.Time     `json:"last_activity"`
	Interactions   []Interaction `json:"interactions"`
	ViewedVehicles []string      `json:"viewed_vehicles"`
	SavedVehicles  []string      `json:"saved_vehicles"`
	SearchQueries  []string      `json:"search_queries"`
	Comparisons    [][]string    `json:"comparisons"`
}

// Expired reports whether the session has been idle for longer than timeout.
func (s *Session) Expired(now time.Time, timeout time.Duration) bool {
	return now.Sub(s.LastActivity) > timeout
}

// Duration is the time between the first and the last activity.
func (s *Session) Duration() time.Duration {
	return s.LastActivity.Sub(s.StartTime)
}

// Clone returns a deep copy so stores never share mutable state with callers.
func (s *Session) Clone() *Session {
	c := *s
	c.Interactions = make([]Interaction, len(s.Interactions))
	for i, in := range s.Interactions {
		in.VehicleIDs = append([]string(nil), in.VehicleIDs...)
		if in.Metadata != nil {
			md := make(map[string]any, len(in.Metadata))
			for k, v := range in.Metadata {
				md[k] = v
			}
			in.Metadata = md
		}
		c.Interactions[i] = in
	}
	c.ViewedVehicles = append([]string(nil), s.ViewedVehicles...)
	c.SavedVehicles = append([]string(nil), s.SavedVehicles...)
	c.SearchQueries = append([]string(nil), s.SearchQueries...)
	c.Comparisons = make([][]string, len(s.Comparisons))
	for i, ids := range s.Comparisons {
		c.Comparisons[i] = append([]string(nil), ids...)
	}
	return &c
}

// apply records in and updates the session side channels.
func (s *Session) apply(in *Interaction) {
	s.Interactions = append(s.Interactions, *in)

	switch in.Type {
	case InteractionView:
		for _, id := range in.VehicleIDs {
			s.ViewedVehicles = addUnique(s.ViewedVehicles, id)
		}
	case InteractionSave:
		for _, id := range in.VehicleIDs {
			s.SavedVehicles = addUnique(s.SavedVehicles, id)
		}
	case InteractionUnsave:
		for _, id := range in.VehicleIDs {
			s.SavedVehicles = remove(s.SavedVehicles, id)
		}
	case InteractionSearch:
		if in.SearchQuery != "" {
			s.SearchQueries = append(s.SearchQueries, in.SearchQuery)
		}
	case InteractionCompare:
		if len(in.VehicleIDs) > 0 {
			s.Comparisons = append(s.Comparisons, append([]string(nil), in.VehicleIDs...))
		}
	}
}

// PriceRange summarises the prices of vehicles a user engaged with.
type PriceRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Average float64 `json:"average"`
	Samples int     `json:"samples"`
}

func (p *PriceRange) add(price float64) {
	if price <= 0 {
		return
	}
	if p.Samples == 0 || price < p.Min {
		p.Min = price
	}
	if price > p.Max {
		p.Max = price
	}
	p.Average = (p.Average*float64(p.Samples) + price) / float64(p.Samples+1)
	p.Samples++
}

// UserBehaviorProfile is the cross-session summary of a user's activity.
// Preference maps hold lowercase keys with weighted engagement counts.
type UserBehaviorProfile struct {
	UserID                string             `json:"user_id"`
	TotalSessions         int                `json:"total_sessions"`
	TotalViews            int                `json:"total_views"`
	TotalSaves            int                `json:"total_saves"`
	TotalComparisons      int                `json:"total_comparisons"`
	TotalSearches         int                `json:"total_searches"`
	TotalSessionSeconds   float64            `json:"total_session_seconds"`
	AvgSessionDuration    float64            `json:"avg_session_duration"`
	PreferredBrands       map[string]float64 `json:"preferred_brands"`
	PreferredVehicleTypes map[string]float64 `json:"preferred_vehicle_types"`
	PriceRangePreference  *PriceRange        `json:"price_range_preference,omitempty"`
	FeaturePreferences    map[string]float64 `json:"feature_preferences"`
	InteractionPatterns   map[string]int     `json:"interaction_patterns"`
	ViewedVehicles        []string           `json:"viewed_vehicles"`
	SavedVehicles         []string           `json:"saved_vehicles"`
	RecentSearches        []string           `json:"recent_searches"`
	LastUpdated           time.Time          `json:"last_updated"`
}

// NewProfile returns an empty profile for userID.
func NewProfile(userID string) *UserBehaviorProfile {
	return &UserBehaviorProfile{
		UserID:                userID,
		PreferredBrands:       make(map[string]float64),
		PreferredVehicleTypes: make(map[string]float64),
		FeaturePreferences:    make(map[string]float64),
		InteractionPatterns:   make(map[string]int),
		ViewedVehicles:        []string{},
		SavedVehicles:         []string{},
		RecentSearches:        []string{},
	}
}

// Clone returns a deep copy.
func (p *UserBehaviorProfile) Clone() *UserBehaviorProfile {
	c := *p
	c.PreferredBrands = cloneWeights(p.PreferredBrands)
	c.PreferredVehicleTypes = cloneWeights(p.PreferredVehicleTypes)
	c.FeaturePreferences = cloneWeights(p.FeaturePreferences)
	c.InteractionPatterns = make(map[string]int, len(p.InteractionPatterns))
	for k, v := range p.InteractionPatterns {
		c.InteractionPatterns[k] = v
	}
	if p.PriceRangePreference != nil {
		pr := *p.PriceRangePreference
		c.PriceRangePreference = &pr
	}
	c.ViewedVehicles = append([]string{}, p.ViewedVehicles...)
	c.SavedVehicles = append([]string{}, p.SavedVehicles...)
	c.RecentSearches = append([]string{}, p.RecentSearches...)
	return &c
}

// TopBrands returns up to n brands ordered by weight.
func (p *UserBehaviorProfile) TopBrands(n int) []string {
	return topKeys(p.PreferredBrands, n)
}

// TopVehicleTypes returns up to n body styles ordered by weight.
func (p *UserBehaviorProfile) TopVehicleTypes(n int) []string {
	return topKeys(p.PreferredVehicleTypes, n)
}

// TopFeatures returns up to n features ordered by weight.
func (p *UserBehaviorProfile) TopFeatures(n int) []string {
	return topKeys(p.FeaturePreferences, n)
}

// InteractionStats is a windowed aggregation over a user's sessions.
type InteractionStats struct {
	UserID               string         `json:"user_id"`
	PeriodDays           int            `json:"period_days"`
	Sessions             int            `json:"sessions"`
	TotalInteractions    int            `json:"total_interactions"`
	InteractionTypes     map[string]int `json:"interaction_types"`
	DailyActivity        map[string]int `json:"daily_activity"`
	UniqueVehiclesViewed int            `json:"unique_vehicles_viewed"`
	UniqueVehiclesSaved  int            `json:"unique_vehicles_saved"`
	TotalComparisons     int            `json:"total_comparisons"`
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"fmt"
	"time"
)

// GetInteractionStats aggregates the user's sessions that started within
// the last days days, active and archived alike. days below 1 is treated as 1.
func (t *Tracker) GetInteractionStats(ctx context.Context, userID string, days int) (*InteractionStats, error) {
	if days < 1 {
		days = 1
	}
	since := t.now().Add(-time.Duration(days) * 24 * time.Hour)

	active, err := t.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	archived, err := t.archive.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list archived sessions: %w", err)
	}

	stats := &InteractionStats{
		UserID:           userID,
		PeriodDays:       days,
		InteractionTypes: make(map[string]int),
		DailyActivity:    make(map[string]int),
	}
	viewed := make(map[string]bool)
	saved := make(map[string]bool)
	seen := make(map[string]bool, len(active)+len(archived))

	for _, s := range append(archived, active...) {
		// A session can briefly be in both stores while it is being ended.
		if seen[s.SessionID] || s.StartTime.Before(since) {
			continue
		}
		seen[s.SessionID] = true
		stats.Sessions++

		for i := range s.Interactions {
			in := &s.Interactions[i]
			stats.TotalInteractions++
			stats.InteractionTypes[string(in.Type)]++
			stats.DailyActivity[in.Timestamp.UTC().Format("2006-01-02")]++

			switch in.Type {
			case InteractionView:
				for _, id := range in.VehicleIDs {
					viewed[id] = true
				}
			case InteractionSave:
				for _, id := range in.VehicleIDs {
					saved[id] = true
				}
			}
		}
		stats.TotalComparisons += len(s.Comparisons)
	}

	stats.UniqueVehiclesViewed = len(viewed)
	stats.UniqueVehiclesSaved = len(saved)
	return stats, nil
}

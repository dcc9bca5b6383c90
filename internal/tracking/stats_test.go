// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"testing"
	"time"
)

func TestGetInteractionStats(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	tr := newTestTracker(clock)
	start := clock.Now()

	// Ten days ago: a session that only a wide window should see.
	tr.TrackInteraction(ctx, view("user-1", "veh-f150-2021"))
	tr.TrackInteraction(ctx, InteractionEvent{UserID: "user-1", Type: "save", VehicleIDs: []string{"veh-f150-2021"}})
	clock.Advance(10 * 24 * time.Hour)

	tr.TrackInteraction(ctx, view("user-1", "veh-camry-2023", "veh-accord-2023"))
	tr.TrackInteraction(ctx, view("user-1", "veh-camry-2023"))
	tr.TrackInteraction(ctx, InteractionEvent{UserID: "user-1", Type: "compare", VehicleIDs: []string{"veh-camry-2023", "veh-accord-2023"}})
	tr.TrackInteraction(ctx, view("user-2", "veh-rav4-2022"))

	tests := []struct {
		name             string
		days             int
		wantSessions     int
		wantInteractions int
		wantViewed       int
		wantSaved        int
		wantComparisons  int
		wantDays         int
	}{
		{"last week", 7, 1, 3, 2, 0, 1, 1},
		{"last month", 30, 2, 5, 3, 1, 1, 2},
		{"zero days clamps to one", 0, 1, 3, 2, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats, err := tr.GetInteractionStats(ctx, "user-1", tt.days)
			if err != nil {
				t.Fatalf("GetInteractionStats() error = %v", err)
			}
			if stats.Sessions != tt.wantSessions {
				t.Errorf("Sessions = %d, want %d", stats.Sessions, tt.wantSessions)
			}
			if stats.TotalInteractions != tt.wantInteractions {
				t.Errorf("TotalInteractions = %d, want %d", stats.TotalInteractions, tt.wantInteractions)
			}
			if stats.UniqueVehiclesViewed != tt.wantViewed {
				t.Errorf("UniqueVehiclesViewed = %d, want %d", stats.UniqueVehiclesViewed, tt.wantViewed)
			}
			if stats.UniqueVehiclesSaved != tt.wantSaved {
				t.Errorf("UniqueVehiclesSaved = %d, want %d", stats.UniqueVehiclesSaved, tt.wantSaved)
			}
			if stats.TotalComparisons != tt.wantComparisons {
				t.Errorf("TotalComparisons = %d, want %d", stats.TotalComparisons, tt.wantComparisons)
			}
			if len(stats.DailyActivity) != tt.wantDays {
				t.Errorf("DailyActivity = %v, want %d days", stats.DailyActivity, tt.wantDays)
			}
		})
	}

	stats, _ := tr.GetInteractionStats(ctx, "user-1", 30)
	if stats.InteractionTypes["view"] != 3 || stats.InteractionTypes["save"] != 1 || stats.InteractionTypes["compare"] != 1 {
		t.Errorf("InteractionTypes = %v", stats.InteractionTypes)
	}
	if stats.DailyActivity[start.Format("2006-01-02")] != 2 {
		t.Errorf("DailyActivity = %v", stats.DailyActivity)
	}
}

func TestGetInteractionStats_UnknownUser(t *testing.T) {
	t.Parallel()

	tr := newTestTracker(newFakeClock())
	stats, err := tr.GetInteractionStats(context.Background(), "ghost", 7)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Sessions != 0 || stats.TotalInteractions != 0 {
		t.Errorf("stats = %+v, want empty", stats)
	}
}

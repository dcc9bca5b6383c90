// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/otto/internal/vehicle"
)

type fixedMarket struct {
	avg float64
	err error
}

func (m fixedMarket) MarketData(context.Context, vehicle.Record, []vehicle.Record) (vehicle.MarketData, error) {
	return vehicle.MarketData{Average: m.avg}, m.err
}

func observe(a *ActivitySignals, userID string, typ InteractionType, ids ...string) {
	a.Observe(userID, Interaction{Type: typ, VehicleIDs: ids})
}

func TestActivitySignals_TrendingScore(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	a := NewActivitySignals(WithSignalClock(clock.Now))

	// Before any activity the hash fallback answers.
	want, _ := vehicle.HashTrending{}.TrendingScore(ctx, "veh-camry-2023")
	got, err := a.TrendingScore(ctx, "veh-camry-2023")
	if err != nil || got != want {
		t.Errorf("fallback TrendingScore() = (%v, %v), want %v", got, err, want)
	}

	observe(a, "u1", InteractionView, "veh-camry-2023", "veh-accord-2023")
	observe(a, "u2", InteractionView, "veh-camry-2023")
	observe(a, "u2", InteractionSave, "veh-accord-2023")
	observe(a, "u3", InteractionSearch)

	tests := []struct {
		id   string
		want float64
	}{
		{"veh-accord-2023", 1.0}, // 1 view + 3 for the save
		{"veh-camry-2023", 0.5},  // 2 views
		{"veh-rav4-2022", 0},
	}
	for _, tt := range tests {
		got, err := a.TrendingScore(ctx, tt.id)
		if err != nil {
			t.Fatal(err)
		}
		if math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("TrendingScore(%s) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestActivitySignals_WindowExpiry(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	a := NewActivitySignals(WithSignalClock(clock.Now), WithSignalWindow(time.Hour))

	observe(a, "u1", InteractionSave, "veh-camry-2023")
	clock.Advance(30 * time.Minute)
	observe(a, "u1", InteractionView, "veh-accord-2023")
	clock.Advance(45 * time.Minute)

	// The save fell out of the window; accord is now the busiest vehicle.
	if got, _ := a.TrendingScore(ctx, "veh-accord-2023"); got != 1 {
		t.Errorf("accord score = %v, want 1", got)
	}
	if got, _ := a.TrendingScore(ctx, "veh-camry-2023"); got != 0 {
		t.Errorf("camry score = %v, want 0", got)
	}
}

func TestActivitySignals_UrgencySignals(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	a := NewActivitySignals(WithSignalClock(clock.Now), WithMarketData(fixedMarket{avg: 32000}))

	for _, u := range []string{"u1", "u2", "u3"} {
		observe(a, u, InteractionView, "veh-camry-2023")
	}
	observe(a, "u1", InteractionSave, "veh-camry-2023")
	observe(a, "u2", InteractionSave, "veh-camry-2023")
	observe(a, "u2", InteractionSave, "veh-camry-2023")

	camry := vehicle.Record{ID: "veh-camry-2023", Price: 28500, Mileage: 12000}
	got, err := a.UrgencySignals(ctx, camry)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{
		"Viewed 3 times in the last 24 hours",
		"Saved by 2 shoppers",
		"Priced below market",
		"Low mileage",
	}
	if len(got) != len(want) {
		t.Fatalf("UrgencySignals() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("signal[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	quiet := vehicle.Record{ID: "veh-f150-2021", Price: 36700, Mileage: 41000}
	got, _ = a.UrgencySignals(ctx, quiet)
	if len(got) != 0 {
		t.Errorf("quiet vehicle signals = %v, want none", got)
	}
}

func TestActivitySignals_MarketFailureIgnored(t *testing.T) {
	t.Parallel()

	a := NewActivitySignals(WithMarketData(fixedMarket{err: errors.New("market down")}))
	observe(a, "u1", InteractionView, "veh-camry-2023")

	got, err := a.UrgencySignals(context.Background(), vehicle.Record{ID: "veh-camry-2023", Price: 1000, Mileage: 90000})
	if err != nil {
		t.Fatalf("UrgencySignals() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("signals = %v, want none", got)
	}
}

func TestActivitySignals_UrgencyFallback(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clock := newFakeClock()
	a := NewActivitySignals(WithFallback(vehicle.HashTrending{}, vehicle.HashUrgency{Now: clock.Now}))

	rec := vehicle.Record{ID: "veh-civic-2024", Year: 2026, Mileage: 3000}
	want, _ := vehicle.HashUrgency{Now: clock.Now}.UrgencySignals(ctx, rec)
	got, _ := a.UrgencySignals(ctx, rec)
	if len(got) != len(want) {
		t.Errorf("fallback signals = %v, want %v", got, want)
	}
}

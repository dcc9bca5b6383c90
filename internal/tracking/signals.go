// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	defaultSignalWindow = 24 * time.Hour
	maxSignalEvents     = 100000

	saveTrendWeight    = 3.0
	minViewsForSignal  = 3
	minSaversForSignal = 2
	belowMarketRatio   = 0.95
	lowMileage         = 15000
)

type activityEvent struct {
	at        time.Time
	userID    string
	vehicleID string
	typ       InteractionType
}

// ActivitySignals derives trending scores and urgency indicators from
// interactions observed in a trailing window. When nothing has been
// observed it defers to the fallback providers.
type ActivitySignals struct {
	window   time.Duration
	market   vehicle.MarketDataProvider
	trending vehicle.TrendingScoreProvider
	urgency  vehicle.UrgencySignalProvider
	now      func() time.Time

	mu     sync.Mutex
	events []activityEvent
	scores map[string]float64 // nil when stale
}

// SignalsOption configures ActivitySignals.
type SignalsOption func(*ActivitySignals)

// WithMarketData enables the "Priced below market" indicator.
func WithMarketData(p vehicle.MarketDataProvider) SignalsOption {
	return func(a *ActivitySignals) { a.market = p }
}

// WithFallback sets the providers used before any activity is observed.
func WithFallback(trending vehicle.TrendingScoreProvider, urgency vehicle.UrgencySignalProvider) SignalsOption {
	return func(a *ActivitySignals) {
		a.trending = trending
		a.urgency = urgency
	}
}

// WithSignalWindow sets the trailing window. The default is 24 hours.
func WithSignalWindow(d time.Duration) SignalsOption {
	return func(a *ActivitySignals) { a.window = d }
}

// WithSignalClock overrides time.Now.
func WithSignalClock(now func() time.Time) SignalsOption {
	return func(a *ActivitySignals) { a.now = now }
}

// NewActivitySignals creates an empty signal tracker.
func NewActivitySignals(opts ...SignalsOption) *ActivitySignals {
	a := &ActivitySignals{
		window:   defaultSignalWindow,
		trending: vehicle.HashTrending{},
		urgency:  vehicle.HashUrgency{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Observe implements Observer. Only views and saves carry signal.
func (a *ActivitySignals) Observe(userID string, in Interaction) {
	if in.Type != InteractionView && in.Type != InteractionSave {
		return
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	at := a.now()
	for _, id := range in.VehicleIDs {
		a.events = append(a.events, activityEvent{at: at, userID: userID, vehicleID: id, typ: in.Type})
	}
	a.pruneLocked(at)
	a.scores = nil
}

func (a *ActivitySignals) pruneLocked(now time.Time) {
	cutoff := now.Add(-a.window)
	drop := 0
	for drop < len(a.events) && a.events[drop].at.Before(cutoff) {
		drop++
	}
	if over := len(a.events) - drop - maxSignalEvents; over > 0 {
		drop += over
	}
	if drop > 0 {
		a.events = append(a.events[:0], a.events[drop:]...)
		a.scores = nil
	}
}

// TrendingScore implements vehicle.TrendingScoreProvider: views plus three
// times saves within the window, normalized by the busiest vehicle.
func (a *ActivitySignals) TrendingScore(ctx context.Context, vehicleID string) (float64, error) {
	a.mu.Lock()
	a.pruneLocked(a.now())
	if len(a.events) == 0 {
		a.mu.Unlock()
		return a.trending.TrendingScore(ctx, vehicleID)
	}
	if a.scores == nil {
		a.scores = a.computeScoresLocked()
	}
	score := a.scores[vehicleID]
	a.mu.Unlock()
	return score, nil
}

func (a *ActivitySignals) computeScoresLocked() map[string]float64 {
	raw := make(map[string]float64)
	peak := 0.0
	for i := range a.events {
		ev := &a.events[i]
		w := 1.0
		if ev.typ == InteractionSave {
			w = saveTrendWeight
		}
		raw[ev.vehicleID] += w
		if raw[ev.vehicleID] > peak {
			peak = raw[ev.vehicleID]
		}
	}
	for id, v := range raw {
		raw[id] = v / peak
	}
	return raw
}

// UrgencySignals implements vehicle.UrgencySignalProvider.
func (a *ActivitySignals) UrgencySignals(ctx context.Context, rec vehicle.Record) ([]string, error) {
	a.mu.Lock()
	a.pruneLocked(a.now())
	if len(a.events) == 0 {
		a.mu.Unlock()
		return a.urgency.UrgencySignals(ctx, rec)
	}
	views := 0
	savers := make(map[string]bool)
	for i := range a.events {
		ev := &a.events[i]
		if ev.vehicleID != rec.ID {
			continue
		}
		switch ev.typ {
		case InteractionView:
			views++
		case InteractionSave:
			savers[ev.userID] = true
		}
	}
	a.mu.Unlock()

	signals := make([]string, 0, 4)
	if views >= minViewsForSignal {
		signals = append(signals, fmt.Sprintf("Viewed %d times in the last 24 hours", views))
	}
	if len(savers) >= minSaversForSignal {
		signals = append(signals, fmt.Sprintf("Saved by %d shoppers", len(savers)))
	}
	if a.market != nil && rec.Price > 0 {
		md, err := a.market.MarketData(ctx, rec, nil)
		if err == nil && md.Average > 0 && rec.Price < md.Average*belowMarketRatio {
			signals = append(signals, "Priced below market")
		}
	}
	if rec.Mileage > 0 && rec.Mileage < lowMileage {
		signals = append(signals, "Low mileage")
	}
	return signals, nil
}

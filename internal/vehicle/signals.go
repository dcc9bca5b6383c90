// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"context"
	"hash/fnv"
	"time"
)

// HashTrending derives a stable pseudo-score from the vehicle id.
// It is the fallback when no activity data is available.
type HashTrending struct{}

// TrendingScore implements TrendingScoreProvider.
func (HashTrending) TrendingScore(_ context.Context, vehicleID string) (float64, error) {
	return float64(hash32(vehicleID)%1000) / 1000, nil
}

// HashUrgency derives urgency indicators from the listing itself.
type HashUrgency struct {
	Now func() time.Time
}

// UrgencySignals implements UrgencySignalProvider.
func (h HashUrgency) UrgencySignals(_ context.Context, rec Record) ([]string, error) {
	now := time.Now
	if h.Now != nil {
		now = h.Now
	}

	signals := make([]string, 0, 3)
	if rec.Mileage > 0 && rec.Mileage < 15000 {
		signals = append(signals, "Low mileage")
	}
	if rec.Year >= now().Year()-1 {
		signals = append(signals, "Recent model year")
	}
	if hash32(rec.ID)%3 == 0 {
		signals = append(signals, "High interest listing")
	}
	return signals, nil
}

func hash32(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/recommend"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

// Comparer compares vehicles.
type Comparer interface {
	Compare(ctx context.Context, req comparison.Request) (*comparison.Result, error)
}

// Recommender produces recommendations and absorbs feedback.
type Recommender interface {
	Recommend(ctx context.Context, req recommend.Request) (*recommend.Result, error)
	ProcessFeedback(ctx context.Context, fb recommend.Feedback) bool
	Stats() recommend.Stats
}

// InteractionTracker records shopper activity and serves profiles.
type InteractionTracker interface {
	TrackInteraction(ctx context.Context, ev tracking.InteractionEvent) bool
	TrackComparison(ctx context.Context, userID string, vehicleIDs []string, comparisonID string, processingTime time.Duration) bool
	GetUserProfile(ctx context.Context, userID string) (*tracking.UserBehaviorProfile, error)
	GetInteractionStats(ctx context.Context, userID string, days int) (*tracking.InteractionStats, error)
}

// VehicleLookup resolves a single catalog entry.
type VehicleLookup interface {
	Get(ctx context.Context, id string) (vehicle.Record, error)
}

// ReadinessCheck reports whether a dependency can serve traffic.
type ReadinessCheck func(ctx context.Context) error

// Dependencies are the services the handlers call.
type Dependencies struct {
	Comparer    Comparer
	Recommender Recommender
	Tracker     InteractionTracker
	Vehicles    VehicleLookup

	// Readiness checks run by /health/ready, keyed by dependency name.
	Readiness map[string]ReadinessCheck

	// RequestTimeout bounds each domain call. Zero means no extra bound.
	RequestTimeout time.Duration
	Logger         zerolog.Logger
	Version        string
}

// Handler serves the API endpoints.
type Handler struct {
	deps      Dependencies
	logger    zerolog.Logger
	startTime time.Time
}

// NewHandler creates a handler over deps.
//
//nolint:gocritic // hugeParam: deps is copied once at construction
func NewHandler(deps Dependencies) *Handler {
	return &Handler{
		deps:      deps,
		logger:    deps.Logger.With().Str("component", "api").Logger(),
		startTime: time.Now(),
	}
}

// requestContext bounds ctx by the configured request timeout.
func (h *Handler) requestContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if h.deps.RequestTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, h.deps.RequestTimeout)
}

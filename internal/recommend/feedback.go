// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/tomtom215/otto/internal/events"
	"github.com/tomtom215/otto/internal/metrics"
)

const (
	maxCommentLength   = 1000
	maxRejectedPerUser = 200
)

// ProcessFeedback records shopper feedback. Malformed feedback is logged
// and ignored; the return value reports whether it was accepted.
//
// Negative feedback removes the vehicle from future recommendations and
// penalises its features. Accepted feedback is published and invalidates
// the user's cached recommendations.
//
//nolint:gocritic // hugeParam: feedback passed by value for immutability
func (e *Engine) ProcessFeedback(ctx context.Context, fb Feedback) bool {
	fb.UserID = strings.TrimSpace(fb.UserID)
	fb.VehicleID = strings.TrimSpace(fb.VehicleID)
	fb.FeedbackType = strings.ToLower(strings.TrimSpace(fb.FeedbackType))

	logger := e.logger.With().
		Str("user_id", fb.UserID).
		Str("vehicle_id", fb.VehicleID).
		Str("feedback_type", fb.FeedbackType).
		Logger()

	if err := validateFeedback(&fb); err != nil {
		e.feedbackRejected.Add(1)
		metrics.RecordFeedback(fb.FeedbackType, false)
		logger.Debug().Err(err).Msg("feedback ignored")
		return false
	}

	e.applyFeedback(ctx, &fb)

	if e.publisher != nil {
		payload := events.FeedbackReceived{
			UserID:       fb.UserID,
			VehicleID:    fb.VehicleID,
			FeedbackType: fb.FeedbackType,
			Rating:       fb.Rating,
			Timestamp:    e.now().UTC(),
		}
		if err := e.publisher.Publish(ctx, events.TopicFeedbackReceived, payload); err != nil {
			logger.Debug().Err(err).Msg("publish feedback failed")
		}
	}

	if err := e.InvalidateUser(ctx, fb.UserID); err != nil {
		logger.Warn().Err(err).Msg("failed to invalidate recommendation cache")
	}

	e.feedbackAccepted.Add(1)
	metrics.RecordFeedback(fb.FeedbackType, true)
	logger.Info().Int("rating", fb.Rating).Msg("feedback recorded")
	return true
}

func validateFeedback(fb *Feedback) error {
	if fb.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if fb.VehicleID == "" {
		return fmt.Errorf("vehicle_id is required")
	}
	if !validFeedback[FeedbackType(fb.FeedbackType)] {
		return fmt.Errorf("unknown feedback type %q", fb.FeedbackType)
	}
	if fb.Rating != 0 && (fb.Rating < 1 || fb.Rating > 5) {
		return fmt.Errorf("rating must be between 1 and 5, got %d", fb.Rating)
	}
	if len(fb.Comment) > maxCommentLength {
		return fmt.Errorf("comment exceeds %d characters", maxCommentLength)
	}
	return nil
}

// applyFeedback updates the user's feedback memory.
func (e *Engine) applyFeedback(ctx context.Context, fb *Feedback) {
	switch FeedbackType(fb.FeedbackType) {
	case FeedbackDislike, FeedbackNotInterested:
		var features []string
		if recs, err := e.vehicles.GetVehiclesByIDs(ctx, []string{fb.VehicleID}); err == nil && len(recs) > 0 {
			features = recs[0].Features
		}
		e.feedback.reject(fb.UserID, fb.VehicleID, features)
	case FeedbackLike, FeedbackSaved, FeedbackPurchased:
		e.feedback.accept(fb.UserID, fb.VehicleID)
	}
}

// feedbackMemory keeps each user's rejected vehicles and the features they
// had, so later requests can exclude and penalise them.
type feedbackMemory struct {
	mu    sync.RWMutex
	users map[string]*userFeedback
}

type userFeedback struct {
	rejected []string
	avoid    map[string]int
}

func newFeedbackMemory() *feedbackMemory {
	return &feedbackMemory{users: make(map[string]*userFeedback)}
}

func (m *feedbackMemory) reject(userID, vehicleID string, features []string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[userID]
	if u == nil {
		u = &userFeedback{avoid: make(map[string]int)}
		m.users[userID] = u
	}

	for _, id := range u.rejected {
		if id == vehicleID {
			return
		}
	}
	u.rejected = append(u.rejected, vehicleID)
	if len(u.rejected) > maxRejectedPerUser {
		u.rejected = u.rejected[len(u.rejected)-maxRejectedPerUser:]
	}

	for _, f := range features {
		f = strings.ToLower(f)
		if _, known := u.avoid[f]; !known && len(u.avoid) >= maxAvoidedKeep {
			continue
		}
		u.avoid[f]++
	}
}

func (m *feedbackMemory) accept(userID, vehicleID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := m.users[userID]
	if u == nil {
		return
	}
	for i, id := range u.rejected {
		if id == vehicleID {
			u.rejected = append(u.rejected[:i], u.rejected[i+1:]...)
			return
		}
	}
}

// exclusions returns the user's rejected vehicles and avoided features.
// A feature is avoided once it appeared on two rejected vehicles.
func (m *feedbackMemory) exclusions(userID string) (map[string]struct{}, []string) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u := m.users[userID]
	if u == nil {
		return nil, nil
	}

	rejected := make(map[string]struct{}, len(u.rejected))
	for _, id := range u.rejected {
		rejected[id] = struct{}{}
	}
	var avoid []string
	for f, n := range u.avoid {
		if n >= 2 {
			avoid = append(avoid, f)
		}
	}
	return rejected, avoid
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const (
	TopicInteractionTracked = "interaction.tracked"
	TopicFeedbackReceived   = "feedback.received"
)

// InteractionTracked is published for every accepted interaction.
type InteractionTracked struct {
	UserID          string    `json:"user_id"`
	SessionID       string    `json:"session_id"`
	InteractionType string    `json:"interaction_type"`
	VehicleIDs      []string  `json:"vehicle_ids,omitempty"`
	SearchQuery     string    `json:"search_query,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
}

// FeedbackReceived is published for every accepted feedback record.
type FeedbackReceived struct {
	UserID       string    `json:"user_id"`
	VehicleID    string    `json:"vehicle_id"`
	FeedbackType string    `json:"feedback_type"`
	Rating       int       `json:"rating,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// userIDOf extracts the user id used as message metadata.
func userIDOf(payload any) string {
	switch p := payload.(type) {
	case InteractionTracked:
		return p.UserID
	case *InteractionTracked:
		return p.UserID
	case FeedbackReceived:
		return p.UserID
	case *FeedbackReceived:
		return p.UserID
	}
	return ""
}

// Decode unmarshals a message payload into v.
func Decode(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode event: %w", err)
	}
	return nil
}

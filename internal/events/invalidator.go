// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package events

import (
	"context"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/metrics"
)

// Invalidator drops cached state for a user.
type Invalidator interface {
	InvalidateUser(ctx context.Context, userID string) error
}

// interactions that change what a user should be recommended.
var invalidatingInteractions = map[string]bool{
	"save":    true,
	"unsave":  true,
	"compare": true,
}

// CacheInvalidator consumes interaction and feedback events and invalidates
// the affected user's recommendation cache.
type CacheInvalidator struct {
	cache  Invalidator
	logger zerolog.Logger
}

// NewCacheInvalidator creates a consumer for cache.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewCacheInvalidator(cache Invalidator, logger zerolog.Logger) *CacheInvalidator {
	return &CacheInvalidator{cache: cache, logger: logger}
}

// Register attaches both handlers to router.
func (c *CacheInvalidator) Register(router *Router, sub message.Subscriber) {
	router.AddConsumerHandler("cache-invalidator-interactions", TopicInteractionTracked, sub, c.HandleInteraction)
	router.AddConsumerHandler("cache-invalidator-feedback", TopicFeedbackReceived, sub, c.HandleFeedback)
}

// HandleInteraction invalidates on save, unsave and compare interactions.
// Undecodable messages are dropped, since redelivery cannot fix them.
func (c *CacheInvalidator) HandleInteraction(msg *message.Message) error {
	var ev InteractionTracked
	if err := Decode(msg.Payload, &ev); err != nil {
		c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed interaction event")
		metrics.RecordEventConsumed(TopicInteractionTracked, "invalid")
		return nil
	}
	if !invalidatingInteractions[ev.InteractionType] {
		metrics.RecordEventConsumed(TopicInteractionTracked, "ignored")
		return nil
	}
	return c.invalidate(msg.Context(), TopicInteractionTracked, ev.UserID)
}

// HandleFeedback invalidates on every feedback record.
func (c *CacheInvalidator) HandleFeedback(msg *message.Message) error {
	var ev FeedbackReceived
	if err := Decode(msg.Payload, &ev); err != nil {
		c.logger.Warn().Err(err).Str("message_id", msg.UUID).Msg("Dropping malformed feedback event")
		metrics.RecordEventConsumed(TopicFeedbackReceived, "invalid")
		return nil
	}
	return c.invalidate(msg.Context(), TopicFeedbackReceived, ev.UserID)
}

func (c *CacheInvalidator) invalidate(ctx context.Context, topic, userID string) error {
	if userID == "" {
		metrics.RecordEventConsumed(topic, "ignored")
		return nil
	}
	if err := c.cache.InvalidateUser(ctx, userID); err != nil {
		metrics.RecordEventConsumed(topic, "error")
		return fmt.Errorf("invalidate recommendations for %s: %w", userID, err)
	}
	c.logger.Debug().Str("user_id", userID).Str("topic", topic).Msg("Invalidated cached recommendations")
	metrics.RecordEventConsumed(topic, "success")
	return nil
}

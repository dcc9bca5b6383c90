// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// SessionSweeper is satisfied by *tracking.Tracker.
type SessionSweeper interface {
	// CleanupExpiredSessions folds every inactive session into its owner's
	// profile, removes it, and returns how many were removed.
	CleanupExpiredSessions(ctx context.Context) (int, error)
}

// SessionCleanupService sweeps expired sessions on a fixed interval. A failed
// sweep is logged and retried on the next tick rather than restarting the
// service, since the sweep is idempotent.
type SessionCleanupService struct {
	sweeper      SessionSweeper
	interval     time.Duration
	sweepTimeout time.Duration
	logger       zerolog.Logger
}

// NewSessionCleanupService creates the sweep loop. A non-positive interval
// becomes 5 minutes.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewSessionCleanupService(sweeper SessionSweeper, interval time.Duration, logger zerolog.Logger) *SessionCleanupService {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &SessionCleanupService{
		sweeper:      sweeper,
		interval:     interval,
		sweepTimeout: interval,
		logger:       logger.With().Str("service", "session-cleanup").Logger(),
	}
}

// Serve implements suture.Service.
func (s *SessionCleanupService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Debug().Dur("interval", s.interval).Msg("Session cleanup running")

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.sweep(ctx)
		}
	}
}

func (s *SessionCleanupService) sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.sweepTimeout)
	defer cancel()

	start := time.Now()
	removed, err := s.sweeper.CleanupExpiredSessions(sweepCtx)
	if err != nil {
		s.logger.Warn().Err(err).Int("removed", removed).Msg("Session cleanup sweep failed")
		return
	}
	if removed > 0 {
		s.logger.Info().
			Int("removed", removed).
			Dur("duration", time.Since(start)).
			Msg("Expired sessions cleaned up")
	}
}

func (s *SessionCleanupService) String() string {
	return "session-cleanup"
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"
)

// ValueLogCollector is satisfied by *badger.DB.
type ValueLogCollector interface {
	RunValueLogGC(discardRatio float64) error
}

// ValueLogGCService reclaims space in the tracking badger database. Session
// records are rewritten on every interaction, so the value log grows
// quickly without it.
type ValueLogGCService struct {
	db       ValueLogCollector
	interval time.Duration
	ratio    float64
	logger   zerolog.Logger
}

// NewValueLogGCService creates the GC loop. A non-positive interval becomes
// 10 minutes; the discard ratio is fixed at 0.5.
//
//nolint:gocritic // zerolog.Logger is passed by value throughout
func NewValueLogGCService(db ValueLogCollector, interval time.Duration, logger zerolog.Logger) *ValueLogGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &ValueLogGCService{
		db:       db,
		interval: interval,
		ratio:    0.5,
		logger:   logger.With().Str("service", "badger-gc").Logger(),
	}
}

// Serve implements suture.Service. A closed database is fatal for the
// service so the supervisor can surface it.
func (s *ValueLogGCService) Serve(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.collect(ctx); err != nil {
				if errors.Is(err, badger.ErrDBClosed) {
					return err
				}
				s.logger.Warn().Err(err).Msg("Value log GC failed")
			}
		}
	}
}

// collect runs GC until badger reports nothing left to rewrite.
func (s *ValueLogGCService) collect(ctx context.Context) error {
	rewrites := 0
	for ctx.Err() == nil {
		err := s.db.RunValueLogGC(s.ratio)
		if errors.Is(err, badger.ErrNoRewrite) || errors.Is(err, badger.ErrRejected) ||
			errors.Is(err, badger.ErrGCInMemoryMode) {
			break
		}
		if err != nil {
			return fmt.Errorf("run value log gc: %w", err)
		}
		rewrites++
	}
	if rewrites > 0 {
		s.logger.Debug().Int("rewrites", rewrites).Msg("Value log GC reclaimed space")
	}
	return nil
}

func (s *ValueLogGCService) String() string {
	return "badger-gc"
}

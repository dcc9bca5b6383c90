// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

// trackingComponents holds the tracker and the providers derived from the
// activity it records.
type trackingComponents struct {
	Tracker *tracking.Tracker
	Signals *tracking.ActivitySignals
	Peers   *tracking.PeerIndex

	// DB is the badger database, nil for the memory store.
	DB *badger.DB
}

func initTracking(cfg *config.Config, catalog vehicle.DataProvider, market vehicle.MarketDataProvider, publisher tracking.Publisher) (*trackingComponents, error) {
	signals := tracking.NewActivitySignals(tracking.WithMarketData(market))
	peers := tracking.NewPeerIndex()

	opts := []tracking.Option{
		tracking.WithVehicles(catalog),
		tracking.WithPublisher(publisher),
		tracking.WithObservers(signals, peers),
		tracking.WithLogger(logging.WithComponent("tracking")),
	}

	trackingCfg := tracking.DefaultConfig()
	trackingCfg.SessionTimeout = cfg.Tracking.SessionTimeout
	trackingCfg.ProfileUpdateInterval = cfg.Tracking.ProfileUpdateInterval

	c := &trackingComponents{Signals: signals, Peers: peers}

	if cfg.Tracking.Store == "badger" {
		db, err := badger.Open(badger.DefaultOptions(cfg.Tracking.BadgerPath).WithLogger(nil))
		if err != nil {
			return nil, fmt.Errorf("open badger at %s: %w", cfg.Tracking.BadgerPath, err)
		}
		// Archived sessions outlive active ones: they back the stats window.
		archive := tracking.NewBadgerSessionStore(db, trackingCfg.Retention).WithNamespace("archive:")
		opts = append(opts,
			tracking.WithStores(tracking.NewBadgerSessionStore(db, cfg.Tracking.SessionRetention), tracking.NewBadgerProfileStore(db)),
			tracking.WithArchive(archive),
		)
		c.DB = db
	}

	c.Tracker = tracking.NewTracker(trackingCfg, opts...)

	logging.Info().
		Str("store", cfg.Tracking.Store).
		Dur("session_timeout", trackingCfg.SessionTimeout).
		Msg("Interaction tracker initialized")
	return c, nil
}

// Close closes the badger database, if any.
func (c *trackingComponents) Close() {
	if c.DB == nil {
		return
	}
	if err := c.DB.Close(); err != nil {
		logging.Error().Err(err).Msg("Error closing tracking database")
	}
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package supervisor runs otto's long-lived services under a suture v4 tree.

	otto
	├── storage-layer
	│   ├── session-cleanup   (tracking.Tracker.CleanupExpiredSessions)
	│   └── badger-gc         (TRACKING_STORE=badger only)
	├── messaging-layer
	│   └── event-router      (cache invalidation consumer)
	└── api-layer
	    └── http-server

A service that returns an error is restarted. Once a layer exceeds
FailureThreshold failures it backs off for FailureBackoff; other layers keep
running. Supervisor events are logged through sutureslog, normally backed by
logging.NewSlogLogger so they land in the zerolog stream.

Usage:

	tree := supervisor.NewTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddStorageService(services.NewSessionCleanupService(tracker, cfg.Tracking.CleanupInterval, logger))
	tree.AddMessagingService(router)
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    logging.Error().Err(err).Msg("Supervisor stopped")
	}
*/
package supervisor

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package services adapts otto's long-running components to suture.Service.

Each wrapper turns a component lifecycle (ListenAndServe/Shutdown, a periodic
sweep) into a context-aware Serve method and names itself through
fmt.Stringer so supervisor events identify it:

  - HTTPServerService: the API server with graceful shutdown
  - SessionCleanupService: periodic expired-session sweep of the tracker
  - ValueLogGCService: periodic badger value-log garbage collection

The event router needs no wrapper; events.Router implements Serve itself.

Returning an error from Serve tells the supervisor to restart the service
with backoff. Returning ctx.Err() after cancellation is a clean stop.
*/
package services

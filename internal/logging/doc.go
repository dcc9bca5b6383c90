// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

// Package logging provides the zerolog-based structured logging used across otto.
//
// A single global logger is configured once at startup with Init. Components
// either take a child logger from WithComponent or receive a zerolog.Logger
// through their constructor, which lets tests pass zerolog.Nop().
//
// # Quick Start
//
//	logging.Init(logging.Config{Level: "info", Format: "json", Timestamp: true})
//
//	logging.Info().Str("addr", addr).Msg("HTTP server listening")
//	logging.Ctx(ctx).Warn().Err(err).Msg("market data unavailable")
//
// # Request Context
//
// The HTTP middleware stores a request ID and the shopper's user and session
// ids in the request context. Ctx and CtxWith copy them onto every event:
//
//	{"level":"info","request_id":"5f0c...","user_id":"u-42","session_id":"s-9","message":"comparison complete"}
//
// # slog Bridge
//
// Libraries that log through log/slog (suture via sutureslog, watermill via
// watermill.NewSlogLogger) receive NewSlogLogger(), so their output lands in
// the same JSON stream.
//
// # Conventions
//
// Always terminate event chains with Msg or Send. Prefer structured fields over
// Msgf. Tracking failures log at debug, degraded dependencies at warn.
package logging

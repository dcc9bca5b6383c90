// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package middleware provides the chi-compatible HTTP middleware used by the
API router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and stores it, together with
    a fresh correlation id, in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled by
    the matched chi route pattern
  - AccessLog: one structured log line per request, escalated to warn when a
    request is slower than the configured threshold
  - RateLimit: per-IP fixed-window limiting backed by go-chi/httprate

Middleware Stack:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(time.Second))
	r.Use(middleware.PrometheusMetrics)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.RateLimit(100, time.Minute, onLimit))
	    ...
	})

RequestID must run first so every later layer can log with logging.Ctx.
*/
package middleware

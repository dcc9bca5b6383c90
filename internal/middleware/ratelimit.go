// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/httprate"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/metrics"
)

// RateLimit limits each client IP to requests per window. Rejected requests
// are counted and passed to onLimit, which writes the response; a nil onLimit
// uses httprate's plain-text 429. A non-positive requests value disables
// limiting.
func RateLimit(requests int, window time.Duration, onLimit http.HandlerFunc) func(http.Handler) http.Handler {
	if requests <= 0 || window <= 0 {
		return func(next http.Handler) http.Handler { return next }
	}

	limitHandler := func(w http.ResponseWriter, r *http.Request) {
		metrics.RecordRateLimitHit(RoutePattern(r))
		logging.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("remote_addr", r.RemoteAddr).
			Msg("Rate limit exceeded")

		if onLimit != nil {
			onLimit(w, r)
			return
		}
		http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
	}

	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(limitHandler),
	)
}

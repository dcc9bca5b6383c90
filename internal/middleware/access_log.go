// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package middleware

import (
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/otto/internal/logging"
)

// AccessLog logs one line per request at debug level, or at warn level when
// the request took longer than slowThreshold. A zero threshold disables the
// slow-request warning.
func AccessLog(slowThreshold time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			duration := time.Since(start)
			logger := logging.Ctx(r.Context())

			event := logger.Debug()
			msg := "Request completed"
			if slowThreshold > 0 && duration > slowThreshold {
				event = logger.Warn().Dur("threshold", slowThreshold)
				msg = "Slow request detected"
			}

			event.
				Str("method", r.Method).
				Str("route", RoutePattern(r)).
				Str("path", r.URL.Path).
				Int("status", statusOf(ww)).
				Int("bytes", ww.BytesWritten()).
				Dur("duration", duration).
				Msg(msg)
		})
	}
}

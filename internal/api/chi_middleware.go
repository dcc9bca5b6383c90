// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/cors"
)

// RouterConfig configures the router middleware.
type RouterConfig struct {
	// CORSAllowedOrigins is empty by default, which denies cross-origin
	// browsers until origins are configured explicitly.
	CORSAllowedOrigins []string
	CORSMaxAge         int // seconds

	RateLimitRequests int
	RateLimitWindow   time.Duration

	// SlowRequestThreshold escalates access log lines to warn.
	SlowRequestThreshold time.Duration
}

// DefaultRouterConfig returns the default router configuration.
func DefaultRouterConfig() RouterConfig {
	return RouterConfig{
		CORSAllowedOrigins:   []string{},
		CORSMaxAge:           86400,
		RateLimitRequests:    100,
		RateLimitWindow:      time.Minute,
		SlowRequestThreshold: time.Second,
	}
}

// corsHandler builds the go-chi/cors middleware.
//
//nolint:gocritic // hugeParam: read once while building the router
func corsHandler(cfg RouterConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           cfg.CORSMaxAge,
	})
}

// APISecurityHeaders adds security headers to API responses.
func APISecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		w.Header().Set("Cache-Control", "no-store")

		if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

// rateLimited writes the 429 envelope.
func rateLimited(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusTooManyRequests, ErrCodeTooManyRequests, "rate limit exceeded")
}

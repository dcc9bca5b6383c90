// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/otto/internal/middleware"
)

// NewRouter builds the chi router for h.
//
//nolint:gocritic // hugeParam: read once while building the router
func NewRouter(h *Handler, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	// Applied to all routes, in order.
	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.AccessLog(cfg.SlowRequestThreshold))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.PrometheusMetrics)
	r.Use(corsHandler(cfg))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).NotFound("route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		NewResponseWriter(w, req).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "method not allowed")
	})

	r.Handle("/metrics", h.metricsHandler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders)

		r.Route("/health", func(r chi.Router) {
			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
		})

		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimit(cfg.RateLimitRequests, cfg.RateLimitWindow, rateLimited))
			r.Use(chimiddleware.Compress(5, "application/json"))

			r.Post("/compare", h.Compare)
			r.Post("/recommendations", h.Recommend)
			r.Get("/recommendations/stats", h.RecommendationStats)
			r.Post("/interactions", h.TrackInteraction)
			r.Post("/feedback", h.Feedback)
			r.Get("/users/{userID}/profile", h.GetUserProfile)
			r.Get("/users/{userID}/stats", h.GetUserStats)
			r.Get("/vehicles/{id}", h.GetVehicle)
		})
	})

	return r
}

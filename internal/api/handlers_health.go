// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/otto/internal/metrics"
)

// readinessTimeout bounds each readiness check.
const readinessTimeout = 2 * time.Second

// HealthLive handles liveness probe requests. It answers 200 while the
// process is running, regardless of dependencies.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]any{
		"alive":   true,
		"version": h.deps.Version,
		"uptime":  time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness probe requests. It runs every readiness
// check concurrently and answers 503 when any of them fails.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	names := make([]string, 0, len(h.deps.Readiness))
	for name := range h.deps.Readiness {
		names = append(names, name)
	}
	sort.Strings(names)

	var (
		mu     sync.Mutex
		wg     sync.WaitGroup
		checks = make(map[string]string, len(names))
		ready  = true
	)
	for _, name := range names {
		check := h.deps.Readiness[name]
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			status := "ok"
			if err := check(ctx); err != nil {
				status = err.Error()
				h.logger.Warn().Err(err).Str("dependency", name).Msg("Readiness check failed")
			}
			mu.Lock()
			checks[name] = status
			if status != "ok" {
				ready = false
			}
			mu.Unlock()
		}(name)
	}
	wg.Wait()

	data := map[string]any{
		"ready":  ready,
		"checks": checks,
		"uptime": time.Since(h.startTime).Seconds(),
	}
	if !ready {
		rw.ErrorWithDetails(http.StatusServiceUnavailable, ErrCodeNotReady, "service is not ready", data)
		return
	}
	rw.Success(data)
}

// metricsHandler serves the Prometheus registry, refreshing the uptime gauge
// on each scrape.
func (h *Handler) metricsHandler() http.Handler {
	prom := promhttp.Handler()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.UpdateUptime(h.startTime)
		prom.ServeHTTP(w, r)
	})
}

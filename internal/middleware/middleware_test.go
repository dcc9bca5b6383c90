// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/metrics"
)

func TestRequestID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		incoming string
		wantSame bool
	}{
		{"generates when absent", "", false},
		{"preserves upstream id", "proxy-id-123", true},
		{"replaces oversized id", strings.Repeat("x", maxRequestIDLength+1), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var ctxID, correlationID string
			handler := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctxID = GetRequestID(r.Context())
				correlationID = logging.CorrelationIDFromContext(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/health/live", nil)
			if tt.incoming != "" {
				req.Header.Set(RequestIDHeader, tt.incoming)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			got := rec.Header().Get(RequestIDHeader)
			if got != ctxID {
				t.Errorf("header %q does not match context %q", got, ctxID)
			}
			if tt.wantSame && got != tt.incoming {
				t.Errorf("request id = %q, want %q", got, tt.incoming)
			}
			if !tt.wantSame {
				if _, err := uuid.Parse(got); err != nil {
					t.Errorf("generated id %q is not a UUID: %v", got, err)
				}
			}
			if correlationID == "" {
				t.Error("expected a correlation id in context")
			}
		})
	}
}

func TestPrometheusMetrics_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/api/v1/vehicles/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	r.Post("/api/v1/compare", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{}"))
	})

	notFound := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/vehicles/{id}", "404")
	ok := metrics.APIRequestsTotal.WithLabelValues(http.MethodPost, "/api/v1/compare", "200")
	unmatched := metrics.APIRequestsTotal.WithLabelValues(http.MethodGet, unmatchedRoute, "404")
	beforeNotFound := testutil.ToFloat64(notFound)
	beforeOK := testutil.ToFloat64(ok)
	beforeUnmatched := testutil.ToFloat64(unmatched)

	for _, id := range []string{"veh-a", "veh-b"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/"+id, nil))
	}
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/api/v1/compare", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	if got := testutil.ToFloat64(notFound); got != beforeNotFound+2 {
		t.Errorf("vehicle 404 count = %v, want %v", got, beforeNotFound+2)
	}
	if got := testutil.ToFloat64(ok); got != beforeOK+1 {
		t.Errorf("compare 200 count = %v, want %v (implicit status)", got, beforeOK+1)
	}
	if got := testutil.ToFloat64(unmatched); got != beforeUnmatched+1 {
		t.Errorf("unmatched count = %v, want %v", got, beforeUnmatched+1)
	}
}

func TestAccessLog(t *testing.T) {
	t.Parallel()

	serve := func(threshold, sleep time.Duration) string {
		var buf bytes.Buffer
		logger := zerolog.New(&buf)

		r := chi.NewRouter()
		r.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				next.ServeHTTP(w, req.WithContext(logging.ContextWithLogger(req.Context(), logger)))
			})
		})
		r.Use(AccessLog(threshold))
		r.Get("/api/v1/users/{userID}/profile", func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(sleep)
			w.WriteHeader(http.StatusTeapot)
		})

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/v1/users/u1/profile", nil))
		return buf.String()
	}

	t.Run("slow request warns", func(t *testing.T) {
		t.Parallel()
		out := serve(time.Millisecond, 5*time.Millisecond)
		for _, want := range []string{`"level":"warn"`, "Slow request detected", `"status":418`, `"route":"/api/v1/users/{userID}/profile"`} {
			if !strings.Contains(out, want) {
				t.Errorf("log missing %s: %s", want, out)
			}
		}
	})

	t.Run("fast request does not warn", func(t *testing.T) {
		t.Parallel()
		if out := serve(time.Hour, 0); strings.Contains(out, "Slow request") {
			t.Errorf("unexpected warning: %s", out)
		}
	})

	t.Run("zero threshold disables warning", func(t *testing.T) {
		t.Parallel()
		if out := serve(0, 2*time.Millisecond); strings.Contains(out, "Slow request") {
			t.Errorf("unexpected warning: %s", out)
		}
	})
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	t.Run("rejects over limit", func(t *testing.T) {
		t.Parallel()

		onLimit := func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"success":false}`))
		}
		handler := RateLimit(2, time.Minute, onLimit)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))

		codes := make([]int, 0, 3)
		for i := 0; i < 3; i++ {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/x", nil)
			req.RemoteAddr = "203.0.113.7:5000"
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			codes = append(codes, rec.Code)
			if i == 2 && rec.Body.String() != `{"success":false}` {
				t.Errorf("limit body = %q", rec.Body.String())
			}
		}
		if codes[0] != http.StatusOK || codes[1] != http.StatusOK || codes[2] != http.StatusTooManyRequests {
			t.Errorf("codes = %v, want [200 200 429]", codes)
		}

		// Another client has its own budget.
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles/x", nil)
		req.RemoteAddr = "198.51.100.1:5000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("second client code = %d, want 200", rec.Code)
		}
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()
		handler := RateLimit(0, time.Minute, nil)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
		for i := 0; i < 5; i++ {
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
			if rec.Code != http.StatusNoContent {
				t.Fatalf("request %d code = %d", i, rec.Code)
			}
		}
	})
}

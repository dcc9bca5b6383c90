// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package openai

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/goccy/go-json"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c, err := New(Config{
		APIKey:            "sk-test",
		BaseURL:           server.URL + "/",
		RequestsPerSecond: 100,
		MaxRetries:        2,
		RetryBaseDelay:    time.Millisecond,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return c
}

func TestNew_RequiresAPIKey(t *testing.T) {
	t.Parallel()

	if _, err := New(Config{APIKey: "  "}); !errors.Is(err, ErrNoAPIKey) {
		t.Errorf("expected ErrNoAPIKey, got %v", err)
	}
}

func TestGenerateEmbeddings(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if req.Model != DefaultEmbeddingModel || len(req.Input) != 2 {
			t.Errorf("unexpected request %+v", req)
		}

		// Out of order on purpose; the client must place by index.
		_, _ = w.Write([]byte(`{"data":[{"index":1,"embedding":[0,1]},{"index":0,"embedding":[1,0]}]}`))
	})

	got, err := c.GenerateEmbeddings(context.Background(), []string{"camry", "accord"})
	if err != nil {
		t.Fatalf("GenerateEmbeddings() error = %v", err)
	}
	if len(got) != 2 || got[0][0] != 1 || got[1][1] != 1 {
		t.Errorf("embeddings = %v", got)
	}
}

func TestGenerateEmbeddings_Empty(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	got, err := c.GenerateEmbeddings(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("GenerateEmbeddings(nil) = %v, %v", got, err)
	}
	if atomic.LoadInt32(&calls) != 0 {
		t.Error("empty input must not call the API")
	}
}

func TestComplete(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var req chatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode: %v", err)
			return
		}
		if len(req.Messages) != 2 || req.Messages[0].Role != "system" || req.MaxTokens != 150 {
			t.Errorf("unexpected request %+v", req)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  A great fit.  "}}]}`))
	})

	got, err := c.Complete(context.Background(), "be brief", "explain", 150)
	if err != nil {
		t.Fatalf("Complete() error = %v", err)
	}
	if got != "A great fit." {
		t.Errorf("Complete() = %q", got)
	}
}

func TestComplete_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{"api error envelope", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`, "invalid api key"},
		{"plain body", http.StatusBadGateway, "upstream down", "upstream down"},
		{"no choices", http.StatusOK, `{"choices":[]}`, "no choices"},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":" "}}]}`, "empty content"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := c.Complete(context.Background(), "s", "p", 10)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want containing %q", err, tt.wantErr)
			}
		})
	}
}

func TestRetriesOnRateLimit(t *testing.T) {
	t.Parallel()

	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"ok"}}]}`))
	})

	got, err := c.Complete(context.Background(), "s", "p", 10)
	if err != nil || got != "ok" {
		t.Fatalf("Complete() = %q, %v", got, err)
	}
	if n := atomic.LoadInt32(&calls); n != 3 {
		t.Errorf("calls = %d, want 3", n)
	}
}

func TestRateLimitExhausted(t *testing.T) {
	t.Parallel()

	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := c.Complete(context.Background(), "s", "p", 10)
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429 APIError, got %v", err)
	}
}

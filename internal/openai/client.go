// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package openai is a minimal client for the OpenAI embeddings and chat
completion endpoints.

Client Features:
  - Outbound rate limiting through golang.org/x/time/rate
  - Separate circuit breakers for embeddings and chat completion
  - Automatic HTTP 429 handling with exponential backoff and Retry-After
  - Bounded error body reads for diagnostics

The client implements vehicle.EmbeddingProvider and recommend.ChatCompleter.
*/
package openai

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/tomtom215/otto/internal/resilience"
)

const (
	// DefaultBaseURL is the public OpenAI API root.
	DefaultBaseURL = "https://api.openai.com/v1"

	// DefaultChatModel is used for recommendation explanations.
	DefaultChatModel = "gpt-4o-mini"

	// DefaultEmbeddingModel is used for vehicle descriptions.
	DefaultEmbeddingModel = "text-embedding-3-small"

	maxErrorBodySize = 64 * 1024
)

// ErrNoAPIKey is returned by New when no credential is configured.
var ErrNoAPIKey = errors.New("openai: api key not configured")

// Config configures a Client.
type Config struct {
	APIKey            string
	BaseURL           string
	ChatModel         string
	EmbeddingModel    string
	RequestsPerSecond float64
	Timeout           time.Duration
	MaxRetries        int
	RetryBaseDelay    time.Duration
}

// Client talks to the OpenAI HTTP API. Safe for concurrent use.
type Client struct {
	cfg        Config
	http       *http.Client
	limiter    *rate.Limiter
	embedCB    *resilience.Breaker[[][]float64]
	completeCB *resilience.Breaker[string]
}

// New creates a client. Missing optional settings take the package defaults.
//
//nolint:gocritic // hugeParam: config is read once at construction
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrNoAPIKey
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if cfg.ChatModel == "" {
		cfg.ChatModel = DefaultChatModel
	}
	if cfg.EmbeddingModel == "" {
		cfg.EmbeddingModel = DefaultEmbeddingModel
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 20 * time.Second
	}
	if cfg.MaxRetries < 0 {
		cfg.MaxRetries = 0
	}
	if cfg.RetryBaseDelay <= 0 {
		cfg.RetryBaseDelay = time.Second
	}

	burst := int(cfg.RequestsPerSecond)
	if burst < 1 {
		burst = 1
	}

	return &Client{
		cfg:        cfg,
		http:       &http.Client{Timeout: cfg.Timeout},
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst),
		embedCB:    resilience.New[[][]float64](resilience.DefaultSettings("openai-embeddings")),
		completeCB: resilience.New[string](resilience.DefaultSettings("openai-chat")),
	}, nil
}

// APIError is a non-2xx response from the API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("openai: HTTP %d: %s", e.StatusCode, e.Message)
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
}

// GenerateEmbeddings returns one vector per input text, in input order.
func (c *Client) GenerateEmbeddings(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return [][]float64{}, nil
	}

	return c.embedCB.Execute(func() ([][]float64, error) {
		var resp embeddingResponse
		if err := c.post(ctx, "/embeddings", embeddingRequest{Model: c.cfg.EmbeddingModel, Input: texts}, &resp); err != nil {
			return nil, err
		}
		if len(resp.Data) != len(texts) {
			return nil, fmt.Errorf("openai: expected %d embeddings, got %d", len(texts), len(resp.Data))
		}

		out := make([][]float64, len(texts))
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= len(out) {
				return nil, fmt.Errorf("openai: embedding index %d out of range", d.Index)
			}
			out[d.Index] = d.Embedding
		}
		return out, nil
	})
}

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	MaxTokens   int       `json:"max_tokens,omitempty"`
	Temperature float64   `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

// Complete sends a system and user prompt and returns the first choice's text.
func (c *Client) Complete(ctx context.Context, system, prompt string, maxTokens int) (string, error) {
	return c.completeCB.Execute(func() (string, error) {
		req := chatRequest{
			Model: c.cfg.ChatModel,
			Messages: []Message{
				{Role: "system", Content: system},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   maxTokens,
			Temperature: 0.7,
		}

		var resp chatResponse
		if err := c.post(ctx, "/chat/completions", req, &resp); err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("openai: completion returned no choices")
		}
		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return "", errors.New("openai: completion returned empty content")
		}
		return text, nil
	})
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("openai: encode request: %w", err)
	}

	resp, err := c.doWithRetry(ctx, c.cfg.BaseURL+path, payload)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode, Message: errorMessage(resp.Body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("openai: decode response: %w", err)
	}
	return nil
}

// doWithRetry waits on the limiter and retries HTTP 429 with exponential
// backoff, honouring Retry-After when present.
func (c *Client) doWithRetry(ctx context.Context, url string, payload []byte) (*http.Response, error) {
	for attempt := 0; ; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("openai: rate limiter: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
		if err != nil {
			return nil, fmt.Errorf("openai: create request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.http.Do(req)
		if err != nil {
			return nil, fmt.Errorf("openai: request failed: %w", err)
		}
		if resp.StatusCode != http.StatusTooManyRequests || attempt >= c.cfg.MaxRetries {
			return resp, nil
		}

		delay := c.cfg.RetryBaseDelay * time.Duration(1<<uint(attempt))
		if secs, err := strconv.Atoi(resp.Header.Get("Retry-After")); err == nil && secs >= 0 {
			delay = time.Duration(secs) * time.Second
		}
		_ = resp.Body.Close()

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// errorMessage extracts error.message from an API error body, falling back
// to the raw (bounded) body text.
func errorMessage(r io.Reader) string {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return "(failed to read response body)"
	}

	var envelope struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if json.Unmarshal(body, &envelope) == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(body))
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package main

import (
	"github.com/tomtom215/otto/internal/config"
	"github.com/tomtom215/otto/internal/embedding"
	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/openai"
	"github.com/tomtom215/otto/internal/recommend"
	"github.com/tomtom215/otto/internal/vehicle"
)

// hashingDimensions is the vector size of the offline embedder.
const hashingDimensions = 256

// aiComponents holds the embedding provider and the explanation generator.
type aiComponents struct {
	Embedder  vehicle.EmbeddingProvider
	Explainer recommend.Explainer
}

// initAI uses OpenAI when a key is configured and the offline hashing
// embedder with template explanations otherwise.
func initAI(cfg *config.Config) aiComponents {
	offline := aiComponents{
		Embedder:  embedding.NewHashing(hashingDimensions),
		Explainer: recommend.TemplateExplainer{},
	}
	if !cfg.OpenAI.Enabled() {
		logging.Info().Msg("OpenAI disabled; using hashing embeddings and template explanations")
		return offline
	}

	client, err := openai.New(openai.Config{
		APIKey:            cfg.OpenAI.APIKey,
		BaseURL:           cfg.OpenAI.BaseURL,
		ChatModel:         cfg.OpenAI.ChatModel,
		EmbeddingModel:    cfg.OpenAI.EmbeddingModel,
		RequestsPerSecond: cfg.OpenAI.RequestsPerSecond,
		Timeout:           cfg.OpenAI.Timeout,
		MaxRetries:        2,
	})
	if err != nil {
		logging.Warn().Err(err).Msg("OpenAI client unavailable; falling back to offline providers")
		return offline
	}

	logging.Info().
		Str("chat_model", cfg.OpenAI.ChatModel).
		Str("embedding_model", cfg.OpenAI.EmbeddingModel).
		Msg("OpenAI client initialized")
	return aiComponents{
		Embedder:  client,
		Explainer: recommend.NewExplainer(client, logging.WithComponent("recommend")),
	}
}

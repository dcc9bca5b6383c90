// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	maxDescriptionFeatures = 10
	maxDescriptionChars    = 500
	maxExplainedFeatures   = 3
	descriptionKeySpecs    = 4
)

var keySpecFields = []string{"engine_type", "horsepower", "drivetrain", "fuel_economy_combined", "seating_capacity", "transmission"}

// SimilarityEngine embeds vehicle descriptions and compares them pairwise.
type SimilarityEngine struct {
	embedder vehicle.EmbeddingProvider
	timeout  time.Duration
	logger   zerolog.Logger
}

// NewSimilarityEngine creates a similarity engine. A zero timeout disables the deadline.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func NewSimilarityEngine(embedder vehicle.EmbeddingProvider, timeout time.Duration, logger zerolog.Logger) *SimilarityEngine {
	return &SimilarityEngine{embedder: embedder, timeout: timeout, logger: logger}
}

// Compute returns the similarity of every pair i<j keyed by PairKey.
// Embedding failures are logged and produce an empty map.
func (s *SimilarityEngine) Compute(ctx context.Context, recs []vehicle.Record) map[string]SemanticSimilarity {
	out := make(map[string]SemanticSimilarity)
	if len(recs) < 2 {
		return out
	}

	embeddings, err := s.embed(ctx, recs)
	if err != nil {
		metrics.RecordDependencyDegraded("embeddings")
		s.logger.Warn().Err(err).Int("vehicles", len(recs)).Msg("semantic similarity unavailable, continuing without it")
		return out
	}

	for i := 0; i < len(recs); i++ {
		for j := i + 1; j < len(recs); j++ {
			out[PairKey(recs[i].ID, recs[j].ID)] = describePair(&recs[i], &recs[j], CosineSimilarity(embeddings[i], embeddings[j]))
		}
	}
	return out
}

func (s *SimilarityEngine) embed(ctx context.Context, recs []vehicle.Record) ([][]float64, error) {
	if s.embedder == nil {
		return nil, vehicle.DependencyFailure("similarity.embed", errNoEmbedder)
	}

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	texts := make([]string, len(recs))
	for i := range recs {
		texts[i] = BuildDescription(&recs[i])
	}

	embeddings, err := s.embedder.GenerateEmbeddings(ctx, texts)
	if err != nil {
		return nil, vehicle.DependencyFailure("similarity.embed", err)
	}
	if len(embeddings) != len(texts) {
		return nil, vehicle.DependencyFailure("similarity.embed",
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings)))
	}
	return embeddings, nil
}

// CosineSimilarity returns the cosine of the angle between a and b.
// Mismatched lengths, empty vectors and zero vectors yield 0.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// BuildDescription renders the natural-language text embedded for a vehicle.
func BuildDescription(rec *vehicle.Record) string {
	var b strings.Builder
	b.WriteString(rec.DisplayName())
	if rec.BodyStyle != "" {
		fmt.Fprintf(&b, " %s", rec.BodyStyle)
	}
	b.WriteString(".")

	specs := make([]string, 0, descriptionKeySpecs)
	for _, field := range keySpecFields {
		if len(specs) == descriptionKeySpecs {
			break
		}
		if v, ok := rec.Spec(field); ok {
			specs = append(specs, fmt.Sprintf("%s %v", strings.ReplaceAll(field, "_", " "), v))
		}
	}
	if len(specs) > 0 {
		fmt.Fprintf(&b, " Key specs: %s.", strings.Join(specs, ", "))
	}

	if len(rec.Features) > 0 {
		features := rec.Features
		if len(features) > maxDescriptionFeatures {
			features = features[:maxDescriptionFeatures]
		}
		fmt.Fprintf(&b, " Features: %s.", strings.Join(features, ", "))
	}

	if desc := strings.TrimSpace(rec.Description); desc != "" {
		b.WriteString(" ")
		b.WriteString(truncateRunes(desc, maxDescriptionChars))
	}
	return b.String()
}

// truncateRunes cuts s to at most n characters without splitting one.
func truncateRunes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

func describePair(a, b *vehicle.Record, cosine float64) SemanticSimilarity {
	score := round(clamp01(cosine), 4)
	shared := sharedFeatures(a.Features, b.Features)
	onlyA, onlyB := featureSetDifference(a.Features, b.Features)

	var expl strings.Builder
	fmt.Fprintf(&expl, "The %s and %s are %.0f%% similar.", a.DisplayName(), b.DisplayName(), score*100)
	if len(shared) > 0 {
		fmt.Fprintf(&expl, " Both offer %s.", strings.Join(firstN(shared, maxExplainedFeatures), ", "))
	}
	if len(onlyA) > 0 {
		fmt.Fprintf(&expl, " Only the %s has %s.", a.ShortName(), strings.Join(firstN(onlyA, maxExplainedFeatures), ", "))
	}
	if len(onlyB) > 0 {
		fmt.Fprintf(&expl, " Only the %s has %s.", b.ShortName(), strings.Join(firstN(onlyB, maxExplainedFeatures), ", "))
	}

	return SemanticSimilarity{
		SimilarityScore: score,
		SharedFeatures:  nonNil(shared),
		UniqueFeaturesA: nonNil(onlyA),
		UniqueFeaturesB: nonNil(onlyB),
		Explanation:     expl.String(),
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/vehicle"
)

// Personalization factors reported on a recommendation.
const (
	FactorCollaborative   = "collaborative_filtering"
	FactorContentMatch    = "content_match"
	FactorSimilarToViewed = "similar_to_viewed"
	FactorBrandPreference = "brand_preference"
	FactorSearchRelevance = "search_relevance"
	FactorTrending        = "trending"
)

// scoringInput is everything an algorithm may read.
type scoringInput struct {
	userID     string
	candidates []candidate
	contexts   []vehicle.Record
	prefs      *preferences
}

// algResult holds the result of a single algorithm.
type algResult struct {
	name   string
	scores map[string]float64
	// brand and query record content-rubric matches per vehicle.
	brand map[string]bool
	query map[string]bool
	err   error
}

// collaborative scores candidates by the liked vehicles of similar users,
// normalized so the best candidate scores 1.
func (e *Engine) collaborative(ctx context.Context, in *scoringInput) algResult {
	result := algResult{name: string(TypeCollaborative), scores: make(map[string]float64)}
	if e.peers == nil || e.config.Candidates.PeerUsers == 0 {
		return result
	}

	peers, err := e.peerBreaker.Execute(func() ([]vehicle.PeerUser, error) {
		return e.peers.SimilarUsers(ctx, in.userID, e.config.Candidates.PeerUsers)
	})
	if err != nil {
		result.err = vehicle.DependencyFailure("recommend.peers", err)
		return result
	}

	inCandidates := make(map[string]struct{}, len(in.candidates))
	for i := range in.candidates {
		inCandidates[in.candidates[i].record.ID] = struct{}{}
	}

	raw := make(map[string]float64)
	for _, peer := range peers {
		for id, weight := range peer.Liked {
			if _, ok := inCandidates[id]; ok {
				raw[id] += peer.Similarity * weight
			}
		}
	}

	var maxScore float64
	for _, s := range raw {
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore <= 0 {
		return result
	}
	for id, s := range raw {
		result.scores[id] = s / maxScore
	}
	return result
}

// contentBased scores each candidate with the preference rubric and drops
// those under the similarity threshold.
func (e *Engine) contentBased(_ context.Context, in *scoringInput) algResult {
	result := algResult{
		name:   string(TypeContentBased),
		scores: make(map[string]float64),
		brand:  make(map[string]bool),
		query:  make(map[string]bool),
	}

	for i := range in.candidates {
		rec := &in.candidates[i].record
		score, brand, query := in.prefs.contentScore(rec)
		if score < e.config.Scoring.MinSimilarityThreshold {
			continue
		}
		result.scores[rec.ID] = score
		result.brand[rec.ID] = brand
		result.query[rec.ID] = query
	}
	return result
}

// similarity scores each candidate by its best embedding similarity to any
// context vehicle. When embeddings are unavailable it falls back to the
// provider similarity recorded during candidate generation.
func (e *Engine) similarity(ctx context.Context, in *scoringInput) algResult {
	result := algResult{name: string(TypeSimilarity), scores: make(map[string]float64)}
	if len(in.contexts) == 0 || len(in.candidates) == 0 {
		return result
	}

	best, err := e.embeddingSimilarity(ctx, in)
	if err != nil {
		metrics.RecordDependencyDegraded("embeddings")
		result.err = err
		best = make(map[string]float64, len(in.candidates))
		for i := range in.candidates {
			best[in.candidates[i].record.ID] = in.candidates[i].similarity
		}
	}

	for id, s := range best {
		if s >= e.config.Scoring.MinSimilarityThreshold {
			result.scores[id] = clamp01(s)
		}
	}
	return result
}

func (e *Engine) embeddingSimilarity(ctx context.Context, in *scoringInput) (map[string]float64, error) {
	if e.embedder == nil {
		return nil, vehicle.DependencyFailure("recommend.embed", fmt.Errorf("no embedding provider configured"))
	}

	texts := make([]string, 0, len(in.contexts)+len(in.candidates))
	for i := range in.contexts {
		texts = append(texts, comparison.BuildDescription(&in.contexts[i]))
	}
	for i := range in.candidates {
		texts = append(texts, comparison.BuildDescription(&in.candidates[i].record))
	}

	vectors, err := e.embedBreaker.Execute(func() ([][]float64, error) {
		return e.embedder.GenerateEmbeddings(ctx, texts)
	})
	if err != nil {
		return nil, vehicle.DependencyFailure("recommend.embed", err)
	}
	if len(vectors) != len(texts) {
		return nil, vehicle.DependencyFailure("recommend.embed",
			fmt.Errorf("expected %d embeddings, got %d", len(texts), len(vectors)))
	}

	contextVecs := vectors[:len(in.contexts)]
	best := make(map[string]float64, len(in.candidates))
	for i := range in.candidates {
		vec := vectors[len(in.contexts)+i]
		var maxSim float64
		for _, cv := range contextVecs {
			if s := comparison.CosineSimilarity(cv, vec); s > maxSim {
				maxSim = s
			}
		}
		best[in.candidates[i].record.ID] = maxSim
	}
	return best, nil
}

// algorithm is one named scoring function.
type algorithm struct {
	name string
	run  func(ctx context.Context, in *scoringInput) algResult
}

func (e *Engine) algorithmsFor(t Type) []algorithm {
	collaborative := algorithm{name: string(TypeCollaborative), run: e.collaborative}
	content := algorithm{name: string(TypeContentBased), run: e.contentBased}
	similarity := algorithm{name: string(TypeSimilarity), run: e.similarity}

	switch t {
	case TypeCollaborative:
		return []algorithm{collaborative}
	case TypeContentBased:
		return []algorithm{content}
	case TypeSimilarity:
		return []algorithm{similarity}
	default:
		return []algorithm{collaborative, content, similarity}
	}
}

// runAlgorithms runs algorithms in parallel, each under its own deadline.
func (e *Engine) runAlgorithms(ctx context.Context, algorithms []algorithm, in *scoringInput) []algResult {
	results := make([]algResult, len(algorithms))
	var wg sync.WaitGroup

	for i, alg := range algorithms {
		wg.Add(1)
		go func(idx int, a algorithm) {
			defer wg.Done()
			results[idx] = e.runSingleAlgorithm(ctx, a, in)
		}(i, alg)
	}

	wg.Wait()
	return results
}

func (e *Engine) runSingleAlgorithm(ctx context.Context, alg algorithm, in *scoringInput) (result algResult) {
	start := time.Now()
	algCtx, cancel := context.WithTimeout(ctx, e.config.Limits.AlgorithmTimeout)
	defer cancel()

	defer func() {
		if r := recover(); r != nil {
			result = algResult{name: alg.name, err: fmt.Errorf("algorithm panic: %v", r)}
		}
		outcome := "success"
		if result.err != nil {
			outcome = "degraded"
			e.recordAlgorithmFailure(alg.name)
		}
		metrics.RecordAlgorithm(alg.name, outcome, time.Since(start))
	}()

	return alg.run(algCtx, in)
}

// combineScores blends algorithm results into scored candidates.
//
//nolint:gocritic // hugeParam: group passed by value for immutability
func (e *Engine) combineScores(t Type, group GroupWeights, results []algResult, in *scoringInput, logger zerolog.Logger) []scoredCandidate {
	byName := make(map[string]algResult, len(results))
	for _, r := range results {
		if r.err != nil {
			logger.Warn().Err(r.err).Str("algorithm", r.name).Msg("algorithm degraded")
		}
		byName[r.name] = r
	}

	weights := map[string]float64{
		string(TypeCollaborative): group.CollaborativeWeight,
		string(TypeContentBased):  group.ContentWeight,
		string(TypeSimilarity):    e.config.Scoring.SimilarityWeight,
	}
	if t != TypeHybrid {
		weights = map[string]float64{string(t): 1}
	}

	threshold := e.config.Scoring.FactorThreshold
	content := byName[string(TypeContentBased)]

	out := make([]scoredCandidate, 0, len(in.candidates))
	for i := range in.candidates {
		rec := in.candidates[i].record
		sc := scoredCandidate{record: rec, scores: make(map[string]float64)}

		for name, w := range weights {
			s, ok := byName[name].scores[rec.ID]
			if !ok {
				continue
			}
			sc.scores[name] = s
			sc.score += w * s
		}
		if len(sc.scores) == 0 {
			continue
		}
		sc.score = clamp01(sc.score)

		if sc.scores[string(TypeCollaborative)] > threshold {
			sc.factors = append(sc.factors, FactorCollaborative)
		}
		if sc.scores[string(TypeContentBased)] > threshold {
			sc.factors = append(sc.factors, FactorContentMatch)
		}
		if sc.scores[string(TypeSimilarity)] > threshold {
			sc.factors = append(sc.factors, FactorSimilarToViewed)
		}
		if content.brand[rec.ID] {
			sc.factors = append(sc.factors, FactorBrandPreference)
		}
		if content.query[rec.ID] {
			sc.factors = append(sc.factors, FactorSearchRelevance)
		}

		out = append(out, sc)
	}
	return out
}

// trendingFallback ranks candidates by trending score for users no
// algorithm could score, typically first-time visitors.
func (e *Engine) trendingFallback(ctx context.Context, candidates []candidate) []scoredCandidate {
	out := make([]scoredCandidate, 0, len(candidates))
	for i := range candidates {
		rec := candidates[i].record
		score := 0.0
		if e.trending != nil {
			if s, err := e.trending.TrendingScore(ctx, rec.ID); err == nil {
				score = clamp01(s)
			}
		}
		out = append(out, scoredCandidate{
			record:  rec,
			score:   score * e.config.Scoring.FactorThreshold,
			scores:  map[string]float64{FactorTrending: score},
			factors: []string{FactorTrending},
		})
	}
	return out
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/vehicle"
)

const (
	minVehicles = 2
	maxVehicles = 4
)

// Options configures an Engine.
type Options struct {
	Rules            *Rules
	Market           vehicle.MarketDataProvider
	Embedder         vehicle.EmbeddingProvider
	EmbeddingTimeout time.Duration
	Logger           zerolog.Logger
	Now              func() time.Time
}

// Engine orchestrates a vehicle comparison. It is safe for concurrent use.
type Engine struct {
	provider    vehicle.DataProvider
	extractor   *FeatureExtractor
	prices      *PriceAnalyzer
	scores      *ScoreCalculator
	differences *DifferenceAnalyzer
	similarity  *SimilarityEngine
	logger      zerolog.Logger
	now         func() time.Time
}

// NewEngine creates a comparison engine reading vehicles from provider.
//
//nolint:gocritic // hugeParam: options are read once at construction
func NewEngine(provider vehicle.DataProvider, opts Options) *Engine {
	rules := opts.Rules
	if rules == nil {
		rules = DefaultRules()
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger.With().Str("component", "comparison").Logger()

	return &Engine{
		provider:    provider,
		extractor:   NewFeatureExtractor(rules),
		prices:      NewPriceAnalyzer(opts.Market),
		scores:      NewScoreCalculator(rules),
		differences: NewDifferenceAnalyzer(rules),
		similarity:  NewSimilarityEngine(opts.Embedder, opts.EmbeddingTimeout, logger),
		logger:      logger,
		now:         now,
	}
}

// Compare validates the request, analyses each vehicle concurrently and
// assembles differences, similarity and a summary.
//
// Validation failures are InvalidArgument, unresolvable ids are NotFound.
// Per-vehicle failures are reported in Result.Failures instead of aborting.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Compare(ctx context.Context, req Request) (*Result, error) {
	start := e.now()

	if err := validateVehicleIDs(req.VehicleIDs); err != nil {
		metrics.RecordComparison("invalid", len(req.VehicleIDs), time.Since(start))
		return nil, err
	}

	records, err := e.fetchVehicles(ctx, req.VehicleIDs)
	if err != nil {
		outcome := "error"
		if vehicle.IsNotFound(err) {
			outcome = "not_found"
		}
		metrics.RecordComparison(outcome, len(req.VehicleIDs), time.Since(start))
		return nil, err
	}

	logger := e.logger.With().
		Strs("vehicle_ids", req.VehicleIDs).
		Str("user_id", req.UserID).
		Logger()

	results, failures := e.analyzeVehicles(ctx, req, records)
	for _, f := range failures {
		logger.Warn().Str("vehicle_id", f.VehicleID).Str("error", f.Error).Msg("vehicle analysis failed")
	}

	differences := e.pairwiseDifferences(results)

	var similarity map[string]SemanticSimilarity
	if req.IncludeSemanticSimilarity {
		analysed := make([]vehicle.Record, len(results))
		for i := range results {
			analysed[i] = results[i].VehicleData
		}
		similarity = e.similarity.Compute(ctx, analysed)
	}

	result := &Result{
		ComparisonID:          uuid.New().String(),
		ComparisonResults:     results,
		FeatureDifferences:    differences,
		SemanticSimilarity:    similarity,
		RecommendationSummary: buildSummary(results, differences, req.UserID),
		Failures:              failures,
		GeneratedAt:           e.now().UTC(),
	}
	elapsed := e.now().Sub(start)
	result.ProcessingTime = round(elapsed.Seconds(), 4)

	metrics.RecordComparison("success", len(records), elapsed)
	logger.Debug().
		Int("results", len(results)).
		Int("differences", len(differences)).
		Int("failures", len(failures)).
		Dur("elapsed", elapsed).
		Msg("comparison complete")

	return result, nil
}

func validateVehicleIDs(ids []string) error {
	if len(ids) < minVehicles {
		return vehicle.InvalidArgument("compare", msgTooFewVehicles)
	}
	if len(ids) > maxVehicles {
		return vehicle.InvalidArgument("compare", msgTooManyVehicles)
	}
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			return vehicle.InvalidArgument("compare", msgDuplicateIDs)
		}
		seen[id] = struct{}{}
	}
	return nil
}

// fetchVehicles resolves ids and returns records in input order.
func (e *Engine) fetchVehicles(ctx context.Context, ids []string) ([]vehicle.Record, error) {
	if e.provider == nil {
		return nil, vehicle.DependencyFailure("compare.fetch", fmt.Errorf("vehicle data provider not set"))
	}

	found, err := e.provider.GetVehiclesByIDs(ctx, ids)
	if err != nil {
		return nil, vehicle.DependencyFailure("compare.fetch", err)
	}

	byID := make(map[string]vehicle.Record, len(found))
	for i := range found {
		byID[found[i].ID] = found[i]
	}

	ordered := make([]vehicle.Record, 0, len(ids))
	var missing []string
	for _, id := range ids {
		rec, ok := byID[id]
		if !ok {
			missing = append(missing, id)
			continue
		}
		ordered = append(ordered, rec)
	}

	if len(missing) > 0 {
		return nil, vehicle.NotFound("compare.fetch", msgNotFoundPrefix+strings.Join(missing, ", "))
	}
	return ordered, nil
}

// analyzeVehicles builds one result per record concurrently. Results keep
// input order; failed vehicles are returned separately.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) analyzeVehicles(ctx context.Context, req Request, records []vehicle.Record) ([]VehicleComparisonResult, []ItemFailure) {
	slots := make([]*VehicleComparisonResult, len(records))
	errs := make([]error, len(records))

	g, gctx := errgroup.WithContext(ctx)
	for i := range records {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					errs[i] = fmt.Errorf("analysis panicked: %v", r)
				}
			}()
			slots[i], errs[i] = e.analyzeVehicle(gctx, req, &records[i], records)
			// Never return the error: a failing vehicle must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()

	results := make([]VehicleComparisonResult, 0, len(records))
	var failures []ItemFailure
	for i := range records {
		if errs[i] != nil || slots[i] == nil {
			msg := "analysis produced no result"
			if errs[i] != nil {
				msg = errs[i].Error()
			}
			failures = append(failures, ItemFailure{VehicleID: records[i].ID, Error: msg})
			continue
		}
		results = append(results, *slots[i])
	}
	return results, failures
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) analyzeVehicle(ctx context.Context, req Request, rec *vehicle.Record, peers []vehicle.Record) (*VehicleComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	specs := e.extractor.ExtractSpecifications(rec, req.Criteria)
	features := e.extractor.ExtractFeatures(rec)

	var price *PriceAnalysis
	if req.IncludePriceAnalysis {
		analysis, err := e.prices.Analyze(ctx, rec, peers)
		if err != nil {
			metrics.RecordDependencyDegraded("market_data")
			e.logger.Warn().Err(err).Str("vehicle_id", rec.ID).Msg("price analysis unavailable")
		} else {
			price = analysis
		}
	}

	return &VehicleComparisonResult{
		VehicleID:      rec.ID,
		VehicleData:    *rec,
		Specifications: specs,
		Features:       features,
		PriceAnalysis:  price,
		OverallScore:   e.scores.Calculate(rec, peers, specs, features),
	}, nil
}

// pairwiseDifferences emits differences for every pair in index order i<j.
func (e *Engine) pairwiseDifferences(results []VehicleComparisonResult) []FeatureDifference {
	diffs := make([]FeatureDifference, 0)
	for i := 0; i < len(results); i++ {
		for j := i + 1; j < len(results); j++ {
			diffs = append(diffs, e.differences.Compare(&results[i], &results[j])...)
		}
	}
	return diffs
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/resilience"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

const annotateConcurrency = 8

// ProfileSource supplies behavior profiles. tracking.Tracker implements it.
type ProfileSource interface {
	GetUserProfile(ctx context.Context, userID string) (*tracking.UserBehaviorProfile, error)
}

// Publisher publishes domain events. events.Bus implements it.
type Publisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// Options configures an Engine. Only Vehicles is required.
type Options struct {
	Config    *Config
	Vehicles  vehicle.DataProvider
	Profiles  ProfileSource
	Peers     vehicle.PeerSimilarityProvider
	Embedder  vehicle.EmbeddingProvider
	Trending  vehicle.TrendingScoreProvider
	Urgency   vehicle.UrgencySignalProvider
	Explainer Explainer
	Cache     CacheStore
	Publisher Publisher
	Logger    zerolog.Logger
	Now       func() time.Time
}

// Engine produces recommendations. It is safe for concurrent use.
type Engine struct {
	config    *Config
	vehicles  vehicle.DataProvider
	profiles  ProfileSource
	peers     vehicle.PeerSimilarityProvider
	embedder  vehicle.EmbeddingProvider
	trending  vehicle.TrendingScoreProvider
	urgency   vehicle.UrgencySignalProvider
	explainer Explainer
	cache     CacheStore
	publisher Publisher
	logger    zerolog.Logger
	now       func() time.Time

	peerBreaker  *resilience.Breaker[[]vehicle.PeerUser]
	embedBreaker *resilience.Breaker[[][]float64]

	feedback *feedbackMemory

	// Metrics
	requestCount     atomic.Int64
	cacheHits        atomic.Int64
	cacheMisses      atomic.Int64
	errorCount       atomic.Int64
	feedbackAccepted atomic.Int64
	feedbackRejected atomic.Int64

	statsMu           sync.Mutex
	algorithmFailures map[string]int64
	groupAssignments  map[string]int64
}

// NewEngine creates a recommendation engine.
//
//nolint:gocritic // hugeParam: options are read once at construction
func NewEngine(opts Options) (*Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if opts.Vehicles == nil {
		return nil, fmt.Errorf("vehicle data provider is required")
	}

	logger := opts.Logger.With().Str("component", "recommend").Logger()

	now := opts.Now
	if now == nil {
		now = time.Now
	}
	explainer := opts.Explainer
	if explainer == nil {
		explainer = TemplateExplainer{}
	}
	cache := opts.Cache
	if cache == nil && cfg.Cache.Enabled {
		cache = NewMemoryCache(cfg.Cache.MaxEntries, cfg.Cache.EvictCount)
	}

	return &Engine{
		config:            cfg.Clone(),
		vehicles:          opts.Vehicles,
		profiles:          opts.Profiles,
		peers:             opts.Peers,
		embedder:          opts.Embedder,
		trending:          opts.Trending,
		urgency:           opts.Urgency,
		explainer:         explainer,
		cache:             cache,
		publisher:         opts.Publisher,
		logger:            logger,
		now:               now,
		peerBreaker:       resilience.New[[]vehicle.PeerUser](resilience.DefaultSettings("peer-similarity")),
		embedBreaker:      resilience.New[[][]float64](resilience.DefaultSettings("recommend-embeddings")),
		feedback:          newFeedbackMemory(),
		algorithmFailures: make(map[string]int64),
		groupAssignments:  make(map[string]int64),
	}, nil
}

// Recommend generates recommendations for a user.
//
// An empty user id or unknown type is InvalidArgument. Every collaborator
// failure degrades the result instead of failing the request.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) Recommend(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	e.requestCount.Add(1)

	req, err := e.prepareRequest(req)
	if err != nil {
		e.errorCount.Add(1)
		metrics.RecordRecommendation("invalid", 0, time.Since(start))
		return nil, err
	}

	logger := e.createRequestLogger(req)
	logger.Debug().Msg("processing recommendation request")

	group := e.assignGroup(req.UserID)

	// Check cache early return
	cacheKey := CacheKey(req)
	if res := e.tryGetCachedResult(ctx, cacheKey, group, start, logger); res != nil {
		return res, nil
	}

	profile := e.loadProfile(ctx, req.UserID, logger)
	rejected, avoid := e.feedback.exclusions(req.UserID)
	prefs := buildPreferences(profile, avoid, req.SearchQuery)
	contexts := e.loadContextVehicles(ctx, req.ContextVehicleIDs, logger)

	candidates := e.generateCandidates(ctx, req.ContextVehicleIDs, prefs, req.SearchQuery, rejected, logger)
	if len(candidates) == 0 {
		logger.Debug().Msg("no candidates available")
		res := e.buildResult(req, group, nil, 0, start)
		metrics.RecordRecommendation("empty", 0, time.Since(start))
		return res, nil
	}

	in := &scoringInput{
		userID:     req.UserID,
		candidates: candidates,
		contexts:   contexts,
		prefs:      prefs,
	}
	results := e.runAlgorithms(ctx, e.algorithmsFor(req.Type), in)
	scored := e.combineScores(req.Type, group, results, in, logger)
	if len(scored) == 0 && req.Type == TypeHybrid {
		scored = e.trendingFallback(ctx, candidates)
	}

	rankScored(scored)
	if len(scored) > req.Limit {
		scored = scored[:req.Limit]
	}

	recs := e.annotate(ctx, req, profile, scored, logger)
	res := e.buildResult(req, group, recs, len(candidates), start)
	e.cacheResult(ctx, cacheKey, res, logger)

	metrics.RecordRecommendation("success", len(recs), time.Since(start))
	logger.Debug().
		Int("candidates", len(candidates)).
		Int("returned", len(recs)).
		Str("group", group.Name).
		Float64("processing_time", res.ProcessingTime).
		Msg("recommendation complete")

	return res, nil
}

// prepareRequest validates the request and applies defaults.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) prepareRequest(req Request) (Request, error) {
	req.UserID = strings.TrimSpace(req.UserID)
	if req.UserID == "" {
		return req, vehicle.InvalidArgument("recommend", msgUserRequired)
	}

	t, ok := ParseType(string(req.Type))
	if !ok {
		return req, vehicle.InvalidArgument("recommend", msgUnknownType+string(req.Type))
	}
	req.Type = t

	if req.Limit <= 0 {
		req.Limit = e.config.Limits.DefaultLimit
	}
	if req.Limit > e.config.Limits.MaxLimit {
		req.Limit = e.config.Limits.MaxLimit
	}

	req.SearchQuery = strings.TrimSpace(req.SearchQuery)

	seen := make(map[string]struct{}, len(req.ContextVehicleIDs))
	ids := make([]string, 0, len(req.ContextVehicleIDs))
	for _, id := range req.ContextVehicleIDs {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	req.ContextVehicleIDs = ids

	return req, nil
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) createRequestLogger(req Request) zerolog.Logger {
	return e.logger.With().
		Str("user_id", req.UserID).
		Str("type", req.Type.String()).
		Int("limit", req.Limit).
		Str("session_id", req.SessionID).
		Logger()
}

func (e *Engine) assignGroup(userID string) GroupWeights {
	group := assignGroup(userID, e.config.Groups)
	metrics.RecordABAssignment(group.Name)

	e.statsMu.Lock()
	e.groupAssignments[group.Name]++
	e.statsMu.Unlock()
	return group
}

// tryGetCachedResult returns a cached result marked cached, or nil.
//
//nolint:gocritic // hugeParam: group passed by value for immutability
func (e *Engine) tryGetCachedResult(ctx context.Context, key string, group GroupWeights, start time.Time, logger zerolog.Logger) *Result {
	if e.cache == nil {
		return nil
	}

	res, err := e.cache.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrCacheMiss) {
			metrics.RecordDependencyDegraded("recommend_cache")
			logger.Warn().Err(err).Msg("cache read failed, recomputing")
		}
		e.cacheMisses.Add(1)
		metrics.RecordCacheMiss("recommend")
		return nil
	}

	e.cacheHits.Add(1)
	metrics.RecordCacheHit("recommend")
	res.Cached = true
	res.ABTestGroup = group.Name
	res.ProcessingTime = round(time.Since(start).Seconds(), 4)
	metrics.RecordRecommendation("cached", len(res.Recommendations), time.Since(start))
	logger.Debug().Msg("cache hit")
	return res
}

func (e *Engine) cacheResult(ctx context.Context, key string, res *Result, logger zerolog.Logger) {
	if e.cache == nil || len(res.Recommendations) == 0 {
		return
	}
	if err := e.cache.Set(ctx, key, res, e.config.Cache.TTL); err != nil {
		logger.Warn().Err(err).Msg("cache write failed")
	}
}

// loadProfile returns the user's profile, or nil for unknown users and on failure.
func (e *Engine) loadProfile(ctx context.Context, userID string, logger zerolog.Logger) *tracking.UserBehaviorProfile {
	if e.profiles == nil {
		return nil
	}
	profile, err := e.profiles.GetUserProfile(ctx, userID)
	if err != nil {
		if !errors.Is(err, tracking.ErrProfileNotFound) {
			metrics.RecordDependencyDegraded("profiles")
			logger.Warn().Err(err).Msg("profile unavailable, continuing without personalization")
		}
		return nil
	}
	return profile
}

func (e *Engine) loadContextVehicles(ctx context.Context, ids []string, logger zerolog.Logger) []vehicle.Record {
	if len(ids) == 0 {
		return nil
	}

	cctx, cancel := context.WithTimeout(ctx, e.config.Limits.AlgorithmTimeout)
	defer cancel()

	recs, err := e.vehicles.GetVehiclesByIDs(cctx, ids)
	if err != nil {
		metrics.RecordDependencyDegraded("vehicles")
		logger.Warn().Err(err).Msg("context vehicles unavailable")
		return nil
	}
	if len(recs) < len(ids) {
		logger.Debug().Int("requested", len(ids)).Int("found", len(recs)).Msg("some context vehicles not found")
	}
	return recs
}

// rankScored sorts by score descending, ties by vehicle id.
func rankScored(items []scoredCandidate) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].score != items[j].score {
			return items[i].score > items[j].score
		}
		return items[i].record.ID < items[j].record.ID
	})
}

// annotate builds the recommendations with trending, urgency and
// explanations. Annotation failures leave the affected field empty.
//
//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) annotate(ctx context.Context, req Request, profile *tracking.UserBehaviorProfile, scored []scoredCandidate, logger zerolog.Logger) []Recommendation {
	recs := make([]Recommendation, len(scored))

	explainCtx := ctx
	if req.IncludeExplanations {
		var cancel context.CancelFunc
		explainCtx, cancel = context.WithTimeout(ctx, e.config.Limits.ExplanationTimeout)
		defer cancel()
	}

	var g errgroup.Group
	g.SetLimit(annotateConcurrency)

	for i := range scored {
		g.Go(func() error {
			defer func() {
				if r := recover(); r != nil {
					logger.Error().Interface("panic", r).Str("vehicle_id", scored[i].record.ID).Msg("annotation panicked")
				}
			}()
			recs[i] = e.annotateOne(ctx, explainCtx, req, profile, &scored[i], logger)
			return nil
		})
	}
	_ = g.Wait()

	// A panicking annotation leaves a zero value; rebuild it without extras.
	for i := range recs {
		if recs[i].VehicleID == "" {
			recs[i] = baseRecommendation(&scored[i])
		}
	}
	return recs
}

//nolint:gocritic // hugeParam: req passed by value for immutability
func (e *Engine) annotateOne(ctx, explainCtx context.Context, req Request, profile *tracking.UserBehaviorProfile, sc *scoredCandidate, logger zerolog.Logger) Recommendation {
	rec := baseRecommendation(sc)

	if e.trending != nil {
		if score, err := e.trending.TrendingScore(ctx, sc.record.ID); err == nil {
			ts := round(clamp01(score), 3)
			rec.TrendingScore = &ts
		} else {
			logger.Debug().Err(err).Str("vehicle_id", sc.record.ID).Msg("trending score unavailable")
		}
	}

	if e.urgency != nil {
		if signals, err := e.urgency.UrgencySignals(ctx, sc.record); err == nil && signals != nil {
			rec.UrgencyIndicators = signals
		} else if err != nil {
			logger.Debug().Err(err).Str("vehicle_id", sc.record.ID).Msg("urgency signals unavailable")
		}
	}

	if req.IncludeExplanations {
		in := &ExplanationInput{
			Vehicle:     sc.record,
			Profile:     profile,
			Score:       sc.score,
			Factors:     rec.PersonalizationFactors,
			SearchQuery: req.SearchQuery,
		}
		text, err := e.explainer.Explain(explainCtx, in)
		if err != nil || text == "" {
			text = templateExplanation(in)
		}
		rec.Explanation = text
	}

	return rec
}

func baseRecommendation(sc *scoredCandidate) Recommendation {
	factors := sc.factors
	if factors == nil {
		factors = []string{}
	}
	return Recommendation{
		VehicleID:              sc.record.ID,
		VehicleData:            sc.record,
		RecommendationScore:    round(sc.score, 4),
		MatchPercentage:        round(sc.score*100, 1),
		PersonalizationFactors: factors,
		AlgorithmScores:        sc.scores,
		UrgencyIndicators:      []string{},
	}
}

//nolint:gocritic // hugeParam: req and group passed by value for immutability
func (e *Engine) buildResult(req Request, group GroupWeights, recs []Recommendation, candidates int, start time.Time) *Result {
	if recs == nil {
		recs = []Recommendation{}
	}
	return &Result{
		UserID:             req.UserID,
		Recommendations:    recs,
		RecommendationType: req.Type,
		AlgorithmVersion:   AlgorithmVersion,
		ABTestGroup:        group.Name,
		TotalCandidates:    candidates,
		ProcessingTime:     round(time.Since(start).Seconds(), 4),
		GeneratedAt:        e.now().UTC(),
	}
}

// InvalidateUser drops the user's cached recommendations. It lets the
// engine serve as the events.Invalidator of the cache invalidation consumer.
func (e *Engine) InvalidateUser(ctx context.Context, userID string) error {
	if e.cache == nil {
		return nil
	}
	if err := e.cache.InvalidateUser(ctx, userID); err != nil {
		return fmt.Errorf("invalidate recommendations for %s: %w", userID, err)
	}
	return nil
}

func (e *Engine) recordAlgorithmFailure(name string) {
	e.statsMu.Lock()
	e.algorithmFailures[name]++
	e.statsMu.Unlock()
}

// Stats returns a snapshot of the engine counters.
func (e *Engine) Stats() Stats {
	hits := e.cacheHits.Load()
	misses := e.cacheMisses.Load()

	s := Stats{
		Requests:          e.requestCount.Load(),
		CacheHits:         hits,
		CacheMisses:       misses,
		Errors:            e.errorCount.Load(),
		FeedbackAccepted:  e.feedbackAccepted.Load(),
		FeedbackRejected:  e.feedbackRejected.Load(),
		AlgorithmFailures: make(map[string]int64),
		GroupAssignments:  make(map[string]int64),
	}
	if total := hits + misses; total > 0 {
		s.HitRate = float64(hits) / float64(total)
	}

	e.statsMu.Lock()
	for k, v := range e.algorithmFailures {
		s.AlgorithmFailures[k] = v
	}
	for k, v := range e.groupAssignments {
		s.GroupAssignments[k] = v
	}
	e.statsMu.Unlock()

	return s
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

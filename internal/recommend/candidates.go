// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/otto/internal/metrics"
	"github.com/tomtom215/otto/internal/vehicle"
)

// candidateSources names each source for logging and ordering.
const (
	sourceSimilar    = "similar"
	sourcePreference = "preference"
	sourceQuery      = "query"
	sourceTrending   = "trending"
)

var sourceOrder = []string{sourceSimilar, sourcePreference, sourceQuery, sourceTrending}

// generateCandidates unions vehicles similar to the context vehicles,
// vehicles matching the user's preferences and trending vehicles. Sources
// run concurrently; a failing source is logged and contributes nothing.
// Context vehicles and excluded ids never appear in the output.
func (e *Engine) generateCandidates(ctx context.Context, contextIDs []string, prefs *preferences, query string, exclude map[string]struct{}, logger zerolog.Logger) []candidate {
	var (
		mu      sync.Mutex
		results = make(map[string][]candidate, len(sourceOrder))
	)
	collect := func(source string, items []candidate) {
		mu.Lock()
		results[source] = append(results[source], items...)
		mu.Unlock()
	}
	degrade := func(source string, err error) {
		metrics.RecordDependencyDegraded("candidates_" + source)
		logger.Warn().Err(err).Str("source", source).Msg("candidate source failed, continuing without it")
	}

	g, gctx := errgroup.WithContext(ctx)
	limits := e.config.Candidates

	if limits.SimilarPerContext > 0 {
		for _, id := range contextIDs {
			g.Go(func() error {
				cctx, cancel := context.WithTimeout(gctx, e.config.Limits.AlgorithmTimeout)
				defer cancel()

				similar, err := e.vehicles.GetSimilarVehicles(cctx, id, limits.SimilarPerContext)
				if err != nil {
					degrade(sourceSimilar, err)
					return nil
				}
				items := make([]candidate, len(similar))
				for i := range similar {
					items[i] = candidate{record: similar[i].Record, similarity: similar[i].Similarity}
				}
				collect(sourceSimilar, items)
				return nil
			})
		}
	}

	search := func(source string, filters vehicle.SearchFilters, limit int) {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, e.config.Limits.AlgorithmTimeout)
			defer cancel()

			found, err := e.vehicles.SearchVehicles(cctx, filters, limit)
			if err != nil {
				degrade(source, err)
				return nil
			}
			collect(source, recordsToCandidates(found))
			return nil
		})
	}

	if limits.Preference > 0 {
		if filters := prefs.filters(); !filters.IsEmpty() {
			search(sourcePreference, filters, limits.Preference)
		}
		if query != "" {
			search(sourceQuery, vehicle.SearchFilters{Query: query}, limits.Preference)
		}
	}

	if limits.Trending > 0 {
		g.Go(func() error {
			cctx, cancel := context.WithTimeout(gctx, e.config.Limits.AlgorithmTimeout)
			defer cancel()

			trending, err := e.vehicles.GetTrendingVehicles(cctx, limits.Trending)
			if err != nil {
				degrade(sourceTrending, err)
				return nil
			}
			collect(sourceTrending, recordsToCandidates(trending))
			return nil
		})
	}

	_ = g.Wait()

	skip := make(map[string]struct{}, len(contextIDs)+len(exclude))
	for _, id := range contextIDs {
		skip[id] = struct{}{}
	}
	for id := range exclude {
		skip[id] = struct{}{}
	}

	return mergeCandidates(results, skip)
}

// mergeCandidates de-duplicates candidates in source order. A vehicle seen
// several times keeps its highest provider similarity.
func mergeCandidates(results map[string][]candidate, skip map[string]struct{}) []candidate {
	index := make(map[string]int)
	merged := make([]candidate, 0)

	for _, source := range sourceOrder {
		for _, c := range results[source] {
			id := c.record.ID
			if id == "" {
				continue
			}
			if _, skipped := skip[id]; skipped {
				continue
			}
			if i, seen := index[id]; seen {
				if c.similarity > merged[i].similarity {
					merged[i].similarity = c.similarity
				}
				continue
			}
			index[id] = len(merged)
			merged = append(merged, c)
		}
	}
	return merged
}

func recordsToCandidates(records []vehicle.Record) []candidate {
	items := make([]candidate, len(records))
	for i := range records {
		items[i] = candidate{record: records[i]}
	}
	return items
}

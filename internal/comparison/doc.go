// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package comparison compares two to four vehicles side by side.

Engine.Compare validates the id list, fetches the records and analyses each
vehicle concurrently:

  - FeatureExtractor: specifications by category, free-text features by bucket
  - PriceAnalyzer: market position (below/at/above at ±5% of the average)
  - ScoreCalculator: 0.5 base plus weighted spec, feature, price and condition terms

It then runs DifferenceAnalyzer over every pair (i<j, input order) and, when
requested, SimilarityEngine, which embeds a description of each vehicle and
compares them by cosine similarity. A failing embedding service yields an
empty similarity map, never an error.

The heuristic tables (category weights, better-direction lists, keyword
tiers, normalization ranges, condition tiers) live in Rules and can be
replaced from YAML via LoadRules.
*/
package comparison

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

// Package recommend produces personalised vehicle recommendations.
//
// # Request Flow
//
//  1. Apply defaults and clamp the limit
//  2. Look up the per-request cache (memory or Redis), short-circuit on hit
//  3. Assign the user to a deterministic A/B group
//  4. Generate candidates: vehicles similar to the context vehicles, vehicles
//     matching the user's preferences and trending vehicles
//  5. Score candidates with the requested algorithm
//  6. Sort, truncate, annotate with trending and urgency signals
//  7. Explain each recommendation (LLM or template) and cache the result
//
// # Algorithms
//
//   - collaborative: liked vehicles of similar users, weighted by similarity
//   - content_based: weighted rubric over brand, price, body style, features
//     and search relevance
//   - similarity: best embedding similarity to any context vehicle
//   - hybrid (default): all three blended with the group's weights plus a
//     fixed similarity weight
//
// Collaborator failures degrade to empty or neutral scores. Only request
// validation errors are returned to the caller.
//
// # A/B Groups
//
// Users hash into control, variant_a or variant_b. Each group carries its
// own collaborative/content weight pair and the same user always lands in
// the same group.
//
// # Feedback
//
// ProcessFeedback validates shopper feedback, publishes it and drops the
// user's cached recommendations so the next request reflects it.
package recommend

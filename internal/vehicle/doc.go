// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

/*
Package vehicle defines the vehicle record consumed by the comparison and
recommendation engines, the collaborator interfaces those engines depend on,
and the typed errors they return.

# Records

Record is the typed form of a marketplace listing. Data that arrives from an
external catalog as a loosely shaped map is converted once, at the boundary,
with FromMap. Nothing in the engines mutates a Record.

# Collaborators

The engines never talk to a database or an analytics service directly. They
consume these interfaces instead:

  - DataProvider: vehicle lookup, similar vehicles, search and trending
  - EmbeddingProvider: text embeddings for semantic similarity
  - MarketDataProvider: market average, range, trend and demand
  - TrendingScoreProvider and UrgencySignalProvider: per-vehicle signals
  - PeerSimilarityProvider: users with similar taste, for collaborative filtering

Catalog is an in-memory DataProvider seeded with sample listings.
HeuristicMarketData, HashTrending and HashUrgency are deterministic defaults
for deployments without the corresponding services.

# Errors

Error carries a Kind (InvalidArgument, NotFound, DependencyFailure). Its
Error() text is exactly the user-facing message so callers may match on it.
*/
package vehicle

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import "errors"

var (
	errNoMarketData = errors.New("no market data provider configured")
	errNoEmbedder   = errors.New("no embedding provider configured")
)

// Validation messages. Callers match on these verbatim.
const (
	msgTooFewVehicles  = "at least 2 vehicles required"
	msgTooManyVehicles = "maximum 4 vehicles allowed"
	msgDuplicateIDs    = "vehicle IDs must be unique"
	msgNotFoundPrefix  = "vehicles not found: "
)

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import "errors"

// ErrCacheMiss is returned by CacheStore.Get when no live entry exists.
var ErrCacheMiss = errors.New("recommendation cache miss")

const (
	msgUserRequired = "user_id is required"
	msgUnknownType  = "unknown recommendation type: "
)

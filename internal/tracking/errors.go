// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package tracking

import "errors"

var (
	// ErrSessionNotFound is returned for unknown or expired sessions.
	ErrSessionNotFound = errors.New("session not found")

	// ErrProfileNotFound is returned when a user has no recorded activity.
	ErrProfileNotFound = errors.New("profile not found")
)

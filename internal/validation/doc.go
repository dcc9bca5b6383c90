// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

// Package validation provides struct validation for HTTP request bodies using
// go-playground/validator v10.
//
// A single validator instance is shared by all callers. Field names in errors
// come from the struct's json tags so messages match the wire format:
//
//	type CompareRequest struct {
//	    VehicleIDs []string `json:"vehicle_ids" validate:"dive,vehicleid"`
//	    UserID     string   `json:"user_id" validate:"omitempty,max=128"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    apiErr := verr.ToAPIError()
//	    // apiErr.Code == "VALIDATION_ERROR"
//	}
//
// # Custom Tags
//
//   - vehicleid: 1 to 128 characters of letters, digits, '.', '_', ':' or '-'
//   - rfc3339: empty or an RFC 3339 timestamp
package validation

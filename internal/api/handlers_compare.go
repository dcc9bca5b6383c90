// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/validation"
)

// Compare handles POST /api/v1/compare.
func (h *Handler) Compare(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req CompareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body: "+err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	ctx := r.Context()
	if req.UserID != "" {
		ctx = logging.ContextWithShopper(ctx, req.UserID, "")
	}
	ctx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.deps.Comparer.Compare(ctx, req.toComparison())
	if err != nil {
		rw.DomainError(err)
		return
	}

	if req.UserID != "" && h.deps.Tracker != nil {
		elapsed := time.Duration(result.ProcessingTime * float64(time.Second))
		// Detached from the request deadline so a slow comparison does not
		// lose the tracking write.
		h.deps.Tracker.TrackComparison(logging.ContextWithShopper(r.Context(), req.UserID, ""),
			req.UserID, req.VehicleIDs, result.ComparisonID, elapsed)
	}

	rw.Success(result)
}

// GetVehicle handles GET /api/v1/vehicles/{id}.
func (h *Handler) GetVehicle(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	ctx, cancel := h.requestContext(r.Context())
	defer cancel()

	rec, err := h.deps.Vehicles.Get(ctx, chi.URLParam(r, "id"))
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(rec)
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/validation"
)

// trackResponse is the body of an interaction reply.
type trackResponse struct {
	Tracked bool `json:"tracked"`
}

// TrackInteraction handles POST /api/v1/interactions. It always answers 202;
// events the tracker rejects come back as tracked=false.
func (h *Handler) TrackInteraction(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var ev tracking.InteractionEvent
	if err := decodeJSON(w, r, &ev); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring undecodable interaction")
		rw.Status(http.StatusAccepted, trackResponse{Tracked: false})
		return
	}

	ctx := logging.ContextWithShopper(r.Context(), ev.UserID, ev.SessionID)
	tracked := h.deps.Tracker.TrackInteraction(ctx, ev)
	rw.Status(http.StatusAccepted, trackResponse{Tracked: tracked})
}

// GetUserProfile handles GET /api/v1/users/{userID}/profile.
func (h *Handler) GetUserProfile(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := chi.URLParam(r, "userID")

	ctx, cancel := h.requestContext(logging.ContextWithShopper(r.Context(), userID, ""))
	defer cancel()

	profile, err := h.deps.Tracker.GetUserProfile(ctx, userID)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(profile)
}

// GetUserStats handles GET /api/v1/users/{userID}/stats?days=N.
func (h *Handler) GetUserStats(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	userID := chi.URLParam(r, "userID")

	q, err := parseStatsQuery(r)
	if err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeValidation, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&q); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	ctx, cancel := h.requestContext(logging.ContextWithShopper(r.Context(), userID, ""))
	defer cancel()

	stats, err := h.deps.Tracker.GetInteractionStats(ctx, userID, q.Days)
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(stats)
}

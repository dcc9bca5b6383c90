// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"net/http"

	"github.com/tomtom215/otto/internal/logging"
	"github.com/tomtom215/otto/internal/recommend"
	"github.com/tomtom215/otto/internal/validation"
)

// Recommend handles POST /api/v1/recommendations.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req RecommendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		rw.Error(http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON body: "+err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ValidationFailed(verr)
		return
	}

	ctx := logging.ContextWithShopper(r.Context(), req.UserID, req.SessionID)
	ctx, cancel := h.requestContext(ctx)
	defer cancel()

	result, err := h.deps.Recommender.Recommend(ctx, req.toRecommend())
	if err != nil {
		rw.DomainError(err)
		return
	}
	rw.Success(result)
}

// RecommendationStats handles GET /api/v1/recommendations/stats.
func (h *Handler) RecommendationStats(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.deps.Recommender.Stats())
}

// feedbackResponse is the body of a feedback reply.
type feedbackResponse struct {
	Accepted bool `json:"accepted"`
}

// Feedback handles POST /api/v1/feedback. Invalid feedback is answered with
// accepted=false rather than an error.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var fb recommend.Feedback
	if err := decodeJSON(w, r, &fb); err != nil {
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Ignoring undecodable feedback")
		rw.Success(feedbackResponse{Accepted: false})
		return
	}

	ctx := logging.ContextWithShopper(r.Context(), fb.UserID, "")
	accepted := h.deps.Recommender.ProcessFeedback(ctx, fb)
	rw.Success(feedbackResponse{Accepted: accepted})
}

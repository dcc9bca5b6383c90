// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/recommend"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// errEmptyBody is returned by decodeJSON for a request without a body.
var errEmptyBody = errors.New("request body is empty")

// CompareRequest is the body of POST /api/v1/compare. The 2..4 count and
// duplicate checks belong to the comparison engine so its messages reach
// the client unchanged.
type CompareRequest struct {
	VehicleIDs                []string `json:"vehicle_ids" validate:"max=16,dive,vehicleid"`
	Criteria                  []string `json:"criteria,omitempty" validate:"max=16,dive,min=1,max=64"`
	IncludeSemanticSimilarity *bool    `json:"include_semantic_similarity,omitempty"`
	IncludePriceAnalysis      *bool    `json:"include_price_analysis,omitempty"`
	UserID                    string   `json:"user_id,omitempty" validate:"max=128"`
}

// toComparison applies the defaults: semantic similarity and price
// analysis are on unless explicitly disabled.
func (c *CompareRequest) toComparison() comparison.Request {
	return comparison.Request{
		VehicleIDs:                c.VehicleIDs,
		Criteria:                  c.Criteria,
		IncludeSemanticSimilarity: c.IncludeSemanticSimilarity == nil || *c.IncludeSemanticSimilarity,
		IncludePriceAnalysis:      c.IncludePriceAnalysis == nil || *c.IncludePriceAnalysis,
		UserID:                    c.UserID,
	}
}

// RecommendRequest is the body of POST /api/v1/recommendations.
type RecommendRequest struct {
	UserID              string   `json:"user_id" validate:"max=128"`
	SessionID           string   `json:"session_id,omitempty" validate:"max=128"`
	ContextVehicleIDs   []string `json:"context_vehicle_ids,omitempty" validate:"max=20,dive,vehicleid"`
	SearchQuery         string   `json:"search_query,omitempty" validate:"max=256"`
	RecommendationType  string   `json:"recommendation_type,omitempty"`
	Limit               int      `json:"limit,omitempty" validate:"gte=0,lte=100"`
	IncludeExplanations *bool    `json:"include_explanations,omitempty"`
}

// toRecommend converts the body to an engine request. Explanations default
// to on; limit clamping and type parsing are left to the engine.
func (rr *RecommendRequest) toRecommend() recommend.Request {
	return recommend.Request{
		UserID:              rr.UserID,
		SessionID:           rr.SessionID,
		ContextVehicleIDs:   rr.ContextVehicleIDs,
		SearchQuery:         rr.SearchQuery,
		Type:                recommend.Type(rr.RecommendationType),
		Limit:               rr.Limit,
		IncludeExplanations: rr.IncludeExplanations == nil || *rr.IncludeExplanations,
	}
}

// StatsQuery holds the query parameters of GET /users/{userID}/stats.
type StatsQuery struct {
	Days int `json:"days" validate:"min=1,max=365"`
}

// defaultStatsDays is used when ?days is absent.
const defaultStatsDays = 7

// parseStatsQuery reads ?days, defaulting to seven.
func parseStatsQuery(r *http.Request) (StatsQuery, error) {
	q := StatsQuery{Days: defaultStatsDays}
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return q, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return q, fmt.Errorf("days must be an integer")
	}
	q.Days = days
	return q, nil
}

// decodeJSON decodes a bounded JSON body into dst.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer body.Close()

	dec := json.NewDecoder(body)
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return err
	}
	return nil
}

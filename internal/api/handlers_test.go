// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package api

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/otto/internal/comparison"
	"github.com/tomtom215/otto/internal/embedding"
	"github.com/tomtom215/otto/internal/recommend"
	"github.com/tomtom215/otto/internal/tracking"
	"github.com/tomtom215/otto/internal/vehicle"
)

// fakeRecommender records requests and returns canned results.
type fakeRecommender struct {
	mu        sync.Mutex
	requests  []recommend.Request
	feedback  []recommend.Feedback
	result    *recommend.Result
	err       error
	acceptAll bool
}

func (f *fakeRecommender) Recommend(_ context.Context, req recommend.Request) (*recommend.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeRecommender) ProcessFeedback(_ context.Context, fb recommend.Feedback) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.feedback = append(f.feedback, fb)
	return f.acceptAll && fb.UserID != ""
}

func (f *fakeRecommender) Stats() recommend.Stats {
	return recommend.Stats{Requests: 3, CacheHits: 1, CacheMisses: 2, HitRate: 1.0 / 3}
}

type testEnv struct {
	handler     http.Handler
	tracker     *tracking.Tracker
	recommender *fakeRecommender
}

func newTestEnv(t *testing.T, modify func(*Dependencies)) *testEnv {
	t.Helper()

	catalog := vehicle.NewCatalog(vehicle.SampleVehicles()...)
	tracker := tracking.NewTracker(tracking.DefaultConfig(), tracking.WithVehicles(catalog))
	rec := &fakeRecommender{
		acceptAll: true,
		result: &recommend.Result{
			UserID:             "shopper",
			Recommendations:    []recommend.Recommendation{},
			RecommendationType: recommend.TypeHybrid,
			ABTestGroup:        "control",
		},
	}

	deps := Dependencies{
		Comparer: comparison.NewEngine(catalog, comparison.Options{
			Market:           vehicle.NewHeuristicMarketData(nil),
			Embedder:         embedding.NewHashing(64),
			EmbeddingTimeout: time.Second,
			Logger:           zerolog.Nop(),
		}),
		Recommender:    rec,
		Tracker:        tracker,
		Vehicles:       catalog,
		RequestTimeout: 5 * time.Second,
		Logger:         zerolog.Nop(),
		Version:        "test",
	}
	if modify != nil {
		modify(&deps)
	}

	cfg := DefaultRouterConfig()
	cfg.RateLimitRequests = 0
	return &testEnv{
		handler:     NewRouter(NewHandler(deps), cfg),
		tracker:     tracker,
		recommender: rec,
	}
}

// envelope mirrors APIResponse with raw data for decoding in tests.
type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *APIError       `json:"error"`
	Meta    APIMeta         `json:"meta"`
}

func (e *testEnv) do(t *testing.T, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.handler.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode envelope: %v\n%s", err, rec.Body.String())
		}
	}
	return rec, env
}

func TestCompare(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/compare",
		`{"vehicle_ids":["veh-camry-2023","veh-accord-2023"],"user_id":"shopper"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !resp.Success || resp.Meta.RequestID == "" || resp.Meta.Timestamp.IsZero() {
		t.Errorf("unexpected envelope: %+v", resp)
	}

	var result comparison.Result
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.ComparisonID == "" || len(result.ComparisonResults) != 2 {
		t.Errorf("result = %+v", result)
	}
	if len(result.SemanticSimilarity) != 1 {
		t.Errorf("semantic similarity should default on with one pair: %v", result.SemanticSimilarity)
	}
	if result.ComparisonResults[0].PriceAnalysis == nil {
		t.Error("price analysis should default on")
	}

	profile, err := env.tracker.GetUserProfile(context.Background(), "shopper")
	if err != nil {
		t.Fatalf("comparison was not tracked: %v", err)
	}
	if profile.TotalComparisons != 1 {
		t.Errorf("TotalComparisons = %d, want 1", profile.TotalComparisons)
	}
}

func TestCompare_Errors(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"malformed json", `{"vehicle_ids":`, http.StatusBadRequest, ErrCodeInvalidJSON, "Invalid JSON"},
		{"empty body", ``, http.StatusBadRequest, ErrCodeInvalidJSON, "empty"},
		{"too few", `{"vehicle_ids":["veh-camry-2023"]}`, http.StatusBadRequest, ErrCodeInvalidArgument, "at least 2 vehicles required"},
		{"too many", `{"vehicle_ids":["a","b","c","d","e"]}`, http.StatusBadRequest, ErrCodeInvalidArgument, "maximum 4 vehicles allowed"},
		{"duplicates", `{"vehicle_ids":["veh-camry-2023","veh-camry-2023"]}`, http.StatusBadRequest, ErrCodeInvalidArgument, "vehicle IDs must be unique"},
		{"bad id", `{"vehicle_ids":["veh camry","veh-accord-2023"]}`, http.StatusBadRequest, ErrCodeValidation, "vehicle_ids[0]"},
		{"unknown vehicle", `{"vehicle_ids":["veh-camry-2023","veh-missing"]}`, http.StatusNotFound, ErrCodeNotFound, "veh-missing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec, resp := env.do(t, http.MethodPost, "/api/v1/compare", tt.body)
			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
			if resp.Success || resp.Error == nil {
				t.Fatalf("expected error envelope: %s", rec.Body.String())
			}
			if resp.Error.Code != tt.wantCode {
				t.Errorf("code = %q, want %q", resp.Error.Code, tt.wantCode)
			}
			if !strings.Contains(resp.Error.Message, tt.wantMsg) {
				t.Errorf("message = %q, want it to contain %q", resp.Error.Message, tt.wantMsg)
			}
		})
	}
}

func TestCompare_InternalErrorIsHidden(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, func(d *Dependencies) {
		d.Comparer = comparerFunc(func(context.Context, comparison.Request) (*comparison.Result, error) {
			return nil, errors.New("badger: disk on fire")
		})
	})

	rec, resp := env.do(t, http.MethodPost, "/api/v1/compare", `{"vehicle_ids":["a","b"]}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if resp.Error.Code != ErrCodeInternalError || strings.Contains(resp.Error.Message, "badger") {
		t.Errorf("internal error leaked: %+v", resp.Error)
	}
}

type comparerFunc func(context.Context, comparison.Request) (*comparison.Result, error)

func (f comparerFunc) Compare(ctx context.Context, req comparison.Request) (*comparison.Result, error) {
	return f(ctx, req)
}

func TestRecommend(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, resp := env.do(t, http.MethodPost, "/api/v1/recommendations",
		`{"user_id":"shopper","context_vehicle_ids":["veh-rav4-2022"],"recommendation_type":"content_based","limit":5}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rec.Code, rec.Body.String())
	}

	var result recommend.Result
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		t.Fatal(err)
	}
	if result.ABTestGroup != "control" {
		t.Errorf("result = %+v", result)
	}

	got := env.recommender.requests[0]
	if got.Type != recommend.TypeContentBased || got.Limit != 5 || !got.IncludeExplanations {
		t.Errorf("engine request = %+v", got)
	}
	if len(got.ContextVehicleIDs) != 1 || got.ContextVehicleIDs[0] != "veh-rav4-2022" {
		t.Errorf("context ids = %v", got.ContextVehicleIDs)
	}

	t.Run("explanations can be disabled", func(t *testing.T) {
		_, _ = env.do(t, http.MethodPost, "/api/v1/recommendations", `{"user_id":"shopper","include_explanations":false}`)
		env.recommender.mu.Lock()
		defer env.recommender.mu.Unlock()
		if last := env.recommender.requests[len(env.recommender.requests)-1]; last.IncludeExplanations {
			t.Error("include_explanations=false was ignored")
		}
	})
}

func TestRecommend_Errors(t *testing.T) {
	t.Parallel()

	t.Run("engine invalid argument", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, nil)
		env.recommender.err = vehicle.InvalidArgument("recommend", "user_id is required")

		rec, resp := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"limit":3}`)
		if rec.Code != http.StatusBadRequest || resp.Error.Code != ErrCodeInvalidArgument {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if resp.Error.Message != "user_id is required" {
			t.Errorf("message = %q", resp.Error.Message)
		}
	})

	t.Run("limit validation", func(t *testing.T) {
		t.Parallel()
		env := newTestEnv(t, nil)
		rec, resp := env.do(t, http.MethodPost, "/api/v1/recommendations", `{"user_id":"u","limit":500}`)
		if rec.Code != http.StatusBadRequest || resp.Error.Code != ErrCodeValidation {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		if len(env.recommender.requests) != 0 {
			t.Error("engine should not be called for invalid requests")
		}
	})
}

func TestRecommendationStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/recommendations/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var stats recommend.Stats
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.Requests != 3 || stats.CacheHits != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestTrackInteraction(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	tests := []struct {
		name        string
		body        string
		wantTracked bool
	}{
		{"view", `{"user_id":"buyer","interaction_type":"view","vehicle_ids":["veh-rav4-2022"]}`, true},
		{"search", `{"user_id":"buyer","session_id":"s-1","interaction_type":"search","search_query":"awd suv"}`, true},
		{"unknown type", `{"user_id":"buyer","interaction_type":"teleport"}`, false},
		{"missing user", `{"interaction_type":"view"}`, false},
		{"bad timestamp", `{"user_id":"buyer","interaction_type":"view","timestamp":"yesterday"}`, false},
		{"malformed json", `{"user_id":`, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodPost, "/api/v1/interactions", tt.body)
			if rec.Code != http.StatusAccepted {
				t.Fatalf("status = %d, want 202", rec.Code)
			}
			var body struct {
				Tracked bool `json:"tracked"`
			}
			if err := json.Unmarshal(resp.Data, &body); err != nil {
				t.Fatal(err)
			}
			if body.Tracked != tt.wantTracked {
				t.Errorf("tracked = %v, want %v", body.Tracked, tt.wantTracked)
			}
		})
	}
}

func TestUserProfileAndStats(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/users/nobody/profile", "")
	if rec.Code != http.StatusNotFound || resp.Error.Code != ErrCodeNotFound {
		t.Fatalf("unknown user: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	for _, body := range []string{
		`{"user_id":"buyer","interaction_type":"view","vehicle_ids":["veh-rav4-2022"]}`,
		`{"user_id":"buyer","interaction_type":"save","vehicle_ids":["veh-rav4-2022"]}`,
		`{"user_id":"buyer","interaction_type":"view","vehicle_ids":["veh-crv-2022"]}`,
	} {
		env.do(t, http.MethodPost, "/api/v1/interactions", body)
	}

	rec, resp = env.do(t, http.MethodGet, "/api/v1/users/buyer/profile", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("profile status = %d: %s", rec.Code, rec.Body.String())
	}
	var profile tracking.UserBehaviorProfile
	if err := json.Unmarshal(resp.Data, &profile); err != nil {
		t.Fatal(err)
	}
	if profile.TotalViews != 2 || profile.TotalSaves != 1 {
		t.Errorf("profile counts = %d views / %d saves", profile.TotalViews, profile.TotalSaves)
	}

	rec, resp = env.do(t, http.MethodGet, "/api/v1/users/buyer/stats", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("stats status = %d", rec.Code)
	}
	var stats tracking.InteractionStats
	if err := json.Unmarshal(resp.Data, &stats); err != nil {
		t.Fatal(err)
	}
	if stats.PeriodDays != 7 || stats.TotalInteractions != 3 || stats.UniqueVehiclesViewed != 2 {
		t.Errorf("stats = %+v", stats)
	}

	for _, q := range []string{"days=0", "days=366", "days=abc"} {
		rec, resp = env.do(t, http.MethodGet, "/api/v1/users/buyer/stats?"+q, "")
		if rec.Code != http.StatusBadRequest || resp.Error.Code != ErrCodeValidation {
			t.Errorf("%s: status = %d, body = %s", q, rec.Code, rec.Body.String())
		}
	}
}

func TestFeedback(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	tests := []struct {
		name         string
		body         string
		wantAccepted bool
	}{
		{"accepted", `{"user_id":"buyer","vehicle_id":"veh-rav4-2022","feedback_type":"like","rating":5}`, true},
		{"rejected by engine", `{"vehicle_id":"veh-rav4-2022","feedback_type":"like"}`, false},
		{"malformed", `not json`, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, resp := env.do(t, http.MethodPost, "/api/v1/feedback", tt.body)
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d", rec.Code)
			}
			var body struct {
				Accepted bool `json:"accepted"`
			}
			if err := json.Unmarshal(resp.Data, &body); err != nil {
				t.Fatal(err)
			}
			if body.Accepted != tt.wantAccepted {
				t.Errorf("accepted = %v, want %v", body.Accepted, tt.wantAccepted)
			}
		})
	}

	if len(env.recommender.feedback) != 2 {
		t.Errorf("engine saw %d feedback items, want 2 (malformed never reaches it)", len(env.recommender.feedback))
	}
	if fb := env.recommender.feedback[0]; fb.Rating != 5 || fb.FeedbackType != "like" {
		t.Errorf("feedback = %+v", fb)
	}
}

func TestGetVehicle(t *testing.T) {
	t.Parallel()
	env := newTestEnv(t, nil)

	rec, resp := env.do(t, http.MethodGet, "/api/v1/vehicles/veh-camry-2023", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var v vehicle.Record
	if err := json.Unmarshal(resp.Data, &v); err != nil {
		t.Fatal(err)
	}
	if v.Make != "Toyota" || v.Model != "Camry" {
		t.Errorf("vehicle = %+v", v)
	}

	rec, _ = env.do(t, http.MethodGet, "/api/v1/vehicles/veh-nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown vehicle status = %d", rec.Code)
	}
}

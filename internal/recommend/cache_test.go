// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package recommend

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"
)

func TestCacheKey(t *testing.T) {
	t.Parallel()

	base := Request{
		UserID:            "user-1",
		Type:              TypeHybrid,
		Limit:             10,
		ContextVehicleIDs: []string{"a", "b"},
		SearchQuery:       "awd suv",
	}

	if CacheKey(base) != CacheKey(base) {
		t.Fatal("cache key is not deterministic")
	}
	if !strings.HasPrefix(CacheKey(base), "rec:757365722d31:") {
		t.Errorf("key %q does not carry the user prefix", CacheKey(base))
	}

	variants := []struct {
		name   string
		modify func(*Request)
	}{
		{"user", func(r *Request) { r.UserID = "user-2" }},
		{"type", func(r *Request) { r.Type = TypeSimilarity }},
		{"limit", func(r *Request) { r.Limit = 5 }},
		{"context", func(r *Request) { r.ContextVehicleIDs = []string{"a"} }},
		{"query", func(r *Request) { r.SearchQuery = "truck" }},
	}
	for _, v := range variants {
		t.Run(v.name, func(t *testing.T) {
			t.Parallel()
			req := base
			req.ContextVehicleIDs = append([]string(nil), base.ContextVehicleIDs...)
			v.modify(&req)
			if CacheKey(req) == CacheKey(base) {
				t.Errorf("changing %s did not change the key", v.name)
			}
		})
	}

	t.Run("include explanations does not change key", func(t *testing.T) {
		t.Parallel()
		req := base
		req.IncludeExplanations = true
		if CacheKey(req) != CacheKey(base) {
			t.Error("include_explanations should not be part of the key")
		}
	})
}

func newTestResult(userID string, ids ...string) *Result {
	res := &Result{UserID: userID, ABTestGroup: "control", Recommendations: []Recommendation{}}
	for _, id := range ids {
		res.Recommendations = append(res.Recommendations, Recommendation{
			VehicleID:              id,
			RecommendationScore:    0.5,
			PersonalizationFactors: []string{FactorContentMatch},
			UrgencyIndicators:      []string{},
		})
	}
	return res
}

func TestUserKeyPrefix_IsolatesUsers(t *testing.T) {
	t.Parallel()

	alice := userKeyPrefix("alice")
	for _, other := range []string{"alice:x", "alice*", "alice?", "alice[a]"} {
		key := CacheKey(Request{UserID: other, Type: TypeHybrid, Limit: 10})
		if strings.HasPrefix(key, alice) {
			t.Errorf("key %q for %q falls under alice's prefix %q", key, other, alice)
		}
		if strings.ContainsAny(userKeyPrefix(other), "*?[]") {
			t.Errorf("prefix for %q carries glob characters: %q", other, userKeyPrefix(other))
		}
	}
}

func TestMemoryCache_GetSet(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewMemoryCache(10, 2)

	if _, err := cache.Get(ctx, "missing"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get(missing) error = %v, want ErrCacheMiss", err)
	}

	original := newTestResult("u1", "veh-1")
	if err := cache.Set(ctx, "k1", original, time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Mutating the stored value or the returned value must not leak.
	original.Recommendations[0].VehicleID = "mutated"
	got, err := cache.Get(ctx, "k1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Recommendations[0].VehicleID != "veh-1" {
		t.Errorf("cached value was mutated through the caller's pointer")
	}
	got.Recommendations[0].PersonalizationFactors[0] = "changed"
	again, _ := cache.Get(ctx, "k1")
	if again.Recommendations[0].PersonalizationFactors[0] != FactorContentMatch {
		t.Errorf("cached value was mutated through a returned copy")
	}

	if err := cache.Set(ctx, "nil", nil, time.Minute); err == nil {
		t.Error("Set(nil) should fail")
	}
}

func TestMemoryCache_Expiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(10, 2)
	cache.now = func() time.Time { return now }

	if err := cache.Set(ctx, "k", newTestResult("u1", "veh-1"), 15*time.Minute); err != nil {
		t.Fatal(err)
	}

	now = now.Add(14 * time.Minute)
	if _, err := cache.Get(ctx, "k"); err != nil {
		t.Fatalf("entry expired early: %v", err)
	}

	now = now.Add(2 * time.Minute)
	if _, err := cache.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("Get() after ttl error = %v, want ErrCacheMiss", err)
	}
	if cache.Len() != 0 {
		t.Errorf("expired entry not removed, Len() = %d", cache.Len())
	}
}

func TestMemoryCache_EvictsOldest(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewMemoryCache(5, 2)

	for i := 0; i < 6; i++ {
		if err := cache.Set(ctx, fmt.Sprintf("k%d", i), newTestResult("u1"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if cache.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after evicting 2 of 6", cache.Len())
	}
	for _, key := range []string{"k0", "k1"} {
		if _, err := cache.Get(ctx, key); !errors.Is(err, ErrCacheMiss) {
			t.Errorf("%s should have been evicted", key)
		}
	}
	for _, key := range []string{"k2", "k3", "k4", "k5"} {
		if _, err := cache.Get(ctx, key); err != nil {
			t.Errorf("%s should still be cached: %v", key, err)
		}
	}
}

func TestMemoryCache_InvalidateUser(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	cache := NewMemoryCache(10, 2)

	_ = cache.Set(ctx, "a1", newTestResult("alice"), time.Hour)
	_ = cache.Set(ctx, "a2", newTestResult("alice"), time.Hour)
	_ = cache.Set(ctx, "b1", newTestResult("bob"), time.Hour)

	if err := cache.InvalidateUser(ctx, "alice"); err != nil {
		t.Fatalf("InvalidateUser() error = %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len() = %d, want 1", cache.Len())
	}
	if _, err := cache.Get(ctx, "b1"); err != nil {
		t.Errorf("bob's entry should survive: %v", err)
	}
}

// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"math"
	"strings"

	"github.com/tomtom215/otto/internal/vehicle"
)

// FeatureExtractor derives specifications and feature buckets from a record.
type FeatureExtractor struct {
	rules *Rules
}

// NewFeatureExtractor creates an extractor. Nil rules use DefaultRules.
func NewFeatureExtractor(rules *Rules) *FeatureExtractor {
	if rules == nil {
		rules = DefaultRules()
	}
	return &FeatureExtractor{rules: rules}
}

// ExtractSpecifications emits one entry per present, non-null field of each category.
// A non-empty criteria list restricts extraction to those categories.
func (x *FeatureExtractor) ExtractSpecifications(rec *vehicle.Record, criteria []string) []VehicleSpecification {
	allowed := categorySet(criteria)

	specs := make([]VehicleSpecification, 0, len(rec.Specs))
	for _, cat := range x.rules.SpecCategories {
		if allowed != nil && !allowed[cat.Name] {
			continue
		}
		weight := x.rules.categoryWeight(cat.Name)
		for _, field := range cat.Fields {
			value, ok := rec.Spec(field)
			if !ok {
				continue
			}
			specs = append(specs, VehicleSpecification{
				Category:        cat.Name,
				Name:            field,
				Value:           value,
				ImportanceScore: weight,
			})
		}
	}
	return specs
}

// ExtractFeatures buckets the free-text feature list. Each feature lands in the
// first bucket with a matching keyword, or in the "other" bucket.
func (x *FeatureExtractor) ExtractFeatures(rec *vehicle.Record) []VehicleFeatures {
	grouped := make(map[string][]string, len(x.rules.FeatureBuckets)+1)
	for _, feature := range rec.Features {
		feature = strings.TrimSpace(feature)
		if feature == "" {
			continue
		}
		bucket := x.bucketFor(feature)
		grouped[bucket] = append(grouped[bucket], feature)
	}

	order := make([]string, 0, len(x.rules.FeatureBuckets)+1)
	for _, b := range x.rules.FeatureBuckets {
		order = append(order, b.Name)
	}
	order = append(order, x.otherBucket())

	out := make([]VehicleFeatures, 0, len(grouped))
	for _, name := range order {
		features := grouped[name]
		if len(features) == 0 {
			continue
		}
		out = append(out, VehicleFeatures{
			Category:   name,
			Features:   features,
			Included:   true,
			ValueScore: math.Min(float64(len(features))*x.rules.FeatureValuePerItem, 1.0),
		})
	}
	return out
}

func (x *FeatureExtractor) bucketFor(feature string) string {
	lower := strings.ToLower(feature)
	for _, b := range x.rules.FeatureBuckets {
		if containsAny(lower, b.Keywords) {
			return b.Name
		}
	}
	return x.otherBucket()
}

func (x *FeatureExtractor) otherBucket() string {
	if x.rules.OtherBucket == "" {
		return "other"
	}
	return x.rules.OtherBucket
}

func categorySet(criteria []string) map[string]bool {
	if len(criteria) == 0 {
		return nil
	}
	set := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		set[strings.ToLower(strings.TrimSpace(c))] = true
	}
	return set
}

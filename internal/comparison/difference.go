// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"fmt"
	"math"
	"strings"

	"github.com/tomtom215/otto/internal/vehicle"
)

// DifferenceAnalyzer classifies what distinguishes two vehicles.
type DifferenceAnalyzer struct {
	rules *Rules
}

// NewDifferenceAnalyzer creates an analyzer. Nil rules use DefaultRules.
func NewDifferenceAnalyzer(rules *Rules) *DifferenceAnalyzer {
	if rules == nil {
		rules = DefaultRules()
	}
	return &DifferenceAnalyzer{rules: rules}
}

// EvaluateSpecDifference classifies field value a against b from a's point of view.
// A relative gap of at least 10% on a higher- or lower-is-better field is an
// advantage or disadvantage weighted base+0.2; anything else is neutral at base.
func (d *DifferenceAnalyzer) EvaluateSpecDifference(field string, a, b any) (DifferenceType, float64) {
	base := d.rules.BaseImportance
	higher := d.rules.isHigherBetter(field)
	lower := d.rules.isLowerBetter(field)
	if !higher && !lower {
		return Neutral, base
	}

	va, okA := vehicle.Number(a)
	vb, okB := vehicle.Number(b)
	if !okA || !okB || va == vb {
		return Neutral, base
	}

	gap := math.Abs(va-vb) / math.Max(math.Abs(va), math.Abs(vb))
	if gap < d.rules.SignificantDifference {
		return Neutral, base
	}

	aWins := va > vb
	if lower {
		aWins = va < vb
	}

	weight := math.Min(base+d.rules.AdvantageBoost, 1.0)
	if aWins {
		return Advantage, weight
	}
	return Disadvantage, weight
}

// FeatureImportance returns the weight of the first importance tier whose
// keywords appear in feature, or the default importance.
func (d *DifferenceAnalyzer) FeatureImportance(feature string) float64 {
	lower := strings.ToLower(feature)
	for _, tier := range d.rules.ImportanceTiers {
		if containsAny(lower, tier.Keywords) {
			return tier.Weight
		}
	}
	return d.rules.DefaultImportance
}

// Compare returns spec differences followed by feature-set differences for one pair.
func (d *DifferenceAnalyzer) Compare(a, b *VehicleComparisonResult) []FeatureDifference {
	diffs := d.specDifferences(a, b)
	return append(diffs, d.featureDifferences(&a.VehicleData, &b.VehicleData)...)
}

type fieldValue struct {
	name  string
	value any
}

// comparableFields lists the extracted specs plus the listing's price and mileage.
func comparableFields(r *VehicleComparisonResult) []fieldValue {
	fields := make([]fieldValue, 0, len(r.Specifications)+2)
	for _, s := range r.Specifications {
		fields = append(fields, fieldValue{name: s.Name, value: s.Value})
	}
	if r.VehicleData.Price > 0 {
		fields = append(fields, fieldValue{name: "price", value: r.VehicleData.Price})
	}
	if r.VehicleData.Mileage > 0 {
		fields = append(fields, fieldValue{name: "mileage", value: r.VehicleData.Mileage})
	}
	return fields
}

func (d *DifferenceAnalyzer) specDifferences(a, b *VehicleComparisonResult) []FeatureDifference {
	bValues := make(map[string]any)
	for _, f := range comparableFields(b) {
		bValues[f.name] = f.value
	}

	nameA := a.VehicleData.ShortName()
	nameB := b.VehicleData.ShortName()

	var diffs []FeatureDifference
	for _, f := range comparableFields(a) {
		vb, ok := bValues[f.name]
		if !ok || sameValue(f.value, vb) {
			continue
		}

		kind, weight := d.EvaluateSpecDifference(f.name, f.value, vb)
		label := strings.ReplaceAll(f.name, "_", " ")

		var desc string
		switch kind {
		case Advantage:
			desc = fmt.Sprintf("%s has better %s (%v vs %v)", nameA, label, f.value, vb)
		case Disadvantage:
			desc = fmt.Sprintf("%s has better %s (%v vs %v)", nameB, label, vb, f.value)
		default:
			desc = fmt.Sprintf("%s differs: %v for %s vs %v for %s", label, f.value, nameA, vb, nameB)
		}

		diffs = append(diffs, FeatureDifference{
			VehicleAID:       a.VehicleID,
			VehicleBID:       b.VehicleID,
			FeatureName:      f.name,
			FeatureType:      FeatureTypeSpecification,
			VehicleAValue:    f.value,
			VehicleBValue:    vb,
			DifferenceType:   kind,
			ImportanceWeight: weight,
			Description:      desc,
		})
	}
	return diffs
}

func (d *DifferenceAnalyzer) featureDifferences(a, b *vehicle.Record) []FeatureDifference {
	onlyA, onlyB := featureSetDifference(a.Features, b.Features)

	diffs := make([]FeatureDifference, 0, len(onlyA)+len(onlyB))
	for _, f := range onlyA {
		diffs = append(diffs, FeatureDifference{
			VehicleAID:       a.ID,
			VehicleBID:       b.ID,
			FeatureName:      f,
			FeatureType:      FeatureTypeFeature,
			VehicleAValue:    true,
			VehicleBValue:    false,
			DifferenceType:   Advantage,
			ImportanceWeight: d.FeatureImportance(f),
			Description:      fmt.Sprintf("%s includes %s; %s does not", a.ShortName(), f, b.ShortName()),
		})
	}
	for _, f := range onlyB {
		diffs = append(diffs, FeatureDifference{
			VehicleAID:       a.ID,
			VehicleBID:       b.ID,
			FeatureName:      f,
			FeatureType:      FeatureTypeFeature,
			VehicleAValue:    false,
			VehicleBValue:    true,
			DifferenceType:   Disadvantage,
			ImportanceWeight: d.FeatureImportance(f),
			Description:      fmt.Sprintf("%s includes %s; %s does not", b.ShortName(), f, a.ShortName()),
		})
	}
	return diffs
}

// featureSetDifference compares feature lists case-insensitively, keeping
// the original spelling and order.
func featureSetDifference(a, b []string) (onlyA, onlyB []string) {
	setA := normalizedSet(a)
	setB := normalizedSet(b)

	for _, f := range a {
		if !setB[normalizeFeature(f)] {
			onlyA = append(onlyA, f)
		}
	}
	for _, f := range b {
		if !setA[normalizeFeature(f)] {
			onlyB = append(onlyB, f)
		}
	}
	return onlyA, onlyB
}

func sharedFeatures(a, b []string) []string {
	setB := normalizedSet(b)
	var shared []string
	for _, f := range a {
		if setB[normalizeFeature(f)] {
			shared = append(shared, f)
		}
	}
	return shared
}

func normalizedSet(features []string) map[string]bool {
	set := make(map[string]bool, len(features))
	for _, f := range features {
		set[normalizeFeature(f)] = true
	}
	return set
}

func normalizeFeature(f string) string {
	return strings.ToLower(strings.TrimSpace(f))
}

func sameValue(a, b any) bool {
	na, okA := vehicle.Number(a)
	nb, okB := vehicle.Number(b)
	if okA && okB {
		return na == nb
	}
	return strings.EqualFold(fmt.Sprint(a), fmt.Sprint(b))
}

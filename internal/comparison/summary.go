// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

const maxSummaryAdvantages = 3

func buildSummary(results []VehicleComparisonResult, diffs []FeatureDifference, userID string) string {
	if len(results) == 0 {
		return "No vehicles could be compared."
	}

	best := &results[0]
	for i := 1; i < len(results); i++ {
		if results[i].OverallScore > best.OverallScore {
			best = &results[i]
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The %s ranks highest with an overall score of %.2f out of 1.00.",
		best.VehicleData.DisplayName(), best.OverallScore)

	if advantages := topAdvantages(best.VehicleID, diffs); len(advantages) > 0 {
		fmt.Fprintf(&b, " Key advantages include %s.", joinNatural(advantages))
	}

	if pa := best.PriceAnalysis; pa != nil {
		switch pa.PricePosition {
		case BelowMarket:
			if pa.SavingsAmount != nil {
				fmt.Fprintf(&b, " It is priced %s below the market average.", formatDollars(*pa.SavingsAmount))
			} else {
				b.WriteString(" It is priced below the market average.")
			}
		case AboveMarket:
			fmt.Fprintf(&b, " It is priced above the market average of %s.", formatDollars(pa.MarketAverage))
		default:
			b.WriteString(" It is priced in line with the market average.")
		}
	}

	if userID != "" {
		b.WriteString(" This comparison is personalized to your browsing history.")
	}

	return b.String()
}

// topAdvantages returns the names of the highest-importance differences favouring vehicleID.
func topAdvantages(vehicleID string, diffs []FeatureDifference) []string {
	var favoring []FeatureDifference
	for i := range diffs {
		if diffs[i].Favors() == vehicleID {
			favoring = append(favoring, diffs[i])
		}
	}

	sort.SliceStable(favoring, func(i, j int) bool {
		return favoring[i].ImportanceWeight > favoring[j].ImportanceWeight
	})

	names := make([]string, 0, maxSummaryAdvantages)
	seen := make(map[string]bool)
	for _, d := range favoring {
		label := strings.ReplaceAll(d.FeatureName, "_", " ")
		if seen[label] {
			continue
		}
		seen[label] = true
		names = append(names, label)
		if len(names) == maxSummaryAdvantages {
			break
		}
	}
	return names
}

func joinNatural(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	default:
		return strings.Join(items[:len(items)-1], ", ") + " and " + items[len(items)-1]
	}
}

// formatDollars renders an amount as $12,345.
func formatDollars(v float64) string {
	n := int64(math.Round(math.Abs(v)))
	digits := strconv.FormatInt(n, 10)

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	b.WriteByte('$')
	for i, c := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

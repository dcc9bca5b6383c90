// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Record is a single marketplace listing.
type Record struct {
	ID          string         `json:"id"`
	VIN         string         `json:"vin,omitempty"`
	Year        int            `json:"year"`
	Make        string         `json:"make"`
	Model       string         `json:"model"`
	Trim        string         `json:"trim,omitempty"`
	BodyStyle   string         `json:"body_style,omitempty"`
	Price       float64        `json:"price"`
	Mileage     int            `json:"mileage"`
	Description string         `json:"description,omitempty"`
	Features    []string       `json:"features,omitempty"`
	Specs       map[string]any `json:"specifications,omitempty"`
	Condition   string         `json:"condition,omitempty"`
	Images      []string       `json:"images,omitempty"`
}

// DisplayName returns "year make model", followed by the trim when set.
func (r *Record) DisplayName() string {
	parts := make([]string, 0, 4)
	if r.Year > 0 {
		parts = append(parts, strconv.Itoa(r.Year))
	}
	for _, s := range []string{r.Make, r.Model, r.Trim} {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// ShortName returns "make model".
func (r *Record) ShortName() string {
	return strings.TrimSpace(r.Make + " " + r.Model)
}

// Spec returns a specification value if it is present and non-nil.
func (r *Record) Spec(name string) (any, bool) {
	if r.Specs == nil {
		return nil, false
	}
	v, ok := r.Specs[name]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
		return nil, false
	}
	return v, true
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() Record {
	out := *r
	if r.Features != nil {
		out.Features = append([]string(nil), r.Features...)
	}
	if r.Images != nil {
		out.Images = append([]string(nil), r.Images...)
	}
	if r.Specs != nil {
		out.Specs = make(map[string]any, len(r.Specs))
		for k, v := range r.Specs {
			out.Specs[k] = v
		}
	}
	return out
}

// FromMap converts a loosely shaped listing into a Record.
// Numbers may arrive as any numeric type, json.Number or numeric string.
// "specs" and "specifications" are both accepted, as are "body_style" and "vehicle_type".
func FromMap(m map[string]any) (Record, error) {
	id := strings.TrimSpace(stringField(m, "id", "vehicle_id"))
	if id == "" {
		return Record{}, fmt.Errorf("vehicle record missing id")
	}

	rec := Record{
		ID:          id,
		VIN:         stringField(m, "vin"),
		Make:        stringField(m, "make"),
		Model:       stringField(m, "model"),
		Trim:        stringField(m, "trim"),
		BodyStyle:   stringField(m, "body_style", "vehicle_type", "body_type"),
		Description: stringField(m, "description"),
		Condition:   stringField(m, "condition"),
		Features:    stringSlice(firstPresent(m, "features")),
		Images:      stringSlice(firstPresent(m, "images")),
	}

	if v, ok := Number(firstPresent(m, "year")); ok {
		rec.Year = int(v)
	}
	if v, ok := Number(firstPresent(m, "price")); ok {
		rec.Price = v
	}
	if v, ok := Number(firstPresent(m, "mileage")); ok {
		rec.Mileage = int(v)
	}

	if raw, ok := firstPresent(m, "specifications", "specs").(map[string]any); ok {
		rec.Specs = make(map[string]any, len(raw))
		for k, v := range raw {
			if v != nil {
				rec.Specs[k] = v
			}
		}
	}

	return rec, nil
}

// Number converts a loosely typed value into a float64.
// Booleans and non-numeric strings are rejected.
func Number(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, !math.IsNaN(n)
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func firstPresent(m map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := m[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

func stringField(m map[string]any, keys ...string) string {
	switch v := firstPresent(m, keys...).(type) {
	case nil:
		return ""
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

func stringSlice(v any) []string {
	switch items := v.(type) {
	case []string:
		return append([]string(nil), items...)
	case []any:
		out := make([]string, 0, len(items))
		for _, item := range items {
			if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return nil
	}
}

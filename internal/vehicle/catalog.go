// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"context"
	"math"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// Catalog is an in-memory DataProvider.
// It is safe for concurrent use.
type Catalog struct {
	mu       sync.RWMutex
	records  map[string]Record
	order    []string
	trending TrendingScoreProvider
}

// NewCatalog creates a catalog holding the given records.
func NewCatalog(records ...Record) *Catalog {
	c := &Catalog{records: make(map[string]Record, len(records))}
	c.Upsert(records...)
	return c
}

// Upsert inserts or replaces records. Insertion order is kept for new ids.
func (c *Catalog) Upsert(records ...Record) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range records {
		rec := records[i].Clone()
		if _, exists := c.records[rec.ID]; !exists {
			c.order = append(c.order, rec.ID)
		}
		c.records[rec.ID] = rec
	}
}

// SetTrendingProvider sets the source used to rank GetTrendingVehicles.
func (c *Catalog) SetTrendingProvider(p TrendingScoreProvider) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.trending = p
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.records)
}

// Get returns a single record.
func (c *Catalog) Get(_ context.Context, id string) (Record, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.records[id]
	if !ok {
		return Record{}, NotFound("catalog.get", "vehicle not found: "+id)
	}
	return rec.Clone(), nil
}

// GetVehiclesByIDs implements DataProvider.
func (c *Catalog) GetVehiclesByIDs(ctx context.Context, ids []string) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, len(ids))
	for _, id := range ids {
		if rec, ok := c.records[id]; ok {
			out = append(out, rec.Clone())
		}
	}
	return out, nil
}

// GetSimilarVehicles implements DataProvider.
// Similarity blends make, body style, price proximity and model year.
func (c *Catalog) GetSimilarVehicles(ctx context.Context, id string, limit int) ([]ScoredRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	all := c.snapshot()
	var source *Record
	for i := range all {
		if all[i].ID == id {
			source = &all[i]
			break
		}
	}
	if source == nil {
		return nil, NotFound("catalog.similar", "vehicle not found: "+id)
	}

	scored := make([]ScoredRecord, 0, len(all))
	for i := range all {
		if all[i].ID == id {
			continue
		}
		scored = append(scored, ScoredRecord{
			Record:     all[i],
			Similarity: listingSimilarity(source, &all[i]),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Similarity > scored[j].Similarity
	})

	return truncate(scored, limit), nil
}

// SearchVehicles implements DataProvider.
// A query matches when any of its terms appears in the listing text.
func (c *Catalog) SearchVehicles(ctx context.Context, filters SearchFilters, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	terms := strings.Fields(strings.ToLower(filters.Query))
	out := make([]Record, 0)
	for _, rec := range c.snapshot() {
		if matchesFilters(&rec, &filters, terms) {
			out = append(out, rec)
		}
	}
	return truncate(out, limit), nil
}

// GetTrendingVehicles implements DataProvider.
// Without a trending provider, or when every score is zero, newer model years rank first.
func (c *Catalog) GetTrendingVehicles(ctx context.Context, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.mu.RLock()
	provider := c.trending
	c.mu.RUnlock()

	all := c.snapshot()
	scores := make(map[string]float64, len(all))
	if provider != nil {
		for i := range all {
			score, err := provider.TrendingScore(ctx, all[i].ID)
			if err == nil {
				scores[all[i].ID] = score
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		si, sj := scores[all[i].ID], scores[all[j].ID]
		if si != sj {
			return si > sj
		}
		return all[i].Year > all[j].Year
	})

	return truncate(all, limit), nil
}

func (c *Catalog) snapshot() []Record {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Record, 0, len(c.order))
	for _, id := range c.order {
		rec := c.records[id]
		out = append(out, rec.Clone())
	}
	return out
}

func listingSimilarity(a, b *Record) float64 {
	var score float64
	if strings.EqualFold(a.Make, b.Make) {
		score += 0.3
	}
	if a.BodyStyle != "" && strings.EqualFold(a.BodyStyle, b.BodyStyle) {
		score += 0.3
	}
	if high := math.Max(a.Price, b.Price); high > 0 {
		score += 0.25 * (1 - math.Abs(a.Price-b.Price)/high)
	}
	yearGap := math.Abs(float64(a.Year - b.Year))
	score += 0.15 * math.Max(0, 1-yearGap/10)
	return math.Round(score*1000) / 1000
}

func matchesFilters(rec *Record, f *SearchFilters, terms []string) bool {
	if len(f.Makes) > 0 && !containsFold(f.Makes, rec.Make) {
		return false
	}
	if len(f.BodyStyles) > 0 && !containsFold(f.BodyStyles, rec.BodyStyle) {
		return false
	}
	if f.MinPrice > 0 && rec.Price < f.MinPrice {
		return false
	}
	if f.MaxPrice > 0 && rec.Price > f.MaxPrice {
		return false
	}
	if f.MinYear > 0 && rec.Year < f.MinYear {
		return false
	}
	if f.MaxYear > 0 && rec.Year > f.MaxYear {
		return false
	}
	if len(terms) == 0 {
		return true
	}

	text := SearchText(rec)
	for _, term := range terms {
		if strings.Contains(text, term) {
			return true
		}
	}
	return false
}

// SearchText returns the lowercased text a listing is searched by.
func SearchText(rec *Record) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(rec.Year))
	for _, s := range []string{rec.Make, rec.Model, rec.Trim, rec.BodyStyle, rec.Description} {
		b.WriteByte(' ')
		b.WriteString(s)
	}
	for _, f := range rec.Features {
		b.WriteByte(' ')
		b.WriteString(f)
	}
	return strings.ToLower(b.String())
}

func containsFold(values []string, s string) bool {
	for _, v := range values {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func truncate[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}

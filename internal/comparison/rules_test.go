// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package comparison

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultRulesValidate(t *testing.T) {
	t.Parallel()

	if err := DefaultRules().Validate(); err != nil {
		t.Fatalf("DefaultRules().Validate() error = %v", err)
	}
}

func TestLoadRules_Overlay(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "rules.yaml")
	content := `
category_weights:
  engine: 0.5
lower_is_better: [price]
condition_scores:
  certified: 0.95
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadRules(path)
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}

	if rules.categoryWeight("engine") != 0.5 {
		t.Errorf("engine weight = %v, want 0.5", rules.categoryWeight("engine"))
	}
	if rules.categoryWeight("safety") != 0.18 {
		t.Errorf("safety weight should keep default, got %v", rules.categoryWeight("safety"))
	}
	if rules.isLowerBetter("mileage") {
		t.Error("lists in the file should replace the defaults")
	}
	if rules.ConditionScores["certified"] != 0.95 || rules.ConditionScores["excellent"] != 1.0 {
		t.Errorf("condition scores not merged: %v", rules.ConditionScores)
	}
	if rules.categoryWeight("unknown") != 0.1 {
		t.Errorf("unknown category weight = %v, want default 0.1", rules.categoryWeight("unknown"))
	}
}

func TestLoadRules_Invalid(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	tests := []struct {
		name    string
		content string
	}{
		{"bad weight", "category_weights:\n  engine: 1.5\n"},
		{"bad range", "normalization_ranges:\n  horsepower: {min: 500, max: 50}\n"},
		{"not yaml", "category_weights: [\n"},
	}

	for i, tt := range tests {
		path := filepath.Join(dir, tt.name+".yaml")
		if err := os.WriteFile(path, []byte(tt.content), 0o600); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadRules(path); err == nil {
			t.Errorf("case %d (%s): expected error", i, tt.name)
		}
	}

	if _, err := LoadRules(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadRules_EmptyPath(t *testing.T) {
	t.Parallel()

	rules, err := LoadRules("")
	if err != nil {
		t.Fatalf("LoadRules(\"\") error = %v", err)
	}
	if len(rules.SpecCategories) != 9 {
		t.Errorf("expected 9 default categories, got %d", len(rules.SpecCategories))
	}
}

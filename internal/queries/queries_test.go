// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package queries

import (
	"errors"
	"sort"
	"strings"
	"testing"
)

func TestRegistryComplete(t *testing.T) {
	expected := map[string][]string{
		"executive":    {"daily_trends", "geographic_performance", "key_metrics"},
		"delivery":     {"delivery_by_state", "delivery_metrics", "delivery_time_distribution"},
		"satisfaction": {"category_satisfaction", "rating_analysis", "satisfaction_vs_delivery"},
		"product":      {"category_performance", "weight_impact"},
		"payment":      {"installment_analysis", "payment_method_analysis"},
	}

	byArea := make(map[string][]string)
	for _, q := range List() {
		byArea[q.Area] = append(byArea[q.Area], q.Name)
	}
	for area := range byArea {
		sort.Strings(byArea[area])
	}

	if len(byArea) != len(expected) {
		t.Errorf("Expected %d areas, got %d", len(expected), len(byArea))
	}
	for area, names := range expected {
		got := byArea[area]
		if len(got) != len(names) {
			t.Errorf("Area %s: expected %v, got %v", area, names, got)
			continue
		}
		for i := range names {
			if got[i] != names[i] {
				t.Errorf("Area %s: expected %v, got %v", area, names, got)
				break
			}
		}
	}
}

func TestGet(t *testing.T) {
	q, err := Get("executive", "key_metrics")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if q.ID() != "executive.key_metrics" {
		t.Errorf("Expected ID executive.key_metrics, got %s", q.ID())
	}
	if q.SQL == "" {
		t.Error("Expected non-empty SQL")
	}
}

func TestGetNotFound(t *testing.T) {
	if _, err := Get("nonsense", "key_metrics"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown area, got %v", err)
	}
	if _, err := Get("executive", "nonsense"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Expected ErrNotFound for unknown name, got %v", err)
	}
}

func TestPlaceholdersResolved(t *testing.T) {
	for _, q := range List() {
		if strings.Contains(q.SQL, "{") || strings.Contains(q.SQL, "}") {
			t.Errorf("Query %s has unresolved table placeholder", q.ID())
		}
	}
}

func TestParameterCountsMatchSQL(t *testing.T) {
	for _, q := range List() {
		placeholders := strings.Count(q.SQL, "?")
		if placeholders != len(q.Params) {
			t.Errorf("Query %s declares %d params but SQL has %d placeholders",
				q.ID(), len(q.Params), placeholders)
		}
	}
}

func TestDateRangeParamOrder(t *testing.T) {
	for _, q := range List() {
		if len(q.Params) == 2 {
			if q.Params[0] != "start_date" || q.Params[1] != "end_date" {
				t.Errorf("Query %s has unexpected param order: %v", q.ID(), q.Params)
			}
		}
	}
}

func TestListSorted(t *testing.T) {
	all := List()
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1], all[i]
		if prev.Area > cur.Area || (prev.Area == cur.Area && prev.Name > cur.Name) {
			t.Errorf("List not sorted at %d: %s before %s", i, prev.ID(), cur.ID())
		}
	}
}

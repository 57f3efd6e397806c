// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package models

import (
	"testing"

	"github.com/goccy/go-json"
)

func TestDatasetAccessors(t *testing.T) {
	ds := Dataset{
		Columns: []Column{
			{Name: "state", Type: "VARCHAR"},
			{Name: "orders", Type: "BIGINT"},
		},
		Rows: [][]interface{}{
			{"SP", int64(100)},
			{"RJ", int64(50)},
		},
	}

	if ds.NumRows() != 2 {
		t.Errorf("NumRows = %d, want 2", ds.NumRows())
	}
	if ds.NumColumns() != 2 {
		t.Errorf("NumColumns = %d, want 2", ds.NumColumns())
	}
	if ds.IsEmpty() {
		t.Error("Expected non-empty dataset")
	}
	if got := ds.ColumnIndex("orders"); got != 1 {
		t.Errorf("ColumnIndex(orders) = %d, want 1", got)
	}
	if got := ds.ColumnIndex("missing"); got != -1 {
		t.Errorf("ColumnIndex(missing) = %d, want -1", got)
	}

	names := ds.ColumnNames()
	if len(names) != 2 || names[0] != "state" || names[1] != "orders" {
		t.Errorf("Unexpected column names: %v", names)
	}
}

func TestEmptyDatasetKeepsSchema(t *testing.T) {
	ds := Dataset{Columns: []Column{{Name: "v", Type: "DOUBLE"}}, Rows: [][]interface{}{}}

	if !ds.IsEmpty() {
		t.Error("Expected empty dataset")
	}
	if ds.NumColumns() != 1 {
		t.Error("Empty dataset must keep its columns")
	}
}

func TestDatasetJSONRoundTripPreservesOrder(t *testing.T) {
	ds := Dataset{
		Columns: []Column{{Name: "n", Type: "BIGINT"}},
		Rows:    [][]interface{}{{1.0}, {2.0}, {3.0}},
	}

	data, err := json.Marshal(ds)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Dataset
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if back.NumRows() != 3 {
		t.Fatalf("Expected 3 rows, got %d", back.NumRows())
	}
	for i, row := range back.Rows {
		if row[0] != float64(i+1) {
			t.Errorf("Row %d out of order: %v", i, row[0])
		}
	}
	if back.Columns[0].Type != "BIGINT" {
		t.Errorf("Declared type lost: %s", back.Columns[0].Type)
	}
}

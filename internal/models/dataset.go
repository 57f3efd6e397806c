// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package models

// Column describes one named, typed column of a Dataset.
type Column struct {
	// Name is the column name as returned by the warehouse.
	Name string `json:"name"`

	// Type is the warehouse-declared type name (e.g. "DOUBLE", "VARCHAR").
	Type string `json:"type"`
}

// Dataset is a rectangular query result: named typed columns and ordered rows.
//
// A Dataset with zero rows is a valid payload. It is distinct from "no data
// cached" (a cache miss) and from "fetch failed" (an error return); callers
// must never collapse these three states.
//
// Datasets round-trip through JSON serialization without loss of column
// names, declared types, or row order, which is what the disk cache tier
// relies on.
type Dataset struct {
	Columns []Column        `json:"columns"`
	Rows    [][]interface{} `json:"rows"`
}

// NumRows returns the number of rows in the dataset.
func (d Dataset) NumRows() int {
	return len(d.Rows)
}

// NumColumns returns the number of columns in the dataset.
func (d Dataset) NumColumns() int {
	return len(d.Columns)
}

// IsEmpty reports whether the dataset contains no rows.
// An empty dataset still carries its column schema.
func (d Dataset) IsEmpty() bool {
	return len(d.Rows) == 0
}

// ColumnIndex returns the index of the named column, or -1 if absent.
func (d Dataset) ColumnIndex(name string) int {
	for i, c := range d.Columns {
		if c.Name == name {
			return i
		}
	}
	return -1
}

// ColumnNames returns the column names in declaration order.
func (d Dataset) ColumnNames() []string {
	names := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		names[i] = c.Name
	}
	return names
}

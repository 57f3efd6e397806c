// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

// Package export encodes a Dataset as CSV, JSON, or Excel for download.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/commercelens/commercelens/internal/models"
)

// Format identifies an export encoding.
type Format string

const (
	FormatCSV   Format = "csv"
	FormatJSON  Format = "json"
	FormatExcel Format = "xlsx"
)

// ParseFormat validates a format string from a request.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatCSV, FormatJSON, FormatExcel:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format: %q", s)
	}
}

// ContentType returns the MIME type for the format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatJSON:
		return "application/json"
	case FormatExcel:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// Write encodes ds in the given format. maxRows > 0 caps the number of
// data rows written; the column header never counts against the cap.
func Write(w io.Writer, ds models.Dataset, format Format, maxRows int) error {
	rows := ds.Rows
	if maxRows > 0 && len(rows) > maxRows {
		rows = rows[:maxRows]
	}
	capped := models.Dataset{Columns: ds.Columns, Rows: rows}

	switch format {
	case FormatCSV:
		return writeCSV(w, capped)
	case FormatJSON:
		return writeJSON(w, capped)
	case FormatExcel:
		return writeExcel(w, capped)
	default:
		return fmt.Errorf("unsupported export format: %q", format)
	}
}

func writeCSV(w io.Writer, ds models.Dataset) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(ds.ColumnNames()); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}
	for i, row := range ds.Rows {
		record := make([]string, len(row))
		for j, v := range row {
			record[j] = formatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing CSV row %d: %w", i, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// writeJSON emits an array of objects keyed by column name, the shape
// charting libraries consume directly.
func writeJSON(w io.Writer, ds models.Dataset) error {
	names := ds.ColumnNames()
	records := make([]map[string]interface{}, len(ds.Rows))
	for i, row := range ds.Rows {
		rec := make(map[string]interface{}, len(names))
		for j, name := range names {
			if j < len(row) {
				rec[name] = row[j]
			}
		}
		records[i] = rec
	}

	enc := json.NewEncoder(w)
	return enc.Encode(records)
}

func writeExcel(w io.Writer, ds models.Dataset) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Sheet1"

	header := make([]interface{}, len(ds.Columns))
	for i, c := range ds.Columns {
		header[i] = c.Name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("writing Excel header: %w", err)
	}

	for i, row := range ds.Rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("computing Excel cell for row %d: %w", i, err)
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			values[j] = excelCell(v)
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("writing Excel row %d: %w", i, err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing Excel file: %w", err)
	}
	return nil
}

func formatCell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case time.Time:
		return t.Format(time.RFC3339)
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprintf("%v", t)
	}
}

// excelCell converts values excelize cannot type natively.
func excelCell(v interface{}) interface{} {
	switch t := v.(type) {
	case time.Time:
		return t.Format(time.RFC3339)
	default:
		return t
	}
}

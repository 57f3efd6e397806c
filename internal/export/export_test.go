// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/xuri/excelize/v2"

	"github.com/commercelens/commercelens/internal/models"
)

func exportDataset() models.Dataset {
	return models.Dataset{
		Columns: []models.Column{
			{Name: "customer_state", Type: "VARCHAR"},
			{Name: "order_count", Type: "BIGINT"},
			{Name: "avg_rating", Type: "DOUBLE"},
		},
		Rows: [][]interface{}{
			{"SP", int64(31245), 4.2},
			{"RJ", int64(9871), 4.0},
			{"MG", int64(8652), 4.3},
		},
	}
}

func TestFormatContentType(t *testing.T) {
	cases := []struct {
		format Format
		want   string
	}{
		{FormatCSV, "text/csv"},
		{FormatJSON, "application/json"},
		{FormatExcel, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"},
		{Format("bogus"), "application/octet-stream"},
	}
	for _, tc := range cases {
		if got := tc.format.ContentType(); got != tc.want {
			t.Errorf("ContentType(%q) = %q, want %q", tc.format, got, tc.want)
		}
	}
}

func TestParseFormat(t *testing.T) {
	for _, valid := range []string{"csv", "json", "xlsx"} {
		if _, err := ParseFormat(valid); err != nil {
			t.Errorf("ParseFormat(%q) failed: %v", valid, err)
		}
	}
	for _, invalid := range []string{"", "pdf", "CSV", "excel"} {
		if _, err := ParseFormat(invalid); err == nil {
			t.Errorf("ParseFormat(%q) should fail", invalid)
		}
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, exportDataset(), FormatCSV, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Reading CSV back failed: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d records", len(records))
	}
	if records[0][0] != "customer_state" {
		t.Errorf("Expected header customer_state, got %s", records[0][0])
	}
	if records[1][0] != "SP" || records[1][1] != "31245" {
		t.Errorf("Unexpected first row: %v", records[1])
	}
	if records[1][2] != "4.2" {
		t.Errorf("Expected 4.2, got %s", records[1][2])
	}
}

func TestWriteCSVNilCell(t *testing.T) {
	ds := models.Dataset{
		Columns: []models.Column{{Name: "v", Type: "VARCHAR"}},
		Rows:    [][]interface{}{{nil}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, ds, FormatCSV, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Reading CSV back failed: %v", err)
	}
	if len(records) != 2 || records[1][0] != "" {
		t.Errorf("Expected empty cell for nil, got %v", records)
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, exportDataset(), FormatJSON, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	var records []map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &records); err != nil {
		t.Fatalf("Parsing JSON back failed: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
	if records[0]["customer_state"] != "SP" {
		t.Errorf("Unexpected first record: %v", records[0])
	}
	if records[0]["avg_rating"] != 4.2 {
		t.Errorf("Expected avg_rating 4.2, got %v", records[0]["avg_rating"])
	}
}

func TestWriteExcel(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, exportDataset(), FormatExcel, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	f, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("Opening workbook failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 4 {
		t.Fatalf("Expected header + 3 rows, got %d", len(rows))
	}
	if rows[0][0] != "customer_state" {
		t.Errorf("Expected header customer_state, got %s", rows[0][0])
	}
	if rows[1][0] != "SP" {
		t.Errorf("Unexpected first data row: %v", rows[1])
	}
}

func TestWriteRowCap(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, exportDataset(), FormatCSV, 2); err != nil {
		t.Fatalf("Write failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("Reading CSV back failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Expected header + 2 capped rows, got %d records", len(records))
	}
}

func TestWriteTimeCell(t *testing.T) {
	ts := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	ds := models.Dataset{
		Columns: []models.Column{{Name: "when", Type: "TIMESTAMP"}},
		Rows:    [][]interface{}{{ts}},
	}

	var buf bytes.Buffer
	if err := Write(&buf, ds, FormatCSV, 0); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	if !strings.Contains(buf.String(), "2024-06-30T12:00:00Z") {
		t.Errorf("Expected RFC3339 timestamp, got %q", buf.String())
	}
}

func TestWriteUnsupportedFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, exportDataset(), Format("pdf"), 0); err == nil {
		t.Error("Expected error for unsupported format")
	}
}

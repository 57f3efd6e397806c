// CommerceLens - E-commerce Analytics Dashboard
// Copyright 2026 CommerceLens Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/commercelens/commercelens

package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/commercelens/commercelens/internal/metrics"
	"github.com/commercelens/commercelens/internal/models"
)

func stringDataset(values ...string) models.Dataset {
	ds := models.Dataset{
		Columns: []models.Column{{Name: "label", Type: "VARCHAR"}},
	}
	for _, v := range values {
		ds.Rows = append(ds.Rows, []interface{}{v})
	}
	return ds
}

func TestDiskStoreRoundTrip(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Put("abc123", stringDataset("SP", "RJ"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	got, ok, err := store.Get("abc123")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if !ok {
		t.Fatal("Expected a hit")
	}
	if got.NumRows() != 2 {
		t.Errorf("Expected 2 rows, got %d", got.NumRows())
	}
	if got.Columns[0].Name != "label" {
		t.Errorf("Expected column label, got %s", got.Columns[0].Name)
	}
	if got.Rows[0][0] != "SP" {
		t.Errorf("Expected SP, got %v", got.Rows[0][0])
	}
}

func TestDiskStoreMiss(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	_, ok, err := store.Get("missing")
	if err != nil {
		t.Fatalf("Get on missing key returned error: %v", err)
	}
	if ok {
		t.Error("Expected a miss for an absent key")
	}
}

func TestDiskStoreExpiredEntryRemoved(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Put("stale", stringDataset("x"), 10*time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	_, ok, err := store.Get("stale")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected expired entry to miss")
	}

	if _, err := os.Stat(filepath.Join(dir, "stale.json")); !os.IsNotExist(err) {
		t.Error("Expected expired entry file to be deleted")
	}
}

func TestDiskStoreCorruptEntrySelfHeals(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	path := filepath.Join(dir, "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	_, ok, err := store.Get("corrupt")
	if err != nil {
		t.Fatalf("Get on corrupt entry returned error: %v", err)
	}
	if ok {
		t.Error("Expected corrupt entry to miss")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("Expected corrupt entry file to be deleted")
	}
}

func TestDiskStoreOverwrite(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Put("key", stringDataset("old"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("key", stringDataset("new"), time.Hour); err != nil {
		t.Fatalf("Second Put failed: %v", err)
	}

	got, ok, err := store.Get("key")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got.Rows[0][0] != "new" {
		t.Errorf("Expected overwritten value, got %v", got.Rows[0][0])
	}
}

func TestDiskStoreSweepExpired(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	for i := 0; i < 6; i++ {
		if err := store.Put(fmt.Sprintf("fresh%d", i), stringDataset("v"), time.Hour); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	for i := 0; i < 4; i++ {
		if err := store.Put(fmt.Sprintf("stale%d", i), stringDataset("v"), 10*time.Millisecond); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}
	time.Sleep(30 * time.Millisecond)

	removed := store.SweepExpired()
	if removed != 4 {
		t.Errorf("Expected 4 entries removed, got %d", removed)
	}

	stats := store.Stats()
	if stats.TotalEntries != 6 {
		t.Errorf("Expected 6 entries after sweep, got %d", stats.TotalEntries)
	}
	if stats.ValidEntries != 6 {
		t.Errorf("Expected 6 valid entries after sweep, got %d", stats.ValidEntries)
	}
}

func TestDiskStoreClearAll(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := store.Put(fmt.Sprintf("key%d", i), stringDataset("v"), time.Hour); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}

	stats := store.Stats()
	if stats.TotalEntries != 0 {
		t.Errorf("Expected 0 entries after ClearAll, got %d", stats.TotalEntries)
	}
}

func TestDiskStoreStats(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Put("valid", stringDataset("v"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("expired", stringDataset("v"), 10*time.Millisecond); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	time.Sleep(30 * time.Millisecond)

	stats := store.Stats()
	if stats.TotalEntries != 2 {
		t.Errorf("Expected 2 total entries, got %d", stats.TotalEntries)
	}
	if stats.ValidEntries != 1 {
		t.Errorf("Expected 1 valid entry, got %d", stats.ValidEntries)
	}
	if stats.ExpiredEntries != 1 {
		t.Errorf("Expected 1 expired entry, got %d", stats.ExpiredEntries)
	}
	if stats.TotalSizeBytes <= 0 {
		t.Errorf("Expected positive size, got %d", stats.TotalSizeBytes)
	}
	if stats.HitRate != 50.0 {
		t.Errorf("Expected 50%% validity rate, got %f", stats.HitRate)
	}
}

func TestDiskStoreIgnoresForeignFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := store.Put("key", stringDataset("v"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	stats := store.Stats()
	if stats.TotalEntries != 1 {
		t.Errorf("Expected foreign files to be ignored, got %d entries", stats.TotalEntries)
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "notes.txt")); err != nil {
		t.Error("Expected foreign file to survive ClearAll")
	}
}

func TestDiskStoreEntriesGauge(t *testing.T) {
	gauge := metrics.CacheEntries.WithLabelValues("disk")
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewDiskStore failed: %v", err)
	}

	if err := store.Put("key1", stringDataset("a"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}
	if err := store.Put("key2", stringDataset("b"), time.Hour); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	store.Stats()
	if got := testutil.ToFloat64(gauge); got != 2 {
		t.Errorf("Expected gauge 2 after stats scan, got %v", got)
	}

	if removed := store.SweepExpired(); removed != 0 {
		t.Fatalf("Expected no removals, got %d", removed)
	}
	if got := testutil.ToFloat64(gauge); got != 2 {
		t.Errorf("Expected gauge 2 after sweep, got %v", got)
	}

	if err := store.ClearAll(); err != nil {
		t.Fatalf("ClearAll failed: %v", err)
	}
	if got := testutil.ToFloat64(gauge); got != 0 {
		t.Errorf("Expected gauge 0 after ClearAll, got %v", got)
	}
}

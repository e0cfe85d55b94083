package main

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"dashboard/internal/models"
)

func writeTestConfig(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := []byte("customers:\n  count: 25\n  seed: 7\nreference_date: \"2025-06-01\"\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	old := configPath
	configPath = path
	t.Cleanup(func() { configPath = old })
}

func TestSummaryFilter(t *testing.T) {
	opts := &summaryOptions{segments: []string{"premium", "Basic"}, minValue: 500, minPurchases: 3}
	f, err := opts.filter()
	if err != nil {
		t.Fatalf("filter failed: %v", err)
	}
	if len(f.Segments) != 2 || f.Segments[0] != models.Premium || f.Segments[1] != models.Basic {
		t.Errorf("Unexpected segments: %v", f.Segments)
	}
	if f.MinLifetimeValue != 500 || f.MinPurchases != 3 {
		t.Errorf("Unexpected thresholds: %+v", f)
	}

	opts.segments = []string{"Gold"}
	if _, err := opts.filter(); err == nil {
		t.Error("Expected error for unknown segment")
	}
}

func TestExportCustomersCSV(t *testing.T) {
	writeTestConfig(t)
	out := filepath.Join(t.TempDir(), "customers.csv")

	if err := runExport(&exportOptions{format: "csv", out: out}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatalf("open export: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(records) != 26 {
		t.Errorf("Expected header + 25 rows, got %d", len(records))
	}
	if records[1][0] != "CUST_0001" {
		t.Errorf("Expected first ID CUST_0001, got %s", records[1][0])
	}
}

func TestExportPanelOverrides(t *testing.T) {
	writeTestConfig(t)
	out := filepath.Join(t.TempDir(), "data1.csv")

	if err := runExport(&exportOptions{format: "csv", out: out, panel: "data1"}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := runExport(&exportOptions{format: "csv", out: out, panel: "nope"}); err == nil {
		t.Error("Expected error for unknown panel")
	}
	if err := runExport(&exportOptions{format: "xml"}); err == nil {
		t.Error("Expected error for unknown format")
	}
}

func TestExportReportsWriteFailure(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	writeTestConfig(t)

	if err := runExport(&exportOptions{format: "csv", out: "/dev/full"}); err == nil {
		t.Error("Expected error when the output device is full")
	}
}

func TestExportSeedZeroOverride(t *testing.T) {
	writeTestConfig(t)
	dir := t.TempDir()
	zero := filepath.Join(dir, "zero.json")
	seven := filepath.Join(dir, "seven.json")

	if err := runExport(&exportOptions{format: "json", out: zero, seedSet: true}); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if err := runExport(&exportOptions{format: "json", out: seven}); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	a, _ := os.ReadFile(zero)
	b, _ := os.ReadFile(seven)
	if bytes.Equal(a, b) {
		t.Error("Explicit --seed 0 should differ from the configured seed 7")
	}
}

package report

import (
	"bytes"
	"strings"
	"testing"

	"dashboard/internal/models"
)

func TestWrite(t *testing.T) {
	r := models.MetricsReport{
		Metrics: models.Metrics{TotalCustomers: 3, AvgLifetimeValue: 4250.5, AvgPurchases: 20, AvgOrderValue: 187.5},
		Segments: []models.SegmentStat{
			{Segment: models.Premium, Customers: 2, Revenue: 12500, AvgLifetimeValue: 6250},
			{Segment: models.Basic, Customers: 1, Revenue: 500, AvgLifetimeValue: 500},
		},
	}
	f := models.Filter{Segments: []models.Segment{models.Premium, models.Basic}, MinPurchases: 5}

	var buf bytes.Buffer
	if err := Write(&buf, f, r, 120); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	out := buf.String()
	for _, want := range []string{"Customer Details", "Total Customers", "€4,250.50", "20.0", "€187.50", "Premium", "€12,500.00", "Basic", "min purchases: 5"} {
		if !strings.Contains(out, want) {
			t.Errorf("Output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteNoSegments(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, models.Filter{}, models.MetricsReport{}, 0); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "segments: none") {
		t.Errorf("Expected empty filter description, got:\n%s", out)
	}
	if strings.Contains(out, "Revenue") {
		t.Errorf("Breakdown table should be omitted when empty:\n%s", out)
	}
}

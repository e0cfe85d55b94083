package engine

import (
	"dashboard/internal/models"
	"testing"
	"time"
)

func fixtureTable() models.CustomerTable {
	// Scenario:
	// Row 0: Premium,  30 purchases, LTV 7500
	// Row 1: Standard, 20 purchases, LTV 4000
	// Row 2: Basic,     5 purchases, LTV 500
	// Row 3: Premium,  25 purchases, LTV 5000
	return models.CustomerTable{
		{ID: "CUST_0001", Segment: models.Premium, Lat: 47.1, Lon: 11.1, TotalPurchases: 30, AvgOrderValue: 250, LifetimeValue: 7500},
		{ID: "CUST_0002", Segment: models.Standard, Lat: 47.2, Lon: 11.2, TotalPurchases: 20, AvgOrderValue: 200, LifetimeValue: 4000},
		{ID: "CUST_0003", Segment: models.Basic, Lat: 47.3, Lon: 11.3, TotalPurchases: 5, AvgOrderValue: 100, LifetimeValue: 500},
		{ID: "CUST_0004", Segment: models.Premium, Lat: 47.4, Lon: 11.4, TotalPurchases: 25, AvgOrderValue: 200, LifetimeValue: 5000},
	}
}

func TestFilter(t *testing.T) {
	table := fixtureTable()

	all := Filter(table, models.Filter{Segments: models.AllSegments})
	if len(all) != 4 {
		t.Fatalf("Expected 4 rows with no thresholds, got %d", len(all))
	}

	premium := Filter(table, models.Filter{Segments: []models.Segment{models.Premium}})
	if len(premium) != 2 {
		t.Fatalf("Expected 2 Premium rows, got %d", len(premium))
	}

	byValue := Filter(table, models.Filter{Segments: models.AllSegments, MinLifetimeValue: 4000})
	if len(byValue) != 3 {
		t.Errorf("Expected 3 rows with LTV >= 4000 (inclusive), got %d", len(byValue))
	}

	byPurchases := Filter(table, models.Filter{Segments: models.AllSegments, MinPurchases: 25})
	if len(byPurchases) != 2 {
		t.Errorf("Expected 2 rows with >= 25 purchases, got %d", len(byPurchases))
	}

	none := Filter(table, models.Filter{})
	if len(none) != 0 {
		t.Errorf("Empty segment set should match nothing, got %d", len(none))
	}

	// Input must be untouched
	if table[2].ID != "CUST_0003" || len(table) != 4 {
		t.Error("Filter mutated its input")
	}
}

func TestFilterGeneratedPremium(t *testing.T) {
	table := GenerateCustomers(100, 42, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	premium := Filter(table, models.Filter{Segments: []models.Segment{models.Premium}})

	if len(premium) > 100 {
		t.Fatalf("Filtered subset larger than input: %d", len(premium))
	}
	for _, c := range premium {
		if c.Segment != models.Premium {
			t.Errorf("%s: expected Premium, got %s", c.ID, c.Segment)
		}
	}
}

func TestSummarize(t *testing.T) {
	m := Summarize(fixtureTable())

	if m.TotalCustomers != 4 {
		t.Errorf("Expected 4 customers, got %d", m.TotalCustomers)
	}
	if m.AvgLifetimeValue != 4250 {
		t.Errorf("Expected avg LTV 4250, got %f", m.AvgLifetimeValue)
	}
	if m.AvgPurchases != 20 {
		t.Errorf("Expected avg purchases 20, got %f", m.AvgPurchases)
	}
	if m.AvgOrderValue != 187.5 {
		t.Errorf("Expected avg order value 187.5, got %f", m.AvgOrderValue)
	}

	empty := Summarize(nil)
	if empty != (models.Metrics{}) {
		t.Errorf("Empty table should summarize to zeros, got %+v", empty)
	}
}

func TestSegmentBreakdown(t *testing.T) {
	stats := SegmentBreakdown(fixtureTable())

	if len(stats) != 3 {
		t.Fatalf("Expected 3 segments, got %d", len(stats))
	}

	// Premium should be first (highest revenue)
	top := stats[0]
	if top.Segment != models.Premium {
		t.Errorf("Expected top segment Premium, got %s", top.Segment)
	}
	if top.Revenue != 12500 || top.Customers != 2 || top.AvgLifetimeValue != 6250 {
		t.Errorf("Unexpected Premium stats: %+v", top)
	}
	if stats[2].Segment != models.Basic {
		t.Errorf("Expected Basic last, got %s", stats[2].Segment)
	}

	only := SegmentBreakdown(fixtureTable()[2:3])
	if len(only) != 1 || only[0].Segment != models.Basic {
		t.Errorf("Segments without customers should be skipped, got %+v", only)
	}
}

func TestTableBounds(t *testing.T) {
	table := fixtureTable()
	table[0].LifetimeValue = 7500.99

	b := TableBounds(table)
	if b.MaxLifetimeValue != 7500 {
		t.Errorf("Expected max LTV 7500, got %d", b.MaxLifetimeValue)
	}
	if b.MaxPurchases != 30 {
		t.Errorf("Expected max purchases 30, got %d", b.MaxPurchases)
	}
}

func TestRowsStripCoordinates(t *testing.T) {
	rows := Rows(fixtureTable())

	if len(rows) != 4 {
		t.Fatalf("Expected 4 rows, got %d", len(rows))
	}
	if rows[1].ID != "CUST_0002" || rows[1].LifetimeValue != 4000 {
		t.Errorf("Row 1 incorrect: %+v", rows[1])
	}
}

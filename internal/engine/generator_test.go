package engine

import (
	"dashboard/internal/models"
	"math"
	"reflect"
	"testing"
	"time"
)

var refNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestGenerateTimeSeriesDeterministic(t *testing.T) {
	a := GenerateTimeSeries(20, 3, 0.5, 42)
	b := GenerateTimeSeries(20, 3, 0.5, 42)

	if !reflect.DeepEqual(a, b) {
		t.Fatal("Same seed produced different series")
	}

	c := GenerateTimeSeries(20, 3, 0.5, 43)
	if reflect.DeepEqual(a, c) {
		t.Error("Different seeds produced identical series")
	}
}

func TestGenerateTimeSeriesShape(t *testing.T) {
	set := GenerateTimeSeries(20, 3, 0.5, 42)

	if set.Len() != 3 {
		t.Fatalf("Expected 3 series, got %d", set.Len())
	}
	if got := set.Labels(); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Errorf("Unexpected labels %v", got)
	}
	for _, s := range set.Series {
		if len(s.Points) != 20 {
			t.Fatalf("Series %s: expected 20 points, got %d", s.Label, len(s.Points))
		}
		for i, p := range s.Points {
			if p.Index != i {
				t.Errorf("Series %s: point %d has index %d", s.Label, i, p.Index)
			}
		}
	}
}

func TestGenerateTimeSeriesZeroVolatility(t *testing.T) {
	// No noise leaves only the seasonal term
	set := GenerateTimeSeries(13, 1, 0, 1)
	for _, p := range set.Series[0].Points {
		want := 0.5 * math.Sin(2*math.Pi*float64(p.Index)/12)
		if math.Abs(p.Value-want) > 1e-12 {
			t.Errorf("Point %d: expected %f, got %f", p.Index, want, p.Value)
		}
	}
}

func TestGenerateTimeSeriesNonPositive(t *testing.T) {
	if n := GenerateTimeSeries(0, 3, 1, 1).Len(); n != 0 {
		t.Errorf("Expected empty set for zero points, got %d series", n)
	}
	if n := GenerateTimeSeries(10, -1, 1, 1).Len(); n != 0 {
		t.Errorf("Expected empty set for negative series count, got %d series", n)
	}
}

func TestSeriesLabel(t *testing.T) {
	cases := map[int]string{0: "a", 2: "c", 25: "z", 26: "aa", 27: "ab"}
	for in, want := range cases {
		if got := seriesLabel(in); got != want {
			t.Errorf("seriesLabel(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestGenerateCustomersInvariants(t *testing.T) {
	table := GenerateCustomers(2000, 42, refNow)

	if len(table) != 2000 {
		t.Fatalf("Expected 2000 customers, got %d", len(table))
	}
	if table[0].ID != "CUST_0001" || table[1999].ID != "CUST_2000" {
		t.Errorf("Unexpected IDs %s .. %s", table[0].ID, table[1999].ID)
	}

	seen := make(map[string]bool, len(table))
	counts := make(map[models.Segment]int)
	for _, c := range table {
		if seen[c.ID] {
			t.Fatalf("Duplicate ID %s", c.ID)
		}
		seen[c.ID] = true
		counts[c.Segment]++

		// A. Lifetime value is derived
		if c.LifetimeValue != Round2(float64(c.TotalPurchases)*c.AvgOrderValue) {
			t.Errorf("%s: LTV %f != %d x %f", c.ID, c.LifetimeValue, c.TotalPurchases, c.AvgOrderValue)
		}

		// B. Bounding box
		if c.Lat < 46.8 || c.Lat > 47.7 || c.Lon < 10.0 || c.Lon > 12.9 {
			t.Errorf("%s: (%f, %f) outside region", c.ID, c.Lat, c.Lon)
		}

		// C. Segment ranges
		r := segmentRanges[c.Segment]
		if c.TotalPurchases < r.minPurchases || c.TotalPurchases >= r.maxPurchases {
			t.Errorf("%s (%s): purchases %d outside [%d,%d)", c.ID, c.Segment, c.TotalPurchases, r.minPurchases, r.maxPurchases)
		}
		if c.AvgOrderValue < r.minOrder || c.AvgOrderValue > r.maxOrder {
			t.Errorf("%s (%s): order value %f outside [%f,%f]", c.ID, c.Segment, c.AvgOrderValue, r.minOrder, r.maxOrder)
		}

		// D. Registration window
		reg, err := time.Parse("2006-01-02", c.RegistrationDate)
		if err != nil {
			t.Fatalf("%s: bad date %q", c.ID, c.RegistrationDate)
		}
		if c.DaysAsCustomer < 1 || c.DaysAsCustomer > 730 {
			t.Errorf("%s: tenure %d outside (0, 730]", c.ID, c.DaysAsCustomer)
		}
		if reg.After(refNow) || reg.Before(refNow.AddDate(0, 0, -731)) {
			t.Errorf("%s: registration %s outside window", c.ID, c.RegistrationDate)
		}
	}

	// Rough weights: 20/50/30 over 2000 draws
	if counts[models.Premium] < 300 || counts[models.Premium] > 500 {
		t.Errorf("Premium share off: %d", counts[models.Premium])
	}
	if counts[models.Standard] < 850 || counts[models.Standard] > 1150 {
		t.Errorf("Standard share off: %d", counts[models.Standard])
	}
}

func TestGenerateCustomersDeterministic(t *testing.T) {
	a := GenerateCustomers(100, 42, refNow)
	b := GenerateCustomers(100, 42, refNow)
	if !reflect.DeepEqual(a, b) {
		t.Fatal("Same seed and reference time produced different tables")
	}

	// Only dates move with the reference time
	c := GenerateCustomers(100, 42, refNow.AddDate(0, 0, 10))
	for i := range a {
		if a[i].Segment != c[i].Segment || a[i].LifetimeValue != c[i].LifetimeValue || a[i].DaysAsCustomer != c[i].DaysAsCustomer {
			t.Fatalf("Row %d: non-date fields changed with reference time", i)
		}
		if a[i].RegistrationDate == c[i].RegistrationDate {
			t.Fatalf("Row %d: registration date did not move", i)
		}
	}
}

func TestLifetimeValue(t *testing.T) {
	if got := LifetimeValue(3, 33.33); got != 99.99 {
		t.Errorf("Expected 99.99, got %f", got)
	}
	if got := LifetimeValue(0, 120); got != 0 {
		t.Errorf("Expected 0, got %f", got)
	}
}

package engine

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"dashboard/internal/models"

	"github.com/goccy/go-json"
)

// Progress is called once per written row. May be nil.
type Progress func()

var customerHeader = []string{
	"customer_id", "segment", "lat", "lon", "registration_date",
	"days_as_customer", "total_purchases", "avg_order_value", "lifetime_value",
}

// --- 1. CSV ---

// WriteCustomersCSV writes the table with a header row, one record per line.
func WriteCustomersCSV(w io.Writer, table models.CustomerTable, progress Progress) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(customerHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, len(customerHeader))
	for _, c := range table {
		row[0] = c.ID
		row[1] = string(c.Segment)
		row[2] = strconv.FormatFloat(c.Lat, 'f', 6, 64)
		row[3] = strconv.FormatFloat(c.Lon, 'f', 6, 64)
		row[4] = c.RegistrationDate
		row[5] = strconv.Itoa(c.DaysAsCustomer)
		row[6] = strconv.Itoa(c.TotalPurchases)
		row[7] = strconv.FormatFloat(c.AvgOrderValue, 'f', 2, 64)
		row[8] = strconv.FormatFloat(c.LifetimeValue, 'f', 2, 64)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write %s: %w", c.ID, err)
		}
		if progress != nil {
			progress()
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteTimeSeriesCSV writes one column per series: index,a,b,c...
func WriteTimeSeriesCSV(w io.Writer, set models.TimeSeriesSet, progress Progress) error {
	cw := csv.NewWriter(w)
	header := append([]string{"index"}, set.Labels()...)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	n := 0
	for _, s := range set.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}

	row := make([]string, len(header))
	for i := 0; i < n; i++ {
		row[0] = strconv.Itoa(i)
		for j, s := range set.Series {
			row[j+1] = ""
			if i < len(s.Points) {
				row[0] = strconv.Itoa(s.Points[i].Index)
				row[j+1] = strconv.FormatFloat(s.Points[i].Value, 'f', -1, 64)
			}
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
		if progress != nil {
			progress()
		}
	}

	cw.Flush()
	return cw.Error()
}

// --- 2. JSON ---

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

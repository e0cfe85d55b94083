package engine

import (
	"dashboard/internal/models"
	"math"
	"sort"
)

type aggStats struct {
	Rev   float64
	Count int
}

// Filter returns the records matching every criterion in f. The input table
// is never modified. An empty segment set matches nothing.
func Filter(table models.CustomerTable, f models.Filter) models.CustomerTable {
	allowed := make(map[models.Segment]bool, len(f.Segments))
	for _, s := range f.Segments {
		allowed[s] = true
	}

	out := make(models.CustomerTable, 0, len(table))
	for _, c := range table {
		if !allowed[c.Segment] {
			continue
		}
		if c.LifetimeValue < f.MinLifetimeValue {
			continue
		}
		if c.TotalPurchases < f.MinPurchases {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Summarize computes the four headline metrics. An empty table yields zeros.
func Summarize(table models.CustomerTable) models.Metrics {
	m := models.Metrics{TotalCustomers: len(table)}
	if len(table) == 0 {
		return m
	}

	var ltv, purchases, order float64
	for _, c := range table {
		ltv += c.LifetimeValue
		purchases += float64(c.TotalPurchases)
		order += c.AvgOrderValue
	}
	n := float64(len(table))
	m.AvgLifetimeValue = ltv / n
	m.AvgPurchases = purchases / n
	m.AvgOrderValue = order / n
	return m
}

// SegmentBreakdown groups revenue by segment, highest revenue first.
// Segments with no customers are left out.
func SegmentBreakdown(table models.CustomerTable) []models.SegmentStat {
	// 1. Array-indexed accumulation (segment order is fixed)
	index := make(map[models.Segment]int, len(models.AllSegments))
	for i, s := range models.AllSegments {
		index[s] = i
	}
	acc := make([]aggStats, len(models.AllSegments))
	for _, c := range table {
		i, ok := index[c.Segment]
		if !ok {
			continue
		}
		acc[i].Rev += c.LifetimeValue
		acc[i].Count++
	}

	// 2. Build result
	stats := make([]models.SegmentStat, 0, len(acc))
	for i, a := range acc {
		if a.Count == 0 {
			continue
		}
		stats = append(stats, models.SegmentStat{
			Segment:          models.AllSegments[i],
			Customers:        a.Count,
			Revenue:          Round2(a.Rev),
			AvgLifetimeValue: Round2(a.Rev / float64(a.Count)),
		})
	}

	// 3. Sort
	sort.SliceStable(stats, func(i, j int) bool { return stats[i].Revenue > stats[j].Revenue })
	return stats
}

// TableBounds returns the upper limits for the lifetime value and purchase
// filters, truncated to whole numbers.
func TableBounds(table models.CustomerTable) models.Bounds {
	var b models.Bounds
	for _, c := range table {
		if v := int(math.Floor(c.LifetimeValue)); v > b.MaxLifetimeValue {
			b.MaxLifetimeValue = v
		}
		if c.TotalPurchases > b.MaxPurchases {
			b.MaxPurchases = c.TotalPurchases
		}
	}
	return b
}

// Rows strips the coordinates for the detail table.
func Rows(table models.CustomerTable) []models.CustomerRow {
	rows := make([]models.CustomerRow, len(table))
	for i, c := range table {
		rows[i] = models.CustomerRow{
			ID:               c.ID,
			Segment:          c.Segment,
			RegistrationDate: c.RegistrationDate,
			DaysAsCustomer:   c.DaysAsCustomer,
			TotalPurchases:   c.TotalPurchases,
			AvgOrderValue:    c.AvgOrderValue,
			LifetimeValue:    c.LifetimeValue,
		}
	}
	return rows
}

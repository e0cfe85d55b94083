package models

import (
	"fmt"
	"strings"
)

type Segment string

const (
	Premium  Segment = "Premium"
	Standard Segment = "Standard"
	Basic    Segment = "Basic"
)

var AllSegments = []Segment{Premium, Standard, Basic}

// ParseSegment accepts any casing of a segment name.
func ParseSegment(s string) (Segment, error) {
	for _, seg := range AllSegments {
		if strings.EqualFold(strings.TrimSpace(s), string(seg)) {
			return seg, nil
		}
	}
	return "", fmt.Errorf("unknown segment %q", s)
}

type CustomerRecord struct {
	ID               string  `json:"customer_id"`
	Segment          Segment `json:"segment"`
	Lat              float64 `json:"lat"`
	Lon              float64 `json:"lon"`
	RegistrationDate string  `json:"registration_date"`
	DaysAsCustomer   int     `json:"days_as_customer"`
	TotalPurchases   int     `json:"total_purchases"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	LifetimeValue    float64 `json:"lifetime_value"`
}

type CustomerTable []CustomerRecord

// CustomerRow is what the detail table shows: a record without coordinates.
type CustomerRow struct {
	ID               string  `json:"customer_id"`
	Segment          Segment `json:"segment"`
	RegistrationDate string  `json:"registration_date"`
	DaysAsCustomer   int     `json:"days_as_customer"`
	TotalPurchases   int     `json:"total_purchases"`
	AvgOrderValue    float64 `json:"avg_order_value"`
	LifetimeValue    float64 `json:"lifetime_value"`
}

type Filter struct {
	Segments         []Segment `json:"segments"`
	MinLifetimeValue float64   `json:"min_lifetime_value"`
	MinPurchases     int       `json:"min_purchases"`
}

type Metrics struct {
	TotalCustomers   int     `json:"total_customers"`
	AvgLifetimeValue float64 `json:"avg_lifetime_value"`
	AvgPurchases     float64 `json:"avg_purchases"`
	AvgOrderValue    float64 `json:"avg_order_value"`
}

type SegmentStat struct {
	Segment          Segment `json:"segment"`
	Customers        int     `json:"customers"`
	Revenue          float64 `json:"revenue"`
	AvgLifetimeValue float64 `json:"avg_lifetime_value"`
}

// Bounds caps the filter inputs on the map tab.
type Bounds struct {
	MaxLifetimeValue int `json:"max_lifetime_value"`
	MaxPurchases     int `json:"max_purchases"`
}

type CustomerReport struct {
	Filter  Filter        `json:"filter"`
	Metrics Metrics       `json:"metrics"`
	Rows    []CustomerRow `json:"rows"`
	Total   int           `json:"total"`
	Limit   int           `json:"limit"`
	Offset  int           `json:"offset"`
}

type MetricsReport struct {
	Metrics  Metrics       `json:"metrics"`
	Segments []SegmentStat `json:"segments"`
	Bounds   Bounds        `json:"bounds"`
}

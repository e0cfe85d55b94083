package models

import "time"

type Point struct {
	Index int     `json:"index"`
	Value float64 `json:"value"`
}

type Series struct {
	Label  string  `json:"label"`
	Points []Point `json:"points"`
}

// TimeSeriesSet keeps its series in generation order (a, b, c, ...).
type TimeSeriesSet struct {
	Series []Series `json:"series"`
}

func (s TimeSeriesSet) Len() int { return len(s.Series) }

func (s TimeSeriesSet) Labels() []string {
	out := make([]string, len(s.Series))
	for i, ser := range s.Series {
		out[i] = ser.Label
	}
	return out
}

// Panel is one named chart on the analytics tab.
type Panel struct {
	Name   string        `json:"name"`
	Title  string        `json:"title"`
	Style  string        `json:"style"`
	Column int           `json:"column"`
	Data   TimeSeriesSet `json:"-"`
}

type MenuItem struct {
	Label   string `json:"label"`
	Primary bool   `json:"primary"`
}

type Health struct {
	Status      string     `json:"status"`
	Ready       bool       `json:"ready"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

package models

// Figure mirrors the plotly.js figure shape so the page can hand it
// straight to Plotly.newPlot.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type   string       `json:"type"`
	Name   string       `json:"name"`
	X      []int        `json:"x"`
	Y      []float64    `json:"y"`
	Fill   string       `json:"fill,omitempty"`
	Line   *Line        `json:"line,omitempty"`
	Marker *TraceMarker `json:"marker,omitempty"`
}

type Line struct {
	Color string `json:"color"`
}

type TraceMarker struct {
	Color string `json:"color"`
}

type Layout struct {
	Title      Title   `json:"title"`
	Template   string  `json:"template"`
	ShowLegend bool    `json:"showlegend"`
	Legend     Legend  `json:"legend"`
	Height     int     `json:"height"`
	Margin     Margin  `json:"margin"`
	XAxis      Axis    `json:"xaxis"`
	YAxis      Axis    `json:"yaxis"`
	PaperColor string  `json:"paper_bgcolor"`
	PlotColor  string  `json:"plot_bgcolor"`
	Font       FontDef `json:"font"`
}

type Title struct {
	Text string `json:"text"`
}

type Legend struct {
	Orientation string  `json:"orientation"`
	YAnchor     string  `json:"yanchor"`
	Y           float64 `json:"y"`
	XAnchor     string  `json:"xanchor"`
	X           float64 `json:"x"`
}

type Margin struct {
	T int `json:"t"`
	L int `json:"l"`
	R int `json:"r"`
	B int `json:"b"`
}

type Axis struct {
	ShowGrid  bool   `json:"showgrid"`
	GridWidth int    `json:"gridwidth"`
	GridColor string `json:"gridcolor"`
}

type FontDef struct {
	Color string `json:"color"`
}

// --- MAP ---

type MapObject struct {
	Center      [2]float64  `json:"center"`
	Zoom        int         `json:"zoom"`
	Tiles       string      `json:"tiles"`
	TileURL     string      `json:"tile_url"`
	Attribution string      `json:"attribution"`
	Markers     []MapMarker `json:"markers"`
	Legend      MapLegend   `json:"legend"`
}

type MapMarker struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Radius      int     `json:"radius"`
	Color       string  `json:"color"`
	FillColor   string  `json:"fill_color"`
	FillOpacity float64 `json:"fill_opacity"`
	Weight      int     `json:"weight"`
	Popup       string  `json:"popup"`
}

type MapLegend struct {
	Title   string        `json:"title"`
	Entries []LegendEntry `json:"entries"`
	HTML    string        `json:"html"`
}

type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

package present

import (
	"fmt"
	"strings"

	"dashboard/internal/models"
)

type ChartStyle string

const (
	StyleArea ChartStyle = "area"
	StyleBar  ChartStyle = "bar"
)

// ParseChartStyle validates a style name coming from a request or config.
func ParseChartStyle(s string) (ChartStyle, error) {
	switch ChartStyle(strings.ToLower(strings.TrimSpace(s))) {
	case StyleArea:
		return StyleArea, nil
	case StyleBar:
		return StyleBar, nil
	}
	return "", fmt.Errorf("unknown chart style %q (want area or bar)", s)
}

// Series colours, cycled past the third series.
var seriesColors = []string{"rgb(53, 162, 235)", "rgb(249, 115, 115)", "rgb(147, 147, 147)"}

const (
	chartHeight   = 300
	gridColor     = "rgba(128, 128, 128, 0.2)"
	darkTemplate  = "plotly_dark"
	darkPaper     = "rgb(17, 17, 17)"
	darkFontColor = "rgb(242, 245, 250)"
)

// BuildChart turns a series set into a plotly figure. Area style draws the
// first series as a line and fills every later series to the previous trace;
// bar style draws one bar trace per series. An empty set gives zero traces.
func BuildChart(set models.TimeSeriesSet, title string, style ChartStyle) models.Figure {
	fig := models.Figure{
		Data:   make([]models.Trace, 0, len(set.Series)),
		Layout: darkLayout(title),
	}

	for idx, s := range set.Series {
		color := seriesColors[idx%len(seriesColors)]
		x, y := split(s.Points)

		tr := models.Trace{
			Name: strings.ToUpper(s.Label),
			X:    x,
			Y:    y,
		}
		if style == StyleBar {
			tr.Type = "bar"
			tr.Marker = &models.TraceMarker{Color: color}
		} else {
			tr.Type = "scatter"
			tr.Line = &models.Line{Color: color}
			if idx > 0 {
				tr.Fill = "tonexty"
			}
		}
		fig.Data = append(fig.Data, tr)
	}
	return fig
}

func darkLayout(title string) models.Layout {
	grid := models.Axis{ShowGrid: true, GridWidth: 1, GridColor: gridColor}
	return models.Layout{
		Title:      models.Title{Text: title},
		Template:   darkTemplate,
		ShowLegend: true,
		Legend: models.Legend{
			Orientation: "h",
			YAnchor:     "bottom",
			Y:           -0.2,
			XAnchor:     "center",
			X:           0.5,
		},
		Height:     chartHeight,
		Margin:     models.Margin{T: 30, L: 0, R: 0, B: 20},
		XAxis:      grid,
		YAxis:      grid,
		PaperColor: darkPaper,
		PlotColor:  darkPaper,
		Font:       models.FontDef{Color: darkFontColor},
	}
}

func split(points []models.Point) ([]int, []float64) {
	x := make([]int, len(points))
	y := make([]float64, len(points))
	for i, p := range points {
		x[i] = p.Index
		y[i] = p.Value
	}
	return x, y
}

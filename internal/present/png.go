package present

import (
	"errors"
	"io"
	"strings"

	"dashboard/internal/models"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

var ErrEmptyChart = errors.New("chart has no data to render")

// MaxPNGSize caps either side of a rendered PNG.
const MaxPNGSize = 4000

// Same palette as seriesColors, as drawing colours.
var pngColors = []drawing.Color{
	{R: 53, G: 162, B: 235, A: 255},
	{R: 249, G: 115, B: 115, A: 255},
	{R: 147, G: 147, B: 147, A: 255},
}

var (
	pngBackground = drawing.Color{R: 17, G: 17, B: 17, A: 255}
	pngForeground = drawing.Color{R: 242, G: 245, B: 250, A: 255}
	pngGrid       = drawing.Color{R: 128, G: 128, B: 128, A: 51}
)

// RenderChartPNG draws the same chart BuildChart describes as a PNG.
// go-chart fills to the axis rather than to the previous series, so area
// fills are translucent; bar style is drawn as point markers.
func RenderChartPNG(w io.Writer, set models.TimeSeriesSet, title string, style ChartStyle, width, height int) error {
	if len(set.Series) == 0 {
		return ErrEmptyChart
	}
	width = clampSize(width, 600)
	height = clampSize(height, chartHeight)

	series := make([]chart.Series, 0, len(set.Series))
	for idx, s := range set.Series {
		if len(s.Points) == 0 {
			continue
		}
		color := pngColors[idx%len(pngColors)]
		xs := make([]float64, len(s.Points))
		ys := make([]float64, len(s.Points))
		for i, p := range s.Points {
			xs[i] = float64(p.Index)
			ys[i] = p.Value
		}
		// go-chart needs at least two X values
		if len(xs) == 1 {
			xs = append(xs, xs[0]+1)
			ys = append(ys, ys[0])
		}
		series = append(series, chart.ContinuousSeries{
			Name:    strings.ToUpper(s.Label),
			XValues: xs,
			YValues: ys,
			Style:   seriesStyle(style, idx, color),
		})
	}
	if len(series) == 0 {
		return ErrEmptyChart
	}

	axisStyle := chart.Style{FontColor: pngForeground, StrokeColor: pngGrid}
	gridStyle := chart.Style{StrokeColor: pngGrid, StrokeWidth: 1}

	ch := chart.Chart{
		Title:      title,
		TitleStyle: chart.Style{FontColor: pngForeground},
		Width:      width,
		Height:     height,
		Background: chart.Style{
			FillColor: pngBackground,
			Padding:   chart.Box{Top: 30, Left: 10, Right: 10, Bottom: 40},
		},
		Canvas: chart.Style{FillColor: pngBackground},
		XAxis:  chart.XAxis{Style: axisStyle, GridMajorStyle: gridStyle},
		YAxis:  chart.YAxis{Style: axisStyle, GridMajorStyle: gridStyle},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.LegendThin(&ch)}

	return ch.Render(chart.PNG, w)
}

func clampSize(v, def int) int {
	if v <= 0 {
		return def
	}
	if v > MaxPNGSize {
		return MaxPNGSize
	}
	return v
}

func seriesStyle(style ChartStyle, idx int, color drawing.Color) chart.Style {
	if style == StyleBar {
		return chart.Style{StrokeWidth: 0, StrokeColor: drawing.ColorTransparent, DotWidth: 5, DotColor: color}
	}
	st := chart.Style{StrokeWidth: 2, StrokeColor: color}
	if idx > 0 {
		st.FillColor = color.WithAlpha(64)
	}
	return st
}

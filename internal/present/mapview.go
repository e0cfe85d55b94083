package present

import (
	"fmt"
	"html"
	"strings"

	"dashboard/internal/engine"
	"dashboard/internal/models"

	"github.com/dustin/go-humanize"
)

const (
	mapZoom        = 8
	mapTiles       = "cartodbdark_matter"
	mapTileURL     = "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png"
	mapAttribution = `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors &copy; <a href="https://carto.com/attributions">CARTO</a>`
	legendTitle    = "Customer Segments"
)

var segmentColors = map[models.Segment]string{
	models.Premium:  "red",
	models.Standard: "blue",
	models.Basic:    "gray",
}

// SegmentColor returns the marker colour for a segment.
func SegmentColor(s models.Segment) string {
	if c, ok := segmentColors[s]; ok {
		return c
	}
	return "gray"
}

// BuildMap places one circle marker per record on a dark map centred on
// Innsbruck. Filtering happens before this call.
func BuildMap(table models.CustomerTable) models.MapObject {
	m := models.MapObject{
		Center:      [2]float64{engine.CenterLat, engine.CenterLon},
		Zoom:        mapZoom,
		Tiles:       mapTiles,
		TileURL:     mapTileURL,
		Attribution: mapAttribution,
		Markers:     make([]models.MapMarker, 0, len(table)),
		Legend:      buildLegend(),
	}

	for _, c := range table {
		color := SegmentColor(c.Segment)
		m.Markers = append(m.Markers, models.MapMarker{
			Lat:         c.Lat,
			Lon:         c.Lon,
			Radius:      6,
			Color:       color,
			FillColor:   color,
			FillOpacity: 0.7,
			Weight:      1,
			Popup:       popupHTML(c),
		})
	}
	return m
}

func popupHTML(c models.CustomerRecord) string {
	var b strings.Builder
	b.WriteString("<div style='font-family: Arial'>")
	fmt.Fprintf(&b, "<b>Customer ID: %s</b><br>", html.EscapeString(c.ID))
	fmt.Fprintf(&b, "Segment: %s<br>", html.EscapeString(string(c.Segment)))
	fmt.Fprintf(&b, "Customer Since: %s<br>", html.EscapeString(c.RegistrationDate))
	fmt.Fprintf(&b, "Total Purchases: %d<br>", c.TotalPurchases)
	fmt.Fprintf(&b, "Avg Order Value: %s<br>", Euro(c.AvgOrderValue))
	fmt.Fprintf(&b, "Lifetime Value: %s", Euro(c.LifetimeValue))
	b.WriteString("</div>")
	return b.String()
}

func buildLegend() models.MapLegend {
	lg := models.MapLegend{Title: legendTitle}

	var b strings.Builder
	b.WriteString(`<div class="map-legend" style="position: absolute; bottom: 50px; left: 50px; z-index: 1000; ` +
		`background-color: rgba(255, 255, 255, 0.8); padding: 10px; border-radius: 5px; font-family: Arial">`)
	fmt.Fprintf(&b, "<h4>%s</h4>", legendTitle)
	for _, s := range models.AllSegments {
		color := SegmentColor(s)
		lg.Entries = append(lg.Entries, models.LegendEntry{Label: string(s), Color: color})
		fmt.Fprintf(&b, `<div><span style="color: %s">&#9679;</span> %s</div>`, color, s)
	}
	b.WriteString("</div>")

	lg.HTML = b.String()
	return lg
}

// Euro formats an amount as €1,234.56.
func Euro(v float64) string {
	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}
	return sign + "€" + humanize.FormatFloat("#,###.##", v)
}

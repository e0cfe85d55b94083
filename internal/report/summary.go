// Package report renders customer metrics for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"dashboard/internal/models"
	"dashboard/internal/present"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

const minWidth = 40

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF4B4B"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	valueStyle  = lipgloss.NewStyle().Bold(true)
	metricStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

var segmentStyles = map[models.Segment]lipgloss.Style{
	models.Premium:  lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	models.Standard: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	models.Basic:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
}

// Write prints the headline metrics and the per-segment breakdown.
// width is the terminal width; values below minWidth are raised to it.
func Write(w io.Writer, f models.Filter, r models.MetricsReport, width int) error {
	if width < minWidth {
		width = minWidth
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Customer Details"))
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(describeFilter(f)))
	b.WriteString("\n")

	cards := []string{
		card("Total Customers", strconv.Itoa(r.Metrics.TotalCustomers)),
		card("Avg Lifetime Value", present.Euro(r.Metrics.AvgLifetimeValue)),
		card("Avg Purchases", fmt.Sprintf("%.1f", r.Metrics.AvgPurchases)),
		card("Avg Order Value", present.Euro(r.Metrics.AvgOrderValue)),
	}
	if lipgloss.Width(strings.Join(cards, "")) <= width {
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	} else {
		b.WriteString(lipgloss.JoinVertical(lipgloss.Left, cards...))
	}
	b.WriteString("\n")

	if len(r.Segments) > 0 {
		b.WriteString(segmentTable(r.Segments).Render())
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func card(label, value string) string {
	return metricStyle.Render(labelStyle.Render(label) + "\n" + valueStyle.Render(value))
}

func segmentTable(stats []models.SegmentStat) *table.Table {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("Segment", "Customers", "Revenue", "Avg LTV").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 0 && row >= 0 && row < len(stats) {
				if st, ok := segmentStyles[stats[row].Segment]; ok {
					return st.Padding(0, 1)
				}
			}
			return cellStyle
		})

	for _, s := range stats {
		t.Row(string(s.Segment), strconv.Itoa(s.Customers), present.Euro(s.Revenue), present.Euro(s.AvgLifetimeValue))
	}
	return t
}

func describeFilter(f models.Filter) string {
	segs := make([]string, len(f.Segments))
	for i, s := range f.Segments {
		segs[i] = string(s)
	}
	if len(segs) == 0 {
		segs = []string{"none"}
	}
	return fmt.Sprintf("segments: %s | min lifetime value: %s | min purchases: %d",
		strings.Join(segs, ", "), present.Euro(f.MinLifetimeValue), f.MinPurchases)
}

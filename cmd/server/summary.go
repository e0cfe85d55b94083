package main

import (
	"os"

	"dashboard/internal/engine"
	"dashboard/internal/models"
	"dashboard/internal/report"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const fallbackWidth = 80

type summaryOptions struct {
	segments     []string
	minValue     float64
	minPurchases int
}

func newSummaryCmd() *cobra.Command {
	opts := &summaryOptions{}
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print customer metrics for a filter",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSummary(opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.segments, "segments", []string{"Premium", "Standard", "Basic"}, "segments to include")
	cmd.Flags().Float64Var(&opts.minValue, "min-value", 0, "minimum lifetime value")
	cmd.Flags().IntVar(&opts.minPurchases, "min-purchases", 0, "minimum number of purchases")
	return cmd
}

func (o *summaryOptions) filter() (models.Filter, error) {
	f := models.Filter{MinLifetimeValue: o.minValue, MinPurchases: o.minPurchases}
	for _, s := range o.segments {
		seg, err := models.ParseSegment(s)
		if err != nil {
			return f, err
		}
		f.Segments = append(f.Segments, seg)
	}
	return f, nil
}

func runSummary(opts *summaryOptions) error {
	f, err := opts.filter()
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	st := rebuilder(cfg)()

	sub := engine.Filter(st.Customers, f)
	r := models.MetricsReport{
		Metrics:  engine.Summarize(sub),
		Segments: engine.SegmentBreakdown(sub),
		Bounds:   engine.TableBounds(st.Customers),
	}

	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width = fallbackWidth
	}
	return report.Write(os.Stdout, f, r, width)
}

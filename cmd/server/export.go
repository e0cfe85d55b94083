package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"

	"dashboard/internal/engine"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

type exportOptions struct {
	format  string
	out     string
	panel   string
	count   int
	seed    int64
	seedSet bool
}

func newExportCmd() *cobra.Command {
	opts := &exportOptions{}
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write generated customers or a chart's time series to a file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.seedSet = cmd.Flags().Changed("seed")
			return runExport(opts)
		},
	}
	cmd.Flags().StringVar(&opts.format, "format", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.panel, "panel", "", "export this chart's series instead of customers")
	cmd.Flags().IntVar(&opts.count, "count", 0, "number of customers (overrides config)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "customer seed (overrides config)")
	return cmd
}

func runExport(opts *exportOptions) error {
	if opts.format != "csv" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (want csv or json)", opts.format)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if opts.count > 0 {
		cfg.Customers.Count = opts.count
	}
	if opts.seedSet {
		cfg.Customers.Seed = &opts.seed
	}
	st := rebuilder(cfg)()

	if opts.out == "" {
		return writeExport(os.Stdout, opts, cfg.Charts.Points, st)
	}

	f, err := os.Create(opts.out)
	if err != nil {
		return fmt.Errorf("create %s: %w", opts.out, err)
	}
	bw := bufio.NewWriter(f)
	if err := writeExport(bw, opts, cfg.Charts.Points, st); err != nil {
		f.Close()
		return err
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("flush %s: %w", opts.out, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", opts.out, err)
	}
	return nil
}

func writeExport(out io.Writer, opts *exportOptions, points int, st *engine.State) error {
	if opts.panel != "" {
		p, ok := st.Panel(opts.panel)
		if !ok {
			return fmt.Errorf("unknown panel %q", opts.panel)
		}
		if opts.format == "json" {
			return engine.WriteJSON(out, p.Data)
		}
		bar := newBar(opts.out, points, "series")
		defer bar.Close()
		return engine.WriteTimeSeriesCSV(out, p.Data, func() { _ = bar.Add(1) })
	}

	if opts.format == "json" {
		return engine.WriteJSON(out, st.Customers)
	}
	bar := newBar(opts.out, len(st.Customers), "customers")
	defer bar.Close()
	if err := engine.WriteCustomersCSV(out, st.Customers, func() { _ = bar.Add(1) }); err != nil {
		return err
	}
	log.Printf("[INFO] exported %d customers", len(st.Customers))
	return nil
}

// newBar draws progress on stderr only when writing to a file from a terminal.
func newBar(out string, n int, desc string) *progressbar.ProgressBar {
	if out == "" || !term.IsTerminal(int(os.Stderr.Fd())) {
		return progressbar.DefaultSilent(int64(n), desc)
	}
	return progressbar.Default(int64(n), desc)
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"dashboard/internal/api"
	"dashboard/internal/engine"
	"dashboard/internal/scheduler"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 10 * time.Second

var serveAddr string

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard over HTTP",
		RunE:  runServe,
	}
	cmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}

	// 1. Initialize Handler with an empty store
	// The API is "live" but returns 503 until the first state lands
	store := engine.NewStore(nil)
	rebuild := rebuilder(cfg)
	h := api.NewHandler(store, rebuild)

	e, err := api.NewServer(cfg, h)
	if err != nil {
		return err
	}

	// 2. Generate in the background
	go func() {
		log.Println("[INFO] BACKGROUND: generating dashboard data...")
		t0 := time.Now()
		st := rebuild()
		store.Swap(st)
		log.Printf("[INFO] BACKGROUND: %d customers, %d charts ready in %v", len(st.Customers), len(st.Panels), time.Since(t0))
	}()

	// 3. Optional periodic refresh
	if cfg.RefreshCron != "" {
		sched := scheduler.NewScheduler(store, rebuild)
		if err := sched.Register(cfg.RefreshCron); err != nil {
			return err
		}
		sched.Start()
		defer sched.Stop()
	}

	// 4. Serve until SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("[INFO] server ready on %s (data loading in background...)", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Println("[INFO] shutdown signal received, stopping...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Printf("[ERROR] server: %v", err)
		return err
	}
	log.Println("[INFO] server stopped")
	return nil
}

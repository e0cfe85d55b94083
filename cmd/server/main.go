package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"dashboard/internal/config"
	"dashboard/internal/engine"

	"github.com/spf13/cobra"
)

const defaultConfigPath = "configs/config.yaml"

var configPath string

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "server",
		Short:         "Customer analytics dashboard",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runServe,
	}

	path := defaultConfigPath
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		path = v
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", path, "path to a YAML or TOML config file")
	rootCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides config)")

	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newExportCmd())
	rootCmd.AddCommand(newSummaryCmd())

	return rootCmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

// rebuilder generates a fresh state each call. Without a pinned
// reference date every call moves the registration window to now.
func rebuilder(cfg *config.Config) func() *engine.State {
	return func() *engine.State {
		return engine.BuildState(cfg, cfg.ReferenceTime(time.Now()))
	}
}

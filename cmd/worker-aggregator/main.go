// Package main is the command line entry point of the worker/aggregator service.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fairyhunter13/worker-aggregator/internal/config"
	"github.com/fairyhunter13/worker-aggregator/internal/obs"
)

var cfgFile string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "worker-aggregator",
		Short: "Counter workers and state aggregators",
		Long:  `worker-aggregator serves counter workers and append-only state aggregators over HTTP, or runs a scripted demo.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, args)
		},
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "YAML config file (environment variables take precedence)")
	root.AddCommand(newServeCmd(), newDemoCmd())
	return root
}

// loadConfig reads the config file if one was given and configures logging.
func loadConfig() (config.Config, error) {
	cfg := config.Load()
	if cfgFile != "" {
		var err error
		if cfg, err = config.LoadFile(cfgFile); err != nil {
			return config.Config{}, err
		}
	}
	obs.Configure(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	return cfg, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
